// Package mocks provides mock implementations for testing.
package mocks
