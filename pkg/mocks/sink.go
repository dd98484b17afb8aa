package mocks

import (
	"sync"

	"github.com/user/imagify/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Layouts map[string][]byte
	Images  map[string][]byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Layouts: make(map[string][]byte),
		Images:  make(map[string][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveLayoutJSON(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Layouts[name] = data
	return nil
}

func (m *DebugSink) SaveImage(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Images[name] = data
	return nil
}

// Layout returns the saved layout JSON for name (for test verification).
func (m *DebugSink) Layout(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.Layouts[name]
	return data, ok
}

// Image returns the saved PNG for name (for test verification).
func (m *DebugSink) Image(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.Images[name]
	return data, ok
}

var _ ports.DebugSink = (*DebugSink)(nil)
