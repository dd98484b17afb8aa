// Package nullsink provides the debug sink used when debug output is off.
package nullsink

import "github.com/user/imagify/pkg/ports"

// Sink reports itself disabled and drops whatever it is given, so the
// orchestrator never builds the layout record. The zero value is ready to use.
type Sink struct{}

// New creates a new Sink.
func New() Sink {
	return Sink{}
}

func (Sink) Enabled() bool                       { return false }
func (Sink) SaveLayoutJSON(string, []byte) error { return nil }
func (Sink) SaveImage(string, []byte) error      { return nil }

var _ ports.DebugSink = Sink{}
