package ports

// DebugSink abstracts debug output for intermediate render results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveLayoutJSON saves the measured layout and resolved fill geometry of one message.
	SaveLayoutJSON(name string, data []byte) error

	// SaveImage saves an encoded PNG produced for one message.
	SaveImage(name string, data []byte) error
}
