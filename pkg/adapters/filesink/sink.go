// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"github.com/user/imagify/pkg/ports"
)

// Sink saves debug output to files under a base directory:
//
//	<baseDir>/layouts/<name>.json
//	<baseDir>/images/<name>.<ext>
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveLayoutJSON saves the layout and fill geometry of one message as JSON.
func (s *Sink) SaveLayoutJSON(name string, data []byte) error {
	dir := filepath.Join(s.baseDir, "layouts")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(dir, safeName(name)+".json"), data)
}

// SaveImage saves an encoded image. The extension follows the sniffed content type.
func (s *Sink) SaveImage(name string, data []byte) error {
	dir := filepath.Join(s.baseDir, "images")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	ext := "bin"
	if kind, err := filetype.Image(data); err == nil && kind != filetype.Unknown {
		ext = kind.Extension
	}
	return s.fs.WriteFile(filepath.Join(dir, safeName(name)+"."+ext), data)
}

// safeName keeps a message ID from escaping the sink directory.
func safeName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, ". ")
	if name == "" {
		return "message"
	}
	return name
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
