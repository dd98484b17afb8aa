package filesink

import (
	"path/filepath"
	"testing"

	"github.com/user/imagify/pkg/mocks"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d}

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem())

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveLayoutJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	data := []byte(`{"test": true}`)
	if err := sink.SaveLayoutJSON("message-0001", data); err != nil {
		t.Fatalf("SaveLayoutJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "layouts", "message-0001.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Errorf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveImage(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		data     []byte
		expected string
	}{
		{"png", "message-0002", pngHeader, filepath.Join(testBaseDir, "images", "message-0002.png")},
		{"unknown content", "raw", []byte("plain"), filepath.Join(testBaseDir, "images", "raw.bin")},
		{"unsafe name", "../../etc/passwd", pngHeader, filepath.Join(testBaseDir, "images", "_.._etc_passwd.png")},
		{"empty name", "", pngHeader, filepath.Join(testBaseDir, "images", "message.png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewFileSystem()
			sink := New(testBaseDir, fs)

			if err := sink.SaveImage(tt.id, tt.data); err != nil {
				t.Fatalf("SaveImage failed: %v", err)
			}
			if _, ok := fs.GetFile(tt.expected); !ok {
				t.Errorf("expected file to be saved at %s", tt.expected)
			}
		})
	}
}
