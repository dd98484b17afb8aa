package message

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	elements, err := Parse(`hello &lt;world&gt; <at id="10000"/><quote id="1">quoted <b>bold</b></quote>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(elements) != 3 {
		t.Fatalf("expected 3 top-level elements, got %d", len(elements))
	}
	if elements[0].Type != TypeText || elements[0].Attrs["content"] != "hello <world> " {
		t.Errorf("unexpected text element %+v", elements[0])
	}
	if elements[1].Type != "at" || elements[1].Attrs["id"] != "10000" {
		t.Errorf("unexpected at element %+v", elements[1])
	}
	quote := elements[2]
	if quote.Type != "quote" || len(quote.Children) != 2 {
		t.Fatalf("unexpected quote element %+v", quote)
	}
	if quote.Children[1].Type != "b" || quote.Children[1].Children[0].Attrs["content"] != "bold" {
		t.Errorf("unexpected nested element %+v", quote.Children[1])
	}
}

func TestParse_VoidAndStrayTags(t *testing.T) {
	elements, err := Parse(`a<br>b<img src="x.png">c</p>d`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := Text(elements); got != "a\nbcd" {
		t.Errorf("expected %q, got %q", "a\nbcd", got)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		expected string
	}{
		{"plain", "just text", "just text"},
		{"entities", "1 &lt; 2 &amp;&amp; 3 &gt; 2", "1 < 2 && 3 > 2"},
		{"elements stripped", `hi <at id="1"/>there`, "hi there"},
		{"nested", `<p>line one</p><p>line two</p>`, "line oneline two"},
		{"newlines kept", "a\nb\nc", "a\nb\nc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements, err := Parse(tt.markup)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := Text(elements); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	if got := Unescape("&lt;b&gt; &quot;x&quot; &amp; &#39;y&#39;"); got != `<b> "x" & 'y'` {
		t.Errorf("unexpected %q", got)
	}
}

func TestElement_String(t *testing.T) {
	elements, err := Parse(`x &lt; y<at id="1" name="a&amp;b"/><b>z</b>`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	s := &Session{Elements: elements}
	expected := `x &lt; y<at id="1" name="a&amp;b"/><b>z</b>`
	if got := s.Markup(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestNewImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

	tests := []struct {
		name     string
		mime     string
		expected string
	}{
		{"explicit", "image/png", "image/png"},
		{"sniffed", "", "image/png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := NewImage(png, tt.mime)
			if el.Type != TypeImage {
				t.Fatalf("expected img element, got %s", el.Type)
			}
			if !strings.HasPrefix(el.Attrs["src"], "data:"+tt.expected+";base64,") {
				t.Errorf("unexpected src %q", el.Attrs["src"])
			}
			data, mime, err := el.ImageData()
			if err != nil {
				t.Fatalf("ImageData failed: %v", err)
			}
			if mime != tt.expected || !bytes.Equal(data, png) {
				t.Errorf("round trip mismatch: %s %v", mime, data)
			}
		})
	}

	if el := NewImage([]byte("plain"), ""); !strings.HasPrefix(el.Attrs["src"], "data:application/octet-stream;base64,") {
		t.Errorf("expected octet-stream fallback, got %q", el.Attrs["src"])
	}
}

func TestImageData_NotInline(t *testing.T) {
	el := &Element{Type: TypeImage, Attrs: map[string]string{"src": "https://example.com/a.png"}}
	if _, _, err := el.ImageData(); !errors.Is(err, ErrNotImage) {
		t.Errorf("expected ErrNotImage, got %v", err)
	}
	if _, _, err := NewText("x").ImageData(); !errors.Is(err, ErrNotImage) {
		t.Errorf("expected ErrNotImage for text, got %v", err)
	}
}

func TestNewSession(t *testing.T) {
	s, err := NewSession("m1", "a\nb")
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.ID != "m1" || s.Content != "a\nb" || Text(s.Elements) != "a\nb" {
		t.Errorf("unexpected session %+v", s)
	}
}
