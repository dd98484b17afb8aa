// Package message models outgoing chat messages: the markup content and the
// element tree parsed from it.
//
// Markup follows the host framework's format: text is HTML-escaped and
// elements are tags, e.g.
//
//	hello <at id="10000"/>, see <img src="https://example.com/a.png"/>
package message

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/net/html"
)

// Element types with special meaning.
const (
	TypeText  = "text"
	TypeImage = "img"
	TypeBreak = "br"
)

// voidElements never have children, even when written without "/>".
var voidElements = map[string]bool{TypeBreak: true, TypeImage: true, "hr": true}

// ErrNotImage is returned by ImageData for elements without inline image data.
var ErrNotImage = errors.New("element has no inline image data")

// Element is one node of a message.
type Element struct {
	Type     string
	Attrs    map[string]string
	Children []*Element
}

// NewText creates a text element.
func NewText(content string) *Element {
	return &Element{Type: TypeText, Attrs: map[string]string{"content": content}}
}

// NewImage creates an image element carrying data inline as a base64 data URL.
// An empty mime type is sniffed from the data.
func NewImage(data []byte, mime string) *Element {
	if mime == "" {
		mime = "application/octet-stream"
		if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
			mime = kind.MIME.Value
		}
	}
	src := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	return &Element{Type: TypeImage, Attrs: map[string]string{"src": src}}
}

// ImageData decodes the inline data of an image element.
func (e *Element) ImageData() ([]byte, string, error) {
	if e.Type != TypeImage {
		return nil, "", ErrNotImage
	}
	src, ok := strings.CutPrefix(e.Attrs["src"], "data:")
	if !ok {
		return nil, "", ErrNotImage
	}
	meta, payload, ok := strings.Cut(src, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URL")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return []byte(payload), mime, nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode image data: %w", err)
	}
	return data, mime, nil
}

// String renders the element back to markup.
func (e *Element) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Element) write(b *strings.Builder) {
	if e.Type == TypeText {
		b.WriteString(html.EscapeString(e.Attrs["content"]))
		return
	}

	b.WriteString("<" + e.Type)
	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, ` %s="%s"`, k, html.EscapeString(e.Attrs[k]))
	}
	if len(e.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	for _, c := range e.Children {
		c.write(b)
	}
	b.WriteString("</" + e.Type + ">")
}

// Parse parses markup into an element list. Unclosed tags are closed at
// the end of input; stray end tags are ignored.
func Parse(markup string) ([]*Element, error) {
	z := html.NewTokenizer(strings.NewReader(markup))
	root := &Element{}
	stack := []*Element{root}

	for {
		tt := z.Next()
		top := stack[len(stack)-1]

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("parse message: %w", err)
			}
			return root.Children, nil

		case html.TextToken:
			top.Children = append(top.Children, NewText(string(z.Text())))

		case html.StartTagToken, html.SelfClosingTagToken:
			el := readTag(z)
			top.Children = append(top.Children, el)
			if tt == html.StartTagToken && !voidElements[el.Type] {
				stack = append(stack, el)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Type == string(name) {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

func readTag(z *html.Tokenizer) *Element {
	name, hasAttr := z.TagName()
	el := &Element{Type: string(name), Attrs: map[string]string{}}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		el.Attrs[string(key)] = string(val)
	}
	return el
}

// Unescape decodes the HTML entities in markup content.
func Unescape(s string) string {
	return html.UnescapeString(s)
}

// Text flattens elements to plain text. Only text content is kept; line
// breaks become "\n" and every other element contributes its children.
func Text(elements []*Element) string {
	var b strings.Builder
	for _, e := range elements {
		writeText(&b, e)
	}
	return b.String()
}

func writeText(b *strings.Builder, e *Element) {
	switch e.Type {
	case TypeText:
		b.WriteString(e.Attrs["content"])
	case TypeBreak:
		b.WriteByte('\n')
	default:
		for _, c := range e.Children {
			writeText(b, c)
		}
	}
}
