package message

import "strings"

// Session is one outgoing message as seen by before-send handlers.
// Handlers may replace Elements; Content keeps the original markup.
type Session struct {
	ID       string
	Content  string
	Elements []*Element
}

// NewSession parses content into a session.
func NewSession(id, content string) (*Session, error) {
	elements, err := Parse(content)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, Content: content, Elements: elements}, nil
}

// Markup renders the current elements back to markup.
func (s *Session) Markup() string {
	var b strings.Builder
	for _, e := range s.Elements {
		e.write(&b)
	}
	return b.String()
}
