package mocks

import (
	"fmt"
	"image/color"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/user/imagify/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	mu sync.Mutex

	NewCanvasFunc func() ports.Canvas

	// Canvases holds every canvas created by NewCanvas when NewCanvasFunc is nil.
	Canvases []*Canvas
}

func (m *Renderer) NewCanvas() ports.Canvas {
	if m.NewCanvasFunc != nil {
		return m.NewCanvasFunc()
	}
	c := NewCanvas()
	m.mu.Lock()
	m.Canvases = append(m.Canvases, c)
	m.mu.Unlock()
	return c
}

var _ ports.Renderer = (*Renderer)(nil)

// Op is one recorded drawing call.
type Op struct {
	Name string
	// Fill describes the fill style active when the op ran, for FillRect and FillText.
	Fill  string
	Text  string
	Args  []float64
	Style ports.TextStyle
}

// Canvas is a recording mock implementation of ports.Canvas.
// Text is measured as CharWidth px per rune and LineHeight px per line.
type Canvas struct {
	mu sync.Mutex

	width  int
	height int
	style  ports.TextStyle
	styled bool
	fill   string

	CharWidth  float64
	LineHeight float64

	Ops       []Op
	Gradients []*Gradient

	SetTextStyleFunc func(style ports.TextStyle) error
	MeasureTextFunc  func(text string, maxWidth float64) (ports.TextMetrics, error)
	FillTextFunc     func(text string, x, y, maxWidth float64) error
	EncodePNGFunc    func() ([]byte, error)
}

// NewCanvas creates a recording canvas with 10px characters and 24px lines.
func NewCanvas() *Canvas {
	return &Canvas{CharWidth: 10, LineHeight: 24}
}

func (m *Canvas) record(op Op) {
	m.Ops = append(m.Ops, op)
}

func (m *Canvas) Width() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width
}

func (m *Canvas) Height() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.height
}

func (m *Canvas) Resize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.width, m.height = width, height
	m.styled = false
	m.fill = ""
	m.record(Op{Name: "Resize", Args: []float64{float64(width), float64(height)}})
}

func (m *Canvas) SetTextStyle(style ports.TextStyle) error {
	if m.SetTextStyleFunc != nil {
		if err := m.SetTextStyleFunc(style); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.style = style
	m.styled = true
	m.record(Op{Name: "SetTextStyle", Style: style})
	return nil
}

// Styled reports whether a text style is active, i.e. set after the last Resize.
func (m *Canvas) Styled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.styled
}

func (m *Canvas) MeasureText(text string, maxWidth float64) (ports.TextMetrics, error) {
	m.mu.Lock()
	m.record(Op{Name: "MeasureText", Text: text, Args: []float64{maxWidth}})
	m.mu.Unlock()
	if m.MeasureTextFunc != nil {
		return m.MeasureTextFunc(text, maxWidth)
	}

	var metrics ports.TextMetrics
	for i, line := range strings.Split(text, "\n") {
		w := float64(utf8.RuneCountInString(line)) * m.CharWidth
		if maxWidth > 0 && w > maxWidth {
			w = maxWidth
		}
		if w > metrics.Width {
			metrics.Width = w
		}
		metrics.Lines = append(metrics.Lines, ports.LineMetrics{
			Text:     line,
			Width:    w,
			Baseline: float64(i)*m.LineHeight + m.LineHeight*0.8,
			Height:   m.LineHeight,
		})
	}
	return metrics, nil
}

// Gradient is a mock implementation of ports.Gradient.
type Gradient struct {
	Kind   string
	Coords []float64
	Stops  []GradientStop
}

// GradientStop is one recorded colour stop.
type GradientStop struct {
	Offset float64
	Color  color.Color
}

func (g *Gradient) AddColorStop(offset float64, c color.Color) {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
}

func (g *Gradient) String() string {
	return fmt.Sprintf("%s%v", g.Kind, g.Coords)
}

var _ ports.Gradient = (*Gradient)(nil)

func (m *Canvas) CreateLinearGradient(x0, y0, x1, y1 float64) ports.Gradient {
	g := &Gradient{Kind: "linear", Coords: []float64{x0, y0, x1, y1}}
	m.mu.Lock()
	m.record(Op{Name: "CreateLinearGradient", Args: g.Coords})
	m.Gradients = append(m.Gradients, g)
	m.mu.Unlock()
	return g
}

func (m *Canvas) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) ports.Gradient {
	g := &Gradient{Kind: "radial", Coords: []float64{x0, y0, r0, x1, y1, r1}}
	m.mu.Lock()
	m.record(Op{Name: "CreateRadialGradient", Args: g.Coords})
	m.Gradients = append(m.Gradients, g)
	m.mu.Unlock()
	return g
}

func (m *Canvas) SetFillColor(c color.Color) {
	r, g, b, a := c.RGBA()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fill = fmt.Sprintf("rgba(%d,%d,%d,%d)", r>>8, g>>8, b>>8, a>>8)
}

func (m *Canvas) SetFillGradient(g ports.Gradient) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fill = fmt.Sprint(g)
}

func (m *Canvas) FillRect(x, y, w, h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(Op{Name: "FillRect", Fill: m.fill, Args: []float64{x, y, w, h}})
}

func (m *Canvas) FillText(text string, x, y, maxWidth float64) error {
	if m.FillTextFunc != nil {
		if err := m.FillTextFunc(text, x, y, maxWidth); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(Op{Name: "FillText", Fill: m.fill, Text: text, Args: []float64{x, y, maxWidth}, Style: m.style})
	return nil
}

func (m *Canvas) EncodePNG() ([]byte, error) {
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc()
	}
	// PNG signature, enough for content sniffing.
	return []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}, nil
}

// OpsNamed returns the recorded ops with the given name (for test verification).
func (m *Canvas) OpsNamed(name string) []Op {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Op
	for _, op := range m.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

var _ ports.Canvas = (*Canvas)(nil)
