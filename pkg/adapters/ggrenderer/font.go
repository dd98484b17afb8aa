package ggrenderer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/user/imagify/pkg/ports"
)

// ErrInvalidFont is returned for a font shorthand that cannot be parsed.
var ErrInvalidFont = errors.New("invalid font")

// FontSpec is a parsed CSS-like font shorthand.
type FontSpec struct {
	Size float64
	// LineHeight is 0 when the shorthand has no "/<lineHeight>px" part.
	LineHeight float64
	Bold       bool
	Families   []string
}

var fontPattern = regexp.MustCompile(`(?i)^((?:[a-z0-9-]+\s+)*?)([\d.]+)px(?:\s*/\s*([\d.]+)px)?\s+(.+)$`)

// ParseFont parses "[style] <size>px[/<lineHeight>px] <family>[, <family>...]".
func ParseFont(s string) (FontSpec, error) {
	m := fontPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return FontSpec{}, fmt.Errorf("%w: %q", ErrInvalidFont, s)
	}

	var spec FontSpec
	for _, word := range strings.Fields(strings.ToLower(m[1])) {
		if word == "bold" || word == "bolder" || word == "700" || word == "800" || word == "900" {
			spec.Bold = true
		}
	}

	var err error
	if spec.Size, err = strconv.ParseFloat(m[2], 64); err != nil || spec.Size <= 0 {
		return FontSpec{}, fmt.Errorf("%w: size %q", ErrInvalidFont, m[2])
	}
	if m[3] != "" {
		if spec.LineHeight, err = strconv.ParseFloat(m[3], 64); err != nil {
			return FontSpec{}, fmt.Errorf("%w: line height %q", ErrInvalidFont, m[3])
		}
	}

	for _, family := range strings.Split(m[4], ",") {
		family = strings.Trim(strings.TrimSpace(family), `"'`)
		if family != "" {
			spec.Families = append(spec.Families, family)
		}
	}
	if len(spec.Families) == 0 {
		return FontSpec{}, fmt.Errorf("%w: no font family in %q", ErrInvalidFont, s)
	}
	return spec, nil
}

// FontResolver maps font family names to parsed TrueType fonts.
// Families listed in the configured file map are loaded from disk on first
// use; the generic families and anything unknown resolve to the Go fonts.
// It is safe for concurrent use.
type FontResolver struct {
	fs    ports.FileSystem
	files map[string]string

	mu    sync.Mutex
	cache map[string]*truetype.Font
}

// NewFontResolver creates a resolver for the given family -> TTF path map.
// Family names match case-insensitively.
func NewFontResolver(fs ports.FileSystem, files map[string]string) *FontResolver {
	normalized := make(map[string]string, len(files))
	for family, path := range files {
		normalized[strings.ToLower(strings.TrimSpace(family))] = path
	}
	return &FontResolver{
		fs:    fs,
		files: normalized,
		cache: make(map[string]*truetype.Font),
	}
}

// Preload parses every configured font file and reports the first failure.
func (r *FontResolver) Preload() error {
	for family := range r.files {
		if _, err := r.load(family); err != nil {
			return err
		}
	}
	return nil
}

// Face returns a face for the first family in spec that resolves.
// An unreadable configured font is an error; unknown families fall through.
func (r *FontResolver) Face(spec FontSpec) (font.Face, error) {
	for _, family := range spec.Families {
		key := strings.ToLower(family)
		if _, ok := r.files[key]; ok {
			f, err := r.load(key)
			if err != nil {
				return nil, err
			}
			return newFace(f, spec.Size), nil
		}
		if f := r.generic(key, spec.Bold); f != nil {
			return newFace(f, spec.Size), nil
		}
	}
	return newFace(r.builtin("regular", goregular.TTF), spec.Size), nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingNone})
}

func (r *FontResolver) generic(family string, bold bool) *truetype.Font {
	switch family {
	case "monospace", "ui-monospace":
		return r.builtin("mono", gomono.TTF)
	case "sans-serif", "serif", "system-ui", "ui-sans-serif", "ui-serif":
		if bold {
			return r.builtin("bold", gobold.TTF)
		}
		return r.builtin("regular", goregular.TTF)
	}
	return nil
}

// builtin parses one of the embedded Go fonts. They are known to be valid.
func (r *FontResolver) builtin(name string, ttf []byte) *truetype.Font {
	key := "\x00" + name
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.cache[key]; ok {
		return f
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(fmt.Sprintf("ggrenderer: embedded font %s: %v", name, err))
	}
	r.cache[key] = f
	return f
}

func (r *FontResolver) load(family string) (*truetype.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.cache[family]; ok {
		return f, nil
	}

	path, err := r.fs.Expand(r.files[family])
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", family, err)
	}
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", family, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font %q: parse %s: %w", family, path, err)
	}
	r.cache[family] = f
	return f, nil
}
