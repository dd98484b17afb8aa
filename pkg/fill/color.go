package fill

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS colour string: a named colour, "transparent",
// #rgb, #rrggbb, #rrggbbaa, rgb(), rgba() or hsl().
func ParseColor(s string) (color.Color, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	if str == "" {
		return nil, fmt.Errorf("empty colour")
	}

	switch {
	case str == "transparent":
		return color.NRGBA{}, nil
	case str[0] == '#':
		return parseHex(str)
	case strings.HasPrefix(str, "rgba(") || strings.HasPrefix(str, "rgb("):
		return parseRGB(str)
	case strings.HasPrefix(str, "hsl("):
		return parseHSL(str)
	}

	if c, ok := colornames.Map[str]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown colour %q", s)
}

func parseHex(str string) (color.Color, error) {
	if len(str) == 9 {
		c, err := colorful.Hex(str[:7])
		if err != nil {
			return nil, fmt.Errorf("invalid hex colour %q: %w", str, err)
		}
		a, err := strconv.ParseUint(str[7:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex alpha %q: %w", str, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
	}

	c, err := colorful.Hex(str)
	if err != nil {
		return nil, fmt.Errorf("invalid hex colour %q: %w", str, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// functionArgs splits "name(a, b, c)" into its trimmed arguments.
func functionArgs(str string) ([]string, error) {
	open := strings.IndexByte(str, '(')
	if open < 0 || !strings.HasSuffix(str, ")") {
		return nil, fmt.Errorf("malformed colour function %q", str)
	}
	inner := str[open+1 : len(str)-1]
	inner = strings.ReplaceAll(inner, "/", ",")
	var args []string
	for _, f := range strings.FieldsFunc(inner, func(r rune) bool { return r == ',' || r == ' ' }) {
		args = append(args, strings.TrimSpace(f))
	}
	return args, nil
}

func parseRGB(str string) (color.Color, error) {
	args, err := functionArgs(str)
	if err != nil {
		return nil, err
	}
	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("colour %q needs 3 or 4 components", str)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := parseComponent(args[i], 255)
		if err != nil {
			return nil, fmt.Errorf("colour %q: %w", str, err)
		}
		ch[i] = uint8(v + 0.5)
	}

	alpha := uint8(255)
	if len(args) == 4 {
		v, err := parseComponent(args[3], 1)
		if err != nil {
			return nil, fmt.Errorf("colour %q: %w", str, err)
		}
		alpha = uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

func parseHSL(str string) (color.Color, error) {
	args, err := functionArgs(str)
	if err != nil {
		return nil, err
	}
	if len(args) != 3 {
		return nil, fmt.Errorf("colour %q needs 3 components", str)
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return nil, fmt.Errorf("colour %q: invalid hue", str)
	}
	s, err := parseComponent(args[1], 1)
	if err != nil {
		return nil, fmt.Errorf("colour %q: %w", str, err)
	}
	l, err := parseComponent(args[2], 1)
	if err != nil {
		return nil, fmt.Errorf("colour %q: %w", str, err)
	}
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// parseComponent parses a number or percentage and clamps it to [0, max].
// Percentages are relative to max.
func parseComponent(s string, max float64) (float64, error) {
	var (
		v   float64
		err error
	)
	if strings.HasSuffix(s, "%") {
		v, err = strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		v = v / 100 * max
	} else {
		v, err = strconv.ParseFloat(s, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid component %q", s)
	}
	if v < 0 {
		v = 0
	}
	if v > max {
		v = max
	}
	return v, nil
}
