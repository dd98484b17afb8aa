package geometry

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidLength is returned when a length expression has no parseable number.
var ErrInvalidLength = errors.New("invalid length expression")

// LengthError reports a length expression that could not be parsed.
type LengthError struct {
	Expr string
	Err  error
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("length %q: %v", e.Expr, e.Err)
}

func (e *LengthError) Unwrap() error {
	return e.Err
}

// Unit is the canvas measurement a length coefficient is multiplied by.
type Unit byte

const (
	UnitPixel    Unit = 0
	UnitWidth    Unit = 'w'
	UnitHeight   Unit = 'h'
	UnitDiagonal Unit = 'd'
)

// Length is a parsed length expression such as "120", "0.5w" or "0.2d".
type Length struct {
	Value float64
	Unit  Unit
	Expr  string
}

var lengthPattern = regexp.MustCompile(`^([\d.]+)([a-z])$`)

// ParseLength parses a length expression. The expression is either a plain
// pixel number or a coefficient followed by w (width), h (height) or
// d (diagonal). Any other letter suffix is ignored and the coefficient is
// used as pixels.
func ParseLength(expr string) (Length, error) {
	s := strings.ToLower(strings.TrimSpace(expr))

	if m := lengthPattern.FindStringSubmatch(s); m != nil {
		v, err := parseNumber(m[1])
		if err != nil {
			return Length{}, &LengthError{Expr: expr, Err: err}
		}
		switch u := Unit(m[2][0]); u {
		case UnitWidth, UnitHeight, UnitDiagonal:
			return Length{Value: v, Unit: u, Expr: expr}, nil
		default:
			return Length{Value: v, Unit: UnitPixel, Expr: expr}, nil
		}
	}

	v, err := parseNumber(s)
	if err != nil {
		return Length{}, &LengthError{Expr: expr, Err: err}
	}
	return Length{Value: v, Unit: UnitPixel, Expr: expr}, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidLength
	}
	return v, nil
}

// Resolve converts the length to pixels for a width x height canvas.
func (l Length) Resolve(width, height int) float64 {
	w, h := float64(width), float64(height)
	switch l.Unit {
	case UnitWidth:
		return l.Value * w
	case UnitHeight:
		return l.Value * h
	case UnitDiagonal:
		return l.Value * math.Hypot(w, h)
	default:
		return l.Value
	}
}

// String returns the original expression.
func (l Length) String() string {
	if l.Expr != "" {
		return l.Expr
	}
	if l.Unit == UnitPixel {
		return strconv.FormatFloat(l.Value, 'f', -1, 64)
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + string(rune(l.Unit))
}

// ResolveLength parses and resolves a length expression in one step.
func ResolveLength(expr string, width, height int) (float64, error) {
	l, err := ParseLength(expr)
	if err != nil {
		return math.NaN(), err
	}
	return l.Resolve(width, height), nil
}
