package fill

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user/imagify/pkg/geometry"
)

// ErrConfiguration matches every ConfigurationError with errors.Is.
var ErrConfiguration = errors.New("invalid fill configuration")

// ConfigurationError reports a ground specification that cannot be used.
// It is raised once, when configuration is loaded.
type ConfigurationError struct {
	Role   Role
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s.%s: %s", e.Role, e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConfiguration) true for any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Raw is a ground specification as read from configuration, before
// defaults and validation.
type Raw struct {
	// BaseColor nil means "use the role default"; an empty string disables the base pass.
	BaseColor *string
	Type      string
	Color     string
	Angle     *float64
	// ColorStops holds [offset, colour] pairs.
	ColorStops [][]any
	Center0    []string
	R0         string
	Center1    []string
	R1         string
	Pattern    string
}

// DefaultStops returns the colour stops used when a gradient lists none.
func DefaultStops(role Role) [][]any {
	if role == Foreground {
		return [][]any{{0, "red"}, {0.5, "green"}, {1, "blue"}}
	}
	return [][]any{{0, "#5efce8"}, {1, "#736efe"}}
}

// defaultName returns the colour name used for the base colour and for a
// "color" ground without a value.
func defaultName(role Role) string {
	if role == Foreground {
		return "black"
	}
	return "white"
}

// Normalize applies role defaults to raw and validates it.
// Gradients need at least two colour stops and radial centres must be
// [x, y] pairs; every colour and length expression must parse.
func Normalize(raw Raw, role Role) (Spec, error) {
	spec := Spec{Role: role}

	base := defaultName(role)
	if raw.BaseColor != nil {
		base = strings.TrimSpace(*raw.BaseColor)
	}
	if base != "" {
		c, err := ParseColor(base)
		if err != nil {
			return Spec{}, &ConfigurationError{Role: role, Field: "base_color", Reason: "invalid colour", Err: err}
		}
		spec.BaseColor = c
		spec.BaseColorName = base
	}

	var err error
	switch Kind(raw.Type) {
	case KindColor:
		spec.Ground, err = normalizeColor(raw, role)
	case KindLinearGradient:
		spec.Ground, err = normalizeLinear(raw, role)
	case KindRadialGradient:
		spec.Ground, err = normalizeRadial(raw, role)
	case KindPattern:
		spec.Ground = Pattern{Source: raw.Pattern}
	default:
		spec.Ground = Unset{}
	}
	if err != nil {
		return Spec{}, err
	}
	return spec, nil
}

func normalizeColor(raw Raw, role Role) (Ground, error) {
	value := strings.TrimSpace(raw.Color)
	if value == "" {
		value = defaultName(role)
	}
	c, err := ParseColor(value)
	if err != nil {
		return nil, &ConfigurationError{Role: role, Field: "color", Reason: "invalid colour", Err: err}
	}
	return Color{Value: value, RGBA: c}, nil
}

func normalizeLinear(raw Raw, role Role) (Ground, error) {
	angle := 0.0
	if raw.Angle != nil {
		angle = *raw.Angle
	}
	stops, err := normalizeStops(raw.ColorStops, role)
	if err != nil {
		return nil, err
	}
	return LinearGradient{Angle: angle, Stops: stops}, nil
}

func normalizeRadial(raw Raw, role Role) (Ground, error) {
	center0, err := normalizeCenter(raw.Center0, [2]string{"0", "0"}, "center0", role)
	if err != nil {
		return nil, err
	}
	center1, err := normalizeCenter(raw.Center1, [2]string{"1w", "1h"}, "center1", role)
	if err != nil {
		return nil, err
	}
	r0 := raw.R0
	if strings.TrimSpace(r0) == "" {
		r0 = "0.2w"
	}
	r1 := raw.R1
	if strings.TrimSpace(r1) == "" {
		r1 = "0.5w"
	}

	geo, err := geometry.ParseRadial(center0, r0, center1, r1)
	if err != nil {
		field := "radial"
		var le *geometry.LengthError
		if errors.As(err, &le) {
			field = radialField(le.Expr, center0, r0, center1, r1)
		}
		return nil, &ConfigurationError{Role: role, Field: field, Reason: "invalid length expression", Err: err}
	}

	stops, err := normalizeStops(raw.ColorStops, role)
	if err != nil {
		return nil, err
	}
	return RadialGradient{Geometry: geo, Stops: stops}, nil
}

func radialField(expr string, center0 [2]string, r0 string, center1 [2]string, r1 string) string {
	switch expr {
	case center0[0], center0[1]:
		return "center0"
	case r0:
		return "r0"
	case center1[0], center1[1]:
		return "center1"
	case r1:
		return "r1"
	}
	return "radial"
}

func normalizeCenter(raw []string, def [2]string, field string, role Role) ([2]string, error) {
	if len(raw) == 0 {
		return def, nil
	}
	if len(raw) != 2 {
		return [2]string{}, &ConfigurationError{
			Role:   role,
			Field:  field,
			Reason: fmt.Sprintf("expected [x, y], got %d values", len(raw)),
		}
	}
	return [2]string{raw[0], raw[1]}, nil
}

func normalizeStops(raw [][]any, role Role) ([]Stop, error) {
	if len(raw) == 0 {
		raw = DefaultStops(role)
	}
	if len(raw) < 2 {
		return nil, &ConfigurationError{
			Role:   role,
			Field:  "color_stops",
			Reason: fmt.Sprintf("need at least 2 colour stops, got %d", len(raw)),
		}
	}

	stops := make([]Stop, 0, len(raw))
	for i, pair := range raw {
		stop, err := parseStop(pair)
		if err != nil {
			return nil, &ConfigurationError{
				Role:   role,
				Field:  fmt.Sprintf("color_stops[%d]", i),
				Reason: "invalid colour stop",
				Err:    err,
			}
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

func parseStop(pair []any) (Stop, error) {
	if len(pair) != 2 {
		return Stop{}, fmt.Errorf("expected [offset, colour], got %d values", len(pair))
	}
	offset, ok := toFloat(pair[0])
	if !ok {
		return Stop{}, fmt.Errorf("offset %v is not a number", pair[0])
	}
	if offset < 0 || offset > 1 {
		return Stop{}, fmt.Errorf("offset %v outside [0, 1]", offset)
	}
	value, ok := pair[1].(string)
	if !ok {
		return Stop{}, fmt.Errorf("colour %v is not a string", pair[1])
	}
	c, err := ParseColor(value)
	if err != nil {
		return Stop{}, err
	}
	return Stop{Offset: offset, Color: c, Value: value}, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
