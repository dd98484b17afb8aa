// Package fill models background and foreground fill specifications
// ("grounds"): solid colours, linear and radial gradients, and patterns.
//
// A Ground is normalised and validated once when configuration is loaded
// (see Normalize) and is immutable afterwards. Resolving a Spec against a
// canvas size is a pure function and is done once per rendered message.
package fill

import (
	"image/color"

	"github.com/user/imagify/pkg/geometry"
)

// Kind identifies the variant of a Ground.
type Kind string

const (
	KindUnset          Kind = ""
	KindColor          Kind = "color"
	KindLinearGradient Kind = "linearGradient"
	KindRadialGradient Kind = "radialGradient"
	KindPattern        Kind = "pattern"
)

// Ground is a fill specification. The concrete types are Color,
// LinearGradient, RadialGradient, Pattern and Unset.
type Ground interface {
	Kind() Kind
	ground()
}

// Stop is one colour stop of a gradient.
type Stop struct {
	Offset float64
	Color  color.Color
	// Value is the colour as written in the configuration.
	Value string
}

// Color fills with a single solid colour.
type Color struct {
	Value string
	RGBA  color.Color
}

// LinearGradient fills along an axis given by a CSS angle.
type LinearGradient struct {
	Angle float64
	Stops []Stop
}

// RadialGradient fills between two circles given as length expressions.
type RadialGradient struct {
	Geometry geometry.Radial
	Stops    []Stop
}

// Pattern is recognised but not implemented; it paints the role's fallback colour.
type Pattern struct {
	Source string
}

// Unset paints the role's fallback colour.
type Unset struct{}

func (Color) Kind() Kind          { return KindColor }
func (LinearGradient) Kind() Kind { return KindLinearGradient }
func (RadialGradient) Kind() Kind { return KindRadialGradient }
func (Pattern) Kind() Kind        { return KindPattern }
func (Unset) Kind() Kind          { return KindUnset }

func (Color) ground()          {}
func (LinearGradient) ground() {}
func (RadialGradient) ground() {}
func (Pattern) ground()        {}
func (Unset) ground()          {}

// Role says whether a ground paints the background plate or the text.
type Role int

const (
	Background Role = iota
	Foreground
)

func (r Role) String() string {
	if r == Foreground {
		return "foreground"
	}
	return "background"
}

// FallbackColor is painted for Unset and Pattern grounds.
func (r Role) FallbackColor() color.Color {
	if r == Foreground {
		return color.Black
	}
	return color.White
}

// Spec is a Ground plus the optional opaque base colour painted beneath it.
type Spec struct {
	Role Role
	// BaseColor is nil when no base pass should be painted.
	BaseColor     color.Color
	BaseColorName string
	Ground        Ground
}

// HasBase reports whether a base pass is painted before the ground.
func (s Spec) HasBase() bool {
	return s.BaseColor != nil
}

// Style is a Spec's ground resolved for a concrete canvas size.
type Style struct {
	Kind    Kind
	Color   color.Color
	Line    geometry.Line
	Circles geometry.Circles
	Stops   []Stop
}

// Resolve computes the fill style for a width x height canvas.
// Gradient kinds carry their resolved coordinates; every other kind is a
// solid colour.
func (s Spec) Resolve(width, height int) Style {
	switch g := s.Ground.(type) {
	case Color:
		return Style{Kind: KindColor, Color: g.RGBA}
	case LinearGradient:
		return Style{
			Kind:  KindLinearGradient,
			Line:  geometry.LinearGradientLine(g.Angle, width, height),
			Stops: g.Stops,
		}
	case RadialGradient:
		return Style{
			Kind:    KindRadialGradient,
			Circles: geometry.RadialGradientPoints(g.Geometry, width, height),
			Stops:   g.Stops,
		}
	default:
		kind := KindUnset
		if s.Ground != nil {
			kind = s.Ground.Kind()
		}
		return Style{Kind: kind, Color: s.Role.FallbackColor()}
	}
}
