package geometry

// Radial describes the two circles of a radial gradient with length expressions.
type Radial struct {
	Center0 [2]Length
	Radius0 Length
	Center1 [2]Length
	Radius1 Length
}

// Circles holds the resolved start and end circles of a radial gradient.
type Circles struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
}

// RadialGradientPoints resolves all six lengths of r against a width x height canvas.
func RadialGradientPoints(r Radial, width, height int) Circles {
	return Circles{
		X0: r.Center0[0].Resolve(width, height),
		Y0: r.Center0[1].Resolve(width, height),
		R0: r.Radius0.Resolve(width, height),
		X1: r.Center1[0].Resolve(width, height),
		Y1: r.Center1[1].Resolve(width, height),
		R1: r.Radius1.Resolve(width, height),
	}
}

// ParseRadial parses the six expressions of a radial gradient.
// The first error encountered is returned.
func ParseRadial(center0 [2]string, r0 string, center1 [2]string, r1 string) (Radial, error) {
	var (
		out Radial
		err error
	)
	exprs := []struct {
		src string
		dst *Length
	}{
		{center0[0], &out.Center0[0]},
		{center0[1], &out.Center0[1]},
		{r0, &out.Radius0},
		{center1[0], &out.Center1[0]},
		{center1[1], &out.Center1[1]},
		{r1, &out.Radius1},
	}
	for _, e := range exprs {
		if *e.dst, err = ParseLength(e.src); err != nil {
			return Radial{}, err
		}
	}
	return out, nil
}
