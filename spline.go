package reverie

// CatmullRom evaluates a Catmull-Rom spline through the given control
// points at global t in [0, 1]. t = 0 returns the first point and t = 1 the
// last. Neighbor lookups clamp to the first/last point at the boundaries —
// the spline does not wrap around.
//
// An empty sequence returns the zero vector; a single point is returned
// as-is.
func CatmullRom(points []Vec3, t float64) Vec3 {
	switch len(points) {
	case 0:
		return Vec3{}
	case 1:
		return points[0]
	}

	t = clamp01(t)
	segments := len(points) - 1
	f := t * float64(segments)
	i := int(f)
	if i >= segments {
		i = segments - 1
	}
	u := f - float64(i)

	p0 := points[maxInt(i-1, 0)]
	p1 := points[i]
	p2 := points[i+1]
	p3 := points[minInt(i+2, len(points)-1)]

	return Vec3{
		catmullRomAxis(p0.X, p1.X, p2.X, p3.X, u),
		catmullRomAxis(p0.Y, p1.Y, p2.Y, p3.Y, u),
		catmullRomAxis(p0.Z, p1.Z, p2.Z, p3.Z, u),
	}
}

// catmullRomAxis applies the standard tangent-based cubic to one axis.
func catmullRomAxis(p0, p1, p2, p3, u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	return 0.5 * ((2 * p1) +
		(-p0+p2)*u +
		(2*p0-5*p1+4*p2-p3)*u2 +
		(-p0+3*p1-3*p2+p3)*u3)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
