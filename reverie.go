package reverie

import (
	"math"
	"math/rand/v2"
)

// epsilon guards divisions and normalizations against near-zero values.
// Degenerate inputs contribute a zero term instead of propagating NaN/Inf.
const epsilon = 1e-8

// Vec3 is a 3D vector used for positions, velocities, offsets, axes, and
// directions throughout the API. The coordinate system is right-handed with
// Y up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSq returns the squared length of v. Cheaper than Length for
// comparisons.
func (v Vec3) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalized returns v scaled to unit length. A near-zero vector is returned
// unchanged rather than dividing by zero.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l < epsilon {
		return v
	}
	return v.Scale(1 / l)
}

// ClampLength returns v with its length limited to max. Non-positive max
// disables the clamp.
func (v Vec3) ClampLength(max float64) Vec3 {
	if max <= 0 {
		return v
	}
	l := v.Length()
	if l <= max {
		return v
	}
	return v.Scale(max / l)
}

// Lerp linearly interpolates between v and o by t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
	}
}

// DistanceTo returns the distance between v and o.
func (v Vec3) DistanceTo(o Vec3) float64 {
	return o.Sub(v).Length()
}

// IsZero reports whether every component of v is exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// rotateY rotates v around the Y axis by angle radians.
func (v Vec3) rotateY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{v.X*cos + v.Z*sin, v.Y, -v.X*sin + v.Z*cos}
}

// randomUnitVec3 returns a uniformly distributed point on the unit sphere.
func randomUnitVec3() Vec3 {
	z := 2*rand.Float64() - 1
	theta := 2 * math.Pi * rand.Float64()
	r := math.Sqrt(1 - z*z)
	sin, cos := math.Sincos(theta)
	return Vec3{r * cos, z, r * sin}
}

// Range is a general-purpose min/max range.
// Used by the particle system (ParticleConfig) and flock spawning.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp01 clamps t to [0, 1].
func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// clamp clamps v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
