package reverie

import "math"

// finiteDiffEps is the half-step used for finite-difference velocity
// estimation.
const finiteDiffEps = 0.01

// PathMotion is a closed-form position producer parameterized by time.
// Implementations are plain values; evaluating one has no side effects.
type PathMotion interface {
	PositionAt(t float64) Vec3
}

// VelocityAt estimates the velocity of a path motion at time t by symmetric
// finite difference. Used for banking and look-ahead computations where an
// analytic derivative isn't worth carrying.
func VelocityAt(m PathMotion, t float64) Vec3 {
	ahead := m.PositionAt(t + finiteDiffEps)
	behind := m.PositionAt(t - finiteDiffEps)
	return ahead.Sub(behind).Scale(1 / (2 * finiteDiffEps))
}

// OrbitMotion traces an elliptical path around a center point, optionally
// tilted out of the horizontal plane.
type OrbitMotion struct {
	Center  Vec3
	RadiusX float64
	RadiusZ float64
	// Speed is the angular velocity in radians per second.
	Speed float64
	// Tilt rotates the orbital plane about the X axis, in radians.
	Tilt float64
	// Offset is the starting phase in radians.
	Offset float64
	// Height is a constant offset above the center.
	Height float64
}

// PositionAt returns the orbit position at time t.
func (m OrbitMotion) PositionAt(t float64) Vec3 {
	phase := t*m.Speed + m.Offset
	sin, cos := math.Sincos(phase)
	x := cos * m.RadiusX
	y := m.Height
	z := sin * m.RadiusZ
	if m.Tilt != 0 {
		ts, tc := math.Sincos(m.Tilt)
		y, z = y*tc-z*ts, y*ts+z*tc
	}
	return m.Center.Add(Vec3{x, y, z})
}

// BankingAngleAt derives a roll angle at time t from orbital eccentricity,
// phase, and angular speed, scaled by factor. A circular orbit banks zero.
func (m OrbitMotion) BankingAngleAt(t, factor float64) float64 {
	major := math.Max(math.Abs(m.RadiusX), math.Abs(m.RadiusZ))
	if major < epsilon {
		return 0
	}
	ecc := math.Abs(m.RadiusX-m.RadiusZ) / major
	phase := t*m.Speed + m.Offset
	return ecc * math.Sin(phase) * m.Speed * factor
}

// SpiralMotion traces an elliptical path whose radius grows over time,
// layered with a vertical oscillation.
type SpiralMotion struct {
	Center  Vec3
	RadiusX float64
	RadiusZ float64
	// RadiusGrowth expands both radii, in units per second.
	RadiusGrowth float64
	Speed        float64
	Offset       float64
	// HeightAmplitude and HeightFrequency shape the vertical oscillation.
	HeightAmplitude float64
	HeightFrequency float64
}

// PositionAt returns the spiral position at time t.
func (m SpiralMotion) PositionAt(t float64) Vec3 {
	phase := t*m.Speed + m.Offset
	grow := m.RadiusGrowth * t
	sin, cos := math.Sincos(phase)
	return m.Center.Add(Vec3{
		cos * (m.RadiusX + grow),
		m.HeightAmplitude * math.Sin(t*m.HeightFrequency),
		sin * (m.RadiusZ + grow),
	})
}

// BankingAngleAt mirrors OrbitMotion.BankingAngleAt for the spiral's base
// ellipse.
func (m SpiralMotion) BankingAngleAt(t, factor float64) float64 {
	orbit := OrbitMotion{RadiusX: m.RadiusX, RadiusZ: m.RadiusZ, Speed: m.Speed, Offset: m.Offset}
	return orbit.BankingAngleAt(t, factor)
}

// SineWave is one component of a FloatMotion: a sinusoid along an axis.
type SineWave struct {
	Amplitude float64
	Frequency float64
	Phase     float64
	Axis      Vec3
}

// FloatMotion sums independent sine waves into an ambient drift offset.
// Used for slow bobbing of dream structures and handheld camera jitter.
type FloatMotion struct {
	Waves []SineWave
}

// OffsetAt returns the summed drift offset at time t. An empty wave list
// yields the zero vector.
func (m FloatMotion) OffsetAt(t float64) Vec3 {
	var off Vec3
	for _, w := range m.Waves {
		off = off.Add(w.Axis.Scale(w.Amplitude * math.Sin(t*w.Frequency+w.Phase)))
	}
	return off
}

// PositionAt makes FloatMotion usable as a PathMotion anchored at origin.
func (m FloatMotion) PositionAt(t float64) Vec3 {
	return m.OffsetAt(t)
}

// PendulumMotion swings on an arc below a pivot point.
type PendulumMotion struct {
	Pivot  Vec3
	Length float64
	// MaxAngle is the swing amplitude in radians.
	MaxAngle float64
	Speed    float64
	// Direction orients the swing plane about the Y axis, in radians.
	Direction float64
}

// PositionAt returns the bob position at time t.
func (m PendulumMotion) PositionAt(t float64) Vec3 {
	angle := m.MaxAngle * math.Sin(t*m.Speed)
	sin, cos := math.Sincos(angle)
	swing := Vec3{sin * m.Length, -cos * m.Length, 0}.rotateY(m.Direction)
	return m.Pivot.Add(swing)
}

// Figure8Motion traces a horizontal figure-eight (lemniscate of Gerono).
type Figure8Motion struct {
	Center  Vec3
	RadiusX float64
	RadiusZ float64
	Speed   float64
	Offset  float64
	Height  float64
}

// PositionAt returns the figure-eight position at time t.
func (m Figure8Motion) PositionAt(t float64) Vec3 {
	phase := t*m.Speed + m.Offset
	sin, cos := math.Sincos(phase)
	return m.Center.Add(Vec3{
		sin * m.RadiusX,
		m.Height,
		sin * cos * m.RadiusZ,
	})
}

// RotationMomentum integrates externally applied torque into a damped
// angular velocity and emits a per-tick rotation delta. It is the one
// stateful motion generator: callers accumulate the returned deltas into
// their own orientation.
//
// Apply torque at most once per tick, before calling Update.
type RotationMomentum struct {
	// Damping is the exponential decay rate of angular velocity, per second.
	Damping float64
	// MaxSpeed hard-clamps angular velocity magnitude, in radians per
	// second. Non-positive disables the clamp.
	MaxSpeed float64

	velocity Vec3
	torque   Vec3
}

// NewRotationMomentum creates a rotation integrator at rest.
func NewRotationMomentum(damping, maxSpeed float64) *RotationMomentum {
	return &RotationMomentum{Damping: damping, MaxSpeed: maxSpeed}
}

// AddTorque queues a torque to be integrated by the next Update call.
func (r *RotationMomentum) AddTorque(t Vec3) {
	r.torque = r.torque.Add(t)
}

// Update integrates pending torque, applies exponential damping and the
// speed clamp, and returns the rotation delta for this tick.
func (r *RotationMomentum) Update(dt float64) Vec3 {
	r.velocity = r.velocity.Add(r.torque.Scale(dt))
	r.torque = Vec3{}
	r.velocity = r.velocity.Scale(math.Exp(-r.Damping * dt))
	r.velocity = r.velocity.ClampLength(r.MaxSpeed)
	return r.velocity.Scale(dt)
}

// Velocity returns the current angular velocity.
func (r *RotationMomentum) Velocity() Vec3 {
	return r.velocity
}
