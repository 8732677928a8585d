package reverie

import (
	"math"
	"math/rand/v2"
)

// collisionFriction damps the tangential velocity component on every plane
// contact.
const collisionFriction = 0.9

// Particle holds per-particle simulation state. The renderer may read
// Position; all other fields are owned by the ParticleSystem.
type Particle struct {
	Position Vec3
	Velocity Vec3
	Mass     float64
	Age      float64
	Lifetime float64
	Active   bool
}

// ForceKind selects the force model applied to every active particle.
type ForceKind uint8

const (
	ForceGravity    ForceKind = iota // constant downward pull, scaled by mass
	ForceWind                        // constant directional push
	ForceDrag                        // proportional to -velocity
	ForceAttraction                  // inverse-square pull toward Target
	ForceRepulsion                   // inverse-square push away from Target
	ForceTurbulence                  // uniform random impulse
)

// forceKinds maps scene-description names to kinds.
var forceKinds = map[string]ForceKind{
	"gravity":    ForceGravity,
	"wind":       ForceWind,
	"drag":       ForceDrag,
	"attraction": ForceAttraction,
	"repulsion":  ForceRepulsion,
	"turbulence": ForceTurbulence,
}

// ParseForceKind resolves a force kind from its scene-description name.
// Unknown names report ok = false; callers skip the force rather than fail.
func ParseForceKind(name string) (ForceKind, bool) {
	k, ok := forceKinds[name]
	return k, ok
}

// Force is one entry in a particle system's force bag, applied to every
// active particle each tick.
type Force struct {
	Kind     ForceKind
	Strength float64
	// Direction is the push direction for wind.
	Direction Vec3
	// Target is the center point for attraction and repulsion.
	Target Vec3
	// Radius optionally windows attraction/repulsion: zero influence beyond
	// it, with a linear taper over the outer 20%. Non-positive disables the
	// window.
	Radius float64
}

// ParticleConfig controls pool size, spawn behavior, and speed limits.
type ParticleConfig struct {
	// MaxParticles is the pool size, allocated once. Defaults to 128.
	MaxParticles int
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Mass is the range of particle masses. Non-positive samples are
	// clamped to a small positive value.
	Mass Range
	// Speed is the range of initial particle speeds.
	Speed Range
	// SpawnOffset is the attachment offset from the system origin.
	SpawnOffset Vec3
	// SpawnDirection is the emission cone axis. Zero means straight up.
	SpawnDirection Vec3
	// SpawnSpread is the cone half-angle in radians.
	SpawnSpread float64
	// SpawnPath optionally scatters respawn positions along a Catmull-Rom
	// curve through these control points instead of the attachment offset.
	SpawnPath []Vec3
	// MaxSpeed hard-clamps particle speed after integration. Non-positive
	// disables the clamp.
	MaxSpeed float64
}

// Plane is an infinite collision plane in Hessian normal form:
// points x with Normal·x + Distance = 0. Particles are kept on the
// positive side.
type Plane struct {
	Normal   Vec3
	Distance float64
	// Restitution is the bounciness coefficient in [0, 1].
	Restitution float64
}

// ParticleSystem simulates a fixed-capacity particle pool under a bag of
// forces with plane collisions. Expired particles are reset in place at the
// spawn anchor — a hard reset, never interpolated — so the pool is never
// reallocated.
type ParticleSystem struct {
	// Origin anchors the spawn position; hosts may move it per tick.
	Origin Vec3

	config    ParticleConfig
	forces    []Force
	planes    []Plane
	particles []Particle
}

// NewParticleSystem creates a system with a preallocated pool. Every
// particle starts active with a randomized age so respawns don't pulse in
// lockstep.
func NewParticleSystem(cfg ParticleConfig) *ParticleSystem {
	max := cfg.MaxParticles
	if max <= 0 {
		max = 128
	}
	if cfg.Lifetime.Min <= 0 && cfg.Lifetime.Max <= 0 {
		cfg.Lifetime = Range{2, 4}
	}
	s := &ParticleSystem{
		config:    cfg,
		particles: make([]Particle, max),
	}
	for i := range s.particles {
		p := &s.particles[i]
		s.respawn(p)
		p.Active = true
		p.Age = rand.Float64() * p.Lifetime
	}
	return s
}

// Config returns a pointer to the system's config for live tuning.
func (s *ParticleSystem) Config() *ParticleConfig {
	return &s.config
}

// AddForce appends a force to the system's force bag.
func (s *ParticleSystem) AddForce(f Force) {
	s.forces = append(s.forces, f)
}

// AddPlane appends a collision plane. The normal is normalized and
// restitution clamped to [0, 1].
func (s *ParticleSystem) AddPlane(p Plane) {
	p.Normal = p.Normal.Normalized()
	p.Restitution = clamp01(p.Restitution)
	s.planes = append(s.planes, p)
}

// Particles returns the pool for the renderer to read positions from.
// The returned slice MUST NOT be mutated.
func (s *ParticleSystem) Particles() []Particle {
	return s.particles
}

// Update advances the simulation by dt seconds: aging and respawn, force
// accumulation, semi-implicit Euler integration, speed clamp, and plane
// collision, in that order.
func (s *ParticleSystem) Update(dt float64) {
	for i := range s.particles {
		p := &s.particles[i]
		if !p.Active {
			continue
		}

		p.Age += dt
		if p.Age > p.Lifetime {
			s.respawn(p)
			continue
		}

		// Acceleration is rebuilt from scratch every tick.
		var accel Vec3
		for _, f := range s.forces {
			accel = accel.Add(s.accelFrom(f, p))
		}

		p.Velocity = p.Velocity.Add(accel.Scale(dt))
		p.Velocity = p.Velocity.ClampLength(s.config.MaxSpeed)
		p.Position = p.Position.Add(p.Velocity.Scale(dt))

		for _, pl := range s.planes {
			collidePlane(p, pl)
		}
	}
}

// accelFrom computes one force's acceleration contribution for p.
func (s *ParticleSystem) accelFrom(f Force, p *Particle) Vec3 {
	mass := p.Mass
	if mass < epsilon {
		mass = epsilon
	}
	switch f.Kind {
	case ForceGravity:
		// Weight is mass-proportional, so the acceleration is just -g.
		return Vec3{0, -f.Strength, 0}
	case ForceWind:
		return f.Direction.Scale(f.Strength / mass)
	case ForceDrag:
		return p.Velocity.Scale(-f.Strength / mass)
	case ForceAttraction:
		return radialAccel(f, p.Position, mass, 1)
	case ForceRepulsion:
		return radialAccel(f, p.Position, mass, -1)
	case ForceTurbulence:
		return randomUnitVec3().Scale(f.Strength / mass)
	default:
		return Vec3{}
	}
}

// radialAccel computes the inverse-square attraction (sign = 1) or
// repulsion (sign = -1) toward f.Target, with the optional radius window.
func radialAccel(f Force, pos Vec3, mass, sign float64) Vec3 {
	delta := f.Target.Sub(pos)
	d := delta.Length()
	if d < epsilon {
		return Vec3{}
	}
	window := 1.0
	if f.Radius > 0 {
		if d > f.Radius {
			return Vec3{}
		}
		if edge := 0.8 * f.Radius; d > edge {
			window = (f.Radius - d) / (f.Radius - edge)
		}
	}
	mag := sign * window * f.Strength / (d * d * mass)
	return delta.Scale(mag / d)
}

// collidePlane projects the particle back onto the plane surface and
// reflects the normal velocity component scaled by restitution; the
// tangential component is damped by a fixed friction factor.
func collidePlane(p *Particle, pl Plane) {
	dist := p.Position.Dot(pl.Normal) + pl.Distance
	if dist >= 0 {
		return
	}
	p.Position = p.Position.Sub(pl.Normal.Scale(dist))

	vn := p.Velocity.Dot(pl.Normal)
	if vn >= 0 {
		return
	}
	normal := pl.Normal.Scale(vn)
	tangent := p.Velocity.Sub(normal)
	p.Velocity = tangent.Scale(collisionFriction).Sub(normal.Scale(pl.Restitution))
}

// respawn resets a particle in place at the spawn anchor.
func (s *ParticleSystem) respawn(p *Particle) {
	p.Age = 0
	p.Lifetime = s.config.Lifetime.Random()
	if p.Lifetime <= 0 {
		p.Lifetime = 1.0
	}
	p.Mass = s.config.Mass.Random()
	if p.Mass <= 0 {
		p.Mass = 1.0
	}

	if len(s.config.SpawnPath) >= 2 {
		p.Position = s.Origin.Add(CatmullRom(s.config.SpawnPath, rand.Float64()))
	} else {
		p.Position = s.Origin.Add(s.config.SpawnOffset)
	}

	dir := s.config.SpawnDirection
	if dir.IsZero() {
		dir = Vec3{0, 1, 0}
	}
	dir = coneDirection(dir.Normalized(), s.config.SpawnSpread)
	p.Velocity = dir.Scale(s.config.Speed.Random())
}

// coneDirection perturbs axis by a random deviation within the given
// half-angle.
func coneDirection(axis Vec3, spread float64) Vec3 {
	if spread <= 0 {
		return axis
	}
	deviation := randomUnitVec3().Scale(math.Tan(spread) * rand.Float64())
	return axis.Add(deviation).Normalized()
}
