package reverie

import (
	"math/rand/v2"
)

const (
	// containmentOnset is the fraction of the boundary radius past which
	// the center-seeking force activates.
	containmentOnset = 0.9
	// avoidLookAhead is how far ahead of a boid, along its velocity, the
	// obstacle probe point is projected.
	avoidLookAhead = 4.0
	// avoidMargin pads every obstacle radius for the proximity test.
	avoidMargin = 2.0
)

// Boid is an individual flocking agent. The renderer may read Position and
// Velocity; steering state is owned by the Flock.
type Boid struct {
	Position Vec3
	Velocity Vec3
	MaxSpeed float64
	MaxForce float64
}

// Obstacle is a sphere boids steer around.
type Obstacle struct {
	Position Vec3
	Radius   float64
}

// FlockConfig controls pool size, rule radii and weights, and containment.
type FlockConfig struct {
	// Count is the boid pool size, allocated once. Defaults to 64.
	Count int

	SeparationDistance float64
	AlignmentDistance  float64
	CohesionDistance   float64

	SeparationWeight float64
	AlignmentWeight  float64
	CohesionWeight   float64

	MaxSpeed float64
	MaxForce float64

	// BoundaryCenter and BoundaryRadius define the optional containment
	// sphere. A non-positive radius disables containment.
	BoundaryCenter Vec3
	BoundaryRadius float64

	// Turbulence layers a random impulse after the base update (the
	// butterfly behavior). Zero disables it.
	Turbulence float64

	// CellSize is the spatial grid cell size. Non-positive picks a default
	// from the largest rule radius.
	CellSize float64
}

// DefaultFlockConfig returns bird-like defaults.
func DefaultFlockConfig() FlockConfig {
	return FlockConfig{
		Count:              64,
		SeparationDistance: 4,
		AlignmentDistance:  10,
		CohesionDistance:   12,
		SeparationWeight:   1.5,
		AlignmentWeight:    1.0,
		CohesionWeight:     1.0,
		MaxSpeed:           8,
		MaxForce:           3,
		BoundaryRadius:     60,
	}
}

// ButterflyFlockConfig returns the butterfly specialization: tighter radii
// and weights plus a turbulence impulse for fluttery motion.
func ButterflyFlockConfig() FlockConfig {
	return FlockConfig{
		Count:              48,
		SeparationDistance: 2,
		AlignmentDistance:  5,
		CohesionDistance:   6,
		SeparationWeight:   2.0,
		AlignmentWeight:    0.6,
		CohesionWeight:     0.8,
		MaxSpeed:           5,
		MaxForce:           4,
		BoundaryRadius:     30,
		Turbulence:         6,
	}
}

// Flock simulates Reynolds boids over a fixed agent pool, using a spatial
// hash grid for neighbor queries. The grid is cleared and rebuilt every
// tick.
type Flock struct {
	config         FlockConfig
	boids          []Boid
	grid           *SpatialGrid
	obstacles      []Obstacle
	neighborRadius float64
}

// NewFlock creates a flock with a preallocated boid pool scattered inside
// the boundary sphere with random headings.
func NewFlock(cfg FlockConfig) *Flock {
	if cfg.Count <= 0 {
		cfg.Count = 64
	}
	if cfg.MaxSpeed <= 0 {
		cfg.MaxSpeed = 8
	}
	if cfg.MaxForce <= 0 {
		cfg.MaxForce = 3
	}

	radius := maxFloat(cfg.SeparationDistance, maxFloat(cfg.AlignmentDistance, cfg.CohesionDistance))
	if radius <= 0 {
		radius = 10
	}
	cell := cfg.CellSize
	if cell <= 0 {
		cell = radius
	}

	f := &Flock{
		config:         cfg,
		boids:          make([]Boid, cfg.Count),
		grid:           NewSpatialGrid(cell),
		neighborRadius: radius,
	}

	spawnRadius := cfg.BoundaryRadius
	if spawnRadius <= 0 {
		spawnRadius = radius * 2
	}
	for i := range f.boids {
		b := &f.boids[i]
		b.Position = cfg.BoundaryCenter.Add(randomUnitVec3().Scale(rand.Float64() * spawnRadius * 0.5))
		b.Velocity = randomUnitVec3().Scale(cfg.MaxSpeed * 0.5)
		b.MaxSpeed = cfg.MaxSpeed
		b.MaxForce = cfg.MaxForce
	}
	return f
}

// Config returns a pointer to the flock's config for live tuning. Rule
// radii changes take effect next tick; Count is fixed at construction.
func (f *Flock) Config() *FlockConfig {
	return &f.config
}

// AddObstacle registers a sphere for the boids to steer around.
func (f *Flock) AddObstacle(o Obstacle) {
	f.obstacles = append(f.obstacles, o)
}

// Boids returns the agent pool for the renderer to read.
// The returned slice MUST NOT be mutated.
func (f *Flock) Boids() []Boid {
	return f.boids
}

// Centroid returns the average boid position. Used as a trackable camera
// target.
func (f *Flock) Centroid() Vec3 {
	if len(f.boids) == 0 {
		return Vec3{}
	}
	var sum Vec3
	for i := range f.boids {
		sum = sum.Add(f.boids[i].Position)
	}
	return sum.Scale(1 / float64(len(f.boids)))
}

// Update advances the flock by dt seconds: rebuild the grid, accumulate
// steering into acceleration, then Euler-integrate with a hard speed clamp.
func (f *Flock) Update(dt float64) {
	f.grid.Clear()
	for i := range f.boids {
		f.grid.Insert(i, f.boids[i].Position)
	}

	for i := range f.boids {
		b := &f.boids[i]
		sep, ali, coh := f.steering(i)

		accel := sep.Scale(f.config.SeparationWeight)
		accel = accel.Add(ali.Scale(f.config.AlignmentWeight))
		accel = accel.Add(coh.Scale(f.config.CohesionWeight))
		accel = accel.Add(f.containment(b))
		accel = accel.Add(f.avoidance(b))

		b.Velocity = b.Velocity.Add(accel.Scale(dt))
		b.Velocity = b.Velocity.ClampLength(b.MaxSpeed)
		b.Position = b.Position.Add(b.Velocity.Scale(dt))

		if f.config.Turbulence > 0 {
			b.Velocity = b.Velocity.Add(randomUnitVec3().Scale(f.config.Turbulence * dt))
			b.Velocity = b.Velocity.ClampLength(b.MaxSpeed)
		}
	}
}

// steering gathers neighbors once and computes the separation, alignment,
// and cohesion vectors for boid i. A boid with no neighbors steers zero.
func (f *Flock) steering(i int) (sep, ali, coh Vec3) {
	b := &f.boids[i]
	nearby := f.grid.Nearby(b.Position, f.neighborRadius)

	var away Vec3
	var velSum, posSum Vec3
	var sepCount, aliCount, cohCount int

	for _, j := range nearby {
		if j == i {
			continue
		}
		o := &f.boids[j]
		d := b.Position.DistanceTo(o.Position)
		// The grid unions whole cells; re-filter by exact distance.
		if d < epsilon {
			continue
		}
		if d < f.config.SeparationDistance {
			// Inverse-distance weighting: closer neighbors push harder.
			away = away.Add(b.Position.Sub(o.Position).Normalized().Scale(1 / d))
			sepCount++
		}
		if d < f.config.AlignmentDistance {
			velSum = velSum.Add(o.Velocity)
			aliCount++
		}
		if d < f.config.CohesionDistance {
			posSum = posSum.Add(o.Position)
			cohCount++
		}
	}

	if sepCount > 0 {
		sep = f.steerToward(b, away)
	}
	if aliCount > 0 {
		ali = f.steerToward(b, velSum.Scale(1/float64(aliCount)))
	}
	if cohCount > 0 {
		target := posSum.Scale(1 / float64(cohCount))
		coh = f.steerToward(b, target.Sub(b.Position))
	}
	return sep, ali, coh
}

// steerToward converts a desired direction into a Reynolds steering force:
// desired·maxSpeed − velocity, clamped to maxForce.
func (f *Flock) steerToward(b *Boid, desired Vec3) Vec3 {
	if desired.LengthSq() < epsilon*epsilon {
		return Vec3{}
	}
	steer := desired.Normalized().Scale(b.MaxSpeed).Sub(b.Velocity)
	return steer.ClampLength(b.MaxForce)
}

// containment adds a center-seeking force once a boid passes 90% of the
// boundary radius, scaling linearly with overshoot up to 2×maxForce.
func (f *Flock) containment(b *Boid) Vec3 {
	r := f.config.BoundaryRadius
	if r <= 0 {
		return Vec3{}
	}
	off := b.Position.Sub(f.config.BoundaryCenter)
	d := off.Length()
	onset := containmentOnset * r
	if d <= onset {
		return Vec3{}
	}
	overshoot := clamp01((d - onset) / (r - onset))
	mag := overshoot * 2 * b.MaxForce
	return off.Normalized().Scale(-mag)
}

// avoidance projects a look-ahead point along the current velocity and
// steers away from obstacles within radius+margin, weighted by proximity.
func (f *Flock) avoidance(b *Boid) Vec3 {
	if len(f.obstacles) == 0 {
		return Vec3{}
	}
	probe := b.Position.Add(b.Velocity.Normalized().Scale(avoidLookAhead))
	var steer Vec3
	for _, o := range f.obstacles {
		reach := o.Radius + avoidMargin
		d := probe.DistanceTo(o.Position)
		if d >= reach || d < epsilon {
			continue
		}
		weight := (reach - d) / reach
		steer = steer.Add(probe.Sub(o.Position).Normalized().Scale(weight * b.MaxForce))
	}
	return steer.ClampLength(b.MaxForce)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
