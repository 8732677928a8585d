package reverie

// Entity is a named, passively drifting scene structure: an optional
// closed-form path, an ambient float offset layered on top, and an optional
// rotational momentum integrator for spin. Entities are what camera shots
// track by id.
type Entity struct {
	ID string
	// Base anchors the entity when Path is nil, and offsets the path when
	// it isn't.
	Base Vec3
	// Path is an optional closed-form position producer evaluated at the
	// scene clock.
	Path PathMotion
	// Drift is an optional ambient float offset summed onto the position.
	Drift *FloatMotion
	// Spin optionally integrates ambient torque into a rotation.
	Spin *RotationMomentum
	// SpinTorque is a constant torque fed to Spin each tick.
	SpinTorque Vec3

	// Position is the entity's current position, updated each tick.
	Position Vec3
	// Rotation is the accumulated Euler rotation from Spin, in radians.
	Rotation Vec3
}

// update advances the entity to the scene clock.
func (e *Entity) update(dt, now float64) {
	pos := e.Base
	if e.Path != nil {
		pos = pos.Add(e.Path.PositionAt(now))
	}
	if e.Drift != nil {
		pos = pos.Add(e.Drift.OffsetAt(now))
	}
	e.Position = pos

	if e.Spin != nil {
		if !e.SpinTorque.IsZero() {
			e.Spin.AddTorque(e.SpinTorque)
		}
		e.Rotation = e.Rotation.Add(e.Spin.Update(dt))
	}
}

// Scene is the top-level object that owns the entity list, particle
// systems, flocks, and the camera director, and advances them all from one
// tick. It implements TargetResolver over its own entities and flock
// centroids so shots can track anything in the scene by id.
//
// Everything runs single-threaded: one Update per rendered frame with the
// host's variable dt. Pausing is simply not calling Update.
type Scene struct {
	entities []*Entity
	byID     map[string]*Entity

	particles []*ParticleSystem
	flocks    []*Flock
	flockIDs  map[string]*Flock

	director *Director

	clock   float64
	playing bool
}

// NewScene creates an empty scene. The playback clock starts at zero,
// paused.
func NewScene() *Scene {
	return &Scene{
		byID:     make(map[string]*Entity),
		flockIDs: make(map[string]*Flock),
	}
}

// AddEntity registers a drifting structure. A later entity with the same
// id replaces the earlier one for target resolution.
func (s *Scene) AddEntity(e *Entity) {
	s.entities = append(s.entities, e)
	if e.ID != "" {
		s.byID[e.ID] = e
	}
}

// AddParticles registers a particle system.
func (s *Scene) AddParticles(ps *ParticleSystem) {
	s.particles = append(s.particles, ps)
}

// AddFlock registers a flock. A non-empty id makes the flock's centroid
// resolvable as a shot target.
func (s *Scene) AddFlock(id string, f *Flock) {
	s.flocks = append(s.flocks, f)
	if id != "" {
		s.flockIDs[id] = f
	}
}

// SetTimeline installs the shot timeline, replacing any existing director.
func (s *Scene) SetTimeline(tl *Timeline) {
	s.director = NewDirector(tl, s)
}

// Play starts advancing the clock on Update calls.
func (s *Scene) Play() { s.playing = true }

// Pause stops advancing; Update becomes a no-op until Play.
func (s *Scene) Pause() { s.playing = false }

// IsPlaying reports whether Update advances the simulation.
func (s *Scene) IsPlaying() bool { return s.playing }

// Clock returns the current playback time in seconds.
func (s *Scene) Clock() float64 { return s.clock }

// Seek jumps the playback clock. The camera smooths toward the new shot
// rather than snapping.
func (s *Scene) Seek(t float64) {
	if t < 0 {
		t = 0
	}
	s.clock = t
}

// Update advances the whole scene by dt seconds. Subsystems run in a fixed
// order — entities, particles, flocks, then the camera director — so the
// director reads target positions already advanced this frame.
func (s *Scene) Update(dt float64) {
	if !s.playing || dt <= 0 {
		return
	}
	s.clock += dt

	for _, e := range s.entities {
		e.update(dt, s.clock)
	}
	for _, ps := range s.particles {
		ps.Update(dt)
	}
	for _, f := range s.flocks {
		f.Update(dt)
	}
	if s.director != nil {
		s.director.Update(dt, s.clock)
	}
}

// Camera returns the current camera output. Before the first Update (or
// with no timeline) it is a zero state with the default fov.
func (s *Scene) Camera() CameraState {
	if s.director == nil {
		return CameraState{FOV: DefaultFOV}
	}
	return s.director.State()
}

// Director returns the camera sequencer, or nil before SetTimeline.
func (s *Scene) Director() *Director { return s.director }

// Entities returns the entity list. The returned slice MUST NOT be mutated.
func (s *Scene) Entities() []*Entity { return s.entities }

// ParticleSystems returns the registered particle systems.
// The returned slice MUST NOT be mutated.
func (s *Scene) ParticleSystems() []*ParticleSystem { return s.particles }

// Flocks returns the registered flocks. The returned slice MUST NOT be
// mutated.
func (s *Scene) Flocks() []*Flock { return s.flocks }

// PositionOf resolves a named target: entities first, then flock
// centroids. Implements TargetResolver.
func (s *Scene) PositionOf(id string) (Vec3, bool) {
	if e, ok := s.byID[id]; ok {
		return e.Position, true
	}
	if f, ok := s.flockIDs[id]; ok {
		return f.Centroid(), true
	}
	return Vec3{}, false
}
