package reverie

import (
	"math"
	"testing"
)

func newTestParticles(cfg ParticleConfig) *ParticleSystem {
	if cfg.Lifetime == (Range{}) {
		cfg.Lifetime = Range{100, 100} // keep particles alive through the test
	}
	s := NewParticleSystem(cfg)
	for i := range s.Particles() {
		s.Particles()[i].Age = 0
	}
	return s
}

func TestParticleSystemPoolSize(t *testing.T) {
	s := newTestParticles(ParticleConfig{MaxParticles: 10})
	if got := len(s.Particles()); got != 10 {
		t.Fatalf("pool size = %d, want 10", got)
	}
	for i, p := range s.Particles() {
		if !p.Active {
			t.Errorf("particle %d inactive at spawn", i)
		}
		if p.Lifetime <= 0 {
			t.Errorf("particle %d lifetime = %v", i, p.Lifetime)
		}
	}

	s = newTestParticles(ParticleConfig{})
	if got := len(s.Particles()); got != 128 {
		t.Fatalf("default pool size = %d, want 128", got)
	}
}

func TestParticleGravity(t *testing.T) {
	s := newTestParticles(ParticleConfig{
		MaxParticles: 4,
		Mass:         Range{0.5, 3}, // gravity must be mass-independent
	})
	s.AddForce(Force{Kind: ForceGravity, Strength: 9.8})
	s.Update(0.1)
	for i, p := range s.Particles() {
		assertNearEps(t, "velocity.y", p.Velocity.Y, -0.98, 1e-12)
		if p.Velocity.X != 0 || p.Velocity.Z != 0 {
			t.Errorf("particle %d gained lateral velocity %v", i, p.Velocity)
		}
	}
}

func TestParticleWindScalesByMass(t *testing.T) {
	s := newTestParticles(ParticleConfig{
		MaxParticles: 1,
		Mass:         Range{2, 2},
	})
	s.AddForce(Force{Kind: ForceWind, Strength: 4, Direction: Vec3{1, 0, 0}})
	s.Update(0.5)
	// a = F/m = 2; v = a·dt = 1.
	assertVecEps(t, "wind velocity", s.Particles()[0].Velocity, Vec3{1, 0, 0}, 1e-12)
}

func TestParticleDragDecaysVelocity(t *testing.T) {
	s := newTestParticles(ParticleConfig{
		MaxParticles: 1,
		Mass:         Range{1, 1},
		Speed:        Range{5, 5},
	})
	s.AddForce(Force{Kind: ForceDrag, Strength: 1})
	before := s.Particles()[0].Velocity.Length()
	s.Update(0.1)
	after := s.Particles()[0].Velocity.Length()
	if after >= before {
		t.Errorf("drag did not slow particle: %v -> %v", before, after)
	}
}

func TestAttractionPullsTowardTarget(t *testing.T) {
	s := newTestParticles(ParticleConfig{
		MaxParticles: 1,
		Mass:         Range{1, 1},
		SpawnOffset:  Vec3{10, 0, 0},
	})
	target := Vec3{}
	s.AddForce(Force{Kind: ForceAttraction, Strength: 50, Target: target})
	before := s.Particles()[0].Position.DistanceTo(target)
	for i := 0; i < 10; i++ {
		s.Update(0.05)
	}
	after := s.Particles()[0].Position.DistanceTo(target)
	if after >= before {
		t.Errorf("attraction did not close distance: %v -> %v", before, after)
	}
}

func TestRepulsionRadiusWindow(t *testing.T) {
	f := Force{Kind: ForceRepulsion, Strength: 10, Target: Vec3{}, Radius: 5}

	// Outside the radius: no influence.
	if a := radialAccel(f, Vec3{6, 0, 0}, 1, -1); !a.IsZero() {
		t.Errorf("acceleration beyond radius = %v, want zero", a)
	}
	// Inside the core: full inverse-square push, away from target.
	a := radialAccel(f, Vec3{2, 0, 0}, 1, -1)
	assertVecEps(t, "core repulsion", a, Vec3{10.0 / 4, 0, 0}, 1e-12)
	// In the taper band: scaled down, still outward.
	taper := radialAccel(f, Vec3{4.5, 0, 0}, 1, -1)
	full := radialAccel(f, Vec3{3.9, 0, 0}, 1, -1)
	if taper.X <= 0 || taper.X >= full.X {
		t.Errorf("taper band acceleration %v out of range (full %v)", taper.X, full.X)
	}
	// At the target itself: guarded, no NaN.
	if a := radialAccel(f, Vec3{}, 1, -1); !a.IsZero() {
		t.Errorf("acceleration at target = %v, want zero", a)
	}
}

func TestParticleMaxSpeedClamp(t *testing.T) {
	s := newTestParticles(ParticleConfig{
		MaxParticles: 2,
		Mass:         Range{1, 1},
		MaxSpeed:     3,
	})
	s.AddForce(Force{Kind: ForceWind, Strength: 1000, Direction: Vec3{1, 0, 0}})
	s.Update(1)
	for i, p := range s.Particles() {
		if sp := p.Velocity.Length(); sp > 3+1e-9 {
			t.Errorf("particle %d speed %v exceeds clamp", i, sp)
		}
	}
}

func TestParticleRespawnIsHardReset(t *testing.T) {
	s := NewParticleSystem(ParticleConfig{
		MaxParticles: 1,
		Lifetime:     Range{1, 1},
		Mass:         Range{1, 1},
		SpawnOffset:  Vec3{0, 5, 0},
	})
	p := &s.Particles()[0]
	p.Age = 0.9
	p.Position = Vec3{100, 100, 100}
	p.Velocity = Vec3{50, 0, 0}

	s.Update(0.2) // crosses the lifetime boundary
	if p.Age != 0 {
		t.Errorf("age after respawn = %v, want 0", p.Age)
	}
	assertVec(t, "position reset to spawn anchor", p.Position, Vec3{0, 5, 0})
	if !p.Active {
		t.Error("respawned particle inactive")
	}
}

func TestParticleRespawnFollowsOrigin(t *testing.T) {
	s := NewParticleSystem(ParticleConfig{
		MaxParticles: 1,
		Lifetime:     Range{1, 1},
		SpawnOffset:  Vec3{1, 0, 0},
	})
	s.Origin = Vec3{0, 0, 7}
	p := &s.Particles()[0]
	p.Age = 2
	s.Update(0.01)
	assertVec(t, "spawn anchored to moved origin", p.Position, Vec3{1, 0, 7})
}

func TestParticleSpawnPath(t *testing.T) {
	path := []Vec3{{0, 3, 0}, {10, 3, 0}}
	s := NewParticleSystem(ParticleConfig{
		MaxParticles: 32,
		Lifetime:     Range{1, 1},
		SpawnPath:    path,
	})
	for i, p := range s.Particles() {
		if p.Position.Y != 3 || p.Position.Z != 0 {
			t.Fatalf("particle %d off path: %v", i, p.Position)
		}
		if p.Position.X < -1e-9 || p.Position.X > 10+1e-9 {
			t.Fatalf("particle %d outside path extent: %v", i, p.Position)
		}
	}
}

func TestPlaneCollisionBounce(t *testing.T) {
	p := &Particle{
		Position: Vec3{0, -0.5, 0},
		Velocity: Vec3{2, -10, 0},
	}
	pl := Plane{Normal: Vec3{0, 1, 0}, Distance: 0, Restitution: 0.5}
	collidePlane(p, pl)

	assertNear(t, "projected back to surface", p.Position.Y, 0)
	assertNearEps(t, "reflected normal velocity", p.Velocity.Y, 5, 1e-12)
	assertNearEps(t, "damped tangential velocity", p.Velocity.X, 2*collisionFriction, 1e-12)
}

func TestPlaneCollisionIgnoresSeparating(t *testing.T) {
	p := &Particle{Position: Vec3{0, 1, 0}, Velocity: Vec3{0, -3, 0}}
	pl := Plane{Normal: Vec3{0, 1, 0}, Restitution: 1}
	collidePlane(p, pl)
	assertVec(t, "above plane untouched", p.Velocity, Vec3{0, -3, 0})

	// Below the plane but already moving away: reposition only.
	p = &Particle{Position: Vec3{0, -1, 0}, Velocity: Vec3{0, 4, 0}}
	collidePlane(p, pl)
	assertNear(t, "repositioned", p.Position.Y, 0)
	assertVec(t, "outgoing velocity kept", p.Velocity, Vec3{0, 4, 0})
}

func TestParseForceKind(t *testing.T) {
	k, ok := ParseForceKind("gravity")
	if !ok || k != ForceGravity {
		t.Errorf("gravity -> (%v, %v)", k, ok)
	}
	if _, ok := ParseForceKind("vortex"); ok {
		t.Error("unknown force name parsed")
	}
}

func TestParticleUpdateZeroAllocs(t *testing.T) {
	s := newTestParticles(ParticleConfig{MaxParticles: 64, Mass: Range{1, 1}})
	s.AddForce(Force{Kind: ForceGravity, Strength: 9.8})
	s.AddForce(Force{Kind: ForceDrag, Strength: 0.2})
	s.AddPlane(Plane{Normal: Vec3{0, 1, 0}, Distance: 10, Restitution: 0.4})
	s.Update(0.016)

	allocs := testing.AllocsPerRun(100, func() {
		s.Update(0.016)
	})
	if allocs != 0 {
		t.Errorf("Update allocated %v times per run", allocs)
	}
}

func BenchmarkParticleUpdate(b *testing.B) {
	s := NewParticleSystem(ParticleConfig{
		MaxParticles: 512,
		Lifetime:     Range{2, 4},
		Mass:         Range{0.5, 2},
		Speed:        Range{1, 5},
		SpawnSpread:  math.Pi / 6,
	})
	s.AddForce(Force{Kind: ForceGravity, Strength: 9.8})
	s.AddForce(Force{Kind: ForceWind, Strength: 1, Direction: Vec3{1, 0, 0}})
	s.AddForce(Force{Kind: ForceAttraction, Strength: 20, Target: Vec3{0, 10, 0}, Radius: 40})
	s.AddPlane(Plane{Normal: Vec3{0, 1, 0}, Restitution: 0.5})
	for b.Loop() {
		s.Update(0.016)
	}
}
