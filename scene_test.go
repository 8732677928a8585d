package reverie

import (
	"math"
	"testing"
)

func TestScenePlayPause(t *testing.T) {
	s := NewScene()
	if s.IsPlaying() {
		t.Fatal("new scene already playing")
	}
	s.Update(0.5)
	assertNear(t, "paused clock", s.Clock(), 0)

	s.Play()
	s.Update(0.5)
	assertNear(t, "advanced clock", s.Clock(), 0.5)

	s.Pause()
	s.Update(0.5)
	assertNear(t, "re-paused clock", s.Clock(), 0.5)
}

func TestSceneRejectsNonPositiveDt(t *testing.T) {
	s := NewScene()
	s.Play()
	s.Update(0)
	s.Update(-1)
	assertNear(t, "clock untouched", s.Clock(), 0)
}

func TestSceneSeek(t *testing.T) {
	s := NewScene()
	s.Seek(12)
	assertNear(t, "seek forward", s.Clock(), 12)
	s.Seek(-5)
	assertNear(t, "seek clamps negative", s.Clock(), 0)
}

func TestEntityUpdateLayersMotion(t *testing.T) {
	e := &Entity{
		ID:   "island",
		Base: Vec3{0, 20, 0},
		Path: OrbitMotion{RadiusX: 5, RadiusZ: 5, Speed: math.Pi},
		Drift: &FloatMotion{Waves: []SineWave{
			{Amplitude: 1, Frequency: math.Pi / 2, Axis: Vec3{Y: 1}},
		}},
	}
	// now = 1: orbit at phase pi, drift sin(pi/2) = 1.
	e.update(0.016, 1)
	assertVecEps(t, "layered position", e.Position, Vec3{-5, 21, 0}, 1e-9)
}

func TestEntitySpinAccumulates(t *testing.T) {
	e := &Entity{
		Spin:       NewRotationMomentum(0, 0),
		SpinTorque: Vec3{0, 1, 0},
	}
	e.update(1, 1)
	e.update(1, 2)
	// v after tick 1 = 1, delta 1; v after tick 2 = 2, delta 2.
	assertVecEps(t, "accumulated rotation", e.Rotation, Vec3{0, 3, 0}, 1e-12)
}

func TestScenePositionOf(t *testing.T) {
	s := NewScene()
	s.AddEntity(&Entity{ID: "spire", Base: Vec3{1, 2, 3}})
	s.Play()
	s.Update(0.016)

	p, ok := s.PositionOf("spire")
	if !ok {
		t.Fatal("entity did not resolve")
	}
	assertVec(t, "entity position", p, Vec3{1, 2, 3})

	if _, ok := s.PositionOf("nobody"); ok {
		t.Error("unknown id resolved")
	}
}

func TestScenePositionOfFlockCentroid(t *testing.T) {
	s := NewScene()
	cfg := DefaultFlockConfig()
	cfg.Count = 2
	f := NewFlock(cfg)
	f.Boids()[0].Position = Vec3{0, 0, 0}
	f.Boids()[1].Position = Vec3{2, 0, 0}
	s.AddFlock("swarm", f)

	p, ok := s.PositionOf("swarm")
	if !ok {
		t.Fatal("flock did not resolve")
	}
	assertVec(t, "flock centroid", p, Vec3{1, 0, 0})
}

func TestSceneEntityShadowsFlockID(t *testing.T) {
	s := NewScene()
	s.AddEntity(&Entity{ID: "muse", Base: Vec3{9, 9, 9}})
	s.AddFlock("muse", NewFlock(FlockConfig{Count: 1}))
	p, _ := s.PositionOf("muse")
	assertVec(t, "entity wins the name", p, Vec3{9, 9, 9})
}

func TestSceneDirectorSeesCurrentTick(t *testing.T) {
	// The director runs after entities, so a tracked entity's look-at
	// reflects this tick's position, not last tick's.
	s := NewScene()
	s.AddEntity(&Entity{
		ID:   "comet",
		Path: OrbitMotion{RadiusX: 10, RadiusZ: 10, Speed: 1},
	})
	s.SetTimeline(NewTimeline([]Shot{{
		Duration: 100,
		Position: Vec3{0, 0, 40},
		Target:   "comet",
	}}))
	s.Play()
	s.Update(0.25)

	want, _ := s.PositionOf("comet")
	assertVec(t, "first-tick look-at snaps to current position", s.Camera().LookAt, want)
}

func TestSceneCameraWithoutTimeline(t *testing.T) {
	s := NewScene()
	cam := s.Camera()
	assertVec(t, "zero position", cam.Position, Vec3{})
	assertNear(t, "default fov", cam.FOV, DefaultFOV)
	if s.Director() != nil {
		t.Error("director exists before SetTimeline")
	}
}

func TestSceneFullTick(t *testing.T) {
	s := NewScene()
	s.AddEntity(&Entity{ID: "isle", Base: Vec3{0, 10, 0}})
	s.AddParticles(NewParticleSystem(ParticleConfig{MaxParticles: 16}))
	s.AddFlock("birds", NewFlock(FlockConfig{Count: 8}))
	s.SetTimeline(NewTimeline([]Shot{
		{Duration: 5, Position: Vec3{0, 5, 30}, Target: "isle"},
		{Duration: 5, Position: Vec3{30, 5, 0}, Target: "birds", Movement: MoveTracking},
	}))
	s.Play()

	for i := 0; i < 100; i++ {
		s.Update(0.05)
	}
	assertNear(t, "clock", s.Clock(), 5)

	cam := s.Camera()
	if math.IsNaN(cam.Position.X) || math.IsNaN(cam.LookAt.X) || math.IsNaN(cam.FOV) {
		t.Fatalf("camera state went NaN: %+v", cam)
	}
	if cam.FOV < MinFOV || cam.FOV > MaxFOV {
		t.Errorf("fov outside cinematic range: %v", cam.FOV)
	}
}
