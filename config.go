package reverie

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneConfig is the declarative scene description: the shot list plus
// per-entity parameter blocks. Field and enum names match the scene files
// the rendering application already ships; unknown enum names and malformed
// numerics resolve to documented defaults rather than failing, so a sloppy
// scene file still plays.
type SceneConfig struct {
	Shots     []ShotConfig     `yaml:"shots"`
	Entities  []EntityConfig   `yaml:"entities"`
	Particles []ParticlesBlock `yaml:"particles"`
	Flocks    []FlockBlock     `yaml:"flocks"`
}

// ShotConfig is one timed camera directive. Either give every shot an
// explicit start, or give none and let durations accumulate.
type ShotConfig struct {
	Start      *float64  `yaml:"start"`
	Duration   float64   `yaml:"duration"`
	Position   []float64 `yaml:"position"`
	Target     string    `yaml:"target"`
	LookAt     []float64 `yaml:"lookAt"`
	FOV        float64   `yaml:"fov"`
	Movement   string    `yaml:"movement"`
	Easing     string    `yaml:"easing"`
	Transition string    `yaml:"transition"`
}

// RangeBlock is a min/max pair.
type RangeBlock struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ForceBlock describes one force in a particle system's force bag.
type ForceBlock struct {
	Kind      string    `yaml:"kind"`
	Strength  float64   `yaml:"strength"`
	Direction []float64 `yaml:"direction"`
	Target    []float64 `yaml:"target"`
	Radius    float64   `yaml:"radius"`
}

// PlaneBlock describes one collision plane.
type PlaneBlock struct {
	Normal      []float64 `yaml:"normal"`
	Distance    float64   `yaml:"distance"`
	Restitution float64   `yaml:"restitution"`
}

// ParticlesBlock describes one particle system.
type ParticlesBlock struct {
	Max       int          `yaml:"max"`
	Lifetime  RangeBlock   `yaml:"lifetime"`
	Mass      RangeBlock   `yaml:"mass"`
	Speed     RangeBlock   `yaml:"speed"`
	Origin    []float64    `yaml:"origin"`
	Offset    []float64    `yaml:"offset"`
	Direction []float64    `yaml:"direction"`
	Spread    float64      `yaml:"spread"`
	Path      [][]float64  `yaml:"path"`
	MaxSpeed  float64      `yaml:"maxSpeed"`
	Forces    []ForceBlock `yaml:"forces"`
	Planes    []PlaneBlock `yaml:"planes"`
}

// WaveBlock is one sine component of an entity's ambient drift.
type WaveBlock struct {
	Amplitude float64   `yaml:"amplitude"`
	Frequency float64   `yaml:"frequency"`
	Phase     float64   `yaml:"phase"`
	Axis      []float64 `yaml:"axis"`
}

// MotionBlock selects and parameterizes an entity's closed-form path.
// Only the fields relevant to the chosen kind are read.
type MotionBlock struct {
	Kind            string    `yaml:"kind"` // orbit | spiral | pendulum | figure8
	Center          []float64 `yaml:"center"`
	RadiusX         float64   `yaml:"radiusX"`
	RadiusZ         float64   `yaml:"radiusZ"`
	Speed           float64   `yaml:"speed"`
	Tilt            float64   `yaml:"tilt"`
	Offset          float64   `yaml:"offset"`
	Height          float64   `yaml:"height"`
	RadiusGrowth    float64   `yaml:"radiusGrowth"`
	HeightAmplitude float64   `yaml:"heightAmplitude"`
	HeightFrequency float64   `yaml:"heightFrequency"`
	Length          float64   `yaml:"length"`
	MaxAngle        float64   `yaml:"maxAngle"`
	Direction       float64   `yaml:"direction"`
}

// SpinBlock parameterizes an entity's rotational momentum.
type SpinBlock struct {
	Damping  float64   `yaml:"damping"`
	MaxSpeed float64   `yaml:"maxSpeed"`
	Torque   []float64 `yaml:"torque"`
}

// EntityConfig describes one drifting scene structure.
type EntityConfig struct {
	ID     string       `yaml:"id"`
	Base   []float64    `yaml:"base"`
	Motion *MotionBlock `yaml:"motion"`
	Drift  []WaveBlock  `yaml:"drift"`
	Spin   *SpinBlock   `yaml:"spin"`
}

// ObstacleBlock is one avoidance sphere.
type ObstacleBlock struct {
	Position []float64 `yaml:"position"`
	Radius   float64   `yaml:"radius"`
}

// FlockBlock describes one flock. Kind picks the preset ("boids" or
// "butterfly"); any non-zero field overrides the preset value.
type FlockBlock struct {
	ID                 string          `yaml:"id"`
	Kind               string          `yaml:"kind"`
	Count              int             `yaml:"count"`
	SeparationDistance float64         `yaml:"separationDistance"`
	AlignmentDistance  float64         `yaml:"alignmentDistance"`
	CohesionDistance   float64         `yaml:"cohesionDistance"`
	SeparationWeight   float64         `yaml:"separationWeight"`
	AlignmentWeight    float64         `yaml:"alignmentWeight"`
	CohesionWeight     float64         `yaml:"cohesionWeight"`
	MaxSpeed           float64         `yaml:"maxSpeed"`
	MaxForce           float64         `yaml:"maxForce"`
	BoundaryCenter     []float64       `yaml:"boundaryCenter"`
	BoundaryRadius     float64         `yaml:"boundaryRadius"`
	Turbulence         float64         `yaml:"turbulence"`
	Obstacles          []ObstacleBlock `yaml:"obstacles"`
}

// LoadScene reads a YAML scene description from disk and builds the scene.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScene(data)
}

// ParseScene builds a scene from YAML. Only YAML syntax errors fail;
// everything field-level degrades to defaults.
func ParseScene(data []byte) (*Scene, error) {
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return cfg.Build(), nil
}

// Build assembles a Scene from the description.
func (c SceneConfig) Build() *Scene {
	s := NewScene()

	for _, ec := range c.Entities {
		s.AddEntity(buildEntity(ec))
	}
	for _, pc := range c.Particles {
		s.AddParticles(buildParticles(pc))
	}
	for _, fc := range c.Flocks {
		s.AddFlock(fc.ID, buildFlock(fc))
	}
	if len(c.Shots) > 0 {
		s.SetTimeline(NewTimeline(buildShots(c.Shots)))
	}
	return s
}

func buildShots(blocks []ShotConfig) []Shot {
	shots := make([]Shot, 0, len(blocks))
	for _, b := range blocks {
		shot := Shot{
			Duration:   b.Duration,
			Position:   vec3From(b.Position),
			Target:     b.Target,
			FOV:        b.FOV,
			Movement:   ParseMovementKind(b.Movement),
			Easing:     b.Easing,
			Transition: ParseSeconds(b.Transition, DefaultTransition),
		}
		if b.Start != nil {
			shot.Start = *b.Start
		}
		if len(b.LookAt) > 0 {
			look := vec3From(b.LookAt)
			shot.LookAt = &look
		}
		shots = append(shots, shot)
	}
	return shots
}

func buildEntity(b EntityConfig) *Entity {
	e := &Entity{
		ID:   b.ID,
		Base: vec3From(b.Base),
	}
	if b.Motion != nil {
		e.Path = buildMotion(*b.Motion)
	}
	if len(b.Drift) > 0 {
		drift := &FloatMotion{Waves: make([]SineWave, 0, len(b.Drift))}
		for _, w := range b.Drift {
			axis := vec3From(w.Axis)
			if axis.IsZero() {
				axis = Vec3{Y: 1}
			}
			drift.Waves = append(drift.Waves, SineWave{
				Amplitude: w.Amplitude,
				Frequency: w.Frequency,
				Phase:     w.Phase,
				Axis:      axis,
			})
		}
		e.Drift = drift
	}
	if b.Spin != nil {
		e.Spin = NewRotationMomentum(b.Spin.Damping, b.Spin.MaxSpeed)
		e.SpinTorque = vec3From(b.Spin.Torque)
	}
	return e
}

// buildMotion maps a motion block to a generator. An unknown kind yields
// nil (the entity just holds its base position).
func buildMotion(b MotionBlock) PathMotion {
	switch b.Kind {
	case "orbit":
		return OrbitMotion{
			Center:  vec3From(b.Center),
			RadiusX: b.RadiusX,
			RadiusZ: b.RadiusZ,
			Speed:   b.Speed,
			Tilt:    b.Tilt,
			Offset:  b.Offset,
			Height:  b.Height,
		}
	case "spiral":
		return SpiralMotion{
			Center:          vec3From(b.Center),
			RadiusX:         b.RadiusX,
			RadiusZ:         b.RadiusZ,
			RadiusGrowth:    b.RadiusGrowth,
			Speed:           b.Speed,
			Offset:          b.Offset,
			HeightAmplitude: b.HeightAmplitude,
			HeightFrequency: b.HeightFrequency,
		}
	case "pendulum":
		return PendulumMotion{
			Pivot:     vec3From(b.Center),
			Length:    b.Length,
			MaxAngle:  b.MaxAngle,
			Speed:     b.Speed,
			Direction: b.Direction,
		}
	case "figure8":
		return Figure8Motion{
			Center:  vec3From(b.Center),
			RadiusX: b.RadiusX,
			RadiusZ: b.RadiusZ,
			Speed:   b.Speed,
			Offset:  b.Offset,
			Height:  b.Height,
		}
	default:
		return nil
	}
}

func buildParticles(b ParticlesBlock) *ParticleSystem {
	cfg := ParticleConfig{
		MaxParticles:   b.Max,
		Lifetime:       Range{b.Lifetime.Min, b.Lifetime.Max},
		Mass:           Range{b.Mass.Min, b.Mass.Max},
		Speed:          Range{b.Speed.Min, b.Speed.Max},
		SpawnOffset:    vec3From(b.Offset),
		SpawnDirection: vec3From(b.Direction),
		SpawnSpread:    b.Spread,
		MaxSpeed:       b.MaxSpeed,
	}
	for _, p := range b.Path {
		cfg.SpawnPath = append(cfg.SpawnPath, vec3From(p))
	}

	ps := NewParticleSystem(cfg)
	ps.Origin = vec3From(b.Origin)
	for _, fb := range b.Forces {
		kind, ok := ParseForceKind(fb.Kind)
		if !ok {
			continue // unknown force kinds are skipped, not fatal
		}
		ps.AddForce(Force{
			Kind:      kind,
			Strength:  fb.Strength,
			Direction: vec3From(fb.Direction),
			Target:    vec3From(fb.Target),
			Radius:    fb.Radius,
		})
	}
	for _, pb := range b.Planes {
		normal := vec3From(pb.Normal)
		if normal.IsZero() {
			normal = Vec3{Y: 1}
		}
		ps.AddPlane(Plane{
			Normal:      normal,
			Distance:    pb.Distance,
			Restitution: pb.Restitution,
		})
	}
	return ps
}

func buildFlock(b FlockBlock) *Flock {
	var cfg FlockConfig
	if b.Kind == "butterfly" {
		cfg = ButterflyFlockConfig()
	} else {
		cfg = DefaultFlockConfig()
	}

	if b.Count > 0 {
		cfg.Count = b.Count
	}
	if b.SeparationDistance > 0 {
		cfg.SeparationDistance = b.SeparationDistance
	}
	if b.AlignmentDistance > 0 {
		cfg.AlignmentDistance = b.AlignmentDistance
	}
	if b.CohesionDistance > 0 {
		cfg.CohesionDistance = b.CohesionDistance
	}
	if b.SeparationWeight > 0 {
		cfg.SeparationWeight = b.SeparationWeight
	}
	if b.AlignmentWeight > 0 {
		cfg.AlignmentWeight = b.AlignmentWeight
	}
	if b.CohesionWeight > 0 {
		cfg.CohesionWeight = b.CohesionWeight
	}
	if b.MaxSpeed > 0 {
		cfg.MaxSpeed = b.MaxSpeed
	}
	if b.MaxForce > 0 {
		cfg.MaxForce = b.MaxForce
	}
	if len(b.BoundaryCenter) > 0 {
		cfg.BoundaryCenter = vec3From(b.BoundaryCenter)
	}
	if b.BoundaryRadius > 0 {
		cfg.BoundaryRadius = b.BoundaryRadius
	}
	if b.Turbulence > 0 {
		cfg.Turbulence = b.Turbulence
	}

	f := NewFlock(cfg)
	for _, ob := range b.Obstacles {
		f.AddObstacle(Obstacle{Position: vec3From(ob.Position), Radius: ob.Radius})
	}
	return f
}

// vec3From converts a YAML [x, y, z] list, tolerating short or missing
// lists (missing components are zero).
func vec3From(s []float64) Vec3 {
	var v Vec3
	if len(s) > 0 {
		v.X = s[0]
	}
	if len(s) > 1 {
		v.Y = s[1]
	}
	if len(s) > 2 {
		v.Z = s[2]
	}
	return v
}
