// Package reverie is a procedural motion core for scripted dream-like 3D
// scenes: a camera shot sequencer with seamless transition blending, a
// library of closed-form motion generators, a pooled particle physics
// system, and a Reynolds flocking simulation, all advanced by a single
// variable-timestep tick.
//
// Reverie performs no rendering. Each tick it produces a camera position,
// look-at point, and field of view, plus particle and boid positions, for a
// rendering host to draw however it likes. The host owns the clock: it calls
// [Scene.Update] once per frame with the elapsed seconds, and simply stops
// calling it to pause.
//
// # Quick start
//
// Describe the scene in YAML (shots, entities, particles, flocks) and load
// it:
//
//	scene, err := reverie.LoadScene("dream.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene.Play()
//
//	// each frame:
//	scene.Update(dt)
//	cam := scene.Camera() // position, look-at, fov
//
// Or build it in code:
//
//	scene := reverie.NewScene()
//	scene.AddEntity(&reverie.Entity{
//		ID:   "island",
//		Path: reverie.OrbitMotion{RadiusX: 30, RadiusZ: 30, Speed: 0.1},
//	})
//	scene.SetTimeline(reverie.NewTimeline([]reverie.Shot{
//		{Duration: 8, Position: reverie.Vec3{Y: 12, Z: 40}, Target: "island",
//			Movement: reverie.MoveOrbit, Easing: "easeInOutSine"},
//	}))
//
// # Subsystems
//
// [Timeline] holds an immutable, contiguous sequence of [Shot] directives;
// the [Director] evaluates it each tick, blending between shots with an
// eased cross-fade so the camera never pops. Movement kinds (orbit, dolly,
// crane, handheld, ...) are closed-form functions of eased shot progress.
//
// [ParticleSystem] and [Flock] own fixed-capacity pools that are reset in
// place, never reallocated; steady-state updates perform no allocations.
// [SpatialGrid] provides the approximate neighbor queries the flock uses.
//
// Motion generators ([OrbitMotion], [SpiralMotion], [FloatMotion],
// [PendulumMotion], [Figure8Motion], [RotationMomentum]) drive ambient
// drift of named scene entities, which shots can track by id.
//
// Integration is deliberately Δt-coupled (semi-implicit Euler with no
// sub-stepping): displacement per tick scales with the host's frame time.
package reverie
