package reverie

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Cinematic field-of-view range, in degrees. Shot fov values are clamped
// here before any interpolation.
const (
	MinFOV     = 20.0
	MaxFOV     = 85.0
	DefaultFOV = 50.0
)

// Smoothing rates (per second) for the exponential smoothing applied to
// every camera output. Results are always smoothed toward the evaluated
// shot values — never snapped — so motion has no visible pops under
// variable frame timing.
const (
	positionSmoothing = 6.0
	lookAtSmoothing   = 8.0
	fovSmoothing      = 3.0
)

// Tracking-shot prediction constants.
const (
	trackingEMAFactor  = 0.3  // exponential moving average factor for target velocity
	trackingLookAhead  = 0.3  // seconds of velocity extrapolation
	ruleOfThirdsOffset = 0.15 // aim offset as a fraction of camera-target distance
)

// Movement handler shape constants.
const (
	dollyDepth          = 0.6           // fraction of the camera-subject distance a dolly travels
	establishDrift      = 0.1           // slow establishing push, same fraction
	flythroughOvershoot = 1.4           // flythrough travels past the subject
	panSweep            = math.Pi / 2   // total horizontal pan angle
	craneRiseFactor     = 0.5           // crane rise as a fraction of subject distance
	closeUpDistance     = 4.0           // camera-subject distance for close-ups
	closeUpDrift        = 0.4           // radians of slow close-up orbit drift
)

// TargetResolver supplies live positions for named scene entities. The
// motion core reads targets through this capability only; it has no
// dependency on any particular rendering engine or scene graph.
type TargetResolver interface {
	// PositionOf reports the current position of the named entity, or
	// ok = false if the name does not resolve.
	PositionOf(id string) (pos Vec3, ok bool)
}

// CameraState is the per-tick camera output consumed by the renderer.
type CameraState struct {
	Position Vec3
	LookAt   Vec3
	// FOV is the field of view in degrees.
	FOV float64
}

// shotTransition holds the active cross-fade between two shots. At most
// one is live; it is discarded when the blend tween finishes.
type shotTransition struct {
	from, to int
	tween    *gween.Tween
	blend    float64
}

// Director is the camera shot sequencer: each tick it locates the active
// shot on the timeline, opens an eased cross-fade whenever the active shot
// changes, evaluates the shot's movement handler, and exponentially
// smooths position, look-at, and fov toward the result.
//
// An empty timeline makes every method a no-op; an unresolvable target
// falls back to the world origin. Nothing here is fatal mid-playback.
type Director struct {
	timeline *Timeline
	resolver TargetResolver

	position Vec3
	lookAt   Vec3
	fov      float64

	activeIndex int
	transition  *shotTransition
	initialized bool

	// Tracking-shot state: last sampled target position and its smoothed
	// velocity estimate.
	trackedID      string
	lastTargetPos  Vec3
	targetVelocity Vec3

	jitter FloatMotion
}

// NewDirector creates a director over the given timeline. resolver may be
// nil, in which case named targets resolve to the world origin.
func NewDirector(tl *Timeline, resolver TargetResolver) *Director {
	return &Director{
		timeline: tl,
		resolver: resolver,
		fov:      DefaultFOV,
		jitter: FloatMotion{Waves: []SineWave{
			{Amplitude: 0.18, Frequency: 1.7, Axis: Vec3{X: 1}},
			{Amplitude: 0.12, Frequency: 2.3, Phase: 1.3, Axis: Vec3{Y: 1}},
			{Amplitude: 0.09, Frequency: 1.1, Phase: 2.1, Axis: Vec3{Z: 1}},
		}},
	}
}

// State returns the current smoothed camera output.
func (d *Director) State() CameraState {
	return CameraState{Position: d.position, LookAt: d.lookAt, FOV: d.fov}
}

// Position returns the current smoothed camera position.
func (d *Director) Position() Vec3 { return d.position }

// LookAt returns the current smoothed look-at point.
func (d *Director) LookAt() Vec3 { return d.lookAt }

// FOV returns the current smoothed field of view in degrees.
func (d *Director) FOV() float64 { return d.fov }

// IsTransitioning reports whether a shot cross-fade is in progress.
func (d *Director) IsTransitioning() bool { return d.transition != nil }

// ActiveShot returns the shot the playback time currently falls in.
func (d *Director) ActiveShot() (Shot, bool) {
	if d.timeline == nil || d.timeline.Len() == 0 || !d.initialized {
		return Shot{}, false
	}
	return d.timeline.Shot(d.activeIndex), true
}

// Update advances the sequencer: dt is the elapsed frame time and now the
// absolute playback time, both in seconds.
func (d *Director) Update(dt, now float64) {
	if d.timeline == nil || d.timeline.Len() == 0 {
		return
	}

	idx, progress := d.timeline.At(now)
	if d.initialized && idx != d.activeIndex {
		dur := d.timeline.Shot(idx).Transition
		if dur <= 0 {
			dur = DefaultTransition
		}
		d.transition = &shotTransition{
			from:  d.activeIndex,
			to:    idx,
			tween: gween.New(0, 1, float32(dur), ease.InOutCubic),
		}
	}
	d.activeIndex = idx

	var pos, look Vec3
	var fov float64
	if tr := d.transition; tr != nil {
		v, done := tr.tween.Update(float32(dt))
		tr.blend = float64(v)
		from := d.timeline.Shot(tr.from)
		to := d.timeline.Shot(tr.to)
		pos, look, fov = d.blendShots(from, to, tr.blend)
		if done {
			d.transition = nil
		}
	} else {
		shot := d.timeline.Shot(idx)
		pos, look = d.applyMovement(shot, shot.ease(progress), dt, now)
		fov = clampFOV(shotFOV(shot))
	}

	if !d.initialized {
		d.position, d.lookAt, d.fov = pos, look, fov
		d.initialized = true
		return
	}
	d.position = d.position.Lerp(pos, smoothingStep(positionSmoothing, dt))
	d.lookAt = d.lookAt.Lerp(look, smoothingStep(lookAtSmoothing, dt))
	d.fov = lerp(d.fov, fov, smoothingStep(fovSmoothing, dt))
}

// blendShots cross-fades two shots: a straight position lerp, independent
// look-at resolution for each endpoint then a lerp, and per-endpoint fov
// clamping before interpolation. blend is already eased.
func (d *Director) blendShots(from, to Shot, blend float64) (pos, look Vec3, fov float64) {
	pos = from.Position.Lerp(to.Position, blend)
	look = d.resolveLook(from).Lerp(d.resolveLook(to), blend)
	fov = lerp(clampFOV(shotFOV(from)), clampFOV(shotFOV(to)), blend)
	return pos, look, fov
}

// resolveLook resolves a shot's aim point: an explicit look-at wins, then a
// named target's live position, then the world origin.
func (d *Director) resolveLook(s Shot) Vec3 {
	if s.LookAt != nil {
		return *s.LookAt
	}
	if s.Target != "" && d.resolver != nil {
		if p, ok := d.resolver.PositionOf(s.Target); ok {
			return p
		}
	}
	return Vec3{}
}

// applyMovement evaluates a shot's movement handler at eased progress p.
// Each handler is a closed-form function of p and the shot's declared
// position and aim.
func (d *Director) applyMovement(shot Shot, p, dt, now float64) (pos, look Vec3) {
	look = d.resolveLook(shot)
	dir := look.Sub(shot.Position)

	switch shot.Movement {
	case MoveStatic:
		pos = shot.Position
	case MoveTracking:
		pos = shot.Position
		look = d.trackAim(shot, look, dt)
	case MoveDollyIn:
		pos = shot.Position.Add(dir.Scale(dollyDepth * p))
	case MovePullBack:
		pos = shot.Position.Add(dir.Scale(dollyDepth * (1 - p)))
	case MoveOrbit:
		pos = orbitAround(shot.Position, look, p)
	case MoveEstablish:
		pos = shot.Position.Add(dir.Scale(establishDrift * p))
	case MoveFlythrough:
		pos = shot.Position.Add(dir.Scale(flythroughOvershoot * p))
	case MovePan:
		pos = shot.Position
		look = pos.Add(dir.rotateY((p - 0.5) * panSweep))
	case MoveCrane:
		pos = shot.Position.Add(Vec3{Y: dir.Length() * craneRiseFactor * p})
	case MoveHandheld:
		pos = shot.Position.Add(d.jitter.OffsetAt(now))
	case MoveCloseUp:
		pos = closeUpPosition(shot.Position, look, p)
	default:
		pos = shot.Position
	}
	return pos, look
}

// orbitAround revolves the camera a full turn around the aim point,
// preserving the declared position's radius and height. p = 0.5 is half a
// revolution from the starting angle.
func orbitAround(position, look Vec3, p float64) Vec3 {
	offset := position.Sub(look)
	radius := math.Hypot(offset.X, offset.Z)
	start := math.Atan2(offset.Z, offset.X)
	sin, cos := math.Sincos(start + p*2*math.Pi)
	return look.Add(Vec3{cos * radius, offset.Y, sin * radius})
}

// closeUpPosition frames the subject from a tight fixed distance, drifting
// slowly around it as the shot progresses.
func closeUpPosition(position, look Vec3, p float64) Vec3 {
	back := position.Sub(look)
	if back.LengthSq() < epsilon*epsilon {
		back = Vec3{Z: 1}
	}
	return look.Add(back.rotateY(p * closeUpDrift).Normalized().Scale(closeUpDistance))
}

// trackAim predicts a moving target: target velocity is estimated with an
// exponential moving average, extrapolated by a fixed look-ahead, and the
// aim point is offset toward a rule-of-thirds composition. Static aims
// (explicit look-at or no target) pass through unchanged.
func (d *Director) trackAim(shot Shot, target Vec3, dt float64) Vec3 {
	if shot.LookAt != nil || shot.Target == "" {
		return target
	}

	if d.trackedID != shot.Target {
		d.trackedID = shot.Target
		d.lastTargetPos = target
		d.targetVelocity = Vec3{}
	} else if dt > epsilon {
		instant := target.Sub(d.lastTargetPos).Scale(1 / dt)
		d.targetVelocity = d.targetVelocity.Lerp(instant, trackingEMAFactor)
		d.lastTargetPos = target
	}

	aim := target.Add(d.targetVelocity.Scale(trackingLookAhead))

	viewDir := aim.Sub(shot.Position)
	dist := viewDir.Length()
	if dist > epsilon {
		right := viewDir.Cross(Vec3{Y: 1}).Normalized()
		aim = aim.Add(right.Scale(dist * ruleOfThirdsOffset))
	}
	return aim
}

// smoothingStep converts a per-second smoothing rate into this tick's lerp
// factor. Frame-rate independent for the smoothing itself.
func smoothingStep(rate, dt float64) float64 {
	return 1 - math.Exp(-rate*dt)
}

// shotFOV returns the shot's declared fov or the default.
func shotFOV(s Shot) float64 {
	if s.FOV <= 0 {
		return DefaultFOV
	}
	return s.FOV
}

// clampFOV clamps a fov to the cinematic range.
func clampFOV(v float64) float64 {
	return clamp(v, MinFOV, MaxFOV)
}
