package reverie

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultTransition is the shot transition duration, in seconds, used when
// a shot declares none (or an unparsable one).
const DefaultTransition = 2.0

// MovementKind selects the closed-form camera behavior for a shot. One
// variant per movement; the director matches them exhaustively.
type MovementKind uint8

const (
	MoveStatic     MovementKind = iota // hold the declared position
	MoveTracking                       // hold position, predictively follow a moving target
	MoveDollyIn                        // push toward the subject
	MovePullBack                       // start pushed in, retreat to the declared position
	MoveOrbit                          // full revolution around the look-at point
	MoveEstablish                      // wide, slow drift toward the subject
	MoveFlythrough                     // travel through and past the subject
	MovePan                            // fixed position, horizontal look sweep
	MoveCrane                          // vertical rise while holding the subject
	MoveHandheld                       // layered sine jitter on the declared position
	MoveCloseUp                        // tight framing with a slow drift around the subject
)

var movementNames = map[string]MovementKind{
	"static":     MoveStatic,
	"tracking":   MoveTracking,
	"dollyin":    MoveDollyIn,
	"pullback":   MovePullBack,
	"orbit":      MoveOrbit,
	"establish":  MoveEstablish,
	"flythrough": MoveFlythrough,
	"pan":        MovePan,
	"crane":      MoveCrane,
	"handheld":   MoveHandheld,
	"closeup":    MoveCloseUp,
}

// ParseMovementKind resolves a movement kind from its scene-description
// name ("dollyIn", "close-up", ...). Lookup is case-insensitive and
// ignores "-" and "_". Unknown names fall back to MoveStatic.
func ParseMovementKind(name string) MovementKind {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, "_", "")
	if k, ok := movementNames[key]; ok {
		return k
	}
	return MoveStatic
}

// String returns the canonical scene-description name.
func (k MovementKind) String() string {
	switch k {
	case MoveStatic:
		return "static"
	case MoveTracking:
		return "tracking"
	case MoveDollyIn:
		return "dollyIn"
	case MovePullBack:
		return "pullBack"
	case MoveOrbit:
		return "orbit"
	case MoveEstablish:
		return "establish"
	case MoveFlythrough:
		return "flythrough"
	case MovePan:
		return "pan"
	case MoveCrane:
		return "crane"
	case MoveHandheld:
		return "handheld"
	case MoveCloseUp:
		return "closeUp"
	default:
		return "static"
	}
}

// Shot is a timed camera directive occupying one interval of the playback
// timeline. Shots are immutable once the Timeline is built.
type Shot struct {
	// Start is the absolute start time in seconds. When every shot after
	// the first leaves Start zero, starts are derived by accumulating
	// durations instead.
	Start    float64
	Duration float64
	// Position is the declared camera position.
	Position Vec3
	// Target names a live scene entity to look at. Takes effect when
	// LookAt is nil; an unresolvable name falls back to the world origin.
	Target string
	// LookAt is an explicit static look-at point, taking precedence over
	// Target.
	LookAt *Vec3
	// FOV is the field of view in degrees; zero means DefaultFOV. Clamped
	// to the cinematic range before use.
	FOV float64
	// Movement selects the per-shot camera behavior.
	Movement MovementKind
	// Easing names the progress remapping curve ("easeInOutSine", ...).
	// Unknown or empty names mean linear.
	Easing string
	// Transition is the blend duration, in seconds, applied when this shot
	// becomes active. Non-positive means DefaultTransition.
	Transition float64

	ease EasingFunc
}

// End returns the shot's derived end time.
func (s Shot) End() float64 {
	return s.Start + s.Duration
}

// ParseSeconds parses a scene-description duration: a bare number or a
// number with a trailing "s". Malformed input falls back to def rather
// than propagating an error or NaN into the tick loop.
func ParseSeconds(s string, def float64) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "s"))
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}

// Timeline is an ordered, contiguous, non-overlapping sequence of shots.
// Built once at scene construction and only re-queried by time.
type Timeline struct {
	shots []Shot
	end   float64
}

// NewTimeline builds a timeline from shots given in either timing schema:
//
//   - explicit per-shot start times, or
//   - cumulative durations (every shot after the first leaves Start zero).
//
// Both forms convert to one canonical representation: shots sorted by
// start, with each start snapped to the previous shot's end so intervals
// are contiguous and never overlap. Shots with non-positive durations get
// a one-second floor.
func NewTimeline(shots []Shot) *Timeline {
	tl := &Timeline{shots: make([]Shot, len(shots))}
	copy(tl.shots, shots)

	explicit := false
	for i := 1; i < len(tl.shots); i++ {
		if tl.shots[i].Start != 0 {
			explicit = true
			break
		}
	}
	if explicit {
		sort.SliceStable(tl.shots, func(i, j int) bool {
			return tl.shots[i].Start < tl.shots[j].Start
		})
	}

	cursor := 0.0
	if len(tl.shots) > 0 {
		cursor = tl.shots[0].Start
	}
	for i := range tl.shots {
		s := &tl.shots[i]
		if s.Duration <= 0 {
			s.Duration = 1
		}
		s.Start = cursor
		cursor = s.End()
		s.ease = EasingByName(s.Easing)
	}
	tl.end = cursor
	return tl
}

// Len returns the number of shots.
func (tl *Timeline) Len() int {
	return len(tl.shots)
}

// End returns the end time of the final shot, or 0 for an empty timeline.
func (tl *Timeline) End() float64 {
	return tl.end
}

// Shot returns the shot at index i.
func (tl *Timeline) Shot(i int) Shot {
	return tl.shots[i]
}

// At locates the shot whose [Start, End) interval contains t and its raw
// (un-eased) progress. Before the first shot it reports the first shot at
// progress 0; past the end it clamps to the last shot at progress 1 — the
// timeline never loops. An empty timeline reports index -1.
func (tl *Timeline) At(t float64) (index int, progress float64) {
	if len(tl.shots) == 0 {
		return -1, 0
	}
	if t < tl.shots[0].Start {
		return 0, 0
	}
	if t >= tl.end {
		return len(tl.shots) - 1, 1
	}
	// Shots are contiguous, so binary search on start times.
	i := sort.Search(len(tl.shots), func(i int) bool {
		return tl.shots[i].End() > t
	})
	s := tl.shots[i]
	return i, clamp01((t - s.Start) / s.Duration)
}
