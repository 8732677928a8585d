package reverie

import (
	"math"
	"strings"
)

// EasingFunc remaps normalized progress. Input is clamped to [0, 1];
// every family satisfies f(0) = 0 and f(1) = 1 (back and elastic overshoot
// in between).
type EasingFunc func(t float64) float64

// Back-easing overshoot and elastic period constants (Penner's values).
const (
	backOvershoot   = 1.70158
	backOvershootIO = backOvershoot * 1.525
	elasticPeriod   = (2 * math.Pi) / 3
	elasticPeriodIO = (2 * math.Pi) / 4.5
)

// Linear returns t unchanged (after clamping).
func Linear(t float64) float64 { return clamp01(t) }

func InQuad(t float64) float64 {
	t = clamp01(t)
	return t * t
}

func OutQuad(t float64) float64 {
	t = clamp01(t)
	return t * (2 - t)
}

func InOutQuad(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func InCubic(t float64) float64 {
	t = clamp01(t)
	return t * t * t
}

func OutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

func InOutCubic(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func InQuart(t float64) float64 {
	t = clamp01(t)
	return t * t * t * t
}

func OutQuart(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 4)
}

func InOutQuart(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

func InQuint(t float64) float64 {
	t = clamp01(t)
	return t * t * t * t * t
}

func OutQuint(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Pow(1-t, 5)
}

func InOutQuint(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 5)/2
}

func InSine(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Cos(t*math.Pi/2)
}

func OutSine(t float64) float64 {
	t = clamp01(t)
	return math.Sin(t * math.Pi / 2)
}

func InOutSine(t float64) float64 {
	t = clamp01(t)
	return -(math.Cos(math.Pi*t) - 1) / 2
}

func InExpo(t float64) float64 {
	t = clamp01(t)
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}

func OutExpo(t float64) float64 {
	t = clamp01(t)
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func InOutExpo(t float64) float64 {
	t = clamp01(t)
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case t < 0.5:
		return math.Pow(2, 20*t-10) / 2
	default:
		return (2 - math.Pow(2, -20*t+10)) / 2
	}
}

func InCirc(t float64) float64 {
	t = clamp01(t)
	return 1 - math.Sqrt(1-t*t)
}

func OutCirc(t float64) float64 {
	t = clamp01(t)
	u := t - 1
	return math.Sqrt(1 - u*u)
}

func InOutCirc(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return (1 - math.Sqrt(1-4*t*t)) / 2
	}
	u := -2*t + 2
	return (math.Sqrt(1-u*u) + 1) / 2
}

func InBack(t float64) float64 {
	t = clamp01(t)
	c3 := backOvershoot + 1
	return c3*t*t*t - backOvershoot*t*t
}

func OutBack(t float64) float64 {
	t = clamp01(t)
	c3 := backOvershoot + 1
	u := t - 1
	return 1 + c3*u*u*u + backOvershoot*u*u
}

func InOutBack(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return (4 * t * t * ((backOvershootIO+1)*2*t - backOvershootIO)) / 2
	}
	u := 2*t - 2
	return (u*u*((backOvershootIO+1)*u+backOvershootIO) + 2) / 2
}

func InElastic(t float64) float64 {
	t = clamp01(t)
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	return -math.Pow(2, 10*t-10) * math.Sin((t*10-10.75)*elasticPeriod)
}

func OutElastic(t float64) float64 {
	t = clamp01(t)
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*elasticPeriod) + 1
}

func InOutElastic(t float64) float64 {
	t = clamp01(t)
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case t < 0.5:
		return -(math.Pow(2, 20*t-10) * math.Sin((20*t-11.125)*elasticPeriodIO)) / 2
	default:
		return (math.Pow(2, -20*t+10)*math.Sin((20*t-11.125)*elasticPeriodIO))/2 + 1
	}
}

func OutBounce(t float64) float64 {
	t = clamp01(t)
	const n1 = 7.5625
	const d1 = 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

func InBounce(t float64) float64 {
	return 1 - OutBounce(1-clamp01(t))
}

func InOutBounce(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return (1 - OutBounce(1-2*t)) / 2
	}
	return (1 + OutBounce(2*t-1)) / 2
}

// CubicBezier returns an easing function for the curve through (0,0),
// (x1,y1), (x2,y2), (1,1) — the same parameterization as CSS
// cubic-bezier(). The parametric x(u) = t equation is solved with eight
// Newton-Raphson iterations; a degenerate (near-flat) slope exits early
// with the best estimate so far.
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	return func(t float64) float64 {
		t = clamp01(t)
		u := t // t is a good first guess for well-behaved curves
		for i := 0; i < 8; i++ {
			x := bezierAxis(u, x1, x2) - t
			if math.Abs(x) < epsilon {
				break
			}
			slope := bezierSlope(u, x1, x2)
			if math.Abs(slope) < epsilon {
				break
			}
			u -= x / slope
			u = clamp01(u)
		}
		return bezierAxis(u, y1, y2)
	}
}

// bezierAxis evaluates one axis of the cubic bezier with endpoints 0 and 1.
func bezierAxis(u, p1, p2 float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
}

// bezierSlope evaluates the derivative of bezierAxis with respect to u.
func bezierSlope(u, p1, p2 float64) float64 {
	inv := 1 - u
	return 3*inv*inv*p1 + 6*inv*u*(p2-p1) + 3*u*u*(1-p2)
}

// easings maps canonical lowercased names (separators stripped) to functions.
var easings = map[string]EasingFunc{
	"linear":           Linear,
	"easeinquad":       InQuad,
	"easeoutquad":      OutQuad,
	"easeinoutquad":    InOutQuad,
	"easeincubic":      InCubic,
	"easeoutcubic":     OutCubic,
	"easeinoutcubic":   InOutCubic,
	"easeinquart":      InQuart,
	"easeoutquart":     OutQuart,
	"easeinoutquart":   InOutQuart,
	"easeinquint":      InQuint,
	"easeoutquint":     OutQuint,
	"easeinoutquint":   InOutQuint,
	"easeinsine":       InSine,
	"easeoutsine":      OutSine,
	"easeinoutsine":    InOutSine,
	"easeinexpo":       InExpo,
	"easeoutexpo":      OutExpo,
	"easeinoutexpo":    InOutExpo,
	"easeincirc":       InCirc,
	"easeoutcirc":      OutCirc,
	"easeinoutcirc":    InOutCirc,
	"easeinback":       InBack,
	"easeoutback":      OutBack,
	"easeinoutback":    InOutBack,
	"easeinelastic":    InElastic,
	"easeoutelastic":   OutElastic,
	"easeinoutelastic": InOutElastic,
	"easeinbounce":     InBounce,
	"easeoutbounce":    OutBounce,
	"easeinoutbounce":  InOutBounce,
}

// EasingByName resolves an easing from its scene-description name, e.g.
// "easeInOutCubic", "ease-out-bounce", or "linear". Lookup is
// case-insensitive and ignores "-" and "_". Unknown names resolve to
// Linear; a malformed scene description must not break playback.
func EasingByName(name string) EasingFunc {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, "_", "")
	if fn, ok := easings[key]; ok {
		return fn
	}
	return Linear
}
