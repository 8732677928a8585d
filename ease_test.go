package reverie

import (
	"math"
	"testing"
)

// allEasings pairs every exported family with its canonical name.
var allEasings = []struct {
	name string
	fn   EasingFunc
}{
	{"linear", Linear},
	{"easeInQuad", InQuad}, {"easeOutQuad", OutQuad}, {"easeInOutQuad", InOutQuad},
	{"easeInCubic", InCubic}, {"easeOutCubic", OutCubic}, {"easeInOutCubic", InOutCubic},
	{"easeInQuart", InQuart}, {"easeOutQuart", OutQuart}, {"easeInOutQuart", InOutQuart},
	{"easeInQuint", InQuint}, {"easeOutQuint", OutQuint}, {"easeInOutQuint", InOutQuint},
	{"easeInSine", InSine}, {"easeOutSine", OutSine}, {"easeInOutSine", InOutSine},
	{"easeInExpo", InExpo}, {"easeOutExpo", OutExpo}, {"easeInOutExpo", InOutExpo},
	{"easeInCirc", InCirc}, {"easeOutCirc", OutCirc}, {"easeInOutCirc", InOutCirc},
	{"easeInBack", InBack}, {"easeOutBack", OutBack}, {"easeInOutBack", InOutBack},
	{"easeInElastic", InElastic}, {"easeOutElastic", OutElastic}, {"easeInOutElastic", InOutElastic},
	{"easeInBounce", InBounce}, {"easeOutBounce", OutBounce}, {"easeInOutBounce", InOutBounce},
}

func TestEasingEndpoints(t *testing.T) {
	for _, e := range allEasings {
		t.Run(e.name, func(t *testing.T) {
			assertNearEps(t, "f(0)", e.fn(0), 0, 1e-9)
			assertNearEps(t, "f(1)", e.fn(1), 1, 1e-9)
		})
	}
}

func TestEasingClampsInput(t *testing.T) {
	for _, e := range allEasings {
		assertNearEps(t, e.name+"(-5)", e.fn(-5), 0, 1e-9)
		assertNearEps(t, e.name+"(5)", e.fn(5), 1, 1e-9)
	}
}

func TestEasingStaysFinite(t *testing.T) {
	for _, e := range allEasings {
		for i := 0; i <= 100; i++ {
			v := e.fn(float64(i) / 100)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("%s(%v) = %v", e.name, float64(i)/100, v)
			}
		}
	}
}

func TestInOutCubicMidpoint(t *testing.T) {
	assertNear(t, "InOutCubic(0.5)", InOutCubic(0.5), 0.5)
	assertNear(t, "InOutCubic(0.25)", InOutCubic(0.25), 4*0.25*0.25*0.25)
}

func TestOutQuadMatchesFormula(t *testing.T) {
	for _, tt := range []float64{0, 0.1, 0.3, 0.7, 1} {
		assertNear(t, "OutQuad", OutQuad(tt), tt*(2-tt))
	}
}

func TestBackOvershoots(t *testing.T) {
	// OutBack must exceed 1 somewhere in the middle.
	peak := 0.0
	for i := 1; i < 100; i++ {
		if v := OutBack(float64(i) / 100); v > peak {
			peak = v
		}
	}
	if peak <= 1 {
		t.Errorf("OutBack never overshoots: peak = %v", peak)
	}
}

func TestBounceWithinUnit(t *testing.T) {
	for i := 0; i <= 100; i++ {
		v := OutBounce(float64(i) / 100)
		if v < 0 || v > 1+1e-9 {
			t.Errorf("OutBounce(%v) = %v, outside [0, 1]", float64(i)/100, v)
		}
	}
}

// --- CubicBezier ---

func TestCubicBezierEndpoints(t *testing.T) {
	fn := CubicBezier(0.25, 0.1, 0.25, 1)
	assertNearEps(t, "f(0)", fn(0), 0, 1e-6)
	assertNearEps(t, "f(1)", fn(1), 1, 1e-6)
}

func TestCubicBezierLinearControlPoints(t *testing.T) {
	// Control points on the diagonal reproduce the identity.
	fn := CubicBezier(1.0/3, 1.0/3, 2.0/3, 2.0/3)
	for _, tt := range []float64{0, 0.2, 0.5, 0.8, 1} {
		assertNearEps(t, "identity bezier", fn(tt), tt, 1e-5)
	}
}

func TestCubicBezierMonotonicEase(t *testing.T) {
	fn := CubicBezier(0.42, 0, 0.58, 1) // CSS "ease-in-out"
	prev := -1.0
	for i := 0; i <= 50; i++ {
		v := fn(float64(i) / 50)
		if v < prev-1e-9 {
			t.Fatalf("bezier not monotonic at %v: %v < %v", float64(i)/50, v, prev)
		}
		prev = v
	}
}

func TestCubicBezierDegenerateSlope(t *testing.T) {
	// Both control handles flat: Newton's slope collapses; must still
	// return finite values.
	fn := CubicBezier(0, 0, 1, 1)
	for i := 0; i <= 20; i++ {
		v := fn(float64(i) / 20)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("degenerate bezier produced %v", v)
		}
	}
}

// --- EasingByName ---

func TestEasingByName(t *testing.T) {
	tests := []struct {
		name string
		want EasingFunc
	}{
		{"linear", Linear},
		{"easeInOutCubic", InOutCubic},
		{"EASEINOUTCUBIC", InOutCubic},
		{"ease-in-out-cubic", InOutCubic},
		{"ease_out_bounce", OutBounce},
		{"easeOutElastic", OutElastic},
	}
	for _, tt := range tests {
		fn := EasingByName(tt.name)
		// Compare by sampled values; func identity isn't comparable.
		for _, x := range []float64{0.2, 0.5, 0.9} {
			assertNear(t, tt.name, fn(x), tt.want(x))
		}
	}
}

func TestEasingByNameUnknownFallsBack(t *testing.T) {
	fn := EasingByName("definitely-not-an-easing")
	for _, x := range []float64{0, 0.3, 1} {
		assertNear(t, "fallback linear", fn(x), x)
	}
	fn = EasingByName("")
	assertNear(t, "empty name", fn(0.7), 0.7)
}
