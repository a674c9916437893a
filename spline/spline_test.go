package spline

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) <= epsilon*math.Max(1, math.Abs(b)) }

// bezier evaluates the cubic Bezier (p0, p1, p2, p3) at t
func bezier(p0, p1, p2, p3, t float64) float64 {
	u := 1 - t
	return u*u*u*p0 + 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t*p3
}

// first and second derivatives at t = 0 and t = 1
func derivatives(p0, p1, p2, p3 float64) (d0, d1, dd0, dd1 float64) {
	d0 = 3 * (p1 - p0)
	d1 = 3 * (p3 - p2)
	dd0 = 6 * (p0 - 2*p1 + p2)
	dd1 = 6 * (p1 - 2*p2 + p3)
	return
}

func TestInsufficientPoints(t *testing.T) {
	for _, values := range [][]float64{nil, {}, {4}} {
		_, err := Fit(values)
		if !errors.Is(err, ErrInsufficientPoints) {
			t.Errorf("expected ErrInsufficientPoints for %v, got %v", values, err)
		}
	}
}

func TestTwoPoints(t *testing.T) {
	cp, err := Fit([]float64{3, 12})
	if err != nil {
		t.Fatal(err)
	}
	if cp.Len() != 1 {
		t.Fatalf("expected one segment, got %d", cp.Len())
	}
	if !almostEqual(cp.P1[0], 6) || !almostEqual(cp.P2[0], 9) {
		t.Errorf("expected straight segment controls 6, 9, got %v, %v", cp.P1[0], cp.P2[0])
	}

	// a constant coordinate keeps its controls on the segment
	flat, _ := Fit([]float64{50, 50})
	if flat.P1[0] != 50 || flat.P2[0] != 50 {
		t.Errorf("expected flat controls, got %v, %v", flat.P1[0], flat.P2[0])
	}

	again, _ := Fit([]float64{3, 12})
	if again.P1[0] != cp.P1[0] || again.P2[0] != cp.P2[0] {
		t.Error("fit is not deterministic")
	}
}

func TestLengths(t *testing.T) {
	for n := 2; n < 30; n++ {
		values := make([]float64, n)
		for i := range values {
			values[i] = math.Sin(float64(i))
		}
		cp, err := Fit(values)
		if err != nil {
			t.Fatal(err)
		}
		if len(cp.P1) != n-1 || len(cp.P2) != n-1 {
			t.Errorf("for %d values, expected %d controls, got %d and %d", n, n-1, len(cp.P1), len(cp.P2))
		}
	}
}

func TestCollinear(t *testing.T) {
	// points on the line y = 0.5 x - 7, irregularly spaced
	xs := []float64{0, 13, 40, 41, 90, 160, 161.5, 200, 260, 800}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 0.5*x - 7
	}
	cx, err := Fit(xs)
	if err != nil {
		t.Fatal(err)
	}
	cy, err := Fit(ys)
	if err != nil {
		t.Fatal(err)
	}
	for i := range cx.P1 {
		if !almostEqual(cy.P1[i], 0.5*cx.P1[i]-7) {
			t.Errorf("control point 1 of segment %d is off the line: (%v, %v)", i, cx.P1[i], cy.P1[i])
		}
		if !almostEqual(cy.P2[i], 0.5*cx.P2[i]-7) {
			t.Errorf("control point 2 of segment %d is off the line: (%v, %v)", i, cx.P2[i], cy.P2[i])
		}
	}
}

func TestEvenlySpaced(t *testing.T) {
	values := []float64{2, 5, 8, 11, 14, 17}
	cp, err := Fit(values)
	if err != nil {
		t.Fatal(err)
	}
	for i := range cp.P1 {
		if !almostEqual(cp.P1[i], values[i]+1) || !almostEqual(cp.P2[i], values[i]+2) {
			t.Errorf("segment %d: expected thirds, got %v, %v", i, cp.P1[i], cp.P2[i])
		}
	}
}

func TestContinuity(t *testing.T) {
	values := []float64{0, 60, 25, 90, 10, 45, 45, 100}
	cp, err := Fit(values)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < cp.Len(); i++ {
		if got := bezier(values[i], cp.P1[i], cp.P2[i], values[i+1], 0); !almostEqual(got, values[i]) {
			t.Errorf("segment %d does not start at its anchor", i)
		}
		if got := bezier(values[i], cp.P1[i], cp.P2[i], values[i+1], 1); !almostEqual(got, values[i+1]) {
			t.Errorf("segment %d does not end at its anchor", i)
		}
	}
	for i := 1; i < cp.Len(); i++ {
		_, dEnd, _, ddEnd := derivatives(values[i-1], cp.P1[i-1], cp.P2[i-1], values[i])
		dStart, _, ddStart, _ := derivatives(values[i], cp.P1[i], cp.P2[i], values[i+1])
		if !almostEqual(dEnd, dStart) {
			t.Errorf("first derivative is discontinuous at anchor %d: %v != %v", i, dEnd, dStart)
		}
		if !almostEqual(ddEnd, ddStart) {
			t.Errorf("second derivative is discontinuous at anchor %d: %v != %v", i, ddEnd, ddStart)
		}
	}
}

func TestNaturalStart(t *testing.T) {
	values := []float64{10, 80, 30, 55}
	cp, err := Fit(values)
	if err != nil {
		t.Fatal(err)
	}
	_, _, dd0, _ := derivatives(values[0], cp.P1[0], cp.P2[0], values[1])
	if !almostEqual(dd0, 0) {
		t.Errorf("expected zero curvature at the first anchor, got %v", dd0)
	}
}
