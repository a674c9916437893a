// Computes the control points of the smooth cubic Bezier
// spline threading through a sequence of anchors.
//
// The fit is one dimensional: it is run once per axis, and
// the results are zipped back together by the caller.
package spline

import (
	"errors"
	"fmt"
)

// ErrInsufficientPoints is returned when less than two anchors are given.
var ErrInsufficientPoints = errors.New("at least two points are required to define a curve")

// ControlPoints stores, for N anchors, the N-1 pairs of
// control values : the segment from anchor i to anchor i+1
// is the cubic Bezier (K[i], P1[i], P2[i], K[i+1]).
type ControlPoints struct {
	P1, P2 []float64
}

// Len returns the number of segments.
func (cp ControlPoints) Len() int { return len(cp.P1) }

// Fit computes the control values of the natural cubic spline
// going through `values`, so that the first and second derivatives are
// continuous at every interior anchor.
// It runs in O(N) time, using the Thomas algorithm on the tridiagonal system.
func Fit(values []float64) (ControlPoints, error) {
	if len(values) < 2 {
		return ControlPoints{}, fmt.Errorf("%w (got %d)", ErrInsufficientPoints, len(values))
	}
	n := len(values) - 1 // number of segments

	if n == 1 { // straight segment, the system below would be over-determined
		d := values[1] - values[0]
		return ControlPoints{
			P1: []float64{values[0] + d/3},
			P2: []float64{values[0] + 2*d/3},
		}, nil
	}

	// a, b, c are the sub, main and super diagonals, r the right hand side
	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	r := make([]float64, n)

	// left most segment
	a[0], b[0], c[0] = 0, 2, 1
	r[0] = values[0] + 2*values[1]

	// internal segments
	for i := 1; i < n-1; i++ {
		a[i], b[i], c[i] = 1, 4, 1
		r[i] = 4*values[i] + 2*values[i+1]
	}

	// right most segment
	a[n-1], b[n-1], c[n-1] = 2, 7, 0
	r[n-1] = 8*values[n-1] + values[n]

	// forward elimination
	for i := 1; i < n; i++ {
		m := a[i] / b[i-1]
		b[i] -= m * c[i-1]
		r[i] -= m * r[i-1]
	}

	// back substitution
	p1 := make([]float64, n)
	p1[n-1] = r[n-1] / b[n-1]
	for i := n - 2; i >= 0; i-- {
		p1[i] = (r[i] - c[i]*p1[i+1]) / b[i]
	}

	p2 := make([]float64, n)
	for i := 0; i < n-1; i++ {
		p2[i] = 2*values[i+1] - p1[i+1]
	}
	// there is no p1[n] : use the last anchor instead
	p2[n-1] = 0.5 * (values[n] + p1[n-1])

	return ControlPoints{P1: p1, P2: p2}, nil
}
