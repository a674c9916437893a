package wavepath

import (
	"math"

	"github.com/benoitkugler/wavery/geom"
)

// compute the exact bounding box of a path,
// taking the curve extrema into account

// cubic polynomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// derivative of bezierSpline, as at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func cubicBounds(p0, p1, p2, p3 geom.Point) geom.Rect {
	out := geom.EmptyRect().Extend(p0).Extend(p3)

	aX, bX, cX := cubicDerivative(p0.X, p1.X, p2.X, p3.X)
	aY, bY, cY := cubicDerivative(p0.Y, p1.Y, p2.Y, p3.Y)
	for _, t := range append(quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)...) {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		out = out.Extend(geom.Pt(
			bezierSpline(p0.X, p1.X, p2.X, p3.X, t),
			bezierSpline(p0.Y, p1.Y, p2.Y, p3.Y, t),
		))
	}
	return out
}

// Bounds returns the smallest rectangle containing the path.
// An empty path yields an empty rectangle (see geom.Rect.IsEmpty).
func (p Path) Bounds() geom.Rect {
	out := geom.EmptyRect()
	var current geom.Point
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current = geom.Point(op)
			out = out.Extend(current)
		case LineTo:
			current = geom.Point(op)
			out = out.Extend(current)
		case CubicTo:
			out = out.Union(cubicBounds(current, op[0], op[1], op[2]))
			current = op[2]
		}
	}
	return out
}
