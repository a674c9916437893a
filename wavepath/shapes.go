package wavepath

import (
	"fmt"

	"github.com/benoitkugler/wavery/geom"
	"github.com/benoitkugler/wavery/grid"
	"github.com/benoitkugler/wavery/spline"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// RectPath returns the closed path of the given rectangle.
func RectPath(minX, minY, maxX, maxY float64) Path {
	var p Path
	p.Start(geom.Pt(minX, minY))
	p.Line(geom.Pt(maxX, minY))
	p.Line(geom.Pt(maxX, maxY))
	p.Line(geom.Pt(minX, maxY))
	p.Stop(true)
	return p
}

// Compose builds the closed outline of a wave layer : it starts at
// `left`, joins the first anchor with a straight cubic, follows the
// smooth spline through every anchor, joins `right` with a straight cubic
// and closes the shape.
// Pinning both ends to the corners seals the bottom edge whatever the jitter.
func Compose(layer grid.Layer, left, right geom.Point) (Path, error) {
	// both fits are driven by the same anchors, so that
	// their results may be zipped index by index
	xs, ys := layer.Xs(), layer.Ys()
	cx, err := spline.Fit(xs)
	if err != nil {
		return nil, fmt.Errorf("fitting layer abscissas: %w", err)
	}
	cy, err := spline.Fit(ys)
	if err != nil {
		return nil, fmt.Errorf("fitting layer ordinates: %w", err)
	}

	first, last := layer[0], layer[len(layer)-1]

	p := make(Path, 0, len(layer)+3)
	p.Start(left)
	p.CubeBezier(left, first, first)
	for i := 0; i < len(layer)-1; i++ {
		p.CubeBezier(geom.Pt(cx.P1[i], cy.P1[i]), geom.Pt(cx.P2[i], cy.P2[i]), layer[i+1])
	}
	p.CubeBezier(last, right, right)
	p.Stop(true)
	return p, nil
}
