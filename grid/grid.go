// Samples the jittered grid of anchor points
// from which the wave layers are drawn.
package grid

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/benoitkugler/wavery/geom"
)

// ErrInvalidParams is returned for a grid which can't be sampled.
var ErrInvalidParams = errors.New("invalid grid parameters")

// Source provides uniform random values in [0, 1).
// *rand.Rand implements it, but is not safe for concurrent use.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource draws from the process-wide generator of math/rand,
// which is safe for concurrent use.
var DefaultSource Source = globalSource{}

// Upper bounds on the grid size, keeping a scene to a few thousand anchors.
const (
	MaxSegmentCount = 100
	MaxLayerCount   = 50
)

// Layer is one horizontal row of anchors, from x = 0 to x = width.
type Layer []geom.Point

// Params describes the grid to sample.
type Params struct {
	Width, Height float64
	SegmentCount  int     // number of cells per layer
	LayerCount    int     // number of horizontal bands
	Variance      float64 // jitter amplitude, as a fraction of the cell size
}

// Validate checks that the grid is well defined.
func (p Params) Validate() error {
	if !(p.Width > 0) || math.IsInf(p.Width, 0) {
		return fmt.Errorf("%w: width must be positive (got %g)", ErrInvalidParams, p.Width)
	}
	if !(p.Height > 0) || math.IsInf(p.Height, 0) {
		return fmt.Errorf("%w: height must be positive (got %g)", ErrInvalidParams, p.Height)
	}
	if p.SegmentCount < 2 || p.SegmentCount > MaxSegmentCount {
		return fmt.Errorf("%w: segment count must be in [2, %d] (got %d)", ErrInvalidParams, MaxSegmentCount, p.SegmentCount)
	}
	if p.LayerCount < 1 || p.LayerCount > MaxLayerCount {
		return fmt.Errorf("%w: layer count must be in [1, %d] (got %d)", ErrInvalidParams, MaxLayerCount, p.LayerCount)
	}
	if !(p.Variance >= 0) || math.IsInf(p.Variance, 0) {
		return fmt.Errorf("%w: variance must be non negative (got %g)", ErrInvalidParams, p.Variance)
	}
	// the sampling loops only advance with a non zero step
	if cellWidth, cellHeight := p.CellSize(); !(cellWidth > 0 && cellHeight > 0) {
		return fmt.Errorf("%w: cells are too small (%g x %g)", ErrInvalidParams, p.Width, p.Height)
	}
	return nil
}

// CellSize returns the nominal grid spacing.
func (p Params) CellSize() (cellWidth, cellHeight float64) {
	return p.Width / float64(p.SegmentCount), p.Height / float64(p.LayerCount)
}

// MoveLimits returns the total jitter range on each axis :
// a point may move by half of it on each side of its nominal position.
func (p Params) MoveLimits() (moveLimitX, moveLimitY float64) {
	cellWidth, cellHeight := p.CellSize()
	return cellWidth * p.Variance * 0.5, cellHeight * p.Variance
}

// Sample returns the layers, from top to bottom.
// The first and last points of each layer are pinned to the left and right
// edges, on the unperturbed grid line; interior points are jittered
// independently on both axes and floored to integer pixels.
//
// Both loops stop strictly before the canvas border, so that when the height
// is a multiple of the cell height, the band at y = height is not emitted :
// the bottom edge is closed by the corners of the paths.
func Sample(p Params, src Source) ([]Layer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = DefaultSource
	}

	cellWidth, cellHeight := p.CellSize()
	moveLimitX, moveLimitY := p.MoveLimits()

	var layers []Layer
	for y := cellHeight; y < p.Height; y += cellHeight {
		layer := make(Layer, 0, p.SegmentCount+1)
		layer = append(layer, geom.Pt(0, math.Floor(y)))
		for x := cellWidth; x < p.Width; x += cellWidth {
			varietalY := y - moveLimitY/2 + src.Float64()*moveLimitY
			varietalX := x - moveLimitX/2 + src.Float64()*moveLimitX
			layer = append(layer, geom.Pt(math.Floor(varietalX), math.Floor(varietalY)))
		}
		layer = append(layer, geom.Pt(p.Width, math.Floor(y)))
		layers = append(layers, layer)
	}
	return layers, nil
}

// Xs returns the abscissas of the layer anchors.
func (l Layer) Xs() []float64 {
	out := make([]float64, len(l))
	for i, pt := range l {
		out[i] = pt.X
	}
	return out
}

// Ys returns the ordinates of the layer anchors.
func (l Layer) Ys() []float64 {
	out := make([]float64, len(l))
	for i, pt := range l {
		out[i] = pt.Y
	}
	return out
}
