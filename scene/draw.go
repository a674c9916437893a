package scene

import (
	"fmt"
	"image/color"

	"github.com/benoitkugler/wavery/colorscale"
	"github.com/benoitkugler/wavery/wavepath"
	"golang.org/x/image/math/fixed"
)

// Given a scene, implements how to draw it on screen.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG knowledge.
type Drawer interface {
	wavepath.Drawer

	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// SetColor sets the color for the current path
	SetColor(c color.Color)

	// Draw fills or strokes the accumulated path using the current settings
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

// StrokeOptions parametrizes the stroking of a path.
// Joins are always rounded, and caps are not needed for closed paths.
type StrokeOptions struct {
	LineWidth fixed.Int26_6
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the beginning of every element.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, the exact same draw operations
	// are performed on the Filler first and then on the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// Draw paints the elements of the scene, in order, into the driver `d`.
// It fails if an element uses an invalid color; nothing is drawn in this case.
func (s *Scene) Draw(d Driver) error {
	type painting struct {
		outline      wavepath.Path
		fill, stroke color.Color
		width        float64
	}
	paintings := make([]painting, len(s.Elements))
	for i, e := range s.Elements {
		style := e.Paint()
		fill, err := colorscale.ParseColor(style.Fill)
		if err != nil {
			return fmt.Errorf("element %d (%s): fill: %w", i, e.Kind(), err)
		}
		stroke, err := colorscale.ParseColor(style.Stroke)
		if err != nil {
			return fmt.Errorf("element %d (%s): stroke: %w", i, e.Kind(), err)
		}
		if style.StrokeWidth <= 0 { // zero width disables the stroke
			stroke = nil
		}
		paintings[i] = painting{e.Outline(), fill, stroke, style.StrokeWidth}
	}

	for _, p := range paintings {
		filler, stroker := d.SetupDrawers(p.fill != nil, p.stroke != nil)
		if filler != nil { // nil color disable filling
			filler.Clear()
			filler.SetWinding(true)
			p.outline.DrawTo(filler)
			filler.SetColor(p.fill)
			filler.Draw()
		}

		if stroker != nil { // nil color disable lining
			stroker.Clear()
			stroker.SetStrokeOptions(StrokeOptions{LineWidth: fixed.Int26_6(p.width * 64)})
			p.outline.DrawTo(stroker)
			stroker.SetColor(p.stroke)
			stroker.Draw()
		}
	}
	return nil
}
