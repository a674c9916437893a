// Provides the structured description of a generated image,
// prior to serialization or rasterization.
// A Scene can be consumed by painting drivers,
// see for example wavery/svgraster or wavery/svgpdf .
package scene

import (
	"fmt"

	"github.com/benoitkugler/wavery/wavepath"
)

// Kind identifies the type of an element.
type Kind uint8

const (
	KindRect Kind = iota
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindPath:
		return "path"
	default:
		return fmt.Sprintf("<unknown Kind %d>", k)
	}
}

// Style holds the painting attributes of an element.
// Colors are tokens accepted by colorscale.ParseColor ;
// "none" disables the fill or the stroke.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Element is one drawable item of a Scene.
type Element interface {
	Kind() Kind
	// Outline returns the shape of the element, as a path.
	Outline() wavepath.Path
	// Paint returns the painting attributes of the element.
	Paint() Style
}

// Rect is an axis aligned rectangle, used for the background.
type Rect struct {
	X, Y, Width, Height float64
	Style               Style
}

func (Rect) Kind() Kind { return KindRect }

func (r Rect) Outline() wavepath.Path {
	return wavepath.RectPath(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

func (r Rect) Paint() Style { return r.Style }

// Path is a closed wave layer.
type Path struct {
	Path  wavepath.Path
	Style Style
}

func (Path) Kind() Kind { return KindPath }

func (p Path) Outline() wavepath.Path { return p.Path }

func (p Path) Paint() Style { return p.Style }

// Scene is an ordered list of elements, painted
// in order on a canvas of the given size.
type Scene struct {
	Width, Height float64
	Elements      []Element
}

// Paths returns the wave layers of the scene, in drawing order.
func (s *Scene) Paths() []Path {
	var out []Path
	for _, e := range s.Elements {
		if p, ok := e.(Path); ok {
			out = append(out, p)
		}
	}
	return out
}

// Background returns the first element if it is a rectangle.
func (s *Scene) Background() (Rect, bool) {
	if len(s.Elements) == 0 {
		return Rect{}, false
	}
	r, ok := s.Elements[0].(Rect)
	return r, ok
}
