// Implements an abstract representation of
// the closed wave outlines, which can then be serialized
// as SVG path data or consumed by painting drivers.
package wavepath

import (
	"strconv"
	"strings"

	"github.com/benoitkugler/wavery/geom"
	"golang.org/x/image/math/fixed"
)

// Drawer knows how to do the actual draw operations,
// but doesn't need any SVG knowledge.
type Drawer interface {
	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line adds a line from the current point to `b`
	Line(b fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Stop closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)
}

// Operation groups the different path commands
type Operation interface {
	// add itself on the drawer `d`
	drawTo(d Drawer)
	// returns the SVG path data for the operation
	svg(b *strings.Builder)
}

type MoveTo geom.Point

type LineTo geom.Point

// CubicTo stores the two control points and the end point.
type CubicTo [3]geom.Point

type Close struct{}

func (op MoveTo) drawTo(d Drawer) {
	d.Stop(false) // implicit close if currently in path.
	d.Start(geom.ToFixed(geom.Point(op)))
}

func (op LineTo) drawTo(d Drawer) { d.Line(geom.ToFixed(geom.Point(op))) }

func (op CubicTo) drawTo(d Drawer) {
	d.CubeBezier(geom.ToFixed(op[0]), geom.ToFixed(op[1]), geom.ToFixed(op[2]))
}

func (Close) drawTo(d Drawer) { d.Stop(true) }

func (op MoveTo) svg(b *strings.Builder) {
	b.WriteString("M ")
	writePoint(b, geom.Point(op))
}

func (op LineTo) svg(b *strings.Builder) {
	b.WriteString("L ")
	writePoint(b, geom.Point(op))
}

func (op CubicTo) svg(b *strings.Builder) {
	b.WriteString("C ")
	writePoint(b, op[0])
	b.WriteByte(' ')
	writePoint(b, op[1])
	b.WriteByte(' ')
	writePoint(b, op[2])
}

func (Close) svg(b *strings.Builder) { b.WriteByte('Z') }

// FormatNumber returns the shortest representation of `v`
// which parses back to the same value.
func FormatNumber(v float64) string {
	if v == 0 { // avoid "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writePoint(b *strings.Builder, p geom.Point) {
	b.WriteString(FormatNumber(p.X))
	b.WriteByte(',')
	b.WriteString(FormatNumber(p.Y))
}

// Path describes a sequence of basic SVG operations.
type Path []Operation

// ToSVGPath returns the path data, as used in the `d` attribute,
// with absolute commands and comma separated coordinates :
// "M 0,600 C 0,600 0,60 0,60 ... Z"
func (p Path) ToSVGPath() string {
	var b strings.Builder
	for i, op := range p {
		if i != 0 {
			b.WriteByte(' ')
		}
		op.svg(&b)
	}
	return b.String()
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// DrawTo sends the operations of the path to `d`,
// ending with an implicit (non closing) stop.
func (p Path) DrawTo(d Drawer) {
	for _, op := range p {
		op.drawTo(d)
	}
	d.Stop(false)
}

// Start starts a new curve at the given point.
func (p *Path) Start(a geom.Point) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b geom.Point) {
	*p = append(*p, LineTo(b))
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d geom.Point) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// FirstPoint returns the starting point of the path,
// or false if it has no MoveTo.
func (p Path) FirstPoint() (geom.Point, bool) {
	for _, op := range p {
		if m, ok := op.(MoveTo); ok {
			return geom.Point(m), true
		}
	}
	return geom.Point{}, false
}

// LastPoint returns the end point of the last drawing operation.
func (p Path) LastPoint() (geom.Point, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		switch op := p[i].(type) {
		case MoveTo:
			return geom.Point(op), true
		case LineTo:
			return geom.Point(op), true
		case CubicTo:
			return op[2], true
		}
	}
	return geom.Point{}, false
}
