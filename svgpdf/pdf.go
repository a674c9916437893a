// Implements a PDF backend to render scenes,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/benoitkugler/wavery/scene"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ scene.Driver  = Renderer{}
	_ scene.Filler  = (*filler)(nil)
	_ scene.Stroker = (*stroker)(nil)
)

// ErrEmptyPage is returned for scenes without a positive size.
var ErrEmptyPage = errors.New("cannot render an empty page")

type Renderer struct {
	pdf *gofpdf.Fpdf
}

// records the path commands, which are
// only sent to the PDF content stream by Draw,
// after the painting state has been set.
type pather struct {
	pdf *gofpdf.Fpdf
	ops []func()
}

// implements the filling operation
type filler struct {
	pather
	color             color.Color
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
	color     color.Color
	lineWidth float64
}

// NewRenderer return a renderer which will
// write to the current page of `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// SetupDrawers implements scene.Driver. Filled and stroked paths
// are sent twice to the PDF content stream.
func (r Renderer) SetupDrawers(willFill, willStroke bool) (scene.Filler, scene.Stroker) {
	var (
		f scene.Filler
		s scene.Stroker
	)
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}, lineWidth: 1}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func rgb(c color.Color) (r, g, b int) {
	cr, cg, cb, _ := c.RGBA()
	return int(cr >> 8), int(cg >> 8), int(cb >> 8)
}

func (p *pather) Clear() { p.ops = p.ops[:0] }

func (p *pather) Start(a fixed.Point26_6) {
	x, y := fixedTof(a)
	p.ops = append(p.ops, func() { p.pdf.MoveTo(x, y) })
}

func (p *pather) Line(b fixed.Point26_6) {
	x, y := fixedTof(b)
	p.ops = append(p.ops, func() { p.pdf.LineTo(x, y) })
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.ops = append(p.ops, func() { p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y) })
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.ops = append(p.ops, p.pdf.ClosePath)
	}
}

func (p *pather) replay() {
	for _, op := range p.ops {
		op()
	}
}

func (f *filler) SetColor(c color.Color) { f.color = c }

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) Draw() {
	if f.color != nil {
		f.pdf.SetFillColor(rgb(f.color))
	}
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.replay()
	f.pdf.DrawPath(styleStr)
}

func (s *stroker) SetColor(c color.Color) { s.color = c }

func (s *stroker) SetStrokeOptions(options scene.StrokeOptions) {
	s.lineWidth = float64(options.LineWidth) / 64
}

func (s *stroker) Draw() {
	if s.color != nil {
		s.pdf.SetDrawColor(rgb(s.color))
	}
	s.pdf.SetLineWidth(s.lineWidth)
	s.pdf.SetLineJoinStyle("round")
	s.replay()
	s.pdf.DrawPath("D")
}

// NewDocument returns a PDF document with one page of the size of the scene,
// using points as unit so that one pixel maps to one point.
func NewDocument(s *scene.Scene) (*gofpdf.Fpdf, error) {
	if !(s.Width > 0 && s.Height > 0) || math.IsInf(s.Width, 0) || math.IsInf(s.Height, 0) {
		return nil, fmt.Errorf("%w (%g x %g)", ErrEmptyPage, s.Width, s.Height)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: s.Width, Ht: s.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf, nil
}

// RenderSceneToPDF draws the scene on a single page
// and writes the document to `out`.
func RenderSceneToPDF(out io.Writer, s *scene.Scene) error {
	pdf, err := NewDocument(s)
	if err != nil {
		return err
	}
	if err = s.Draw(NewRenderer(pdf)); err != nil {
		return err
	}
	return pdf.Output(out)
}

// Sink writes scenes as PDF documents.
type Sink struct{}

// Encode implements the image sink interface.
func (Sink) Encode(out io.Writer, s *scene.Scene) error { return RenderSceneToPDF(out, s) }

// ContentType returns the MIME type of the output.
func (Sink) ContentType() string { return "application/pdf" }
