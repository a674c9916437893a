// Implements a raster backend to render scenes,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/wavery/scene"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ scene.Driver = (*Renderer)(nil) // assert interface conformance

// ErrEmptyCanvas is returned for scenes without a positive size.
var ErrEmptyCanvas = errors.New("cannot rasterize an empty canvas")

// miter cutoff, unused with round joins but required by rasterx
const miterLimit fixed.Int26_6 = 4 * 64

type Renderer struct {
	dasher *rasterx.Dasher
	filler *rasterx.Filler
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If scanner is nil, a default scanner rasterx.ScannerGV is used
// on a new image of the given size.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	if scanner == nil {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		scanner = rasterx.NewScannerGV(width, height, img, img.Bounds())
	}
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// CanvasSize returns the pixel size of the image needed to hold the scene.
func CanvasSize(s *scene.Scene) (w, h int, err error) {
	if !(s.Width > 0 && s.Height > 0) || math.IsInf(s.Width, 0) || math.IsInf(s.Height, 0) {
		return 0, 0, fmt.Errorf("%w (%g x %g)", ErrEmptyCanvas, s.Width, s.Height)
	}
	return int(math.Ceil(s.Width)), int(math.Ceil(s.Height)), nil
}

// RasterSceneToImage uses a ScannerGV instance to render the
// scene into an image and returns it
func RasterSceneToImage(s *scene.Scene) (*image.RGBA, error) {
	w, h, err := CanvasSize(s)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	if err = s.Draw(renderer); err != nil {
		return nil, err
	}
	return img, nil
}

// EncodePNG rasterizes the scene and writes it as PNG.
func EncodePNG(out io.Writer, s *scene.Scene) error {
	img, err := RasterSceneToImage(s)
	if err != nil {
		return err
	}
	return png.Encode(out, img)
}

// Sink writes scenes as PNG images.
type Sink struct{}

// Encode implements the image sink interface.
func (Sink) Encode(out io.Writer, s *scene.Scene) error { return EncodePNG(out, s) }

// ContentType returns the MIME type of the output.
func (Sink) ContentType() string { return "image/png" }

// filler adapts rasterx.Filler to the scene drawing protocol
type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(c color.Color) { f.Filler.SetColor(rasterx.ApplyOpacity(c, 1)) }

// stroker adapts rasterx.Dasher to the scene drawing protocol
type stroker struct {
	*rasterx.Dasher
}

func (s stroker) SetColor(c color.Color) { s.Dasher.SetColor(rasterx.ApplyOpacity(c, 1)) }

func (s stroker) SetStrokeOptions(options scene.StrokeOptions) {
	s.Dasher.SetStroke(options.LineWidth, miterLimit, rasterx.ButtCap, nil,
		rasterx.RoundGap, rasterx.Round, nil, 0)
}

// SetupDrawers implements scene.Driver.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (scene.Filler, scene.Stroker) {
	var (
		f scene.Filler
		s scene.Stroker
	)
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}
