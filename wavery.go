// Package wavery generates layered, wavy backgrounds as vector scenes.
//
// A jittered grid of anchors is sampled, each row of anchors is threaded
// by a smooth cubic Bezier spline, closed against the bottom corners of
// the canvas and filled with a color taken along a gradient.
// The resulting scene.Scene may then be written by any ImageSink,
// see svgdoc, svgraster and svgpdf.
package wavery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/benoitkugler/wavery/colorscale"
	"github.com/benoitkugler/wavery/geom"
	"github.com/benoitkugler/wavery/grid"
	"github.com/benoitkugler/wavery/scene"
	"github.com/benoitkugler/wavery/svgdoc"
	"github.com/benoitkugler/wavery/svgpdf"
	"github.com/benoitkugler/wavery/svgraster"
	"github.com/benoitkugler/wavery/wavepath"
)

// ColorScale maps a layer index to a color token.
type ColorScale interface {
	Hex(index float64) string
}

// ScaleFunc builds the color scale used for a scene with
// `length`+1 paths, so that the stops span [0, length].
type ScaleFunc func(stops []colorscale.Stop, length float64) (ColorScale, error)

func defaultScale(stops []colorscale.Stop, length float64) (ColorScale, error) {
	return colorscale.New(stops, length)
}

// ImageSink turns a scene into a document.
type ImageSink interface {
	Encode(w io.Writer, s *scene.Scene) error
	ContentType() string
}

var (
	_ ImageSink = svgdoc.Sink{}
	_ ImageSink = svgraster.Sink{}
	_ ImageSink = svgpdf.Sink{}
)

// Option configures a Generator.
type Option func(*Generator)

// WithSource sets the random source used to jitter the grid.
// The source is shared by every call to Generate.
func WithSource(src grid.Source) Option {
	return func(g *Generator) {
		g.source = func() grid.Source { return src }
	}
}

// WithSeed makes the generation reproducible : each call to Generate
// uses a new generator seeded with `seed`, so that two calls
// with the same configuration return identical scenes.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.source = func() grid.Source { return rand.New(rand.NewSource(seed)) }
	}
}

// WithScale replaces the color scale builder.
func WithScale(fn ScaleFunc) Option {
	return func(g *Generator) {
		g.scale = fn
	}
}

// Generator assembles scenes. Unless WithSource is used with
// a source which is not safe for concurrent use, a Generator
// may be shared between goroutines.
type Generator struct {
	source func() grid.Source
	scale  ScaleFunc
}

// New returns a generator using the global random source
// and a linear RGB color scale, unless overridden by `opts`.
func New(opts ...Option) *Generator {
	g := &Generator{
		source: func() grid.Source { return grid.DefaultSource },
		scale:  defaultScale,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate validates `config` and assembles the scene :
// an optional background rectangle filled with the first gradient
// color, followed by one closed path per sampled layer, from top to bottom.
// On error, no scene is returned.
func (g *Generator) Generate(config Config) (*scene.Scene, error) {
	logger := Logger()
	if err := config.Validate(); err != nil {
		logger.Warn("rejected configuration", slog.Any("config", config), slog.Any("error", err))
		return nil, err
	}
	logger.Debug("generating", slog.Any("config", config))

	layers, err := grid.Sample(config.gridParams(), g.source())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	logger.Debug("grid sampled", slog.Int("layers", len(layers)))

	length := float64(len(layers) - 1)
	if length < 0 {
		length = 0
	}
	scale, err := g.scale(config.Gradient, length)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGradient, err)
	}

	out := &scene.Scene{Width: config.Width, Height: config.Height}
	out.Elements = make([]scene.Element, 0, len(layers)+1)
	if config.Background {
		out.Elements = append(out.Elements, scene.Rect{
			Width:  config.Width,
			Height: config.Height,
			Style: scene.Style{
				Fill:        scale.Hex(0),
				Stroke:      config.StrokeColor,
				StrokeWidth: config.StrokeWidth,
			},
		})
	}

	left, right := geom.Pt(0, config.Height), geom.Pt(config.Width, config.Height)
	for i, layer := range layers {
		path, err := wavepath.Compose(layer, left, right)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		fill := scale.Hex(float64(i))
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			bounds := path.Bounds()
			logger.Debug("layer composed", slog.Int("index", i), slog.String("fill", fill),
				slog.Float64("top", bounds.Min.Y), slog.Float64("bottom", bounds.Max.Y))
		}
		out.Elements = append(out.Elements, scene.Path{
			Path: path,
			Style: scene.Style{
				Fill:        fill,
				Stroke:      config.StrokeColor,
				StrokeWidth: config.StrokeWidth,
			},
		})
	}
	return out, nil
}

// Write generates a scene and encodes it with `sink`.
func (g *Generator) Write(w io.Writer, sink ImageSink, config Config) error {
	s, err := g.Generate(config)
	if err != nil {
		return err
	}
	return sink.Encode(w, s)
}

// Generate uses a default Generator to assemble a scene.
func Generate(config Config) (*scene.Scene, error) {
	return New().Generate(config)
}

// Markup returns the scene generated from `config`, as SVG markup.
func Markup(config Config) (string, error) {
	s, err := Generate(config)
	if err != nil {
		return "", err
	}
	return svgdoc.Markup(s), nil
}

// DataURL returns the scene generated from `config`,
// as a data URL embedding the SVG markup.
func DataURL(config Config) (string, error) {
	s, err := Generate(config)
	if err != nil {
		return "", err
	}
	return svgdoc.DataURL(s), nil
}
