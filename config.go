package wavery

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/benoitkugler/wavery/colorscale"
	"github.com/benoitkugler/wavery/grid"
)

var (
	// ErrInvalidConfiguration is returned for dimensions, counts or
	// stroke settings which cannot produce a scene.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidGradient is returned when the gradient has less than
	// two stops or an unknown color.
	ErrInvalidGradient = errors.New("invalid gradient")
)

// Config is a fully resolved set of generation parameters.
type Config struct {
	Width, Height float64
	SegmentCount  int // cells per layer, in [2, grid.MaxSegmentCount]
	// LayerCount is the number of horizontal bands, in [1, grid.MaxLayerCount].
	// The bottom band is closed by the canvas corners and has no path, so
	// a scene has LayerCount - 1 paths when the height is a multiple of
	// the band height; a single band yields no path at all.
	LayerCount  int
	Variance    float64 // jitter, as a fraction of the cell size
	StrokeWidth float64
	StrokeColor string // color token, or "none"
	Gradient    []colorscale.Stop
	Background  bool // emit a full canvas rectangle before the layers
}

// DefaultConfig returns the default parameters :
// a 800x600 canvas, with 10 bands of 20 cells and a
// yellow to red to navy gradient.
func DefaultConfig() Config {
	return Config{
		Width:        800,
		Height:       600,
		SegmentCount: 20,
		LayerCount:   10,
		Variance:     0.75,
		StrokeWidth:  0,
		StrokeColor:  colorscale.None,
		Gradient: []colorscale.Stop{
			{Color: "yellow", Position: 0},
			{Color: "red", Position: 0.5},
			{Color: "navy", Position: 1},
		},
		Background: true,
	}
}

// Partial is a configuration where every field is optional.
// Nil fields are replaced by their default value in Resolve.
type Partial struct {
	Width          *float64          `json:"width,omitempty"`
	Height         *float64          `json:"height,omitempty"`
	SegmentCount   *int              `json:"segmentCount,omitempty"`
	LayerCount     *int              `json:"layerCount,omitempty"`
	Variance       *float64          `json:"variance,omitempty"`
	StrokeWidth    *float64          `json:"strokeWidth,omitempty"`
	StrokeColor    *string           `json:"strokeColor,omitempty"`
	GradientColors []colorscale.Stop `json:"gradientColors,omitempty"`
	Background     *bool             `json:"background,omitempty"`
}

// Resolve merges `p` over the default configuration.
// An empty gradient is considered unset.
func Resolve(p Partial) Config {
	c := DefaultConfig()
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Height != nil {
		c.Height = *p.Height
	}
	if p.SegmentCount != nil {
		c.SegmentCount = *p.SegmentCount
	}
	if p.LayerCount != nil {
		c.LayerCount = *p.LayerCount
	}
	if p.Variance != nil {
		c.Variance = *p.Variance
	}
	if p.StrokeWidth != nil {
		c.StrokeWidth = *p.StrokeWidth
	}
	if p.StrokeColor != nil {
		c.StrokeColor = *p.StrokeColor
	}
	if len(p.GradientColors) != 0 {
		c.Gradient = append([]colorscale.Stop(nil), p.GradientColors...)
	}
	if p.Background != nil {
		c.Background = *p.Background
	}
	return c
}

// LoadPartial decodes a JSON configuration.
// Unknown fields are rejected.
func LoadPartial(r io.Reader) (Partial, error) {
	var p Partial
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Partial{}, fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	return p, nil
}

func (c Config) gridParams() grid.Params {
	return grid.Params{
		Width:        c.Width,
		Height:       c.Height,
		SegmentCount: c.SegmentCount,
		LayerCount:   c.LayerCount,
		Variance:     c.Variance,
	}
}

// Validate checks the configuration bounds.
// Errors wrap ErrInvalidConfiguration or ErrInvalidGradient.
func (c Config) Validate() error {
	if err := c.gridParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if !(c.StrokeWidth >= 0) || math.IsInf(c.StrokeWidth, 0) {
		return fmt.Errorf("%w: stroke width must be non negative (got %g)", ErrInvalidConfiguration, c.StrokeWidth)
	}
	if _, err := colorscale.ParseColor(c.StrokeColor); err != nil {
		return fmt.Errorf("%w: stroke color: %w", ErrInvalidConfiguration, err)
	}
	if len(c.Gradient) < 2 {
		return fmt.Errorf("%w: at least 2 stops are required (got %d)", ErrInvalidGradient, len(c.Gradient))
	}
	for i, stop := range c.Gradient {
		col, err := colorscale.ParseColor(stop.Color)
		if err != nil {
			return fmt.Errorf("%w: stop %d: %w", ErrInvalidGradient, i, err)
		}
		if col == nil {
			return fmt.Errorf("%w: stop %d: %q is not a color", ErrInvalidGradient, i, stop.Color)
		}
		if math.IsNaN(stop.Position) || math.IsInf(stop.Position, 0) {
			return fmt.Errorf("%w: stop %d: invalid position %g", ErrInvalidGradient, i, stop.Position)
		}
	}
	return nil
}

// LogValue implements slog.LogValuer.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("width", c.Width),
		slog.Float64("height", c.Height),
		slog.Int("segmentCount", c.SegmentCount),
		slog.Int("layerCount", c.LayerCount),
		slog.Float64("variance", c.Variance),
		slog.Float64("strokeWidth", c.StrokeWidth),
		slog.String("strokeColor", c.StrokeColor),
		slog.Int("stops", len(c.Gradient)),
		slog.Bool("background", c.Background),
	)
}
