// Maps a numeric index to a color interpolated between
// gradient stops, and parses the color tokens found in
// configurations and SVG attributes.
package colorscale

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var (
	// ErrInvalidColor is returned for a color token which is neither
	// an hex value nor a CSS color name.
	ErrInvalidColor = errors.New("invalid color")

	// ErrTooFewStops is returned when building a scale with less than two stops.
	ErrTooFewStops = errors.New("a gradient requires at least two stops")
)

// None is the token disabling a fill or a stroke.
const None = "none"

// Stop is one color of a gradient, at a relative position in [0, 1].
type Stop struct {
	Color    string  `json:"colorValue"`
	Position float64 `json:"position"`
}

// ParseColor resolves an hex color (#rgb or #rrggbb) or a CSS color name.
// The special values "none" and "transparent" return a nil color.
func ParseColor(token string) (color.Color, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	switch token {
	case None, "transparent":
		return nil, nil
	case "":
		return nil, fmt.Errorf("%w: empty value", ErrInvalidColor)
	}
	if strings.HasPrefix(token, "#") {
		c, err := colorful.Hex(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, token)
		}
		return c, nil
	}
	if c, ok := colornames.Map[token]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidColor, token)
}

// Hex returns the #rrggbb representation of c.
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Clamped().Hex()
}

// Scale interpolates linearly, channel by channel in sRGB,
// between the colors of a gradient spread over [0, length].
// Indices outside the domain are clamped to the end colors.
type Scale struct {
	colors []colorful.Color
	domain []float64
}

// New parses the stops and spreads them over [0, length] :
// a stop at position p is reached at index p * length.
// Positions are expected to be non decreasing.
func New(stops []Stop, length float64) (*Scale, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrTooFewStops, len(stops))
	}
	out := &Scale{
		colors: make([]colorful.Color, len(stops)),
		domain: make([]float64, len(stops)),
	}
	for i, stop := range stops {
		c, err := ParseColor(stop.Color)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		if c == nil {
			return nil, fmt.Errorf("stop %d: %w: %q can't be interpolated", i, ErrInvalidColor, stop.Color)
		}
		out.colors[i], _ = colorful.MakeColor(c)
		out.domain[i] = stop.Position * length
	}
	return out, nil
}

// At returns the color at `index`.
func (s *Scale) At(index float64) color.Color {
	return s.at(index)
}

// Hex returns the color at `index`, as #rrggbb.
func (s *Scale) Hex(index float64) string {
	return s.at(index).Clamped().Hex()
}

func (s *Scale) at(x float64) colorful.Color {
	last := len(s.domain) - 1
	if x <= s.domain[0] {
		return s.colors[0]
	}
	for k := 0; k < last; k++ {
		// here x >= domain[k]
		if x < s.domain[k+1] {
			t := (x - s.domain[k]) / (s.domain[k+1] - s.domain[k])
			return s.colors[k].BlendRgb(s.colors[k+1], t)
		}
	}
	return s.colors[last]
}

// EvenStops distributes `colors` evenly from position 0 to 1.
// A single color is placed at position 0.
func EvenStops(colors ...string) []Stop {
	out := make([]Stop, len(colors))
	for i, c := range colors {
		out[i].Color = c
		if len(colors) > 1 {
			out[i].Position = float64(i) / float64(len(colors)-1)
		}
	}
	return out
}
