package wavery

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/wavery/colorscale"
	"github.com/benoitkugler/wavery/geom"
	"github.com/benoitkugler/wavery/scene"
	"github.com/benoitkugler/wavery/svgdoc"
	"github.com/benoitkugler/wavery/svgpdf"
	"github.com/benoitkugler/wavery/svgraster"
	"github.com/benoitkugler/wavery/wavepath"
)

func regularConfig() Config {
	c := DefaultConfig()
	c.Variance = 0
	return c
}

func TestGenerateRegular(t *testing.T) {
	s, err := New().Generate(regularConfig())
	if err != nil {
		t.Fatal(err)
	}
	if s.Width != 800 || s.Height != 600 {
		t.Fatalf("unexpected size %g x %g", s.Width, s.Height)
	}
	if len(s.Elements) != 10 {
		t.Fatalf("expected background + 9 paths, got %d elements", len(s.Elements))
	}
	bg, ok := s.Background()
	if !ok || bg.Width != 800 || bg.Height != 600 || bg.X != 0 || bg.Y != 0 {
		t.Fatalf("unexpected background %v", bg)
	}
	if bg.Style.Fill != "#ffff00" {
		t.Errorf("expected yellow background, got %s", bg.Style.Fill)
	}

	paths := s.Paths()
	if len(paths) != 9 {
		t.Fatalf("expected 9 paths, got %d", len(paths))
	}
	for i, p := range paths {
		first, _ := p.Path.FirstPoint()
		last, _ := p.Path.LastPoint()
		if first != geom.Pt(0, 600) || last != geom.Pt(800, 600) {
			t.Errorf("path %d: unexpected corners %v %v", i, first, last)
		}
		// move, left join, 20 segments, right join, close
		if len(p.Path) != 24 {
			t.Fatalf("path %d: unexpected length %d", i, len(p.Path))
		}
		y := float64(60 * (i + 1))
		for k := 0; k <= 20; k++ {
			anchor := p.Path[k+1].(wavepath.CubicTo)[2]
			if exp := geom.Pt(float64(40*k), y); anchor != exp {
				t.Errorf("path %d: anchor %d: expected %v, got %v", i, k, exp, anchor)
			}
		}
		if p.Style.Stroke != colorscale.None || p.Style.StrokeWidth != 0 {
			t.Errorf("path %d: unexpected stroke %v", i, p.Style)
		}
	}
	if fill := paths[len(paths)-1].Style.Fill; fill != "#000080" {
		t.Errorf("expected navy for the last layer, got %s", fill)
	}
}

func TestGradientEndpoints(t *testing.T) {
	c := regularConfig()
	c.Gradient = []colorscale.Stop{{Color: "red", Position: 0}, {Color: "blue", Position: 1}}
	s, err := Generate(c)
	if err != nil {
		t.Fatal(err)
	}
	paths := s.Paths()
	if len(paths) != 9 {
		t.Fatalf("expected 9 paths, got %d", len(paths))
	}
	if f := paths[0].Style.Fill; f != "#ff0000" {
		t.Errorf("expected red for layer 0, got %s", f)
	}
	if f := paths[8].Style.Fill; f != "#0000ff" {
		t.Errorf("expected blue for layer 8, got %s", f)
	}
	bg, _ := s.Background()
	if bg.Style.Fill != "#ff0000" {
		t.Errorf("expected red background, got %s", bg.Style.Fill)
	}
}

func TestSeedIsReproducible(t *testing.T) {
	c := DefaultConfig()
	s1, err := New(WithSeed(42)).Generate(c)
	if err != nil {
		t.Fatal(err)
	}
	g := New(WithSeed(42))
	s2, _ := g.Generate(c)
	s3, _ := g.Generate(c)
	m1, m2, m3 := svgdoc.Markup(s1), svgdoc.Markup(s2), svgdoc.Markup(s3)
	if m1 != m2 || m2 != m3 {
		t.Fatal("same seed should produce the same markup")
	}

	s4, _ := New(WithSeed(43)).Generate(c)
	if svgdoc.Markup(s4) == m1 {
		t.Fatal("different seeds should produce different markups")
	}
}

type constantSource float64

func (c constantSource) Float64() float64 { return float64(c) }

func TestWithSource(t *testing.T) {
	c := DefaultConfig()
	c.Variance = 1
	// the middle of the jitter range is the nominal grid
	s, err := New(WithSource(constantSource(0.5))).Generate(c)
	if err != nil {
		t.Fatal(err)
	}
	r, _ := New().Generate(regularConfig())
	if svgdoc.Markup(s) != svgdoc.Markup(r) {
		t.Fatal("a centered source should produce the regular grid")
	}
}

type recordingScale struct{ lengths []float64 }

func (rs *recordingScale) build(stops []colorscale.Stop, length float64) (ColorScale, error) {
	rs.lengths = append(rs.lengths, length)
	return fixedScale("#123456"), nil
}

type fixedScale string

func (f fixedScale) Hex(float64) string { return string(f) }

func TestWithScale(t *testing.T) {
	var rs recordingScale
	s, err := New(WithScale(rs.build)).Generate(regularConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(rs.lengths) != 1 || rs.lengths[0] != 8 {
		t.Fatalf("unexpected scale lengths %v", rs.lengths)
	}
	for _, e := range s.Elements {
		if e.Paint().Fill != "#123456" {
			t.Fatalf("unexpected fill %s", e.Paint().Fill)
		}
	}

	failing := func([]colorscale.Stop, float64) (ColorScale, error) {
		return nil, colorscale.ErrTooFewStops
	}
	if _, err = New(WithScale(failing)).Generate(regularConfig()); !errors.Is(err, ErrInvalidGradient) {
		t.Fatalf("expected ErrInvalidGradient, got %v", err)
	}
}

func TestNoBackgroundAndStroke(t *testing.T) {
	c := regularConfig()
	c.Background = false
	c.StrokeWidth = 2
	c.StrokeColor = "#000000"
	c.LayerCount = 1 // no band strictly inside the canvas
	s, err := Generate(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Elements) != 0 {
		t.Fatalf("expected an empty scene, got %d elements", len(s.Elements))
	}

	c.LayerCount = 2
	s, err = Generate(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Elements) != 1 || s.Elements[0].Kind() != scene.KindPath {
		t.Fatalf("unexpected elements %v", s.Elements)
	}
	style := s.Elements[0].Paint()
	if style.Stroke != "#000000" || style.StrokeWidth != 2 || style.Fill != "#ffff00" {
		t.Errorf("unexpected style %v", style)
	}
}

func TestInvalidConfigurations(t *testing.T) {
	for _, test := range []struct {
		modify func(*Config)
		err    error
	}{
		{func(c *Config) { c.Width = 0 }, ErrInvalidConfiguration},
		{func(c *Config) { c.Height = math.NaN() }, ErrInvalidConfiguration},
		{func(c *Config) { c.Width = math.Inf(1) }, ErrInvalidConfiguration},
		{func(c *Config) { c.SegmentCount = 1 }, ErrInvalidConfiguration},
		{func(c *Config) { c.LayerCount = 0 }, ErrInvalidConfiguration},
		{func(c *Config) { c.SegmentCount = math.MaxInt }, ErrInvalidConfiguration},
		{func(c *Config) { c.LayerCount = math.MaxInt }, ErrInvalidConfiguration},
		{func(c *Config) { c.Variance = -0.1 }, ErrInvalidConfiguration},
		{func(c *Config) { c.StrokeWidth = -1 }, ErrInvalidConfiguration},
		{func(c *Config) { c.StrokeColor = "nocolor" }, ErrInvalidConfiguration},
		{func(c *Config) { c.Gradient = c.Gradient[:1] }, ErrInvalidGradient},
		{func(c *Config) { c.Gradient = nil }, ErrInvalidGradient},
		{func(c *Config) { c.Gradient[1].Color = "none" }, ErrInvalidGradient},
		{func(c *Config) { c.Gradient[2].Color = "#12" }, ErrInvalidGradient},
		{func(c *Config) { c.Gradient[0].Position = math.NaN() }, ErrInvalidGradient},
	} {
		c := DefaultConfig()
		test.modify(&c)
		s, err := Generate(c)
		if !errors.Is(err, test.err) {
			t.Errorf("config %v: expected %v, got %v", c, test.err, err)
		}
		if s != nil {
			t.Error("no scene should be returned on error")
		}
	}
}

func TestResolve(t *testing.T) {
	if c := Resolve(Partial{}); c.Width != 800 || c.Height != 600 || c.SegmentCount != 20 ||
		c.LayerCount != 10 || c.Variance != 0.75 || c.StrokeWidth != 0 || c.StrokeColor != "none" ||
		len(c.Gradient) != 3 || !c.Background {
		t.Fatalf("unexpected defaults %v", c)
	}

	input := `{"width": 400, "variance": 0, "background": false,
		"gradientColors": [{"colorValue": "red", "position": 0}, {"colorValue": "blue", "position": 1}]}`
	p, err := LoadPartial(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	c := Resolve(p)
	if c.Width != 400 || c.Height != 600 || c.Variance != 0 || c.Background {
		t.Fatalf("unexpected config %v", c)
	}
	if len(c.Gradient) != 2 || c.Gradient[1] != (colorscale.Stop{Color: "blue", Position: 1}) {
		t.Fatalf("unexpected gradient %v", c.Gradient)
	}

	// the resolved gradient does not alias the partial one
	c.Gradient[0].Color = "green"
	if p.GradientColors[0].Color != "red" {
		t.Fatal("Resolve should copy the gradient")
	}

	p, err = LoadPartial(strings.NewReader(`{"segmentCount": 9223372036854775807}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err = Generate(Resolve(p)); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}

	_, err = LoadPartial(strings.NewReader(`{"widht": 400}`))
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestMarkupAndDataURL(t *testing.T) {
	c := DefaultConfig()
	m, err := Markup(c)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(m, `<svg width="800" height="600" xmlns="http://www.w3.org/2000/svg">`) ||
		!strings.HasSuffix(m, "</svg>") {
		t.Fatalf("unexpected markup %s", m)
	}
	if n := strings.Count(m, "<path "); n != 9 {
		t.Fatalf("expected 9 paths, got %d", n)
	}

	u, err := DataURL(c)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, svgdoc.DataURLPrefix+"%3Csvg%20width%3D%22800%22") {
		t.Fatalf("unexpected data URL %s", u[:60])
	}

	c.Width = -1
	if _, err = Markup(c); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatal(err)
	}
	if _, err = DataURL(c); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatal(err)
	}
}

func TestSinks(t *testing.T) {
	c := DefaultConfig()
	c.Width, c.Height = 120, 80
	c.SegmentCount, c.LayerCount = 6, 4
	c.StrokeWidth, c.StrokeColor = 1, "white"
	g := New(WithSeed(1))
	for _, test := range []struct {
		sink   ImageSink
		mime   string
		prefix string
	}{
		{svgdoc.Sink{}, "image/svg+xml", "<svg"},
		{svgraster.Sink{}, "image/png", "\x89PNG"},
		{svgpdf.Sink{}, "application/pdf", "%PDF-"},
	} {
		if test.sink.ContentType() != test.mime {
			t.Errorf("unexpected content type %s", test.sink.ContentType())
		}
		var buf bytes.Buffer
		if err := g.Write(&buf, test.sink, c); err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte(test.prefix)) {
			t.Errorf("%s: unexpected output", test.mime)
		}
	}

	c.SegmentCount = 0
	if err := g.Write(new(bytes.Buffer), svgdoc.Sink{}, c); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	if _, err := Generate(regularConfig()); err != nil {
		t.Fatal(err)
	}
	logs := buf.String()
	if !strings.Contains(logs, "grid sampled") || !strings.Contains(logs, "layers=9") {
		t.Fatalf("unexpected logs %s", logs)
	}
	if strings.Count(logs, "layer composed") != 9 {
		t.Fatalf("expected one record per layer: %s", logs)
	}

	buf.Reset()
	c := regularConfig()
	c.LayerCount = 0
	_, _ = Generate(c)
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Fatalf("expected a warning, got %s", buf.String())
	}

	SetLogger(nil)
	buf.Reset()
	_, _ = Generate(regularConfig())
	if buf.Len() != 0 {
		t.Fatal("nil logger should be silent")
	}
}
