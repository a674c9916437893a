// Serializes scenes as SVG markup or data URLs,
// and reads such documents back.
package svgdoc

import (
	"bufio"
	"io"
	"strings"

	"github.com/benoitkugler/wavery/scene"
	"github.com/benoitkugler/wavery/wavepath"
)

// Namespace is the SVG XML namespace.
const Namespace = "http://www.w3.org/2000/svg"

// DataURLPrefix starts every URL returned by DataURL.
const DataURLPrefix = "data:image/svg+xml;charset=utf-8,"

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

type writer struct {
	*bufio.Writer
}

func (w writer) attr(name, value string) {
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteString(`="`)
	attrEscaper.WriteString(w, value)
	w.WriteByte('"')
}

func (w writer) number(name string, v float64) { w.attr(name, wavepath.FormatNumber(v)) }

func (w writer) paint(style scene.Style) {
	w.attr("fill", style.Fill)
	w.attr("stroke", style.Stroke)
	w.number("stroke-width", style.StrokeWidth)
}

// Encode writes the scene as a standalone SVG document, on a single line.
func Encode(out io.Writer, s *scene.Scene) error {
	w := writer{bufio.NewWriter(out)}
	w.WriteString("<svg")
	w.number("width", s.Width)
	w.number("height", s.Height)
	w.attr("xmlns", Namespace)
	w.WriteByte('>')
	for _, e := range s.Elements {
		switch e := e.(type) {
		case scene.Rect:
			w.WriteString("<rect")
			w.number("x", e.X)
			w.number("y", e.Y)
			w.number("height", e.Height)
			w.number("width", e.Width)
			w.paint(e.Style)
		default:
			w.WriteString("<path")
			w.paint(e.Paint())
			w.attr("d", e.Outline().ToSVGPath())
		}
		w.WriteString("/>")
	}
	w.WriteString("</svg>")
	return w.Flush()
}

// Markup returns the SVG document as a string.
func Markup(s *scene.Scene) string {
	var b strings.Builder
	_ = Encode(&b, s) // strings.Builder never fails
	return b.String()
}

// DataURL returns the document as an URL suitable for
// an img src attribute or a CSS background.
func DataURL(s *scene.Scene) string {
	return DataURLPrefix + EscapeURIComponent(Markup(s))
}

const upperhex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// EscapeURIComponent percent-encodes every byte of `s`
// except the unreserved marks kept by JavaScript encodeURIComponent.
func EscapeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3 / 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// Sink writes scenes as SVG documents.
type Sink struct{}

// Encode implements the image sink interface.
func (Sink) Encode(out io.Writer, s *scene.Scene) error { return Encode(out, s) }

// ContentType returns the MIME type of the output.
func (Sink) ContentType() string { return "image/svg+xml" }
