package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/benoitkugler/wavery/scene"
	"golang.org/x/net/html/charset"
)

var (
	// ErrInvalidDocument is returned for input which is not an SVG document.
	ErrInvalidDocument = errors.New("invalid svg document")

	// ErrParamMismatch is returned for malformed attribute values.
	ErrParamMismatch = errors.New("param mismatch")
)

// ErrorMode determines how unsupported elements are handled.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported elements, with a warning on the default slog logger.
	WarnErrorMode
	// StrictErrorMode fails on the first unsupported element.
	StrictErrorMode
)

// decoder is used while parsing SVG files
type decoder struct {
	scene     *scene.Scene
	errorMode ErrorMode
	path      pathCursor
}

func (c *decoder) handleError(errStr string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return fmt.Errorf("%w: %s", ErrInvalidDocument, errStr)
	case WarnErrorMode:
		slog.Warn("svgdoc: skipping element", "reason", errStr)
	}
	return nil
}

// Decode reads back a document written by Encode.
// Only the svg, rect and path elements are understood, with their
// fill, stroke and stroke-width attributes (possibly inside a style attribute).
func Decode(stream io.Reader, errMode ErrorMode) (*scene.Scene, error) {
	c := &decoder{scene: new(scene.Scene), errorMode: errMode}
	dec := xml.NewDecoder(stream)
	dec.CharsetReader = charset.NewReaderLabel
	seenRoot := false
	for {
		t, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, err)
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		if !seenRoot {
			if se.Name.Local != "svg" {
				return nil, fmt.Errorf("%w: unexpected root element %s", ErrInvalidDocument, se.Name.Local)
			}
			seenRoot = true
		}
		if err = c.readStartElement(se); err != nil {
			return nil, err
		}
	}
	if !seenRoot {
		return nil, fmt.Errorf("%w: missing svg element", ErrInvalidDocument)
	}
	return c.scene, nil
}

func (c *decoder) readStartElement(se xml.StartElement) error {
	switch se.Name.Local {
	case "svg":
		return c.svgF(se.Attr)
	case "rect":
		return c.rectF(se.Attr)
	case "path":
		return c.pathF(se.Attr)
	default:
		return c.handleError("cannot process svg element " + se.Name.Local)
	}
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrParamMismatch, s)
	}
	return f, nil
}

// defaultStyle is the SVG initial value of the painting properties
var defaultStyle = scene.Style{Fill: "black", Stroke: "none", StrokeWidth: 1}

// readStyle reads the direct painting attributes and the content
// of the style attribute, which takes precedence.
func readStyle(attrs []xml.Attr) (scene.Style, error) {
	var pairs [][2]string
	var inline []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			inline = append(inline, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, [2]string{attr.Name.Local, attr.Value})
		}
	}
	for _, pair := range inline {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) == 2 {
			pairs = append(pairs, [2]string{kv[0], kv[1]})
		}
	}

	style := defaultStyle
	for _, kv := range pairs {
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		v := strings.TrimSpace(kv[1])
		switch k {
		case "fill":
			style.Fill = v
		case "stroke":
			style.Stroke = v
		case "stroke-width":
			width, err := parseFloat(v)
			if err != nil {
				return style, err
			}
			style.StrokeWidth = width
		}
	}
	return style, nil
}

func (c *decoder) svgF(attrs []xml.Attr) error {
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "width":
			c.scene.Width, err = parseFloat(attr.Value)
		case "height":
			c.scene.Height, err = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *decoder) rectF(attrs []xml.Attr) error {
	var (
		r   scene.Rect
		err error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			r.X, err = parseFloat(attr.Value)
		case "y":
			r.Y, err = parseFloat(attr.Value)
		case "width":
			r.Width, err = parseFloat(attr.Value)
		case "height":
			r.Height, err = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if r.Width == 0 || r.Height == 0 { // not drawn, but not an error
		return nil
	}
	r.Style, err = readStyle(attrs)
	if err != nil {
		return err
	}
	c.scene.Elements = append(c.scene.Elements, r)
	return nil
}

func (c *decoder) pathF(attrs []xml.Attr) error {
	style, err := readStyle(attrs)
	if err != nil {
		return err
	}
	for _, attr := range attrs {
		if attr.Name.Local != "d" {
			continue
		}
		if err := c.path.compilePath(attr.Value); err != nil {
			return err
		}
		if len(c.path.path) > 0 {
			c.scene.Elements = append(c.scene.Elements, scene.Path{Path: c.path.path, Style: style})
		}
	}
	return nil
}
