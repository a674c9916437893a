package svgdoc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/benoitkugler/wavery/geom"
	"github.com/benoitkugler/wavery/wavepath"
)

// pathCursor compiles the `d` attribute of a path
// element into a wavepath.Path
type pathCursor struct {
	path    wavepath.Path
	points  []float64
	placeX  float64 // current point
	placeY  float64
	startX  float64 // start of the current subpath
	startY  float64
	lastKey byte
	inPath  bool
}

// splitPathData returns the commands and their numeric arguments
func splitPathData(d string) ([]string, error) {
	var (
		out   []string
		start = -1
	)
	flush := func(i int) {
		if start >= 0 {
			out = append(out, d[start:i])
			start = -1
		}
	}
	for i := 0; i < len(d); i++ {
		r := rune(d[i])
		switch {
		case r == ',' || unicode.IsSpace(r):
			flush(i)
		case r == '-' || r == '+':
			// a sign starts a new number, unless it follows an exponent
			if start >= 0 && (d[i-1] == 'e' || d[i-1] == 'E') {
				continue
			}
			flush(i)
			start = i
		case r == '.':
			// a dot after a fraction or an exponent starts a new number :
			// "0.5.5" is "0.5 .5"
			if start >= 0 && strings.ContainsAny(d[start:i], ".eE") {
				flush(i)
			}
			if start < 0 {
				start = i
			}
		case '0' <= r && r <= '9' || r == 'e' || r == 'E':
			if start < 0 {
				start = i
			}
		case isCommand(d[i]):
			flush(i)
			out = append(out, d[i:i+1])
		default:
			return nil, fmt.Errorf("%w: unexpected character %q in path data", ErrParamMismatch, r)
		}
	}
	flush(len(d))
	return out, nil
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'Z', 'z':
		return true
	}
	return false
}

// number of arguments of a command
func arity(key byte) int {
	switch key {
	case 'M', 'm', 'L', 'l':
		return 2
	case 'H', 'h', 'V', 'v':
		return 1
	case 'C', 'c':
		return 6
	}
	return 0
}

func (c *pathCursor) init() {
	c.path = nil
	c.points = c.points[:0]
	c.placeX, c.placeY = 0, 0
	c.startX, c.startY = 0, 0
	c.lastKey = 0
	c.inPath = false
}

// compilePath translates the svg path data into a Path
func (c *pathCursor) compilePath(d string) error {
	c.init()
	tokens, err := splitPathData(d)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		if len(tok) == 1 && isCommand(tok[0]) {
			if err := c.flushCommand(); err != nil {
				return err
			}
			c.lastKey = tok[0]
			if c.lastKey == 'Z' || c.lastKey == 'z' {
				c.addSeg()
			}
			continue
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrParamMismatch, tok)
		}
		c.points = append(c.points, f)
		if n := arity(c.lastKey); n > 0 && len(c.points) == n {
			c.addSeg()
			// implicit repetitions of a moveto are linetos
			switch c.lastKey {
			case 'M':
				c.lastKey = 'L'
			case 'm':
				c.lastKey = 'l'
			}
		}
	}
	return c.flushCommand()
}

// flushCommand checks that the previous command got all its arguments
func (c *pathCursor) flushCommand() error {
	if len(c.points) != 0 {
		return fmt.Errorf("%w: command %q has %d dangling arguments", ErrParamMismatch, c.lastKey, len(c.points))
	}
	return nil
}

// addSeg consumes the pending arguments of the current command
func (c *pathCursor) addSeg() {
	pts := c.points
	c.points = c.points[:0]

	rel := c.lastKey >= 'a' // lower case commands are relative
	dx, dy := 0., 0.
	if rel {
		dx, dy = c.placeX, c.placeY
	}
	switch c.lastKey {
	case 'Z', 'z':
		if c.inPath {
			c.path.Stop(true)
			c.placeX, c.placeY = c.startX, c.startY
			c.inPath = false
		}
	case 'M', 'm':
		c.placeX, c.placeY = pts[0]+dx, pts[1]+dy
		c.startX, c.startY = c.placeX, c.placeY
		c.path.Start(geom.Pt(c.placeX, c.placeY))
		c.inPath = true
	case 'L', 'l':
		c.placeX, c.placeY = pts[0]+dx, pts[1]+dy
		c.ensureStarted()
		c.path.Line(geom.Pt(c.placeX, c.placeY))
	case 'H', 'h':
		c.placeX = pts[0] + dx
		c.ensureStarted()
		c.path.Line(geom.Pt(c.placeX, c.placeY))
	case 'V', 'v':
		c.placeY = pts[0] + dy
		c.ensureStarted()
		c.path.Line(geom.Pt(c.placeX, c.placeY))
	case 'C', 'c':
		c.ensureStarted()
		c.path.CubeBezier(geom.Pt(pts[0]+dx, pts[1]+dy), geom.Pt(pts[2]+dx, pts[3]+dy), geom.Pt(pts[4]+dx, pts[5]+dy))
		c.placeX, c.placeY = pts[4]+dx, pts[5]+dy
	}
}

// ensureStarted opens a new subpath at the current point
// after a closepath, as required by SVG
func (c *pathCursor) ensureStarted() {
	if !c.inPath {
		c.path.Start(geom.Pt(c.startX, c.startY))
		c.inPath = true
	}
}
