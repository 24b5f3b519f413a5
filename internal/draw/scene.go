// Package draw accumulates the shapes a running program emits and renders
// them to SVG (spec.md §4.9/§6), grounded on the original implementation's
// SvgPainter (original_source/svgpainter.cpp): a scene wrapper with margins,
// an origin stack that every shape's coordinates are offset by, and an
// ordered list of shapes rendered in emission order.
package draw

import (
	"fmt"
	"strings"
)

// Point is one vertex of a polygon/polyline's points list.
type Point struct {
	X, Y int
}

type shape interface {
	generate() string
}

// Scene collects defineScene/draw*/pushOrigin/popOrigin calls as they are
// executed and renders the accumulated shapes to a single SVG document.
type Scene struct {
	LeftMargin, TopMargin, RightMargin, BottomMargin int
	Width, Height                                    int

	origins [][2]int // origin stack; current offset is the sum of all entries
	shapes  []shape
}

// NewScene returns a Scene with no margins and a zero-size canvas; a
// defineScene call normally overwrites these before any shape is drawn.
func NewScene() *Scene {
	return &Scene{}
}

// Define applies a defineScene call's fields.
func (s *Scene) Define(leftMargin, topMargin, rightMargin, bottomMargin, width, height int) {
	s.LeftMargin, s.TopMargin, s.RightMargin, s.BottomMargin = leftMargin, topMargin, rightMargin, bottomMargin
	s.Width, s.Height = width, height
}

// PushOrigin shifts every subsequent shape's coordinates by (dx, dy),
// cumulative with any already-pushed origin.
func (s *Scene) PushOrigin(dx, dy int) {
	s.origins = append(s.origins, [2]int{dx, dy})
}

// PopOrigin undoes the most recent PushOrigin. Popping past the bottom of
// an empty stack is a no-op: draw opcodes never emit an unbalanced pop
// themselves, but a defensive VM should not panic if one slips through.
func (s *Scene) PopOrigin() {
	if len(s.origins) == 0 {
		return
	}
	s.origins = s.origins[:len(s.origins)-1]
}

func (s *Scene) offset() (int, int) {
	dx, dy := 0, 0
	for _, o := range s.origins {
		dx += o[0]
		dy += o[1]
	}
	return dx, dy
}

func (s *Scene) translate(x, y int) (int, int) {
	dx, dy := s.offset()
	return x + dx, y + dy
}

func (s *Scene) DrawRect(x, y, width, height int, fillColor, strokeColor, strokeDasharray string, strokeWidth int) {
	x, y = s.translate(x, y)
	s.shapes = append(s.shapes, &rectShape{x, y, width, height, fillColor, strokeColor, strokeDasharray, strokeWidth})
}

func (s *Scene) DrawText(x, y, size int, text string) {
	x, y = s.translate(x, y)
	s.shapes = append(s.shapes, &textShape{x, y, size, text})
}

func (s *Scene) DrawEllipse(x, y, xRadius, yRadius int, fillColor, strokeColor, strokeDasharray string, strokeWidth int) {
	x, y = s.translate(x, y)
	s.shapes = append(s.shapes, &ellipseShape{x, y, xRadius, yRadius, fillColor, strokeColor, strokeDasharray, strokeWidth})
}

func (s *Scene) DrawPolygon(x, y int, points []Point, fillColor, fillRule, strokeColor, strokeDasharray string, strokeWidth int) {
	x, y = s.translate(x, y)
	s.shapes = append(s.shapes, &polygonShape{x, y, points, fillColor, fillRule, strokeColor, strokeDasharray, strokeWidth})
}

func (s *Scene) DrawLine(x, y, dx1, dy1, dx2, dy2 int, strokeColor, strokeDasharray string, strokeWidth int) {
	x, y = s.translate(x, y)
	s.shapes = append(s.shapes, &lineShape{x, y, dx1, dy1, dx2, dy2, strokeColor, strokeDasharray, strokeWidth})
}

func (s *Scene) DrawPolyline(x, y int, points []Point, strokeColor, strokeDasharray string, strokeWidth int) {
	x, y = s.translate(x, y)
	s.shapes = append(s.shapes, &polylineShape{x, y, points, strokeColor, strokeDasharray, strokeWidth})
}

// Generate renders every accumulated shape into one SVG document, matching
// SvgPainter::generate()'s wrapper (xmlns + version, 4-space shape indent).
func (s *Scene) Generate() string {
	var sb strings.Builder
	sb.WriteString("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\">\n")
	for _, sh := range s.shapes {
		sb.WriteString("    ")
		sb.WriteString(sh.generate())
		sb.WriteString("\n")
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

type rectShape struct {
	x, y, width, height                                  int
	fillColor, strokeColor, strokeDasharray              string
	strokeWidth                                          int
}

func (r *rectShape) generate() string {
	return fmt.Sprintf(
		`<rect x="%d" y="%d" width="%d" height="%d" style="fill:%s; stroke-width:%d; stroke:%s; stroke-dasharray:%s"/>`,
		r.x, r.y, r.width, r.height, r.fillColor, r.strokeWidth, r.strokeColor, r.strokeDasharray)
}

type textShape struct {
	x, y, size int
	text       string
}

func (t *textShape) generate() string {
	return fmt.Sprintf(`<text x="%d" y="%d" font-size="%d">%s</text>`, t.x, t.y, t.size, t.text)
}

// ellipseShape has no original_source grounding; its format string follows
// rectShape's style convention (attributes first, then a style="..." block
// carrying paint properties) for consistency with the rest of the package.
type ellipseShape struct {
	x, y, xRadius, yRadius                  int
	fillColor, strokeColor, strokeDasharray string
	strokeWidth                             int
}

func (e *ellipseShape) generate() string {
	return fmt.Sprintf(
		`<ellipse cx="%d" cy="%d" rx="%d" ry="%d" style="fill:%s; stroke-width:%d; stroke:%s; stroke-dasharray:%s"/>`,
		e.x, e.y, e.xRadius, e.yRadius, e.fillColor, e.strokeWidth, e.strokeColor, e.strokeDasharray)
}

// polygonShape, polylineShape, lineShape: also unGrounded in
// original_source, authored in the same attributes+style format.
type polygonShape struct {
	x, y                                                int
	points                                              []Point
	fillColor, fillRule, strokeColor, strokeDasharray   string
	strokeWidth                                         int
}

func (p *polygonShape) generate() string {
	return fmt.Sprintf(
		`<polygon points="%s" style="fill:%s; fill-rule:%s; stroke-width:%d; stroke:%s; stroke-dasharray:%s"/>`,
		pointsAttr(p.x, p.y, p.points), p.fillColor, p.fillRule, p.strokeWidth, p.strokeColor, p.strokeDasharray)
}

type lineShape struct {
	x, y, dx1, dy1, dx2, dy2       int
	strokeColor, strokeDasharray  string
	strokeWidth                   int
}

func (l *lineShape) generate() string {
	return fmt.Sprintf(
		`<line x1="%d" y1="%d" x2="%d" y2="%d" style="stroke-width:%d; stroke:%s; stroke-dasharray:%s"/>`,
		l.x+l.dx1, l.y+l.dy1, l.x+l.dx2, l.y+l.dy2, l.strokeWidth, l.strokeColor, l.strokeDasharray)
}

type polylineShape struct {
	x, y                          int
	points                        []Point
	strokeColor, strokeDasharray  string
	strokeWidth                   int
}

func (p *polylineShape) generate() string {
	return fmt.Sprintf(
		`<polyline points="%s" style="fill:none; stroke-width:%d; stroke:%s; stroke-dasharray:%s"/>`,
		pointsAttr(p.x, p.y, p.points), p.strokeWidth, p.strokeColor, p.strokeDasharray)
}

func pointsAttr(originX, originY int, points []Point) string {
	parts := make([]string, len(points))
	for i, pt := range points {
		parts[i] = fmt.Sprintf("%d,%d", originX+pt.X, originY+pt.Y)
	}
	return strings.Join(parts, " ")
}
