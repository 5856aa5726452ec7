// Package sketch defines the 2D sketch entity traits that sketch
// constraints operate on, plus minimal concrete implementations used by
// this module's own tests and examples. Sketch rendering, persistence and
// editing tools live outside this module.
package sketch

import "math"

// Point2D is a 2D point in sketch-plane coordinates.
type Point2D struct {
	X, Y float64
}

func (p Point2D) Add(o Point2D) Point2D { return Point2D{p.X + o.X, p.Y + o.Y} }
func (p Point2D) Sub(o Point2D) Point2D { return Point2D{p.X - o.X, p.Y - o.Y} }
func (p Point2D) Scale(c float64) Point2D { return Point2D{p.X * c, p.Y * c} }

func (p Point2D) Distance(o Point2D) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return math.Hypot(dx, dy)
}

func (p Point2D) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// LineLike is the trait sketch-line constraints depend on. Line's own
// identity (equality, pointer semantics) is left to the concrete type; a
// constraint only ever needs to read and move the two endpoints.
type LineLike interface {
	Start() Point2D
	End() Point2D
	SetStart(Point2D)
	SetEnd(Point2D)
}

// CircleLike is the trait circle-based constraints depend on.
type CircleLike interface {
	Center() Point2D
	Radius() float64
	SetCenter(Point2D)
	SetRadius(float64)
}

// ArcLike extends CircleLike with the angular span constraints don't
// usually touch directly, but that a radius constraint on an arc needs.
type ArcLike interface {
	CircleLike
	StartAngle() float64
	EndAngle() float64
}

// Line is a minimal concrete LineLike used by this module's tests and
// examples.
type Line struct {
	start, end Point2D
}

func NewLine(start, end Point2D) *Line { return &Line{start: start, end: end} }

func (l *Line) Start() Point2D     { return l.start }
func (l *Line) End() Point2D       { return l.end }
func (l *Line) SetStart(p Point2D) { l.start = p }
func (l *Line) SetEnd(p Point2D)   { l.end = p }

func (l *Line) Length() float64 {
	return l.start.Distance(l.end)
}

// Angle returns the line's direction angle via atan2(dy, dx).
func (l *Line) Angle() float64 {
	d := l.end.Sub(l.start)
	return math.Atan2(d.Y, d.X)
}

// Rotate rotates the line's end point about its start point by angle
// radians, matching the original entity contract sketch constraints rely
// on (rotation pivots on the line's own start, never its midpoint).
func (l *Line) Rotate(angle float64) {
	l.end = rotatePoint(l.end, l.start, angle)
}

func rotatePoint(p, center Point2D, angle float64) Point2D {
	c, s := math.Cos(angle), math.Sin(angle)
	d := p.Sub(center)
	return Point2D{
		X: center.X + d.X*c - d.Y*s,
		Y: center.Y + d.X*s + d.Y*c,
	}
}

// Circle is a minimal concrete CircleLike.
type Circle struct {
	center Point2D
	radius float64
}

func NewCircle(center Point2D, radius float64) *Circle {
	return &Circle{center: center, radius: radius}
}

func (c *Circle) Center() Point2D     { return c.center }
func (c *Circle) Radius() float64     { return c.radius }
func (c *Circle) SetCenter(p Point2D) { c.center = p }
func (c *Circle) SetRadius(r float64) { c.radius = r }

// Arc is a minimal concrete ArcLike.
type Arc struct {
	Circle
	startAngle, endAngle float64
}

func NewArc(center Point2D, radius, startAngle, endAngle float64) *Arc {
	return &Arc{Circle: Circle{center: center, radius: radius}, startAngle: startAngle, endAngle: endAngle}
}

func (a *Arc) StartAngle() float64 { return a.startAngle }
func (a *Arc) EndAngle() float64   { return a.endAngle }
