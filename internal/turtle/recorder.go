// Package turtle provides drawing surfaces for the lsystem renderer.
package turtle

import (
	"math"

	"github.com/san-kum/lfractal/internal/lsystem"
)

// Segment is a straight line drawn while the pen was down.
type Segment struct {
	From, To lsystem.Point
}

// Recorder is an in-memory turtle. It keeps the pen-down segments so they
// can be rasterized or stored after a render. Headings are in degrees,
// counter-clockwise from the positive x axis.
type Recorder struct {
	pos      lsystem.Point
	heading  float64
	down     bool
	segments []Segment
}

func NewRecorder() *Recorder {
	r := &Recorder{}
	r.Reset()
	return r
}

// Reset homes the turtle with the pen down and clears the drawing.
func (r *Recorder) Reset() {
	r.pos = lsystem.Point{}
	r.heading = 0
	r.down = true
	r.segments = r.segments[:0]
}

func (r *Recorder) PenUp()   { r.down = false }
func (r *Recorder) PenDown() { r.down = true }

func (r *Recorder) Forward(distance float64) {
	sin, cos := math.Sincos(r.heading * math.Pi / 180)
	next := lsystem.Point{X: r.pos.X + distance*cos, Y: r.pos.Y + distance*sin}
	if r.down {
		r.segments = append(r.segments, Segment{From: r.pos, To: next})
	}
	r.pos = next
}

func (r *Recorder) Right(degrees float64) { r.SetHeading(r.heading - degrees) }
func (r *Recorder) Left(degrees float64)  { r.SetHeading(r.heading + degrees) }

func (r *Recorder) Position() lsystem.Point { return r.pos }

func (r *Recorder) SetPosition(p lsystem.Point) {
	if r.down {
		r.segments = append(r.segments, Segment{From: r.pos, To: p})
	}
	r.pos = p
}

func (r *Recorder) Heading() float64 { return r.heading }

func (r *Recorder) SetHeading(degrees float64) {
	h := math.Mod(degrees, 360)
	if h < 0 {
		h += 360
	}
	r.heading = h
}

func (r *Recorder) IsDown() bool { return r.down }

// Segments returns a copy of everything drawn since the last Reset.
func (r *Recorder) Segments() []Segment {
	out := make([]Segment, len(r.segments))
	copy(out, r.segments)
	return out
}

// Bounds returns the extent of the drawn segments; ok is false when nothing
// has been drawn.
func (r *Recorder) Bounds() (box lsystem.BoundingBox, ok bool) {
	return Bounds(r.segments)
}

func Bounds(segments []Segment) (box lsystem.BoundingBox, ok bool) {
	if len(segments) == 0 {
		return lsystem.BoundingBox{}, false
	}
	first := segments[0].From
	box = lsystem.BoundingBox{MinX: first.X, MaxX: first.X, MinY: first.Y, MaxY: first.Y}
	for _, s := range segments {
		for _, p := range [2]lsystem.Point{s.From, s.To} {
			box.MinX = math.Min(box.MinX, p.X)
			box.MaxX = math.Max(box.MaxX, p.X)
			box.MinY = math.Min(box.MinY, p.Y)
			box.MaxY = math.Max(box.MaxY, p.Y)
		}
	}
	return box, true
}
