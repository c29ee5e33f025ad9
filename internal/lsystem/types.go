package lsystem

import "math"

// DefaultMaxSequence caps sequence growth when no explicit limit is given.
const DefaultMaxSequence = 2_000_000

// DefaultPrecision is the number of fractional digits kept by the simulator.
const DefaultPrecision = 10

// MaxPrecision is the largest precision a float64 coordinate can carry.
const MaxPrecision = 15

type Sequence []Symbol

func (s Sequence) String() string {
	r := make([]rune, len(s))
	for i, sym := range s {
		r[i] = rune(sym)
	}
	return string(r)
}

func (s Sequence) Clone() Sequence {
	c := make(Sequence, len(s))
	copy(c, s)
	return c
}

// Count returns how many times sym occurs in s.
func (s Sequence) Count(sym Symbol) int {
	n := 0
	for _, v := range s {
		if v == sym {
			n++
		}
	}
	return n
}

type FunctionMap map[Symbol]Function

type RuleMap map[Symbol]Sequence

type Point struct {
	X, Y float64
}

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Pose is the unit of turtle state saved and restored by PushState/PopState.
type Pose struct {
	Position Point
	Heading  float64
}

type poseStack []Pose

func (s *poseStack) push(p Pose) { *s = append(*s, p) }

func (s *poseStack) pop() (Pose, bool) {
	n := len(*s)
	if n == 0 {
		return Pose{}, false
	}
	p := (*s)[n-1]
	*s = (*s)[:n-1]
	return p, true
}

type BoundingBox struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func newBoundingBox(p Point) BoundingBox {
	return BoundingBox{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y}
}

func (b *BoundingBox) extend(p Point) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// Center returns the midpoint used as the centering translation.
func (b BoundingBox) Center() Point {
	return Point{(b.MaxX + b.MinX) / 2, (b.MaxY + b.MinY) / 2}
}

func (b BoundingBox) Width() float64  { return b.MaxX - b.MinX }
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Translate returns the box shifted by d.
func (b BoundingBox) Translate(d Point) BoundingBox {
	return BoundingBox{
		MinX: b.MinX + d.X, MaxX: b.MaxX + d.X,
		MinY: b.MinY + d.Y, MaxY: b.MaxY + d.Y,
	}
}

// Metric observes every symbol of the simulate pass.
type Metric interface {
	Name() string
	Observe(fn Function, pose Pose, depth int)
	Value() float64
	Reset()
}

// normalizeHeading maps degrees into [0, 360).
func normalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func roundTo(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	scale := math.Pow(10, float64(precision))
	if math.IsInf(scale, 0) {
		return v
	}
	scaled := v * scale
	if math.Abs(scaled) >= 1<<53 {
		return v
	}
	return math.Round(scaled) / scale
}
