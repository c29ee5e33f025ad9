package lsystem

import "context"

// Surface is the turtle-like drawing capability a Renderer drives.
// Forward draws a line only while the pen is down.
type Surface interface {
	Reset()
	PenUp()
	PenDown()
	Forward(distance float64)
	Right(degrees float64)
	Left(degrees float64)
	Position() Point
	SetPosition(p Point)
	Heading() float64
	SetHeading(degrees float64)
}

// Renderer replays a sequence onto a Surface. It shares the Simulator's
// per-symbol semantics.
type Renderer struct {
	functions FunctionMap
	unit      float64
	angle     float64
}

func NewRenderer(functions FunctionMap, unit, angle float64) *Renderer {
	return &Renderer{functions: functions, unit: unit, angle: angle}
}

// Render resets surface, places the turtle at start translated by the
// center of box, and draws seq. ctx is checked before every symbol; on
// cancellation the surface is reset and the error matches ErrAborted.
func (r *Renderer) Render(ctx context.Context, surface Surface, seq Sequence, start Pose, box BoundingBox) error {
	surface.Reset()
	surface.PenUp()
	surface.SetHeading(start.Heading)
	surface.SetPosition(start.Position.Sub(box.Center()))
	surface.PenDown()

	stack := make(poseStack, 0, 16)
	for i, sym := range seq {
		select {
		case <-ctx.Done():
			surface.Reset()
			return &InterpretError{Pass: "render", Index: i, Symbol: sym, Err: ErrAborted, Cause: ctx.Err()}
		default:
		}

		switch r.functions[sym] {
		case Draw:
			surface.Forward(r.unit)
		case Move:
			surface.PenUp()
			surface.Forward(r.unit)
			surface.PenDown()
		case TurnRight:
			surface.Right(r.angle)
		case TurnLeft:
			surface.Left(r.angle)
		case PushState:
			stack.push(Pose{Position: surface.Position(), Heading: surface.Heading()})
		case PopState:
			p, ok := stack.pop()
			if !ok {
				surface.Reset()
				return &InterpretError{Pass: "render", Index: i, Symbol: sym, Err: ErrStackUnderflow}
			}
			surface.PenUp()
			surface.SetPosition(p.Position)
			surface.SetHeading(p.Heading)
			surface.PenDown()
		}
	}
	return nil
}
