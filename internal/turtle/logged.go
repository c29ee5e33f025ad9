package turtle

import (
	"github.com/charmbracelet/log"
	"github.com/san-kum/lfractal/internal/lsystem"
)

// Logged wraps a surface and reports every command at debug level.
type Logged struct {
	lsystem.Surface
	logger *log.Logger
}

func NewLogged(s lsystem.Surface, logger *log.Logger) *Logged {
	if logger == nil {
		logger = log.Default()
	}
	return &Logged{Surface: s, logger: logger.WithPrefix("turtle")}
}

func (l *Logged) Reset() {
	l.logger.Debug("reset")
	l.Surface.Reset()
}

func (l *Logged) PenUp() {
	l.logger.Debug("pen up")
	l.Surface.PenUp()
}

func (l *Logged) PenDown() {
	l.logger.Debug("pen down")
	l.Surface.PenDown()
}

func (l *Logged) Forward(distance float64) {
	l.logger.Debug("forward", "distance", distance)
	l.Surface.Forward(distance)
}

func (l *Logged) Right(degrees float64) {
	l.logger.Debug("right", "degrees", degrees)
	l.Surface.Right(degrees)
}

func (l *Logged) Left(degrees float64) {
	l.logger.Debug("left", "degrees", degrees)
	l.Surface.Left(degrees)
}

func (l *Logged) SetPosition(p lsystem.Point) {
	l.logger.Debug("set position", "x", p.X, "y", p.Y)
	l.Surface.SetPosition(p)
}

func (l *Logged) SetHeading(degrees float64) {
	l.logger.Debug("set heading", "degrees", degrees)
	l.Surface.SetHeading(degrees)
}
