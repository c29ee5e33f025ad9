package viz

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lfractal/internal/lsystem"
	"github.com/san-kum/lfractal/internal/turtle"
)

const (
	canvasWidth    = 80
	canvasHeight   = 24
	maxIterations  = 16
	timingCapacity = 60
)

// Drawer produces one rendering of a fractal at the given depth.
type Drawer interface {
	Name() string
	Draw(ctx context.Context, iterations int) (*lsystem.Result, []turtle.Segment, error)
}

type TickMsg time.Time

// drawDoneMsg carries a finished draw back to the update loop. gen ties it
// to the request that started it so stale results are dropped.
type drawDoneMsg struct {
	gen      int
	result   *lsystem.Result
	segments []turtle.Segment
	err      error
}

type status int

const (
	statusDrawing status = iota
	statusDone
	statusAborted
	statusFailed
)

// Viewer is the bubbletea model for the live fractal viewer. Every draw
// runs in its own command with a cancellable context.
type Viewer struct {
	ctx        context.Context
	drawer     Drawer
	iterations int
	canvas     *Canvas
	status     status
	result     *lsystem.Result
	segments   []turtle.Segment
	err        error
	cancel     context.CancelFunc
	gen        int
	frame      int
	timings    []float64
	showHelp   bool
}

func NewViewer(ctx context.Context, drawer Drawer, iterations int) *Viewer {
	return &Viewer{
		ctx:        ctx,
		drawer:     drawer,
		iterations: max(iterations, 0),
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		timings:    make([]float64, 0, timingCapacity),
	}
}

func (v *Viewer) Init() tea.Cmd {
	return tea.Batch(v.startDraw(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/10, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			v.abort()
			return v, tea.Quit
		case "c":
			v.abort()
		case "r":
			return v, v.startDraw()
		case "+", "=", "up", "k":
			if v.iterations < maxIterations {
				v.iterations++
				return v, v.startDraw()
			}
		case "-", "_", "down", "j":
			if v.iterations > 0 {
				v.iterations--
				return v, v.startDraw()
			}
		case "t":
			NextTheme()
		case "?":
			v.showHelp = !v.showHelp
		}
	case drawDoneMsg:
		v.finish(msg)
	case TickMsg:
		v.frame++
		return v, tick()
	}
	return v, nil
}

// startDraw cancels any draw in flight and starts a new one at the current
// depth.
func (v *Viewer) startDraw() tea.Cmd {
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	v.gen++
	v.status = statusDrawing
	v.err = nil

	gen, drawer, iterations := v.gen, v.drawer, v.iterations
	return func() tea.Msg {
		res, segments, err := drawer.Draw(ctx, iterations)
		return drawDoneMsg{gen: gen, result: res, segments: segments, err: err}
	}
}

func (v *Viewer) abort() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *Viewer) finish(msg drawDoneMsg) {
	if msg.gen != v.gen {
		return
	}
	v.abort()
	switch {
	case errors.Is(msg.err, lsystem.ErrAborted):
		v.status = statusAborted
		return
	case msg.err != nil:
		v.status = statusFailed
		v.err = msg.err
		return
	}

	v.status = statusDone
	v.result = msg.result
	v.segments = msg.segments
	v.canvas.Clear()
	v.canvas.Plot(v.segments)

	v.timings = append(v.timings, float64(msg.result.Elapsed.Microseconds())/1000)
	if len(v.timings) > timingCapacity {
		v.timings = v.timings[1:]
	}
}

func (v *Viewer) View() string {
	theme := CurrentTheme
	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(theme.Ink().Render(v.canvas.String()))

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(v.drawer.Name()), theme.Secondary, theme.Accent) + "\n\n")
	s.WriteString(v.statusLine() + "\n\n")
	s.WriteString(Field("Iterations", v.iterations) + "\n")

	if res := v.result; res != nil {
		s.WriteString(Field("Length", res.Length) + "\n")
		s.WriteString(Field("Elapsed", res.Elapsed.Round(time.Microsecond)) + "\n")
		s.WriteString(Field("Size", fmt.Sprintf("%.1f x %.1f", res.Box.Width(), res.Box.Height())) + "\n")

		names := make([]string, 0, len(res.Metrics))
		for name := range res.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		s.WriteString("\n")
		for _, name := range names {
			s.WriteString(Field(name, fmt.Sprintf("%.4g", res.Metrics[name])) + "\n")
		}
	}

	if len(v.timings) > 1 {
		chart := asciigraph.Plot(v.timings, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("draw ms"))
		s.WriteString("\n" + chart + "\n")
		s.WriteString(Field("History", Sparkline(v.timings, 20)) + "\n")
	}

	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString(KeyHint.Render("+/-:Depth C:Cancel R:Redraw\nT:Theme  ?:Help  Q:Quit"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, Panel.Render(s.String()))
	if v.showHelp {
		return helpText + "\n" + body
	}
	return body
}

func (v *Viewer) statusLine() string {
	theme := CurrentTheme
	switch v.status {
	case statusDrawing:
		return theme.Status(theme.Warning).Render(Spinner(v.frame) + " DRAWING")
	case statusAborted:
		return theme.Status(theme.Muted).Render("ABORTED")
	case statusFailed:
		return theme.Status(theme.Error).Render("ERROR") + "\n" + theme.Faint().Render(v.err.Error())
	default:
		return theme.Status(theme.Success).Render("DONE")
	}
}

const helpText = `
  +, up    one more rewriting round
  -, down  one fewer rewriting round
  c        cancel the draw in progress
  r        redraw
  t        cycle color themes
  q        quit
`
