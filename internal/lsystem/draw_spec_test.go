package lsystem_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lfractal/internal/lsystem"
	"github.com/san-kum/lfractal/internal/turtle"
)

type definition struct {
	char, function, rule string
	terminal             bool
}

func build(axiom string, angle float64, defs ...definition) *lsystem.System {
	g := lsystem.NewGrammar()
	for _, d := range defs {
		if d.terminal {
			Expect(g.DefineTerminal(d.char, d.function)).To(Succeed())
		} else {
			Expect(g.DefineSymbol(d.char, d.function, d.rule)).To(Succeed())
		}
	}
	g.SetAxiom(axiom)
	g.SetAngle(angle)
	sys, err := g.Snapshot()
	Expect(err).NotTo(HaveOccurred())
	return sys
}

var (
	plus  = definition{char: "+", function: "right", terminal: true}
	minus = definition{char: "-", function: "left", terminal: true}
	push  = definition{char: "[", function: "save", terminal: true}
	pop   = definition{char: "]", function: "load", terminal: true}
)

var _ = Describe("Draw", func() {
	var (
		ctx context.Context
		rec *turtle.Recorder
		cfg lsystem.DrawConfig
	)

	BeforeEach(func() {
		ctx = context.Background()
		rec = turtle.NewRecorder()
		cfg = lsystem.DefaultDrawConfig()
	})

	DescribeTable("centers the rendered path on the origin",
		func(sys func() *lsystem.System, iterations int) {
			cfg.Iterations = iterations
			res, err := sys().Draw(ctx, rec, cfg)
			Expect(err).NotTo(HaveOccurred())

			box, ok := rec.Bounds()
			Expect(ok).To(BeTrue())
			Expect(box.MinX + box.MaxX).To(BeNumerically("~", 0, 1e-6))
			Expect(box.MinY + box.MaxY).To(BeNumerically("~", 0, 1e-6))
			Expect(box.Width()).To(BeNumerically("~", res.Box.Width(), 1e-6))
			Expect(box.Height()).To(BeNumerically("~", res.Box.Height(), 1e-6))
		},
		Entry("koch curve", func() *lsystem.System {
			return build("F", 60, definition{char: "F", function: "draw", rule: "F-F++F-F"}, plus, minus)
		}, 3),
		Entry("branching plant", func() *lsystem.System {
			return build("F", 25, definition{char: "F", function: "draw", rule: "FF+[+F-F-F]-[-F+F+F]"}, plus, minus, push, pop)
		}, 3),
		Entry("dragon curve with rewrite-only variables", func() *lsystem.System {
			return build("FX", 90,
				definition{char: "F", function: "draw", terminal: true},
				definition{char: "X", rule: "X+YF+"},
				definition{char: "Y", rule: "-FX-Y"},
				plus, minus)
		}, 8),
	)

	It("reports the sequence length and the elapsed time", func() {
		sys := build("F", 90, definition{char: "F", function: "draw", rule: "F+F-F"}, plus, minus)
		cfg.Iterations = 2
		res, err := sys.Draw(ctx, rec, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Length).To(Equal(17))
		Expect(res.Elapsed).To(BeNumerically(">", 0))
		Expect(rec.Segments()).To(HaveLen(9))
	})

	Context("with more pops than pushes", func() {
		It("fails with a stack underflow in both passes", func() {
			sys := build("F]", 0, definition{char: "F", function: "draw", terminal: true}, pop)
			seq, err := sys.Expand(0, 0)
			Expect(err).NotTo(HaveOccurred())

			sim := lsystem.NewSimulator(sys.Functions(), 1, sys.Angle(), lsystem.DefaultPrecision)
			_, err = sim.Run(seq, lsystem.Pose{})
			Expect(err).To(MatchError(lsystem.ErrStackUnderflow))

			r := lsystem.NewRenderer(sys.Functions(), 1, sys.Angle())
			err = r.Render(ctx, rec, seq, lsystem.Pose{}, lsystem.BoundingBox{})
			Expect(err).To(MatchError(lsystem.ErrStackUnderflow))
		})
	})

	Context("when the context is already canceled", func() {
		It("aborts before drawing and leaves a reset surface", func() {
			sys := build("F", 90, definition{char: "F", function: "draw", rule: "F+F-F"}, plus, minus)
			canceled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := sys.Draw(canceled, rec, cfg)
			Expect(err).To(MatchError(lsystem.ErrAborted))
			Expect(rec.Segments()).To(BeEmpty())
			Expect(rec.Position()).To(Equal(lsystem.Point{}))
		})
	})

	Context("with a balanced branch", func() {
		It("returns to the pose before the branch", func() {
			sys := build("[+F-F]", 30, definition{char: "F", function: "draw", terminal: true}, plus, minus, push, pop)
			cfg.Iterations = 0
			_, err := sys.Draw(ctx, rec, cfg)
			Expect(err).NotTo(HaveOccurred())

			segs := rec.Segments()
			Expect(segs).To(HaveLen(2))
			Expect(rec.Position().X).To(BeNumerically("~", segs[0].From.X, 1e-9))
			Expect(rec.Position().Y).To(BeNumerically("~", segs[0].From.Y, 1e-9))
			Expect(math.Abs(rec.Heading())).To(BeNumerically("~", 0, 1e-9))
		})
	})
})
