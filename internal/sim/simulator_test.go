package sim_test

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/integrators"
	"github.com/san-kum/lorenz/internal/logging"
	"github.com/san-kum/lorenz/internal/physics"
	"github.com/san-kum/lorenz/internal/sim"
)

type explosive struct{}

func (explosive) Derive(p dynamo.Point3) dynamo.Point3 { return p.Scale(1e200) }

type recorder struct {
	started, finished int
	steps             int
	lastErr           error
}

func (r *recorder) OnStart(steps int, dt float64) { r.started++ }
func (r *recorder) OnFinish(stepsTaken int, elapsed time.Duration, err error) {
	r.finished++
	r.steps = stepsTaken
	r.lastErr = err
}

var _ = Describe("Simulator", func() {
	var (
		ctx  context.Context
		seed dynamo.Point3
		s    *sim.Simulator
	)

	BeforeEach(func() {
		ctx = context.Background()
		seed = dynamo.Point3{1, 0, 0}
		s = sim.New(physics.NewLorenz(), integrators.NewRK4())
	})

	Describe("the reference run", func() {
		var result *sim.Result

		BeforeEach(func() {
			var err error
			result, err = s.Run(ctx, seed, sim.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
		})

		It("stores every point with the seed first", func() {
			Expect(result.Trajectory.Len()).To(Equal(sim.DefaultSteps))
			Expect(result.StepsTaken).To(Equal(sim.DefaultSteps - 1))
			Expect(result.Trajectory.At(0)).To(Equal(dynamo.Point3{1, 0, 0}))
		})

		It("stays finite and bounded on the attractor", func() {
			for i, p := range result.Trajectory.Points() {
				if !p.IsValid() {
					Fail(fmt.Sprintf("non-finite point %v at index %d", p, i))
				}
				for _, v := range p {
					if math.Abs(v) >= 100 {
						Fail(fmt.Sprintf("point %v escaped the attractor at index %d", p, i))
					}
				}
			}
		})

		It("derives each point from its predecessor", func() {
			rk4 := integrators.NewRK4()
			lorenz := physics.NewLorenz()
			for _, i := range []int{1, 2, 1000, 250000, sim.DefaultSteps - 1} {
				want := rk4.Step(lorenz, result.Trajectory.At(i-1), sim.DefaultDt)
				Expect(result.Trajectory.At(i)).To(Equal(want))
			}
		})

		It("is bit-for-bit reproducible", func() {
			again, err := sim.New(physics.NewLorenz(), integrators.NewRK4()).Run(ctx, seed, sim.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(again.Trajectory.Points()).To(Equal(result.Trajectory.Points()))
		})

		It("reports a non-negative elapsed time", func() {
			Expect(result.Elapsed).To(BeNumerically(">=", 0))
		})
	})

	It("matches hand-computed values early in the run", func() {
		result, err := s.Run(ctx, seed, sim.Config{Steps: 101, Dt: 0.01})
		Expect(err).NotTo(HaveOccurred())

		p := result.Trajectory.At(1)
		Expect(p[0]).To(BeNumerically("~", 0.9179275103220833, 1e-12))
		Expect(p[1]).To(BeNumerically("~", 0.2663358084998422, 1e-12))
		Expect(p[2]).To(BeNumerically("~", 0.0012636937278610971, 1e-12))

		last := result.Trajectory.At(100)
		Expect(last[0]).To(BeNumerically("~", -9.408496632815584, 1e-9))
		Expect(last[1]).To(BeNumerically("~", -9.096239022940162, 1e-9))
		Expect(last[2]).To(BeNumerically("~", 28.581694596799725, 1e-9))
	})

	It("keeps only the seed when a single point is requested", func() {
		result, err := s.Run(ctx, seed, sim.Config{Steps: 1, Dt: 0.01})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Trajectory.Len()).To(Equal(1))
		Expect(result.StepsTaken).To(Equal(0))
		Expect(result.Trajectory.At(0)).To(Equal(seed))
	})

	DescribeTable("rejects invalid configuration",
		func(cfg sim.Config) {
			_, err := s.Run(ctx, seed, cfg)
			Expect(err).To(MatchError(dynamo.ErrInvalidConfig))
		},
		Entry("zero steps", sim.Config{Steps: 0, Dt: 0.01}),
		Entry("negative steps", sim.Config{Steps: -5, Dt: 0.01}),
		Entry("zero dt", sim.Config{Steps: 10, Dt: 0}),
		Entry("negative dt", sim.Config{Steps: 10, Dt: -0.01}),
		Entry("infinite dt", sim.Config{Steps: 10, Dt: math.Inf(1)}),
	)

	It("rejects a non-finite seed", func() {
		_, err := s.Run(ctx, dynamo.Point3{math.NaN(), 0, 0}, sim.Config{Steps: 2, Dt: 0.01})
		Expect(err).To(MatchError(dynamo.ErrInvalidState))
	})

	It("fails fast on divergence and keeps the valid prefix", func() {
		s = sim.New(explosive{}, integrators.NewEuler())
		result, err := s.Run(ctx, seed, sim.Config{Steps: 10, Dt: 1})

		var stepErr *dynamo.StepError
		Expect(err).To(BeAssignableToTypeOf(stepErr))
		Expect(err).To(MatchError(dynamo.ErrInvalidState))
		Expect(result.Trajectory.Len()).To(BeNumerically("<", 10))
		for _, p := range result.Trajectory.Points() {
			Expect(p.IsValid()).To(BeTrue())
		}
	})

	It("does not validate when validation is off", func() {
		s = sim.New(explosive{}, integrators.NewEuler(), sim.WithValidation(false))
		result, err := s.Run(ctx, seed, sim.Config{Steps: 10, Dt: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Trajectory.Last().IsValid()).To(BeFalse())
	})

	It("stops when the context is cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		result, err := s.Run(cctx, seed, sim.Config{Steps: 10000, Dt: 0.01})
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Trajectory.Len()).To(Equal(4096))
	})

	It("notifies observers and logs at debug level", func() {
		var buf bytes.Buffer
		rec := &recorder{}
		s = sim.New(physics.NewLorenz(), integrators.NewRK4(),
			sim.WithObserver(rec),
			sim.WithLogger(logging.New(&buf, true)),
		)

		_, err := s.Run(ctx, seed, sim.Config{Steps: 50, Dt: 0.01})
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.started).To(Equal(1))
		Expect(rec.finished).To(Equal(1))
		Expect(rec.steps).To(Equal(49))
		Expect(rec.lastErr).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("integration complete"))
	})
})
