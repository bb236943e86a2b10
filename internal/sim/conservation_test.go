package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

func circularBinary() []physics.Body {
	v := math.Sqrt(0.5)
	return []physics.Body{
		{Mass: 1, Position: r2.Vec{X: -0.5}, Velocity: r2.Vec{Y: -v}},
		{Mass: 1, Position: r2.Vec{X: 0.5}, Velocity: r2.Vec{Y: v}},
	}
}

func threeBody() []physics.Body {
	return []physics.Body{
		{Mass: 1, Position: r2.Vec{X: -1}, Velocity: r2.Vec{Y: 0.3}},
		{Mass: 1, Position: r2.Vec{X: 1}, Velocity: r2.Vec{Y: -0.3}},
		{Mass: 1},
	}
}

func maxEnergyDrift(s *sim.Simulation, steps int) float64 {
	g, masses := s.Field(), s.Masses()
	e0 := g.Energy(masses, s.Snapshot().State)

	worst := 0.0
	for snap := range s.Run(steps) {
		worst = math.Max(worst, math.Abs(g.Energy(masses, snap.State)-e0)/math.Abs(e0))
	}
	return worst
}

var _ = Describe("Simulation", func() {
	Describe("energy", func() {
		It("stays within 1% over a circular orbit", func() {
			s, err := sim.New(circularBinary(), sim.Params{G: 1, Dt: 0.001})
			Expect(err).NotTo(HaveOccurred())

			Expect(maxEnergyDrift(s, 10000)).To(BeNumerically("<", 0.01))
			Expect(s.IsHealthy()).To(BeTrue())
		})

		It("drifts less than explicit Euler", func() {
			verlet, err := sim.New(circularBinary(), sim.Params{G: 1, Dt: 0.001})
			Expect(err).NotTo(HaveOccurred())
			euler, err := sim.New(circularBinary(), sim.Params{G: 1, Dt: 0.001},
				sim.WithIntegrator(integrators.NewEuler()))
			Expect(err).NotTo(HaveOccurred())

			Expect(maxEnergyDrift(verlet, 5000)).To(BeNumerically("<", maxEnergyDrift(euler, 5000)))
		})
	})

	Describe("momentum", func() {
		It("keeps the mass-weighted acceleration sum at zero", func() {
			s, err := sim.New(threeBody(), sim.Params{G: 1, Dt: 0.01, Softening: 1e-9})
			Expect(err).NotTo(HaveOccurred())
			g, masses := s.Field(), s.Masses()

			for snap := range s.Run(100) {
				acc := g.Accelerations(snap.Positions, masses)
				var net r2.Vec
				scale := 0.0
				for i, a := range acc {
					net = r2.Add(net, r2.Scale(masses[i], a))
					scale += r2.Norm(a) * masses[i]
				}
				Expect(r2.Norm(net)).To(BeNumerically("<=", 1e-9*math.Max(scale, 1)))
			}
		})

		It("conserves total momentum", func() {
			s, err := sim.New(threeBody(), sim.Params{G: 1, Dt: 0.01, Softening: 1e-9})
			Expect(err).NotTo(HaveOccurred())
			masses := s.Masses()
			p0 := physics.Momentum(masses, s.Snapshot().State)

			var last sim.Snapshot
			for snap := range s.Run(200) {
				last = snap
			}
			Expect(r2.Norm(r2.Sub(physics.Momentum(masses, last.State), p0))).To(BeNumerically("<", 1e-9))
		})
	})

	Describe("time reversal", func() {
		flip := func(bodies []physics.Body) []physics.Body {
			for i := range bodies {
				bodies[i].Velocity = r2.Scale(-1, bodies[i].Velocity)
			}
			return bodies
		}

		DescribeTable("returns to the initial state",
			func(steps int) {
				params := sim.Params{G: 1, Dt: 0.01, Softening: 1e-9}
				initial := threeBody()

				forward, err := sim.New(initial, params)
				Expect(err).NotTo(HaveOccurred())
				for range forward.Run(steps) {
				}

				backward, err := sim.New(flip(forward.Bodies()), params)
				Expect(err).NotTo(HaveOccurred())
				for range backward.Run(steps) {
				}

				final := flip(backward.Bodies())
				for i := range initial {
					Expect(r2.Norm(r2.Sub(final[i].Position, initial[i].Position))).To(BeNumerically("<", 1e-12))
					Expect(r2.Norm(r2.Sub(final[i].Velocity, initial[i].Velocity))).To(BeNumerically("<", 1e-12))
				}
			},
			Entry("one step", 1),
			Entry("five steps", 5),
			Entry("ten steps", 10),
		)
	})

	Describe("snapshots", func() {
		It("report bodies in input order", func() {
			s, err := sim.New(threeBody(), sim.Params{G: 1, Dt: 0.01, Softening: 1e-9})
			Expect(err).NotTo(HaveOccurred())

			snap := s.Snapshot()
			Expect(snap.Positions).To(HaveLen(3))
			Expect(snap.Positions[0]).To(Equal(r2.Vec{X: -1}))
			Expect(snap.Positions[1]).To(Equal(r2.Vec{X: 1}))
			Expect(snap.Positions[2]).To(Equal(r2.Vec{}))
		})
	})
})
