package tfactory

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/qre/estimate"
	"github.com/sarchlab/qre/hooking"
	"github.com/sarchlab/qre/qec"
	"github.com/sarchlab/qre/qubit"
)

var _ = Describe("DefaultTFactory", func() {
	It("should pass the patch's T states through", func() {
		code := qec.SurfaceCodeGateBased()
		patch, err := estimate.NewLogicalPatch(code, 19, qubit.NewDefault())
		Expect(err).ToNot(HaveOccurred())

		f := DefaultTFactory(patch)

		Expect(f.NumRounds()).To(Equal(1))
		Expect(f.PhysicalQubits()).To(Equal(uint64(722)))
		Expect(f.Duration()).To(Equal(uint64(7600)))
		Expect(f.NumOutputStates()).To(Equal(uint64(1)))
		Expect(f.OutputErrorRate()).To(Equal(patch.LogicalErrorRate()))
		Expect(f.UnitNames()).To(Equal([]string{"trivial 1-to-1"}))
	})

	It("should charge the patch at distance 1", func() {
		code := qec.SurfaceCodeGateBased()
		patch, err := estimate.NewLogicalPatch(code, 1, qubit.NewDefault())
		Expect(err).ToNot(HaveOccurred())

		f := DefaultTFactory(patch)

		Expect(f.NumRounds()).To(Equal(1))
		Expect(f.PhysicalQubits()).To(Equal(uint64(2)))
		Expect(f.Duration()).To(Equal(uint64(400)))
		Expect(f.NormalizedVolume()).To(BeNumerically(">", 0))
	})
})

// fifteenToOne is a 15-to-1 unit that only runs on logical qubits.
func fifteenToOne(name string, qubits, cycles uint64) *Template {
	return &Template{
		Name:            name,
		NumInputTs:      15,
		NumOutputTs:     1,
		Type:            Combined,
		FailureProb:     fifteenToOneFailure,
		OutputErrorRate: fifteenToOneOutput,
		PhysicalSpec:    &Resources{NumUnitQubits: qubits, DurationInQubitCycleTime: 45},
		LogicalSpec:     &Resources{NumUnitQubits: qubits, DurationInQubitCycleTime: cycles},
	}
}

func chemistryTemplates() []*Template {
	return []*Template{
		fifteenToOne("15-to-1 fast", 30, 6),
		fifteenToOne("15-to-1 balanced", 20, 12),
		fifteenToOne("15-to-1 compact", 18, 23),
		fifteenToOne("15-to-1 wide", 31, 11),
	}
}

func costs(factories []*TFactory) (qubits, durations []uint64) {
	for _, f := range factories {
		qubits = append(qubits, f.PhysicalQubits())
		durations = append(durations, f.Duration())
	}

	return qubits, durations
}

var _ = Describe("Search", func() {
	var (
		code   *qec.Protocol
		search *Search
	)

	BeforeEach(func() {
		code = qec.SurfaceCodeGateBased()
		search = MakeBuilder().Build()
	})

	It("should use the trivial factory above the T error rate", func() {
		factories, err := search.FindFactories(code, qubit.NewDefault(), 0, 1e-1, 19)
		Expect(err).ToNot(HaveOccurred())
		Expect(factories).To(HaveLen(1))

		f := factories[0]
		Expect(f.NumRounds()).To(Equal(1))
		Expect(f.PhysicalQubits()).To(Equal(uint64(722)))
		Expect(f.Duration()).To(Equal(uint64(7600)))
	})

	It("should find the chemistry factories", func() {
		search = MakeBuilder().WithTemplates(chemistryTemplates()).Build()

		factories := search.FindNondominatedTFactories(
			code, qubit.GateUsE3(), 6.123826261916663e-16, 49)

		qubits, durations := costs(factories)
		Expect(qubits).To(Equal([]uint64{50460, 33640, 30276}))
		Expect(durations).To(Equal([]uint64{104400000, 208800000, 400200000}))

		for _, f := range factories {
			Expect(f.NumRounds()).To(Equal(1))
			d, ok := f.MaxCodeParameter()
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal(uint64(29)))
		}
	})

	It("should find nondominated factories", func() {
		q := qubit.GateUsE3()
		target := 6.123826261916663e-16

		var found int
		search.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			if ctx.Pos == HookPosFactoryFound {
				found++
			}
		}))

		factories := search.FindNondominatedTFactories(code, q, target, 49)

		qubits, durations := costs(factories)
		Expect(qubits).To(Equal([]uint64{52142, 33640}))
		Expect(durations).To(Equal([]uint64{191400000, 226200000}))
		Expect(found).To(BeNumerically(">=", len(factories)))

		for i, f := range factories {
			Expect(f.OutputErrorRate()).To(BeNumerically("<=", target))
			Expect(f.NumOutputStates()).To(BeNumerically(">=", 1))

			if i > 0 {
				prev := factories[i-1]
				Expect(f.Duration()).To(BeNumerically(">", prev.Duration()))
				Expect(f.NormalizedQubits()).
					To(BeNumerically("<", prev.NormalizedQubits()))
			}
		}
	})

	It("should not get cheaper for tighter targets", func() {
		q := qubit.GateNsE3()

		var lastQubits, lastDuration float64
		for _, target := range []float64{1e-6, 1e-12, 1e-18} {
			factories := search.FindNondominatedTFactories(code, q, target, 49)
			Expect(factories).ToNot(BeEmpty())

			minQubits, minDuration := math.Inf(1), math.Inf(1)
			for _, f := range factories {
				minQubits = math.Min(minQubits, f.NormalizedQubits())
				minDuration = math.Min(minDuration, float64(f.Duration()))
			}

			Expect(minQubits).To(BeNumerically(">=", lastQubits))
			Expect(minDuration).To(BeNumerically(">=", lastDuration))
			lastQubits, lastDuration = minQubits, minDuration
		}
	})

	It("should return the same factories when run again", func() {
		q := qubit.GateNsE3()

		first := search.FindNondominatedTFactories(code, q, 1e-10, 49)
		second := search.FindNondominatedTFactories(code, q, 1e-10, 49)

		Expect(first).ToNot(BeEmpty())
		Expect(second).To(HaveLen(len(first)))
		for i := range first {
			Expect(second[i].Duration()).To(Equal(first[i].Duration()))
			Expect(second[i].PhysicalQubits()).To(Equal(first[i].PhysicalQubits()))
		}
	})

	It("should return nothing for unreachable targets", func() {
		factories, err := search.FindFactories(
			code, qubit.GateNsE3(), 0, 1e-300, 5)
		Expect(err).ToNot(HaveOccurred())
		Expect(factories).To(BeEmpty())
	})

	It("should support a single magic state type", func() {
		Expect(search.NumMagicStateTypes()).To(Equal(1))
	})

	It("should panic without templates", func() {
		Expect(func() {
			MakeBuilder().WithTemplates(nil).Build()
		}).To(Panic())
	})
})
