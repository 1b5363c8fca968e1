package distillation

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type sampleUnit struct {
	name           string
	inputs         uint64
	outputs        uint64
	qubits         uint64
	duration       uint64
	distance       uint64
	hasDistance    bool
	failure        float64
	errorReduction float64
}

func (u sampleUnit) Name() string                { return u.name }
func (u sampleUnit) NumInputStates() uint64      { return u.inputs }
func (u sampleUnit) NumOutputStates() uint64     { return u.outputs }
func (u sampleUnit) Duration(_ int) uint64       { return u.duration }
func (u sampleUnit) PhysicalQubits(_ int) uint64 { return u.qubits }

func (u sampleUnit) CodeParameter() (uint64, bool) {
	return u.distance, u.hasDistance
}

func (u sampleUnit) OutputErrorRate(input float64) (float64, error) {
	return input * u.errorReduction, nil
}

func (u sampleUnit) FailureProbability(_ float64) (float64, error) {
	return u.failure, nil
}

var _ = Describe("Binomial quantile", func() {
	It("should find the smallest number of successes", func() {
		Expect(successQuantile(1, 0.5, 0.01)).To(Equal(uint64(0)))
		Expect(successQuantile(7, 0.5, 0.01)).To(Equal(uint64(1)))
		Expect(successQuantile(6, 0.5, 0.01)).To(Equal(uint64(0)))
		Expect(successQuantile(10, 0, 0.01)).To(Equal(uint64(10)))
	})
})

var _ = Describe("RoundBasedFactory", func() {
	var (
		unit sampleUnit
	)

	BeforeEach(func() {
		unit = sampleUnit{
			name:           "sample",
			inputs:         15,
			outputs:        1,
			qubits:         10,
			duration:       100,
			distance:       7,
			hasDistance:    true,
			failure:        0.5,
			errorReduction: 0.1,
		}
	})

	It("should size a single round", func() {
		f, err := Build([]Unit[uint64]{unit}, 0.01, 0.01)

		Expect(err).NotTo(HaveOccurred())
		Expect(f.NumRounds()).To(Equal(1))
		Expect(f.NumUnitsPerRound()).To(Equal([]uint64{7}))
		Expect(f.PhysicalQubits()).To(Equal(uint64(70)))
		Expect(f.Duration()).To(Equal(uint64(100)))
		Expect(f.NumOutputStates()).To(Equal(uint64(1)))
		Expect(f.NumInputStates()).To(Equal(uint64(105)))
		Expect(f.InputErrorRate()).To(Equal(0.01))
		Expect(f.OutputErrorRate()).To(BeNumerically("~", 0.001, 1e-15))
		Expect(f.NormalizedQubits()).To(Equal(70.0))
		Expect(f.NormalizedVolume()).To(Equal(7000.0))
		Expect(f.UnitNames()).To(Equal([]string{"sample"}))

		d, ok := f.MaxCodeParameter()
		Expect(ok).To(BeTrue())
		Expect(d).To(Equal(uint64(7)))
	})

	It("should combine qubits of several rounds", func() {
		second := unit
		second.name = "second"
		second.qubits = 1

		f, err := Build([]Unit[uint64]{unit, second}, 0.01, 0.02)
		Expect(err).NotTo(HaveOccurred())

		perRound := f.PhysicalQubitsPerRound()
		Expect(perRound).To(HaveLen(2))
		Expect(f.PhysicalQubits()).To(Equal(max(perRound[0], perRound[1])))
		Expect(f.Duration()).To(Equal(uint64(200)))

		f.SetPhysicalQubitCalculation(Sum)
		Expect(f.PhysicalQubits()).To(Equal(perRound[0] + perRound[1]))
	})

	It("should feed the outputs of a round into the next one", func() {
		second := unit
		second.name = "second"

		f, err := Build([]Unit[uint64]{unit, second}, 0.01, 0.02)
		Expect(err).NotTo(HaveOccurred())

		units := f.NumUnitsPerRound()
		Expect(units[1]).To(Equal(uint64(7)))
		Expect(f.Rounds()[0].NumOutputStates(0.5)).
			To(BeNumerically(">=", 15*units[1]))
	})

	It("should report physical rounds without code parameter", func() {
		unit.hasDistance = false

		f, err := Build([]Unit[uint64]{unit}, 0.01, 0.01)
		Expect(err).NotTo(HaveOccurred())

		Expect(f.CodeParameterPerRound()).To(Equal([]*uint64{nil}))
		_, ok := f.MaxCodeParameter()
		Expect(ok).To(BeFalse())
	})

	It("should reject units that increase the error rate", func() {
		unit.errorReduction = 2

		_, err := Build([]Unit[uint64]{unit}, 0.01, 0.01)

		Expect(err).To(MatchError(ErrOutputErrorRateHigherThanInputErrorRate))
	})

	It("should reject units that never fail", func() {
		unit.failure = 0

		_, err := Build([]Unit[uint64]{unit}, 0.01, 0.01)

		Expect(err).To(MatchError(ErrLowFailureProbability))
	})

	It("should reject units that always fail", func() {
		unit.failure = 1

		_, err := Build([]Unit[uint64]{unit}, 0.01, 0.01)

		Expect(err).To(MatchError(ErrHighFailureProbability))
	})

	It("should produce all outputs when nothing can fail", func() {
		round := NewRound[uint64](unit, 0, 0)

		Expect(round.NumOutputStates(0)).To(Equal(uint64(1)))
	})
})
