package tfactory

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/qre/estimate"
	"github.com/sarchlab/qre/qec"
	"github.com/sarchlab/qre/qubit"
)

func halfTemplate(name string, unitType UnitType) *Template {
	spec := &Resources{NumUnitQubits: 1, DurationInQubitCycleTime: 1}
	params := TemplateParams{
		DisplayName:               name,
		NumInputTs:                1,
		NumOutputTs:               1,
		FailureProbabilityFormula: "0.5 * inputErrorRate",
		OutputErrorRateFormula:    "0.5 * inputErrorRate",
	}

	switch unitType {
	case Physical:
		params.PhysicalQubitSpecification = spec
	case Logical:
		params.LogicalQubitSpecification = spec
	case Combined:
		params.PhysicalQubitSpecification = spec
		params.LogicalQubitSpecification = spec
	}

	t, err := params.Build()
	Expect(err).ToNot(HaveOccurred())

	return t
}

func templates222() []*Template {
	return []*Template{
		halfTemplate("combined1", Combined),
		halfTemplate("logical1", Logical),
		halfTemplate("physical1", Physical),
		halfTemplate("combined2", Combined),
		halfTemplate("logical2", Logical),
		halfTemplate("physical2", Physical),
	}
}

func templates021() []*Template {
	return []*Template{
		halfTemplate("logical1", Logical),
		halfTemplate("physical1", Physical),
		halfTemplate("logical2", Logical),
	}
}

func newTestUnitsMap(
	q *qubit.PhysicalQubit,
	code *qec.Protocol,
	templates []*Template,
) *UnitsMap {
	distances := code.CodeParameterRange(nil)
	distances = distances[:6]

	patches := make([]*Patch, len(distances))
	for i, d := range distances {
		p, err := estimate.NewLogicalPatch(code, d, q)
		Expect(err).ToNot(HaveOccurred())
		patches[i] = p
	}

	return NewUnitsMap(q, patches, distances, templates)
}

func unitName(m *UnitsMap, position int, distance uint64, index int) string {
	u := m.Get(position, distance, index)
	if u == nil {
		return ""
	}

	return u.Name()
}

func countCombinations(m *UnitsMap, numRounds int) int {
	seen := map[int]bool{}
	m.IterateUnits(numRounds, func(indexes []int) {
		key := 0
		for _, i := range indexes {
			key = key*10 + i
		}
		seen[key] = true
	})

	return len(seen)
}

var _ = Describe("UnitsMap", func() {
	It("should drop physical templates on noisy qubits", func() {
		m := newTestUnitsMap(qubit.NewDefault(), qec.SurfaceCodeGateBased(),
			templates222())

		Expect(m.NumPhysical()).To(Equal(0))
		Expect(m.NumLogical()).To(Equal(2))
		Expect(m.NumCombined()).To(Equal(2))

		Expect(unitName(m, 0, 1, 0)).To(Equal("combined1"))
		Expect(unitName(m, 0, 1, 1)).To(Equal("combined2"))
		Expect(unitName(m, 0, 3, 0)).To(Equal("combined1"))
		Expect(unitName(m, 0, 3, 1)).To(Equal("combined2"))
		Expect(unitName(m, 0, 3, 2)).To(Equal("logical1"))
		Expect(unitName(m, 0, 3, 3)).To(Equal("logical2"))
	})

	It("should keep physical templates on good qubits", func() {
		m := newTestUnitsMap(qubit.MajNsE4(), qec.FloquetCodeMeasurementBased(),
			templates222())

		Expect(m.NumPhysical()).To(Equal(2))
		Expect(m.NumLogical()).To(Equal(2))
		Expect(m.NumCombined()).To(Equal(2))

		Expect(unitName(m, 0, 1, 0)).To(Equal("combined1"))
		Expect(unitName(m, 0, 1, 1)).To(Equal("combined2"))
		Expect(unitName(m, 0, 1, 2)).To(BeEmpty())
		Expect(unitName(m, 0, 1, 4)).To(Equal("physical1"))
		Expect(unitName(m, 0, 1, 5)).To(Equal("physical2"))
		Expect(unitName(m, 0, 3, 2)).To(Equal("logical1"))
		Expect(unitName(m, 0, 3, 4)).To(BeEmpty())
		Expect(unitName(m, 1, 1, 2)).To(Equal("logical1"))
	})

	It("should handle missing combined templates", func() {
		m := newTestUnitsMap(qubit.MajNsE4(), qec.FloquetCodeMeasurementBased(),
			templates021())

		Expect(m.NumPhysical()).To(Equal(1))
		Expect(m.NumLogical()).To(Equal(2))
		Expect(m.NumCombined()).To(Equal(0))
		Expect(unitName(m, 0, 1, 2)).To(Equal("physical1"))
		Expect(unitName(m, 0, 3, 0)).To(Equal("logical1"))
		Expect(unitName(m, 0, 3, 1)).To(Equal("logical2"))
	})

	It("should apply first round overrides", func() {
		withOverride, err := TemplateParams{
			DisplayName:                "combined with override",
			NumInputTs:                 1,
			NumOutputTs:                1,
			FailureProbabilityFormula:  "0.5 * inputErrorRate",
			OutputErrorRateFormula:     "0.5 * inputErrorRate",
			PhysicalQubitSpecification: &Resources{1, 2},
			LogicalQubitSpecification:  &Resources{3, 4},
			LogicalQubitSpecificationFirstRoundOverride: &Resources{5, 6},
		}.Build()
		Expect(err).ToNot(HaveOccurred())

		withoutOverride, err := TemplateParams{
			DisplayName:                "combined without override",
			NumInputTs:                 1,
			NumOutputTs:                1,
			FailureProbabilityFormula:  "0.5 * inputErrorRate",
			OutputErrorRateFormula:     "0.5 * inputErrorRate",
			PhysicalQubitSpecification: &Resources{1, 2},
			LogicalQubitSpecification:  &Resources{3, 4},
		}.Build()
		Expect(err).ToNot(HaveOccurred())

		templates := append(templates222(), withOverride, withoutOverride)
		m := newTestUnitsMap(qubit.MajNsE4(), qec.FloquetCodeMeasurementBased(),
			templates)

		Expect(m.NumCombined()).To(Equal(4))

		check := func(position int, distance uint64, index int,
			name string, qubits, duration uint64) {
			u := m.Get(position, distance, index)
			Expect(u).ToNot(BeNil())
			Expect(u.Name()).To(Equal(name))
			Expect(u.PhysicalQubits(position)).To(Equal(qubits))
			Expect(u.Duration(position)).To(Equal(duration))
		}

		check(0, 1, 2, "combined with override", 1, 200)
		check(0, 1, 3, "combined without override", 1, 200)
		check(1, 1, 2, "combined with override", 12, 1200)
		check(1, 1, 3, "combined without override", 12, 1200)
		check(0, 3, 2, "combined with override", 260, 5400)
		check(0, 3, 3, "combined without override", 156, 3600)
		check(1, 3, 2, "combined with override", 156, 3600)
		check(1, 3, 3, "combined without override", 156, 3600)
	})

	It("should iterate all unit combinations", func() {
		m := newTestUnitsMap(qubit.MajNsE4(), qec.FloquetCodeMeasurementBased(),
			templates222())

		Expect(countCombinations(m, 1)).To(Equal(6))
		Expect(countCombinations(m, 2)).To(Equal(24))
		Expect(countCombinations(m, 3)).To(Equal(96))
	})

	It("should iterate combinations without combined templates", func() {
		m := newTestUnitsMap(qubit.MajNsE4(), qec.FloquetCodeMeasurementBased(),
			templates021())

		Expect(countCombinations(m, 1)).To(Equal(3))
		Expect(countCombinations(m, 2)).To(Equal(6))
	})

	It("should bound distance indexes", func() {
		m := newTestUnitsMap(qubit.MajNsE4(), qec.FloquetCodeMeasurementBased(),
			templates222())

		Expect(m.MinDistanceIndexes([]int{0, 1})).To(Equal([]int{0, 0}))
		Expect(m.MinDistanceIndexes([]int{2, 0})).To(Equal([]int{1, 0}))
		Expect(m.MaxDistanceIndexes([]int{4, 0})).To(Equal([]int{0, 5}))
	})
})
