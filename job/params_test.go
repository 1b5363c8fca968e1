package job

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/qre/counts"
	"github.com/sarchlab/qre/estimate"
	"github.com/sarchlab/qre/qec"
	"github.com/sarchlab/qre/qubit"
)

func ptr[T any](v T) *T {
	return &v
}

var _ = Describe("Load", func() {
	It("should read inline parameters", func() {
		j, err := Load(strings.NewReader(`
logicalCounts:
  numQubits: 100
  tCount: 20
errorBudget: 0.01
qubitParams:
  name: qubit_maj_ns_e4
qecScheme:
  name: floquet_code
estimateType: frontier
`))
		Expect(err).ToNot(HaveOccurred())

		Expect(j.IsBatch()).To(BeFalse())
		Expect(j.LogicalCounts.NumQubits).To(Equal(uint64(100)))
		Expect(j.QubitParams.Name).To(Equal("qubit_maj_ns_e4"))
		Expect(j.QECScheme.Name).To(Equal("floquet_code"))
		Expect(j.EstimateType).To(Equal(Frontier))
		Expect(*j.ErrorBudget.Total).To(Equal(0.01))
		Expect(j.AllParams()).To(HaveLen(1))
	})

	It("should read items", func() {
		j, err := Load(strings.NewReader(`
logicalCounts:
  numQubits: 1
  tCount: 1
items:
  - errorBudget: 0.1
  - errorBudget: 0.2
    constraints:
      maxDuration: 1ms
`))
		Expect(err).ToNot(HaveOccurred())

		Expect(j.IsBatch()).To(BeTrue())
		Expect(j.AllParams()).To(HaveLen(2))
		Expect(*j.Items[1].Constraints.MaxDuration).To(Equal("1ms"))
	})

	It("should reject unknown fields", func() {
		_, err := Load(strings.NewReader(`
logicalCounts:
  numQubits: 1
qubitParam:
  name: qubit_gate_ns_e3
`))
		Expect(err).To(HaveOccurred())
		Expect(AsFailure(err).Code).To(Equal(CodeInvalidJob))
	})

	It("should fail on a missing file", func() {
		_, err := LoadFile("does/not/exist.yaml")
		Expect(AsFailure(err).Code).To(Equal(CodeInvalidJob))
	})
})

var _ = Describe("Params", func() {
	var c *counts.LogicalCounts

	BeforeEach(func() {
		c = &counts.LogicalCounts{NumQubits: 1, TCount: 1}
	})

	It("should resolve defaults", func() {
		s, err := Params{}.resolve(c)
		Expect(err).ToNot(HaveOccurred())

		Expect(s.qubit.Name).To(Equal("qubit_gate_ns_e3"))
		Expect(s.code.Name()).To(Equal("surface_code"))
		Expect(s.templates).To(HaveLen(2))
		Expect(s.budget.Total()).To(BeNumerically("~", counts.DefaultTotalBudget, 1e-15))
		Expect(s.strategy).To(Equal(estimate.Static))
		Expect(s.estimateType).To(Equal(SinglePoint))
		Expect(s.maxDuration).To(BeNil())
	})

	It("should convert the max duration to ns", func() {
		p := Params{Constraints: Constraints{MaxDuration: ptr("1.5us")}}

		s, err := p.resolve(c)
		Expect(err).ToNot(HaveOccurred())
		Expect(*s.maxDuration).To(Equal(uint64(1500)))
	})

	DescribeTable("should reject invalid parameters",
		func(p Params, code string) {
			_, err := p.resolve(c)
			Expect(err).To(HaveOccurred())
			Expect(AsFailure(err).Code).To(Equal(code))
		},
		Entry("unknown qubit",
			Params{QubitParams: qubit.Params{Name: "nope"}},
			CodeInvalidQubitParams),
		Entry("floquet code on gate-based qubit",
			Params{QECScheme: qec.Params{Name: "floquet_code"}},
			CodeInvalidQECScheme),
		Entry("unknown strategy",
			Params{ErrorBudgetStrategy: "greedy"},
			CodeInvalidErrorBudget),
		Entry("budget out of range",
			Params{ErrorBudget: counts.BudgetParams{Total: ptr(1.5)}},
			CodeInvalidErrorBudget),
		Entry("unknown estimate type",
			Params{EstimateType: "everything"},
			CodeInvalidEstimateType),
		Entry("depth factor below one",
			Params{Constraints: Constraints{LogicalDepthFactor: ptr(0.5)}},
			CodeInvalidConstraints),
		Entry("zero factories",
			Params{Constraints: Constraints{MaxTFactories: ptr(uint64(0))}},
			CodeInvalidConstraints),
		Entry("duration and qubits",
			Params{Constraints: Constraints{
				MaxDuration:       ptr("1s"),
				MaxPhysicalQubits: ptr(uint64(1000)),
			}},
			CodeInvalidConstraints),
		Entry("frontier with max duration",
			Params{
				EstimateType: Frontier,
				Constraints:  Constraints{MaxDuration: ptr("1s")},
			},
			CodeInvalidConstraints),
		Entry("malformed duration",
			Params{Constraints: Constraints{MaxDuration: ptr("soon")}},
			CodeInvalidConstraints),
		Entry("negative duration",
			Params{Constraints: Constraints{MaxDuration: ptr("-1s")}},
			CodeInvalidConstraints),
	)
})
