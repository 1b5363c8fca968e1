package estimate

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ErrorBudget", func() {
	It("should sum its parts", func() {
		b := NewErrorBudget(1e-3, 2e-3, 3e-3)
		Expect(b.Total()).To(BeNumerically("~", 6e-3, 1e-15))
	})

	It("should clone independently", func() {
		b := NewErrorBudget(1e-3, 2e-3, 3e-3)
		c := b.Clone()
		c.SetLogical(5e-3)
		c.SetMagicStates(0)
		c.SetRotations(0)

		Expect(b.Logical()).To(Equal(1e-3))
		Expect(b.MagicStates()).To(Equal(2e-3))
		Expect(b.Rotations()).To(Equal(3e-3))
		Expect(c.Logical()).To(Equal(5e-3))
	})

	It("should parse strategies", func() {
		s, err := ParseErrorBudgetStrategy("pruneLogicalAndRotations")
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal(PruneLogicalAndRotations))
		Expect(s.String()).To(Equal("pruneLogicalAndRotations"))

		s, err = ParseErrorBudgetStrategy("")
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal(Static))

		_, err = ParseErrorBudgetStrategy("greedy")
		Expect(err).To(HaveOccurred())
	})
})
