package pareto

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Population", func() {
	var (
		population *Population[string]
	)

	BeforeEach(func() {
		population = NewPopulation[string]()
	})

	It("should tell if a point is dominated", func() {
		population.PushItem("a", 1, 5)
		population.PushItem("b", 3, 2)

		Expect(population.Dominates(NewPoint2D("", 2, 6))).To(BeTrue())
		Expect(population.Dominates(NewPoint2D("", 3, 2))).To(BeTrue())
		Expect(population.Dominates(NewPoint2D("", 2, 3))).To(BeFalse())
		Expect(population.Dominates(NewPoint2D("", 0, 100))).To(BeFalse())
	})

	It("should filter out dominated points", func() {
		population.PushItem("c", 4, 4)
		population.PushItem("a", 1, 5)
		population.PushItem("d", 2, 6)
		population.PushItem("b", 3, 2)
		population.PushItem("e", 5, 1)

		population.FilterOutDominated()

		Expect(population.ExtractItems()).To(Equal([]string{"a", "b", "e"}))
		Expect(population.Len()).To(Equal(0))
	})

	It("should collapse duplicates to the first pushed", func() {
		population.PushItem("first", 2, 2)
		population.PushItem("second", 2, 2)
		population.PushItem("same-x", 2, 3)

		population.FilterOutDominated()

		items := population.Items()
		Expect(items).To(HaveLen(1))
		Expect(items[0].Item).To(Equal("first"))
	})

	It("should sort by x then y", func() {
		population.PushItem("c", 2, 1)
		population.PushItem("b", 1, 3)
		population.PushItem("a", 1, 2)

		population.SortItems()

		Expect(population.ExtractItems()).To(Equal([]string{"a", "b", "c"}))
	})

	It("should only filter when grown enough", func() {
		population.PushItem("a", 1, 1)
		population.FilterOutDominated()

		population.PushItem("b", 2, 2)
		population.AttemptFilterOutDominated()
		Expect(population.Len()).To(Equal(2))

		population.PushItem("c", 3, 3)
		population.AttemptFilterOutDominated()
		Expect(population.Len()).To(Equal(1))
	})

	It("should leave an antichain", func() {
		r := rand.New(rand.NewSource(1))
		for i := 0; i < 500; i++ {
			population.PushItem("", float64(r.Intn(50)), float64(r.Intn(50)))
			population.AttemptFilterOutDominated()
		}

		population.FilterOutDominated()

		items := population.Items()
		Expect(items).NotTo(BeEmpty())
		for i := range items {
			for j := range items {
				if i == j {
					continue
				}
				Expect(items[i].WeaklyDominates(items[j])).To(BeFalse())
			}
		}
	})
})
