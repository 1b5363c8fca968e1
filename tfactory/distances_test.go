package tfactory

import (
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func recordingCheck(visited *[][]int, result func([]int) bool) func([]int) bool {
	return func(indexes []int) bool {
		*visited = append(*visited, slices.Clone(indexes))
		return result(indexes)
	}
}

var _ = Describe("Code distance iteration", func() {
	always := func([]int) bool { return true }
	never := func([]int) bool { return false }

	It("should visit all non-decreasing sequences", func() {
		var visited [][]int
		iterateCodeDistances([]int{0, 0}, []int{2, 2}, []int{0, 0},
			recordingCheck(&visited, always))

		Expect(visited).To(Equal([][]int{
			{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2},
		}))
	})

	It("should stop growing the last round", func() {
		var visited [][]int
		iterateCodeDistances([]int{0, 0}, []int{2, 2}, []int{0, 0},
			recordingCheck(&visited, never))

		Expect(visited).To(Equal([][]int{{0, 0}, {1, 1}, {2, 2}}))
	})

	It("should respect fixed rounds", func() {
		var visited [][]int
		iterateCodeDistances([]int{0, 0}, []int{0, 1}, []int{0, 0},
			recordingCheck(&visited, always))

		Expect(visited).To(Equal([][]int{{0, 0}, {0, 1}}))
	})

	It("should search uniform distances", func() {
		var visited [][]int
		start, found := searchCodeDistances([]int{1, 0}, []int{2, 2},
			recordingCheck(&visited, always))

		Expect(found).To(BeFalse())
		Expect(start).To(BeNil())
		Expect(visited).To(Equal([][]int{{1, 1}, {2, 2}}))
	})

	It("should report where the search stops", func() {
		var visited [][]int
		start, found := searchCodeDistances([]int{0, 0, 0}, []int{0, 3, 3},
			recordingCheck(&visited, func(indexes []int) bool {
				return indexes[2] < 2
			}))

		Expect(found).To(BeTrue())
		Expect(start).To(Equal([]int{0, 2, 2}))
		Expect(visited).To(Equal([][]int{{0, 0, 0}, {0, 1, 1}, {0, 2, 2}}))
	})

	It("should continue from the search position", func() {
		var visited [][]int
		iterateCodeDistances([]int{0, 0}, []int{2, 2}, []int{1, 1},
			recordingCheck(&visited, always))

		Expect(visited).To(Equal([][]int{{1, 1}, {1, 2}, {2, 2}}))
	})

	It("should finish the last round of the start prefix first", func() {
		var visited [][]int
		iterateCodeDistances([]int{0, 0}, []int{2, 2}, []int{0, 1},
			recordingCheck(&visited, always))

		Expect(visited).To(Equal([][]int{
			{0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2},
		}))
	})

	It("should not revisit sequences below the search position", func() {
		left, right := []int{0, 0, 0}, []int{0, 3, 3}
		reaches := func(indexes []int) bool { return indexes[2] < 2 }

		start, found := searchCodeDistances(left, right, reaches)
		Expect(found).To(BeTrue())

		var visited [][]int
		iterateCodeDistances(left, right, start,
			recordingCheck(&visited, reaches))

		Expect(visited).To(Equal([][]int{{0, 2, 2}, {0, 3, 3}}))
	})
})
