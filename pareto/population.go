package pareto

import (
	"math"
	"sort"
)

// A Population collects candidate points and reduces them to their
// nondominated subset.
type Population[T any] struct {
	items        []Point2D[T]
	filteredSize int
}

// NewPopulation creates an empty population.
func NewPopulation[T any]() *Population[T] {
	return &Population[T]{}
}

// Push inserts a point.
func (p *Population[T]) Push(point Point2D[T]) {
	p.items = append(p.items, point)
}

// PushItem inserts an item with the given costs.
func (p *Population[T]) PushItem(item T, x, y float64) {
	p.Push(NewPoint2D(item, x, y))
}

// Len returns the number of points currently held.
func (p *Population[T]) Len() int {
	return len(p.items)
}

// Items returns the points currently held. The returned slice must not be
// modified.
func (p *Population[T]) Items() []Point2D[T] {
	return p.items
}

// Dominates returns true if any point in the population is no worse than
// the given point on both axes.
func (p *Population[T]) Dominates(point Point2D[T]) bool {
	for _, item := range p.items {
		if item.WeaklyDominates(point) {
			return true
		}
	}

	return false
}

// FilterOutDominated removes every point that is weakly dominated by another
// retained point. Among points with equal costs, the one pushed first is
// kept. Afterwards the population is sorted and forms an antichain.
func (p *Population[T]) FilterOutDominated() {
	p.SortItems()

	kept := p.items[:0]
	minY := math.Inf(1)
	for _, item := range p.items {
		if item.Y < minY {
			kept = append(kept, item)
			minY = item.Y
		}
	}

	for i := len(kept); i < len(p.items); i++ {
		var zero Point2D[T]
		p.items[i] = zero
	}

	p.items = kept
	p.filteredSize = len(kept)
}

// AttemptFilterOutDominated filters the population only when it has grown
// to twice the size it had after the last filtering, so that frequent
// pushes stay cheap.
func (p *Population[T]) AttemptFilterOutDominated() {
	if len(p.items) > 2*p.filteredSize {
		p.FilterOutDominated()
	}
}

// SortItems orders the points by X and then by Y. Points with equal costs
// keep their insertion order.
func (p *Population[T]) SortItems() {
	sort.SliceStable(p.items, func(i, j int) bool {
		return p.items[i].Less(p.items[j])
	})
}

// Extract hands the points over to the caller and leaves the population
// empty.
func (p *Population[T]) Extract() []Point2D[T] {
	items := p.items
	p.items = nil
	p.filteredSize = 0

	return items
}

// ExtractItems is like Extract but drops the costs.
func (p *Population[T]) ExtractItems() []T {
	points := p.Extract()

	items := make([]T, 0, len(points))
	for _, point := range points {
		items = append(items, point.Item)
	}

	return items
}
