// Package pareto provides a two-objective Pareto frontier over arbitrary
// items.
package pareto

import "fmt"

// A Point2D attaches two cost values to an item. Lower is better on both
// axes.
type Point2D[T any] struct {
	Item T
	X    float64
	Y    float64
}

// NewPoint2D creates a new point.
func NewPoint2D[T any](item T, x, y float64) Point2D[T] {
	return Point2D[T]{Item: item, X: x, Y: y}
}

// WeaklyDominates returns true if p is no worse than o on both axes.
func (p Point2D[T]) WeaklyDominates(o Point2D[T]) bool {
	return p.X <= o.X && p.Y <= o.Y
}

// StrictlyDominates returns true if p is no worse than o on both axes and
// better on at least one of them.
func (p Point2D[T]) StrictlyDominates(o Point2D[T]) bool {
	return p.WeaklyDominates(o) && (p.X < o.X || p.Y < o.Y)
}

// Less orders points by X first and Y second.
func (p Point2D[T]) Less(o Point2D[T]) bool {
	if p.X != o.X {
		return p.X < o.X
	}

	return p.Y < o.Y
}

func (p Point2D[T]) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
