// Package counts describes the logical resources of an algorithm and maps
// them to a logical layout.
package counts

import (
	"errors"
	"fmt"
	"math"

	"github.com/sarchlab/qre/estimate"
)

// Constants of the rotation synthesis cost model. A rotation needs
// ceil(rotationSynthesisSlope * log2(R / eps) + rotationSynthesisOffset)
// T states, where R is the number of rotations and eps the rotation error
// budget.
const (
	rotationSynthesisSlope  = 0.53
	rotationSynthesisOffset = 4.86
)

// LogicalCounts are the logical resources of an algorithm. They lay out the
// algorithm qubits in a parallel synthesis sequential Pauli computation
// (PSSPC) layout.
type LogicalCounts struct {
	NumQubits        uint64 `yaml:"numQubits" json:"numQubits"`
	TCount           uint64 `yaml:"tCount" json:"tCount"`
	RotationCount    uint64 `yaml:"rotationCount" json:"rotationCount"`
	RotationDepth    uint64 `yaml:"rotationDepth" json:"rotationDepth"`
	CCZCount         uint64 `yaml:"cczCount" json:"cczCount"`
	CCIXCount        uint64 `yaml:"ccixCount" json:"ccixCount"`
	MeasurementCount uint64 `yaml:"measurementCount" json:"measurementCount"`
}

// Validate checks that the counts are consistent.
func (c *LogicalCounts) Validate() error {
	if c.RotationDepth > c.RotationCount {
		return fmt.Errorf("rotation depth %d exceeds rotation count %d",
			c.RotationDepth, c.RotationCount)
	}

	if c.RotationCount > 0 && c.RotationDepth == 0 {
		return errors.New("rotation depth must be positive if there are rotations")
	}

	return nil
}

// HasMagicStates tells if the algorithm consumes T states.
func (c *LogicalCounts) HasMagicStates() bool {
	return c.TCount > 0 || c.CCZCount > 0 || c.CCIXCount > 0 ||
		c.RotationCount > 0
}

// LogicalQubits returns the number of logical qubits of the layout. It adds
// routing qubits to the algorithm qubits.
func (c *LogicalCounts) LogicalQubits() uint64 {
	q := float64(c.NumQubits)
	routing := uint64(math.Ceil(math.Sqrt(8 * q)))

	return 2*c.NumQubits + routing + 1
}

// LogicalDepth returns the number of logical cycles. Every measurement,
// rotation, and T gate takes one cycle, every CCZ and CCiX gate three, and
// each layer of rotations one cycle per T state of the synthesis.
func (c *LogicalCounts) LogicalDepth(budget *estimate.ErrorBudget) uint64 {
	depth := c.MeasurementCount + c.RotationCount + c.TCount +
		3*(c.CCZCount+c.CCIXCount)

	if n, ok := c.NumTsPerRotation(budget.Rotations()); ok {
		depth += n * c.RotationDepth
	}

	return depth
}

// NumMagicStates returns the number of T states. There are no other magic
// state types.
func (c *LogicalCounts) NumMagicStates(
	budget *estimate.ErrorBudget,
	magicStateType int,
) uint64 {
	if magicStateType != 0 {
		return 0
	}

	n := c.TCount + 4*(c.CCZCount+c.CCIXCount)

	if perRotation, ok := c.NumTsPerRotation(budget.Rotations()); ok {
		n += perRotation * c.RotationCount
	}

	return n
}

// NumTsPerRotation returns the number of T states that synthesize one
// rotation within the rotation error budget. It returns false if there are
// no rotations or if the budget is not positive.
func (c *LogicalCounts) NumTsPerRotation(rotationBudget float64) (uint64, bool) {
	if c.RotationCount == 0 || rotationBudget <= 0 {
		return 0, false
	}

	return numTsPerRotation(c.RotationCount, rotationBudget), true
}

func numTsPerRotation(rotationCount uint64, rotationBudget float64) uint64 {
	x := rotationSynthesisSlope*math.Log2(float64(rotationCount)/rotationBudget) +
		rotationSynthesisOffset

	return uint64(math.Max(math.Ceil(x), 0))
}

// PruneErrorBudget lowers the rotation budget to the smallest value that
// still needs the same number of T states per rotation and adds the rest to
// the magic state budget. The logical budget is pruned by the estimation.
func (c *LogicalCounts) PruneErrorBudget(
	budget *estimate.ErrorBudget,
	strategy estimate.ErrorBudgetStrategy,
) {
	if strategy != estimate.PruneLogicalAndRotations {
		return
	}

	n, ok := c.NumTsPerRotation(budget.Rotations())
	if !ok {
		return
	}

	exponent := (float64(n) - rotationSynthesisOffset) / rotationSynthesisSlope
	pruned := float64(c.RotationCount) / math.Exp2(exponent)

	for i := 0; i < 64 && numTsPerRotation(c.RotationCount, pruned) > n; i++ {
		pruned = math.Nextafter(pruned, math.Inf(1))
	}

	if pruned >= budget.Rotations() ||
		numTsPerRotation(c.RotationCount, pruned) > n {
		return
	}

	budget.SetMagicStates(budget.MagicStates() + budget.Rotations() - pruned)
	budget.SetRotations(pruned)
}
