package counts

import (
	"errors"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/qre/estimate"
)

// Errors of the error budget.
var (
	ErrBudgetOutOfRange = errors.New(
		"error budget must be between 0.0 and 1.0 (exclusive)")
	ErrMissingMagicStateBudget = errors.New(
		"magic state budget must be positive if the algorithm uses magic states")
	ErrMissingRotationBudget = errors.New(
		"rotation budget must be positive if the algorithm has rotations")
	ErrTotalAndSplitBudget = errors.New(
		"error budget can either be a total or a split, not both")
)

// BudgetParams is either a total error budget, which is partitioned
// uniformly, or an explicit split.
type BudgetParams struct {
	Total       *float64 `yaml:"total,omitempty" json:"total,omitempty"`
	Logical     *float64 `yaml:"logical,omitempty" json:"logical,omitempty"`
	MagicStates *float64 `yaml:"tstates,omitempty" json:"tstates,omitempty"`
	Rotations   *float64 `yaml:"rotations,omitempty" json:"rotations,omitempty"`
}

// UnmarshalYAML accepts both `0.001` and `{logical: ..., tstates: ...}`.
func (p *BudgetParams) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}

		p.Total = &v

		return nil
	}

	type plain BudgetParams
	return node.Decode((*plain)(p))
}

// DefaultTotalBudget is used if no budget is given.
const DefaultTotalBudget = 1e-3

// Partition turns the budget parameters into an error budget for the
// counts.
func (p BudgetParams) Partition(c *LogicalCounts) (*estimate.ErrorBudget, error) {
	if p.Logical == nil && p.MagicStates == nil && p.Rotations == nil {
		total := DefaultTotalBudget
		if p.Total != nil {
			total = *p.Total
		}

		return PartitionTotal(c, total)
	}

	if p.Total != nil {
		return nil, ErrTotalAndSplitBudget
	}

	b := estimate.NewErrorBudget(
		valueOrZero(p.Logical),
		valueOrZero(p.MagicStates),
		valueOrZero(p.Rotations))

	if err := CheckErrorBudget(c, b); err != nil {
		return nil, err
	}

	return b, nil
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}

// PartitionTotal splits a total error budget evenly among the parts the
// algorithm needs.
func PartitionTotal(c *LogicalCounts, total float64) (*estimate.ErrorBudget, error) {
	if total <= 0 || total >= 1 {
		return nil, ErrBudgetOutOfRange
	}

	switch {
	case c.RotationCount > 0:
		return estimate.NewErrorBudget(total/3, total/3, total/3), nil
	case c.HasMagicStates():
		return estimate.NewErrorBudget(total/2, total/2, 0), nil
	default:
		return estimate.NewErrorBudget(total, 0, 0), nil
	}
}

// CheckErrorBudget tells if an explicit split fits the counts.
func CheckErrorBudget(c *LogicalCounts, b *estimate.ErrorBudget) error {
	for _, v := range []float64{b.Logical(), b.MagicStates(), b.Rotations()} {
		if v < 0 || v >= 1 {
			return ErrBudgetOutOfRange
		}
	}

	if total := b.Total(); total <= 0 || total >= 1 {
		return ErrBudgetOutOfRange
	}

	if c.HasMagicStates() && b.MagicStates() <= 0 {
		return ErrMissingMagicStateBudget
	}

	if c.RotationCount > 0 && b.Rotations() <= 0 {
		return ErrMissingRotationBudget
	}

	return nil
}
