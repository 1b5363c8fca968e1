package tfactory

import (
	"github.com/go-logr/logr"

	"github.com/sarchlab/qre/estimate"
	"github.com/sarchlab/qre/hooking"
	"github.com/sarchlab/qre/qubit"
)

// Builder can build T factory searches.
type Builder struct {
	templates             []*Template
	maxDistillationRounds int
	log                   logr.Logger
}

// MakeBuilder creates a builder with the default templates.
func MakeBuilder() Builder {
	return Builder{
		templates:             DefaultTemplates(),
		maxDistillationRounds: MaxDistillationRounds,
		log:                   logr.Discard(),
	}
}

// WithTemplates sets the distillation unit templates to search.
func (b Builder) WithTemplates(templates []*Template) Builder {
	b.templates = templates
	return b
}

// WithMaxDistillationRounds sets the number of rounds that are always
// searched.
func (b Builder) WithMaxDistillationRounds(n int) Builder {
	b.maxDistillationRounds = n
	return b
}

// WithLogger sets the logger that receives search statistics.
func (b Builder) WithLogger(log logr.Logger) Builder {
	b.log = log
	return b
}

// Build creates a search.
func (b Builder) Build() *Search {
	if len(b.templates) == 0 {
		panic("no distillation unit templates")
	}

	if b.maxDistillationRounds <= 0 ||
		b.maxDistillationRounds > MaxExtraDistillationRounds {
		panic("max distillation rounds out of range")
	}

	return &Search{
		HookableBase:          hooking.NewHookableBase(),
		templates:             b.templates,
		maxDistillationRounds: b.maxDistillationRounds,
		log:                   b.log,
	}
}

// Templates returns the templates the search uses.
func (s *Search) Templates() []*Template {
	return s.templates
}

// FindFactories returns nondominated T factories. Only one magic state
// type, the T state, is supported.
func (s *Search) FindFactories(
	code estimate.ErrorCorrection[*qubit.PhysicalQubit, uint64],
	q *qubit.PhysicalQubit,
	_ int,
	outputErrorRate float64,
	maxCodeDistance uint64,
) ([]*TFactory, error) {
	return s.FindNondominatedTFactories(
		code, q, outputErrorRate, maxCodeDistance), nil
}

// NumMagicStateTypes returns 1.
func (s *Search) NumMagicStateTypes() int {
	return 1
}
