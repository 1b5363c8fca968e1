// Package job reads estimation jobs, runs them, and reports their results.
package job

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/qre/counts"
	"github.com/sarchlab/qre/estimate"
	"github.com/sarchlab/qre/qec"
	"github.com/sarchlab/qre/qubit"
	"github.com/sarchlab/qre/tfactory"
)

// EstimateType selects between a single estimate and a frontier of
// estimates.
type EstimateType string

// The supported estimate types.
const (
	SinglePoint EstimateType = "singlePoint"
	Frontier    EstimateType = "frontier"
)

func parseEstimateType(s EstimateType) (EstimateType, error) {
	switch s {
	case "", SinglePoint, "single":
		return SinglePoint, nil
	case Frontier:
		return Frontier, nil
	default:
		return "", fmt.Errorf("unknown estimate type %q", s)
	}
}

// Constraints limit the estimation. MaxDuration uses Go duration syntax,
// for example "1h30m" or "500ms".
type Constraints struct {
	LogicalDepthFactor *float64 `yaml:"logicalDepthFactor,omitempty" json:"logicalDepthFactor,omitempty"`
	MaxTFactories      *uint64  `yaml:"maxTFactories,omitempty" json:"maxTFactories,omitempty"`
	MaxDuration        *string  `yaml:"maxDuration,omitempty" json:"maxDuration,omitempty"`
	MaxPhysicalQubits  *uint64  `yaml:"maxPhysicalQubits,omitempty" json:"maxPhysicalQubits,omitempty"`
}

// maxDurationInNs returns nil if no max duration is set.
func (c Constraints) maxDurationInNs() (*uint64, error) {
	if c.MaxDuration == nil {
		return nil, nil
	}

	d, err := time.ParseDuration(*c.MaxDuration)
	if err != nil {
		return nil, fmt.Errorf("maxDuration: %w", err)
	}

	if d <= 0 {
		return nil, errors.New("maxDuration must be positive")
	}

	ns := uint64(d.Nanoseconds())

	return &ns, nil
}

func (c Constraints) validate(estimateType EstimateType) error {
	if c.LogicalDepthFactor != nil && *c.LogicalDepthFactor < 1 {
		return errors.New("logicalDepthFactor must be at least 1")
	}

	if c.MaxTFactories != nil && *c.MaxTFactories == 0 {
		return errors.New("maxTFactories must be positive")
	}

	if c.MaxPhysicalQubits != nil && *c.MaxPhysicalQubits == 0 {
		return errors.New("maxPhysicalQubits must be positive")
	}

	if c.MaxDuration != nil && c.MaxPhysicalQubits != nil {
		return estimate.ErrBothDurationAndPhysicalQubitsProvided
	}

	if estimateType == Frontier &&
		(c.MaxDuration != nil || c.MaxPhysicalQubits != nil) {
		return errors.New(
			"frontier estimation does not support maxDuration or maxPhysicalQubits")
	}

	return nil
}

// Params are the parameters of one estimation.
type Params struct {
	QubitParams                    qubit.Params              `yaml:"qubitParams,omitempty" json:"qubitParams,omitempty"`
	QECScheme                      qec.Params                `yaml:"qecScheme,omitempty" json:"qecScheme,omitempty"`
	DistillationUnitSpecifications []tfactory.TemplateParams `yaml:"distillationUnitSpecifications,omitempty" json:"distillationUnitSpecifications,omitempty"`
	ErrorBudget                    counts.BudgetParams       `yaml:"errorBudget,omitempty" json:"errorBudget,omitempty"`
	ErrorBudgetStrategy            string                    `yaml:"errorBudgetStrategy,omitempty" json:"errorBudgetStrategy,omitempty"`
	Constraints                    Constraints               `yaml:"constraints,omitempty" json:"constraints,omitempty"`
	EstimateType                   EstimateType              `yaml:"estimateType,omitempty" json:"estimateType,omitempty"`
}

// Job is an algorithm with one or more sets of parameters. If Items is
// empty, the inline parameters form the only item.
type Job struct {
	LogicalCounts counts.LogicalCounts `yaml:"logicalCounts" json:"logicalCounts"`
	Params        `yaml:",inline"`
	Items         []Params `yaml:"items,omitempty" json:"items,omitempty"`
}

// IsBatch tells if the job has explicit items.
func (j *Job) IsBatch() bool {
	return len(j.Items) > 0
}

// AllParams returns the parameters of every item.
func (j *Job) AllParams() []Params {
	if j.IsBatch() {
		return j.Items
	}

	return []Params{j.Params}
}

// Load reads a job from YAML. JSON is accepted as well.
func Load(r io.Reader) (*Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	j := &Job{}
	if err := dec.Decode(j); err != nil {
		return nil, newFailure(CodeInvalidJob, err)
	}

	return j, nil
}

// LoadFile reads a job from a file.
func LoadFile(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newFailure(CodeInvalidJob, err)
	}
	defer f.Close()

	return Load(f)
}

// setup holds the resolved parameters of one item.
type setup struct {
	qubit        *qubit.PhysicalQubit
	code         *qec.Protocol
	templates    []*tfactory.Template
	budget       *estimate.ErrorBudget
	strategy     estimate.ErrorBudgetStrategy
	maxDuration  *uint64
	estimateType EstimateType
}

func (p Params) resolve(c *counts.LogicalCounts) (*setup, error) {
	s := &setup{}

	var err error

	s.qubit, err = p.QubitParams.Build()
	if err != nil {
		return nil, newFailure(CodeInvalidQubitParams, err)
	}

	s.code, err = p.QECScheme.Build(s.qubit)
	if err != nil {
		return nil, newFailure(CodeInvalidQECScheme, err)
	}

	s.templates, err = p.templates()
	if err != nil {
		return nil, newFailure(CodeInvalidDistillationUnits, err)
	}

	s.budget, err = p.ErrorBudget.Partition(c)
	if err != nil {
		return nil, newFailure(CodeInvalidErrorBudget, err)
	}

	s.strategy, err = estimate.ParseErrorBudgetStrategy(p.ErrorBudgetStrategy)
	if err != nil {
		return nil, newFailure(CodeInvalidErrorBudget, err)
	}

	s.estimateType, err = parseEstimateType(p.EstimateType)
	if err != nil {
		return nil, newFailure(CodeInvalidEstimateType, err)
	}

	if err := p.Constraints.validate(s.estimateType); err != nil {
		return nil, newFailure(CodeInvalidConstraints, err)
	}

	s.maxDuration, err = p.Constraints.maxDurationInNs()
	if err != nil {
		return nil, newFailure(CodeInvalidConstraints, err)
	}

	return s, nil
}

func (p Params) templates() ([]*tfactory.Template, error) {
	if len(p.DistillationUnitSpecifications) == 0 {
		return tfactory.DefaultTemplates(), nil
	}

	templates := make([]*tfactory.Template, 0, len(p.DistillationUnitSpecifications))
	for i, spec := range p.DistillationUnitSpecifications {
		t, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("distillation unit %d: %w", i, err)
		}

		templates = append(templates, t)
	}

	return templates, nil
}
