// Package tfactory searches for T-state distillation factories.
package tfactory

import (
	"errors"
	"fmt"

	"github.com/sarchlab/qre/formula"
)

// UnitType tells on which kind of qubits a distillation unit can run.
type UnitType int

// Unit types. Combined units run on physical qubits in the first round at
// code distance 1 and on logical qubits otherwise.
const (
	Combined UnitType = iota
	Logical
	Physical
)

func (t UnitType) String() string {
	switch t {
	case Combined:
		return "Combined"
	case Logical:
		return "Logical"
	case Physical:
		return "Physical"
	default:
		return fmt.Sprintf("UnitType(%d)", int(t))
	}
}

// Variables available to the failure probability and output error rate
// formulas. z, c, and r are short aliases.
const (
	VarInputErrorRate    = "inputErrorRate"
	VarCliffordErrorRate = "cliffordErrorRate"
	VarReadoutErrorRate  = "readoutErrorRate"
)

var unitFormulaVariables = []string{
	VarInputErrorRate, VarCliffordErrorRate, VarReadoutErrorRate,
	"z", "c", "r",
}

// Resources are the size of a unit in qubits of the underlying kind and its
// duration in cycles of that kind.
type Resources struct {
	NumUnitQubits            uint64 `yaml:"numUnitQubits" json:"numUnitQubits"`
	DurationInQubitCycleTime uint64 `yaml:"durationInQubitCycleTime" json:"durationInQubitCycleTime"`
}

// A Template describes a distillation unit independently of the qubits it
// runs on.
type Template struct {
	Name            string
	NumInputTs      uint64
	NumOutputTs     uint64
	Type            UnitType
	FailureProb     *formula.Formula
	OutputErrorRate *formula.Formula

	PhysicalSpec *Resources
	LogicalSpec  *Resources

	// LogicalFirstRoundSpec replaces LogicalSpec when the unit runs on
	// logical qubits in the first round.
	LogicalFirstRoundSpec *Resources
}

const (
	rmPrepName         = "15-to-1 RM prep"
	spaceEfficientName = "15-to-1 space efficient"
	trivialName        = "trivial 1-to-1"
)

var (
	fifteenToOneFailure = formula.MustCompile(
		"15 * inputErrorRate + 356 * cliffordErrorRate", unitFormulaVariables...)
	fifteenToOneOutput = formula.MustCompile(
		"35 * inputErrorRate ^ 3 + 7.1 * cliffordErrorRate", unitFormulaVariables...)
	trivialFailure = formula.Constant(0)
	trivialOutput  = formula.MustCompile(VarInputErrorRate, unitFormulaVariables...)
)

// RMPrep is the 15-to-1 Reed-Muller preparation unit.
func RMPrep() *Template {
	return &Template{
		Name:            rmPrepName,
		NumInputTs:      15,
		NumOutputTs:     1,
		Type:            Combined,
		FailureProb:     fifteenToOneFailure,
		OutputErrorRate: fifteenToOneOutput,
		PhysicalSpec:    &Resources{NumUnitQubits: 31, DurationInQubitCycleTime: 24},
		LogicalSpec:     &Resources{NumUnitQubits: 31, DurationInQubitCycleTime: 11},
	}
}

// SpaceEfficient is the 15-to-1 space-efficient unit.
func SpaceEfficient() *Template {
	return &Template{
		Name:            spaceEfficientName,
		NumInputTs:      15,
		NumOutputTs:     1,
		Type:            Combined,
		FailureProb:     fifteenToOneFailure,
		OutputErrorRate: fifteenToOneOutput,
		PhysicalSpec:    &Resources{NumUnitQubits: 12, DurationInQubitCycleTime: 45},
		LogicalSpec:     &Resources{NumUnitQubits: 20, DurationInQubitCycleTime: 13},
	}
}

// Trivial passes a logical T state through unchanged.
func Trivial() *Template {
	return &Template{
		Name:            trivialName,
		NumInputTs:      1,
		NumOutputTs:     1,
		Type:            Logical,
		FailureProb:     trivialFailure,
		OutputErrorRate: trivialOutput,
		LogicalSpec:     &Resources{NumUnitQubits: 1, DurationInQubitCycleTime: 1},
	}
}

// DefaultTemplates returns the templates searched when a job gives none.
func DefaultTemplates() []*Template {
	return []*Template{RMPrep(), SpaceEfficient()}
}

// TemplateFromName returns a built-in template.
func TemplateFromName(name string) (*Template, error) {
	switch name {
	case "15-1 RM", "15-1 RM prep", "15-to-1 RM", "15-to-1 RM prep":
		return RMPrep(), nil
	case "15-1 space-efficient", "15-1 space efficient",
		"15-to-1 space-efficient", "15-to-1 space efficient":
		return SpaceEfficient(), nil
	}

	return nil, fmt.Errorf("invalid distillation unit name %q", name)
}

// TemplateParams describes a distillation unit in a job file. Either Name
// selects a built-in template, or the remaining fields describe a custom
// one.
type TemplateParams struct {
	Name                       string     `yaml:"name,omitempty" json:"name,omitempty"`
	DisplayName                string     `yaml:"displayName,omitempty" json:"displayName,omitempty"`
	NumInputTs                 uint64     `yaml:"numInputTs,omitempty" json:"numInputTs,omitempty"`
	NumOutputTs                uint64     `yaml:"numOutputTs,omitempty" json:"numOutputTs,omitempty"`
	FailureProbabilityFormula  string     `yaml:"failureProbabilityFormula,omitempty" json:"failureProbabilityFormula,omitempty"`
	OutputErrorRateFormula     string     `yaml:"outputErrorRateFormula,omitempty" json:"outputErrorRateFormula,omitempty"`
	PhysicalQubitSpecification *Resources `yaml:"physicalQubitSpecification,omitempty" json:"physicalQubitSpecification,omitempty"`
	LogicalQubitSpecification  *Resources `yaml:"logicalQubitSpecification,omitempty" json:"logicalQubitSpecification,omitempty"`

	LogicalQubitSpecificationFirstRoundOverride *Resources `yaml:"logicalQubitSpecificationFirstRoundOverride,omitempty" json:"logicalQubitSpecificationFirstRoundOverride,omitempty"`
}

// Errors for custom templates.
var (
	ErrTemplateWithoutSpecification = errors.New(
		"distillation unit needs a physical or a logical qubit specification")
	ErrOverrideWithoutLogicalSpecification = errors.New(
		"first round override needs a logical qubit specification")
	ErrNameAndCustomFields = errors.New(
		"distillation unit has both a name and custom fields")
)

// Build resolves the parameters into a template.
func (p TemplateParams) Build() (*Template, error) {
	if p.Name != "" {
		if p.isCustom() {
			return nil, ErrNameAndCustomFields
		}

		return TemplateFromName(p.Name)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	failure, err := formula.Compile(p.FailureProbabilityFormula,
		unitFormulaVariables...)
	if err != nil {
		return nil, fmt.Errorf("failureProbabilityFormula: %w", err)
	}

	output, err := formula.Compile(p.OutputErrorRateFormula,
		unitFormulaVariables...)
	if err != nil {
		return nil, fmt.Errorf("outputErrorRateFormula: %w", err)
	}

	t := &Template{
		Name:                  p.DisplayName,
		NumInputTs:            p.NumInputTs,
		NumOutputTs:           p.NumOutputTs,
		FailureProb:           failure,
		OutputErrorRate:       output,
		PhysicalSpec:          p.PhysicalQubitSpecification,
		LogicalSpec:           p.LogicalQubitSpecification,
		LogicalFirstRoundSpec: p.LogicalQubitSpecificationFirstRoundOverride,
	}

	switch {
	case t.PhysicalSpec != nil && t.LogicalSpec != nil:
		t.Type = Combined
	case t.PhysicalSpec != nil:
		t.Type = Physical
	default:
		t.Type = Logical
	}

	return t, nil
}

func (p TemplateParams) isCustom() bool {
	return p.DisplayName != "" ||
		p.NumInputTs != 0 ||
		p.NumOutputTs != 0 ||
		p.FailureProbabilityFormula != "" ||
		p.OutputErrorRateFormula != "" ||
		p.PhysicalQubitSpecification != nil ||
		p.LogicalQubitSpecification != nil ||
		p.LogicalQubitSpecificationFirstRoundOverride != nil
}

func (p TemplateParams) validate() error {
	switch {
	case p.DisplayName == "":
		return errors.New("distillation unit needs a name or a displayName")
	case p.NumInputTs == 0:
		return errors.New("numInputTs must be positive")
	case p.NumOutputTs == 0:
		return errors.New("numOutputTs must be positive")
	case p.NumOutputTs > p.NumInputTs:
		return errors.New("numOutputTs must not exceed numInputTs")
	case p.FailureProbabilityFormula == "":
		return errors.New("failureProbabilityFormula is required")
	case p.OutputErrorRateFormula == "":
		return errors.New("outputErrorRateFormula is required")
	case p.PhysicalQubitSpecification == nil && p.LogicalQubitSpecification == nil:
		return ErrTemplateWithoutSpecification
	case p.LogicalQubitSpecificationFirstRoundOverride != nil &&
		p.LogicalQubitSpecification == nil:
		return ErrOverrideWithoutLogicalSpecification
	}

	return nil
}
