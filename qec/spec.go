package qec

import (
	"fmt"
	"strings"

	"github.com/sarchlab/qre/qubit"
)

// maxCrossingPrefactor bounds the logical error rate at the threshold.
const maxCrossingPrefactor = 0.5

// Params describes a QEC scheme in a job file. A known Name selects a
// preset and the other fields override it. Without a name, all of the
// threshold, prefactor, and formula fields are required.
type Params struct {
	Name                          string   `yaml:"name,omitempty" json:"name,omitempty"`
	ErrorCorrectionThreshold      *float64 `yaml:"errorCorrectionThreshold,omitempty" json:"errorCorrectionThreshold,omitempty"`
	CrossingPrefactor             *float64 `yaml:"crossingPrefactor,omitempty" json:"crossingPrefactor,omitempty"`
	LogicalCycleTime              *string  `yaml:"logicalCycleTime,omitempty" json:"logicalCycleTime,omitempty"`
	PhysicalQubitsPerLogicalQubit *string  `yaml:"physicalQubitsPerLogicalQubit,omitempty" json:"physicalQubitsPerLogicalQubit,omitempty"`
	MaxCodeDistance               *uint64  `yaml:"maxCodeDistance,omitempty" json:"maxCodeDistance,omitempty"`
}

// InvalidValueError reports a QEC parameter outside of its valid range.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
}

// Build resolves the parameters into a protocol for the given qubit and
// validates the result against it.
func (p Params) Build(q *qubit.PhysicalQubit) (*Protocol, error) {
	name := p.Name
	if name == "" && !p.isCustom() {
		name = SurfaceCode
	}

	threshold, prefactor, cycleTime, qubits, err := p.resolve(name, q)
	if err != nil {
		return nil, err
	}

	maxCodeDistance := uint64(DefaultMaxCodeDistance)
	if p.MaxCodeDistance != nil {
		maxCodeDistance = *p.MaxCodeDistance
	}

	protocol, err := NewProtocol(canonicalName(name),
		threshold, prefactor, cycleTime, qubits, maxCodeDistance)
	if err != nil {
		return nil, err
	}

	if err := protocol.Validate(q); err != nil {
		return nil, err
	}

	return protocol, nil
}

func (p Params) isCustom() bool {
	return p.ErrorCorrectionThreshold != nil ||
		p.CrossingPrefactor != nil ||
		p.LogicalCycleTime != nil ||
		p.PhysicalQubitsPerLogicalQubit != nil
}

func (p Params) resolve(
	name string,
	q *qubit.PhysicalQubit,
) (threshold, prefactor float64, cycleTime, qubits string, err error) {
	if isPreset(name) {
		var preset *Protocol

		preset, err = FromName(name, q.InstructionSet)
		if err != nil {
			return
		}

		threshold = preset.ErrorCorrectionThreshold()
		prefactor = preset.CrossingPrefactor()
		cycleTime = preset.LogicalCycleTimeFormula()
		qubits = preset.PhysicalQubitsFormula()
	}

	var missing []string

	threshold, missing = overrideFloat(threshold, p.ErrorCorrectionThreshold,
		"errorCorrectionThreshold", missing)
	prefactor, missing = overrideFloat(prefactor, p.CrossingPrefactor,
		"crossingPrefactor", missing)
	cycleTime, missing = overrideString(cycleTime, p.LogicalCycleTime,
		"logicalCycleTime", missing)
	qubits, missing = overrideString(qubits, p.PhysicalQubitsPerLogicalQubit,
		"physicalQubitsPerLogicalQubit", missing)

	if len(missing) > 0 {
		err = fmt.Errorf("missing fields in QEC scheme: %s",
			strings.Join(missing, ", "))
	}

	return
}

func overrideFloat(
	v float64, o *float64, field string, missing []string,
) (float64, []string) {
	if o != nil {
		return *o, missing
	}

	if v == 0 {
		missing = append(missing, "`"+field+"`")
	}

	return v, missing
}

func overrideString(
	v string, o *string, field string, missing []string,
) (string, []string) {
	if o != nil {
		return *o, missing
	}

	if v == "" {
		missing = append(missing, "`"+field+"`")
	}

	return v, missing
}

// Validate checks that the protocol can correct errors on the qubit and
// that its formulas yield positive values for all code distances.
func (p *Protocol) Validate(q *qubit.PhysicalQubit) error {
	if p.crossingPrefactor <= 0 || p.crossingPrefactor > maxCrossingPrefactor {
		return &InvalidValueError{
			Field:  "crossingPrefactor",
			Reason: fmt.Sprintf("must be in (0, %g]", maxCrossingPrefactor),
		}
	}

	if p.errorCorrectionThreshold <= 0 || p.errorCorrectionThreshold >= 1 {
		return &InvalidValueError{
			Field:  "errorCorrectionThreshold",
			Reason: "must be in (0, 1)",
		}
	}

	if q.CliffordErrorRate() >= p.errorCorrectionThreshold {
		return &InvalidValueError{
			Field: "errorCorrectionThreshold",
			Reason: fmt.Sprintf(
				"Clifford error rate %g of the qubit is not below the threshold",
				q.CliffordErrorRate()),
		}
	}

	if p.maxCodeDistance == 0 {
		return &InvalidValueError{
			Field:  "maxCodeDistance",
			Reason: "must be positive",
		}
	}

	for _, d := range p.CodeParameterRange(nil) {
		if _, err := p.LogicalCycleTime(q, d); err != nil {
			return &InvalidValueError{Field: "logicalCycleTime", Reason: err.Error()}
		}

		if _, err := p.PhysicalQubits(d); err != nil {
			return &InvalidValueError{
				Field:  "physicalQubitsPerLogicalQubit",
				Reason: err.Error(),
			}
		}
	}

	return nil
}
