package qubit

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MeasurementErrorRateParams is either a single rate or a process/readout
// pair in job files.
type MeasurementErrorRateParams struct {
	Process *float64 `yaml:"process" json:"process"`
	Readout *float64 `yaml:"readout" json:"readout"`
}

// UnmarshalYAML accepts both `0.001` and `{process: 0.001, readout: 0.002}`.
func (p *MeasurementErrorRateParams) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}

		p.Process = &v
		p.Readout = &v

		return nil
	}

	type plain MeasurementErrorRateParams
	return node.Decode((*plain)(p))
}

func (p *MeasurementErrorRateParams) isSet() bool {
	return p != nil && (p.Process != nil || p.Readout != nil)
}

// Params describes a qubit in a job file. A known Name selects a preset;
// any other field overrides the preset. Without a known name, the
// instruction set and the required fields must be given.
type Params struct {
	Name           string `yaml:"name,omitempty" json:"name,omitempty"`
	InstructionSet string `yaml:"instructionSet,omitempty" json:"instructionSet,omitempty"`

	OneQubitMeasurementTime      *uint64 `yaml:"oneQubitMeasurementTime,omitempty" json:"oneQubitMeasurementTime,omitempty"`
	OneQubitGateTime             *uint64 `yaml:"oneQubitGateTime,omitempty" json:"oneQubitGateTime,omitempty"`
	TwoQubitGateTime             *uint64 `yaml:"twoQubitGateTime,omitempty" json:"twoQubitGateTime,omitempty"`
	TwoQubitJointMeasurementTime *uint64 `yaml:"twoQubitJointMeasurementTime,omitempty" json:"twoQubitJointMeasurementTime,omitempty"`
	TGateTime                    *uint64 `yaml:"tGateTime,omitempty" json:"tGateTime,omitempty"`

	OneQubitMeasurementErrorRate      *MeasurementErrorRateParams `yaml:"oneQubitMeasurementErrorRate,omitempty" json:"oneQubitMeasurementErrorRate,omitempty"`
	TwoQubitJointMeasurementErrorRate *MeasurementErrorRateParams `yaml:"twoQubitJointMeasurementErrorRate,omitempty" json:"twoQubitJointMeasurementErrorRate,omitempty"`
	OneQubitGateErrorRate             *float64                    `yaml:"oneQubitGateErrorRate,omitempty" json:"oneQubitGateErrorRate,omitempty"`
	TwoQubitGateErrorRate             *float64                    `yaml:"twoQubitGateErrorRate,omitempty" json:"twoQubitGateErrorRate,omitempty"`
	TGateErrorRate                    *float64                    `yaml:"tGateErrorRate,omitempty" json:"tGateErrorRate,omitempty"`
	IdleErrorRate                     *float64                    `yaml:"idleErrorRate,omitempty" json:"idleErrorRate,omitempty"`
}

// Build merges the parameters into their preset, fills derived fields,
// and validates the result.
func (p Params) Build() (*PhysicalQubit, error) {
	q, err := p.base()
	if err != nil {
		return nil, err
	}

	p.overwrite(q)

	if err := p.checkRequired(q); err != nil {
		return nil, err
	}

	p.fillDerived(q)

	if err := q.Validate(); err != nil {
		return nil, err
	}

	return q, nil
}

func (p Params) base() (*PhysicalQubit, error) {
	if p.Name == "" && p.InstructionSet == "" {
		return NewDefault(), nil
	}

	preset, hasPreset := presets[p.Name]

	if p.InstructionSet == "" {
		if !hasPreset {
			return nil, fmt.Errorf(
				"qubit %q is not predefined and has no instruction set", p.Name)
		}

		return preset(), nil
	}

	set, err := ParseInstructionSet(p.InstructionSet)
	if err != nil {
		return nil, err
	}

	if hasPreset {
		q := preset()
		if q.InstructionSet != set {
			return nil, fmt.Errorf(
				"qubit %q is %s, not %s", p.Name, q.InstructionSet, set)
		}

		return q, nil
	}

	return &PhysicalQubit{Name: p.Name, InstructionSet: set}, nil
}

func (p Params) overwrite(q *PhysicalQubit) {
	setTime(&q.OneQubitMeasurementTime, p.OneQubitMeasurementTime)
	setTime(&q.OneQubitGateTime, p.OneQubitGateTime)
	setTime(&q.TwoQubitGateTime, p.TwoQubitGateTime)
	setTime(&q.TwoQubitJointMeasurementTime, p.TwoQubitJointMeasurementTime)
	setTime(&q.TGateTime, p.TGateTime)

	setMeasurementRate(&q.OneQubitMeasurementErrorRate, p.OneQubitMeasurementErrorRate)
	setMeasurementRate(&q.TwoQubitJointMeasurementErrorRate, p.TwoQubitJointMeasurementErrorRate)
	setRate(&q.OneQubitGateErrorRate, p.OneQubitGateErrorRate)
	setRate(&q.TwoQubitGateErrorRate, p.TwoQubitGateErrorRate)
	setRate(&q.TGateErrorRate, p.TGateErrorRate)
	setRate(&q.IdleErrorRate, p.IdleErrorRate)
}

func (p Params) checkRequired(q *PhysicalQubit) error {
	var missing []string

	if q.OneQubitMeasurementTime == 0 {
		missing = append(missing, "`oneQubitMeasurementTime`")
	}

	if q.TGateErrorRate == 0 {
		missing = append(missing, "`tGateErrorRate`")
	}

	if q.OneQubitMeasurementErrorRate.Readout == 0 {
		missing = append(missing, "`oneQubitMeasurementErrorRate`")
	}

	if q.InstructionSet == GateBased {
		if q.OneQubitGateTime == 0 {
			missing = append(missing, "`oneQubitGateTime`")
		}

		if q.OneQubitGateErrorRate == 0 {
			missing = append(missing, "`oneQubitGateErrorRate`")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing fields %s", strings.Join(missing, ", "))
	}

	return nil
}

func (p Params) fillDerived(q *PhysicalQubit) {
	m := &q.OneQubitMeasurementErrorRate
	if m.Process == 0 {
		m.Process = m.Readout
	}

	switch q.InstructionSet {
	case GateBased:
		fillTime(&q.TwoQubitGateTime, q.OneQubitGateTime)
		fillTime(&q.TGateTime, q.OneQubitGateTime)
		fillRate(&q.TwoQubitGateErrorRate, q.OneQubitGateErrorRate)
		fillRate(&q.IdleErrorRate, m.Readout)
	case Majorana:
		fillTime(&q.TwoQubitJointMeasurementTime, q.OneQubitMeasurementTime)
		fillTime(&q.TGateTime, q.OneQubitMeasurementTime)
		fillRate(&q.TwoQubitJointMeasurementErrorRate.Process, m.Readout)
		fillRate(&q.TwoQubitJointMeasurementErrorRate.Readout, m.Readout)
		fillRate(&q.IdleErrorRate, m.Readout)
	}
}

func setTime(dst *uint64, v *uint64) {
	if v != nil {
		*dst = *v
	}
}

func setRate(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setMeasurementRate(dst *MeasurementErrorRate, v *MeasurementErrorRateParams) {
	if !v.isSet() {
		return
	}

	setRate(&dst.Process, v.Process)
	setRate(&dst.Readout, v.Readout)
}

func fillTime(dst *uint64, v uint64) {
	if *dst == 0 {
		*dst = v
	}
}

func fillRate(dst *float64, v float64) {
	if *dst == 0 {
		*dst = v
	}
}
