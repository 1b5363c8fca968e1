// Package qubit models physical qubits and the instruction sets they
// support.
package qubit

import (
	"fmt"
	"math"
)

// InstructionSet classifies physical qubits.
type InstructionSet int

// The supported instruction sets.
const (
	GateBased InstructionSet = iota
	Majorana
)

func (s InstructionSet) String() string {
	switch s {
	case GateBased:
		return "GateBased"
	case Majorana:
		return "Majorana"
	default:
		return fmt.Sprintf("InstructionSet(%d)", int(s))
	}
}

// MarshalText writes the name of the instruction set.
func (s InstructionSet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText reads any spelling that ParseInstructionSet accepts.
func (s *InstructionSet) UnmarshalText(text []byte) error {
	set, err := ParseInstructionSet(string(text))
	if err != nil {
		return err
	}

	*s = set

	return nil
}

// ParseInstructionSet accepts the spellings used in job files.
func ParseInstructionSet(s string) (InstructionSet, error) {
	switch s {
	case "gate_based", "gateBased", "gate-based", "GateBased":
		return GateBased, nil
	case "Majorana", "majorana":
		return Majorana, nil
	default:
		return 0, fmt.Errorf(
			"unknown instruction set %q, expected GateBased or Majorana", s)
	}
}

// MeasurementErrorRate separates the error a measurement introduces on the
// measured state from the error in the reported outcome.
type MeasurementErrorRate struct {
	Process float64 `json:"process" yaml:"process"`
	Readout float64 `json:"readout" yaml:"readout"`
}

// SimpleMeasurementErrorRate uses the same rate for process and readout.
func SimpleMeasurementErrorRate(rate float64) MeasurementErrorRate {
	return MeasurementErrorRate{Process: rate, Readout: rate}
}

// A PhysicalQubit is a fully specified qubit model. Times are in
// nanoseconds. Once built, a PhysicalQubit is never modified and is shared
// by pointer.
type PhysicalQubit struct {
	Name           string         `json:"name" yaml:"name"`
	InstructionSet InstructionSet `json:"instructionSet" yaml:"instructionSet"`

	OneQubitMeasurementTime      uint64 `json:"oneQubitMeasurementTime" yaml:"oneQubitMeasurementTime"`
	OneQubitGateTime             uint64 `json:"oneQubitGateTime,omitempty" yaml:"oneQubitGateTime,omitempty"`
	TwoQubitGateTime             uint64 `json:"twoQubitGateTime,omitempty" yaml:"twoQubitGateTime,omitempty"`
	TwoQubitJointMeasurementTime uint64 `json:"twoQubitJointMeasurementTime,omitempty" yaml:"twoQubitJointMeasurementTime,omitempty"`
	TGateTime                    uint64 `json:"tGateTime" yaml:"tGateTime"`

	OneQubitMeasurementErrorRate      MeasurementErrorRate `json:"oneQubitMeasurementErrorRate" yaml:"oneQubitMeasurementErrorRate"`
	TwoQubitJointMeasurementErrorRate MeasurementErrorRate `json:"twoQubitJointMeasurementErrorRate" yaml:"twoQubitJointMeasurementErrorRate"`
	OneQubitGateErrorRate             float64              `json:"oneQubitGateErrorRate,omitempty" yaml:"oneQubitGateErrorRate,omitempty"`
	TwoQubitGateErrorRate             float64              `json:"twoQubitGateErrorRate,omitempty" yaml:"twoQubitGateErrorRate,omitempty"`
	TGateErrorRate                    float64              `json:"tGateErrorRate" yaml:"tGateErrorRate"`
	IdleErrorRate                     float64              `json:"idleErrorRate" yaml:"idleErrorRate"`
}

// CliffordErrorRate is the worst error rate among the operations that a
// code uses for syndrome extraction.
func (q *PhysicalQubit) CliffordErrorRate() float64 {
	switch q.InstructionSet {
	case Majorana:
		return math.Max(q.IdleErrorRate,
			math.Max(q.OneQubitMeasurementErrorRate.Process,
				q.TwoQubitJointMeasurementErrorRate.Process))
	default:
		return math.Max(q.OneQubitGateErrorRate,
			math.Max(q.TwoQubitGateErrorRate, q.IdleErrorRate))
	}
}

// ReadoutErrorRate is the worst error rate of a reported measurement
// outcome.
func (q *PhysicalQubit) ReadoutErrorRate() float64 {
	switch q.InstructionSet {
	case Majorana:
		return math.Max(q.OneQubitMeasurementErrorRate.Readout,
			q.TwoQubitJointMeasurementErrorRate.Readout)
	default:
		return q.OneQubitMeasurementErrorRate.Readout
	}
}

type namedTime struct {
	name  string
	value uint64
}

type namedRate struct {
	name  string
	value float64
}

// Validate checks that all times are positive and all error rates are
// probabilities strictly between 0 and 1.
func (q *PhysicalQubit) Validate() error {
	times := []namedTime{
		{"oneQubitMeasurementTime", q.OneQubitMeasurementTime},
		{"tGateTime", q.TGateTime},
	}
	rates := []namedRate{
		{"oneQubitMeasurementErrorRate.process", q.OneQubitMeasurementErrorRate.Process},
		{"oneQubitMeasurementErrorRate.readout", q.OneQubitMeasurementErrorRate.Readout},
		{"tGateErrorRate", q.TGateErrorRate},
		{"idleErrorRate", q.IdleErrorRate},
	}

	switch q.InstructionSet {
	case GateBased:
		times = append(times,
			namedTime{"oneQubitGateTime", q.OneQubitGateTime},
			namedTime{"twoQubitGateTime", q.TwoQubitGateTime})
		rates = append(rates,
			namedRate{"oneQubitGateErrorRate", q.OneQubitGateErrorRate},
			namedRate{"twoQubitGateErrorRate", q.TwoQubitGateErrorRate})
	case Majorana:
		times = append(times,
			namedTime{"twoQubitJointMeasurementTime", q.TwoQubitJointMeasurementTime})
		rates = append(rates,
			namedRate{"twoQubitJointMeasurementErrorRate.process",
				q.TwoQubitJointMeasurementErrorRate.Process},
			namedRate{"twoQubitJointMeasurementErrorRate.readout",
				q.TwoQubitJointMeasurementErrorRate.Readout})
	default:
		return fmt.Errorf("qubit %q has unknown instruction set", q.Name)
	}

	for _, t := range times {
		if t.value == 0 {
			return &InvalidValueError{Field: t.name, Reason: "must be positive"}
		}
	}

	for _, r := range rates {
		if math.IsNaN(r.value) || r.value <= 0 || r.value >= 1 {
			return &InvalidValueError{
				Field:  r.name,
				Reason: "expected value between 0.0 and 1.0",
			}
		}
	}

	return nil
}

// InvalidValueError reports a qubit field that holds an unusable value.
type InvalidValueError struct {
	Field  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid qubit parameter %s: %s", e.Field, e.Reason)
}
