// Package qec models error correction codes that are characterized by a
// threshold and a code distance.
package qec

import (
	"cmp"
	"fmt"
	"math"

	"github.com/sarchlab/qre/formula"
	"github.com/sarchlab/qre/qubit"
)

// DefaultMaxCodeDistance bounds the code distances that are searched.
const DefaultMaxCodeDistance = 50

// Variables that can be used in the logical cycle time formula.
const (
	VarOneQubitMeasurementTime      = "oneQubitMeasurementTime"
	VarOneQubitGateTime             = "oneQubitGateTime"
	VarTwoQubitGateTime             = "twoQubitGateTime"
	VarTwoQubitJointMeasurementTime = "twoQubitJointMeasurementTime"
	VarCodeDistance                 = "codeDistance"
)

var cycleTimeVariables = []string{
	VarOneQubitMeasurementTime,
	VarOneQubitGateTime,
	VarTwoQubitGateTime,
	VarTwoQubitJointMeasurementTime,
	VarCodeDistance,
}

// A Protocol is a code whose logical error rate at odd code distance d is
//
//	crossingPrefactor * (p / threshold)^((d+1)/2)
//
// where p is the worst of the qubit's Clifford and readout error rates.
type Protocol struct {
	name                          string
	errorCorrectionThreshold      float64
	crossingPrefactor             float64
	logicalCycleTime              *formula.Formula
	physicalQubitsPerLogicalQubit *formula.Formula
	maxCodeDistance               uint64
}

// NewProtocol compiles the formulas of a protocol. The logical cycle time
// may use the qubit's operation times and the code distance. The number
// of physical qubits may only use the code distance.
func NewProtocol(
	name string,
	errorCorrectionThreshold float64,
	crossingPrefactor float64,
	logicalCycleTime string,
	physicalQubitsPerLogicalQubit string,
	maxCodeDistance uint64,
) (*Protocol, error) {
	cycleTime, err := formula.Compile(logicalCycleTime, cycleTimeVariables...)
	if err != nil {
		return nil, fmt.Errorf("logicalCycleTime: %w", err)
	}

	qubits, err := formula.Compile(physicalQubitsPerLogicalQubit, VarCodeDistance)
	if err != nil {
		return nil, fmt.Errorf("physicalQubitsPerLogicalQubit: %w", err)
	}

	return &Protocol{
		name:                          name,
		errorCorrectionThreshold:      errorCorrectionThreshold,
		crossingPrefactor:             crossingPrefactor,
		logicalCycleTime:              cycleTime,
		physicalQubitsPerLogicalQubit: qubits,
		maxCodeDistance:               maxCodeDistance,
	}, nil
}

// Name returns the name of the protocol.
func (p *Protocol) Name() string {
	return p.name
}

// ErrorCorrectionThreshold returns the physical error rate above which the
// code does not correct errors.
func (p *Protocol) ErrorCorrectionThreshold() float64 {
	return p.errorCorrectionThreshold
}

// CrossingPrefactor returns the logical error rate at the threshold.
func (p *Protocol) CrossingPrefactor() float64 {
	return p.crossingPrefactor
}

// MaxCodeDistance returns the largest code distance that is considered.
func (p *Protocol) MaxCodeDistance() uint64 {
	return p.maxCodeDistance
}

// LogicalCycleTimeFormula returns the source of the cycle time formula.
func (p *Protocol) LogicalCycleTimeFormula() string {
	return p.logicalCycleTime.Source()
}

// PhysicalQubitsFormula returns the source of the qubit count formula.
func (p *Protocol) PhysicalQubitsFormula() string {
	return p.physicalQubitsPerLogicalQubit.Source()
}

// PhysicalQubits returns the physical qubits of one code block.
func (p *Protocol) PhysicalQubits(codeDistance uint64) (uint64, error) {
	v, err := p.physicalQubitsPerLogicalQubit.Eval(formula.Env{
		VarCodeDistance: float64(codeDistance),
	})
	if err != nil {
		return 0, err
	}

	if v <= 0 {
		return 0, fmt.Errorf(
			"non-positive number of physical qubits at code distance %d",
			codeDistance)
	}

	return uint64(v), nil
}

// LogicalQubits returns 1, since every code block hosts one logical qubit.
func (p *Protocol) LogicalQubits(_ uint64) (uint64, error) {
	return 1, nil
}

// LogicalCycleTime returns the time of one logical cycle in ns.
func (p *Protocol) LogicalCycleTime(
	q *qubit.PhysicalQubit,
	codeDistance uint64,
) (uint64, error) {
	v, err := p.logicalCycleTime.Eval(formula.Env{
		VarOneQubitMeasurementTime:      float64(q.OneQubitMeasurementTime),
		VarOneQubitGateTime:             float64(q.OneQubitGateTime),
		VarTwoQubitGateTime:             float64(q.TwoQubitGateTime),
		VarTwoQubitJointMeasurementTime: float64(q.TwoQubitJointMeasurementTime),
		VarCodeDistance:                 float64(codeDistance),
	})
	if err != nil {
		return 0, err
	}

	if v <= 0 {
		return 0, fmt.Errorf(
			"non-positive logical cycle time at code distance %d", codeDistance)
	}

	return uint64(math.Round(v)), nil
}

// PhysicalErrorRate is the error rate the code has to correct.
func (p *Protocol) PhysicalErrorRate(q *qubit.PhysicalQubit) float64 {
	return math.Max(q.CliffordErrorRate(), q.ReadoutErrorRate())
}

// LogicalErrorRate returns the failure probability of one code block per
// logical cycle.
func (p *Protocol) LogicalErrorRate(
	q *qubit.PhysicalQubit,
	codeDistance uint64,
) (float64, error) {
	physical := p.PhysicalErrorRate(q)
	if physical > p.errorCorrectionThreshold {
		return 0, fmt.Errorf(
			"physical error rate %g is above the threshold %g",
			physical, p.errorCorrectionThreshold)
	}

	exponent := float64((codeDistance + 1) / 2)

	return p.crossingPrefactor *
		math.Pow(physical/p.errorCorrectionThreshold, exponent), nil
}

// CodeParameterRange returns the odd code distances up to the max code
// distance, starting at lowerBound if given.
func (p *Protocol) CodeParameterRange(lowerBound *uint64) []uint64 {
	start := uint64(1)
	if lowerBound != nil && *lowerBound > start {
		start = *lowerBound
	}

	if start%2 == 0 {
		start++
	}

	var distances []uint64
	for d := start; d <= p.maxCodeDistance; d += 2 {
		distances = append(distances, d)
	}

	return distances
}

// CodeParameterCmp orders code distances.
func (p *Protocol) CodeParameterCmp(_ *qubit.PhysicalQubit, d1, d2 uint64) int {
	return cmp.Compare(d1, d2)
}

// MaxOddCodeDistance returns the largest odd code distance allowed.
func (p *Protocol) MaxOddCodeDistance() uint64 {
	if p.maxCodeDistance%2 == 0 {
		return p.maxCodeDistance - 1
	}

	return p.maxCodeDistance
}
