package tfactory

import (
	"github.com/sarchlab/qre/estimate"
	"github.com/sarchlab/qre/formula"
	"github.com/sarchlab/qre/qubit"
)

// Patch is a logical qubit of a threshold code.
type Patch = estimate.LogicalPatch[*qubit.PhysicalQubit, uint64]

// A Qubit is what a distillation unit runs on: either a bare physical
// qubit or a logical patch.
type Qubit struct {
	physical *qubit.PhysicalQubit
	patch    *Patch
}

// PhysicalQubit wraps a physical qubit.
func PhysicalQubit(q *qubit.PhysicalQubit) Qubit {
	return Qubit{physical: q}
}

// LogicalQubit wraps a logical patch.
func LogicalQubit(p *Patch) Qubit {
	return Qubit{patch: p}
}

// IsLogical tells if the qubit is a logical patch.
func (q Qubit) IsLogical() bool {
	return q.patch != nil
}

// PhysicalQubits returns the physical qubits that form the qubit.
func (q Qubit) PhysicalQubits() uint64 {
	if q.patch != nil {
		return q.patch.PhysicalQubits()
	}

	return 1
}

// CycleTime is a logical cycle for patches and a measurement for physical
// qubits.
func (q Qubit) CycleTime() uint64 {
	if q.patch != nil {
		return q.patch.LogicalCycleTime()
	}

	return q.physical.OneQubitMeasurementTime
}

// CliffordErrorRate returns the error rate of Clifford operations.
func (q Qubit) CliffordErrorRate() float64 {
	if q.patch != nil {
		return q.patch.LogicalErrorRate()
	}

	return q.physical.CliffordErrorRate()
}

// ReadoutErrorRate is 0 for logical patches.
func (q Qubit) ReadoutErrorRate() float64 {
	if q.patch != nil {
		return 0
	}

	return q.physical.ReadoutErrorRate()
}

// TErrorRate returns the T gate error rate of the underlying physical
// qubit.
func (q Qubit) TErrorRate() float64 {
	if q.patch != nil {
		return q.patch.Qubit().TGateErrorRate
	}

	return q.physical.TGateErrorRate
}

// CodeDistance returns 1 for physical qubits.
func (q Qubit) CodeDistance() uint64 {
	if q.patch != nil {
		return q.patch.CodeParameter()
	}

	return 1
}

// A Unit is a template instantiated on a qubit.
type Unit struct {
	template *Template

	qubitsFirstRound    uint64
	qubitsLaterRounds   uint64
	durationFirstRound  uint64
	durationLaterRounds uint64
	codeDistance        uint64
	cliffordErrorRate   float64
	readoutErrorRate    float64
	qubitTGateErrorRate float64
}

// NewUnit instantiates a template on a qubit.
func NewUnit(t *Template, q Qubit) *Unit {
	u := &Unit{
		template:            t,
		codeDistance:        q.CodeDistance(),
		cliffordErrorRate:   q.CliffordErrorRate(),
		readoutErrorRate:    q.ReadoutErrorRate(),
		qubitTGateErrorRate: q.TErrorRate(),
	}

	if spec := firstRoundSpec(t, q.IsLogical()); spec != nil {
		u.qubitsFirstRound = spec.NumUnitQubits * q.PhysicalQubits()
		u.durationFirstRound = spec.DurationInQubitCycleTime * q.CycleTime()
	}

	if t.Type != Physical && t.LogicalSpec != nil {
		u.qubitsLaterRounds = t.LogicalSpec.NumUnitQubits * q.PhysicalQubits()
		u.durationLaterRounds = t.LogicalSpec.DurationInQubitCycleTime * q.CycleTime()
	}

	return u
}

// firstRoundSpec returns nil if the unit cannot run a first round on the
// kind of qubit. Patches of distance 1 count as logical.
func firstRoundSpec(t *Template, logical bool) *Resources {
	switch {
	case !logical && t.Type != Logical:
		return t.PhysicalSpec
	case !logical || t.Type == Physical:
		return nil
	case t.LogicalFirstRoundSpec != nil:
		return t.LogicalFirstRoundSpec
	default:
		return t.LogicalSpec
	}
}

// Name returns the template name.
func (u *Unit) Name() string {
	return u.template.Name
}

// Type returns the template type.
func (u *Unit) Type() UnitType {
	return u.template.Type
}

// NumInputStates returns the T states a unit consumes.
func (u *Unit) NumInputStates() uint64 {
	return u.template.NumInputTs
}

// NumOutputStates returns the T states a unit produces.
func (u *Unit) NumOutputStates() uint64 {
	return u.template.NumOutputTs
}

// Duration returns the duration of the unit at a round position in ns.
func (u *Unit) Duration(position int) uint64 {
	if position == 0 {
		return u.durationFirstRound
	}

	return u.durationLaterRounds
}

// PhysicalQubits returns the qubits of the unit at a round position.
func (u *Unit) PhysicalQubits(position int) uint64 {
	if position == 0 {
		return u.qubitsFirstRound
	}

	return u.qubitsLaterRounds
}

// CodeParameter returns the code distance, which is 1 on physical qubits.
func (u *Unit) CodeParameter() (uint64, bool) {
	return u.codeDistance, true
}

// CliffordErrorRate returns the Clifford error rate of the qubit.
func (u *Unit) CliffordErrorRate() float64 {
	return u.cliffordErrorRate
}

// QubitTErrorRate returns the T gate error rate of the physical qubit,
// which is the input error rate of a factory's first round.
func (u *Unit) QubitTErrorRate() float64 {
	return u.qubitTGateErrorRate
}

// IsValid tells if Clifford operations are at least ten times more
// accurate than T gates on the qubit.
func (u *Unit) IsValid() bool {
	return u.cliffordErrorRate <= 0.1*u.qubitTGateErrorRate
}

// OutputErrorRate evaluates the template's output error rate formula.
func (u *Unit) OutputErrorRate(inputErrorRate float64) (float64, error) {
	return u.template.OutputErrorRate.Eval(u.env(inputErrorRate))
}

// FailureProbability evaluates the template's failure probability formula.
func (u *Unit) FailureProbability(inputErrorRate float64) (float64, error) {
	return u.template.FailureProb.Eval(u.env(inputErrorRate))
}

func (u *Unit) env(inputErrorRate float64) formula.Env {
	return formula.Env{
		VarInputErrorRate:    inputErrorRate,
		VarCliffordErrorRate: u.cliffordErrorRate,
		VarReadoutErrorRate:  u.readoutErrorRate,
		"z":                  inputErrorRate,
		"c":                  u.cliffordErrorRate,
		"r":                  u.readoutErrorRate,
	}
}
