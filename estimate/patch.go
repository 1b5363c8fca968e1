package estimate

// A LogicalPatch is a code block of a fixed code parameter on a fixed
// qubit, together with its derived figures.
type LogicalPatch[Q, P any] struct {
	qubit            Q
	codeParameter    P
	physicalQubits   uint64
	logicalQubits    uint64
	logicalCycleTime uint64
	logicalErrorRate float64
}

// NewLogicalPatch evaluates the code at the given parameter.
func NewLogicalPatch[Q, P any](
	code ErrorCorrection[Q, P],
	param P,
	qubit Q,
) (*LogicalPatch[Q, P], error) {
	physicalQubits, err := code.PhysicalQubits(param)
	if err != nil {
		return nil, &PatchComputationError{Quantity: "physical qubits", Err: err}
	}

	logicalQubits, err := code.LogicalQubits(param)
	if err != nil {
		return nil, &PatchComputationError{Quantity: "logical qubits", Err: err}
	}

	cycleTime, err := code.LogicalCycleTime(qubit, param)
	if err != nil {
		return nil, &PatchComputationError{Quantity: "logical cycle time", Err: err}
	}

	errorRate, err := code.LogicalErrorRate(qubit, param)
	if err != nil {
		return nil, &PatchComputationError{Quantity: "logical error rate", Err: err}
	}

	return &LogicalPatch[Q, P]{
		qubit:            qubit,
		codeParameter:    param,
		physicalQubits:   physicalQubits,
		logicalQubits:    logicalQubits,
		logicalCycleTime: cycleTime,
		logicalErrorRate: errorRate,
	}, nil
}

// Qubit returns the physical qubit the patch is made of.
func (p *LogicalPatch[Q, P]) Qubit() Q {
	return p.qubit
}

// CodeParameter returns the code parameter of the patch.
func (p *LogicalPatch[Q, P]) CodeParameter() P {
	return p.codeParameter
}

// PhysicalQubits returns the number of physical qubits in the patch.
func (p *LogicalPatch[Q, P]) PhysicalQubits() uint64 {
	return p.physicalQubits
}

// LogicalQubits returns the number of logical qubits in the patch.
func (p *LogicalPatch[Q, P]) LogicalQubits() uint64 {
	return p.logicalQubits
}

// LogicalCycleTime returns the time of one logical cycle in ns.
func (p *LogicalPatch[Q, P]) LogicalCycleTime() uint64 {
	return p.logicalCycleTime
}

// LogicalErrorRate returns the failure probability per logical cycle.
func (p *LogicalPatch[Q, P]) LogicalErrorRate() float64 {
	return p.logicalErrorRate
}

// LogicalCyclesPerSecond returns how many logical cycles run per second.
func (p *LogicalPatch[Q, P]) LogicalCyclesPerSecond() float64 {
	return 1e9 / float64(p.logicalCycleTime)
}
