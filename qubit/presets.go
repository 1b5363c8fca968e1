package qubit

import "fmt"

// DefaultName is the model used when a job names no qubit.
const DefaultName = "qubit_gate_ns_e3"

// GateNsE3 is a gate-based qubit with nanosecond operations and 1e-3 error
// rates.
func GateNsE3() *PhysicalQubit {
	return gateBased("qubit_gate_ns_e3", 100, 50, 1e-3, 1e-3)
}

// GateNsE4 is a gate-based qubit with nanosecond operations and 1e-4 error
// rates.
func GateNsE4() *PhysicalQubit {
	return gateBased("qubit_gate_ns_e4", 100, 50, 1e-4, 1e-4)
}

// GateUsE3 is a gate-based qubit with microsecond operations and 1e-3 error
// rates.
func GateUsE3() *PhysicalQubit {
	return gateBased("qubit_gate_us_e3", 100_000, 100_000, 1e-3, 1e-6)
}

// GateUsE4 is a gate-based qubit with microsecond operations and 1e-4 error
// rates.
func GateUsE4() *PhysicalQubit {
	return gateBased("qubit_gate_us_e4", 100_000, 100_000, 1e-4, 1e-6)
}

// MajNsE4 is a Majorana qubit with 1e-4 measurement error rates.
func MajNsE4() *PhysicalQubit {
	return majorana("qubit_maj_ns_e4", 100, 1e-4, 0.05)
}

// MajNsE6 is a Majorana qubit with 1e-6 measurement error rates.
func MajNsE6() *PhysicalQubit {
	return majorana("qubit_maj_ns_e6", 100, 1e-6, 0.01)
}

func gateBased(
	name string,
	measurementTime, gateTime uint64,
	rate, tRate float64,
) *PhysicalQubit {
	return &PhysicalQubit{
		Name:                         name,
		InstructionSet:               GateBased,
		OneQubitMeasurementTime:      measurementTime,
		OneQubitGateTime:             gateTime,
		TwoQubitGateTime:             gateTime,
		TGateTime:                    gateTime,
		OneQubitMeasurementErrorRate: SimpleMeasurementErrorRate(rate),
		OneQubitGateErrorRate:        rate,
		TwoQubitGateErrorRate:        rate,
		TGateErrorRate:               tRate,
		IdleErrorRate:                rate,
	}
}

func majorana(name string, time uint64, rate, tRate float64) *PhysicalQubit {
	return &PhysicalQubit{
		Name:                              name,
		InstructionSet:                    Majorana,
		OneQubitMeasurementTime:           time,
		TwoQubitJointMeasurementTime:      time,
		TGateTime:                         time,
		OneQubitMeasurementErrorRate:      SimpleMeasurementErrorRate(rate),
		TwoQubitJointMeasurementErrorRate: SimpleMeasurementErrorRate(rate),
		TGateErrorRate:                    tRate,
		IdleErrorRate:                     rate,
	}
}

var presets = map[string]func() *PhysicalQubit{
	"qubit_gate_ns_e3": GateNsE3,
	"qubit_gate_ns_e4": GateNsE4,
	"qubit_gate_us_e3": GateUsE3,
	"qubit_gate_us_e4": GateUsE4,
	"qubit_maj_ns_e4":  MajNsE4,
	"qubit_maj_ns_e6":  MajNsE6,
}

// FromName returns a fresh copy of a predefined qubit model.
func FromName(name string) (*PhysicalQubit, error) {
	preset, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown qubit model %q", name)
	}

	return preset(), nil
}

// NewDefault returns the default qubit model.
func NewDefault() *PhysicalQubit {
	return GateNsE3()
}
