package qec

import (
	"errors"
	"fmt"

	"github.com/sarchlab/qre/qubit"
)

// Preset names.
const (
	SurfaceCode = "surface_code"
	FloquetCode = "floquet_code"
)

// ErrFloquetCodeRequiresMajorana is returned when the floquet code is
// selected for a gate-based qubit.
var ErrFloquetCodeRequiresMajorana = errors.New(
	"floquet code is only supported for Majorana qubits")

// SurfaceCodeGateBased is the surface code on gate-based qubits.
func SurfaceCodeGateBased() *Protocol {
	return mustProtocol(SurfaceCode, 0.01, 0.03,
		"(4 * twoQubitGateTime + 2 * oneQubitMeasurementTime) * codeDistance",
		"2 * codeDistance * codeDistance")
}

// SurfaceCodeMeasurementBased is the surface code on Majorana qubits.
func SurfaceCodeMeasurementBased() *Protocol {
	return mustProtocol(SurfaceCode, 0.0015, 0.08,
		"20 * oneQubitMeasurementTime * codeDistance",
		"2 * codeDistance * codeDistance")
}

// FloquetCodeMeasurementBased is the floquet code on Majorana qubits.
func FloquetCodeMeasurementBased() *Protocol {
	return mustProtocol(FloquetCode, 0.01, 0.07,
		"3 * oneQubitMeasurementTime * codeDistance",
		"4 * codeDistance * codeDistance + 8 * (codeDistance - 1)")
}

func mustProtocol(
	name string,
	threshold, prefactor float64,
	cycleTime, physicalQubits string,
) *Protocol {
	p, err := NewProtocol(name, threshold, prefactor,
		cycleTime, physicalQubits, DefaultMaxCodeDistance)
	if err != nil {
		panic(err)
	}

	return p
}

// DefaultFor returns the protocol used when a job names no code.
func DefaultFor(is qubit.InstructionSet) *Protocol {
	if is == qubit.Majorana {
		return SurfaceCodeMeasurementBased()
	}

	return SurfaceCodeGateBased()
}

// FromName returns the preset with the given name for an instruction set.
func FromName(name string, is qubit.InstructionSet) (*Protocol, error) {
	switch canonicalName(name) {
	case SurfaceCode:
		return DefaultFor(is), nil
	case FloquetCode:
		if is != qubit.Majorana {
			return nil, ErrFloquetCodeRequiresMajorana
		}

		return FloquetCodeMeasurementBased(), nil
	}

	return nil, fmt.Errorf("unknown QEC scheme %q", name)
}

func canonicalName(name string) string {
	switch name {
	case "surface_code", "surfaceCode", "surface-code":
		return SurfaceCode
	case "floquet_code", "floquetCode", "floquet-code":
		return FloquetCode
	}

	return name
}

func isPreset(name string) bool {
	n := canonicalName(name)
	return n == SurfaceCode || n == FloquetCode
}
