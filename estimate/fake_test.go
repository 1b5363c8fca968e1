package estimate

import (
	"github.com/sarchlab/qre/qubit"
)

type fakeFactory struct {
	qubits   uint64
	duration uint64
	outputs  uint64
	param    uint64
}

func (f *fakeFactory) PhysicalQubits() uint64 { return f.qubits }

func (f *fakeFactory) Duration() uint64 { return f.duration }

func (f *fakeFactory) NumOutputStates() uint64 { return f.outputs }

func (f *fakeFactory) NormalizedVolume() float64 {
	return float64(f.qubits) * float64(f.duration) / float64(f.outputs)
}

func (f *fakeFactory) MaxCodeParameter() (uint64, bool) { return f.param, true }

type fakeFactoryBuilder struct {
	factories []*fakeFactory
	numTypes  int
	err       error

	calls         int
	requiredRates []float64
}

func (b *fakeFactoryBuilder) FindFactories(
	_ ErrorCorrection[*qubit.PhysicalQubit, uint64],
	_ *qubit.PhysicalQubit,
	_ int,
	outputErrorRate float64,
	maxCodeParameter uint64,
) ([]*fakeFactory, error) {
	b.calls++
	b.requiredRates = append(b.requiredRates, outputErrorRate)

	if b.err != nil {
		return nil, b.err
	}

	var out []*fakeFactory
	for _, f := range b.factories {
		if f.param <= maxCodeParameter {
			out = append(out, f)
		}
	}

	return out, nil
}

func (b *fakeFactoryBuilder) NumMagicStateTypes() int {
	if b.numTypes == 0 {
		return 1
	}

	return b.numTypes
}
