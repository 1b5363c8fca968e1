package qubit

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

var _ = Describe("PhysicalQubit", func() {
	It("should derive clifford and readout rates of gate-based qubits", func() {
		q := GateNsE3()
		q.TwoQubitGateErrorRate = 2e-3

		Expect(q.CliffordErrorRate()).To(Equal(2e-3))
		Expect(q.ReadoutErrorRate()).To(Equal(1e-3))
	})

	It("should derive clifford and readout rates of Majorana qubits", func() {
		q := MajNsE4()
		q.TwoQubitJointMeasurementErrorRate = MeasurementErrorRate{
			Process: 3e-4,
			Readout: 5e-4,
		}

		Expect(q.CliffordErrorRate()).To(Equal(3e-4))
		Expect(q.ReadoutErrorRate()).To(Equal(5e-4))
	})

	It("should validate all presets", func() {
		for name := range presets {
			q, err := FromName(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(q.Validate()).To(Succeed())
			Expect(q.Name).To(Equal(name))
		}
	})

	It("should reject unknown preset names", func() {
		_, err := FromName("qubit_unknown")
		Expect(err).To(HaveOccurred())
	})

	It("should reject error rates out of range", func() {
		q := GateNsE3()
		q.IdleErrorRate = 1.0

		var invalid *InvalidValueError
		Expect(q.Validate()).To(BeAssignableToTypeOf(invalid))
	})
})

var _ = Describe("Params", func() {
	It("should default to qubit_gate_ns_e3", func() {
		q, err := Params{}.Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(q).To(Equal(GateNsE3()))
	})

	It("should override preset values", func() {
		var p Params
		err := yaml.Unmarshal([]byte(`
name: qubit_gate_ns_e3
oneQubitGateTime: 20
tGateErrorRate: 0.0001
`), &p)
		Expect(err).NotTo(HaveOccurred())

		q, err := p.Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(q.OneQubitGateTime).To(Equal(uint64(20)))
		Expect(q.TwoQubitGateTime).To(Equal(uint64(50)))
		Expect(q.TGateErrorRate).To(Equal(1e-4))
	})

	It("should fill derived fields of custom gate-based qubits", func() {
		var p Params
		err := yaml.Unmarshal([]byte(`
name: custom
instructionSet: GateBased
oneQubitMeasurementTime: 100
oneQubitGateTime: 30
oneQubitMeasurementErrorRate: 0.002
oneQubitGateErrorRate: 0.001
tGateErrorRate: 0.01
`), &p)
		Expect(err).NotTo(HaveOccurred())

		q, err := p.Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(q.TwoQubitGateTime).To(Equal(uint64(30)))
		Expect(q.TGateTime).To(Equal(uint64(30)))
		Expect(q.TwoQubitGateErrorRate).To(Equal(0.001))
		Expect(q.IdleErrorRate).To(Equal(0.002))
		Expect(q.CliffordErrorRate()).To(Equal(0.002))
	})

	It("should accept detailed Majorana measurement rates", func() {
		var p Params
		err := yaml.Unmarshal([]byte(`
instructionSet: Majorana
oneQubitMeasurementTime: 100
oneQubitMeasurementErrorRate:
  process: 0.0001
  readout: 0.0002
tGateErrorRate: 0.05
`), &p)
		Expect(err).NotTo(HaveOccurred())

		q, err := p.Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(q.InstructionSet).To(Equal(Majorana))
		Expect(q.TwoQubitJointMeasurementTime).To(Equal(uint64(100)))
		Expect(q.TwoQubitJointMeasurementErrorRate.Process).To(Equal(0.0002))
		Expect(q.ReadoutErrorRate()).To(Equal(0.0002))
	})

	It("should report missing fields", func() {
		_, err := Params{Name: "custom", InstructionSet: "GateBased"}.Build()

		Expect(err).To(MatchError(ContainSubstring("`oneQubitMeasurementTime`")))
	})

	It("should reject a preset with the wrong instruction set", func() {
		_, err := Params{
			Name:           "qubit_maj_ns_e4",
			InstructionSet: "GateBased",
		}.Build()

		Expect(err).To(HaveOccurred())
	})
})
