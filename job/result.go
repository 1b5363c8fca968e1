package job

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/qre/counts"
	"github.com/sarchlab/qre/qec"
	"github.com/sarchlab/qre/qubit"
	"github.com/sarchlab/qre/tfactory"
)

// StatusSuccess is the status of every result. Failed items turn into a
// *Failure instead.
const StatusSuccess = "success"

// Result is the outcome of one item. A single point estimate fills the
// inline Estimate, a frontier estimate fills FrontierEntries.
type Result struct {
	Status        string               `yaml:"status" json:"status"`
	JobParams     ResolvedParams       `yaml:"jobParams" json:"jobParams"`
	LogicalCounts counts.LogicalCounts `yaml:"logicalCounts" json:"logicalCounts"`

	Estimate `yaml:",inline"`

	FrontierEntries []Estimate `yaml:"frontierEntries,omitempty" json:"frontierEntries,omitempty"`
}

// Estimate describes one point of a result.
type Estimate struct {
	PhysicalCounts          *PhysicalCounts  `yaml:"physicalCounts,omitempty" json:"physicalCounts,omitempty"`
	PhysicalCountsFormatted *FormattedCounts `yaml:"physicalCountsFormatted,omitempty" json:"physicalCountsFormatted,omitempty"`
	LogicalQubit            *LogicalQubit    `yaml:"logicalQubit,omitempty" json:"logicalQubit,omitempty"`
	TFactory                *TFactory        `yaml:"tfactory,omitempty" json:"tfactory,omitempty"`
	ErrorBudget             *ErrorBudget     `yaml:"errorBudget,omitempty" json:"errorBudget,omitempty"`
}

// PhysicalCounts are the headline numbers of an estimate. Runtime is in ns.
type PhysicalCounts struct {
	PhysicalQubits uint64    `yaml:"physicalQubits" json:"physicalQubits"`
	Runtime        uint64    `yaml:"runtime" json:"runtime"`
	RQOPS          uint64    `yaml:"rqops" json:"rqops"`
	Breakdown      Breakdown `yaml:"breakdown" json:"breakdown"`
}

// Breakdown explains how the physical counts come about.
type Breakdown struct {
	AlgorithmicLogicalQubits       uint64   `yaml:"algorithmicLogicalQubits" json:"algorithmicLogicalQubits"`
	AlgorithmicLogicalDepth        uint64   `yaml:"algorithmicLogicalDepth" json:"algorithmicLogicalDepth"`
	LogicalDepth                   uint64   `yaml:"logicalDepth" json:"logicalDepth"`
	ClockFrequency                 float64  `yaml:"clockFrequency" json:"clockFrequency"`
	NumTStates                     uint64   `yaml:"numTstates" json:"numTstates"`
	NumTFactories                  uint64   `yaml:"numTfactories" json:"numTfactories"`
	NumTFactoryRuns                uint64   `yaml:"numTfactoryRuns" json:"numTfactoryRuns"`
	PhysicalQubitsForTFactories    uint64   `yaml:"physicalQubitsForTfactories" json:"physicalQubitsForTfactories"`
	PhysicalQubitsForAlgorithm     uint64   `yaml:"physicalQubitsForAlgorithm" json:"physicalQubitsForAlgorithm"`
	RequiredLogicalQubitErrorRate  float64  `yaml:"requiredLogicalQubitErrorRate" json:"requiredLogicalQubitErrorRate"`
	RequiredLogicalTStateErrorRate *float64 `yaml:"requiredLogicalTstateErrorRate,omitempty" json:"requiredLogicalTstateErrorRate,omitempty"`
	NumTsPerRotation               *uint64  `yaml:"numTsPerRotation,omitempty" json:"numTsPerRotation,omitempty"`
	CliffordErrorRate              float64  `yaml:"cliffordErrorRate" json:"cliffordErrorRate"`
}

// LogicalQubit describes the patch that hosts the algorithm.
type LogicalQubit struct {
	CodeDistance     uint64  `yaml:"codeDistance" json:"codeDistance"`
	PhysicalQubits   uint64  `yaml:"physicalQubits" json:"physicalQubits"`
	LogicalCycleTime uint64  `yaml:"logicalCycleTime" json:"logicalCycleTime"`
	LogicalErrorRate float64 `yaml:"logicalErrorRate" json:"logicalErrorRate"`
}

// TFactory describes one copy of the T factory and its rounds. Rounds on
// physical qubits have a nil code distance.
type TFactory struct {
	PhysicalQubits         uint64    `yaml:"physicalQubits" json:"physicalQubits"`
	Runtime                uint64    `yaml:"runtime" json:"runtime"`
	NumTStates             uint64    `yaml:"numTstates" json:"numTstates"`
	NumInputTStates        uint64    `yaml:"numInputTstates" json:"numInputTstates"`
	NumRounds              int       `yaml:"numRounds" json:"numRounds"`
	NumUnitsPerRound       []uint64  `yaml:"numUnitsPerRound" json:"numUnitsPerRound"`
	UnitNamePerRound       []string  `yaml:"unitNamePerRound" json:"unitNamePerRound"`
	CodeDistancePerRound   []*uint64 `yaml:"codeDistancePerRound" json:"codeDistancePerRound"`
	PhysicalQubitsPerRound []uint64  `yaml:"physicalQubitsPerRound" json:"physicalQubitsPerRound"`
	RuntimePerRound        []uint64  `yaml:"runtimePerRound" json:"runtimePerRound"`
	LogicalErrorRate       float64   `yaml:"logicalErrorRate" json:"logicalErrorRate"`
}

// ErrorBudget is the budget an estimate used.
type ErrorBudget struct {
	Logical   float64 `yaml:"logical" json:"logical"`
	TStates   float64 `yaml:"tstates" json:"tstates"`
	Rotations float64 `yaml:"rotations" json:"rotations"`
}

// ResolvedParams echo the parameters after presets and defaults were
// applied.
type ResolvedParams struct {
	QubitParams                    *qubit.PhysicalQubit `yaml:"qubitParams" json:"qubitParams"`
	QECScheme                      QECScheme            `yaml:"qecScheme" json:"qecScheme"`
	DistillationUnitSpecifications []string             `yaml:"distillationUnitSpecifications" json:"distillationUnitSpecifications"`
	ErrorBudget                    float64              `yaml:"errorBudget" json:"errorBudget"`
	ErrorBudgetStrategy            string               `yaml:"errorBudgetStrategy" json:"errorBudgetStrategy"`
	Constraints                    Constraints          `yaml:"constraints" json:"constraints"`
	EstimateType                   EstimateType         `yaml:"estimateType" json:"estimateType"`
}

// QECScheme echoes a resolved QEC scheme.
type QECScheme struct {
	Name                          string  `yaml:"name" json:"name"`
	ErrorCorrectionThreshold      float64 `yaml:"errorCorrectionThreshold" json:"errorCorrectionThreshold"`
	CrossingPrefactor             float64 `yaml:"crossingPrefactor" json:"crossingPrefactor"`
	LogicalCycleTime              string  `yaml:"logicalCycleTime" json:"logicalCycleTime"`
	PhysicalQubitsPerLogicalQubit string  `yaml:"physicalQubitsPerLogicalQubit" json:"physicalQubitsPerLogicalQubit"`
	MaxCodeDistance               uint64  `yaml:"maxCodeDistance" json:"maxCodeDistance"`
}

func newQECScheme(p *qec.Protocol) QECScheme {
	return QECScheme{
		Name:                          p.Name(),
		ErrorCorrectionThreshold:      p.ErrorCorrectionThreshold(),
		CrossingPrefactor:             p.CrossingPrefactor(),
		LogicalCycleTime:              p.LogicalCycleTimeFormula(),
		PhysicalQubitsPerLogicalQubit: p.PhysicalQubitsFormula(),
		MaxCodeDistance:               p.MaxCodeDistance(),
	}
}

func (s *setup) resolvedParams(p Params) ResolvedParams {
	names := make([]string, 0, len(s.templates))
	for _, t := range s.templates {
		names = append(names, t.Name)
	}

	return ResolvedParams{
		QubitParams:                    s.qubit,
		QECScheme:                      newQECScheme(s.code),
		DistillationUnitSpecifications: names,
		ErrorBudget:                    s.budget.Total(),
		ErrorBudgetStrategy:            s.strategy.String(),
		Constraints:                    p.Constraints,
		EstimateType:                   s.estimateType,
	}
}

func newEstimate(
	c *counts.LogicalCounts,
	q *qubit.PhysicalQubit,
	r *tfactory.Result,
) Estimate {
	patch := r.LogicalPatch()
	budget := r.ErrorBudget()

	breakdown := Breakdown{
		AlgorithmicLogicalQubits:      r.AlgorithmicLogicalQubits(),
		AlgorithmicLogicalDepth:       r.AlgorithmicLogicalDepth(),
		LogicalDepth:                  r.NumCycles(),
		ClockFrequency:                patch.LogicalCyclesPerSecond(),
		PhysicalQubitsForTFactories:   r.PhysicalQubitsForFactories(),
		PhysicalQubitsForAlgorithm:    r.PhysicalQubitsForAlgorithm(),
		RequiredLogicalQubitErrorRate: r.RequiredLogicalErrorRate(),
		CliffordErrorRate:             q.CliffordErrorRate(),
	}

	if n := r.NumMagicStates(); len(n) > 0 {
		breakdown.NumTStates = n[0]
	}

	if rate, ok := r.RequiredLogicalMagicStateErrorRate(); ok {
		breakdown.RequiredLogicalTStateErrorRate = &rate
	}

	if n, ok := c.NumTsPerRotation(budget.Rotations()); ok {
		breakdown.NumTsPerRotation = &n
	}

	e := Estimate{
		LogicalQubit: &LogicalQubit{
			CodeDistance:     patch.CodeParameter(),
			PhysicalQubits:   patch.PhysicalQubits(),
			LogicalCycleTime: patch.LogicalCycleTime(),
			LogicalErrorRate: patch.LogicalErrorRate(),
		},
		ErrorBudget: &ErrorBudget{
			Logical:   budget.Logical(),
			TStates:   budget.MagicStates(),
			Rotations: budget.Rotations(),
		},
	}

	if part := r.FactoryPart(); part != nil {
		breakdown.NumTFactories = part.NumFactories()
		breakdown.NumTFactoryRuns = part.NumRuns()
		e.TFactory = newTFactory(part.Factory())
	}

	e.PhysicalCounts = &PhysicalCounts{
		PhysicalQubits: r.PhysicalQubits(),
		Runtime:        r.Runtime(),
		RQOPS:          r.RQOPS(),
		Breakdown:      breakdown,
	}
	e.PhysicalCountsFormatted = NewFormattedCounts(&e)

	return e
}

func newTFactory(f *tfactory.TFactory) *TFactory {
	return &TFactory{
		PhysicalQubits:         f.PhysicalQubits(),
		Runtime:                f.Duration(),
		NumTStates:             f.NumOutputStates(),
		NumInputTStates:        f.NumInputStates(),
		NumRounds:              f.NumRounds(),
		NumUnitsPerRound:       f.NumUnitsPerRound(),
		UnitNamePerRound:       f.UnitNames(),
		CodeDistancePerRound:   f.CodeParameterPerRound(),
		PhysicalQubitsPerRound: f.PhysicalQubitsPerRound(),
		RuntimePerRound:        f.DurationPerRound(),
		LogicalErrorRate:       f.OutputErrorRate(),
	}
}

// WriteYAML writes the results as a YAML document. A job without items
// writes a single result instead of a list.
func WriteYAML(w io.Writer, results []*Result, batch bool) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	var err error
	if batch {
		err = enc.Encode(results)
	} else {
		err = enc.Encode(results[0])
	}

	if err != nil {
		return err
	}

	return enc.Close()
}

// WriteJSON is like WriteYAML but writes indented JSON.
func WriteJSON(w io.Writer, results []*Result, batch bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if batch {
		return enc.Encode(results)
	}

	return enc.Encode(results[0])
}
