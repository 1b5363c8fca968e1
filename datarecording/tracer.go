package datarecording

import (
	"strconv"
	"strings"

	"github.com/rs/xid"

	"github.com/sarchlab/qre/hooking"
	"github.com/sarchlab/qre/tfactory"
)

// Names of the tables that the tracers write.
const (
	FactoryTable  = "tfactories"
	EstimateTable = "estimates"
)

// FactoryEntry is a T factory found by a search.
type FactoryEntry struct {
	ID               string
	SearchID         string
	NumRounds        int
	UnitNames        string
	UnitsPerRound    string
	CodeDistances    string
	PhysicalQubits   uint64
	Duration         uint64
	OutputErrorRate  float64
	NormalizedQubits float64
}

// EstimateEntry is one estimation result. Frontier estimations write one
// entry per frontier point.
type EstimateEntry struct {
	ID                         string
	JobID                      string
	BatchIndex                 int
	FrontierIndex              int
	CodeDistance               uint64
	LogicalQubits              uint64
	NumCycles                  uint64
	PhysicalQubits             uint64
	PhysicalQubitsForAlgorithm uint64
	PhysicalQubitsForFactories uint64
	NumFactories               uint64
	Runtime                    uint64
	RQOPS                      uint64
	RequiredLogicalErrorRate   float64
}

// FactoryTracer records every factory that a T factory search adds to its
// frontier.
type FactoryTracer struct {
	backend  DataRecorder
	searchID string
}

// NewFactoryTracer creates a FactoryTracer. An empty searchID is replaced
// by a unique one.
func NewFactoryTracer(backend DataRecorder, searchID string) *FactoryTracer {
	if searchID == "" {
		searchID = xid.New().String()
	}

	backend.CreateTable(FactoryTable, FactoryEntry{})

	return &FactoryTracer{
		backend:  backend,
		searchID: searchID,
	}
}

// SearchID returns the ID that groups the factories of the tracer.
func (t *FactoryTracer) SearchID() string {
	return t.searchID
}

// Func records the factory of a HookPosFactoryFound hook.
func (t *FactoryTracer) Func(ctx hooking.HookCtx) {
	if ctx.Pos != tfactory.HookPosFactoryFound {
		return
	}

	f, ok := ctx.Item.(*tfactory.TFactory)
	if !ok {
		return
	}

	t.backend.InsertData(FactoryTable, NewFactoryEntry(t.searchID, f))
}

// NewFactoryEntry flattens a factory into a table row.
func NewFactoryEntry(searchID string, f *tfactory.TFactory) FactoryEntry {
	distances := make([]string, 0, f.NumRounds())
	for _, d := range f.CodeParameterPerRound() {
		if d == nil {
			distances = append(distances, "physical")
			continue
		}

		distances = append(distances, strconv.FormatUint(*d, 10))
	}

	units := make([]string, 0, f.NumRounds())
	for _, n := range f.NumUnitsPerRound() {
		units = append(units, strconv.FormatUint(n, 10))
	}

	return FactoryEntry{
		ID:               xid.New().String(),
		SearchID:         searchID,
		NumRounds:        f.NumRounds(),
		UnitNames:        strings.Join(f.UnitNames(), ";"),
		UnitsPerRound:    strings.Join(units, ";"),
		CodeDistances:    strings.Join(distances, ";"),
		PhysicalQubits:   f.PhysicalQubits(),
		Duration:         f.Duration(),
		OutputErrorRate:  f.OutputErrorRate(),
		NormalizedQubits: f.NormalizedQubits(),
	}
}

// EstimateRecorder records estimation results.
type EstimateRecorder struct {
	backend DataRecorder
}

// NewEstimateRecorder creates an EstimateRecorder.
func NewEstimateRecorder(backend DataRecorder) *EstimateRecorder {
	backend.CreateTable(EstimateTable, EstimateEntry{})

	return &EstimateRecorder{backend: backend}
}

// Record writes one entry per result. Single estimates pass one result.
func (r *EstimateRecorder) Record(
	jobID string,
	batchIndex int,
	results []*tfactory.Result,
) {
	for i, result := range results {
		r.backend.InsertData(EstimateTable,
			NewEstimateEntry(jobID, batchIndex, i, result))
	}
}

// NewEstimateEntry flattens a result into a table row.
func NewEstimateEntry(
	jobID string,
	batchIndex, frontierIndex int,
	result *tfactory.Result,
) EstimateEntry {
	var numFactories uint64
	if part := result.FactoryPart(); part != nil {
		numFactories = part.NumFactories()
	}

	return EstimateEntry{
		ID:                         xid.New().String(),
		JobID:                      jobID,
		BatchIndex:                 batchIndex,
		FrontierIndex:              frontierIndex,
		CodeDistance:               result.LogicalPatch().CodeParameter(),
		LogicalQubits:              result.AlgorithmicLogicalQubits(),
		NumCycles:                  result.NumCycles(),
		PhysicalQubits:             result.PhysicalQubits(),
		PhysicalQubitsForAlgorithm: result.PhysicalQubitsForAlgorithm(),
		PhysicalQubitsForFactories: result.PhysicalQubitsForFactories(),
		NumFactories:               numFactories,
		Runtime:                    result.Runtime(),
		RQOPS:                      result.RQOPS(),
		RequiredLogicalErrorRate:   result.RequiredLogicalErrorRate(),
	}
}
