package tfactory

import (
	"errors"

	"github.com/go-logr/logr"

	"github.com/sarchlab/qre/distillation"
	"github.com/sarchlab/qre/estimate"
	"github.com/sarchlab/qre/hooking"
	"github.com/sarchlab/qre/pareto"
	"github.com/sarchlab/qre/qubit"
)

// Bounds on the number of distillation rounds. Extra rounds are only
// searched if no factory was found with the regular ones.
const (
	MaxDistillationRounds      = 3
	MaxExtraDistillationRounds = 5
)

// Hook positions of the search. Item is the *TFactory for
// HookPosFactoryFound and the Stats for HookPosRoundsSearched, where
// Detail is the number of rounds.
var (
	HookPosFactoryFound   = &hooking.HookPos{Name: "TFactoryFound"}
	HookPosRoundsSearched = &hooking.HookPos{Name: "TFactoryRoundsSearched"}
)

// Stats counts the work of a search.
type Stats struct {
	// NumCombinations is the number of unit and distance combinations for
	// which a factory was built.
	NumCombinations int

	// NumValid is the number of factories that could be built.
	NumValid int

	// NumCandidates is the number of factories that meet the target.
	NumCandidates int
}

type searcher struct {
	*hooking.HookableBase

	outputErrorRate float64
	stats           Stats
	frontier        *pareto.Population[*TFactory]
}

func newSearcher(outputErrorRate float64, hooks *hooking.HookableBase) *searcher {
	return &searcher{
		HookableBase:    hooks,
		outputErrorRate: outputErrorRate,
		frontier:        pareto.NewPopulation[*TFactory](),
	}
}

func factoryPoint(f *TFactory) pareto.Point2D[*TFactory] {
	return pareto.NewPoint2D(f, float64(f.Duration()), f.NormalizedQubits())
}

// check builds a factory and tells if larger code distances in the last
// round may lead to a better one.
func (s *searcher) check(units []distillation.Unit[uint64]) bool {
	s.stats.NumCombinations++

	tRate := units[0].(*Unit).QubitTErrorRate()

	f, err := distillation.Build(units, tRate, failureProbabilityRequirement)
	switch {
	case err == nil:
	case errors.Is(err, distillation.ErrHighFailureProbability),
		errors.Is(err, distillation.ErrOutputErrorRateHigherThanInputErrorRate),
		errors.Is(err, distillation.ErrUnreasonableHighNumberOfUnitsRequired):
		return true
	default:
		return false
	}

	s.stats.NumValid++

	below := f.OutputErrorRate() <= s.outputErrorRate
	if below {
		s.stats.NumCandidates++
	}

	point := factoryPoint(f)
	notDominated := !s.frontier.Dominates(point)

	if notDominated && below {
		s.frontier.Push(point)
		s.frontier.AttemptFilterOutDominated()

		s.InvokeHook(hooking.HookCtx{
			Domain: s,
			Pos:    HookPosFactoryFound,
			Item:   f,
		})
	}

	return notDominated && !below
}

func (s *searcher) processRounds(m *UnitsMap, numRounds int) {
	m.IterateUnits(numRounds, func(unitIndexes []int) {
		s.processUnits(m, unitIndexes)
	})

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    HookPosRoundsSearched,
		Item:   s.stats,
		Detail: numRounds,
	})
}

func (s *searcher) processUnits(m *UnitsMap, unitIndexes []int) {
	left := m.MinDistanceIndexes(unitIndexes)
	right := m.MaxDistanceIndexes(unitIndexes)

	check := func(distanceIndexes []int) bool {
		units, ok := m.GetMany(distanceIndexes, unitIndexes)
		if !ok {
			return true
		}

		return s.check(units)
	}

	start, ok := searchCodeDistances(left, right, check)
	if !ok {
		return
	}

	iterateCodeDistances(left, right, start, check)
}

// Search finds T factories.
type Search struct {
	*hooking.HookableBase

	templates             []*Template
	maxDistillationRounds int
	log                   logr.Logger
}

// FindNondominatedTFactories returns the factories that produce T states
// with at most outputErrorRate and are not dominated in duration and
// normalized qubits. The factories are sorted by increasing duration. The
// result is empty if no factory reaches the target.
func (s *Search) FindNondominatedTFactories(
	code estimate.ErrorCorrection[*qubit.PhysicalQubit, uint64],
	q *qubit.PhysicalQubit,
	outputErrorRate float64,
	maxCodeDistance uint64,
) []*TFactory {
	return s.FindNondominatedPopulation(
		code, q, outputErrorRate, maxCodeDistance).ExtractItems()
}

// FindNondominatedPopulation is like FindNondominatedTFactories but
// returns the points with their coordinates.
func (s *Search) FindNondominatedPopulation(
	code estimate.ErrorCorrection[*qubit.PhysicalQubit, uint64],
	q *qubit.PhysicalQubit,
	outputErrorRate float64,
	maxCodeDistance uint64,
) *pareto.Population[*TFactory] {
	if outputErrorRate > q.TGateErrorRate {
		return s.trivialPopulation(code, q, maxCodeDistance)
	}

	distances := code.CodeParameterRange(nil)
	for len(distances) > 0 && distances[len(distances)-1] > maxCodeDistance {
		distances = distances[:len(distances)-1]
	}

	patches := make([]*Patch, len(distances))
	for i, d := range distances {
		if p, err := estimate.NewLogicalPatch(code, d, q); err == nil {
			patches[i] = p
		}
	}

	m := NewUnitsMap(q, patches, distances, s.templates)
	state := newSearcher(outputErrorRate, s.HookableBase)

	for n := 1; n <= s.maxDistillationRounds; n++ {
		state.processRounds(m, n)
	}

	if state.frontier.Len() == 0 {
		for n := s.maxDistillationRounds + 1; n <= MaxExtraDistillationRounds; n++ {
			state.processRounds(m, n)
		}
	}

	state.frontier.FilterOutDominated()

	s.log.V(1).Info("T factory search done",
		"outputErrorRate", outputErrorRate,
		"maxCodeDistance", maxCodeDistance,
		"combinations", state.stats.NumCombinations,
		"valid", state.stats.NumValid,
		"candidates", state.stats.NumCandidates,
		"frontier", state.frontier.Len())

	return state.frontier
}

func (s *Search) trivialPopulation(
	code estimate.ErrorCorrection[*qubit.PhysicalQubit, uint64],
	q *qubit.PhysicalQubit,
	maxCodeDistance uint64,
) *pareto.Population[*TFactory] {
	population := pareto.NewPopulation[*TFactory]()

	patch, err := estimate.NewLogicalPatch(code, maxCodeDistance, q)
	if err != nil {
		s.log.V(1).Info("no patch at max code distance",
			"maxCodeDistance", maxCodeDistance, "err", err)
		return population
	}

	population.Push(factoryPoint(DefaultTFactory(patch)))

	return population
}
