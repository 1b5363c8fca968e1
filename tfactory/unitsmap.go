package tfactory

import (
	"github.com/sarchlab/qre/distillation"
	"github.com/sarchlab/qre/qubit"
)

// A UnitsMap holds every template instantiated at every code distance, for
// the first round and for later rounds.
//
// Unit indexes list the combined templates first, then the logical ones,
// then the physical ones. Physical templates whose qubit has too noisy
// Clifford operations are dropped.
type UnitsMap struct {
	distances   []uint64
	numCombined int
	numLogical  int
	numPhysical int

	// units[position][distanceIndex][unitIndex], position 0 is the first
	// round and position 1 all later rounds.
	units [2][][]*Unit
}

// NewUnitsMap instantiates the templates. Patches are indexed like the
// distances and may be nil where no patch exists.
func NewUnitsMap(
	q *qubit.PhysicalQubit,
	patches []*Patch,
	distances []uint64,
	templates []*Template,
) *UnitsMap {
	m := &UnitsMap{distances: distances}

	var combined, logical, physical []*Template
	for _, t := range templates {
		switch t.Type {
		case Combined:
			combined = append(combined, t)
		case Logical:
			logical = append(logical, t)
		case Physical:
			if NewUnit(t, PhysicalQubit(q)).IsValid() {
				physical = append(physical, t)
			}
		}
	}

	m.numCombined = len(combined)
	m.numLogical = len(logical)
	m.numPhysical = len(physical)

	ordered := make([]*Template, 0, len(templates))
	ordered = append(ordered, combined...)
	ordered = append(ordered, logical...)
	ordered = append(ordered, physical...)

	for position := range m.units {
		m.units[position] = make([][]*Unit, len(distances))
		for i, d := range distances {
			m.units[position][i] = m.instantiate(
				ordered, position, d, q, patches[i])
		}
	}

	return m
}

func (m *UnitsMap) instantiate(
	templates []*Template,
	position int,
	distance uint64,
	q *qubit.PhysicalQubit,
	patch *Patch,
) []*Unit {
	units := make([]*Unit, len(templates))

	if position == 0 && distance == 1 {
		for i, t := range templates {
			if t.Type != Logical {
				units[i] = NewUnit(t, PhysicalQubit(q))
			}
		}

		return units
	}

	if patch == nil {
		return units
	}

	for i, t := range templates {
		if t.Type != Physical {
			units[i] = NewUnit(t, LogicalQubit(patch))
		}
	}

	return units
}

// NumCombined returns the number of combined units.
func (m *UnitsMap) NumCombined() int {
	return m.numCombined
}

// NumLogical returns the number of purely logical units.
func (m *UnitsMap) NumLogical() int {
	return m.numLogical
}

// NumPhysical returns the number of purely physical units.
func (m *UnitsMap) NumPhysical() int {
	return m.numPhysical
}

// Distances returns the code distances of the map.
func (m *UnitsMap) Distances() []uint64 {
	return m.distances
}

// Get returns the unit at a round position and code distance, or nil if
// the unit cannot run there.
func (m *UnitsMap) Get(position int, distance uint64, unitIndex int) *Unit {
	for i, d := range m.distances {
		if d == distance {
			return m.get(position, i, unitIndex)
		}
	}

	return nil
}

func (m *UnitsMap) get(position, distanceIndex, unitIndex int) *Unit {
	return m.units[min(position, 1)][distanceIndex][unitIndex]
}

// GetMany returns the units for one round each. It returns false if one
// of them does not exist.
func (m *UnitsMap) GetMany(
	distanceIndexes, unitIndexes []int,
) ([]distillation.Unit[uint64], bool) {
	units := make([]distillation.Unit[uint64], len(unitIndexes))
	for position, unitIndex := range unitIndexes {
		u := m.get(position, distanceIndexes[position], unitIndex)
		if u == nil {
			return nil, false
		}

		units[position] = u
	}

	return units, true
}

// IterateUnits calls f with every sequence of unit indexes for the given
// number of rounds. Purely physical units only appear in the first round.
func (m *UnitsMap) IterateUnits(numRounds int, f func(unitIndexes []int)) {
	if numRounds == 0 {
		return
	}

	indexes := make([]int, numRounds)
	m.iterateUnits(indexes, 0, f)
}

func (m *UnitsMap) iterateUnits(indexes []int, position int, f func([]int)) {
	if position == len(indexes) {
		f(indexes)
		return
	}

	n := m.numCombined + m.numLogical
	if position == 0 {
		n += m.numPhysical
	}

	for i := 0; i < n; i++ {
		indexes[position] = i
		m.iterateUnits(indexes, position+1, f)
	}
}

func (m *UnitsMap) isPhysical(unitIndex int) bool {
	return unitIndex >= m.numCombined+m.numLogical
}

func (m *UnitsMap) isLogical(unitIndex int) bool {
	return unitIndex >= m.numCombined && !m.isPhysical(unitIndex)
}

// MinDistanceIndexes returns the lowest distance index each round can use.
// Logical units cannot run at distance 1 in the first round.
func (m *UnitsMap) MinDistanceIndexes(unitIndexes []int) []int {
	out := make([]int, len(unitIndexes))
	if len(unitIndexes) > 0 && m.isLogical(unitIndexes[0]) &&
		len(m.distances) > 0 && m.distances[0] == 1 {
		out[0] = 1
	}

	return out
}

// MaxDistanceIndexes returns the highest distance index each round can
// use. Physical units only run at distance 1.
func (m *UnitsMap) MaxDistanceIndexes(unitIndexes []int) []int {
	out := make([]int, len(unitIndexes))
	for position, unitIndex := range unitIndexes {
		if m.isPhysical(unitIndex) {
			out[position] = 0
		} else {
			out[position] = len(m.distances) - 1
		}
	}

	return out
}
