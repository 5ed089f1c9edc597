package component

import "errors"

// ExclusionCapacity is the number of slots in an exclusion list.
const ExclusionCapacity = 50

var ErrExclusionListFull = errors.New("exclusion: list full")

// ExclusionList is a fixed set of protected targets. Slots keep their
// position when neighbours are cleared; zero means empty. The list is a value
// type, so assigning it copies every slot.
type ExclusionList struct {
	Slots [ExclusionCapacity]uint64 // ecs.Entity
}

// Add stores e in the first empty slot and returns the slot index.
func (l *ExclusionList) Add(e uint64) (int, error) {
	if e == 0 {
		return -1, ErrNilComponent
	}
	for i, s := range l.Slots {
		if s == 0 {
			l.Slots[i] = e
			return i, nil
		}
	}
	return -1, ErrExclusionListFull
}

// Set writes e into slot i.
func (l *ExclusionList) Set(i int, e uint64) bool {
	if i < 0 || i >= ExclusionCapacity {
		return false
	}
	l.Slots[i] = e
	return true
}

func (l *ExclusionList) Clear(i int) {
	l.Set(i, 0)
}

// Contains reports a direct slot match only.
func (l *ExclusionList) Contains(e uint64) bool {
	if e == 0 {
		return false
	}
	for _, s := range l.Slots {
		if s == e {
			return true
		}
	}
	return false
}

// Entries returns the occupied slots in slot order.
func (l *ExclusionList) Entries() []uint64 {
	out := make([]uint64, 0, 4)
	for _, s := range l.Slots {
		if s != 0 {
			out = append(out, s)
		}
	}
	return out
}

func (l *ExclusionList) Len() int {
	n := 0
	for _, s := range l.Slots {
		if s != 0 {
			n++
		}
	}
	return n
}

var ExclusionListComponent = NewComponent[ExclusionList]()

// ExclusionNames are names or tags waiting to be resolved into the entity's
// ExclusionList once the level is built.
type ExclusionNames struct {
	Names []string
}

var ExclusionNamesComponent = NewComponent[ExclusionNames]()
