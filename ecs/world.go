package ecs

import (
	"errors"

	"github.com/milk9111/shootscroller/ecs/component"
)

var ErrEntityNotAlive = component.ErrEntityNotAlive

// System updates a world once per scheduled tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores and the event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	events   EventQueue
	delta    float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]componentStore)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its id. It reports
// false when e was already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// DeltaTime is the duration in seconds of the tick currently being run.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// SetDeltaTime overrides the current tick duration. The scheduler calls it
// before every phase; tests call it directly.
func (w *World) SetDeltaTime(dt float64) {
	if w == nil {
		return
	}
	w.delta = dt
}

// Query returns the live entities that have every listed component.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]componentStore, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}
	// iterate smallest store
	smallest := stores[0]
	for _, s := range stores[1:] {
		if len(s.entities()) < len(smallest.entities()) {
			smallest = s
		}
	}
	candidates := append([]Entity(nil), smallest.entities()...)
	out := make([]Entity, 0, len(candidates))
	for _, e := range candidates {
		if !w.entities.isAlive(e) {
			continue
		}
		ok := true
		for _, s := range stores {
			if !s.has(e) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity that has the given component.
func (w *World) First(kind component.Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return 0, false
	}
	for _, e := range s.entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) (*sparseSet[T], error) {
	if w == nil {
		return nil, errors.New("ecs: nil world")
	}
	if !kind.Valid() {
		return nil, component.ErrInvalidComponentKind
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	raw, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil, nil
		}
		s := &sparseSet[T]{}
		w.stores[kind.ID()] = s
		return s, nil
	}
	s, ok := raw.(*sparseSet[T])
	if !ok {
		return nil, component.ErrInvalidComponentKind
	}
	return s, nil
}
