package system

import (
	"log"

	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

// EffectAreaSystem applies and restores area overrides from the contact
// events of the last physics step.
type EffectAreaSystem struct{}

func NewEffectAreaSystem() *EffectAreaSystem {
	return &EffectAreaSystem{}
}

func (s *EffectAreaSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, c := range w.Events().Contacts() {
		if !s.handle(w, c, c.A, c.B) {
			s.handle(w, c, c.B, c.A)
		}
	}

	ecs.ForEach(w, component.EffectAreaComponent.Kind(), func(e ecs.Entity, area *component.EffectArea) {
		if area.Disabled {
			if n := area.RestoreAll(paramsLookup(w)); n > 0 {
				log.Printf("effect area: %s disabled, restored %d actor(s)", describe(w, e), n)
			}
			return
		}
		for _, occupant := range area.Occupants() {
			if !w.IsAlive(ecs.Entity(occupant)) {
				area.Exit(occupant, nil)
			}
		}
	})
}

func (s *EffectAreaSystem) handle(w *ecs.World, c ecs.ContactEvent, areaEnt, actorEnt ecs.Entity) bool {
	area, ok := ecs.Get(w, areaEnt, component.EffectAreaComponent.Kind())
	if !ok {
		return false
	}
	actor, ok := ecs.Get(w, actorEnt, component.ActorComponent.Kind())
	if !ok || !actor.IsPlayer() {
		return true
	}
	params, ok := ecs.Get(w, actorEnt, component.ActorParamsComponent.Kind())
	if !ok {
		return true
	}

	switch c.Kind {
	case ecs.ContactEnter:
		if area.Enter(uint64(actorEnt), params) {
			log.Printf("effect area: %s entered %s (%s)", describe(w, actorEnt), describe(w, areaEnt), area.Kind)
		}
	case ecs.ContactExit:
		if area.Exit(uint64(actorEnt), params) {
			log.Printf("effect area: %s left %s", describe(w, actorEnt), describe(w, areaEnt))
		}
	}
	return true
}

// DisableEffectArea stops an area from applying overrides and restores every
// actor inside it.
func DisableEffectArea(w *ecs.World, e ecs.Entity) {
	area, ok := ecs.Get(w, e, component.EffectAreaComponent.Kind())
	if !ok {
		return
	}
	area.Disabled = true
	area.RestoreAll(paramsLookup(w))
}

// TeardownEffectArea restores every actor inside the area on e. It is a
// no-op for entities without an area.
func TeardownEffectArea(w *ecs.World, e ecs.Entity) int {
	area, ok := ecs.Get(w, e, component.EffectAreaComponent.Kind())
	if !ok {
		return 0
	}
	return area.RestoreAll(paramsLookup(w))
}

func paramsLookup(w *ecs.World) func(uint64) *component.ActorParams {
	return func(actor uint64) *component.ActorParams {
		p, ok := ecs.Get(w, ecs.Entity(actor), component.ActorParamsComponent.Kind())
		if !ok {
			return nil
		}
		return p
	}
}
