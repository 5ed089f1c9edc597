package system

import (
	"log"

	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

// IsExcluded reports whether candidate is protected by list. owner is the
// shooter the list belongs to; effect-area entries only protect while the
// owner stands inside that area.
//
// Player-mode actors are never excluded, so a player cannot shield itself or
// another player by being listed.
func IsExcluded(w *ecs.World, list *component.ExclusionList, candidate, owner ecs.Entity) bool {
	if w == nil || list == nil || !w.IsAlive(candidate) {
		return false
	}
	if actor, ok := ecs.Get(w, candidate, component.ActorComponent.Kind()); ok && actor.IsPlayer() {
		return false
	}

	for _, raw := range list.Entries() {
		entry := ecs.Entity(raw)
		if !w.IsAlive(entry) {
			continue
		}
		if area, ok := ecs.Get(w, entry, component.EffectAreaComponent.Kind()); ok {
			if owner.Valid() && area.Inside(uint64(owner)) && related(w, entry, candidate) {
				return true
			}
			continue
		}
		if matchesEntry(w, entry, candidate) {
			return true
		}
	}
	return false
}

func matchesEntry(w *ecs.World, entry, candidate ecs.Entity) bool {
	if related(w, entry, candidate) {
		return true
	}

	en, okE := ecs.Get(w, entry, component.NameComponent.Kind())
	cn, okC := ecs.Get(w, candidate, component.NameComponent.Kind())
	if okE && okC {
		if base := en.BaseName(); base != "" && base == cn.BaseName() {
			return true
		}
	}

	et, okE := ecs.Get(w, entry, component.TagComponent.Kind())
	ct, okC := ecs.Get(w, candidate, component.TagComponent.Kind())
	if okE && okC && et.Value != component.DefaultTag && et.Value == ct.Value {
		return true
	}
	return false
}

// DestroyUnlessExcluded destroys target and its descendants unless list
// protects it. It reports whether anything was destroyed.
func DestroyUnlessExcluded(w *ecs.World, target ecs.Entity, list *component.ExclusionList, owner ecs.Entity) bool {
	if w == nil || !w.IsAlive(target) {
		return false
	}
	if IsExcluded(w, list, target, owner) {
		log.Printf("exclusion: kept %s, protected by owner %s", describe(w, target), owner)
		return false
	}
	return DestroyTree(w, target) > 0
}

func describe(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
		return n.Value + " " + e.String()
	}
	return e.String()
}
