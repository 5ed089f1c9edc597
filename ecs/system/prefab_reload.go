package system

import (
	"log"
	"path/filepath"

	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
	"github.com/milk9111/shootscroller/prefabs"
)

// ChangeSource lists prefab files changed since the last call.
type ChangeSource interface {
	Pending() []string
}

// PrefabReloadSystem re-applies movement tuning from the player prefab to
// live player actors when the file changes. Shoot and bullet tuning are left
// alone so effect area snapshots stay valid.
type PrefabReloadSystem struct {
	source       ChangeSource
	playerPrefab string
}

func NewPrefabReloadSystem(source ChangeSource, playerPrefab string) *PrefabReloadSystem {
	return &PrefabReloadSystem{source: source, playerPrefab: playerPrefab}
}

func (s *PrefabReloadSystem) Update(w *ecs.World) {
	if s == nil || s.source == nil || w == nil {
		return
	}
	for _, path := range s.source.Pending() {
		name := filepath.Base(path)
		switch {
		case name == filepath.Base(s.playerPrefab):
			n, err := ReloadMovement(w, s.playerPrefab)
			if err != nil {
				log.Printf("reload: %s: %v", name, err)
				continue
			}
			log.Printf("reload: %s applied to %d player(s)", name, n)
		case filepath.Ext(name) == ".tengo":
			log.Printf("reload: script %s changed; used by entities built from now on", name)
		}
	}
}

// ReloadMovement loads the movement block of prefab and writes it into every
// player-mode actor. It returns the number of actors updated.
func ReloadMovement(w *ecs.World, prefab string) (int, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return 0, err
	}
	raw, ok := spec.Components["movement"]
	if !ok {
		return 0, nil
	}
	ms, err := prefabs.DecodeComponentSpec[prefabs.MovementComponentSpec](raw)
	if err != nil {
		return 0, err
	}
	movement, err := ms.Movement()
	if err != nil {
		return 0, err
	}

	n := 0
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.MovementComponent.Kind(), func(e ecs.Entity, a *component.Actor, m *component.Movement) {
		if !a.IsPlayer() {
			return
		}
		*m = movement
		n++
	})
	return n, nil
}
