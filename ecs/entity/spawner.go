package entity

import (
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/system"
)

// PrefabSpawner builds prefabs for the shoot system.
type PrefabSpawner struct{}

var _ system.Spawner = PrefabSpawner{}

func (PrefabSpawner) Spawn(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		destroyBuilt(w, e)
		return 0, err
	}
	return e, nil
}
