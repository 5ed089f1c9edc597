package system

import (
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

// LifetimeSystem counts Lifetime components down and destroys entities when
// they run out.
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.LifetimeComponent.Kind(), func(e ecs.Entity, lt *component.Lifetime) {
		lt.Remaining -= dt
		if lt.Remaining > 0 {
			return
		}

		if b, ok := ecs.Get(w, e, component.BulletComponent.Kind()); ok {
			b.Phase = component.BulletDestroyed
		}
		DestroyTree(w, e)
	})
}
