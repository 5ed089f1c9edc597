package system

import (
	"math"

	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

// SettleMonitorSystem destroys entities that have come to rest. It polls the
// body speed once per frame.
type SettleMonitorSystem struct{}

func NewSettleMonitorSystem() *SettleMonitorSystem {
	return &SettleMonitorSystem{}
}

func (s *SettleMonitorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.SettleMonitorComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, m *component.SettleMonitor, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}

		if !m.Waiting {
			vx, vy := pb.Body.Velocity()
			if math.Hypot(vx, vy) > m.Threshold {
				m.StillElapsed = 0
				return
			}
			m.StillElapsed += dt
			if m.StillElapsed < m.StillDuration {
				return
			}
			m.Waiting = true
		} else {
			m.DelayElapsed += dt
		}

		if m.DelayElapsed < m.ExtraDelay {
			return
		}

		if !DestroyUnlessExcluded(w, e, &m.Exclusions, ecs.Entity(m.Owner)) {
			ecs.Remove(w, e, component.SettleMonitorComponent.Kind())
		}
	})
}
