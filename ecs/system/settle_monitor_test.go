package system

import (
	"testing"

	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

func newMonitored(t *testing.T, w *ecs.World, body *fakeBody) ecs.Entity {
	t.Helper()
	e := newTarget(t, w, "crate", "", 0, 0)
	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	pb.Static = false
	pb.Body = body
	mustAdd(t, w, e, component.SettleMonitorComponent, &component.SettleMonitor{
		Threshold:     5,
		StillDuration: 0.2,
		ExtraDelay:    0.1,
	})
	return e
}

func TestSettleMonitorDestroysRestingBodies(t *testing.T) {
	cases := []struct {
		name      string
		speeds    []float64
		wantAlive bool
	}{
		{"rests_then_waits", []float64{0, 0, 0}, false},
		{"still_window_not_finished", []float64{0, 0}, true},
		{"movement_resets_window", []float64{0, 10, 0, 0}, true},
		{"slow_counts_as_still", []float64{4.9, 4.9, 4.9}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.SetDeltaTime(0.1)
			body := &fakeBody{}
			e := newMonitored(t, w, body)
			sys := NewSettleMonitorSystem()
			for _, v := range c.speeds {
				body.vx = v
				sys.Update(w)
			}
			if got := w.IsAlive(e); got != c.wantAlive {
				t.Fatalf("alive = %v, want %v", got, c.wantAlive)
			}
		})
	}
}

func TestSettleMonitorRespectsExclusions(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(0.1)
	e := newMonitored(t, w, &fakeBody{})
	m, _ := ecs.Get(w, e, component.SettleMonitorComponent.Kind())
	m.Exclusions.Add(uint64(e))

	sys := NewSettleMonitorSystem()
	for i := 0; i < 5; i++ {
		sys.Update(w)
	}
	if !w.IsAlive(e) {
		t.Fatalf("excluded entity destroyed by its monitor")
	}
	if ecs.Has(w, e, component.SettleMonitorComponent.Kind()) {
		t.Fatalf("expected monitor removed once it gave up")
	}
}

func TestSettleMonitorWaitsForBody(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(1)
	e := newMonitored(t, w, nil)
	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	pb.Body = nil

	NewSettleMonitorSystem().Update(w)
	if !w.IsAlive(e) {
		t.Fatalf("entity without a live body should be left alone")
	}
}

func TestLifetimeSystem(t *testing.T) {
	w := ecs.NewWorld()
	player := newPlayer(t, w, 0, 0)
	bullet, _ := newBullet(t, w, player, testTuning(1))
	mustAdd(t, w, bullet, component.LifetimeComponent, &component.Lifetime{Remaining: 0.25})
	child := w.CreateEntity()
	mustAdd(t, w, child, component.ParentComponent, &component.Parent{Entity: uint64(bullet)})

	w.SetDeltaTime(0.2)
	sys := NewLifetimeSystem()
	sys.Update(w)
	if !w.IsAlive(bullet) {
		t.Fatalf("expired too early")
	}
	sys.Update(w)
	if w.IsAlive(bullet) || w.IsAlive(child) {
		t.Fatalf("expected entity and children destroyed")
	}
}
