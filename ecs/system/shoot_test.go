package system

import (
	"errors"
	"testing"

	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

type fakeSpawner struct {
	spawned []ecs.Entity
	bodies  []*fakeBody
	err     error
}

func (s *fakeSpawner) Spawn(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	if s.err != nil {
		return 0, s.err
	}
	e := w.CreateEntity()
	body := &fakeBody{x: x, y: y, dynamic: true}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Radius: 3, Mass: 0.1}); err != nil {
		return 0, err
	}
	s.spawned = append(s.spawned, e)
	s.bodies = append(s.bodies, body)
	return e, nil
}

// newShooter returns a player at (100, 50) facing dir with a spawn point
// 16 right and 4 up.
func newShooter(t *testing.T, w *ecs.World, dir float64) ecs.Entity {
	t.Helper()
	e := newPlayer(t, w, 100, 50)
	mustAdd(t, w, e, component.FacingComponent, &component.Facing{Dir: dir})
	spawn := w.CreateEntity()
	mustAdd(t, w, spawn, component.TransformComponent, &component.Transform{X: 16, Y: -4, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, spawn, component.ParentComponent, &component.Parent{Entity: uint64(e)})
	mustAdd(t, w, e, component.ShooterComponent, &component.Shooter{
		CanShoot:     true,
		BulletPrefab: "bullet.yaml",
		VisualTag:    "pellet",
		SpawnPoint:   uint64(spawn),
	})
	return e
}

func TestTryShootGate(t *testing.T) {
	w := ecs.NewWorld()
	player := newShooter(t, w, 1)
	spawner := &fakeSpawner{}
	sys := NewShootSystem(spawner)

	if !sys.TryShoot(w, player) {
		t.Fatalf("first shot should fire")
	}
	if sys.TryShoot(w, player) {
		t.Fatalf("second shot in the same frame should be gated")
	}
	if len(spawner.spawned) != 1 {
		t.Fatalf("expected exactly one bullet, got %d", len(spawner.spawned))
	}

	shooter, _ := ecs.Get(w, player, component.ShooterComponent.Kind())
	if shooter.Sequence != 1 || !shooter.GunVisible || shooter.Phase != component.ShootGunShown {
		t.Fatalf("unexpected shooter state %+v", shooter)
	}

	w.SetDeltaTime(0.1)
	sys.Update(w)
	if shooter.GunVisible || shooter.Phase != component.ShootCooldown {
		t.Fatalf("expected gun hidden and cooling down, got %+v", shooter)
	}
	if sys.TryShoot(w, player) {
		t.Fatalf("shot during cooldown should be gated")
	}

	w.SetDeltaTime(0.5)
	sys.Update(w)
	if !shooter.CanShoot || shooter.Phase != component.ShootIdle {
		t.Fatalf("expected gate reopened, got %+v", shooter)
	}
	if !sys.TryShoot(w, player) {
		t.Fatalf("shot after cooldown should fire")
	}
	if len(spawner.spawned) != 2 {
		t.Fatalf("expected two bullets, got %d", len(spawner.spawned))
	}
}

func TestTryShootConfiguresBullet(t *testing.T) {
	cases := []struct {
		name   string
		dir    float64
		wantX  float64
		wantVX float64
	}{
		{"facing_right", 1, 116, 600},
		{"facing_left_mirrors_spawn", -1, 84, -600},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := newShooter(t, w, c.dir)
			crate := newTarget(t, w, "crate", "", 0, 0)
			list := &component.ExclusionList{}
			list.Add(uint64(crate))
			mustAdd(t, w, player, component.ExclusionListComponent, list)

			spawner := &fakeSpawner{}
			if !NewShootSystem(spawner).TryShoot(w, player) {
				t.Fatalf("expected shot")
			}
			bullet := spawner.spawned[0]
			body := spawner.bodies[0]

			tr, _ := ecs.Get(w, bullet, component.TransformComponent.Kind())
			if tr.X != c.wantX || tr.Y != 46 {
				t.Fatalf("spawned at (%v,%v), want (%v,46)", tr.X, tr.Y, c.wantX)
			}
			if body.vx != c.wantVX || body.vy != 0 {
				t.Fatalf("bullet velocity (%v,%v), want (%v,0)", body.vx, body.vy, c.wantVX)
			}
			b := bulletOf(t, w, bullet)
			if ecs.Entity(b.Owner) != player || b.VisualTag != "pellet" || b.Tuning.MaxHits != 3 {
				t.Fatalf("unexpected bullet %+v", b)
			}
			copied, ok := ecs.Get(w, bullet, component.ExclusionListComponent.Kind())
			if !ok || !copied.Contains(uint64(crate)) {
				t.Fatalf("expected exclusion list copied to bullet")
			}
			copied.Clear(0)
			if !list.Contains(uint64(crate)) {
				t.Fatalf("bullet list should be a copy of the shooter's")
			}
		})
	}
}

func TestTryShootRefusals(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(w *ecs.World, player ecs.Entity)
		spawner *fakeSpawner
	}{
		{
			name: "no_prefab",
			mutate: func(w *ecs.World, player ecs.Entity) {
				s, _ := ecs.Get(w, player, component.ShooterComponent.Kind())
				s.BulletPrefab = ""
			},
			spawner: &fakeSpawner{},
		},
		{
			name: "dead_spawn_point",
			mutate: func(w *ecs.World, player ecs.Entity) {
				s, _ := ecs.Get(w, player, component.ShooterComponent.Kind())
				w.DestroyEntity(ecs.Entity(s.SpawnPoint))
			},
			spawner: &fakeSpawner{},
		},
		{
			name:    "spawn_fails",
			mutate:  func(w *ecs.World, player ecs.Entity) {},
			spawner: &fakeSpawner{err: errors.New("no such prefab")},
		},
		{
			name: "not_a_player",
			mutate: func(w *ecs.World, player ecs.Entity) {
				inert := component.NewActor(component.ModeInert)
				_ = ecs.Add(w, player, component.ActorComponent.Kind(), &inert)
			},
			spawner: &fakeSpawner{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := newShooter(t, w, 1)
			c.mutate(w, player)

			if NewShootSystem(c.spawner).TryShoot(w, player) {
				t.Fatalf("expected shot refused")
			}
			s, _ := ecs.Get(w, player, component.ShooterComponent.Kind())
			if s.Sequence != 0 {
				t.Fatalf("refused shot started a sequence")
			}
			if len(c.spawner.spawned) != 0 {
				t.Fatalf("refused shot spawned a bullet")
			}
		})
	}
}

func TestShootSystemConsumesPress(t *testing.T) {
	w := ecs.NewWorld()
	player := newShooter(t, w, 1)
	mustAdd(t, w, player, component.InputComponent, &component.Input{ShootPressed: true})
	spawner := &fakeSpawner{}
	sys := NewShootSystem(spawner)

	w.SetDeltaTime(1.0 / 60.0)
	sys.Update(w)
	sys.Update(w)

	in, _ := ecs.Get(w, player, component.InputComponent.Kind())
	if in.ShootPressed {
		t.Fatalf("expected press consumed")
	}
	if len(spawner.spawned) != 1 {
		t.Fatalf("expected one bullet per press, got %d", len(spawner.spawned))
	}
}

func TestAreaOverrideReachesNextBulletOnly(t *testing.T) {
	w := ecs.NewWorld()
	player := newShooter(t, w, 1)
	zone := w.CreateEntity()
	mustAdd(t, w, zone, component.EffectAreaComponent, &component.EffectArea{Kind: component.EffectMaxHitsOverride, MaxHits: 1})

	spawner := &fakeSpawner{}
	shoot := NewShootSystem(spawner)
	areas := NewEffectAreaSystem()

	w.Events().PushContact(ecs.ContactEvent{Kind: ecs.ContactEnter, A: zone, B: player, Trigger: true})
	areas.Update(w)
	w.Events().Drain()

	if !shoot.TryShoot(w, player) {
		t.Fatalf("expected shot")
	}
	inside := bulletOf(t, w, spawner.spawned[0])
	if inside.Tuning.MaxHits != 1 {
		t.Fatalf("bullet fired inside the area has max hits %d, want 1", inside.Tuning.MaxHits)
	}

	w.Events().PushContact(ecs.ContactEvent{Kind: ecs.ContactExit, A: player, B: zone, Trigger: true})
	areas.Update(w)

	params, _ := ecs.Get(w, player, component.ActorParamsComponent.Kind())
	if params.Bullet.MaxHits != 3 {
		t.Fatalf("expected max hits restored to 3, got %d", params.Bullet.MaxHits)
	}
	if inside.Tuning.MaxHits != 1 {
		t.Fatalf("bullet in flight picked up the restore")
	}
}
