package script

import (
	"testing"

	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
	"github.com/milk9111/shootscroller/ecs/system"
)

func newFlyingBullet(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	b := ecs.CreateEntity(w)
	if err := ecs.Add(w, b, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 4, Mass: 1}); err != nil {
		t.Fatalf("add body: %v", err)
	}
	tuning := component.BulletTuning{MaxHits: 1, FallLifetime: 4, FallGravityScale: 1}
	if err := system.ConfigureAsBullet(w, b, tuning, "", 0); err != nil {
		t.Fatalf("configure bullet: %v", err)
	}
	return b
}

func TestDestructibleHooks(t *testing.T) {
	src := []byte(`
on_hit := func(engine, bullet, vx, vy) {
	engine.impulse(vx, -100)
	engine.set_gravity(2)
	engine.schedule_destroy(0.5)
}

convert_bullet := func(engine, bullet) {
	engine.bullet_gravity(bullet, 3)
	engine.bullet_lifetime(bullet, 1.5)
}
`)

	w := ecs.NewWorld()
	target := ecs.CreateEntity(w)
	if err := ecs.Add(w, target, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 32, Height: 32, Mass: 1, Static: true}); err != nil {
		t.Fatalf("add body: %v", err)
	}
	bullet := newFlyingBullet(t, w)

	d, err := Compile(w, target, "test", src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	d.OnHitByBullet(uint64(bullet), 50, 0)

	pb, _ := ecs.Get(w, target, component.PhysicsBodyComponent.Kind())
	if pb.Static {
		t.Fatalf("expected target to become dynamic")
	}
	if pb.VelocityX != 50 || pb.VelocityY != -100 {
		t.Fatalf("expected seed velocity (50,-100), got (%v,%v)", pb.VelocityX, pb.VelocityY)
	}
	if gs, ok := ecs.Get(w, target, component.GravityScaleComponent.Kind()); !ok || gs.Scale != 2 {
		t.Fatalf("expected target gravity 2, got %+v", gs)
	}
	if lt, ok := ecs.Get(w, target, component.LifetimeComponent.Kind()); !ok || lt.Remaining != 0.5 {
		t.Fatalf("expected target lifetime 0.5, got %+v", lt)
	}

	d.ConvertHittingBulletToFalling(uint64(bullet))

	b, _ := ecs.Get(w, bullet, component.BulletComponent.Kind())
	if b.Phase != component.BulletSettling {
		t.Fatalf("expected bullet settling, got %v", b.Phase)
	}
	if gs, ok := ecs.Get(w, bullet, component.GravityScaleComponent.Kind()); !ok || gs.Scale != 3 {
		t.Fatalf("expected bullet gravity 3, got %+v", gs)
	}
	if lt, ok := ecs.Get(w, bullet, component.LifetimeComponent.Kind()); !ok || lt.Remaining != 1.5 {
		t.Fatalf("expected bullet lifetime 1.5, got %+v", lt)
	}
}

func TestCompileRejectsMissingHooks(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty", ``},
		{"only_on_hit", `on_hit := func(engine, bullet, vx, vy) {}`},
		{"syntax", `on_hit := func(`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Compile(ecs.NewWorld(), 0, c.name, []byte(c.src)); err == nil {
				t.Fatalf("expected compile error")
			}
		})
	}
}

func TestLoadEmbeddedBarrel(t *testing.T) {
	w := ecs.NewWorld()
	target := ecs.CreateEntity(w)
	d, err := Load(w, target, "barrel.tengo")
	if err != nil {
		t.Fatalf("load barrel: %v", err)
	}
	bullet := newFlyingBullet(t, w)
	d.OnHitByBullet(uint64(bullet), 300, 0)
	d.ConvertHittingBulletToFalling(uint64(bullet))

	if _, ok := ecs.Get(w, target, component.LifetimeComponent.Kind()); !ok {
		t.Fatalf("expected barrel to schedule its own destruction")
	}
	b, _ := ecs.Get(w, bullet, component.BulletComponent.Kind())
	if b.Phase != component.BulletSettling {
		t.Fatalf("expected bullet settling, got %v", b.Phase)
	}
}
