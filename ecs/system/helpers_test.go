package system

import (
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

// fataler is the part of *testing.T and *rapid.T the helpers need.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// fakeBody is an in-memory component.Body.
type fakeBody struct {
	x, y       float64
	vx, vy     float64
	gravity    float64
	dynamic    bool
	continuous bool
	trigger    bool
	impulses   [][2]float64
}

func (b *fakeBody) Position() (float64, float64) { return b.x, b.y }
func (b *fakeBody) Velocity() (float64, float64) { return b.vx, b.vy }
func (b *fakeBody) SetVelocity(x, y float64) { b.vx, b.vy = x, y }
func (b *fakeBody) GravityScale() float64 { return b.gravity }
func (b *fakeBody) SetGravityScale(scale float64) { b.gravity = scale }
func (b *fakeBody) Dynamic() bool { return b.dynamic }
func (b *fakeBody) SetDynamic(dynamic bool) { b.dynamic = dynamic }
func (b *fakeBody) Continuous() bool { return b.continuous }
func (b *fakeBody) SetContinuous(on bool) { b.continuous = on }
func (b *fakeBody) Trigger() bool { return b.trigger }
func (b *fakeBody) SetTrigger(trigger bool) { b.trigger = trigger }
func (b *fakeBody) ApplyImpulse(x, y float64) {
	b.impulses = append(b.impulses, [2]float64{x, y})
	b.vx += x
	b.vy += y
}

var _ component.Body = (*fakeBody)(nil)

func mustAdd[T any](t fataler, w *ecs.World, e ecs.Entity, handle component.ComponentHandle[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, handle.Kind(), v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func testTuning(maxHits int) component.BulletTuning {
	return component.BulletTuning{
		Speed:            600,
		Lifetime:         2,
		MaxHits:          maxHits,
		FallLifetime:     4,
		FallGravityScale: 1,
		RecoilEnabled:    true,
		RecoilForce:      200,
		RecoilUpBias:     0.5,
		HitImpulse:       300,
		StillThreshold:   5,
		StillDuration:    0.2,
		DestroyDelay:     0.1,
	}
}

func newPlayer(t fataler, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	actor := component.NewActor(component.ModePlayer)
	mustAdd(t, w, e, component.ActorComponent, &actor)
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.ActorParamsComponent, &component.ActorParams{
		ShootCooldown:   0.5,
		GunShowDuration: 0.1,
		Bullet:          testTuning(3),
	})
	mustAdd(t, w, e, component.NameComponent, &component.Name{Value: "player" + component.InstanceSuffix})
	return e
}

// newBullet creates a flying bullet owned by owner, with a live fake body.
func newBullet(t fataler, w *ecs.World, owner ecs.Entity, tuning component.BulletTuning) (ecs.Entity, *fakeBody) {
	t.Helper()
	e := w.CreateEntity()
	body := &fakeBody{dynamic: true}
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Body: body, Width: 8, Height: 8, Mass: 1})
	if err := ConfigureAsBullet(w, e, tuning, "bullet", owner); err != nil {
		t.Fatalf("configure bullet: %v", err)
	}
	return e, body
}

func newTarget(t fataler, w *ecs.World, name, tag string, x, y float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	mustAdd(t, w, e, component.TransformComponent, &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.NameComponent, &component.Name{Value: name})
	mustAdd(t, w, e, component.TagComponent, &component.Tag{Value: tag})
	mustAdd(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Width: 16, Height: 16, Mass: 1, Static: true})
	return e
}

func bulletOf(t fataler, w *ecs.World, e ecs.Entity) *component.Bullet {
	t.Helper()
	b, ok := ecs.Get(w, e, component.BulletComponent.Kind())
	if !ok {
		t.Fatalf("entity %s has no bullet", e)
	}
	return b
}
