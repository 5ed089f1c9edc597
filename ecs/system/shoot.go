package system

import (
	"fmt"
	"log"

	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

// Spawner instantiates a prefab at a world position.
type Spawner interface {
	Spawn(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error)
}

// ShootSystem runs the shoot sequence of every player-mode actor: show the
// gun, spawn a bullet, hide the gun, cool down, reopen the gate.
type ShootSystem struct {
	spawner Spawner
}

func NewShootSystem(spawner Spawner) *ShootSystem {
	return &ShootSystem{spawner: spawner}
}

func (s *ShootSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.ActorComponent.Kind(), component.ShooterComponent.Kind(), func(e ecs.Entity, actor *component.Actor, shooter *component.Shooter) {
		if !actor.IsPlayer() {
			return
		}
		advanceShoot(shooter, dt)

		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok && input.ShootPressed {
			input.ShootPressed = false
			s.TryShoot(w, e)
		}
	})
}

func advanceShoot(shooter *component.Shooter, dt float64) {
	switch shooter.Phase {
	case component.ShootGunShown:
		shooter.Elapsed += dt
		if shooter.Elapsed >= shooter.GunShowFor {
			shooter.GunVisible = false
			shooter.Phase = component.ShootCooldown
			shooter.Elapsed = 0
		}
	case component.ShootCooldown:
		shooter.Elapsed += dt
		if shooter.Elapsed >= shooter.CooldownFor {
			shooter.Phase = component.ShootIdle
			shooter.Elapsed = 0
			shooter.CanShoot = true
		}
	}
}

// TryShoot fires one bullet from a player-mode actor when its gate is open
// and it has a prefab and a spawn point. It reports whether a bullet was
// spawned.
func (s *ShootSystem) TryShoot(w *ecs.World, e ecs.Entity) bool {
	if s == nil || w == nil {
		return false
	}
	actor, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	if !ok || !actor.IsPlayer() {
		return false
	}
	shooter, ok := ecs.Get(w, e, component.ShooterComponent.Kind())
	if !ok || !shooter.CanShoot {
		return false
	}
	params, ok := ecs.Get(w, e, component.ActorParamsComponent.Kind())
	if !ok {
		return false
	}
	if shooter.BulletPrefab == "" || s.spawner == nil {
		log.Printf("shoot: %s has no bullet prefab", describe(w, e))
		return false
	}
	x, y, ok := s.spawnPosition(w, e, shooter)
	if !ok {
		log.Printf("shoot: %s has no spawn point", describe(w, e))
		return false
	}

	dir := 1.0
	if facing, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
		dir = facing.Sign()
	}

	bullet, err := s.spawner.Spawn(w, shooter.BulletPrefab, x, y)
	if err != nil {
		log.Printf("shoot: spawn %q: %v", shooter.BulletPrefab, err)
		return false
	}
	tuning := params.Bullet
	if err := ConfigureAsBullet(w, bullet, tuning, shooter.VisualTag, e); err != nil {
		log.Printf("shoot: %v", err)
		DestroyTree(w, bullet)
		return false
	}
	if pb, ok := ecs.Get(w, bullet, component.PhysicsBodyComponent.Kind()); ok {
		pb.SetVelocity(dir*tuning.Speed, 0)
	}
	if list, ok := ecs.Get(w, e, component.ExclusionListComponent.Kind()); ok {
		copied := *list
		_ = ecs.Add(w, bullet, component.ExclusionListComponent.Kind(), &copied)
	}

	// Stop whatever sequence was running before starting this one.
	shooter.Phase = component.ShootIdle
	shooter.Elapsed = 0

	shooter.Sequence++
	shooter.CanShoot = false
	shooter.GunVisible = true
	shooter.Phase = component.ShootGunShown
	shooter.GunShowFor = params.GunShowDuration
	shooter.CooldownFor = params.ShootCooldown
	return true
}

// spawnPosition resolves the spawn point in world space, mirroring its
// offset when the spawn point hangs directly off a left-facing shooter.
func (s *ShootSystem) spawnPosition(w *ecs.World, e ecs.Entity, shooter *component.Shooter) (float64, float64, bool) {
	spawn := ecs.Entity(shooter.SpawnPoint)
	if !spawn.Valid() || !w.IsAlive(spawn) {
		return 0, 0, false
	}
	if p, ok := parentOf(w, spawn); ok && p == e {
		local, ok := ecs.Get(w, spawn, component.TransformComponent.Kind())
		if !ok {
			return 0, 0, false
		}
		ox, oy, ok := worldPosition(w, e)
		if !ok {
			return 0, 0, false
		}
		dir := 1.0
		if facing, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
			dir = facing.Sign()
		}
		return ox + dir*local.X, oy + local.Y, true
	}
	return worldPosition(w, spawn)
}

// ConfigureAsBullet turns e into a bullet fired by owner. It resets the hit
// state, switches gravity off so the bullet flies straight, and makes the
// collider a trigger. Player-mode actors are rejected.
func ConfigureAsBullet(w *ecs.World, e ecs.Entity, tuning component.BulletTuning, visualTag string, owner ecs.Entity) error {
	if w == nil || !w.IsAlive(e) {
		return fmt.Errorf("configure bullet %s: %w", e, ecs.ErrEntityNotAlive)
	}

	actor, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	if !ok {
		inert := component.NewActor(component.ModeInert)
		actor = &inert
		if err := ecs.Add(w, e, component.ActorComponent.Kind(), actor); err != nil {
			return fmt.Errorf("configure bullet %s: %w", e, err)
		}
	}
	if err := actor.BecomeBullet(); err != nil {
		return fmt.Errorf("configure bullet %s: %w", e, err)
	}

	bullet := &component.Bullet{
		Owner:     uint64(owner),
		VisualTag: visualTag,
		Tuning:    tuning,
		Phase:     component.BulletFlying,
	}
	if err := ecs.Add(w, e, component.BulletComponent.Kind(), bullet); err != nil {
		return fmt.Errorf("configure bullet %s: %w", e, err)
	}
	if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 0}); err != nil {
		return fmt.Errorf("configure bullet %s: %w", e, err)
	}
	ecs.Remove(w, e, component.LifetimeComponent.Kind())
	ecs.Remove(w, e, component.SettleMonitorComponent.Kind())

	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		pb.Static = false
		pb.Kinematic = false
		pb.Trigger = true
		pb.Continuous = true
		if pb.Body != nil {
			pb.Body.SetDynamic(true)
			pb.Body.SetGravityScale(0)
			pb.Body.SetTrigger(true)
			pb.Body.SetContinuous(true)
		}
	}
	return nil
}
