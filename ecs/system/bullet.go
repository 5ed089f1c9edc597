package system

import (
	"log"

	"github.com/milk9111/shootscroller/common"
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

// negligibleSpeed is the speed under which an incoming velocity has no usable
// direction.
const negligibleSpeed = 1e-3

// BulletSystem runs the bullet hit state machine over the contacts of the
// last physics step.
type BulletSystem struct{}

func NewBulletSystem() *BulletSystem {
	return &BulletSystem{}
}

func (s *BulletSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	// Phase at the start of the step. A bullet that converts on one contact
	// still sees the rest of the contacts from the same step, which is what
	// the last-hit latch guards.
	flying := make(map[ecs.Entity]bool)
	wasFlying := func(e ecs.Entity) bool {
		if v, ok := flying[e]; ok {
			return v
		}
		b, ok := ecs.Get(w, e, component.BulletComponent.Kind())
		v := ok && b.Phase == component.BulletFlying
		flying[e] = v
		return v
	}

	for _, c := range w.Events().Contacts() {
		if c.Kind != ecs.ContactEnter {
			continue
		}
		for _, pair := range [2][2]ecs.Entity{{c.A, c.B}, {c.B, c.A}} {
			bullet, target := pair[0], pair[1]
			if !w.IsAlive(bullet) || !wasFlying(bullet) {
				continue
			}
			vx, vy := c.VelocityOf(bullet)
			s.Hit(w, bullet, target, vx, vy)
		}
	}
}

// Hit applies one collision between a bullet and target. vx, vy is the
// bullet velocity at impact.
func (s *BulletSystem) Hit(w *ecs.World, bulletEnt, target ecs.Entity, vx, vy float64) {
	if w == nil || bulletEnt == target || !w.IsAlive(bulletEnt) || !w.IsAlive(target) {
		return
	}
	actor, ok := ecs.Get(w, bulletEnt, component.ActorComponent.Kind())
	if !ok || !actor.IsBullet() {
		return
	}
	b, ok := ecs.Get(w, bulletEnt, component.BulletComponent.Kind())
	if !ok || b.Phase == component.BulletDestroyed {
		return
	}

	owner := ecs.Entity(b.Owner)
	if ownedBy(w, target, owner) {
		return
	}
	if other, ok := ecs.Get(w, target, component.ActorComponent.Kind()); ok && (other.IsPlayer() || other.IsBullet()) {
		return
	}

	list, _ := ecs.Get(w, bulletEnt, component.ExclusionListComponent.Kind())
	excluded := IsExcluded(w, list, target, owner)

	if !b.WillBeLastHit() {
		if excluded {
			return
		}
		if DestroyTree(w, target) > 0 {
			b.HitCount++
		}
		if b.Tuning.MaxHits > 0 && b.HitCount >= b.Tuning.MaxHits {
			settle(w, bulletEnt, b)
		}
		return
	}

	if b.LastHitProcessed {
		if !excluded {
			DestroyTree(w, target)
		}
		return
	}
	b.LastHitProcessed = true

	dirX, dirY := incomingDirection(w, bulletEnt, target, vx, vy)
	if !excluded {
		if d, ok := ecs.Get(w, target, component.DestructibleTargetComponent.Kind()); ok && d.Handler != nil {
			d.Handler.OnHitByBullet(uint64(bulletEnt), vx, vy)
			d.Handler.ConvertHittingBulletToFalling(uint64(bulletEnt))
		} else {
			fling(w, target, dirX, dirY, b.Tuning, list, owner)
		}
		b.HitCount++
	}

	if !w.IsAlive(bulletEnt) {
		return
	}
	recoil(w, bulletEnt, b.Tuning, dirX, dirY)
	settle(w, bulletEnt, b)
}

// ownedBy reports whether target is the owner, below it, or on its tree.
func ownedBy(w *ecs.World, target, owner ecs.Entity) bool {
	if !owner.Valid() {
		return false
	}
	if target == owner {
		return true
	}
	if !w.IsAlive(owner) {
		return false
	}
	return isAncestor(w, owner, target) || rootOf(w, target) == rootOf(w, owner)
}

func incomingDirection(w *ecs.World, bulletEnt, target ecs.Entity, vx, vy float64) (float64, float64) {
	if x, y, ok := common.Normalize(vx, vy, negligibleSpeed); ok {
		return x, y
	}
	bx, by, okB := worldPosition(w, bulletEnt)
	tx, ty, okT := worldPosition(w, target)
	if okB && okT {
		if x, y, ok := common.Normalize(tx-bx, ty-by, negligibleSpeed); ok {
			return x, y
		}
	}
	return 0, 0
}

// fling turns target into a dynamic body, knocks it along dir and starts a
// still monitor that removes it once it comes to rest.
func fling(w *ecs.World, target ecs.Entity, dirX, dirY float64, tuning component.BulletTuning, list *component.ExclusionList, owner ecs.Entity) {
	if !Knock(w, target, dirX*tuning.HitImpulse, dirY*tuning.HitImpulse) {
		return
	}

	monitor := &component.SettleMonitor{
		Threshold:     tuning.StillThreshold,
		StillDuration: tuning.StillDuration,
		ExtraDelay:    tuning.DestroyDelay,
		Owner:         uint64(owner),
	}
	if list != nil {
		monitor.Exclusions = *list
	}
	_ = ecs.Add(w, target, component.SettleMonitorComponent.Kind(), monitor)
}

// Knock makes e a solid dynamic body under normal gravity, creating the body
// if needed, and applies the impulse (ix, iy).
func Knock(w *ecs.World, e ecs.Entity, ix, iy float64) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		pb = &component.PhysicsBody{Width: common.TileSize, Height: common.TileSize, Mass: 1}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), pb); err != nil {
			log.Printf("bullet: knock %s: %v", describe(w, e), err)
			return false
		}
	}
	if pb.Static || pb.Kinematic {
		// The physics system rebuilds the body as dynamic on its next step.
		pb.Static = false
		pb.Kinematic = false
		pb.Body = nil
	}
	pb.Trigger = false

	if gs, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
		gs.Scale = 1
	}

	if pb.Body != nil {
		pb.Body.SetDynamic(true)
		pb.Body.SetTrigger(false)
		pb.Body.SetGravityScale(1)
		pb.Body.ApplyImpulse(ix, iy)
		return true
	}
	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}
	pb.VelocityX += ix / mass
	pb.VelocityY += iy / mass
	return true
}

// recoil kicks the bullet back against its incoming direction, biased
// upwards.
func recoil(w *ecs.World, bulletEnt ecs.Entity, tuning component.BulletTuning, dirX, dirY float64) {
	if !tuning.RecoilEnabled {
		return
	}
	pb, ok := ecs.Get(w, bulletEnt, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	rx, ry, ok := common.Normalize(-dirX, -dirY-tuning.RecoilUpBias, negligibleSpeed)
	if !ok {
		rx, ry = 0, -1
	}
	pb.SetVelocity(rx*tuning.RecoilForce, ry*tuning.RecoilForce)
	if pb.Body != nil {
		pb.Body.SetDynamic(true)
	}
}

// SettleBullet moves a flying bullet into the falling phase. It reports
// false when e is not a flying bullet.
func SettleBullet(w *ecs.World, e ecs.Entity) bool {
	if w == nil {
		return false
	}
	b, ok := ecs.Get(w, e, component.BulletComponent.Kind())
	if !ok || b.Phase != component.BulletFlying {
		return false
	}
	settle(w, e, b)
	return true
}

// settle moves a flying bullet into the falling phase: gravity on, solid
// collider, destruction scheduled after the fall lifetime.
func settle(w *ecs.World, bulletEnt ecs.Entity, b *component.Bullet) {
	if b.Phase != component.BulletFlying {
		return
	}
	b.Phase = component.BulletSettling
	t := b.Tuning

	if pb, ok := ecs.Get(w, bulletEnt, component.PhysicsBodyComponent.Kind()); ok {
		pb.Trigger = false
		pb.Kinematic = false
		if pb.Body != nil {
			pb.Body.SetDynamic(true)
			pb.Body.SetGravityScale(t.FallGravityScale)
			pb.Body.SetTrigger(false)
		}
	}
	if gs, ok := ecs.Get(w, bulletEnt, component.GravityScaleComponent.Kind()); ok {
		gs.Scale = t.FallGravityScale
	} else {
		_ = ecs.Add(w, bulletEnt, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: t.FallGravityScale})
	}

	if t.FallLifetime > 0 {
		_ = ecs.Add(w, bulletEnt, component.LifetimeComponent.Kind(), &component.Lifetime{Remaining: t.FallLifetime})
	}

	monitor := &component.SettleMonitor{
		Threshold:     t.StillThreshold,
		StillDuration: t.StillDuration,
		ExtraDelay:    t.DestroyDelay,
		Owner:         b.Owner,
	}
	if list, ok := ecs.Get(w, bulletEnt, component.ExclusionListComponent.Kind()); ok {
		monitor.Exclusions = *list
	}
	_ = ecs.Add(w, bulletEnt, component.SettleMonitorComponent.Kind(), monitor)

	log.Printf("bullet: %s settling after %d hit(s)", bulletEnt, b.HitCount)
}

// BulletTimerSystem expires bullets that fly longer than their lifetime.
type BulletTimerSystem struct{}

func NewBulletTimerSystem() *BulletTimerSystem {
	return &BulletTimerSystem{}
}

func (s *BulletTimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach(w, component.BulletComponent.Kind(), func(e ecs.Entity, b *component.Bullet) {
		if b.Phase != component.BulletFlying {
			return
		}
		b.LifeTimer += dt
		if b.Tuning.Lifetime > 0 && b.LifeTimer >= b.Tuning.Lifetime {
			b.Phase = component.BulletDestroyed
			DestroyTree(w, e)
		}
	})
}
