package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
	"github.com/milk9111/shootscroller/ecs/script"
	"github.com/milk9111/shootscroller/prefabs"
)

// ErrModeLocked is returned when a prefab asks for an actor mode the builder
// cannot assign.
var ErrModeLocked = component.ErrModeLocked

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":        addTransform,
	"tag":              addTag,
	"sprite":           addSprite,
	"render_layer":     addRenderLayer,
	"camera":           addCamera,
	"collision_layer":  addCollisionLayer,
	"physics_body":     addPhysicsBody,
	"gravity_scale":    addGravityScale,
	"actor":            addActor,
	"input":            addInput,
	"facing":           addFacing,
	"player_collision": addPlayerCollision,
	"movement":         addMovement,
	"actor_params":     addActorParams,
	"shooter":          addShooter,
	"spawn_point":      addSpawnPoint,
	"exclusions":       addExclusions,
	"effect_area":      addEffectArea,
	"destructible":     addDestructible,
	"lifetime":         addLifetime,
}

// Later entries read components added by earlier ones.
var componentBuildOrder = []string{
	"transform",
	"tag",
	"sprite",
	"render_layer",
	"camera",
	"collision_layer",
	"physics_body",
	"gravity_scale",
	"actor",
	"input",
	"facing",
	"player_collision",
	"movement",
	"actor_params",
	"shooter",
	"spawn_point",
	"exclusions",
	"effect_area",
	"destructible",
	"lifetime",
}

// BuildEntity creates an entity from a prefab. The entity is named after the
// prefab with the instance suffix.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	name := strings.TrimSpace(spec.Name)
	if name == "" {
		name = strings.TrimSuffix(prefabPath, ".yaml")
	}
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name + " " + component.InstanceSuffix}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: add name: %w", prefabPath, err)
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, n := range componentBuildOrder {
		if _, ok := remaining[n]; ok {
			names = append(names, n)
			delete(remaining, n)
		}
	}
	if len(remaining) > 0 {
		unknown := make([]string, 0, len(remaining))
		for n := range remaining {
			unknown = append(unknown, n)
		}
		sort.Strings(unknown)
		names = append(names, unknown...)
	}

	for _, n := range names {
		builder, ok := componentRegistry[n]
		if !ok {
			destroyBuilt(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, n)
		}
		if err := builder(w, e, spec.Components[n], ctx); err != nil {
			destroyBuilt(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, n, err)
		}
	}

	return e, nil
}

// destroyBuilt removes a half-built entity and any children it created.
func destroyBuilt(w *ecs.World, e ecs.Entity) {
	ecs.ForEach(w, component.ParentComponent.Kind(), func(child ecs.Entity, p *component.Parent) {
		if ecs.Entity(p.Entity) == e {
			ecs.DestroyEntity(w, child)
		}
	})
	ecs.DestroyEntity(w, e)
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type tagSpec = prefabs.TagComponentSpec

func addTag(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[tagSpec](raw)
	if err != nil {
		return fmt.Errorf("decode tag spec: %w", err)
	}
	return ecs.Add(w, e, component.TagComponent.Kind(), &component.Tag{Value: strings.TrimSpace(spec.Value)})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	sprite := component.Sprite{
		Width:   spec.Width,
		Height:  spec.Height,
		OriginX: spec.OriginX,
		OriginY: spec.OriginY,
	}
	if spec.Color != nil {
		sprite.Color = spec.Color.NRGBA()
	} else {
		sprite.Color.A = 0xff
	}
	if sprite.OriginX == 0 && sprite.OriginY == 0 && spec.CenterOrigin {
		sprite.OriginX = sprite.Width / 2
		sprite.OriginY = sprite.Height / 2
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom == 0 {
		spec.Zoom = 1
	}
	if err := ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		TargetName: spec.TargetName,
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
		OffsetX:    spec.OffsetX,
		OffsetY:    spec.OffsetY,
		ViewWidth:  spec.ViewWidth,
		ViewHeight: spec.ViewHeight,
	})
}

type collisionLayerSpec = prefabs.CollisionLayerComponentSpec

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision layer spec: %w", err)
	}
	cat, unknown := prefabs.CategoryMask(spec.Category)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown collision categories %v", unknown)
	}
	mask, unknown := prefabs.CategoryMask(spec.Mask)
	if len(unknown) > 0 {
		return fmt.Errorf("unknown collision categories %v", unknown)
	}
	if cat == 0 {
		cat = component.CategoryDefault
	}
	if mask == 0 {
		mask = ^uint32(0)
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: cat, Mask: mask})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Radius <= 0 {
		if spec.Width <= 0 {
			spec.Width = 32
		}
		if spec.Height <= 0 {
			spec.Height = 32
		}
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:        spec.Width,
		Height:       spec.Height,
		Radius:       spec.Radius,
		Mass:         spec.Mass,
		Friction:     spec.Friction,
		Elasticity:   spec.Elasticity,
		Static:       spec.Static,
		Kinematic:    spec.Kinematic,
		Trigger:      spec.Trigger,
		Continuous:   spec.Continuous,
		FixedAngle:   spec.FixedAngle,
		AlignTopLeft: spec.AlignTopLeft,
		OffsetX:      spec.OffsetX,
		OffsetY:      spec.OffsetY,
	})
}

type gravityScaleSpec = prefabs.GravityScaleComponentSpec

func addGravityScale(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravityScaleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity scale spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: spec.Scale})
}

type actorSpec = prefabs.ActorComponentSpec

func addActor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[actorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode actor spec: %w", err)
	}
	var mode component.ActorMode
	switch strings.ToLower(strings.TrimSpace(spec.Mode)) {
	case "player":
		mode = component.ModePlayer
	case "", "inert":
		mode = component.ModeInert
	case "bullet":
		// Bullet mode is only entered through ConfigureAsBullet.
		return fmt.Errorf("actor mode %q: %w", spec.Mode, ErrModeLocked)
	default:
		return fmt.Errorf("unknown actor mode %q", spec.Mode)
	}
	actor := component.NewActor(mode)
	return ecs.Add(w, e, component.ActorComponent.Kind(), &actor)
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type facingSpec = prefabs.FacingComponentSpec

func addFacing(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[facingSpec](raw)
	if err != nil {
		return fmt.Errorf("decode facing spec: %w", err)
	}
	f := component.Facing{Dir: component.Facing{Dir: spec.Dir}.Sign()}
	return ecs.Add(w, e, component.FacingComponent.Kind(), &f)
}

func addPlayerCollision(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerCollisionComponent.Kind(), &component.PlayerCollision{})
}

type movementSpec = prefabs.MovementComponentSpec

func addMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[movementSpec](raw)
	if err != nil {
		return fmt.Errorf("decode movement spec: %w", err)
	}
	m, err := spec.Movement()
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.MovementComponent.Kind(), &m)
}

type actorParamsSpec = prefabs.ActorParamsComponentSpec

func addActorParams(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[actorParamsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode actor params spec: %w", err)
	}
	b := spec.Bullet
	return ecs.Add(w, e, component.ActorParamsComponent.Kind(), &component.ActorParams{
		ShootCooldown:   spec.ShootCooldown,
		GunShowDuration: spec.GunShowDuration,
		Bullet: component.BulletTuning{
			Speed:            b.Speed,
			Lifetime:         b.Lifetime,
			MaxHits:          b.MaxHits,
			FallLifetime:     b.FallLifetime,
			FallGravityScale: b.FallGravityScale,
			RecoilEnabled:    b.RecoilEnabled,
			RecoilForce:      b.RecoilForce,
			RecoilUpBias:     b.RecoilUpBias,
			HitImpulse:       b.HitImpulse,
			StillThreshold:   b.StillThreshold,
			StillDuration:    b.StillDuration,
			DestroyDelay:     b.DestroyDelay,
		},
	})
}

type shooterSpec = prefabs.ShooterComponentSpec

func addShooter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[shooterSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shooter spec: %w", err)
	}
	return ecs.Add(w, e, component.ShooterComponent.Kind(), &component.Shooter{
		CanShoot:     true,
		BulletPrefab: strings.TrimSpace(spec.BulletPrefab),
		VisualTag:    spec.VisualTag,
	})
}

type spawnPointSpec = prefabs.SpawnPointComponentSpec

// addSpawnPoint creates the muzzle child. The child's transform is its
// offset from the shooter.
func addSpawnPoint(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spawnPointSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spawn point spec: %w", err)
	}
	shooter, ok := ecs.Get(w, e, component.ShooterComponent.Kind())
	if !ok {
		return fmt.Errorf("spawn point needs a shooter")
	}

	child := ecs.CreateEntity(w)
	if err := ecs.Add(w, child, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return err
	}
	if err := ecs.Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(e)}); err != nil {
		return err
	}
	if err := ecs.Add(w, child, component.NameComponent.Kind(), &component.Name{Value: "spawn_point"}); err != nil {
		return err
	}
	if err := ecs.Add(w, child, component.SpawnPointTagComponent.Kind(), &component.SpawnPointTag{}); err != nil {
		return err
	}
	shooter.SpawnPoint = uint64(child)
	return nil
}

type exclusionsSpec = prefabs.ExclusionsComponentSpec

func addExclusions(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[exclusionsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode exclusions spec: %w", err)
	}
	if len(spec.Names) > component.ExclusionCapacity {
		return fmt.Errorf("%d exclusions: %w", len(spec.Names), component.ErrExclusionListFull)
	}
	if err := ecs.Add(w, e, component.ExclusionListComponent.Kind(), &component.ExclusionList{}); err != nil {
		return err
	}
	names := append([]string(nil), spec.Names...)
	return ecs.Add(w, e, component.ExclusionNamesComponent.Kind(), &component.ExclusionNames{Names: names})
}

type effectAreaSpec = prefabs.EffectAreaComponentSpec

func addEffectArea(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[effectAreaSpec](raw)
	if err != nil {
		return fmt.Errorf("decode effect area spec: %w", err)
	}
	return ecs.Add(w, e, component.EffectAreaComponent.Kind(), &component.EffectArea{
		Kind:           component.ParseEffectKind(strings.TrimSpace(spec.Kind)),
		ReloadCooldown: spec.ReloadCooldown,
		MaxHits:        spec.MaxHits,
		Lifetime:       spec.Lifetime,
		FallLifetime:   spec.FallLifetime,
		Disabled:       spec.Disabled,
	})
}

type destructibleSpec = prefabs.DestructibleComponentSpec

func addDestructible(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[destructibleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode destructible spec: %w", err)
	}
	if strings.TrimSpace(spec.Script) == "" {
		return fmt.Errorf("destructible needs a script")
	}
	handler, err := script.Load(w, e, spec.Script)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.DestructibleTargetComponent.Kind(), &component.DestructibleTarget{Handler: handler})
}

type lifetimeSpec = prefabs.LifetimeComponentSpec

func addLifetime(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[lifetimeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode lifetime spec: %w", err)
	}
	if spec.Seconds <= 0 {
		return nil
	}
	return ecs.Add(w, e, component.LifetimeComponent.Kind(), &component.Lifetime{Remaining: spec.Seconds})
}
