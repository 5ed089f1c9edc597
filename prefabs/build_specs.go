package prefabs

import (
	"fmt"

	"github.com/milk9111/shootscroller/ecs/component"
	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is a prefab: a name plus one entry per component, keyed by
// component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Color   *YAMLColor `yaml:"color"`
	Width   float64    `yaml:"width"`
	Height  float64    `yaml:"height"`
	OriginX float64    `yaml:"origin_x"`
	OriginY float64    `yaml:"origin_y"`
	// CenterOrigin places the origin in the middle of the block.
	CenterOrigin bool `yaml:"center_origin"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type TagComponentSpec struct {
	Value string `yaml:"value"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
	OffsetX    float64 `yaml:"offset_x"`
	OffsetY    float64 `yaml:"offset_y"`
	ViewWidth  float64 `yaml:"view_width"`
	ViewHeight float64 `yaml:"view_height"`
}

type PhysicsBodyComponentSpec struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Radius       float64 `yaml:"radius"`
	Mass         float64 `yaml:"mass"`
	Friction     float64 `yaml:"friction"`
	Elasticity   float64 `yaml:"elasticity"`
	Static       bool    `yaml:"static"`
	Kinematic    bool    `yaml:"kinematic"`
	Trigger      bool    `yaml:"trigger"`
	Continuous   bool    `yaml:"continuous"`
	FixedAngle   bool    `yaml:"fixed_angle"`
	AlignTopLeft bool    `yaml:"align_top_left"`
	OffsetX      float64 `yaml:"offset_x"`
	OffsetY      float64 `yaml:"offset_y"`
}

// CollisionLayerComponentSpec takes category names from CategoryNames.
type CollisionLayerComponentSpec struct {
	Category []string `yaml:"category"`
	Mask     []string `yaml:"mask"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

type ActorComponentSpec struct {
	Mode string `yaml:"mode"`
}

type MovementComponentSpec struct {
	MoveSpeed         float64  `yaml:"move_speed"`
	JumpForce         float64  `yaml:"jump_force"`
	FallMultiplier    float64  `yaml:"fall_multiplier"`
	LowJumpMultiplier float64  `yaml:"low_jump_multiplier"`
	GroundCheckX      float64  `yaml:"ground_check_x"`
	GroundCheckY      float64  `yaml:"ground_check_y"`
	GroundCheckRadius float64  `yaml:"ground_check_radius"`
	GroundMask        []string `yaml:"ground_mask"`
}

// Movement converts the spec, filling multipliers of 1 and a ground-only
// mask when unset.
func (s MovementComponentSpec) Movement() (component.Movement, error) {
	mask, unknown := CategoryMask(s.GroundMask)
	if len(unknown) > 0 {
		return component.Movement{}, fmt.Errorf("unknown ground mask categories %v", unknown)
	}
	if mask == 0 {
		mask = component.CategoryGround
	}
	if s.FallMultiplier == 0 {
		s.FallMultiplier = 1
	}
	if s.LowJumpMultiplier == 0 {
		s.LowJumpMultiplier = 1
	}
	return component.Movement{
		MoveSpeed:         s.MoveSpeed,
		JumpForce:         s.JumpForce,
		FallMultiplier:    s.FallMultiplier,
		LowJumpMultiplier: s.LowJumpMultiplier,
		GroundCheckX:      s.GroundCheckX,
		GroundCheckY:      s.GroundCheckY,
		GroundCheckRadius: s.GroundCheckRadius,
		GroundMask:        mask,
	}, nil
}

type BulletTuningSpec struct {
	Speed            float64 `yaml:"speed"`
	Lifetime         float64 `yaml:"lifetime"`
	MaxHits          int     `yaml:"max_hits"`
	FallLifetime     float64 `yaml:"fall_lifetime"`
	FallGravityScale float64 `yaml:"fall_gravity_scale"`
	RecoilEnabled    bool    `yaml:"recoil_enabled"`
	RecoilForce      float64 `yaml:"recoil_force"`
	RecoilUpBias     float64 `yaml:"recoil_up_bias"`
	HitImpulse       float64 `yaml:"hit_impulse"`
	StillThreshold   float64 `yaml:"still_threshold"`
	StillDuration    float64 `yaml:"still_duration"`
	DestroyDelay     float64 `yaml:"destroy_delay"`
}

type ActorParamsComponentSpec struct {
	ShootCooldown   float64          `yaml:"shoot_cooldown"`
	GunShowDuration float64          `yaml:"gun_show_duration"`
	Bullet          BulletTuningSpec `yaml:"bullet"`
}

type ShooterComponentSpec struct {
	BulletPrefab string `yaml:"bullet_prefab"`
	VisualTag    string `yaml:"visual_tag"`
}

// SpawnPointComponentSpec creates a child entity at the given offset from
// its parent and wires it as the shooter's spawn point.
type SpawnPointComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type FacingComponentSpec struct {
	Dir float64 `yaml:"dir"`
}

// ExclusionsComponentSpec lists names or tags of level entities to protect.
// They are resolved once the whole level is built.
type ExclusionsComponentSpec struct {
	Names []string `yaml:"names"`
}

type EffectAreaComponentSpec struct {
	Kind           string  `yaml:"kind"`
	ReloadCooldown float64 `yaml:"reload_cooldown"`
	MaxHits        int     `yaml:"max_hits"`
	Lifetime       float64 `yaml:"lifetime"`
	FallLifetime   float64 `yaml:"fall_lifetime"`
	Disabled       bool    `yaml:"disabled"`
}

// DestructibleComponentSpec attaches a tengo script implementing the
// destructible hooks.
type DestructibleComponentSpec struct {
	Script string `yaml:"script"`
}

type LifetimeComponentSpec struct {
	Seconds float64 `yaml:"seconds"`
}

// CategoryNames maps collision category names used in prefabs and levels to
// their bits.
var CategoryNames = map[string]uint32{
	"default": component.CategoryDefault,
	"ground":  component.CategoryGround,
	"actor":   component.CategoryActor,
	"bullet":  component.CategoryBullet,
	"area":    component.CategoryArea,
	"prop":    component.CategoryProp,
	"all":     ^uint32(0),
}

// CategoryMask ORs together the named categories. Unknown names are
// reported and skipped.
func CategoryMask(names []string) (uint32, []string) {
	var mask uint32
	var unknown []string
	for _, n := range names {
		bit, ok := CategoryNames[n]
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		mask |= bit
	}
	return mask, unknown
}
