// Package script runs tengo destructible scripts. A script defines
//
//	on_hit := func(engine, bullet, vx, vy) { ... }
//	convert_bullet := func(engine, bullet) { ... }
//
// and drives the world through the engine map.
package script

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
	"github.com/milk9111/shootscroller/ecs/system"
	"github.com/milk9111/shootscroller/prefabs"
)

const destructibleDispatchScript = `
if __phase == "hit" {
	on_hit(__engine, __bullet, __vx, __vy)
} else if __phase == "convert" {
	convert_bullet(__engine, __bullet)
}
`

// Destructible is a component.Destructible backed by a compiled script.
type Destructible struct {
	world      *ecs.World
	self       ecs.Entity
	scriptPath string
	compiled   *tengo.Compiled
	engine     *tengo.ImmutableMap
}

var _ component.Destructible = (*Destructible)(nil)

// Load compiles the named script from the prefabs tree for entity self.
func Load(w *ecs.World, self ecs.Entity, scriptPath string) (*Destructible, error) {
	src, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return nil, err
	}
	return Compile(w, self, scriptPath, src)
}

// Compile builds a Destructible from script source. name is used in logs.
func Compile(w *ecs.World, self ecs.Entity, name string, src []byte) (*Destructible, error) {
	full := string(src) + "\n" + destructibleDispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__bullet", 0)
	_ = s.Add("__vx", 0.0)
	_ = s.Add("__vy", 0.0)

	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}

	d := &Destructible{
		world:      w,
		self:       self,
		scriptPath: name,
		compiled:   compiled,
	}
	d.engine = d.buildEngine()
	return d, nil
}

func (d *Destructible) OnHitByBullet(bullet uint64, velocityX, velocityY float64) {
	if err := d.run("hit", bullet, velocityX, velocityY); err != nil {
		log.Printf("script: entity=%d %s on_hit error: %v", d.self, d.scriptPath, err)
	}
}

func (d *Destructible) ConvertHittingBulletToFalling(bullet uint64) {
	if err := d.run("convert", bullet, 0, 0); err != nil {
		log.Printf("script: entity=%d %s convert_bullet error: %v", d.self, d.scriptPath, err)
	}
}

func (d *Destructible) run(phase string, bullet uint64, vx, vy float64) error {
	if d == nil || d.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := d.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := d.compiled.Set("__engine", d.engine); err != nil {
		return err
	}
	if err := d.compiled.Set("__bullet", int64(bullet)); err != nil {
		return err
	}
	if err := d.compiled.Set("__vx", vx); err != nil {
		return err
	}
	if err := d.compiled.Set("__vy", vy); err != nil {
		return err
	}
	return d.compiled.Run()
}

func (d *Destructible) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["self"] = &tengo.UserFunction{Name: "self", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(d.self)}, nil
	}}

	values["impulse"] = &tengo.UserFunction{Name: "impulse", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, _ := objectAsFloat(args[0])
		y, _ := objectAsFloat(args[1])
		return boolObject(system.Knock(d.world, d.self, x, y)), nil
	}}

	values["set_gravity"] = &tengo.UserFunction{Name: "set_gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		scale, ok := objectAsFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolObject(setGravity(d.world, d.self, scale)), nil
	}}

	values["schedule_destroy"] = &tengo.UserFunction{Name: "schedule_destroy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		secs, ok := objectAsFloat(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolObject(setLifetime(d.world, d.self, secs)), nil
	}}

	values["bullet_gravity"] = &tengo.UserFunction{Name: "bullet_gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		bullet, ok := objectAsEntity(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		scale, ok := objectAsFloat(args[1])
		if !ok {
			return tengo.FalseValue, nil
		}
		system.SettleBullet(d.world, bullet)
		return boolObject(setGravity(d.world, bullet, scale)), nil
	}}

	values["bullet_lifetime"] = &tengo.UserFunction{Name: "bullet_lifetime", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		bullet, ok := objectAsEntity(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		secs, ok := objectAsFloat(args[1])
		if !ok {
			return tengo.FalseValue, nil
		}
		system.SettleBullet(d.world, bullet)
		return boolObject(setLifetime(d.world, bullet, secs)), nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("script: entity=%d %s", d.self, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func setGravity(w *ecs.World, e ecs.Entity, scale float64) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	if gs, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
		gs.Scale = scale
	} else if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: scale}); err != nil {
		return false
	}
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		pb.Body.SetGravityScale(scale)
	}
	return true
}

func setLifetime(w *ecs.World, e ecs.Entity, secs float64) bool {
	if w == nil || !w.IsAlive(e) || secs <= 0 {
		return false
	}
	return ecs.Add(w, e, component.LifetimeComponent.Kind(), &component.Lifetime{Remaining: secs}) == nil
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func objectAsEntity(obj tengo.Object) (ecs.Entity, bool) {
	v, ok := obj.(*tengo.Int)
	if !ok || v.Value <= 0 {
		return 0, false
	}
	return ecs.Entity(v.Value), true
}
