package system

import (
	"math"
	"testing"

	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

type fakeGround struct {
	grounded bool
	calls    []groundCall
}

type groundCall struct {
	x, y, radius float64
	mask         uint32
}

func (g *fakeGround) Overlaps(x, y, radius float64, mask uint32) bool {
	g.calls = append(g.calls, groundCall{x, y, radius, mask})
	return g.grounded
}

func newControlledPlayer(t *testing.T, w *ecs.World, body *fakeBody) ecs.Entity {
	t.Helper()
	e := newPlayer(t, w, 0, 0)
	mustAdd(t, w, e, component.InputComponent, &component.Input{})
	mustAdd(t, w, e, component.FacingComponent, &component.Facing{Dir: 1})
	mustAdd(t, w, e, component.PlayerCollisionComponent, &component.PlayerCollision{})
	mustAdd(t, w, e, component.MovementComponent, &component.Movement{
		MoveSpeed:         200,
		JumpForce:         600,
		FallMultiplier:    2.5,
		LowJumpMultiplier: 2,
		GroundCheckY:      18,
		GroundCheckRadius: 4,
	})
	mustAdd(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Body: body, Width: 20, Height: 36, Mass: 1})
	return e
}

func TestPlayerControllerVelocity(t *testing.T) {
	const (
		gravity = 1000.0
		dt      = 0.1
	)
	cases := []struct {
		name      string
		grounded  bool
		input     component.Input
		startVY   float64
		wantVX    float64
		wantVY    float64
		wantFace  float64
		wantPress bool
	}{
		{"run_right", true, component.Input{MoveX: 1}, 0, 200, 0, 1, false},
		{"run_left_turns", true, component.Input{MoveX: -0.5}, 0, -100, 0, -1, false},
		{"deadzone_keeps_facing", true, component.Input{MoveX: 0.005}, 0, 1, 0, 1, false},
		{"jump_when_grounded", true, component.Input{Jump: true, JumpPressed: true}, 0, 0, -600, 1, false},
		{"no_jump_in_air", false, component.Input{Jump: true, JumpPressed: true}, 0, 0, 0, 1, false},
		{"fall_multiplier", false, component.Input{}, 100, 0, 100 + gravity*1.5*dt, 1, false},
		{"low_jump_when_released", false, component.Input{}, -300, 0, -300 + gravity*1*dt, 1, false},
		{"held_jump_keeps_rise", false, component.Input{Jump: true}, -300, 0, -300, 1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.SetDeltaTime(dt)
			body := &fakeBody{vy: c.startVY}
			e := newControlledPlayer(t, w, body)
			in, _ := ecs.Get(w, e, component.InputComponent.Kind())
			*in = c.input

			ground := &fakeGround{grounded: c.grounded}
			NewPlayerControllerSystem(ground, gravity).Update(w)

			if math.Abs(body.vx-c.wantVX) > 1e-9 || math.Abs(body.vy-c.wantVY) > 1e-9 {
				t.Fatalf("velocity = (%v,%v), want (%v,%v)", body.vx, body.vy, c.wantVX, c.wantVY)
			}
			facing, _ := ecs.Get(w, e, component.FacingComponent.Kind())
			if facing.Dir != c.wantFace {
				t.Fatalf("facing = %v, want %v", facing.Dir, c.wantFace)
			}
			if in.JumpPressed != c.wantPress {
				t.Fatalf("jump latch = %v, want %v", in.JumpPressed, c.wantPress)
			}
			pc, _ := ecs.Get(w, e, component.PlayerCollisionComponent.Kind())
			if pc.Grounded != c.grounded {
				t.Fatalf("grounded = %v, want %v", pc.Grounded, c.grounded)
			}
		})
	}
}

func TestPlayerControllerGroundProbe(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(1.0 / 60.0)
	body := &fakeBody{x: 40, y: 60}
	newControlledPlayer(t, w, body)

	ground := &fakeGround{}
	NewPlayerControllerSystem(ground, 0).Update(w)

	if len(ground.calls) != 1 {
		t.Fatalf("expected one ground query, got %d", len(ground.calls))
	}
	got := ground.calls[0]
	want := groundCall{x: 40, y: 78, radius: 4, mask: component.CategoryGround}
	if got != want {
		t.Fatalf("ground query = %+v, want %+v", got, want)
	}
}

func TestPlayerControllerSkipsNonPlayers(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDeltaTime(0.1)
	body := &fakeBody{vx: 7, vy: 3}
	e := w.CreateEntity()
	inert := component.NewActor(component.ModeInert)
	mustAdd(t, w, e, component.ActorComponent, &inert)
	mustAdd(t, w, e, component.InputComponent, &component.Input{MoveX: 1, JumpPressed: true})
	mustAdd(t, w, e, component.MovementComponent, &component.Movement{MoveSpeed: 100, JumpForce: 100})
	mustAdd(t, w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Body: body})

	NewPlayerControllerSystem(&fakeGround{grounded: true}, 1000).Update(w)

	if body.vx != 7 || body.vy != 3 {
		t.Fatalf("inert actor moved to (%v,%v)", body.vx, body.vy)
	}
}
