package system

import (
	"math"

	"github.com/milk9111/shootscroller/common"
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
)

// facingDeadzone is the smallest input magnitude that turns the player.
const facingDeadzone = 0.01

// GroundQuery is the overlap test used for the grounded check.
type GroundQuery interface {
	Overlaps(x, y, radius float64, mask uint32) bool
}

// PlayerControllerSystem applies run, jump and jump shaping to player-mode
// actors once per physics tick.
type PlayerControllerSystem struct {
	ground  GroundQuery
	gravity float64
}

func NewPlayerControllerSystem(ground GroundQuery, gravity float64) *PlayerControllerSystem {
	if gravity <= 0 {
		gravity = common.Gravity
	}
	return &PlayerControllerSystem{ground: ground, gravity: gravity}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach4(w,
		component.ActorComponent.Kind(),
		component.InputComponent.Kind(),
		component.MovementComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, actor *component.Actor, input *component.Input, move *component.Movement, bodyComp *component.PhysicsBody) {
			if !actor.IsPlayer() || bodyComp.Body == nil {
				return
			}

			grounded := p.grounded(bodyComp.Body, move)
			if pc, ok := ecs.Get(w, e, component.PlayerCollisionComponent.Kind()); ok {
				pc.Grounded = grounded
			}

			if facing, ok := ecs.Get(w, e, component.FacingComponent.Kind()); ok {
				if input.MoveX >= facingDeadzone {
					facing.Dir = 1
				} else if input.MoveX <= -facingDeadzone {
					facing.Dir = -1
				}
			}

			_, vy := bodyComp.Body.Velocity()
			vx := input.MoveX * move.MoveSpeed

			if input.JumpPressed {
				input.JumpPressed = false
				if grounded {
					vy = -move.JumpForce
				}
			}

			// +Y is down: falling is positive vy, rising negative.
			if vy > 0 {
				vy += p.gravity * (move.FallMultiplier - 1) * dt
			} else if vy < 0 && !input.Jump {
				vy += p.gravity * (move.LowJumpMultiplier - 1) * dt
			}

			bodyComp.SetVelocity(vx, vy)
		})
}

func (p *PlayerControllerSystem) grounded(body component.Body, move *component.Movement) bool {
	if p.ground == nil {
		return false
	}
	x, y := body.Position()
	radius := math.Max(move.GroundCheckRadius, 0.1)
	mask := move.GroundMask
	if mask == 0 {
		mask = component.CategoryGround
	}
	return p.ground.Overlaps(x+move.GroundCheckX, y+move.GroundCheckY, radius, mask)
}
