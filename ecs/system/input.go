package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/shootscroller/ecs"
	"github.com/milk9111/shootscroller/ecs/component"
	"github.com/milk9111/shootscroller/settings"
)

// InputSource answers held/pressed queries per logical action.
type InputSource interface {
	MoveAxis() float64
	JumpHeld() bool
	JumpPressed() bool
	ShootHeld() bool
	ShootPressed() bool
}

// InputSystem copies the current input into every Input component. Pressed
// edges are latched until a consumer clears them, so a press seen on a
// frame tick is not lost before the next physics tick.
type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.source == nil || w == nil {
		return
	}

	moveX := i.source.MoveAxis()
	jump := i.source.JumpHeld()
	jumpPressed := i.source.JumpPressed()
	shoot := i.source.ShootHeld()
	shootPressed := i.source.ShootPressed()

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.Jump = jump
		input.Shoot = shoot
		if jumpPressed {
			input.JumpPressed = true
		}
		if shootPressed {
			input.ShootPressed = true
		}
	})
}

// EbitenInput reads keyboard and the first gamepad.
type EbitenInput struct {
	Bindings settings.Bindings
}

func NewEbitenInput(b settings.Bindings) *EbitenInput {
	return &EbitenInput{Bindings: b}
}

func (in *EbitenInput) gamepad() (ebiten.GamepadID, bool) {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return 0, false
	}
	if !ebiten.IsStandardGamepadLayoutAvailable(ids[0]) {
		return 0, false
	}
	return ids[0], true
}

func (in *EbitenInput) MoveAxis() float64 {
	moveX := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}
	if id, ok := in.gamepad(); ok {
		if v := axisDirection(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxis(in.Bindings.MoveAxis))); v != 0 {
			moveX = v
		}
	}
	return moveX
}

// AxisDeadzone is the stick deflection below which the axis reads as centred.
const AxisDeadzone = 0.5

// axisDirection snaps a raw stick value to -1, 0 or 1.
func axisDirection(v float64) float64 {
	if math.Abs(v) < AxisDeadzone {
		return 0
	}
	return math.Copysign(1, v)
}

func (in *EbitenInput) JumpHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW) || in.buttonHeld(in.Bindings.JumpButton)
}

func (in *EbitenInput) JumpPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) || in.buttonPressed(in.Bindings.JumpButton)
}

func (in *EbitenInput) ShootHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyJ) || ebiten.IsKeyPressed(ebiten.KeyK) || in.buttonHeld(in.Bindings.ShootButton)
}

func (in *EbitenInput) ShootPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsKeyJustPressed(ebiten.KeyK) || in.buttonPressed(in.Bindings.ShootButton)
}

// PausePressed is read by the game loop, not by the ECS.
func (in *EbitenInput) PausePressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || in.buttonPressed(in.Bindings.PauseButton)
}

func (in *EbitenInput) buttonHeld(b int) bool {
	id, ok := in.gamepad()
	return ok && ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButton(b))
}

func (in *EbitenInput) buttonPressed(b int) bool {
	id, ok := in.gamepad()
	return ok && inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButton(b))
}
