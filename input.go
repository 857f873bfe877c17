package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/purgatorium/obj"
)

const stickDeadzone = 0.3

// Input polls keyboard and the first standard gamepad into an obj.Intent.
type Input struct {
	gamepad ebiten.GamepadID
	hasPad  bool
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Poll() obj.Intent {
	in := obj.Intent{
		Up:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:   ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:   ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:  ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Slow:   ebiten.IsKeyPressed(ebiten.KeyShift),
		Deploy: inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Pause:  inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP),
	}

	i.hasPad = false
	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		i.gamepad = gamepads[0]
		i.hasPad = true
	}
	if !i.hasPad {
		return in
	}

	id := i.gamepad
	lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	in.Left = in.Left || lx < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
	in.Right = in.Right || lx > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
	in.Up = in.Up || ly < -stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop)
	in.Down = in.Down || ly > stickDeadzone || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
	in.Slow = in.Slow || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
	in.Deploy = in.Deploy || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	in.Pause = in.Pause || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	return in
}

// RestartPressed reports a restart request on the game over and cleared screens.
func (i *Input) RestartPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	return i.hasPad && inpututil.IsStandardGamepadButtonJustPressed(i.gamepad, ebiten.StandardGamepadButtonRightBottom)
}
