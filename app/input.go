package app

import (
	"log/slog"

	"gpu-raytracer/camera"
	"gpu-raytracer/input"
)

var heldKeys = map[input.Key]camera.Direction{
	input.KeyW:     camera.Forward,
	input.KeyS:     camera.Back,
	input.KeyA:     camera.Left,
	input.KeyD:     camera.Right,
	input.KeyUp:    camera.PitchUp,
	input.KeyDown:  camera.PitchDown,
	input.KeyLeft:  camera.YawLeft,
	input.KeyRight: camera.YawRight,
}

// HandleKey applies one key event. Held controls follow press and release;
// everything else fires on the press edge only. Repeats are ignored.
func (a *App) HandleKey(k input.Key, action input.Action) {
	if action == input.Repeat {
		return
	}
	if d, ok := heldKeys[k]; ok {
		if action == input.Press {
			a.camera.Press(d)
		} else {
			a.camera.Release(d)
		}
		return
	}
	if action != input.Press {
		return
	}

	if n, ok := k.SceneNumber(); ok {
		a.logLoadError(n, a.LoadScene(n))
		return
	}
	switch k {
	case input.KeySpace:
		a.camera.Jump()
	case input.KeyF:
		a.camera.ToggleFocus()
		slog.Debug("focus mode", "on", a.camera.Focus)
	case input.KeyR:
		if err := a.Relink(); err != nil {
			slog.Error("shader reload failed; keeping current program", "err", err)
		}
	case input.KeyEscape:
		a.surface.SetShouldClose(true)
	}
}
