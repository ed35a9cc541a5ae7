package core

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"gpu-raytracer/input"
)

var keyMap = map[glfw.Key]input.Key{
	glfw.Key1:      input.Key1,
	glfw.Key2:      input.Key2,
	glfw.Key3:      input.Key3,
	glfw.KeyW:      input.KeyW,
	glfw.KeyA:      input.KeyA,
	glfw.KeyS:      input.KeyS,
	glfw.KeyD:      input.KeyD,
	glfw.KeyF:      input.KeyF,
	glfw.KeyR:      input.KeyR,
	glfw.KeySpace:  input.KeySpace,
	glfw.KeyUp:     input.KeyUp,
	glfw.KeyDown:   input.KeyDown,
	glfw.KeyLeft:   input.KeyLeft,
	glfw.KeyRight:  input.KeyRight,
	glfw.KeyEscape: input.KeyEscape,
}

// TranslateKey maps a GLFW key to the viewer's key set.
func TranslateKey(k glfw.Key) input.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return input.KeyUnknown
}

func TranslateAction(a glfw.Action) input.Action {
	switch a {
	case glfw.Press:
		return input.Press
	case glfw.Repeat:
		return input.Repeat
	default:
		return input.Release
	}
}
