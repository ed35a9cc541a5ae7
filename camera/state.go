// Package camera holds the host-side viewer state that the raytracing
// shader reads every frame: position offset, look angles and render modes.
package camera

import (
	"github.com/chewxy/math32"

	"gpu-raytracer/math"
)

// Direction is one of the eight held controls.
type Direction int

const (
	Forward Direction = iota
	Back
	Left
	Right
	PitchUp
	PitchDown
	YawLeft
	YawRight

	directionCount
)

var directionNames = [directionCount]string{
	"forward", "back", "left", "right", "pitch-up", "pitch-down", "yaw-left", "yaw-right",
}

func (d Direction) String() string {
	if d < 0 || d >= directionCount {
		return "unknown"
	}
	return directionNames[d]
}

// Jump arc: height(phase) = jumpHeight * sin(jumpFrequency * phase).
const (
	jumpPhaseStep = 0.1
	jumpHeight    = 1.6
	jumpFrequency = 1.3
)

// Params are the per-frame increments applied while a control is held.
type Params struct {
	MoveStep float32 // world units per frame
	TurnStep float32 // radians per frame
}

func DefaultParams() Params {
	return Params{
		MoveStep: 0.2,
		TurnStep: math32.Pi / 90,
	}
}

// State is mutated by key events and by one Integrate call per frame.
type State struct {
	Position  math.Vec3
	LookUp    float32 // pitch, radians
	LookRight float32 // yaw, radians
	Focus     bool
	Scene3    bool

	params    Params
	held      [directionCount]bool
	jumping   bool
	jumpPhase float32
}

func New(params Params) *State {
	return &State{params: params}
}

func (s *State) Press(d Direction) {
	if d >= 0 && d < directionCount {
		s.held[d] = true
	}
}

func (s *State) Release(d Direction) {
	if d >= 0 && d < directionCount {
		s.held[d] = false
	}
}

func (s *State) Held(d Direction) bool {
	return d >= 0 && d < directionCount && s.held[d]
}

// Jump starts a jump arc unless one is already running.
func (s *State) Jump() {
	s.jumping = true
}

func (s *State) Jumping() bool {
	return s.jumping
}

func (s *State) ToggleFocus() {
	s.Focus = !s.Focus
}

// Integrate advances the state by one frame.
func (s *State) Integrate() {
	step := s.params.MoveStep
	if s.held[Right] {
		s.Position = s.Position.Add(math.Vec3Right.Mul(step))
	}
	if s.held[Left] {
		s.Position = s.Position.Sub(math.Vec3Right.Mul(step))
	}
	if s.held[Back] {
		s.Position = s.Position.Add(math.Vec3Front.Mul(step))
	}
	if s.held[Forward] {
		s.Position = s.Position.Sub(math.Vec3Front.Mul(step))
	}

	if s.jumping {
		s.integrateJump()
	}

	turn := s.params.TurnStep
	if s.held[YawRight] {
		s.LookRight -= turn
	}
	if s.held[YawLeft] {
		s.LookRight += turn
	}
	if s.held[PitchUp] {
		s.LookUp += turn
	}
	if s.held[PitchDown] {
		s.LookUp -= turn
	}
}

func (s *State) integrateJump() {
	s.jumpPhase += jumpPhaseStep
	y := jumpHeight * math32.Sin(jumpFrequency*s.jumpPhase)
	if y < 0 {
		y = 0
		s.jumpPhase = 0
		s.jumping = false
	}
	s.Position.Y = y
}
