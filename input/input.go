// Package input names the keys and actions the viewer reacts to, independent
// of the windowing backend.
package input

type Key int

const (
	KeyUnknown Key = iota
	Key1
	Key2
	Key3
	KeyW
	KeyA
	KeyS
	KeyD
	KeyF
	KeyR
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

var keyNames = map[Key]string{
	Key1: "1", Key2: "2", Key3: "3",
	KeyW: "W", KeyA: "A", KeyS: "S", KeyD: "D", KeyF: "F", KeyR: "R",
	KeySpace: "Space", KeyUp: "Up", KeyDown: "Down", KeyLeft: "Left", KeyRight: "Right",
	KeyEscape: "Esc",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "unknown"
}

// SceneNumber returns n for the key that loads scene n.
func (k Key) SceneNumber() (int, bool) {
	switch k {
	case Key1:
		return 1, true
	case Key2:
		return 2, true
	case Key3:
		return 3, true
	}
	return 0, false
}

type Action int

const (
	Release Action = iota
	Press
	Repeat
)
