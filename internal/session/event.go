package session

// Button identifies the input that produced an event.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
	KeyEscape
)

// Action is what happened to the button.
type Action int

const (
	Move Action = iota
	Press
	Release
)

// PointerEvent is a host input event in region pixel coordinates.
type PointerEvent struct {
	X, Y   float64
	Button Button
	Action Action
}
