package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceMouse
	DeviceTouch
	DeviceKeyboard
	DeviceScript
)

// Action represents a high-level intent in a trial.
type Action int

const (
	ActionNone Action = iota

	// ActionPointerDown is a left click or new touch; the intent carries the
	// device coordinates.
	ActionPointerDown

	// ActionConfirm activates the Next button.
	ActionConfirm

	ActionQuit
	ActionSnapshot
)

// Intent is the 4th-layer, high-level description of what the participant
// wants to do. X and Y are device pixels for pointer intents.
type Intent struct {
	Action Action
	X, Y   float64
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "mouse_left", "touch", "enter").
type RawInput struct {
	Device    Device
	Code      string
	X, Y      float64
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after deduplication.
// Ebiten's just-pressed queries already report each press once, so this is
// a thin copy that keeps the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
	X, Y   float64
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
		X:      raw.X,
		Y:      raw.Y,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Pointer
	"mouse_left": ActionPointerDown,
	"touch":      ActionPointerDown,
	"tap":        ActionPointerDown,

	// Next button
	"enter":        ActionConfirm,
	"numpad_enter": ActionConfirm,
	"next":         ActionConfirm,

	// Quit
	"escape": ActionQuit,
	"quit":   ActionQuit,
	"q":      ActionQuit,

	// Feedback snapshot
	"f12":      ActionSnapshot,
	"snapshot": ActionSnapshot,
}

// MapToIntent is the 3rd+4th layer: it applies the bindings to a debounced
// input and returns a high-level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	act, ok := bindings[ev.Code]
	if !ok {
		return Intent{Action: ActionNone}
	}
	in := Intent{Action: act}
	if act == ActionPointerDown {
		in.X, in.Y = ev.X, ev.Y
	}
	return in
}

// Resolve runs a raw event through every layer.
func Resolve(raw RawInput) Intent {
	return MapToIntent(NewDebouncedInput(raw))
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionPointerDown:
		return "Tap"
	case ActionConfirm:
		return "Next"
	case ActionQuit:
		return "Quit"
	case ActionSnapshot:
		return "Snapshot"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help output doesn't change between runs.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
