// Package input turns SDL2 events into per-frame input state.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies processed events.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input tracks held keys and left-button mouse drags across frames.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool

	dragging     bool
	lastX, lastY int
	dragX, dragY int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events. Returns true if the window was asked to close.
func (i *Input) Update() bool {
	i.beginFrame()
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.handle(event) {
			quit = true
		}
	}
	return quit
}

func (i *Input) beginFrame() {
	i.events = i.events[:0]
	i.dragX, i.dragY = 0, 0
}

// handle applies one SDL event and reports whether it was a quit request.
func (i *Input) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		code := e.Keysym.Scancode
		if e.Type == sdl.KEYDOWN {
			if e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: code})
			}
			i.held[code] = true
		} else if e.Type == sdl.KEYUP {
			i.events = append(i.events, Event{Type: EventKeyUp, Key: code})
			delete(i.held, code)
		}

	case *sdl.MouseMotionEvent:
		x, y := int(e.X), int(e.Y)
		if i.dragging {
			i.dragX += x - i.lastX
			i.dragY += y - i.lastY
		}
		i.lastX, i.lastY = x, y
		i.events = append(i.events, Event{Type: EventMouseMove, MouseX: x, MouseY: y})

	case *sdl.MouseButtonEvent:
		x, y := int(e.X), int(e.Y)
		if e.Type == sdl.MOUSEBUTTONDOWN {
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = true
				i.lastX, i.lastY = x, y
			}
			i.events = append(i.events, Event{Type: EventMouseDown, MouseX: x, MouseY: y, Button: e.Button})
		} else if e.Type == sdl.MOUSEBUTTONUP {
			if e.Button == sdl.BUTTON_LEFT {
				i.dragging = false
			}
			i.events = append(i.events, Event{Type: EventMouseUp, MouseX: x, MouseY: y, Button: e.Button})
		}
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether scancode went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether scancode is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// Drag returns the mouse motion accumulated this frame while the left
// button was held.
func (i *Input) Drag() (dx, dy int) {
	return i.dragX, i.dragY
}
