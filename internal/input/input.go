package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Action represents a logical viewport action, not a physical key
type Action int

const (
	ActionQuit Action = iota
	ActionReloadShaders
	ActionCount // Sentinel value for array sizing
)

// InputManager maps keys to actions and tracks the cursor. Every event that
// changes what is on screen calls onChange, which the viewport uses to
// request a redraw.
type InputManager struct {
	mu sync.RWMutex

	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool

	cursor   mgl32.Vec2
	onChange func()
}

// NewInputManager creates an InputManager with the default bindings:
// Escape quits, R reloads shaders.
func NewInputManager(onChange func()) *InputManager {
	im := &InputManager{
		keyToActions: make(map[glfw.Key][]Action),
		onChange:     onChange,
	}

	im.BindKey(glfw.KeyEscape, ActionQuit)
	im.BindKey(glfw.KeyR, ActionReloadShaders)

	return im
}

// BindKey binds a physical key to a logical action
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	isPressed := action == glfw.Press || action == glfw.Repeat

	im.mu.Lock()
	actions, exists := im.keyToActions[key]
	if !exists {
		im.mu.Unlock()
		return
	}
	pressedAny := false
	for _, act := range actions {
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
			pressedAny = true
		}
		im.currentState[act] = isPressed
	}
	im.mu.Unlock()

	if pressedAny && im.onChange != nil {
		im.onChange()
	}
}

// HandleCursorPos records the cursor position, already scaled to
// framebuffer pixels, and requests a redraw.
func (im *InputManager) HandleCursorPos(x, y float32) {
	im.mu.Lock()
	im.cursor = mgl32.Vec2{x, y}
	im.mu.Unlock()

	if im.onChange != nil {
		im.onChange()
	}
}

// Cursor returns the last cursor position in framebuffer pixels
func (im *InputManager) Cursor() mgl32.Vec2 {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.cursor
}

// Attach installs the key and cursor callbacks on window. Cursor positions
// are scaled by pixelRatio so they match the framebuffer.
func (im *InputManager) Attach(window *glfw.Window, pixelRatio func() float64) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		r := pixelRatio()
		im.HandleCursorPos(float32(xpos*r), float32(ypos*r))
	})
}

// PostUpdate must be called at the end of each frame to reset edge flags
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
	}
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed since the last PostUpdate
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}
