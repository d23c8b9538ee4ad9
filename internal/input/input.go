package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"shadeview/internal/controls"
)

// InputManager maps physical keys to viewer actions and tracks which are held.
// Key events arrive on the glfw callback; the frame loop reads a Snapshot.
type InputManager struct {
	mu sync.RWMutex

	// one key can map to several actions
	keyToActions map[glfw.Key][]controls.Action

	// per-action count of held keys bound to it
	held [controls.ActionCount]int
	down map[glfw.Key]bool
}

// NewInputManager creates an InputManager with the default viewer bindings.
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions: make(map[glfw.Key][]controls.Action),
		down:         make(map[glfw.Key]bool),
	}

	im.BindKey(glfw.KeyW, controls.ActionOrbitUp)
	im.BindKey(glfw.KeyS, controls.ActionOrbitDown)
	im.BindKey(glfw.KeyA, controls.ActionOrbitLeft)
	im.BindKey(glfw.KeyD, controls.ActionOrbitRight)
	im.BindKey(glfw.KeyLeft, controls.ActionLeft)
	im.BindKey(glfw.KeyRight, controls.ActionRight)
	im.BindKey(glfw.KeyUp, controls.ActionUp)
	im.BindKey(glfw.KeyDown, controls.ActionDown)
	im.BindKey(glfw.KeyR, controls.ActionReset)
	im.BindKey(glfw.KeySpace, controls.ActionCycle)
	im.BindKey(glfw.KeyLeftShift, controls.ActionModShift)
	im.BindKey(glfw.KeyRightShift, controls.ActionModShift)
	im.BindKey(glfw.KeyEscape, controls.ActionQuit)

	return im
}

// BindKey binds a physical key to a logical action. Binding a key that is
// already down holds the action until the key is released.
func (im *InputManager) BindKey(key glfw.Key, action controls.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= controls.ActionCount {
		return
	}
	im.keyToActions[key] = append(im.keyToActions[key], action)
	if im.down[key] {
		im.held[action]++
	}
}

// UnbindKey removes all action bindings for a key.
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.down[key] {
		im.release(key)
	}
	delete(im.keyToActions, key)
}

// HandleKeyEvent processes a key event. Repeats count as held.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if _, ok := im.keyToActions[key]; !ok {
		return
	}

	pressed := action == glfw.Press || action == glfw.Repeat
	switch {
	case pressed && !im.down[key]:
		im.down[key] = true
		for _, a := range im.keyToActions[key] {
			im.held[a]++
		}
	case !pressed && im.down[key]:
		im.release(key)
	}
}

func (im *InputManager) release(key glfw.Key) {
	delete(im.down, key)
	for _, a := range im.keyToActions[key] {
		if im.held[a] > 0 {
			im.held[a]--
		}
	}
}

// SetKeyCallback routes the window's key events into im.
func (im *InputManager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
}

// IsActive reports whether any key bound to action is held.
func (im *InputManager) IsActive(action controls.Action) bool {
	if action < 0 || action >= controls.ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.held[action] > 0
}

// Snapshot copies the held state of every action.
func (im *InputManager) Snapshot() controls.Snapshot {
	im.mu.RLock()
	defer im.mu.RUnlock()

	var s controls.Snapshot
	for i := range controls.ActionCount {
		s[i] = im.held[i] > 0
	}
	return s
}
