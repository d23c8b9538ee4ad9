package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"shadeview/internal/controls"
)

func TestDefaultBindings(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeySpace, glfw.Press)
	im.HandleKeyEvent(glfw.KeyLeftShift, glfw.Press)

	s := im.Snapshot()
	assert.True(t, s.Held(controls.ActionCycle))
	assert.True(t, s.Held(controls.ActionModShift))
	assert.False(t, s.Held(controls.ActionQuit))
}

func TestRepeatKeepsKeyHeld(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	im.HandleKeyEvent(glfw.KeyW, glfw.Repeat)
	assert.True(t, im.IsActive(controls.ActionOrbitUp))

	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	assert.False(t, im.IsActive(controls.ActionOrbitUp))
}

func TestTwoKeysSameAction(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyLeftShift, glfw.Press)
	im.HandleKeyEvent(glfw.KeyRightShift, glfw.Press)
	im.HandleKeyEvent(glfw.KeyLeftShift, glfw.Release)

	assert.True(t, im.IsActive(controls.ActionModShift), "right shift still down")

	im.HandleKeyEvent(glfw.KeyRightShift, glfw.Release)
	assert.False(t, im.IsActive(controls.ActionModShift))
}

func TestUnboundKeyIgnored(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyF12, glfw.Press)
	assert.Equal(t, controls.Snapshot{}, im.Snapshot())
}

func TestUnbindReleasesHeldKey(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyR, glfw.Press)
	im.UnbindKey(glfw.KeyR)

	assert.False(t, im.IsActive(controls.ActionReset))
	im.HandleKeyEvent(glfw.KeyR, glfw.Press)
	assert.False(t, im.IsActive(controls.ActionReset))
}

func TestSnapshotFeedsEdgeDetector(t *testing.T) {
	im := NewInputManager()
	var d controls.EdgeDetector

	im.HandleKeyEvent(glfw.KeySpace, glfw.Press)
	assert.True(t, d.Next(im.Snapshot()).Pressed(controls.ActionCycle))
	assert.False(t, d.Next(im.Snapshot()).Pressed(controls.ActionCycle))
}

func TestBindHeldKey(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyRightShift, glfw.Press)
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)

	// W now also acts as shift while right shift stays down
	im.BindKey(glfw.KeyW, controls.ActionModShift)
	assert.True(t, im.IsActive(controls.ActionModShift))

	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	assert.True(t, im.IsActive(controls.ActionModShift), "right shift keeps its own hold")
	assert.False(t, im.IsActive(controls.ActionOrbitUp))

	im.HandleKeyEvent(glfw.KeyRightShift, glfw.Release)
	assert.False(t, im.IsActive(controls.ActionModShift))
}
