package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestKeyEdgesAndRedraw(t *testing.T) {
	changes := 0
	im := NewInputManager(func() { changes++ })

	im.HandleKeyEvent(glfw.KeyR, glfw.Press)
	assert.True(t, im.JustPressed(ActionReloadShaders))
	assert.True(t, im.IsActive(ActionReloadShaders))
	assert.Equal(t, 1, changes)

	im.HandleKeyEvent(glfw.KeyR, glfw.Repeat)
	assert.Equal(t, 1, changes, "repeat of a held key is not a new press")

	im.PostUpdate()
	assert.False(t, im.JustPressed(ActionReloadShaders))
	assert.True(t, im.IsActive(ActionReloadShaders))

	im.HandleKeyEvent(glfw.KeyR, glfw.Release)
	assert.False(t, im.IsActive(ActionReloadShaders))
}

func TestUnboundKeyIgnored(t *testing.T) {
	changes := 0
	im := NewInputManager(func() { changes++ })
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	assert.Zero(t, changes)
	assert.False(t, im.JustPressed(ActionQuit))
}

func TestCursorRequestsRedraw(t *testing.T) {
	changes := 0
	im := NewInputManager(func() { changes++ })

	im.HandleCursorPos(10, 20)
	im.HandleCursorPos(30, 40)

	assert.Equal(t, 2, changes)
	assert.Equal(t, mgl32.Vec2{30, 40}, im.Cursor())
}

func TestBindKeyRejectsSentinel(t *testing.T) {
	im := NewInputManager(nil)
	im.BindKey(glfw.KeyQ, ActionCount)
	im.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	assert.False(t, im.IsActive(ActionCount))

	im.BindKey(glfw.KeyQ, ActionQuit)
	im.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	assert.True(t, im.JustPressed(ActionQuit))
}
