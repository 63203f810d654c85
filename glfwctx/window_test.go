package glfwctx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rhfw/rhfw"
)

func TestNewWindow_Defaults(t *testing.T) {
	w := NewWindow(rhfw.WindowConfig{})
	cfg := w.Config()
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, "rhfw", cfg.Title)
	assert.False(t, w.IsLoaded())
	assert.Equal(t, 0, w.RefCount())
}

func TestWindow_UnloadedAccessors(t *testing.T) {
	w := NewWindow(rhfw.WindowConfig{Width: 640, Height: 480, Title: "test"})
	assert.Nil(t, w.Handle())
	assert.True(t, w.ShouldClose())
	width, height := w.FramebufferSize()
	assert.Zero(t, width)
	assert.Zero(t, height)
	_, err := w.SurfaceDescriptor()
	assert.Error(t, err)
}
