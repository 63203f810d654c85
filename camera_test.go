package rhfw

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraInfo_AspectRatio(t *testing.T) {
	c := CameraInfo{Resolution: mgl32.Vec2{1920, 1080}}
	assert.InDelta(t, 16.0/9.0, c.AspectRatio(), 1e-6)

	assert.Equal(t, float32(1), CameraInfo{}.AspectRatio())
}

func TestCameraInfo_Projection(t *testing.T) {
	c := CameraInfo{Resolution: mgl32.Vec2{800, 600}, FieldOfView: mgl32.DegToRad(60)}
	want := mgl32.Perspective(mgl32.DegToRad(60), 800.0/600.0, 0.1, 100)
	assert.True(t, want.ApproxEqual(c.Projection(0.1, 100)))
}

func TestCameraInfo_Upright(t *testing.T) {
	c := CameraInfo{SensorOrientation: 90}
	// a sensor mounted 90 degrees clockwise is rotated back counter-clockwise
	v := c.Upright().Mul3x1(mgl32.Vec3{1, 0, 1})
	assert.InDelta(t, 0, v.X(), 1e-6)
	assert.InDelta(t, -1, v.Y(), 1e-6)

	assert.True(t, mgl32.Ident3().ApproxEqual(CameraInfo{}.Upright()))
}
