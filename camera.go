package rhfw

import "github.com/go-gl/mathgl/mgl32"

type CameraFacing int

const (
	CameraFacingUnknown CameraFacing = iota
	CameraFacingFront
	CameraFacingBack
	CameraFacingExternal
)

// CameraInfo describes a camera the platform exposes.
type CameraInfo struct {
	ID     string
	Facing CameraFacing
	// SensorOrientation is the clockwise rotation of the sensor, in degrees.
	SensorOrientation int
	// Resolution is the capture size in pixels.
	Resolution mgl32.Vec2
	// FieldOfView is the vertical field of view, in radians.
	FieldOfView float32
}

func (c CameraInfo) AspectRatio() float32 {
	if c.Resolution.Y() == 0 {
		return 1
	}
	return c.Resolution.X() / c.Resolution.Y()
}

// Projection returns a perspective projection matching the camera.
func (c CameraInfo) Projection(near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FieldOfView, c.AspectRatio(), near, far)
}

// Upright rotates the sensor frame so that it is displayed upright.
func (c CameraInfo) Upright() mgl32.Mat3 {
	return mgl32.HomogRotate2D(mgl32.DegToRad(float32(-c.SensorOrientation)))
}
