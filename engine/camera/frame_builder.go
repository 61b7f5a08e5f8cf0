package camera

import "github.com/XingYaoA/manim/common"

// FrameBuilderOption is a functional option applied to a CameraFrame during construction via NewCameraFrame.
type FrameBuilderOption func(*frameImpl)

// WithFrameShape sets the initial frame extent, centered on the frame's
// current center.
//
// Parameters:
//   - width: the frame width in world units
//   - height: the frame height in world units
//
// Returns:
//   - FrameBuilderOption: the option to apply
func WithFrameShape(width, height float64) FrameBuilderOption {
	return func(f *frameImpl) {
		f.points = defaultControlPoints(width, height, f.points[pointCenter])
	}
}

// WithFrameCenter sets the initial frame center.
//
// Parameters:
//   - center: the center in world space
//
// Returns:
//   - FrameBuilderOption: the option to apply
func WithFrameCenter(center common.Vec3) FrameBuilderOption {
	return func(f *frameImpl) {
		f.shiftLocked(center.Sub(f.points[pointCenter]))
	}
}

// WithFocalDistanceRatio sets the ratio scaling frame height into the
// camera's effective focal distance.
//
// Parameters:
//   - ratio: the focal distance ratio
//
// Returns:
//   - FrameBuilderOption: the option to apply
func WithFocalDistanceRatio(ratio float64) FrameBuilderOption {
	return func(f *frameImpl) {
		f.focalDistanceRatio = ratio
	}
}

// WithEulerAngles sets the initial orientation triple, in radians.
//
// Parameters:
//   - theta: the precession angle
//   - phi: the polar angle
//   - gamma: the spin angle
//
// Returns:
//   - FrameBuilderOption: the option to apply
func WithEulerAngles(theta, phi, gamma float64) FrameBuilderOption {
	return func(f *frameImpl) {
		f.theta = theta
		f.phi = phi
		f.gamma = gamma
	}
}
