package camera

// FrameControllerOption is a functional option for configuring a FrameController.
type FrameControllerOption func(*frameControllerImpl)

// WithRotateSensitivity sets the radians of orbit per pixel of drag.
//
// Parameters:
//   - sensitivity: radians per pixel
//
// Returns:
//   - FrameControllerOption: the option to apply
func WithRotateSensitivity(sensitivity float64) FrameControllerOption {
	return func(fc *frameControllerImpl) {
		fc.rotateSensitivity = sensitivity
	}
}

// WithPanSensitivity sets the pan speed multiplier applied on top of the
// pixel-to-frame-unit conversion.
//
// Parameters:
//   - sensitivity: the pan multiplier
//
// Returns:
//   - FrameControllerOption: the option to apply
func WithPanSensitivity(sensitivity float64) FrameControllerOption {
	return func(fc *frameControllerImpl) {
		fc.panSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the frame scale change per scroll step.
//
// Parameters:
//   - speed: the zoom multiplier per step
//
// Returns:
//   - FrameControllerOption: the option to apply
func WithZoomSpeed(speed float64) FrameControllerOption {
	return func(fc *frameControllerImpl) {
		fc.zoomSpeed = speed
	}
}

// WithHeightBounds sets the minimum and maximum frame height zooming may
// reach.
//
// Parameters:
//   - min: the smallest allowed frame height in world units
//   - max: the largest allowed frame height in world units
//
// Returns:
//   - FrameControllerOption: the option to apply
func WithHeightBounds(min, max float64) FrameControllerOption {
	return func(fc *frameControllerImpl) {
		fc.minHeight = min
		fc.maxHeight = max
	}
}
