package camera

import (
	"sync"

	"github.com/XingYaoA/manim/common"
)

// frameControllerImpl is the implementation of the FrameController interface.
type frameControllerImpl struct {
	mu sync.Mutex

	frame CameraFrame

	rotateSensitivity float64
	panSensitivity    float64
	zoomSpeed         float64
	minHeight         float64
	maxHeight         float64
}

// FrameController translates window input into camera frame motion: dragging
// orbits the frame's Euler angles, panning shifts its center in the frame
// plane, and scrolling zooms by scaling the frame extent. The controller owns
// no window state; callers wire its On* methods into whatever event source
// they have.
type FrameController interface {
	// Frame retrieves the controlled frame.
	//
	// Returns:
	//   - CameraFrame: the frame
	Frame() CameraFrame

	// OnDrag orbits the frame from a mouse drag. Horizontal motion drives
	// theta, vertical motion drives phi through the clamped increment.
	//
	// Parameters:
	//   - dx: horizontal drag delta in pixels
	//   - dy: vertical drag delta in pixels
	OnDrag(dx, dy float64)

	// OnPan shifts the frame center within its own plane. Pixel deltas are
	// converted to world units through the current frame extent, then rotated
	// out of camera space so the motion follows the view.
	//
	// Parameters:
	//   - dx: horizontal drag delta in pixels
	//   - dy: vertical drag delta in pixels
	//   - pixelHeight: the viewport height used to scale deltas
	OnPan(dx, dy float64, pixelHeight int)

	// OnScroll zooms by scaling the frame about its center. Positive deltas
	// zoom in. The resulting height is clamped to the configured bounds.
	//
	// Parameters:
	//   - delta: the scroll amount, positive for zoom in
	OnScroll(delta float64)

	// OnKeyDown handles control keys: space or R resets the frame to its
	// default state. Unrecognized keys are ignored.
	//
	// Parameters:
	//   - keyCode: the GLFW-compatible key code
	OnKeyDown(keyCode uint32)
}

var _ FrameController = &frameControllerImpl{}

// NewFrameController creates a FrameController driving the given frame.
// Panics when frame is nil.
//
// Parameters:
//   - frame: the frame to control
//   - options: variadic list of FrameControllerOption functions
//
// Returns:
//   - FrameController: a new FrameController instance
func NewFrameController(frame CameraFrame, options ...FrameControllerOption) FrameController {
	if frame == nil {
		panic("camera: frame controller requires a frame")
	}
	fc := &frameControllerImpl{
		frame:             frame,
		rotateSensitivity: 0.01,
		panSensitivity:    1.0,
		zoomSpeed:         0.1,
		minHeight:         DefaultFrameHeight / 16,
		maxHeight:         DefaultFrameHeight * 16,
	}
	for _, option := range options {
		option(fc)
	}
	return fc
}

func (fc *frameControllerImpl) Frame() CameraFrame {
	return fc.frame
}

func (fc *frameControllerImpl) OnDrag(dx, dy float64) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.frame.IncrementTheta(-dx * fc.rotateSensitivity)
	fc.frame.IncrementPhi(-dy * fc.rotateSensitivity)
}

func (fc *frameControllerImpl) OnPan(dx, dy float64, pixelHeight int) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if pixelHeight <= 0 {
		return
	}
	_, height := fc.frame.Shape()
	unitsPerPixel := height / float64(pixelHeight)

	// Pixel deltas live in the view plane; map them back to world space with
	// the transposed inverse rotation so panning tracks the current view.
	viewDelta := common.Vec3{
		-dx * unitsPerPixel * fc.panSensitivity,
		dy * unitsPerPixel * fc.panSensitivity,
		0,
	}
	worldDelta := fc.frame.InverseRotationMatrix().Transposed().MulVec(viewDelta)
	fc.frame.Shift(worldDelta)
}

func (fc *frameControllerImpl) OnScroll(delta float64) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	factor := 1 - delta*fc.zoomSpeed
	if factor <= 0 {
		return
	}
	_, height := fc.frame.Shape()
	factor = common.Clip(factor, fc.minHeight/height, fc.maxHeight/height)
	fc.frame.Scale(factor)
}

func (fc *frameControllerImpl) OnKeyDown(keyCode uint32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	switch keyCode {
	case common.KeySpace, common.KeyR:
		fc.frame.ToDefaultState()
	}
}
