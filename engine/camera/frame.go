package camera

import (
	"math"
	"sync"

	"github.com/XingYaoA/manim/common"
)

// World axis constants used by the orientation math.
var (
	// Origin is the world origin.
	Origin = common.Vec3{0, 0, 0}
	// Right is the positive x axis.
	Right = common.Vec3{1, 0, 0}
	// Up is the positive y axis.
	Up = common.Vec3{0, 1, 0}
	// Out is the positive z axis, pointing from the scene toward the camera.
	Out = common.Vec3{0, 0, 1}
)

// Frame geometry defaults. The frame is 8 world units tall with a 16:9 aspect.
const (
	DefaultFrameHeight = 8.0
	DefaultFrameWidth  = DefaultFrameHeight * 16.0 / 9.0

	// DefaultFocalDistanceRatio scales the frame height into the camera's
	// effective focal distance.
	DefaultFocalDistanceRatio = 2.0
)

// Control point indices for the frame's five-point geometry.
const (
	pointCenter = 0
	pointLeft   = 1
	pointRight  = 2
	pointBottom = 3
	pointTop    = 4
)

// angleUpdate collects the angles a SetEulerAngles call actually supplies.
// Absent angles stay untouched.
type angleUpdate struct {
	theta *float64
	phi   *float64
	gamma *float64
}

// AngleOption marks one Euler angle for update in SetEulerAngles.
type AngleOption func(*angleUpdate)

// WithTheta sets the precession angle, in radians.
//
// Parameters:
//   - theta: the angle about the out axis
//
// Returns:
//   - AngleOption: the option to apply
func WithTheta(theta float64) AngleOption {
	return func(u *angleUpdate) {
		u.theta = &theta
	}
}

// WithPhi sets the polar angle, in radians.
//
// Parameters:
//   - phi: the angle about the right axis
//
// Returns:
//   - AngleOption: the option to apply
func WithPhi(phi float64) AngleOption {
	return func(u *angleUpdate) {
		u.phi = &phi
	}
}

// WithGamma sets the spin angle, in radians.
//
// Parameters:
//   - gamma: the twist about the out axis
//
// Returns:
//   - AngleOption: the option to apply
func WithGamma(gamma float64) AngleOption {
	return func(u *angleUpdate) {
		u.gamma = &gamma
	}
}

// frameImpl is the implementation of the CameraFrame interface.
type frameImpl struct {
	mu sync.Mutex

	theta float64
	phi   float64
	gamma float64

	// invRot maps world space into camera space. Recomputed synchronously on
	// every angle mutation, never lazily.
	invRot common.Mat3

	// points holds the frame's five control points: center, left, right,
	// bottom, top. Width and height are derived from point differences, so
	// spatial transforms on the points update them naturally.
	points [5]common.Vec3

	focalDistanceRatio float64
}

// CameraFrame holds the virtual camera's pose: an Euler-angle orientation
// exposed as an inverse rotation matrix, plus a rectangular extent in world
// units represented by five control points. It owns no GPU resources.
type CameraFrame interface {
	// EulerAngles retrieves the stored orientation triple, in radians.
	//
	// Returns:
	//   - theta: the precession angle
	//   - phi: the polar angle
	//   - gamma: the spin angle
	EulerAngles() (theta, phi, gamma float64)

	// Theta retrieves the precession angle in radians.
	//
	// Returns:
	//   - float64: the theta angle
	Theta() float64

	// Phi retrieves the polar angle in radians.
	//
	// Returns:
	//   - float64: the phi angle
	Phi() float64

	// Gamma retrieves the spin angle in radians.
	//
	// Returns:
	//   - float64: the gamma angle
	Gamma() float64

	// SetEulerAngles updates only the supplied angles, leaving absent ones
	// unchanged, then recomputes the rotation matrix. Values are stored raw;
	// no clamping or wraparound is applied here.
	//
	// Parameters:
	//   - options: the angles to update, each in radians
	SetEulerAngles(options ...AngleOption)

	// Reorient sets all three Euler angles at once, in degrees.
	//
	// Parameters:
	//   - thetaDegrees: the precession angle in degrees
	//   - phiDegrees: the polar angle in degrees
	//   - gammaDegrees: the spin angle in degrees
	Reorient(thetaDegrees, phiDegrees, gammaDegrees float64)

	// SetTheta sets the precession angle in radians.
	//
	// Parameters:
	//   - theta: the new angle
	SetTheta(theta float64)

	// SetPhi sets the polar angle in radians. The value is stored raw; only
	// IncrementPhi clamps.
	//
	// Parameters:
	//   - phi: the new angle
	SetPhi(phi float64)

	// SetGamma sets the spin angle in radians.
	//
	// Parameters:
	//   - gamma: the new angle
	SetGamma(gamma float64)

	// IncrementTheta adds to the precession angle without constraint.
	//
	// Parameters:
	//   - delta: the angle increment in radians
	IncrementTheta(delta float64)

	// IncrementPhi adds to the polar angle, then clamps the result into
	// [0, pi]. Clamping saturates: repeated over-increments stay pinned at
	// the bound.
	//
	// Parameters:
	//   - delta: the angle increment in radians
	IncrementPhi(delta float64)

	// IncrementGamma adds to the spin angle without constraint.
	//
	// Parameters:
	//   - delta: the angle increment in radians
	IncrementGamma(delta float64)

	// Rotate composes an incremental axis-angle rotation with the current
	// inverse rotation matrix, then re-expresses the combined matrix as a
	// canonical Euler triple so later incremental calls stay consistent.
	//
	// Parameters:
	//   - angle: the rotation angle in radians
	//   - axis: the rotation axis
	Rotate(angle float64, axis common.Vec3)

	// InverseRotationMatrix retrieves the matrix mapping world space into
	// camera space (the transpose of the camera's rotation).
	//
	// Returns:
	//   - common.Mat3: the inverse rotation matrix
	InverseRotationMatrix() common.Mat3

	// Width retrieves the frame width, derived from the left and right
	// control points.
	//
	// Returns:
	//   - float64: the width in world units
	Width() float64

	// Height retrieves the frame height, derived from the bottom and top
	// control points.
	//
	// Returns:
	//   - float64: the height in world units
	Height() float64

	// Shape retrieves the frame extent.
	//
	// Returns:
	//   - width: the frame width in world units
	//   - height: the frame height in world units
	Shape() (width, height float64)

	// Center retrieves the frame's center control point.
	//
	// Returns:
	//   - common.Vec3: the center in world space
	Center() common.Vec3

	// Points retrieves a copy of the five control points in the order
	// center, left, right, bottom, top.
	//
	// Returns:
	//   - [5]common.Vec3: the control points
	Points() [5]common.Vec3

	// FocalDistance retrieves the effective focal distance, the focal
	// distance ratio times the current height.
	//
	// Returns:
	//   - float64: the focal distance in world units
	FocalDistance() float64

	// FocalDistanceRatio retrieves the ratio scaling height into focal
	// distance.
	//
	// Returns:
	//   - float64: the ratio
	FocalDistanceRatio() float64

	// SetWidth stretches the frame horizontally about its center to the
	// given width. Height is unchanged.
	//
	// Parameters:
	//   - width: the new width in world units
	SetWidth(width float64)

	// SetHeight stretches the frame vertically about its center to the
	// given height. Width is unchanged.
	//
	// Parameters:
	//   - height: the new height in world units
	SetHeight(height float64)

	// MoveTo translates the frame so its center lands on the given point.
	//
	// Parameters:
	//   - point: the new center in world space
	MoveTo(point common.Vec3)

	// Shift translates every control point by the given delta.
	//
	// Parameters:
	//   - delta: the translation vector
	Shift(delta common.Vec3)

	// Scale scales the frame about its center. Width and height scale
	// linearly with the factor.
	//
	// Parameters:
	//   - factor: the scale factor
	Scale(factor float64)

	// ToDefaultState resets center, width, height, and angles to the package
	// defaults.
	ToDefaultState()

	// Interpolate sets this frame to the blend of two frames at parameter
	// alpha: control points, angles, and focal ratio are interpolated
	// linearly, then the rotation matrix is refreshed from the interpolated
	// angles.
	//
	// Parameters:
	//   - start: the frame at alpha = 0
	//   - end: the frame at alpha = 1
	//   - alpha: the interpolation parameter
	Interpolate(start, end CameraFrame, alpha float64)
}

var _ CameraFrame = &frameImpl{}

// NewCameraFrame creates a CameraFrame at the default pose: centered at the
// origin, 16:9 extent, angles (0, 0, 0).
//
// Parameters:
//   - options: variadic list of FrameBuilderOption functions
//
// Returns:
//   - CameraFrame: a new CameraFrame instance
func NewCameraFrame(options ...FrameBuilderOption) CameraFrame {
	f := &frameImpl{
		points:             defaultControlPoints(DefaultFrameWidth, DefaultFrameHeight, Origin),
		focalDistanceRatio: DefaultFocalDistanceRatio,
	}
	for _, opt := range options {
		opt(f)
	}
	f.refreshRotationLocked()
	return f
}

// defaultControlPoints lays out the five control points for a frame of the
// given extent around a center.
func defaultControlPoints(width, height float64, center common.Vec3) [5]common.Vec3 {
	return [5]common.Vec3{
		center,
		center.Add(common.Vec3{-width / 2, 0, 0}),
		center.Add(common.Vec3{width / 2, 0, 0}),
		center.Add(common.Vec3{0, -height / 2, 0}),
		center.Add(common.Vec3{0, height / 2, 0}),
	}
}

// decomposeRotation re-expresses an inverse rotation matrix as the canonical
// (theta, phi, gamma) Euler triple. The polar angle comes straight from the
// matrix's out-axis image, theta from its projection onto the xy plane, and
// gamma from the residual twist left after undoing phi and theta.
//
// Near phi = 0 or pi the decomposition is degenerate: theta and gamma rotate
// about the same axis, so the split between them is not unique and small
// input changes can swap angle between the two. The returned triple is one
// valid representative; no continuity correction is applied.
//
// Parameters:
//   - rotT: the combined inverse rotation matrix
//
// Returns:
//   - theta: the precession angle in radians
//   - phi: the polar angle in radians
//   - gamma: the spin angle in radians
func decomposeRotation(rotT common.Mat3) (theta, phi, gamma float64) {
	phi = math.Acos(common.Clip(rotT.At(2, 2), -1, 1))
	theta = common.AngleOf(rotT.At(2, 0), rotT.At(2, 1)) + math.Pi/2

	partial := common.QuaternionFromAngleAxis(phi, Right).RotationMatrixTranspose().
		Mul(common.QuaternionFromAngleAxis(theta, Out).RotationMatrixTranspose())
	residual := partial.Mul(rotT.Transposed())
	gamma = common.AngleOf(residual.At(0, 0), residual.At(1, 0))
	return theta, phi, gamma
}

func (f *frameImpl) EulerAngles() (theta, phi, gamma float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.theta, f.phi, f.gamma
}

func (f *frameImpl) Theta() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.theta
}

func (f *frameImpl) Phi() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phi
}

func (f *frameImpl) Gamma() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gamma
}

func (f *frameImpl) SetEulerAngles(options ...AngleOption) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var update angleUpdate
	for _, opt := range options {
		opt(&update)
	}
	if update.theta != nil {
		f.theta = *update.theta
	}
	if update.phi != nil {
		f.phi = *update.phi
	}
	if update.gamma != nil {
		f.gamma = *update.gamma
	}
	f.refreshRotationLocked()
}

func (f *frameImpl) Reorient(thetaDegrees, phiDegrees, gammaDegrees float64) {
	f.SetEulerAngles(
		WithTheta(common.Radians(thetaDegrees)),
		WithPhi(common.Radians(phiDegrees)),
		WithGamma(common.Radians(gammaDegrees)),
	)
}

func (f *frameImpl) SetTheta(theta float64) {
	f.SetEulerAngles(WithTheta(theta))
}

func (f *frameImpl) SetPhi(phi float64) {
	f.SetEulerAngles(WithPhi(phi))
}

func (f *frameImpl) SetGamma(gamma float64) {
	f.SetEulerAngles(WithGamma(gamma))
}

func (f *frameImpl) IncrementTheta(delta float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.theta += delta
	f.refreshRotationLocked()
}

func (f *frameImpl) IncrementPhi(delta float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phi = common.Clip(f.phi+delta, 0, math.Pi)
	f.refreshRotationLocked()
}

func (f *frameImpl) IncrementGamma(delta float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gamma += delta
	f.refreshRotationLocked()
}

func (f *frameImpl) Rotate(angle float64, axis common.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()

	addedRotT := common.QuaternionFromAngleAxis(angle, axis).RotationMatrixTranspose()
	newRotT := f.invRot.Mul(addedRotT)
	f.theta, f.phi, f.gamma = decomposeRotation(newRotT)
	f.refreshRotationLocked()
}

func (f *frameImpl) InverseRotationMatrix() common.Mat3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invRot
}

func (f *frameImpl) Width() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.widthLocked()
}

func (f *frameImpl) Height() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.heightLocked()
}

func (f *frameImpl) Shape() (width, height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.widthLocked(), f.heightLocked()
}

func (f *frameImpl) Center() common.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.points[pointCenter]
}

func (f *frameImpl) Points() [5]common.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.points
}

func (f *frameImpl) FocalDistance() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focalDistanceRatio * f.heightLocked()
}

func (f *frameImpl) FocalDistanceRatio() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focalDistanceRatio
}

func (f *frameImpl) SetWidth(width float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stretchLocked(width/f.widthLocked(), 0)
}

func (f *frameImpl) SetHeight(height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stretchLocked(height/f.heightLocked(), 1)
}

func (f *frameImpl) MoveTo(point common.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shiftLocked(point.Sub(f.points[pointCenter]))
}

func (f *frameImpl) Shift(delta common.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shiftLocked(delta)
}

func (f *frameImpl) Scale(factor float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	center := f.points[pointCenter]
	for i := range f.points {
		f.points[i] = center.Add(f.points[i].Sub(center).Scale(factor))
	}
}

func (f *frameImpl) ToDefaultState() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.points = defaultControlPoints(DefaultFrameWidth, DefaultFrameHeight, Origin)
	f.theta, f.phi, f.gamma = 0, 0, 0
	f.refreshRotationLocked()
}

func (f *frameImpl) Interpolate(start, end CameraFrame, alpha float64) {
	startPoints := start.Points()
	endPoints := end.Points()
	startTheta, startPhi, startGamma := start.EulerAngles()
	endTheta, endPhi, endGamma := end.EulerAngles()
	startRatio := start.FocalDistanceRatio()
	endRatio := end.FocalDistanceRatio()

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.points {
		f.points[i] = common.Lerp(startPoints[i], endPoints[i], alpha)
	}
	f.theta = startTheta + (endTheta-startTheta)*alpha
	f.phi = startPhi + (endPhi-startPhi)*alpha
	f.gamma = startGamma + (endGamma-startGamma)*alpha
	f.focalDistanceRatio = startRatio + (endRatio-startRatio)*alpha
	f.refreshRotationLocked()
}

// refreshRotationLocked recomputes the inverse rotation matrix from the
// stored Euler triple: quaternions for theta about the out axis, phi about
// the right axis, and gamma about the out axis are composed, and the
// transpose of the resulting rotation is stored. Caller holds the mutex.
func (f *frameImpl) refreshRotationLocked() {
	if f.theta == 0 && f.phi == 0 && f.gamma == 0 {
		f.invRot = common.IdentityMat3()
		return
	}
	q := common.QuaternionFromAngleAxis(f.theta, Out).
		Mul(common.QuaternionFromAngleAxis(f.phi, Right)).
		Mul(common.QuaternionFromAngleAxis(f.gamma, Out))
	f.invRot = q.RotationMatrixTranspose()
}

func (f *frameImpl) widthLocked() float64 {
	return f.points[pointRight][0] - f.points[pointLeft][0]
}

func (f *frameImpl) heightLocked() float64 {
	return f.points[pointTop][1] - f.points[pointBottom][1]
}

func (f *frameImpl) shiftLocked(delta common.Vec3) {
	for i := range f.points {
		f.points[i] = f.points[i].Add(delta)
	}
}

// stretchLocked scales the control points' offsets from the center along one
// dimension (0 = x, 1 = y).
func (f *frameImpl) stretchLocked(factor float64, dim int) {
	center := f.points[pointCenter]
	for i := range f.points {
		f.points[i][dim] = center[dim] + (f.points[i][dim]-center[dim])*factor
	}
}
