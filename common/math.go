package common

import (
	"math"
	"unsafe"
)

// Vec3 is a 3D vector in world units. Camera-space math runs in float64 and
// is converted to float32 only at the GPU boundary.
type Vec3 [3]float64

// Add returns the component-wise sum v + o.
//
// Parameters:
//   - o: the vector to add
//
// Returns:
//   - Vec3: the sum
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns the component-wise difference v - o.
//
// Parameters:
//   - o: the vector to subtract
//
// Returns:
//   - Vec3: the difference
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns the vector scaled by s.
//
// Parameters:
//   - s: the scalar factor
//
// Returns:
//   - Vec3: the scaled vector
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of v and o.
//
// Parameters:
//   - o: the other vector
//
// Returns:
//   - float64: the dot product
func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Length returns the Euclidean length of the vector.
//
// Returns:
//   - float64: the length
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns the unit vector in the direction of v.
// A zero vector is returned unchanged.
//
// Returns:
//   - Vec3: the normalized vector
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp returns the linear interpolation between a and b at parameter t.
//
// Parameters:
//   - a: the start vector (t = 0)
//   - b: the end vector (t = 1)
//   - t: the interpolation parameter
//
// Returns:
//   - Vec3: the interpolated vector
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// Mat3 is a 3x3 matrix stored row-major: element (row, col) lives at
// index row*3+col.
type Mat3 [9]float64

// IdentityMat3 returns the 3x3 identity matrix.
//
// Returns:
//   - Mat3: the identity matrix
func IdentityMat3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// At returns the element at the given row and column.
//
// Parameters:
//   - row: the row index (0-2)
//   - col: the column index (0-2)
//
// Returns:
//   - float64: the element value
func (m Mat3) At(row, col int) float64 {
	return m[row*3+col]
}

// Mul returns the matrix product m * o.
//
// Parameters:
//   - o: the right-hand matrix
//
// Returns:
//   - Mat3: the product
func (m Mat3) Mul(o Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += m[r*3+k] * o[k*3+c]
			}
			out[r*3+c] = sum
		}
	}
	return out
}

// MulVec returns the matrix-vector product m * v.
//
// Parameters:
//   - v: the vector to transform
//
// Returns:
//   - Vec3: the transformed vector
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Transposed returns the transpose of m.
//
// Returns:
//   - Mat3: the transposed matrix
func (m Mat3) Transposed() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Quaternion is a rotation quaternion stored as (x, y, z, w) with w the
// scalar part.
type Quaternion [4]float64

// IdentityQuaternion returns the identity rotation.
//
// Returns:
//   - Quaternion: the identity quaternion
func IdentityQuaternion() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// QuaternionFromAngleAxis builds a quaternion representing a rotation of
// angle radians about the given axis. The axis is normalized internally.
//
// Parameters:
//   - angle: the rotation angle in radians
//   - axis: the rotation axis
//
// Returns:
//   - Quaternion: the rotation quaternion
func QuaternionFromAngleAxis(angle float64, axis Vec3) Quaternion {
	a := axis.Normalized()
	s := math.Sin(angle / 2)
	return Quaternion{a[0] * s, a[1] * s, a[2] * s, math.Cos(angle / 2)}
}

// Mul returns the Hamilton product q * o. Applying the result rotates first
// by o, then by q.
//
// Parameters:
//   - o: the right-hand quaternion
//
// Returns:
//   - Quaternion: the product
func (q Quaternion) Mul(o Quaternion) Quaternion {
	x1, y1, z1, w1 := q[0], q[1], q[2], q[3]
	x2, y2, z2, w2 := o[0], o[1], o[2], o[3]
	return Quaternion{
		w1*x2 + x1*w2 + y1*z2 - z1*y2,
		w1*y2 - x1*z2 + y1*w2 + z1*x2,
		w1*z2 + x1*y2 - y1*x2 + z1*w2,
		w1*w2 - x1*x2 - y1*y2 - z1*z2,
	}
}

// RotationMatrixTranspose returns the transpose of the rotation matrix
// represented by q, row-major. For a unit quaternion this equals the
// inverse rotation.
//
// Returns:
//   - Mat3: the transposed rotation matrix
func (q Quaternion) RotationMatrixTranspose() Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	n := x*x + y*y + z*z + w*w
	if n == 0 {
		return IdentityMat3()
	}
	s := 2 / n
	xx, yy, zz := x*x*s, y*y*s, z*z*s
	xy, xz, yz := x*y*s, x*z*s, y*z*s
	wx, wy, wz := w*x*s, w*y*s, w*z*s
	// Rows here are the columns of the forward rotation matrix.
	return Mat3{
		1 - (yy + zz), xy + wz, xz - wy,
		xy - wz, 1 - (xx + zz), yz + wx,
		xz + wy, yz - wx, 1 - (xx + yy),
	}
}

// RotationMatrix builds the rotation matrix for a rotation of angle radians
// about the given axis.
//
// Parameters:
//   - angle: the rotation angle in radians
//   - axis: the rotation axis
//
// Returns:
//   - Mat3: the rotation matrix
func RotationMatrix(angle float64, axis Vec3) Mat3 {
	return QuaternionFromAngleAxis(angle, axis).RotationMatrixTranspose().Transposed()
}

// Clip limits v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clip
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - float64: the clipped value
func Clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AngleOf returns the polar angle of the 2D vector (x, y), in radians.
//
// Parameters:
//   - x: the x component
//   - y: the y component
//
// Returns:
//   - float64: atan2(y, x)
func AngleOf(x, y float64) float64 {
	return math.Atan2(y, x)
}

// Radians converts degrees to radians.
//
// Parameters:
//   - deg: the angle in degrees
//
// Returns:
//   - float64: the angle in radians
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}
