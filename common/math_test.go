package common

import (
	"encoding/binary"
	"math"
	"testing"
)

const tol = 1e-9

func vecNear(t *testing.T, got, want Vec3, eps float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("component %d: got %v, want %v", i, got, want)
		}
	}
}

func matNear(t *testing.T, got, want Mat3, eps float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("element %d: got %v, want %v", i, got, want)
		}
	}
}

func TestRotationMatrix(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		axis  Vec3
		in    Vec3
		want  Vec3
	}{
		{"quarter turn about z maps x to y", math.Pi / 2, Vec3{0, 0, 1}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"quarter turn about z maps y to -x", math.Pi / 2, Vec3{0, 0, 1}, Vec3{0, 1, 0}, Vec3{-1, 0, 0}},
		{"quarter turn about x maps y to z", math.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"half turn about y negates x", math.Pi, Vec3{0, 1, 0}, Vec3{1, 0, 0}, Vec3{-1, 0, 0}},
		{"axis is normalized internally", math.Pi / 2, Vec3{0, 0, 10}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"zero angle is identity", 0, Vec3{0, 0, 1}, Vec3{1, 2, 3}, Vec3{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotationMatrix(tt.angle, tt.axis).MulVec(tt.in)
			vecNear(t, got, tt.want, tol)
		})
	}
}

func TestRotationMatrixTransposeIsInverse(t *testing.T) {
	angles := []float64{0.1, 0.7, 1.3, 2.9, -0.4, -2.2}
	axes := []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 0}, {1, 2, 3}}
	for _, angle := range angles {
		for _, axis := range axes {
			q := QuaternionFromAngleAxis(angle, axis)
			rot := q.RotationMatrixTranspose().Transposed()
			rotT := q.RotationMatrixTranspose()
			matNear(t, rot.Mul(rotT), IdentityMat3(), tol)
		}
	}
}

func TestQuaternionMulMatchesMatrixProduct(t *testing.T) {
	q1 := QuaternionFromAngleAxis(0.8, Vec3{0, 0, 1})
	q2 := QuaternionFromAngleAxis(1.1, Vec3{1, 0, 0})

	// Hamilton product: q1*q2 applies q2 first, then q1, so the rotation
	// matrix of the product is R1 * R2.
	combined := q1.Mul(q2).RotationMatrixTranspose().Transposed()
	product := q1.RotationMatrixTranspose().Transposed().
		Mul(q2.RotationMatrixTranspose().Transposed())
	matNear(t, combined, product, tol)
}

func TestMat3Transposed(t *testing.T) {
	m := Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	matNear(t, m.Transposed().Transposed(), m, 0)
	if m.Transposed().At(0, 1) != m.At(1, 0) {
		t.Fatalf("transpose did not swap (0,1) and (1,0)")
	}
}

func TestMat3MulIdentity(t *testing.T) {
	m := Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	matNear(t, m.Mul(IdentityMat3()), m, 0)
	matNear(t, IdentityMat3().Mul(m), m, 0)
}

func TestVec3Ops(t *testing.T) {
	vecNear(t, Vec3{1, 2, 3}.Add(Vec3{4, 5, 6}), Vec3{5, 7, 9}, 0)
	vecNear(t, Vec3{4, 5, 6}.Sub(Vec3{1, 2, 3}), Vec3{3, 3, 3}, 0)
	vecNear(t, Vec3{1, -2, 3}.Scale(2), Vec3{2, -4, 6}, 0)
	vecNear(t, Vec3{3, 0, 4}.Normalized(), Vec3{0.6, 0, 0.8}, tol)
	vecNear(t, Vec3{}.Normalized(), Vec3{}, 0)
	if got := (Vec3{1, 2, 3}).Dot(Vec3{4, -5, 6}); got != 12 {
		t.Fatalf("Dot = %v, want 12", got)
	}
	if got := (Vec3{3, 4, 0}).Length(); got != 5 {
		t.Fatalf("Length = %v, want 5", got)
	}
}

func TestLerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, 6}
	vecNear(t, Lerp(a, b, 0), a, 0)
	vecNear(t, Lerp(a, b, 1), b, 0)
	vecNear(t, Lerp(a, b, 0.5), Vec3{1, 2, 3}, tol)
}

func TestClip(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"below", -1, 0, 1, 0},
		{"inside", 0.5, 0, 1, 0.5},
		{"above", 2, 0, 1, 1},
		{"at lower bound", 0, 0, 1, 0},
		{"at upper bound", 1, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clip(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Fatalf("Clip(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestAngleOf(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"east", 1, 0, 0},
		{"north", 0, 1, math.Pi / 2},
		{"west", -1, 0, math.Pi},
		{"south", 0, -1, -math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngleOf(tt.x, tt.y); math.Abs(got-tt.want) > tol {
				t.Fatalf("AngleOf(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); math.Abs(got-math.Pi) > tol {
		t.Fatalf("Radians(180) = %v, want pi", got)
	}
	if got := Radians(0); got != 0 {
		t.Fatalf("Radians(0) = %v, want 0", got)
	}
}

func TestSliceToBytes(t *testing.T) {
	t.Run("empty slice is nil", func(t *testing.T) {
		if got := SliceToBytes([]float32(nil)); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("float32 values survive the view", func(t *testing.T) {
		data := []float32{1.5, -2.25, 0}
		raw := SliceToBytes(data)
		if len(raw) != 12 {
			t.Fatalf("len = %d, want 12", len(raw))
		}
		for i, want := range data {
			got := math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
			if got != want {
				t.Fatalf("value %d = %v, want %v", i, got, want)
			}
		}
	})

	t.Run("uint32 stride", func(t *testing.T) {
		raw := SliceToBytes([]uint32{7, 8})
		if len(raw) != 8 {
			t.Fatalf("len = %d, want 8", len(raw))
		}
		if binary.LittleEndian.Uint32(raw[4:]) != 8 {
			t.Fatalf("second element mismatch")
		}
	})
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 5, 7); got != 5 {
		t.Fatalf("Coalesce = %d, want 5", got)
	}
	if got := Coalesce("", "a"); got != "a" {
		t.Fatalf("Coalesce = %q, want a", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Fatalf("Coalesce = %d, want 0", got)
	}
}
