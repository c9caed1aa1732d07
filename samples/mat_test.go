package samples

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-5
}

func TestMat4Identity(t *testing.T) {
	m := Translate[float64](1, 2, 3).Mul(Identity[float64]())
	if m != Translate[float64](1, 2, 3) {
		t.Errorf("T * I != T: %v", m)
	}
}

func TestRotate(t *testing.T) {
	m := Rotate(math.Pi/2, Vec3[float64]{0, 0, 1})
	v := m.MulVec4(Vec4[float64]{1, 0, 0, 1})
	if !approx(v[0], 0) || !approx(v[1], 1) || !approx(v[2], 0) {
		t.Errorf("rotate x by 90 deg around z = %v, want (0,1,0)", v)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := Perspective(Radians(45.0), 1.0, 0.1, 100.0)

	tests := []struct {
		z    float64
		want float64
	}{
		{-0.1, -1},
		{-100, 1},
	}
	for _, tt := range tests {
		ndc, ok := p.Project(Vec3[float64]{0, 0, tt.z})
		if !ok {
			t.Fatalf("z=%v not projected", tt.z)
		}
		if !approx(ndc[2], tt.want) {
			t.Errorf("z=%v: ndc depth = %v, want %v", tt.z, ndc[2], tt.want)
		}
	}

	if _, ok := p.Project(Vec3[float64]{0, 0, 1}); ok {
		t.Error("point behind the camera should not project")
	}
}

func TestSignedArea(t *testing.T) {
	ccw := [][2]float32{{0, 0.5}, {-0.5, -0.5}, {0.5, -0.5}}
	if signedArea(ccw) <= 0 {
		t.Error("counter-clockwise triangle should have positive area")
	}
	cw := [][2]float32{{0, 0.5}, {0.5, -0.5}, {-0.5, -0.5}}
	if signedArea(cw) >= 0 {
		t.Error("clockwise triangle should have negative area")
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := (Vec3f{}).Normalize(); got != (Vec3f{}) {
		t.Errorf("Normalize(0) = %v", got)
	}
}
