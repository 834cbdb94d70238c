package geom

import (
	"math"
	"testing"

	"golang.org/x/image/math/f64"
)

const epsilon = 1e-9

func pointsEqual(p1, p2 Point, eps float64) bool {
	return math.Abs(p1.X-p2.X) < eps && math.Abs(p1.Y-p2.Y) < eps
}

func TestMatrix_TransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, -5), Pt(1, 1), Pt(11, -4)},
		{"scale", Scale(2, 3), Pt(1, 1), Pt(2, 3)},
		{"rotate quarter", Rotate(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"translate after rotate", Translate(5, 0).Multiply(Rotate(math.Pi)), Pt(1, 0), Pt(4, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if !pointsEqual(got, tt.want, epsilon) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrix_Invert(t *testing.T) {
	m := Translate(12, 7).Multiply(Rotate(0.7)).Multiply(Scale(2, 0.5))
	p := Pt(3, -8)

	got := m.Invert().TransformPoint(m.TransformPoint(p))
	if !pointsEqual(got, p, epsilon) {
		t.Errorf("Invert round trip = %v, want %v", got, p)
	}

	if !Scale(0, 1).Invert().IsIdentity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestMatrix_Aff3(t *testing.T) {
	m := Translate(3, 4).Multiply(Scale(2, 5))
	aff := m.Aff3()
	want := f64.Aff3{2, 0, 3, 0, 5, 4}
	if aff != want {
		t.Errorf("Aff3() = %v, want %v", aff, want)
	}
	if MatrixFromAff3(aff) != m {
		t.Errorf("MatrixFromAff3(%v) = %v, want %v", aff, MatrixFromAff3(aff), m)
	}
}

func TestMatrix_IsTranslation(t *testing.T) {
	if !Translate(1, 2).IsTranslation() {
		t.Error("Translate should be a translation")
	}
	if Rotate(0.1).IsTranslation() {
		t.Error("Rotate should not be a translation")
	}
}
