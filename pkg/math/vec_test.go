package math

import (
	"testing"
)

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Right.Cross(Up)
	if got != Forward {
		t.Errorf("Vec3.Cross() = %v, want %v", got, Forward)
	}
}

func TestVec3Normalize(t *testing.T) {
	l := Vec3{3, 4, 12}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("normalizing zero vector should return zero")
	}
}

func TestVec3Flat(t *testing.T) {
	if got := (Vec3{1, 2, 3}).Flat(); got != (Vec3{1, 0, 3}) {
		t.Errorf("Flat() = %v", got)
	}
	if got := (Vec3{1, 2, 3}).MirrorZ(); got != (Vec3{1, 2, -3}) {
		t.Errorf("MirrorZ() = %v", got)
	}
}

func TestClamp01(t *testing.T) {
	cases := map[float32]float32{-1: 0, 0: 0, 0.25: 0.25, 1: 1, 3: 1}
	for in, want := range cases {
		if got := Clamp01(in); got != want {
			t.Errorf("Clamp01(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestRemap(t *testing.T) {
	if got := Remap(50, 0, 200, 0, 1); got != 0.25 {
		t.Errorf("Remap = %v, want 0.25", got)
	}
}
