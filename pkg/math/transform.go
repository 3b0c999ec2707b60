package math

// Transform places a road's local space in the world.
type Transform struct {
	Position Vec3 `yaml:"position"`
	Rotation Quat `yaml:"rotation"`
	Scale    Vec3 `yaml:"scale"`
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Rotation: QuatIdentity(), Scale: Vec3{1, 1, 1}}
}

// normalized makes a decoded or zero Transform usable: the rotation is
// brought to unit length (zero becomes identity) and each zero scale
// component becomes 1, so the transform stays invertible.
func (t Transform) normalized() Transform {
	t.Rotation = t.Rotation.Normalize()
	if t.Scale.X == 0 {
		t.Scale.X = 1
	}
	if t.Scale.Y == 0 {
		t.Scale.Y = 1
	}
	if t.Scale.Z == 0 {
		t.Scale.Z = 1
	}
	return t
}

// TransformPoint maps a local point to world space.
func (t Transform) TransformPoint(p Vec3) Vec3 {
	t = t.normalized()
	return t.Position.Add(t.Rotation.Rotate(p.Mul(t.Scale)))
}

// InverseTransformPoint maps a world point to local space.
func (t Transform) InverseTransformPoint(p Vec3) Vec3 {
	t = t.normalized()
	local := t.Rotation.Conjugate().Rotate(p.Sub(t.Position))
	return Vec3{local.X / t.Scale.X, local.Y / t.Scale.Y, local.Z / t.Scale.Z}
}

// TransformDirection rotates and scales a local direction into world space.
// Translation is ignored.
func (t Transform) TransformDirection(d Vec3) Vec3 {
	t = t.normalized()
	return t.Rotation.Rotate(d.Mul(t.Scale))
}

// Matrix returns the transform as a model matrix.
func (t Transform) Matrix() Mat4 {
	t = t.normalized()
	return Translate(t.Position.X, t.Position.Y, t.Position.Z).
		Mul(t.Rotation.ToMat4()).
		Mul(Scale(t.Scale.X, t.Scale.Y, t.Scale.Z))
}
