// Package types holds the fixed-layout value types shared by NIF blocks.
// Every struct here is laid out exactly as it appears on the wire, so it can
// be synced as a single little-endian value.
package types

import "math"

// Vector2 is a 2D vector or texture coordinate.
type Vector2 struct {
	U float32
	V float32
}

// Vector3 is a 3D vector.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// Vector4 is a 4D vector.
type Vector4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

// Quaternion is stored W first, as the format does.
type Quaternion struct {
	W float32
	X float32
	Y float32
	Z float32
}

// IdentityQuaternion returns the identity rotation.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// Matrix3 is a row-major 3x3 matrix.
type Matrix3 struct {
	Rows [3]Vector3
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{Rows: [3]Vector3{{X: 1}, {Y: 1}, {Z: 1}}}
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix3) IsIdentity() bool {
	return m == Identity3()
}

// Mul returns m * o.
func (m Matrix3) Mul(o Matrix3) Matrix3 {
	var r Matrix3
	a := m.array()
	b := o.array()
	var c [3][3]float32
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	for i := 0; i < 3; i++ {
		r.Rows[i] = Vector3{c[i][0], c[i][1], c[i][2]}
	}
	return r
}

// MulVector returns m * v.
func (m Matrix3) MulVector(v Vector3) Vector3 {
	return Vector3{
		X: m.Rows[0].Dot(v),
		Y: m.Rows[1].Dot(v),
		Z: m.Rows[2].Dot(v),
	}
}

// Transpose returns the transposed matrix, which for rotations is the inverse.
func (m Matrix3) Transpose() Matrix3 {
	a := m.array()
	return Matrix3{Rows: [3]Vector3{
		{a[0][0], a[1][0], a[2][0]},
		{a[0][1], a[1][1], a[2][1]},
		{a[0][2], a[1][2], a[2][2]},
	}}
}

func (m Matrix3) array() [3][3]float32 {
	var a [3][3]float32
	for i, r := range m.Rows {
		a[i] = [3]float32{r.X, r.Y, r.Z}
	}
	return a
}

// Matrix4 is a row-major 4x4 matrix.
type Matrix4 struct {
	M [16]float32
}

// Matrix22 is a 2x2 matrix used by texture transforms.
type Matrix22 struct {
	M [4]float32
}

// Color3 is an RGB float color.
type Color3 struct {
	R float32
	G float32
	B float32
}

// Color4 is an RGBA float color.
type Color4 struct {
	R float32
	G float32
	B float32
	A float32
}

// ByteColor3 is an RGB byte color.
type ByteColor3 struct {
	R uint8
	G uint8
	B uint8
}

// ByteColor4 is an RGBA byte color.
type ByteColor4 struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// Triangle holds three vertex indices.
type Triangle struct {
	P1 uint16
	P2 uint16
	P3 uint16
}

// Rotated returns the triangle with the same winding whose first index is
// the smallest, so equal triangles compare equal.
func (t Triangle) Rotated() Triangle {
	switch {
	case t.P2 < t.P1 && t.P2 < t.P3:
		return Triangle{t.P2, t.P3, t.P1}
	case t.P3 < t.P1 && t.P3 < t.P2:
		return Triangle{t.P3, t.P1, t.P2}
	}
	return t
}

// HasIndex reports whether any corner equals i.
func (t Triangle) HasIndex(i uint16) bool {
	return t.P1 == i || t.P2 == i || t.P3 == i
}

// Degenerate reports whether two corners share an index.
func (t Triangle) Degenerate() bool {
	return t.P1 == t.P2 || t.P2 == t.P3 || t.P1 == t.P3
}

// BoundingSphere is a center and radius.
type BoundingSphere struct {
	Center Vector3
	Radius float32
}

// NewBoundingSphere computes a sphere around the average of the points.
func NewBoundingSphere(points []Vector3) BoundingSphere {
	if len(points) == 0 {
		return BoundingSphere{}
	}

	var sum Vector3
	for _, p := range points {
		sum = sum.Add(p)
	}
	center := sum.Scale(1 / float32(len(points)))

	var radius float32
	for _, p := range points {
		if d := p.Sub(center).Length(); d > radius {
			radius = d
		}
	}
	return BoundingSphere{Center: center, Radius: radius}
}

// MatTransform is a translation, rotation and uniform scale. The order the
// three members are written in depends on the block that holds them.
type MatTransform struct {
	Translation Vector3
	Rotation    Matrix3
	Scale       float32
}

// IdentityTransform returns a transform with no effect.
func IdentityTransform() MatTransform {
	return MatTransform{Rotation: Identity3(), Scale: 1}
}

// Apply transforms a point.
func (t MatTransform) Apply(v Vector3) Vector3 {
	return t.Rotation.MulVector(v.Scale(t.Scale)).Add(t.Translation)
}

// Compose returns the transform equal to applying o first, then t.
func (t MatTransform) Compose(o MatTransform) MatTransform {
	return MatTransform{
		Translation: t.Apply(o.Translation),
		Rotation:    t.Rotation.Mul(o.Rotation),
		Scale:       t.Scale * o.Scale,
	}
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vector3) Scale(s float32) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product.
func (v Vector3) Dot(o Vector3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Length returns the euclidean length.
func (v Vector3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalized returns v scaled to unit length, or v if it is zero.
func (v Vector3) Normalized() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}
