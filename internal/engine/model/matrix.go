package model

import (
	"github.com/Faultbox/robostage/pkg/math"
)

// PartMatrix places a unit primitive on a bone: the bone's world transform,
// then the part offset in bone space, then the part size.
func PartMatrix(boneWorld math.Mat4, offset, size math.Vec3) math.Mat4 {
	return boneWorld.
		Mul(math.Translate(offset.X, offset.Y, offset.Z)).
		Mul(math.Scale(size.X, size.Y, size.Z))
}

// GroundMatrix places the unit ground plane, scaled to extent, at height y.
func GroundMatrix(extent, y float32) math.Mat4 {
	return math.Translate(0, y, 0).Mul(math.Scale(extent, 1, extent))
}
