// Package picking turns the 2D control signal into world-space aim points.
package picking

import (
	gomath "math"

	"github.com/Faultbox/robostage/pkg/math"
)

// parallelEpsilon is the smallest |direction component| treated as non-parallel.
const parallelEpsilon = 0.001

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// NDCRay unprojects a normalized-device-coordinate point into a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func NDCRay(ndcX, ndcY float32, invViewProj math.Mat4) Ray {
	// Unproject near and far points
	nearWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, 1.0, 1.0})

	// Perspective divide
	if nearWorld[3] != 0 {
		nearWorld[0] /= nearWorld[3]
		nearWorld[1] /= nearWorld[3]
		nearWorld[2] /= nearWorld[3]
	}
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	origin := math.Vec3{X: nearWorld[0], Y: nearWorld[1], Z: nearWorld[2]}
	far := math.Vec3{X: farWorld[0], Y: farWorld[1], Z: farWorld[2]}

	return Ray{Origin: origin, Direction: far.Sub(origin).Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlaneY intersects the ray with the horizontal plane y = planeY.
// ok is false when the ray is parallel to the plane or the hit is behind the origin.
func (r Ray) IntersectPlaneY(planeY float32) (hit math.Vec3, ok bool) {
	if gomath.Abs(float64(r.Direction.Y)) < parallelEpsilon {
		return math.Vec3{}, false
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return math.Vec3{}, false
	}

	hit = r.At(t)
	hit.Y = planeY
	return hit, true
}

// IntersectPlaneZ intersects the ray with the vertical plane z = planeZ.
func (r Ray) IntersectPlaneZ(planeZ float32) (hit math.Vec3, ok bool) {
	if gomath.Abs(float64(r.Direction.Z)) < parallelEpsilon {
		return math.Vec3{}, false
	}

	t := (planeZ - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return math.Vec3{}, false
	}

	hit = r.At(t)
	hit.Z = planeZ
	return hit, true
}
