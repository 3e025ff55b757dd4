package character

import (
	gomath "math"

	"github.com/Faultbox/robostage/pkg/math"
)

// QuarterTurn is the body rotation for walking across the screen.
const QuarterTurn = float32(gomath.Pi / 2)

// TargetRotation returns the body yaw for a gait and facing: sideways while
// moving, toward the camera while idle.
func TargetRotation(g Gait, facing float32) float32 {
	if g == GaitIdle {
		return 0
	}
	if facing < 0 {
		return -QuarterTurn
	}
	return QuarterTurn
}

// FacesCamera reports whether a body yaw is close enough to zero that the
// actor can be treated as looking straight out of the screen.
func FacesCamera(rotationY, threshold float32) bool {
	return math.Abs(math.WrapAngle(rotationY)) < threshold
}
