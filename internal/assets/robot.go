package assets

import (
	gomath "math"

	"github.com/Faultbox/robostage/internal/engine/anim"
	"github.com/Faultbox/robostage/internal/engine/skeleton"
	"github.com/Faultbox/robostage/pkg/math"
)

// RobotName is the model name that selects the built-in robot.
const RobotName = "robot"

// Bone indices of the built-in robot.
const (
	boneRoot = iota
	boneBody
	boneNeck
	boneHead
	boneLeftArm
	boneRightArm
	boneLeftLeg
	boneLeftKnee
	boneRightLeg
	boneRightKnee
)

var (
	axisX = math.Vec3{X: 1}
	axisZ = math.Vec3{Z: 1}
)

func hex(c uint32) [3]float32 {
	return [3]float32{
		float32(c>>16&0xff) / 255,
		float32(c>>8&0xff) / 255,
		float32(c&0xff) / 255,
	}
}

func v3(x, y, z float32) math.Vec3 {
	return math.Vec3{X: x, Y: y, Z: z}
}

// Robot builds the default model: a white round-bodied robot with stubby arms,
// jointed legs, the Idle/Walking/Running gaits and the Wave, Bow and Jump
// gestures. Its visor attachment carries the glowing eyes and antenna.
func Robot() *Model {
	skel, err := skeleton.New([]skeleton.Bone{
		{Name: "Root", Parent: skeleton.NoParent},
		{Name: "Body", Parent: boneRoot, RestTranslation: v3(0, 1.4, 0)},
		{Name: "Neck", Parent: boneBody, RestTranslation: v3(0, 0.46, 0)},
		{Name: "Head", Parent: boneNeck, RestTranslation: v3(0, 0.46, 0)},
		{Name: "LeftArm", Parent: boneBody, RestTranslation: v3(-0.62, 0.1, 0)},
		{Name: "RightArm", Parent: boneBody, RestTranslation: v3(0.62, 0.1, 0)},
		{Name: "LeftLeg", Parent: boneRoot, RestTranslation: v3(-0.22, 0.85, 0)},
		{Name: "LeftKnee", Parent: boneLeftLeg, RestTranslation: v3(0, -0.45, 0)},
		{Name: "RightLeg", Parent: boneRoot, RestTranslation: v3(0.22, 0.85, 0)},
		{Name: "RightKnee", Parent: boneRightLeg, RestTranslation: v3(0, -0.45, 0)},
	})
	if err != nil {
		panic(err) // Static layout
	}

	m, err := newModel(RobotName, skel, robotClips())
	if err != nil {
		panic(err)
	}

	m.Materials = map[string]Material{
		"shell":     {Color: hex(0xeaeaea), Metalness: 0.15, Roughness: 0.35},
		"shellDark": {Color: hex(0xc8c8c8), Metalness: 0.2, Roughness: 0.4},
		"frame":     {Color: hex(0x3a3a3a), Metalness: 0.6, Roughness: 0.25},
		"joint":     {Color: hex(0x555555), Metalness: 0.7, Roughness: 0.2},
		"accent":    {Color: hex(0xdaa520), Metalness: 0.7, Roughness: 0.2},
	}

	m.Parts = []Part{
		{Name: "torso", Bone: boneBody, Shape: ShapeSphere, Size: v3(0.55, 0.495, 0.4675), Material: "shell"},
		{Name: "panel", Bone: boneBody, Shape: ShapeCylinder, Size: v3(0.48, 0.03, 0.48), Offset: v3(0, 0.05, 0), Material: "frame"},
		{Name: "dotLeft", Bone: boneBody, Shape: ShapeSphere, Size: v3(0.025, 0.025, 0.025), Offset: v3(-0.12, 0.25, 0.48), Material: "frame"},
		{Name: "dotCenter", Bone: boneBody, Shape: ShapeSphere, Size: v3(0.025, 0.025, 0.025), Offset: v3(0, 0.25, 0.48), Material: "accent"},
		{Name: "dotRight", Bone: boneBody, Shape: ShapeSphere, Size: v3(0.025, 0.025, 0.025), Offset: v3(0.12, 0.25, 0.48), Material: "frame"},
		{Name: "neck", Bone: boneNeck, Shape: ShapeCylinder, Size: v3(0.11, 0.18, 0.11), Offset: v3(0, 0.09, 0), Material: "frame"},
		{Name: "head", Bone: boneHead, Shape: ShapeBox, Size: v3(0.85, 0.55, 0.6), Material: "shell"},
		{Name: "earLeft", Bone: boneHead, Shape: ShapeBox, Size: v3(0.08, 0.16, 0.12), Offset: v3(-0.46, 0, 0), Material: "shellDark"},
		{Name: "earRight", Bone: boneHead, Shape: ShapeBox, Size: v3(0.08, 0.16, 0.12), Offset: v3(0.46, 0, 0), Material: "shellDark"},
	}
	for _, side := range []struct {
		name      string
		arm       int
		leg, knee int
	}{
		{"Left", boneLeftArm, boneLeftLeg, boneLeftKnee},
		{"Right", boneRightArm, boneRightLeg, boneRightKnee},
	} {
		m.Parts = append(m.Parts,
			Part{Name: "shoulder" + side.name, Bone: side.arm, Shape: ShapeSphere, Size: v3(0.065, 0.065, 0.065), Material: "joint"},
			Part{Name: "upperArm" + side.name, Bone: side.arm, Shape: ShapeCylinder, Size: v3(0.0375, 0.28, 0.0375), Offset: v3(0, -0.16, 0), Material: "frame"},
			Part{Name: "hand" + side.name, Bone: side.arm, Shape: ShapeSphere, Size: v3(0.05, 0.05, 0.05), Offset: v3(0, -0.32, 0), Material: "shellDark"},
			Part{Name: "hip" + side.name, Bone: side.leg, Shape: ShapeSphere, Size: v3(0.09, 0.09, 0.09), Material: "joint"},
			Part{Name: "upperLeg" + side.name, Bone: side.leg, Shape: ShapeCylinder, Size: v3(0.05, 0.4, 0.05), Offset: v3(0, -0.24, 0), Material: "frame"},
			Part{Name: "wire" + side.name, Bone: side.leg, Shape: ShapeCylinder, Size: v3(0.012, 0.35, 0.012), Offset: v3(0.06, -0.22, 0), Material: "accent"},
			Part{Name: "knee" + side.name, Bone: side.knee, Shape: ShapeSphere, Size: v3(0.07, 0.07, 0.07), Material: "accent"},
			Part{Name: "lowerLeg" + side.name, Bone: side.knee, Shape: ShapeCylinder, Size: v3(0.045, 0.38, 0.045), Offset: v3(0, -0.22, 0), Material: "frame"},
			Part{Name: "foot" + side.name, Bone: side.knee, Shape: ShapeBox, Size: v3(0.14, 0.05, 0.22), Offset: v3(0, -0.42, 0.03), Material: "joint"},
			Part{Name: "footAccent" + side.name, Bone: side.knee, Shape: ShapeBox, Size: v3(0.1, 0.02, 0.18), Offset: v3(0, -0.39, 0.03), Material: "shellDark"},
		)
	}

	if err := m.Attach(Visor(), "head"); err != nil {
		panic(err)
	}
	return m
}

// Glowing material names animated by the flourish layer.
const (
	MaterialEye     = "eye"
	MaterialEyeRing = "eyeRing"
	MaterialAntenna = "antenna"
)

// Visor builds the face attachment: screen, eyes, eye rings and antenna.
func Visor() *Attachment {
	cyan := hex(0x00e5ff)
	eye := v3(0.1, 0.1, 0.005)
	ring := v3(0.125, 0.125, 0.003)
	return &Attachment{
		Name: "visor",
		Materials: map[string]Material{
			"screen":        {Color: hex(0x111822), Metalness: 0.1, Roughness: 0.6},
			"frame":         {Color: hex(0x3a3a3a), Metalness: 0.6, Roughness: 0.25},
			MaterialEye:     {Color: cyan, Emissive: cyan, Intensity: 3, Metalness: 0.1, Roughness: 0.1},
			MaterialEyeRing: {Color: cyan, Emissive: cyan, Intensity: 1.5},
			MaterialAntenna: {Color: cyan, Emissive: cyan, Intensity: 2, Metalness: 0.1, Roughness: 0.1},
		},
		Parts: []Part{
			{Name: "screen", Shape: ShapeBox, Size: v3(0.65, 0.38, 0.004), Offset: v3(0, -0.02, 0.301), Material: "screen"},
			{Name: "eyeRingLeft", Shape: ShapeSphere, Size: ring, Offset: v3(-0.16, 0, 0.303), Material: MaterialEyeRing},
			{Name: "eyeRingRight", Shape: ShapeSphere, Size: ring, Offset: v3(0.16, 0, 0.303), Material: MaterialEyeRing},
			{Name: "eyeLeft", Shape: ShapeSphere, Size: eye, Offset: v3(-0.16, 0, 0.305), Material: MaterialEye},
			{Name: "eyeRight", Shape: ShapeSphere, Size: eye, Offset: v3(0.16, 0, 0.305), Material: MaterialEye},
			{Name: "antennaBase", Shape: ShapeCylinder, Size: v3(0.045, 0.06, 0.045), Offset: v3(0, 0.3, 0), Material: "frame"},
			{Name: "antennaPole", Shape: ShapeCylinder, Size: v3(0.0175, 0.16, 0.0175), Offset: v3(0, 0.42, 0), Material: "frame"},
			{Name: "antennaTip", Shape: ShapeSphere, Size: v3(0.035, 0.035, 0.035), Offset: v3(0, 0.52, 0), Material: MaterialAntenna},
		},
	}
}

// sampled builds a rotation track by evaluating angle(t) about axis at n+1
// evenly spaced keys.
func sampled(bone string, axis math.Vec3, duration float32, n int, angle func(t float32) float32) anim.Track {
	tr := anim.Track{Bone: bone}
	for i := 0; i <= n; i++ {
		t := duration * float32(i) / float32(n)
		tr.Times = append(tr.Times, t)
		tr.Rotations = append(tr.Rotations, math.QuatFromAxisAngle(axis, angle(t)))
	}
	return tr
}

// stride builds a looping leg/arm cycle. swing and knee are peak angles.
func stride(name string, duration, swing, knee, arm float32) *anim.Clip {
	const keys = 16
	w := 2 * float32(gomath.Pi) / duration
	phase := func(t float32) float32 { return math.Sin(w * t) }
	bend := func(p float32) float32 {
		if p < 0 {
			return 0
		}
		return p
	}
	return anim.NewClip(name, duration, []anim.Track{
		sampled("LeftLeg", axisX, duration, keys, func(t float32) float32 { return phase(t) * swing }),
		sampled("RightLeg", axisX, duration, keys, func(t float32) float32 { return -phase(t) * swing }),
		sampled("LeftKnee", axisX, duration, keys, func(t float32) float32 { return bend(phase(t)) * knee }),
		sampled("RightKnee", axisX, duration, keys, func(t float32) float32 { return bend(-phase(t)) * knee }),
		sampled("LeftArm", axisX, duration, keys, func(t float32) float32 { return -phase(t) * arm }),
		sampled("RightArm", axisX, duration, keys, func(t float32) float32 { return phase(t) * arm }),
	})
}

func robotClips() []*anim.Clip {
	const idleLen = 4
	idle := anim.NewClip(anim.ClipIdle, idleLen, []anim.Track{
		sampled("LeftArm", axisZ, idleLen, 8, func(t float32) float32 { return -0.04 * math.Sin(t*gomath.Pi/2) }),
		sampled("RightArm", axisZ, idleLen, 8, func(t float32) float32 { return 0.04 * math.Sin(t*gomath.Pi/2) }),
		// Baked head sway; stripped on load so only the look-at rig turns the head.
		sampled("Head", axisZ, idleLen, 8, func(t float32) float32 { return 0.05 * math.Sin(t*gomath.Pi/2) }),
	})

	const waveLen = 1.6
	wave := anim.NewClip("Wave", waveLen, []anim.Track{
		sampled("RightArm", axisZ, waveLen, 16, func(t float32) float32 {
			raise := math.Sin(gomath.Pi * t / waveLen) // Up and back down
			return raise * (2.4 + 0.3*math.Sin(t*4*gomath.Pi))
		}),
	})

	const bowLen = 1.2
	bow := anim.NewClip("Bow", bowLen, []anim.Track{
		sampled("Body", axisX, bowLen, 12, func(t float32) float32 { return 0.45 * math.Sin(gomath.Pi*t/bowLen) }),
		sampled("LeftArm", axisX, bowLen, 12, func(t float32) float32 { return -0.3 * math.Sin(gomath.Pi*t/bowLen) }),
		sampled("RightArm", axisX, bowLen, 12, func(t float32) float32 { return -0.3 * math.Sin(gomath.Pi*t/bowLen) }),
	})

	const jumpLen = 0.9
	crouch := func(t float32) float32 {
		// Dip, launch, land, settle.
		switch {
		case t < 0.2:
			return -0.12 * t / 0.2
		case t < 0.7:
			u := (t - 0.2) / 0.5
			return -0.12 + 0.62*math.Sin(gomath.Pi*u)*(1-0.2*u)
		default:
			u := (t - 0.7) / 0.2
			return -0.12 * (1 - u)
		}
	}
	root := anim.Track{Bone: "Root"}
	for i := 0; i <= 18; i++ {
		t := jumpLen * float32(i) / 18
		root.Times = append(root.Times, t)
		root.Translations = append(root.Translations, v3(0, crouch(t), 0))
	}
	kneeBend := func(t float32) float32 {
		if y := crouch(t); y < 0 {
			return -y * 4
		}
		return 0
	}
	jump := anim.NewClip("Jump", jumpLen, []anim.Track{
		root,
		sampled("LeftKnee", axisX, jumpLen, 18, kneeBend),
		sampled("RightKnee", axisX, jumpLen, 18, kneeBend),
		sampled("LeftArm", axisZ, jumpLen, 18, func(t float32) float32 { return -0.8 * math.Sin(gomath.Pi*t/jumpLen) }),
		sampled("RightArm", axisZ, jumpLen, 18, func(t float32) float32 { return 0.8 * math.Sin(gomath.Pi*t/jumpLen) }),
	})

	return []*anim.Clip{
		idle,
		stride(anim.ClipWalking, 0.9, 0.35, 0.3, 0.175),
		stride(anim.ClipRunning, 0.55, 0.6, 0.55, 0.4),
		wave,
		bow,
		jump,
	}
}
