// Package config handles stage configuration loading and management.
package config

// Config holds all stage settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Rig      RigConfig      `yaml:"rig"`
	Assets   AssetsConfig   `yaml:"assets"`
	Effects  EffectsConfig  `yaml:"effects"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	// SnapshotDir receives F12 snapshots; empty is the working directory.
	SnapshotDir string `yaml:"snapshot_dir"`
}

// CameraConfig places the perspective camera.
type CameraConfig struct {
	FovDegrees float32    `yaml:"fov_degrees"`
	Position   [3]float32 `yaml:"position"`
	Target     [3]float32 `yaml:"target"`
	Near       float32    `yaml:"near"`
	Far        float32    `yaml:"far"`
	// BoundMargin scales the visible half width down so the actor stays on screen.
	BoundMargin float32 `yaml:"bound_margin"`
}

// RigConfig holds the tuning of locomotion, blending and gaze.
type RigConfig struct {
	MaxDeltaMs int `yaml:"max_delta_ms"`

	Deadzone     float32 `yaml:"deadzone"`
	SpeedGain    float32 `yaml:"speed_gain"`
	SpeedCap     float32 `yaml:"speed_cap"`
	SpeedRate    float32 `yaml:"speed_rate"`
	MoveEpsilon  float32 `yaml:"move_epsilon"`
	RunThreshold float32 `yaml:"run_threshold"`
	TurnRate     float32 `yaml:"turn_rate"`

	FadeSeconds        float32 `yaml:"fade_seconds"`
	GestureFadeSeconds float32 `yaml:"gesture_fade_seconds"`

	YawLimit        float32 `yaml:"yaw_limit"`
	PitchUp         float32 `yaml:"pitch_up"`
	PitchDown       float32 `yaml:"pitch_down"`
	TargetRate      float32 `yaml:"target_rate"`
	HeadRate        float32 `yaml:"head_rate"`
	NeckShare       float32 `yaml:"neck_share"`
	NeckRate        float32 `yaml:"neck_rate"`
	FacingThreshold float32 `yaml:"facing_threshold"`

	// Orientation input: degrees of tilt mapped to a full-scale signal.
	TiltRange   float32 `yaml:"tilt_range"`
	NeutralBeta float32 `yaml:"neutral_beta"`
}

// AssetsConfig points at the rig asset.
type AssetsConfig struct {
	SearchPaths []string `yaml:"search_paths"`
	// Rig is the asset file name; empty uses the built-in robot.
	Rig        string `yaml:"rig"`
	Attachment string `yaml:"attachment"`
}

// EffectsConfig toggles the decorative layers around the robot.
type EffectsConfig struct {
	Whirlpool     bool  `yaml:"whirlpool"`
	ParticleCount int   `yaml:"particle_count"`
	ParticleSeed  int64 `yaml:"particle_seed"`
}

// AudioConfig holds gesture cue settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float32 `yaml:"volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			SnapshotDir: "snapshots",
		},
		Camera: CameraConfig{
			FovDegrees:  45,
			Position:    [3]float32{0, 2.8, 7},
			Target:      [3]float32{0, 1.2, 0},
			Near:        0.1,
			Far:         100,
			BoundMargin: 0.85,
		},
		Rig: RigConfig{
			MaxDeltaMs:   50,
			Deadzone:     0.3,
			SpeedGain:    1.5,
			SpeedCap:     3.0,
			SpeedRate:    5,
			MoveEpsilon:  0.05,
			RunThreshold: 1.8,
			TurnRate:     8,

			FadeSeconds:        0.3,
			GestureFadeSeconds: 0.2,

			YawLimit:        1.0,
			PitchUp:         -0.5,
			PitchDown:       0.6,
			TargetRate:      4,
			HeadRate:        10,
			NeckShare:       0.32,
			NeckRate:        3,
			FacingThreshold: 0.35,

			TiltRange:   30,
			NeutralBeta: 45,
		},
		Assets: AssetsConfig{
			SearchPaths: []string{"assets"},
		},
		Effects: EffectsConfig{
			Whirlpool:     true,
			ParticleCount: 600,
			ParticleSeed:  1,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
