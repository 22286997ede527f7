package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EngineSpec holds scene-wide simulation constants, from engine.yaml.
type EngineSpec struct {
	MaxStep        float64 `yaml:"max_step"`
	FlashTime      float64 `yaml:"flash_time"`
	BulletLifetime float64 `yaml:"bullet_lifetime"`
	BulletMargin   float64 `yaml:"bullet_margin"`
	Remnants       int     `yaml:"remnants"`
}

type HeroSpritesSpec struct {
	Head            string `yaml:"head"`
	Arm             string `yaml:"arm"`
	Static          string `yaml:"static"`
	Running         string `yaml:"running"`
	RunningBackward string `yaml:"running_backward"`
	Jump            string `yaml:"jump"`
	Dying           string `yaml:"dying"`
}

type HeroSoundsSpec struct {
	Jump  string   `yaml:"jump"`
	Hit   []string `yaml:"hit"`
	Dying []string `yaml:"dying"`
}

// HeroSpec tunes the hero's state machine, from hero.yaml.
type HeroSpec struct {
	Speed         float64         `yaml:"speed"`
	BulletSpeed   float64         `yaml:"bullet_speed"`
	JumpCooldown  float64         `yaml:"jump_cooldown"`
	ShootCooldown float64         `yaml:"shoot_cooldown"`
	JumpDuration  float64         `yaml:"jump_duration"`
	DyingDelay    float64         `yaml:"dying_delay"`
	BulletHeight  float64         `yaml:"bullet_height"`
	NozzleX       float64         `yaml:"nozzle_x"`
	NozzleY       float64         `yaml:"nozzle_y"`
	ShadowX       float64         `yaml:"shadow_x"`
	ShadowY       float64         `yaml:"shadow_y"`
	Sprites       HeroSpritesSpec `yaml:"sprites"`
	Sounds        HeroSoundsSpec  `yaml:"sounds"`
}

// CameraSpec tunes how the camera frames the hero, from camera.yaml.
type CameraSpec struct {
	ViewWidth   float64 `yaml:"view_width"`
	ViewHeight  float64 `yaml:"view_height"`
	Margin      float64 `yaml:"margin"`
	InnerMargin float64 `yaml:"inner_margin"`
	Zoom        float64 `yaml:"zoom"`
	Speed       float64 `yaml:"speed"`
}

type BossSpec struct {
	Health      float64  `yaml:"health"`
	Margin      float64  `yaml:"margin"`
	ArmHeight   float64  `yaml:"arm_height"`
	ArmLength   float64  `yaml:"arm_length"`
	MarchSpeedX float64  `yaml:"march_speed_x"`
	MarchSpeedY float64  `yaml:"march_speed_y"`
	Hysteresis  float64  `yaml:"hysteresis"`
	Rays        int      `yaml:"rays"`
	Arc         float64  `yaml:"arc"`
	BulletSpeed float64  `yaml:"bullet_speed"`
	Cooldown    float64  `yaml:"cooldown"`
	FirstBlast  float64  `yaml:"first_blast"`
	Reblast     float64  `yaml:"reblast"`
	Sprite      string   `yaml:"sprite"`
	Shooting    string   `yaml:"shooting"`
	Dying       string   `yaml:"dying"`
	DyingSound  string   `yaml:"dying_sound"`
	HitSounds   []string `yaml:"hit_sounds"`
}

type PrisonerSpec struct {
	Sound  string  `yaml:"sound"`
	Reach  float64 `yaml:"reach"`
	ExitTo string  `yaml:"exit_to"`
}

// EnemiesSpec tunes the built-in enemy archetypes, from enemies.yaml.
type EnemiesSpec struct {
	BigBad   BossSpec     `yaml:"big_bad"`
	MainBoss BossSpec     `yaml:"main_boss"`
	Prisoner PrisonerSpec `yaml:"prisoner"`
}

// SpriteDefSpec describes one sprite's frames. FrameTimes overrides FrameTime
// when present. Loops is -1 for sprites that repeat forever.
type SpriteDefSpec struct {
	Frames      int       `yaml:"frames"`
	FrameTime   float64   `yaml:"frame_time"`
	FrameTimes  []float64 `yaml:"frame_times"`
	Loops       int       `yaml:"loops"`
	FrameWidth  int       `yaml:"frame_width"`
	FrameHeight int       `yaml:"frame_height"`
}

type SpritesSpec struct {
	DefaultFrameTime float64                  `yaml:"default_frame_time"`
	Sprites          map[string]SpriteDefSpec `yaml:"sprites"`
}

// SettingsSpec holds first-run defaults for persisted user settings.
type SettingsSpec struct {
	Volume     float64 `yaml:"volume"`
	Fullscreen bool    `yaml:"fullscreen"`
}
