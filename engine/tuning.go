package engine

import (
	"math"

	"github.com/milk9111/scenescript/prefabs"
)

type Tuning struct {
	Engine prefabs.EngineSpec
	Hero   prefabs.HeroSpec
	Camera prefabs.CameraSpec
}

// LoadTuning reads engine.yaml, hero.yaml and camera.yaml from prefabs.
func LoadTuning() (Tuning, error) {
	var t Tuning
	var err error
	if t.Engine, err = prefabs.LoadSpec[prefabs.EngineSpec]("engine.yaml"); err != nil {
		return Tuning{}, err
	}
	if t.Hero, err = prefabs.LoadSpec[prefabs.HeroSpec]("hero.yaml"); err != nil {
		return Tuning{}, err
	}
	if t.Camera, err = prefabs.LoadSpec[prefabs.CameraSpec]("camera.yaml"); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// DefaultTuning matches the shipped prefab files.
func DefaultTuning() Tuning {
	return Tuning{
		Engine: prefabs.EngineSpec{
			MaxStep:        0.05,
			FlashTime:      0.1,
			BulletLifetime: 4,
			BulletMargin:   200,
			Remnants:       64,
		},
		Hero: prefabs.HeroSpec{
			Speed:         600,
			BulletSpeed:   640,
			JumpCooldown:  0.25,
			ShootCooldown: 0.25,
			JumpDuration:  0.875,
			DyingDelay:    11,
			BulletHeight:  70,
			NozzleX:       96,
			NozzleY:       50,
			ShadowX:       30,
			ShadowY:       15,
			Sprites: prefabs.HeroSpritesSpec{
				Head:            "HeroHead",
				Arm:             "PistolArm",
				Static:          "HeroBodyStatic",
				Running:         "HeroRunning",
				RunningBackward: "HeroRunningBackwards",
				Jump:            "HeroJump",
				Dying:           "HeroDying",
			},
			Sounds: prefabs.HeroSoundsSpec{
				Jump:  "JumpSound",
				Hit:   []string{"HeroHit1", "HeroHit2", "HeroHit3"},
				Dying: []string{"HeroDying1", "HeroDying2", "HeroDying3"},
			},
		},
		Camera: prefabs.CameraSpec{
			ViewWidth:   1280,
			ViewHeight:  720,
			InnerMargin: 160,
			Zoom:        1,
			Speed:       4,
		},
	}
}

func (t Tuning) armLength() float64 {
	return math.Hypot(t.Hero.NozzleX, t.Hero.NozzleY)
}
