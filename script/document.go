// Package script holds the validated, read-only form of a game's script
// document: its asset manifest, scenes, and named action lists.
package script

import "github.com/jakecoffman/cp"

const (
	// PixelScale is the number of world units per design pixel.
	PixelScale = 2.0
	// DefaultHeroHealth applies to scenes that do not override it.
	DefaultHeroHealth = 20.0
	// HeroName is the character name every script may use for the hero.
	HeroName = "hero"
)

type AssetKind string

const (
	AssetAnimated AssetKind = "animated"
	AssetStatic   AssetKind = "static"
	AssetAudio    AssetKind = "audio"
)

type Asset struct {
	Name   string
	Kind   AssetKind
	Source string
	Origin *cp.Vector
	Loops  bool
}

func (a Asset) IsSprite() bool {
	return a.Kind != AssetAudio
}

// Box is a scene's extent in scene-local world units, plus the world-space
// origin the scene is anchored at.
type Box struct {
	cp.BB
	Origin cp.Vector
}

func (b Box) Width() float64 {
	return b.R - b.L
}

func (b Box) Height() float64 {
	return b.T - b.B
}

// ToLocal converts a world-space point into this scene's coordinates.
func (b Box) ToLocal(v cp.Vector) cp.Vector {
	return v.Sub(b.Origin)
}

// ToWorld converts a scene-local point into world space.
func (b Box) ToWorld(v cp.Vector) cp.Vector {
	return v.Add(b.Origin)
}

type SceneInfo struct {
	Name       string
	Box        Box
	HeroHealth float64
}

type Script struct {
	Name       string
	Characters []string
	Actions    []Action
}

type Document struct {
	Assets       []Asset
	SpriteNames  []string
	SoundNames   []string
	Scenes       map[string]*SceneInfo
	SceneOrder   []string
	Scripts      map[string]*Script
	OpeningScene string
}

// Asset finds a declared sprite or sound by name.
func (d *Document) Asset(name string, sprite bool) (Asset, bool) {
	for _, a := range d.Assets {
		if a.Name == name && a.IsSprite() == sprite {
			return a, true
		}
	}
	return Asset{}, false
}
