package main

import (
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/scenescript/assets"
	"github.com/milk9111/scenescript/script"
)

// Audio plays a document's sounds through ebiten. Each source has at most
// one sound playing; music loops until replaced.
type Audio struct {
	loader assets.Loader
	doc    *script.Document
	volume float64

	players  map[string]*audio.Player
	bySource map[any]*audio.Player
	missing  map[string]bool

	music     *audio.Player
	musicPath string
}

func NewAudio(loader assets.Loader, doc *script.Document, volume float64) *Audio {
	return &Audio{
		loader:   loader,
		doc:      doc,
		volume:   volume,
		players:  make(map[string]*audio.Player),
		bySource: make(map[any]*audio.Player),
		missing:  make(map[string]bool),
	}
}

// SetDocument switches to a reloaded document. Cached players are dropped
// since sources may have moved.
func (a *Audio) SetDocument(doc *script.Document) {
	for _, p := range a.players {
		_ = p.Close()
	}
	a.doc = doc
	a.players = make(map[string]*audio.Player)
	a.bySource = make(map[any]*audio.Player)
	a.missing = make(map[string]bool)
}

func (a *Audio) SetVolume(v float64) {
	a.volume = v
	for _, p := range a.players {
		p.SetVolume(v)
	}
	if a.music != nil {
		a.music.SetVolume(v)
	}
}

func (a *Audio) PlayNamedSound(source any, name string) {
	p := a.player(name)
	if p == nil {
		return
	}
	if prev := a.bySource[source]; prev != nil && prev != p && prev.IsPlaying() {
		prev.Pause()
	}
	a.bySource[source] = p
	p.SetVolume(a.volume)
	if err := p.Rewind(); err != nil {
		log.Printf("audio: rewind %s: %v", name, err)
	}
	p.Play()
}

func (a *Audio) PlayOneOf(source any, names []string) {
	if len(names) == 0 {
		return
	}
	a.PlayNamedSound(source, names[rand.IntN(len(names))])
}

func (a *Audio) PlayMusic(path string) {
	if path == a.musicPath {
		return
	}
	if a.music != nil {
		_ = a.music.Close()
		a.music = nil
	}
	a.musicPath = path
	if path == "" {
		return
	}
	p, err := a.loader.LoadAudioPlayer(path)
	if err != nil {
		log.Printf("audio: music %s: %v", path, err)
		return
	}
	p.SetVolume(a.volume)
	p.Play()
	a.music = p
}

// Update restarts the music when it runs out.
func (a *Audio) Update() {
	if a.music != nil && !a.music.IsPlaying() {
		if err := a.music.Rewind(); err == nil {
			a.music.Play()
		}
	}
}

func (a *Audio) player(name string) *audio.Player {
	if p, ok := a.players[name]; ok {
		return p
	}
	if a.missing[name] {
		return nil
	}
	asset, ok := a.doc.Asset(name, false)
	if !ok {
		a.missing[name] = true
		log.Printf("audio: no sound named %q", name)
		return nil
	}
	p, err := a.loader.LoadAudioPlayer(asset.Source)
	if err != nil {
		a.missing[name] = true
		log.Printf("audio: sound %s: %v", name, err)
		return nil
	}
	a.players[name] = p
	return p
}
