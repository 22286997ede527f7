package main

import (
	"hash/fnv"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	cueLength    = 120 * time.Millisecond
	chimeLength  = 400 * time.Millisecond
	lowestPitch  = 220.0
	pitchSpread  = 660.0
	musicPitch   = 110.0
	speakerDelay = 100 * time.Millisecond
)

// toneAudio stands in for real sound files with a short tone per sound
// name. A source's new cue cuts off its previous one. Mixer streamers are
// only touched under the speaker lock.
type toneAudio struct {
	enabled  bool
	mixer    *beep.Mixer
	bySource map[any]*beep.Ctrl
	music    string
}

func newToneAudio() *toneAudio {
	a := &toneAudio{
		mixer:    &beep.Mixer{},
		bySource: make(map[any]*beep.Ctrl),
	}
	if err := speaker.Init(sampleRate, sampleRate.N(speakerDelay)); err != nil {
		log.Printf("audio: %v (silent)", err)
		return a
	}
	speaker.Play(a.mixer)
	a.enabled = true
	return a
}

func (a *toneAudio) Close() {
	if a.enabled {
		speaker.Clear()
		speaker.Close()
	}
}

// pitchOf gives each sound name a stable pitch.
func pitchOf(name string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return lowestPitch + float64(h.Sum32()%1000)/1000*pitchSpread
}

func (a *toneAudio) tone(freq float64, d time.Duration) *beep.Ctrl {
	s, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		log.Printf("audio: tone %v: %v", freq, err)
		return nil
	}
	return &beep.Ctrl{Streamer: beep.Take(sampleRate.N(d), s)}
}

func (a *toneAudio) PlayNamedSound(source any, name string) {
	if !a.enabled {
		return
	}
	ctrl := a.tone(pitchOf(name), cueLength)
	if ctrl == nil {
		return
	}
	speaker.Lock()
	if prev := a.bySource[source]; prev != nil {
		// A nil streamer drains, so the mixer drops the cut-off cue.
		prev.Streamer = nil
	}
	a.bySource[source] = ctrl
	a.mixer.Add(ctrl)
	speaker.Unlock()
}

func (a *toneAudio) PlayOneOf(source any, names []string) {
	if len(names) > 0 {
		a.PlayNamedSound(source, names[rand.IntN(len(names))])
	}
}

// PlayMusic marks a track change with a low chime.
func (a *toneAudio) PlayMusic(path string) {
	if path == a.music {
		return
	}
	a.music = path
	if !a.enabled || path == "" {
		return
	}
	if ctrl := a.tone(musicPitch, chimeLength); ctrl != nil {
		speaker.Lock()
		a.mixer.Add(ctrl)
		speaker.Unlock()
	}
}
