// Package assets holds the default script document and loads the images and
// sounds a document names, preferring files on disk next to the document.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const DefaultDocumentName = "GameScript.json"

//go:embed GameScript.json
var assetsFS embed.FS

const sampleRate = 44100

var audioContext *audio.Context

// DefaultDocument returns the embedded script document.
func DefaultDocument() []byte {
	b, err := assetsFS.ReadFile(DefaultDocumentName)
	if err != nil {
		panic(err)
	}
	return b
}

// AudioContext returns the process-wide audio context, creating it on first
// use.
func AudioContext() *audio.Context {
	if audioContext == nil {
		audioContext = audio.NewContext(sampleRate)
	}
	return audioContext
}

// Loader resolves document asset paths against a root directory, falling
// back to the embedded files.
type Loader struct {
	Root string
}

// LoadFile loads an asset by document-relative path.
func (l Loader) LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if l.Root != "" {
		if b, err := os.ReadFile(filepath.Join(l.Root, filepath.FromSlash(clean))); err == nil {
			return b, nil
		}
	}
	return assetsFS.ReadFile(clean)
}

// LoadImage loads and decodes an image asset.
func (l Loader) LoadImage(path string) (*ebiten.Image, error) {
	b, err := l.LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadAudioPlayer loads an audio asset and creates a player for it.
func (l Loader) LoadAudioPlayer(path string) (*audio.Player, error) {
	b, err := l.LoadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := AudioContext()
	r := bytes.NewReader(b)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), r)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		return ctx.NewPlayer(stream)
	case ".mp3":
		stream, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), r)
		if err != nil {
			return nil, fmt.Errorf("decode mp3 %q: %w", path, err)
		}
		return ctx.NewPlayer(stream)
	case ".ogg":
		stream, err := vorbis.DecodeWithSampleRate(ctx.SampleRate(), r)
		if err != nil {
			return nil, fmt.Errorf("decode ogg %q: %w", path, err)
		}
		return ctx.NewPlayer(stream)
	}

	// Fallback for already-decoded PCM assets in Ebiten's native format.
	return ctx.NewPlayerFromBytes(b), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
