package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
)

func GetDefaultFontPath() string {
	// Check local fonts directory
	entries, err := os.ReadDir("fonts")
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				ext := strings.ToLower(filepath.Ext(entry.Name()))
				if ext == ".ttf" || ext == ".ttc" {
					return filepath.Join("fonts", entry.Name())
				}
			}
		}
	}

	var paths []string
	switch runtime.GOOS {
	case "windows":
		paths = []string{"C:\\Windows\\Fonts\\arial.ttf"}
	case "darwin":
		paths = []string{"/System/Library/Fonts/Helvetica.ttc"}
	default:
		paths = []string{
			"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
			"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

type SoundResource struct {
	Data      []byte
	Spec      sdl.AudioSpec
	Frequency float64
}

// DurationMS assumes 16-bit samples.
func (s *SoundResource) DurationMS() uint64 {
	frameBytes := uint64(s.Spec.Channels) * 2
	if frameBytes == 0 || s.Spec.Freq <= 0 {
		return 0
	}
	return uint64(len(s.Data)) / frameBytes * 1000 / uint64(s.Spec.Freq)
}

// ToneCache keeps one synthesized tone per frequency, keyed to 0.01 Hz.
// The reference tone is rendered once and reused on every trial.
type ToneCache struct {
	durMS      uint64
	sampleRate int
	amplitude  float64
	rampMS     uint64
	entries    map[string]*SoundResource
}

func NewToneCache(cfg *Config) *ToneCache {
	return &ToneCache{
		durMS:      cfg.ToneMS,
		sampleRate: cfg.SampleRate,
		amplitude:  cfg.Amplitude,
		rampMS:     cfg.RampMS,
		entries:    make(map[string]*SoundResource),
	}
}

func (c *ToneCache) Tone(freqHz float64) (*SoundResource, error) {
	key := fmt.Sprintf("%.2f", freqHz)
	if snd, ok := c.entries[key]; ok {
		return snd, nil
	}
	snd, err := SynthesizeTone(freqHz, c.durMS, c.sampleRate, c.amplitude, c.rampMS)
	if err != nil {
		return nil, err
	}
	c.entries[key] = snd
	return snd, nil
}

func (c *ToneCache) Len() int { return len(c.entries) }

type TextTexture struct {
	Texture *sdl.Texture
	W, H    float32
}

// TextCache renders each prompt line once.
type TextCache struct {
	renderer *sdl.Renderer
	font     *ttf.Font
	color    sdl.Color
	entries  map[string]*TextTexture
}

func NewTextCache(renderer *sdl.Renderer, font *ttf.Font, color sdl.Color) *TextCache {
	return &TextCache{
		renderer: renderer,
		font:     font,
		color:    color,
		entries:  make(map[string]*TextTexture),
	}
}

func (c *TextCache) Get(line string) *TextTexture {
	if entry, ok := c.entries[line]; ok {
		return entry
	}

	entry := &TextTexture{}
	if c.font != nil && line != "" {
		surf, err := c.font.RenderTextBlended(line, c.color)
		if err != nil || surf == nil {
			fmt.Printf("Failed to render text %q: %v\n", line, err)
		} else {
			tex, err := c.renderer.CreateTextureFromSurface(surf)
			if err == nil {
				entry.Texture = tex
				entry.W = float32(surf.W)
				entry.H = float32(surf.H)
			}
			surf.Destroy()
		}
	}

	c.entries[line] = entry
	return entry
}

func (c *TextCache) Destroy() {
	for _, entry := range c.entries {
		if entry.Texture != nil {
			entry.Texture.Destroy()
		}
	}
}
