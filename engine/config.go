package engine

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Zyko0/go-sdl3/sdl"

	"pitchstair/staircase"
)

type Config struct {
	// Staircase
	BaseFreq  float64
	StartFreq float64 // 0 picks staircase.DefaultStart
	Mode      staircase.Mode
	Step      float64
	Window    int
	MinDelta  float64
	MinFreq   float64
	MaxFreq   float64
	MaxTrials int

	// Stimuli
	ToneMS     uint64
	ISIMS      uint64
	ResponseMS uint64 // 0 waits for a key indefinitely
	SampleRate int
	Amplitude  float64
	RampMS     uint64

	// I/O
	OutputFile  string
	Participant string
	ScriptFile  string
	FontFile    string
	DLPDevice   string
	FontSize    int

	// Display
	ScreenWidth   int
	ScreenHeight  int
	UseFixation   bool
	Fullscreen    bool
	VSync         bool
	BGColor       sdl.Color
	TextColor     sdl.Color
	FixationColor sdl.Color
}

func DefaultConfig() *Config {
	return &Config{
		BaseFreq:      2000,
		Mode:          staircase.ModeLower,
		Step:          staircase.DefaultStep,
		Window:        staircase.DefaultWindow,
		MinFreq:       staircase.DefaultMinFrequency,
		MaxFreq:       staircase.DefaultMaxFrequency,
		ToneMS:        2000,
		ISIMS:         0,
		SampleRate:    48000,
		Amplitude:     0.5,
		RampMS:        10,
		OutputFile:    "results.csv",
		Participant:   "anonymous",
		FontSize:      24,
		ScreenWidth:   1920,
		ScreenHeight:  1080,
		UseFixation:   true,
		VSync:         true,
		BGColor:       sdl.Color{R: 64, G: 64, B: 64, A: 255},
		TextColor:     sdl.Color{R: 255, G: 255, B: 255, A: 255},
		FixationColor: sdl.Color{R: 255, G: 255, B: 255, A: 255},
	}
}

// Staircase projects the run parameters onto the controller config.
func (cfg *Config) Staircase() staircase.Config {
	return staircase.Config{
		BaseFrequency:  cfg.BaseFreq,
		StartFrequency: cfg.StartFreq,
		Mode:           cfg.Mode,
		Step:           cfg.Step,
		Window:         cfg.Window,
		MinDelta:       cfg.MinDelta,
		MinFrequency:   cfg.MinFreq,
		MaxFrequency:   cfg.MaxFreq,
		MaxTrials:      cfg.MaxTrials,
	}
}

// Validate checks the stimulus parameters. Staircase parameters are checked
// by staircase.New.
func (cfg *Config) Validate() error {
	maxFreq := cfg.Staircase().WithDefaults().MaxFrequency
	switch {
	case cfg.ToneMS == 0:
		return fmt.Errorf("tone duration must be > 0")
	case cfg.SampleRate <= 0:
		return fmt.Errorf("sample rate must be > 0: %d", cfg.SampleRate)
	case cfg.Amplitude <= 0 || cfg.Amplitude > 1:
		return fmt.Errorf("amplitude must be in (0, 1]: %g", cfg.Amplitude)
	case 2*cfg.RampMS > cfg.ToneMS:
		return fmt.Errorf("ramps (%d ms each) longer than the tone (%d ms)", cfg.RampMS, cfg.ToneMS)
	case maxFreq >= float64(cfg.SampleRate)/2:
		return fmt.Errorf("max frequency %g Hz at or above Nyquist for %d Hz", maxFreq, cfg.SampleRate)
	case cfg.OutputFile == "":
		return fmt.Errorf("output file is required")
	}
	return nil
}

// ParseColor reads "R,G,B" or "R,G,B,A". A missing alpha is opaque.
func ParseColor(s string) sdl.Color {
	var r, g, b, a uint8
	n, _ := fmt.Sscanf(s, "%d,%d,%d,%d", &r, &g, &b, &a)
	if n < 4 {
		a = 255
	}
	return sdl.Color{R: r, G: g, B: b, A: a}
}

// formatColor is the inverse of ParseColor.
func formatColor(c sdl.Color) string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R, c.G, c.B, c.A)
}

const CacheFile = ".pitchstair_cache"

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (cfg *Config) SaveCache(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "participant=%s\n", cfg.Participant)
	fmt.Fprintf(f, "output_file=%s\n", cfg.OutputFile)
	fmt.Fprintf(f, "mode=%s\n", cfg.Mode)
	fmt.Fprintf(f, "base_freq=%g\n", cfg.BaseFreq)
	fmt.Fprintf(f, "screen_w=%d\n", cfg.ScreenWidth)
	fmt.Fprintf(f, "screen_h=%d\n", cfg.ScreenHeight)
	fmt.Fprintf(f, "use_fixation=%s\n", boolFlag(cfg.UseFixation))
	fmt.Fprintf(f, "fullscreen=%s\n", boolFlag(cfg.Fullscreen))
	fmt.Fprintf(f, "bg_color=%s\n", formatColor(cfg.BGColor))
	fmt.Fprintf(f, "text_color=%s\n", formatColor(cfg.TextColor))
	fmt.Fprintf(f, "fixation_color=%s\n", formatColor(cfg.FixationColor))
	return f.Close()
}

// LoadCache applies a cache written by SaveCache. A missing file is not an
// error; unknown keys and malformed values are skipped.
func (cfg *Config) LoadCache(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)

		switch key {
		case "participant":
			cfg.Participant = val
		case "output_file":
			cfg.OutputFile = val
		case "mode":
			if m, err := staircase.ParseMode(val); err == nil {
				cfg.Mode = m
			}
		case "base_freq":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				cfg.BaseFreq = f
			}
		case "screen_w":
			fmt.Sscanf(val, "%d", &cfg.ScreenWidth)
		case "screen_h":
			fmt.Sscanf(val, "%d", &cfg.ScreenHeight)
		case "use_fixation":
			cfg.UseFixation = val != "0"
		case "fullscreen":
			cfg.Fullscreen = val != "0"
		case "bg_color":
			cfg.BGColor = ParseColor(val)
		case "text_color":
			cfg.TextColor = ParseColor(val)
		case "fixation_color":
			cfg.FixationColor = ParseColor(val)
		}
	}
	return nil
}
