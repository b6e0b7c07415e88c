package engine

import (
	"fmt"
	"time"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"
)

// Run executes one staircase run and saves its trial log. With a script
// configured it runs headless; otherwise it opens the SDL window and audio
// device. The SDL libraries must already be loaded.
func Run(cfg *Config) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	if cfg.ScriptFile != "" {
		return RunScripted(cfg)
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return Summary{}, fmt.Errorf("SDL_Init: %w", err)
	}
	defer sdl.Quit()

	if err := ttf.Init(); err != nil {
		return Summary{}, fmt.Errorf("TTF_Init: %w", err)
	}
	defer ttf.Quit()

	windowFlags := sdl.WINDOW_RESIZABLE
	if cfg.Fullscreen {
		windowFlags |= sdl.WINDOW_FULLSCREEN
	}

	window, renderer, err := sdl.CreateWindowAndRenderer("pitchstair", cfg.ScreenWidth, cfg.ScreenHeight, windowFlags)
	if err != nil {
		return Summary{}, fmt.Errorf("CreateWindowAndRenderer: %w", err)
	}
	defer window.Destroy()
	defer renderer.Destroy()

	if cfg.VSync {
		renderer.SetVSync(1)
	} else {
		renderer.SetVSync(0)
	}

	fontPath := cfg.FontFile
	if fontPath == "" {
		fontPath = GetDefaultFontPath()
	}
	var font *ttf.Font
	if fontPath != "" {
		font, err = ttf.OpenFont(fontPath, float32(cfg.FontSize))
		if err != nil {
			fmt.Printf("Failed to load font: %s (%v)\n", fontPath, err)
		}
	}
	if font == nil {
		fmt.Println("No font available: prompts will not be shown")
	}
	defer func() {
		if font != nil {
			font.Close()
		}
	}()

	text := NewTextCache(renderer, font, cfg.TextColor)
	defer text.Destroy()

	mixer := NewAudioMixer()
	spec := &sdl.AudioSpec{Format: sdl.AUDIO_S16, Channels: toneChannels, Freq: int32(cfg.SampleRate)}
	cb := sdl.NewAudioStreamCallback(mixer.Callback)
	stream := sdl.AUDIO_DEVICE_DEFAULT_PLAYBACK.OpenAudioDeviceStream(spec, cb)
	if stream == nil {
		return Summary{}, fmt.Errorf("failed to open audio stream")
	}
	defer stream.Destroy()
	stream.ResumeDevice()

	var trig Trigger
	if cfg.DLPDevice != "" {
		dlp, err := NewDLPIO8G(cfg.DLPDevice, 9600)
		if err != nil {
			fmt.Printf("Failed to initialize DLP device: %v\n", err)
		} else {
			defer dlp.Close()
			trig = dlp
		}
	}

	return runSession(cfg, newSDLPresenter(cfg, renderer, mixer, text), trig)
}

// RunScripted replays cfg.ScriptFile without opening any device.
func RunScripted(cfg *Config) (Summary, error) {
	script, err := LoadScript(cfg.ScriptFile)
	if err != nil {
		return Summary{}, err
	}
	return runSession(cfg, NewScriptedPresenter(script), nil)
}

func runSession(cfg *Config, p Presenter, trig Trigger) (Summary, error) {
	s, err := NewSession(cfg, p, trig)
	if err != nil {
		return Summary{}, err
	}

	summary, runErr := s.Run()

	outputName := OutputName(cfg, time.Now())
	if err := s.Log.Save(outputName); err != nil {
		fmt.Printf("\nFailed to save trial log: %v\n", err)
	} else {
		summary.OutputPath = outputName
		fmt.Printf("\nResults saved to %s\n", outputName)
	}
	return summary, runErr
}
