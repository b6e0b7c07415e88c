package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zyko0/go-sdl3/sdl"
)

const (
	CrossSize   = 20
	lineSpacing = 12
)

type sdlPresenter struct {
	cfg      *Config
	renderer *sdl.Renderer
	mixer    *AudioMixer
	text     *TextCache
	start    uint64
}

func newSDLPresenter(cfg *Config, renderer *sdl.Renderer, mixer *AudioMixer, text *TextCache) *sdlPresenter {
	return &sdlPresenter{
		cfg:      cfg,
		renderer: renderer,
		mixer:    mixer,
		text:     text,
		start:    sdl.Ticks(),
	}
}

func (p *sdlPresenter) Now() uint64 {
	return sdl.Ticks() - p.start
}

func (p *sdlPresenter) clear() {
	bg := p.cfg.BGColor
	p.renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	p.renderer.Clear()
}

func (p *sdlPresenter) drawLines(text string) {
	lines := strings.Split(text, "\n")
	entries := make([]*TextTexture, len(lines))
	var total float32
	for i, line := range lines {
		entries[i] = p.text.Get(line)
		total += entries[i].H + lineSpacing
	}

	y := (float32(p.cfg.ScreenHeight) - total) / 2
	for _, e := range entries {
		if e.Texture != nil {
			dst := sdl.FRect{X: (float32(p.cfg.ScreenWidth) - e.W) / 2, Y: y, W: e.W, H: e.H}
			p.renderer.RenderTexture(e.Texture, nil, &dst)
		}
		y += e.H + lineSpacing
	}
}

func (p *sdlPresenter) drawFixation() {
	if !p.cfg.UseFixation {
		return
	}
	c := p.cfg.FixationColor
	p.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	mx, my := float32(p.cfg.ScreenWidth)/2, float32(p.cfg.ScreenHeight)/2
	p.renderer.RenderLine(mx-CrossSize, my, mx+CrossSize, my)
	p.renderer.RenderLine(mx, my-CrossSize, mx, my+CrossSize)
}

// poll drains pending events and returns the names of the keys pressed.
func (p *sdlPresenter) poll() ([]string, error) {
	var keys []string
	for {
		var ev sdl.Event
		if !sdl.PollEvent(&ev) {
			break
		}
		switch ev.Type {
		case sdl.EVENT_QUIT:
			return nil, ErrAborted
		case sdl.EVENT_KEY_DOWN:
			key := ev.KeyboardEvent().Key
			if key == sdl.K_ESCAPE {
				return nil, ErrAborted
			}
			keys = append(keys, key.KeyName())
		}
	}
	return keys, nil
}

func matchKey(pressed, allowed []string) (string, bool) {
	for _, k := range pressed {
		if len(allowed) == 0 {
			return k, true
		}
		for _, a := range allowed {
			if strings.EqualFold(k, a) {
				return a, true
			}
		}
	}
	return "", false
}

func (p *sdlPresenter) ShowText(text string) error {
	p.clear()
	p.drawLines(text)
	p.renderer.Present()
	return nil
}

func (p *sdlPresenter) WaitForKey(keys ...string) (string, error) {
	for {
		var ev sdl.Event
		if err := sdl.WaitEvent(&ev); err != nil {
			return "", err
		}
		switch ev.Type {
		case sdl.EVENT_QUIT:
			return "", ErrAborted
		case sdl.EVENT_KEY_DOWN:
			key := ev.KeyboardEvent().Key
			if key == sdl.K_ESCAPE {
				return "", ErrAborted
			}
			if k, ok := matchKey([]string{key.KeyName()}, keys); ok {
				return k, nil
			}
		}
	}
}

func (p *sdlPresenter) PlayTone(snd *SoundResource) error {
	p.clear()
	p.drawFixation()
	p.renderer.Present()

	onset := p.Now()
	if err := p.mixer.Start(snd); err != nil {
		return fmt.Errorf("play tone: %w", err)
	}
	end := onset + snd.DurationMS()
	for p.mixer.Busy() || p.Now() < end {
		if _, err := p.poll(); err != nil {
			p.mixer.Stop()
			return err
		}
		sdl.Delay(1)
	}
	return nil
}

func (p *sdlPresenter) Pause(d time.Duration) error {
	end := p.Now() + uint64(d.Milliseconds())
	for p.Now() < end {
		if _, err := p.poll(); err != nil {
			return err
		}
		sdl.Delay(1)
	}
	return nil
}

func (p *sdlPresenter) CollectResponse(prompt string, keys []string, timeout time.Duration) (Response, error) {
	// Keys pressed while the tones played do not count.
	if _, err := p.poll(); err != nil {
		return Response{}, err
	}
	if err := p.ShowText(prompt); err != nil {
		return Response{}, err
	}

	onset := p.Now()
	limit := uint64(timeout.Milliseconds())
	for {
		pressed, err := p.poll()
		if err != nil {
			return Response{}, err
		}
		if k, ok := matchKey(pressed, keys); ok {
			return Response{Key: k, RTMS: p.Now() - onset}, nil
		}
		if limit > 0 && p.Now()-onset >= limit {
			return Response{}, nil
		}
		sdl.Delay(1)
	}
}
