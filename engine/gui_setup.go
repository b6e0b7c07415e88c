package engine

import (
	"fmt"
	"strconv"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/Zyko0/go-sdl3/ttf"

	"pitchstair/staircase"
)

type resOption struct {
	W, H  int
	Label string
}

var resOptions = []resOption{
	{800, 600, "800x600 (SVGA)"},
	{1024, 768, "1024x768 (XGA)"},
	{1366, 1024, "1366x1024 (SXGA-)"},
	{1920, 1080, "1920x1080 (FHD)"},
	{2560, 1440, "2560x1440 (QHD)"},
	{3840, 2160, "3840x2160 (4K UHD)"},
}

var (
	black = sdl.Color{R: 0, G: 0, B: 0, A: 255}
	white = sdl.Color{R: 255, G: 255, B: 255, A: 255}
)

type setupForm struct {
	renderer *sdl.Renderer
	font     *ttf.Font

	fields      [3]string // participant, output file, base frequency
	focus       int
	mode        staircase.Mode
	selectedRes int
	fixation    bool
	fullscreen  bool
}

func inRect(x, y float32, r sdl.FRect) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func fieldRect(i int) sdl.FRect { return sdl.FRect{X: 50, Y: float32(50 + i*70), W: 650, H: 30} }
func browseRect() sdl.FRect { return sdl.FRect{X: 710, Y: 120, W: 70, H: 30} }
func modeRect(i int) sdl.FRect { return sdl.FRect{X: 50, Y: float32(290 + i*40), W: 250, H: 30} }
func resRect(i int) sdl.FRect { return sdl.FRect{X: 400, Y: float32(290 + i*40), W: 300, H: 30} }
func fixationRect() sdl.FRect { return sdl.FRect{X: 50, Y: 420, W: 250, H: 30} }
func fullscreenRect() sdl.FRect { return sdl.FRect{X: 50, Y: 470, W: 250, H: 30} }
func startRect() sdl.FRect { return sdl.FRect{X: 350, Y: 650, W: 100, H: 40} }

func (f *setupForm) text(s string, x, y float32, color sdl.Color) {
	if s == "" {
		return
	}
	surf, err := f.font.RenderTextBlended(s, color)
	if err != nil || surf == nil {
		return
	}
	tex, err := f.renderer.CreateTextureFromSurface(surf)
	if err == nil {
		r := sdl.FRect{X: x, Y: y, W: float32(surf.W), H: float32(surf.H)}
		f.renderer.RenderTexture(tex, nil, &r)
		tex.Destroy()
	}
	surf.Destroy()
}

func (f *setupForm) checkbox(r sdl.FRect, checked bool, label string) {
	box := sdl.FRect{X: r.X, Y: r.Y, W: 20, H: 20}
	f.renderer.SetDrawColor(255, 255, 255, 255)
	f.renderer.RenderFillRect(&box)
	f.renderer.SetDrawColor(0, 0, 0, 255)
	f.renderer.RenderRect(&box)
	if checked {
		mark := sdl.FRect{X: r.X + 4, Y: r.Y + 4, W: 12, H: 12}
		f.renderer.SetDrawColor(0, 150, 0, 255)
		f.renderer.RenderFillRect(&mark)
	}
	f.text(label, r.X+30, r.Y, black)
}

func (f *setupForm) draw() {
	r := f.renderer
	r.SetDrawColor(240, 240, 240, 255)
	r.Clear()

	labels := []string{"Participant ID:", "Output results CSV:", "Reference frequency (Hz):"}
	for i, label := range labels {
		f.text(label, 50, float32(20+i*70), black)

		box := fieldRect(i)
		r.SetDrawColor(255, 255, 255, 255)
		r.RenderFillRect(&box)
		if f.focus == i {
			r.SetDrawColor(0, 120, 255, 255)
		} else {
			r.SetDrawColor(180, 180, 180, 255)
		}
		r.RenderRect(&box)
		f.text(f.fields[i], box.X+5, box.Y+5, black)
	}

	btn := browseRect()
	r.SetDrawColor(200, 200, 200, 255)
	r.RenderFillRect(&btn)
	r.SetDrawColor(0, 0, 0, 255)
	r.RenderRect(&btn)
	f.text("...", btn.X+25, btn.Y+5, black)

	f.text("Staircase mode:", 50, 255, black)
	f.checkbox(modeRect(0), f.mode == staircase.ModeUpper, "Upper (approach from above)")
	f.checkbox(modeRect(1), f.mode == staircase.ModeLower, "Lower (approach from below)")

	f.text("Resolution:", 400, 255, black)
	for i, opt := range resOptions {
		f.checkbox(resRect(i), f.selectedRes == i, opt.Label)
	}

	f.checkbox(fixationRect(), f.fixation, "Show fixation cross")
	f.checkbox(fullscreenRect(), f.fullscreen, "Fullscreen mode")

	start := startRect()
	r.SetDrawColor(0, 150, 0, 255)
	r.RenderFillRect(&start)
	f.text("START", start.X+25, start.Y+10, white)

	r.Present()
}

// apply copies the form into cfg. It fails when the reference frequency
// does not parse.
func (f *setupForm) apply(cfg *Config) error {
	base, err := strconv.ParseFloat(f.fields[2], 64)
	if err != nil || base <= 0 {
		return fmt.Errorf("invalid reference frequency %q", f.fields[2])
	}
	cfg.Participant = f.fields[0]
	cfg.OutputFile = f.fields[1]
	cfg.BaseFreq = base
	cfg.Mode = f.mode
	cfg.ScreenWidth = resOptions[f.selectedRes].W
	cfg.ScreenHeight = resOptions[f.selectedRes].H
	cfg.UseFixation = f.fixation
	cfg.Fullscreen = f.fullscreen
	return nil
}

// RunGuiSetup lets the operator edit the run settings. It returns false when
// the window is closed without starting.
func RunGuiSetup(cfg *Config) bool {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		fmt.Printf("SDL_Init Error: %v\n", err)
		return false
	}
	defer sdl.Quit()

	if err := ttf.Init(); err != nil {
		fmt.Printf("TTF_Init Error: %v\n", err)
		return false
	}
	defer ttf.Quit()

	window, renderer, err := sdl.CreateWindowAndRenderer("pitchstair setup", 800, 750, 0)
	if err != nil {
		fmt.Printf("CreateWindowAndRenderer Error: %v\n", err)
		return false
	}
	defer window.Destroy()
	defer renderer.Destroy()

	fontPath := GetDefaultFontPath()
	if fontPath == "" {
		fmt.Println("Error: No default font found for GUI setup")
		return false
	}
	guiFont, err := ttf.OpenFont(fontPath, 18)
	if err != nil {
		fmt.Printf("Failed to load GUI font: %v\n", err)
		return false
	}
	defer guiFont.Close()

	form := &setupForm{
		renderer:    renderer,
		font:        guiFont,
		fields:      [3]string{cfg.Participant, cfg.OutputFile, strconv.FormatFloat(cfg.BaseFreq, 'f', -1, 64)},
		focus:       0,
		mode:        cfg.Mode,
		selectedRes: 3,
		fixation:    cfg.UseFixation,
		fullscreen:  cfg.Fullscreen,
	}
	for i, res := range resOptions {
		if cfg.ScreenWidth == res.W && cfg.ScreenHeight == res.H {
			form.selectedRes = i
			break
		}
	}

	window.StartTextInput()
	defer window.StopTextInput()

	for {
		var e sdl.Event
		for sdl.PollEvent(&e) {
			switch e.Type {
			case sdl.EVENT_QUIT:
				return false
			case sdl.EVENT_MOUSE_BUTTON_DOWN:
				me := e.MouseButtonEvent()
				mx, my := me.X, me.Y

				form.focus = -1
				for i := range form.fields {
					if inRect(mx, my, fieldRect(i)) {
						form.focus = i
					}
				}
				if inRect(mx, my, browseRect()) {
					cb := sdl.NewDialogFileCallback(func(fileList []string, filter int32) {
						if len(fileList) > 0 {
							form.fields[1] = fileList[0]
						}
					})
					sdl.ShowSaveFileDialog(cb, window, nil, "results.csv")
				}
				for i := range 2 {
					if inRect(mx, my, modeRect(i)) {
						form.mode = staircase.Mode(i)
					}
				}
				for i := range resOptions {
					if inRect(mx, my, resRect(i)) {
						form.selectedRes = i
					}
				}
				if inRect(mx, my, fixationRect()) {
					form.fixation = !form.fixation
				}
				if inRect(mx, my, fullscreenRect()) {
					form.fullscreen = !form.fullscreen
				}

				if inRect(mx, my, startRect()) && form.fields[1] != "" {
					if err := form.apply(cfg); err != nil {
						fmt.Println(err)
						break
					}
					if err := cfg.SaveCache(CacheFile); err != nil {
						fmt.Printf("Failed to save settings: %v\n", err)
					}
					return true
				}
			case sdl.EVENT_TEXT_INPUT:
				if form.focus >= 0 {
					form.fields[form.focus] += e.TextInputEvent().Text
				}
			case sdl.EVENT_KEY_DOWN:
				if form.focus >= 0 && e.KeyboardEvent().Key == sdl.K_BACKSPACE {
					field := &form.fields[form.focus]
					if len(*field) > 0 {
						*field = (*field)[:len(*field)-1]
					}
				}
			}
		}

		form.draw()
		sdl.Delay(10)
	}
}
