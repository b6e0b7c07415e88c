package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/Zyko0/go-sdl3/bin/binsdl"
	"github.com/Zyko0/go-sdl3/bin/binttf"
	"github.com/alecthomas/kong"

	"pitchstair/engine"
	"pitchstair/internal/cli"
	"pitchstair/staircase"
)

var version = "0.1.0"

// CLI defines the command-line interface
type CLI struct {
	Version bool `short:"v" help:"Show version information"`

	Base      float64 `group:"Staircase" default:"2000" help:"Reference frequency in Hz"`
	Start     float64 `group:"Staircase" default:"0" help:"Starting test frequency in Hz (0 picks one from the mode)"`
	Mode      string  `group:"Staircase" enum:"upper,lower" default:"lower" help:"Approach the reference from above (upper) or below (lower)"`
	Step      float64 `group:"Staircase" default:"0.1" help:"Frequency step as a fraction of the current frequency"`
	Window    int     `group:"Staircase" default:"8" help:"Number of recent responses checked by the stopping rule"`
	MinDelta  float64 `group:"Staircase" name:"min-delta" default:"0" help:"Keep correct steps at least this far from the reference, in Hz (0 = off)"`
	MinFreq   float64 `group:"Staircase" name:"min-freq" default:"20" help:"Lowest test frequency in Hz"`
	MaxFreq   float64 `group:"Staircase" name:"max-freq" default:"20000" help:"Highest test frequency in Hz"`
	MaxTrials int     `group:"Staircase" name:"max-trials" default:"0" help:"Stop after this many trials (0 = no limit)"`

	ToneMS     uint64  `group:"Stimuli" name:"tone-ms" default:"2000" help:"Tone duration in ms"`
	ISIMS      uint64  `group:"Stimuli" name:"isi-ms" default:"0" help:"Silence between reference and test tone in ms"`
	ResponseMS uint64  `group:"Stimuli" name:"response-ms" default:"0" help:"Response window in ms (0 = wait for a key)"`
	SampleRate int     `group:"Stimuli" name:"sample-rate" default:"48000" help:"Audio sample rate in Hz"`
	Amplitude  float64 `group:"Stimuli" default:"0.5" help:"Tone peak amplitude (0-1]"`
	RampMS     uint64  `group:"Stimuli" name:"ramp-ms" default:"10" help:"Onset/offset ramp in ms"`

	Output      string `short:"o" group:"Output" default:"results.csv" help:"Output CSV file"`
	Participant string `short:"p" group:"Output" default:"anonymous" help:"Participant ID added to the output name"`
	Script      string `group:"Output" type:"existingfile" help:"Replay key presses from a CSV script instead of opening a window"`
	DLP         string `group:"Output" help:"DLP-IO8-G trigger device"`

	Font          string `group:"Display" help:"TTF font file"`
	FontSize      int    `group:"Display" name:"font-size" default:"24" help:"Font size"`
	Width         int    `group:"Display" default:"1920" help:"Screen width"`
	Height        int    `group:"Display" default:"1080" help:"Screen height"`
	Fullscreen    bool   `group:"Display" help:"Enable fullscreen"`
	NoVSync       bool   `group:"Display" name:"no-vsync" help:"Disable VSync"`
	NoFixation    bool   `group:"Display" name:"no-fixation" help:"Disable fixation cross"`
	BGColor       string `group:"Display" name:"bg-color" default:"64,64,64,255" help:"Background color (R,G,B,A)"`
	TextColor     string `group:"Display" name:"text-color" default:"255,255,255,255" help:"Text color (R,G,B,A)"`
	FixationColor string `group:"Display" name:"fixation-color" default:"255,255,255,255" help:"Fixation color (R,G,B,A)"`
}

func init() {
	// SDL3 requires the main thread for some operations.
	runtime.LockOSThread()
}

func (c *CLI) config() (*engine.Config, error) {
	mode, err := staircase.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}

	cfg := engine.DefaultConfig()
	cfg.BaseFreq = c.Base
	cfg.StartFreq = c.Start
	cfg.Mode = mode
	cfg.Step = c.Step
	cfg.Window = c.Window
	cfg.MinDelta = c.MinDelta
	cfg.MinFreq = c.MinFreq
	cfg.MaxFreq = c.MaxFreq
	cfg.MaxTrials = c.MaxTrials
	cfg.ToneMS = c.ToneMS
	cfg.ISIMS = c.ISIMS
	cfg.ResponseMS = c.ResponseMS
	cfg.SampleRate = c.SampleRate
	cfg.Amplitude = c.Amplitude
	cfg.RampMS = c.RampMS
	cfg.OutputFile = c.Output
	cfg.Participant = c.Participant
	cfg.ScriptFile = c.Script
	cfg.DLPDevice = c.DLP
	cfg.FontFile = c.Font
	cfg.FontSize = c.FontSize
	cfg.ScreenWidth = c.Width
	cfg.ScreenHeight = c.Height
	cfg.Fullscreen = c.Fullscreen
	cfg.VSync = !c.NoVSync
	cfg.UseFixation = !c.NoFixation
	cfg.BGColor = engine.ParseColor(c.BGColor)
	cfg.TextColor = engine.ParseColor(c.TextColor)
	cfg.FixationColor = engine.ParseColor(c.FixationColor)
	return cfg, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run parses args, executes one staircase run and returns the exit code.
func run(args []string) int {
	cliArgs := &CLI{}
	parser, err := kong.New(cliArgs,
		kong.Name("pitchstair"),
		kong.Description("Adaptive pitch discrimination staircase"),
		kong.Help(cli.StyledHelpPrinter("Adaptive pitch discrimination staircase")),
	)
	if err != nil {
		cli.PrintError(err.Error())
		return 1
	}
	if _, err := parser.Parse(args); err != nil {
		cli.PrintError(err.Error())
		fmt.Fprintln(os.Stderr, "Run with --help for usage.")
		return 1
	}

	if cliArgs.Version {
		cli.PrintVersion(version)
		return 0
	}

	cfg, err := cliArgs.config()
	if err != nil {
		cli.PrintError(err.Error())
		return 1
	}

	if cfg.ScriptFile == "" {
		defer binsdl.Load().Unload()
		defer binttf.Load().Unload()
	}

	summary, err := engine.Run(cfg)
	if err != nil {
		cli.PrintError(err.Error())
		return 1
	}
	fmt.Print(cli.FormatSummary("Run complete", summaryFields(cfg, summary)))
	return 0
}

func summaryFields(cfg *engine.Config, s engine.Summary) []cli.Field {
	status := "complete"
	if s.Aborted {
		status = "aborted"
	}
	fields := []cli.Field{
		{Key: "Participant", Value: cfg.Participant},
		{Key: "Mode", Value: cfg.Mode.String()},
		{Key: "Status", Value: status},
		{Key: "Trials", Value: fmt.Sprintf("%d (%d answered)", s.Trials, s.Responses)},
		{Key: "Final frequency", Value: fmt.Sprintf("%.1f Hz", s.FinalHz)},
		{Key: "Threshold", Value: fmt.Sprintf("%.1f Hz from %.0f Hz", s.ThresholdHz, cfg.BaseFreq)},
	}
	if s.OutputPath != "" {
		fields = append(fields, cli.Field{Key: "Results", Value: s.OutputPath})
	}
	return fields
}
