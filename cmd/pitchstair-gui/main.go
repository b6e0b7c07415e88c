package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/Zyko0/go-sdl3/bin/binsdl"
	"github.com/Zyko0/go-sdl3/bin/binttf"

	"pitchstair/engine"
	"pitchstair/internal/cli"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	defer binsdl.Load().Unload()
	defer binttf.Load().Unload()

	cfg := engine.DefaultConfig()
	if err := cfg.LoadCache(engine.CacheFile); err != nil {
		cli.PrintError(fmt.Sprintf("reading %s: %v", engine.CacheFile, err))
	}

	if !engine.RunGuiSetup(cfg) {
		return 0
	}

	summary, err := engine.Run(cfg)
	if err != nil {
		cli.PrintError(err.Error())
		return 1
	}
	fmt.Printf("Threshold %.1f Hz after %d trials\n", summary.ThresholdHz, summary.Trials)
	return 0
}
