package main

import (
	"os"
	"path/filepath"
	"testing"

	"pitchstair/engine"
	"pitchstair/staircase"
)

func TestCLIConfig(t *testing.T) {
	c := &CLI{
		Base: 1000, Mode: "upper", Step: 0.05, Window: 6,
		ToneMS: 500, SampleRate: 44100, Amplitude: 0.3,
		Output: "out.csv", Participant: "P1",
		BGColor: "1,2,3", NoVSync: true,
	}
	cfg, err := c.config()
	if err != nil {
		t.Fatalf("config() error = %v", err)
	}
	if cfg.BaseFreq != 1000 || cfg.Mode != staircase.ModeUpper || cfg.Step != 0.05 || cfg.Window != 6 {
		t.Errorf("staircase flags not applied: %+v", cfg)
	}
	if cfg.VSync || !cfg.UseFixation || cfg.BGColor.B != 3 || cfg.BGColor.A != 255 {
		t.Errorf("display flags not applied: %+v", cfg)
	}

	c.Mode = "sideways"
	if _, err := c.config(); err == nil {
		t.Error("config() accepted an unknown mode")
	}
}

func TestSummaryFields(t *testing.T) {
	cfg := engine.DefaultConfig()
	fields := summaryFields(cfg, engine.Summary{Trials: 9, Responses: 8, Aborted: true, OutputPath: "r.csv"})

	got := map[string]string{}
	for _, f := range fields {
		got[f.Key] = f.Value
	}
	if got["Status"] != "aborted" || got["Trials"] != "9 (8 answered)" || got["Results"] != "r.csv" {
		t.Errorf("fields = %v", got)
	}

	fields = summaryFields(cfg, engine.Summary{})
	for _, f := range fields {
		if f.Key == "Results" {
			t.Error("Results shown without an output file")
		}
	}
}

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "keys.csv")
	if err := os.WriteFile(script, []byte("1\n2\n1\n2\n1\n2\n1\n2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "results.csv")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"version", []string{"--version"}, 0},
		{"unknown mode", []string{"--mode", "sideways"}, 1},
		{"missing script", []string{"--script", filepath.Join(dir, "none.csv")}, 1},
		{"bad amplitude", []string{"--script", script, "--amplitude", "2", "-o", out}, 1},
		{"scripted run", []string{"--script", script, "--tone-ms", "100", "-o", out, "-p", "P9"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%q) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}

	saved, _ := filepath.Glob(filepath.Join(dir, "results_P9_*.csv"))
	if len(saved) != 1 {
		t.Errorf("saved results = %v, want one file", saved)
	}
}
