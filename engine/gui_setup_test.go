package engine

import (
	"testing"

	"pitchstair/staircase"
)

func TestSetupFormApply(t *testing.T) {
	form := &setupForm{
		fields:      [3]string{"P02", "runs/p02.csv", "1500.5"},
		mode:        staircase.ModeUpper,
		selectedRes: 1,
		fixation:    false,
		fullscreen:  true,
	}
	cfg := DefaultConfig()
	if err := form.apply(cfg); err != nil {
		t.Fatalf("apply() error = %v", err)
	}
	if cfg.Participant != "P02" || cfg.OutputFile != "runs/p02.csv" || cfg.BaseFreq != 1500.5 {
		t.Errorf("text fields not applied: %+v", cfg)
	}
	if cfg.Mode != staircase.ModeUpper || cfg.ScreenWidth != 1024 || cfg.ScreenHeight != 768 || cfg.UseFixation || !cfg.Fullscreen {
		t.Errorf("options not applied: %+v", cfg)
	}
}

func TestSetupFormApplyBadFrequency(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "0"} {
		form := &setupForm{fields: [3]string{"P", "out.csv", in}}
		cfg := DefaultConfig()
		if err := form.apply(cfg); err == nil {
			t.Errorf("apply() accepted base frequency %q", in)
		}
		if cfg.Participant != "anonymous" {
			t.Errorf("apply() with %q changed the config", in)
		}
	}
}
