package engine

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pitchstair/staircase"
)

func TestTrialLogSave(t *testing.T) {
	log := &TrialLog{}
	log.Add(TrialRecord{
		Trial: 1, Mode: staircase.ModeLower, BaseHz: 2000, TestHz: 1000,
		RefOnsetMS: 0, TestOnsetMS: 2000, Key: "1", Direction: staircase.Lower,
		Correct: true, NextHz: 1100, Continue: true, RTMS: 640,
	})
	log.Add(TrialRecord{
		Trial: 2, Mode: staircase.ModeLower, BaseHz: 2000, TestHz: 1100,
		RefOnsetMS: 4640, TestOnsetMS: 6640, NextHz: 1100, Continue: true,
	})

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := log.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}

	want := [][]string{
		{"trial", "mode", "base_hz", "test_hz", "ref_onset_ms", "test_onset_ms", "key", "direction", "correct", "next_hz", "continue", "rt_ms"},
		{"1", "lower", "2000.000", "1000.000", "0", "2000", "1", "lower", "1", "1100.000", "1", "640"},
		{"2", "lower", "2000.000", "1100.000", "4640", "6640", "", "", "", "1100.000", "1", "0"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if strings.Join(rows[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestTrialLogSaveBadPath(t *testing.T) {
	log := &TrialLog{}
	if err := log.Save(filepath.Join(t.TempDir(), "missing", "out.csv")); err == nil {
		t.Error("Save() into a missing directory succeeded")
	}
}

func TestOutputName(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		output, participant string
		want                string
	}{
		{"results.csv", "P01", "results_P01_20260102-030405.csv"},
		{"data/run.csv", "jane doe", "data/run_jane_doe_20260102-030405.csv"},
		{"results", "a/b", "results_a_b_20260102-030405.csv"},
		{"results.tsv", "  ", "results_20260102-030405.tsv"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.OutputFile = tt.output
			cfg.Participant = tt.participant
			if got := OutputName(cfg, now); got != tt.want {
				t.Errorf("OutputName() = %q, want %q", got, tt.want)
			}
		})
	}
}
