package engine

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pitchstair/staircase"
)

// Response is what the presenter collected after the test tone. Key is
// empty when the response window expired.
type Response struct {
	Key  string
	RTMS uint64
}

type TrialRecord struct {
	Trial       int
	Mode        staircase.Mode
	BaseHz      float64
	TestHz      float64
	RefOnsetMS  uint64
	TestOnsetMS uint64
	Key         string
	Direction   staircase.Direction // zero when the key did not map
	Correct     bool
	NextHz      float64
	Continue    bool
	RTMS        uint64
}

func (r TrialRecord) Responded() bool {
	return r.Direction != 0
}

type TrialLog struct {
	Records []TrialRecord
}

func (l *TrialLog) Add(r TrialRecord) {
	l.Records = append(l.Records, r)
}

var trialHeader = []string{
	"trial", "mode", "base_hz", "test_hz", "ref_onset_ms", "test_onset_ms",
	"key", "direction", "correct", "next_hz", "continue", "rt_ms",
}

func formatHz(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

func (r TrialRecord) row() []string {
	direction, correct := "", ""
	if r.Responded() {
		direction = r.Direction.String()
		correct = "0"
		if r.Correct {
			correct = "1"
		}
	}
	cont := "0"
	if r.Continue {
		cont = "1"
	}
	return []string{
		strconv.Itoa(r.Trial),
		r.Mode.String(),
		formatHz(r.BaseHz),
		formatHz(r.TestHz),
		strconv.FormatUint(r.RefOnsetMS, 10),
		strconv.FormatUint(r.TestOnsetMS, 10),
		r.Key,
		direction,
		correct,
		formatHz(r.NextHz),
		cont,
		strconv.FormatUint(r.RTMS, 10),
	}
}

func (l *TrialLog) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write(trialHeader)
	for _, r := range l.Records {
		w.Write(r.row())
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// OutputName derives the results file for a run: the configured output
// path with the participant and a timestamp spliced in before the
// extension.
func OutputName(cfg *Config, now time.Time) string {
	ext := filepath.Ext(cfg.OutputFile)
	stem := strings.TrimSuffix(cfg.OutputFile, ext)
	if ext == "" {
		ext = ".csv"
	}
	participant := strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, strings.TrimSpace(cfg.Participant))

	name := stem
	if participant != "" {
		name += "_" + participant
	}
	return name + "_" + now.Format("20060102-150405") + ext
}
