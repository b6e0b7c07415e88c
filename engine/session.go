package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"pitchstair/staircase"
)

// ErrAborted is returned by a Presenter when the participant or operator
// ends the run early.
var ErrAborted = errors.New("run aborted")

const (
	StartText = "On each trial you will hear two tones.\nPress space to start"
	EndText   = "That's it. Thank you!"
	endHold   = 5 * time.Second
)

// Presenter shows prompts, plays tones and reads keys. All calls block
// until done and return ErrAborted when the run is cancelled.
type Presenter interface {
	ShowText(text string) error
	WaitForKey(keys ...string) (string, error)
	PlayTone(snd *SoundResource) error
	Pause(d time.Duration) error
	// CollectResponse shows prompt and waits for one of keys. A zero
	// timeout waits forever; on expiry it returns an empty Response.
	CollectResponse(prompt string, keys []string, timeout time.Duration) (Response, error)
	Now() uint64
}

type Summary struct {
	Trials      int
	Responses   int
	FinalHz     float64
	ThresholdHz float64
	Aborted     bool
	OutputPath  string
}

// Session drives one staircase run: reference tone, test tone, response,
// controller update, until the controller stops.
type Session struct {
	Config    *Config
	Presenter Presenter
	Trigger   Trigger
	Log       *TrialLog
	Out       io.Writer

	ctrl  *staircase.Controller
	keys  KeyMap
	tones *ToneCache
}

// NewSession validates cfg and builds the controller. trig may be nil.
func NewSession(cfg *Config, p Presenter, trig Trigger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctrl, err := staircase.New(cfg.Staircase())
	if err != nil {
		return nil, err
	}
	return &Session{
		Config:    cfg,
		Presenter: p,
		Trigger:   trig,
		Log:       &TrialLog{},
		Out:       os.Stdout,
		ctrl:      ctrl,
		keys:      KeyMapFor(cfg.Mode),
		tones:     NewToneCache(cfg),
	}, nil
}

func (s *Session) Controller() *staircase.Controller { return s.ctrl }

func (s *Session) Run() (Summary, error) {
	ref, err := s.tones.Tone(s.Config.BaseFreq)
	if err != nil {
		return Summary{}, fmt.Errorf("reference tone: %w", err)
	}

	err = s.intro()
	for n := 1; err == nil; n++ {
		var rec TrialRecord
		rec, err = s.trial(n, ref)
		if err != nil {
			break
		}
		s.Log.Add(rec)
		fmt.Fprintf(s.Out, "\rTrial: %d  next: %.1f Hz ", n, rec.NextHz)
		if !rec.Continue {
			break
		}
	}
	if err == nil {
		err = s.outro()
	}

	summary := Summary{
		Trials:      s.ctrl.Trials(),
		Responses:   s.ctrl.Responses(),
		FinalHz:     s.ctrl.Frequency(),
		ThresholdHz: s.ctrl.Threshold(),
	}
	if errors.Is(err, ErrAborted) {
		summary.Aborted = true
		err = nil
	}
	return summary, err
}

func (s *Session) intro() error {
	if err := s.Presenter.ShowText(StartText); err != nil {
		return err
	}
	_, err := s.Presenter.WaitForKey("space")
	return err
}

func (s *Session) outro() error {
	if err := s.Presenter.ShowText(EndText); err != nil {
		return err
	}
	return s.Presenter.Pause(endHold)
}

func (s *Session) pulse(lines string) {
	if s.Trigger != nil {
		s.Trigger.Pulse(lines)
	}
}

func (s *Session) trial(n int, ref *SoundResource) (TrialRecord, error) {
	p := s.Presenter
	rec := TrialRecord{
		Trial:  n,
		Mode:   s.Config.Mode,
		BaseHz: s.Config.BaseFreq,
		TestHz: s.ctrl.Frequency(),
	}

	test, err := s.tones.Tone(rec.TestHz)
	if err != nil {
		return rec, fmt.Errorf("trial %d: %w", n, err)
	}

	rec.RefOnsetMS = p.Now()
	s.pulse(LineReference)
	if err := p.PlayTone(ref); err != nil {
		return rec, err
	}
	if err := p.Pause(time.Duration(s.Config.ISIMS) * time.Millisecond); err != nil {
		return rec, err
	}

	rec.TestOnsetMS = p.Now()
	s.pulse(LineTest)
	if err := p.PlayTone(test); err != nil {
		return rec, err
	}

	resp, err := p.CollectResponse(s.keys.Prompt(), s.keys.Keys(), time.Duration(s.Config.ResponseMS)*time.Millisecond)
	if err != nil {
		return rec, err
	}
	rec.Key, rec.RTMS = resp.Key, resp.RTMS

	dir, ok := s.keys.Resolve(resp.Key)
	if !ok {
		rec.Continue, err = s.ctrl.Miss()
		rec.NextHz = s.ctrl.Frequency()
		return rec, err
	}

	s.pulse(LineResponse)
	out, err := s.ctrl.Record(dir)
	if err != nil {
		return rec, fmt.Errorf("trial %d: %w", n, err)
	}
	rec.Direction = dir
	rec.Correct = out.Correct
	rec.NextHz = out.Frequency
	rec.Continue = out.Continue
	return rec, nil
}
