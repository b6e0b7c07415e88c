// Package staircase implements the adaptive frequency staircase used by the
// pitch discrimination run: it tracks the test frequency, scores each
// higher/lower judgement against the reference and decides when to stop.
package staircase

import (
	"math"
	"strings"
)

// Mode selects the side of the reference the staircase approaches from.
type Mode int

const (
	ModeUpper Mode = iota
	ModeLower
)

func (m Mode) String() string {
	switch m {
	case ModeUpper:
		return "upper"
	case ModeLower:
		return "lower"
	}
	return "unknown"
}

// ParseMode accepts "upper" or "lower" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upper":
		return ModeUpper, nil
	case "lower":
		return ModeLower, nil
	}
	return 0, &Error{Kind: InvalidInput, Msg: "unknown mode " + s}
}

// Direction is the participant's judgement of the test tone relative to the
// reference. The zero value is not a valid direction.
type Direction int

const (
	Higher Direction = iota + 1
	Lower
)

func (d Direction) String() string {
	switch d {
	case Higher:
		return "higher"
	case Lower:
		return "lower"
	}
	return "invalid"
}

func (d Direction) valid() bool {
	return d == Higher || d == Lower
}

const (
	DefaultStep         = 0.10
	DefaultWindow       = 8
	DefaultMinFrequency = 20.0
	DefaultMaxFrequency = 20000.0
)

// Config holds the run parameters. Zero values for Step, Window,
// MinFrequency and MaxFrequency select the defaults above; a zero
// StartFrequency selects DefaultStart.
//
// MinDelta > 0 keeps the test tone at least that many Hz on its side of the
// reference after a correct answer. Zero leaves correct steps unbounded, so
// the tone may cross the reference.
type Config struct {
	BaseFrequency  float64
	StartFrequency float64
	Mode           Mode
	Step           float64
	Window         int
	MinDelta       float64
	MinFrequency   float64
	MaxFrequency   float64
	MaxTrials      int // 0 means unlimited
}

// DefaultStart returns the starting frequency for a mode: 50% above the
// reference for ModeUpper, an octave below for ModeLower.
func DefaultStart(base float64, mode Mode) float64 {
	if mode == ModeUpper {
		return base * 1.5
	}
	return base * 0.5
}

// WithDefaults returns c with zero fields replaced by their defaults.
func (c Config) WithDefaults() Config {
	if c.Step == 0 {
		c.Step = DefaultStep
	}
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
	if c.MinFrequency == 0 {
		c.MinFrequency = DefaultMinFrequency
	}
	if c.MaxFrequency == 0 {
		c.MaxFrequency = DefaultMaxFrequency
	}
	if c.StartFrequency == 0 {
		c.StartFrequency = DefaultStart(c.BaseFrequency, c.Mode)
	}
	return c
}

func (c Config) validate() error {
	switch {
	case !(c.BaseFrequency > 0) || math.IsInf(c.BaseFrequency, 0):
		return invalidf("base frequency must be > 0: %g", c.BaseFrequency)
	case c.Mode != ModeUpper && c.Mode != ModeLower:
		return invalidf("unknown mode %d", int(c.Mode))
	case !(c.Step > 0 && c.Step < 1):
		return invalidf("step must be in (0, 1): %g", c.Step)
	case c.Window < 2:
		return invalidf("window must be >= 2: %d", c.Window)
	case !(c.MinDelta >= 0):
		return invalidf("min delta must be >= 0: %g", c.MinDelta)
	case c.MaxTrials < 0:
		return invalidf("max trials must be >= 0: %d", c.MaxTrials)
	case !(c.MinFrequency > 0 && c.MinFrequency < c.BaseFrequency && c.BaseFrequency < c.MaxFrequency):
		return invalidf("frequency bounds [%g, %g] must bracket base %g", c.MinFrequency, c.MaxFrequency, c.BaseFrequency)
	case c.StartFrequency < c.MinFrequency || c.StartFrequency > c.MaxFrequency:
		return invalidf("start %g outside [%g, %g]", c.StartFrequency, c.MinFrequency, c.MaxFrequency)
	case c.Mode == ModeUpper && !(c.StartFrequency > c.BaseFrequency && c.StartFrequency >= c.BaseFrequency+c.MinDelta):
		return invalidf("upper mode needs start above base + min delta: start %g, base %g", c.StartFrequency, c.BaseFrequency)
	case c.Mode == ModeLower && !(c.StartFrequency < c.BaseFrequency && c.StartFrequency <= c.BaseFrequency-c.MinDelta):
		return invalidf("lower mode needs start below base - min delta: start %g, base %g", c.StartFrequency, c.BaseFrequency)
	}
	return nil
}

// Outcome is the result of one recorded response.
type Outcome struct {
	Frequency float64 // test frequency for the next trial
	Correct   bool
	Continue  bool
}

// State is a snapshot of the controller.
type State struct {
	BaseFrequency    float64
	CurrentFrequency float64
	Mode             Mode
	History          []bool
	Trials           int
	Reversals        []float64
	Stopped          bool
}

// Controller is the staircase state machine. It is not safe for concurrent
// use; one run loop owns it.
type Controller struct {
	cfg       Config
	current   float64
	history   []bool
	trials    int
	reversals []float64
	lastStep  int // +1 toward the reference, -1 away, 0 before the first step
	stopped   bool
}

// New validates cfg and returns a running controller.
func New(cfg Config) (*Controller, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Controller{cfg: cfg, current: cfg.StartFrequency}, nil
}

// Record scores dir against the current frequency, steps the frequency and
// evaluates the stopping rule.
func (c *Controller) Record(dir Direction) (Outcome, error) {
	if c.stopped {
		return Outcome{}, errStopped
	}
	if !dir.valid() {
		return Outcome{}, invalidf("direction %d is neither higher nor lower", int(dir))
	}

	correct := c.isCorrect(dir)
	next, err := c.step(correct)
	if err != nil {
		return Outcome{}, err
	}

	step := -1
	if correct {
		step = 1
	}
	if c.lastStep != 0 && step != c.lastStep {
		c.reversals = append(c.reversals, c.current)
	}
	c.lastStep = step

	c.current = next
	c.history = append(c.history, correct)
	c.trials++
	c.stopped = c.shouldStop()

	return Outcome{Frequency: c.current, Correct: correct, Continue: !c.stopped}, nil
}

// Miss counts a trial that produced no usable response. The frequency and
// history are left alone. It reports whether the run continues.
func (c *Controller) Miss() (bool, error) {
	if c.stopped {
		return false, errStopped
	}
	c.trials++
	c.stopped = c.shouldStop()
	return !c.stopped, nil
}

// A tie with the reference counts as incorrect.
func (c *Controller) isCorrect(dir Direction) bool {
	switch {
	case dir == Higher && c.current > c.cfg.BaseFrequency:
		return true
	case dir == Lower && c.current < c.cfg.BaseFrequency:
		return true
	}
	return false
}

// above reports which side of the reference the run lives on.
func (c *Controller) above() bool {
	if c.current != c.cfg.BaseFrequency {
		return c.current > c.cfg.BaseFrequency
	}
	return c.cfg.Mode == ModeUpper
}

// step moves the frequency by Step of its current value: toward the
// reference after a correct answer, away from it otherwise. The result is
// clamped to [MinFrequency, MaxFrequency].
func (c *Controller) step(correct bool) (float64, error) {
	delta := c.current * c.cfg.Step
	base := c.cfg.BaseFrequency
	pin := c.cfg.MinDelta

	next := c.current - delta
	if c.above() != correct {
		next = c.current + delta
	}
	if correct && pin > 0 {
		if c.above() {
			next = math.Max(next, base+pin)
		} else {
			next = math.Min(next, base-pin)
		}
	}
	next = math.Min(math.Max(next, c.cfg.MinFrequency), c.cfg.MaxFrequency)

	if !(next > 0) || math.IsInf(next, 0) {
		return 0, &Error{Kind: DegenerateValue, Msg: "step produced a non-physical frequency"}
	}
	return next, nil
}

func (c *Controller) shouldStop() bool {
	if c.cfg.MaxTrials > 0 && c.trials >= c.cfg.MaxTrials {
		return true
	}
	n := len(c.history)
	if n < c.cfg.Window {
		return false
	}
	return CorrectPairs(c.history[n-c.cfg.Window:]) == 0
}

// CorrectPairs counts adjacent (correct, correct) pairs in window.
func CorrectPairs(window []bool) int {
	pairs := 0
	for i := 0; i+1 < len(window); i++ {
		if window[i] && window[i+1] {
			pairs++
		}
	}
	return pairs
}

// Threshold estimates the discrimination threshold in Hz as the mean offset
// from the reference over the reversal points, or the current offset when
// the run has not reversed yet.
func (c *Controller) Threshold() float64 {
	if len(c.reversals) == 0 {
		return math.Abs(c.current - c.cfg.BaseFrequency)
	}
	sum := 0.0
	for _, f := range c.reversals {
		sum += math.Abs(f - c.cfg.BaseFrequency)
	}
	return sum / float64(len(c.reversals))
}

func (c *Controller) Frequency() float64     { return c.current }
func (c *Controller) BaseFrequency() float64 { return c.cfg.BaseFrequency }
func (c *Controller) Mode() Mode             { return c.cfg.Mode }
func (c *Controller) Trials() int            { return c.trials }
func (c *Controller) Responses() int         { return len(c.history) }
func (c *Controller) Stopped() bool          { return c.stopped }

// State returns a copy of the controller state.
func (c *Controller) State() State {
	return State{
		BaseFrequency:    c.cfg.BaseFrequency,
		CurrentFrequency: c.current,
		Mode:             c.cfg.Mode,
		History:          append([]bool(nil), c.history...),
		Trials:           c.trials,
		Reversals:        append([]float64(nil), c.reversals...),
		Stopped:          c.stopped,
	}
}
