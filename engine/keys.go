package engine

import (
	"fmt"

	"pitchstair/staircase"
)

// KeyMap turns a raw key name into a judgement. It is fixed for the run by
// the staircase mode.
type KeyMap struct {
	HigherKey string
	LowerKey  string
}

// KeyMapFor returns the response keys for a mode. Upper runs answer
// "higher" with 1; lower runs swap the keys.
func KeyMapFor(mode staircase.Mode) KeyMap {
	if mode == staircase.ModeUpper {
		return KeyMap{HigherKey: "1", LowerKey: "2"}
	}
	return KeyMap{HigherKey: "2", LowerKey: "1"}
}

func (k KeyMap) Resolve(key string) (staircase.Direction, bool) {
	switch key {
	case k.HigherKey:
		return staircase.Higher, true
	case k.LowerKey:
		return staircase.Lower, true
	}
	return 0, false
}

func (k KeyMap) Keys() []string {
	return []string{k.HigherKey, k.LowerKey}
}

func (k KeyMap) Prompt() string {
	return fmt.Sprintf("Was the second tone higher or lower than the first? Press %s for higher or %s for lower", k.HigherKey, k.LowerKey)
}
