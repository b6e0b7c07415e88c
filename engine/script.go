package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNoScript        = errors.New("script has no responses")
	ErrScriptExhausted = errors.New("script ran out of responses")
)

// ScriptedResponse is one line of a response script. An empty Key (or "-")
// stands for a trial where the participant did not answer.
type ScriptedResponse struct {
	Key  string
	RTMS uint64
}

func LoadScript(path string) ([]ScriptedResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	script, err := ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

// ParseScript reads "key[,rt_ms]" lines. Lines starting with # are
// comments.
func ParseScript(r io.Reader) ([]ScriptedResponse, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var script []ScriptedResponse
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		resp := ScriptedResponse{Key: strings.TrimSpace(record[0])}
		if resp.Key == "-" {
			resp.Key = ""
		}
		if len(record) > 1 && strings.TrimSpace(record[1]) != "" {
			rt, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid rt_ms: %v", line, err)
			}
			resp.RTMS = rt
		}
		script = append(script, resp)
	}

	if len(script) == 0 {
		return nil, ErrNoScript
	}
	return script, nil
}

// ScriptedPresenter replays a response script against a virtual clock. It
// needs no window or audio device.
type ScriptedPresenter struct {
	Script []ScriptedResponse
	Texts  []string
	Tones  []float64

	next  int
	clock uint64
}

func NewScriptedPresenter(script []ScriptedResponse) *ScriptedPresenter {
	return &ScriptedPresenter{Script: script}
}

func (p *ScriptedPresenter) Now() uint64 { return p.clock }

func (p *ScriptedPresenter) ShowText(text string) error {
	p.Texts = append(p.Texts, text)
	return nil
}

func (p *ScriptedPresenter) WaitForKey(keys ...string) (string, error) {
	if len(keys) == 0 {
		return "", nil
	}
	return keys[0], nil
}

func (p *ScriptedPresenter) PlayTone(snd *SoundResource) error {
	p.Tones = append(p.Tones, snd.Frequency)
	p.clock += snd.DurationMS()
	return nil
}

func (p *ScriptedPresenter) Pause(d time.Duration) error {
	p.clock += uint64(d.Milliseconds())
	return nil
}

func (p *ScriptedPresenter) CollectResponse(prompt string, keys []string, timeout time.Duration) (Response, error) {
	p.Texts = append(p.Texts, prompt)
	if p.next >= len(p.Script) {
		return Response{}, fmt.Errorf("%w: %w", ErrAborted, ErrScriptExhausted)
	}
	s := p.Script[p.next]
	p.next++

	if s.Key == "" {
		p.clock += uint64(timeout.Milliseconds())
		return Response{}, nil
	}
	p.clock += s.RTMS
	return Response{Key: s.Key, RTMS: s.RTMS}, nil
}
