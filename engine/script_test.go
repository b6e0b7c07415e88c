package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseScript(t *testing.T) {
	in := `# keys for a lower run
1,350
-
,1200
2
x, 90
`
	got, err := ParseScript(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}
	want := []ScriptedResponse{
		{Key: "1", RTMS: 350},
		{Key: ""},
		{Key: "", RTMS: 1200},
		{Key: "2"},
		{Key: "x", RTMS: 90},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d responses, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("response %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseScriptErrors(t *testing.T) {
	if _, err := ParseScript(strings.NewReader("# nothing\n\n")); !errors.Is(err, ErrNoScript) {
		t.Errorf("empty script error = %v, want ErrNoScript", err)
	}
	_, err := ParseScript(strings.NewReader("1,200\n2,fast\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("bad rt error = %v, want one naming line 2", err)
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.csv")
	if err := os.WriteFile(path, []byte("1\n2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	script, err := LoadScript(path)
	if err != nil || len(script) != 2 {
		t.Errorf("LoadScript() = %v, %v", script, err)
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "none.csv")); err == nil {
		t.Error("LoadScript() of a missing file succeeded")
	}
}

func TestScriptedPresenter(t *testing.T) {
	p := NewScriptedPresenter([]ScriptedResponse{{Key: "2", RTMS: 300}, {}})
	keys := []string{"2", "1"}

	if err := p.Pause(250 * time.Millisecond); err != nil || p.Now() != 250 {
		t.Fatalf("after Pause: Now() = %d, err = %v", p.Now(), err)
	}
	if k, _ := p.WaitForKey("space"); k != "space" {
		t.Errorf("WaitForKey() = %q", k)
	}

	resp, err := p.CollectResponse("prompt", keys, time.Second)
	if err != nil || resp.Key != "2" || resp.RTMS != 300 || p.Now() != 550 {
		t.Errorf("first response = %+v, %v at %d", resp, err, p.Now())
	}
	resp, err = p.CollectResponse("prompt", keys, time.Second)
	if err != nil || resp.Key != "" || p.Now() != 1550 {
		t.Errorf("timed out response = %+v, %v at %d", resp, err, p.Now())
	}

	_, err = p.CollectResponse("prompt", keys, time.Second)
	if !errors.Is(err, ErrAborted) || !errors.Is(err, ErrScriptExhausted) {
		t.Errorf("exhausted error = %v, want ErrAborted and ErrScriptExhausted", err)
	}
	if len(p.Texts) != 3 {
		t.Errorf("Texts = %q, want one prompt per response", p.Texts)
	}
}
