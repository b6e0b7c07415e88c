package cli

import (
	"strings"
	"testing"
)

func TestFormatSummary(t *testing.T) {
	out := FormatSummary("Run complete", []Field{
		{Key: "Mode", Value: "lower"},
		{Key: "Threshold", Value: "120.0 Hz"},
	})

	for _, want := range []string{"Run complete", "Mode:", "lower", "Threshold:", "120.0 Hz"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n < 3 {
		t.Errorf("summary has %d lines, want title plus one per field", n)
	}
}
