package engine

import "testing"

func TestUnsetCommand(t *testing.T) {
	tests := []struct {
		lines string
		want  string
	}{
		{"1", "Q"},
		{"123", "QWE"},
		{"8", "I"},
		{"9", "9"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := string(unsetCommand(tt.lines)); got != tt.want {
			t.Errorf("unsetCommand(%q) = %q, want %q", tt.lines, got, tt.want)
		}
	}
}
