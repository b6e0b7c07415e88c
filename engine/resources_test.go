package engine

import (
	"testing"

	"github.com/Zyko0/go-sdl3/sdl"
)

func TestToneCache(t *testing.T) {
	cache := NewToneCache(testConfig())

	a, err := cache.Tone(1000)
	if err != nil {
		t.Fatalf("Tone(1000) error = %v", err)
	}
	b, _ := cache.Tone(1000.004)
	if a != b {
		t.Error("frequencies within 0.01 Hz were synthesized twice")
	}
	c, _ := cache.Tone(1100)
	if c == a || c.Frequency != 1100 {
		t.Errorf("Tone(1100) = %+v", c.Frequency)
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}

	if _, err := cache.Tone(9000); err == nil {
		t.Error("Tone(9000) above Nyquist succeeded")
	}
	if cache.Len() != 2 {
		t.Errorf("failed synthesis was cached: Len() = %d", cache.Len())
	}
}

func TestDurationMS(t *testing.T) {
	tests := []struct {
		name string
		snd  SoundResource
		want uint64
	}{
		{"stereo", SoundResource{Data: make([]byte, 48000*4), Spec: sdl.AudioSpec{Channels: 2, Freq: 48000}}, 1000},
		{"mono", SoundResource{Data: make([]byte, 8000), Spec: sdl.AudioSpec{Channels: 1, Freq: 8000}}, 500},
		{"no spec", SoundResource{Data: make([]byte, 100)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snd.DurationMS(); got != tt.want {
				t.Errorf("DurationMS() = %d, want %d", got, tt.want)
			}
		})
	}
}
