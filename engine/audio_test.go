package engine

import (
	"encoding/binary"
	"errors"
	"testing"
)

func pcm16(vals ...int16) *SoundResource {
	data := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(v))
	}
	return &SoundResource{Data: data}
}

func TestMixerSumsAndSaturates(t *testing.T) {
	m := NewAudioMixer()
	m.Play(pcm16(30000, -30000, 100, 5))
	m.Play(pcm16(30000, -30000, 200))

	buf := make([]byte, 10)
	m.mix(buf)

	want := []int16{32767, -32768, 300, 5, 0}
	got := samples(buf)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
	if m.Busy() {
		t.Error("Busy() = true after both sounds finished")
	}
}

func TestMixerAdvancesAcrossCallbacks(t *testing.T) {
	m := NewAudioMixer()
	m.Play(pcm16(1, 2, 3, 4))

	buf := make([]byte, 4)
	m.mix(buf)
	if got := samples(buf); got[0] != 1 || got[1] != 2 {
		t.Errorf("first chunk = %v", got)
	}
	if !m.Busy() {
		t.Fatal("Busy() = false halfway through")
	}
	m.mix(buf)
	if got := samples(buf); got[0] != 3 || got[1] != 4 {
		t.Errorf("second chunk = %v", got)
	}
	if m.Busy() {
		t.Error("Busy() = true at the end")
	}

	m.mix(buf)
	if got := samples(buf); got[0] != 0 || got[1] != 0 {
		t.Errorf("idle chunk = %v, want silence", got)
	}
}

func TestMixerPlay(t *testing.T) {
	m := NewAudioMixer()
	if m.Play(nil) || m.Play(&SoundResource{}) {
		t.Error("Play accepted an empty sound")
	}
	for i := 0; i < MaxActiveSounds; i++ {
		if !m.Play(pcm16(1)) {
			t.Fatalf("Play %d rejected with free slots", i)
		}
	}
	if m.Play(pcm16(1)) {
		t.Error("Play succeeded with every slot busy")
	}

	m.Stop()
	if m.Busy() {
		t.Error("Busy() = true after Stop")
	}
}

func TestMixerStartReportsFailure(t *testing.T) {
	m := NewAudioMixer()
	if err := m.Start(nil); !errors.Is(err, ErrEmptySound) {
		t.Errorf("Start(nil) = %v, want ErrEmptySound", err)
	}
	if err := m.Start(&SoundResource{}); !errors.Is(err, ErrEmptySound) {
		t.Errorf("Start(empty) = %v, want ErrEmptySound", err)
	}
	for i := 0; i < MaxActiveSounds; i++ {
		if err := m.Start(pcm16(1)); err != nil {
			t.Fatalf("Start %d = %v with free slots", i, err)
		}
	}
	if err := m.Start(pcm16(1)); !errors.Is(err, ErrMixerFull) {
		t.Errorf("Start with every slot busy = %v, want ErrMixerFull", err)
	}
}
