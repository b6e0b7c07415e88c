package engine

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/Zyko0/go-sdl3/sdl"
)

const (
	MaxActiveSounds   = 4
	AudioScratchBytes = 4096
)

var (
	ErrEmptySound = errors.New("empty sound")
	ErrMixerFull  = errors.New("no free mixer slot")
)

type ActiveSound struct {
	Resource *SoundResource
	PlayPos  uint32
	Active   bool
}

// AudioMixer sums the active tones into the SDL stream.
type AudioMixer struct {
	Slots   [MaxActiveSounds]ActiveSound
	Mutex   sync.Mutex
	Scratch []byte
}

func NewAudioMixer() *AudioMixer {
	return &AudioMixer{
		Scratch: make([]byte, AudioScratchBytes),
	}
}

func (m *AudioMixer) Callback(stream *sdl.AudioStream, additionalAmount, totalAmount int32) {
	remaining := int(additionalAmount)
	for remaining > 0 {
		chunk := min(remaining, AudioScratchBytes)
		m.mix(m.Scratch[:chunk])
		stream.PutData(m.Scratch[:chunk])
		remaining -= chunk
	}
}

// mix fills buf with the saturated sum of the active slots and advances
// them. len(buf) must be even.
func (m *AudioMixer) mix(buf []byte) {
	clear(buf)
	if len(buf) == 0 {
		return
	}

	m.Mutex.Lock()
	defer m.Mutex.Unlock()

	dst := unsafe.Slice((*int16)(unsafe.Pointer(&buf[0])), len(buf)/2)
	for i := range m.Slots {
		s := &m.Slots[i]
		if !s.Active {
			continue
		}

		toMix := min(uint32(len(buf)), uint32(len(s.Resource.Data))-s.PlayPos)
		if toMix >= 2 {
			src := unsafe.Slice((*int16)(unsafe.Pointer(&s.Resource.Data[s.PlayPos])), toMix/2)
			for j := range src {
				val := int32(dst[j]) + int32(src[j])
				if val > 32767 {
					val = 32767
				} else if val < -32768 {
					val = -32768
				}
				dst[j] = int16(val)
			}
		}

		s.PlayPos += toMix
		if s.PlayPos >= uint32(len(s.Resource.Data)) {
			s.Active = false
			s.Resource = nil
		}
	}
}

func (m *AudioMixer) Play(res *SoundResource) bool {
	if res == nil || len(res.Data) == 0 {
		return false
	}

	m.Mutex.Lock()
	defer m.Mutex.Unlock()

	for i := range m.Slots {
		if !m.Slots[i].Active {
			m.Slots[i] = ActiveSound{Resource: res, Active: true}
			return true
		}
	}
	return false
}

// Start is Play with the failure reason.
func (m *AudioMixer) Start(res *SoundResource) error {
	if res == nil || len(res.Data) == 0 {
		return ErrEmptySound
	}
	if !m.Play(res) {
		return ErrMixerFull
	}
	return nil
}

// Busy reports whether any tone is still playing.
func (m *AudioMixer) Busy() bool {
	m.Mutex.Lock()
	defer m.Mutex.Unlock()

	for i := range m.Slots {
		if m.Slots[i].Active {
			return true
		}
	}
	return false
}

// Stop silences every slot.
func (m *AudioMixer) Stop() {
	m.Mutex.Lock()
	defer m.Mutex.Unlock()

	for i := range m.Slots {
		m.Slots[i] = ActiveSound{}
	}
}
