package engine

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Zyko0/go-sdl3/sdl"
	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"
	"github.com/cwbudde/algo-dsp/dsp/window"
)

const toneChannels = 2

// SynthesizeTone renders a pure tone as interleaved stereo S16LE, peak
// normalised to amplitude, with raised-cosine onset and offset ramps.
func SynthesizeTone(freqHz float64, durMS uint64, sampleRate int, amplitude float64, rampMS uint64) (*SoundResource, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("tone sample rate must be > 0: %d", sampleRate)
	}
	if !(freqHz > 0) || freqHz >= float64(sampleRate)/2 {
		return nil, fmt.Errorf("tone frequency %g Hz outside (0, %d)", freqHz, sampleRate/2)
	}

	n := int(uint64(sampleRate) * durMS / 1000)
	gen := signal.NewGenerator(core.WithSampleRate(float64(sampleRate)))
	wave, err := gen.Sine(freqHz, 1, n)
	if err != nil {
		return nil, fmt.Errorf("tone %g Hz: %w", freqHz, err)
	}
	wave, err = signal.Normalize(wave, amplitude)
	if err != nil {
		return nil, fmt.Errorf("tone %g Hz: %w", freqHz, err)
	}

	applyRamps(wave, int(uint64(sampleRate)*rampMS/1000))

	data := make([]byte, len(wave)*toneChannels*2)
	for i, v := range wave {
		s := uint16(int16(math.Round(core.Clamp(v, -1, 1) * 32767)))
		for ch := 0; ch < toneChannels; ch++ {
			binary.LittleEndian.PutUint16(data[(i*toneChannels+ch)*2:], s)
		}
	}

	return &SoundResource{
		Data:      data,
		Spec:      sdl.AudioSpec{Format: sdl.AUDIO_S16, Channels: toneChannels, Freq: int32(sampleRate)},
		Frequency: freqHz,
	}, nil
}

// applyRamps fades the first and last n samples with the halves of a Hann
// window of length 2n.
func applyRamps(wave []float64, n int) {
	if n <= 0 {
		return
	}
	if 2*n > len(wave) {
		n = len(wave) / 2
	}
	w := window.Generate(window.TypeHann, 2*n)
	last := len(wave) - 1
	for i := 0; i < n; i++ {
		wave[i] *= w[i]
		wave[last-i] *= w[2*n-1-i]
	}
}
