// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides generated audio sources for tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// MockSource generates audio from a waveform function.
// It implements audio.Source without importing it.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float64

	// FailAfter makes ReadSamples return Err once this many frames were
	// generated. Zero disables it.
	FailAfter int
	Err       error

	closed int
}

// NewMockSource creates a source of totalSamples frames, sample values given
// by waveform.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float64) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource generates zeros.
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

// NewSineSource generates the same sine wave on every channel.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float64 {
		t := float64(sample) / float64(sampleRate)
		return math.Sin(2 * math.Pi * frequency * t)
	})
}

// NewConstantSource generates value on every channel.
func NewConstantSource(sampleRate, channels, totalSamples int, value float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float64 {
		return value
	})
}

// NewRampSource generates sample/totalSamples, offset by channel.
func NewRampSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float64 {
		return float64(sample)/float64(totalSamples) + float64(channel)
	})
}

// ErrInjected is the default error returned after FailAfter frames.
var ErrInjected = errors.New("audiotest: injected failure")

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

func (m *MockSource) Close() error {
	m.closed++
	return nil
}

// Closed returns how many times Close was called.
func (m *MockSource) Closed() int { return m.closed }

// Reset rewinds the source.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float64) (int, error) {
	if m.FailAfter > 0 && m.generated >= m.FailAfter {
		if m.Err != nil {
			return 0, m.Err
		}
		return 0, ErrInjected
	}
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	if m.FailAfter > 0 {
		frames = min(frames, m.FailAfter-m.generated)
	}

	for frame := range frames {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += frames
	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}
