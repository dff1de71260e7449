// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"math"
)

// SetMaster sets the master gain target and restarts the ramp.
func (m *Mixer) SetMaster(level float64) error {
	if !isFinite(level) {
		return m.reject("master", fmt.Errorf("%w: master %v", ErrInvalidValue, level))
	}

	m.master.target = level
	m.startRamp()
	return nil
}

// SetLevels sets the master target and one target per input channel.
// Levels past Inputs are ignored and missing ones are set to 0.
func (m *Mixer) SetLevels(master float64, levels []float64) error {
	if !isFinite(master) {
		return m.reject("list", fmt.Errorf("%w: master %v", ErrInvalidValue, master))
	}
	levels = levels[:min(len(levels), m.inputs)]
	for i, v := range levels {
		if !isFinite(v) {
			return m.reject("list", fmt.Errorf("%w: level %d is %v", ErrInvalidValue, i, v))
		}
	}

	m.master.target = master
	for i := range m.gains {
		if i < len(levels) {
			m.gains[i].target = levels[i]
		} else {
			m.gains[i].target = 0
		}
	}
	m.startRamp()
	return nil
}

// Pan sets the master target and pans across the inputs with a
// constant-power law. position runs from 0 (first input) to Inputs-1 (last).
func (m *Mixer) Pan(master, position float64) error {
	if !isFinite(master) || !isFinite(position) {
		return m.reject("pan", fmt.Errorf("%w: pan %v %v", ErrInvalidValue, master, position))
	}

	PanGains(m.scratch, position)
	m.master.target = master
	for i := range m.gains {
		m.gains[i].target = m.scratch[i]
	}
	m.startRamp()
	return nil
}

// PanGains fills dst with constant-power pan gains for position over
// len(dst) channels. At most two adjacent entries are non-zero and the sum of
// their squares is 1.
func PanGains(dst []float64, position float64) {
	if len(dst) == 0 {
		return
	}
	clear(dst)

	last := len(dst) - 1
	switch {
	case position <= 0:
		dst[0] = 1
	case position >= float64(last):
		dst[last] = 1
	default:
		index := int(position)
		r := math.Cos((position - float64(index)) * math.Pi / 2)
		dst[index] = r
		dst[index+1] = math.Sqrt(1 - r*r)
	}
}

// SetRampTime sets the ramp time in milliseconds. An invalid time is replaced
// by DefaultRampMs and reported with ErrInvalidRampTime.
func (m *Mixer) SetRampTime(ms float64) error {
	var err error
	if !isPositive(ms) {
		err = m.reject("ramp", fmt.Errorf("%w: %v", ErrInvalidRampTime, ms))
		ms = DefaultRampMs
	}

	m.rampMs = ms
	m.updateRampSamples()
	return err
}

// SetSampleRate recomputes the ramp length for a new sample rate.
func (m *Mixer) SetSampleRate(sampleRate float64) error {
	if !isPositive(sampleRate) {
		return m.reject("samplerate", fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate))
	}

	m.sampleRate = sampleRate
	m.updateRampSamples()
	return nil
}

// maxRampSamples bounds the ramp length so it always fits an int.
const maxRampSamples = math.MaxInt32

func (m *Mixer) updateRampSamples() {
	m.rampSamples = int(min(m.rampMs*m.sampleRate/1000, maxRampSamples))
	if m.ramp.ramping && m.ramp.remaining > m.rampSamples {
		m.ramp.remaining = m.rampSamples
	}
}
