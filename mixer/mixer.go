// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"log/slog"
	"math"
)

const (
	// DefaultInputs is used when Config.Inputs is zero or out of range.
	DefaultInputs = 4
	MinInputs     = 2
	MaxInputs     = 255

	// DefaultBuses is used when Config.Buses is zero or out of range.
	DefaultBuses = 1
	MaxBuses     = 2

	DefaultRampMs     = 30.0
	DefaultSampleRate = 44100.0
)

// Config describes a Mixer. The zero value is a valid configuration:
// 4 inputs, 1 bus, 30 ms ramps at 44.1 kHz.
type Config struct {
	// Inputs is the number of input channels (2-255).
	Inputs int
	// Buses is the number of output buses (1 or 2).
	Buses int
	// RampMs is the ramp time in milliseconds.
	RampMs float64
	// SampleRate in Hz.
	SampleRate float64

	// Verbose enables warnings for rejected control arguments.
	Verbose bool
	Logger  *slog.Logger

	// OnRampDone is called from RenderBlock each time a ramp completes,
	// before the rest of that block is rendered. It must not block.
	OnRampDone func()
}

// Mixer is a gain-ramping channel mixer. See the package documentation.
type Mixer struct {
	inputs int
	buses  int

	master gain
	gains  []gain
	adjust []float64

	ramp        rampState
	rampMs      float64
	sampleRate  float64
	rampSamples int

	// validate-then-apply staging for multi-value commands
	scratch []float64

	verbose    bool
	log        *slog.Logger
	onRampDone func()
}

// New creates a Mixer from cfg. Zero fields take their defaults; channel and
// bus counts out of range fall back to the defaults, and an invalid ramp time
// falls back to DefaultRampMs. Only an invalid sample rate is an error.
func New(cfg Config) (*Mixer, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = DefaultSampleRate
	} else if !isPositive(sampleRate) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	inputs := cfg.Inputs
	if inputs == 0 {
		inputs = DefaultInputs
	} else if inputs < MinInputs || inputs > MaxInputs {
		if cfg.Verbose {
			log.Warn("invalid input count, using default",
				"inputs", inputs, "min", MinInputs, "max", MaxInputs, "default", DefaultInputs)
		}
		inputs = DefaultInputs
	}

	buses := cfg.Buses
	if buses == 0 {
		buses = DefaultBuses
	} else if buses < 1 || buses > MaxBuses {
		if cfg.Verbose {
			log.Warn("invalid bus count, using default", "buses", buses, "default", DefaultBuses)
		}
		buses = DefaultBuses
	}

	m := &Mixer{
		inputs:     inputs,
		buses:      buses,
		master:     gain{current: 1, target: 1},
		gains:      make([]gain, inputs),
		adjust:     make([]float64, inputs),
		scratch:    make([]float64, inputs),
		sampleRate: sampleRate,
		verbose:    cfg.Verbose,
		log:        log,
		onRampDone: cfg.OnRampDone,
	}
	for i := range m.adjust {
		m.adjust[i] = 1
	}

	rampMs := cfg.RampMs
	if rampMs == 0 {
		rampMs = DefaultRampMs
	}
	// an invalid value is logged and replaced by DefaultRampMs
	_ = m.SetRampTime(rampMs)

	return m, nil
}

// Inputs returns the number of input channels.
func (m *Mixer) Inputs() int { return m.inputs }

// Buses returns the number of output buses.
func (m *Mixer) Buses() int { return m.buses }

// RampMs returns the ramp time in milliseconds.
func (m *Mixer) RampMs() float64 { return m.rampMs }

// RampSamples returns the ramp length in samples at the current sample rate.
func (m *Mixer) RampSamples() int { return m.rampSamples }

// SampleRate returns the sample rate in Hz.
func (m *Mixer) SampleRate() float64 { return m.sampleRate }

// Ramping reports whether a ramp is in progress.
func (m *Mixer) Ramping() bool { return m.ramp.ramping }

func (m *Mixer) Verbose() bool { return m.verbose }

func (m *Mixer) SetVerbose(verbose bool) { m.verbose = verbose }

// SetOnRampDone replaces the ramp completion callback and returns the
// previous one.
func (m *Mixer) SetOnRampDone(fn func()) (prev func()) {
	prev, m.onRampDone = m.onRampDone, fn
	return prev
}

// reject logs a refused control command when verbose and returns the error
// annotated with the operation name.
func (m *Mixer) reject(op string, err error) error {
	if m.verbose {
		m.log.Warn("control command rejected", "op", op, "err", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
