// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how adjust values are given.
type Mode int

const (
	// Linear takes amplitude multipliers, which must be >= 0.
	Linear Mode = iota
	// Decibel takes any finite dB value.
	Decibel
)

const ln10Over20 = math.Ln10 / 20

// ParseMode accepts "ampl", "linear" and "db" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "ampl", "linear":
		return Linear, nil
	case "db":
		return Decibel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (mode Mode) String() string {
	switch mode {
	case Linear:
		return "ampl"
	case Decibel:
		return "db"
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

// DbToLinear converts decibels to an amplitude multiplier. There is no upper
// clamp.
func DbToLinear(db float64) float64 {
	return math.Exp(db * ln10Over20)
}

func (mode Mode) linear(v float64) (float64, error) {
	if !isFinite(v) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidValue, v)
	}

	switch mode {
	case Linear:
		if v < 0 {
			return 0, fmt.Errorf("%w: amplitude %v is negative", ErrInvalidValue, v)
		}
		return v, nil
	case Decibel:
		return DbToLinear(v), nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
}

// SetAdjustAll sets every adjust multiplier. values must hold exactly Inputs
// entries; nothing changes unless all of them are valid. Adjust values are
// applied as they are, without a ramp.
func (m *Mixer) SetAdjustAll(mode Mode, values []float64) error {
	if len(values) != m.inputs {
		return m.reject("adjust",
			fmt.Errorf("%w: got %d, want %d", ErrValueCount, len(values), m.inputs))
	}

	for i, v := range values {
		lin, err := mode.linear(v)
		if err != nil {
			return m.reject("adjust", fmt.Errorf("input %d: %w", i, err))
		}
		m.scratch[i] = lin
	}

	copy(m.adjust, m.scratch)
	return nil
}

// SetAdjustOne sets the adjust multiplier of a single input.
func (m *Mixer) SetAdjustOne(mode Mode, index int, value float64) error {
	if index < 0 || index >= m.inputs {
		return m.reject("adjust_one",
			fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, index, m.inputs-1))
	}

	lin, err := mode.linear(value)
	if err != nil {
		return m.reject("adjust_one", fmt.Errorf("input %d: %w", index, err))
	}

	m.adjust[index] = lin
	return nil
}
