// SPDX-License-Identifier: EPL-2.0

package control

import (
	"fmt"

	"github.com/ik5/audmix/mixer"
)

// Target receives control commands. *mixer.Mixer implements it.
type Target interface {
	Inputs() int
	SetMaster(level float64) error
	SetLevels(master float64, levels []float64) error
	Pan(master, position float64) error
	SetAdjustAll(mode mixer.Mode, values []float64) error
	SetAdjustOne(mode mixer.Mode, index int, value float64) error
	SetRampTime(ms float64) error
	SetVerbose(verbose bool)
	Report() string
}

var _ Target = (*mixer.Mixer)(nil)

// Apply validates msg and applies it to t. The report message returns the
// report text; every other message returns an empty string.
func Apply(t Target, msg Message) (string, error) {
	switch msg.Selector {
	case SelMaster:
		if err := msg.countIs(1); err != nil {
			return "", err
		}
		level, err := msg.number(0)
		if err != nil {
			return "", err
		}
		return "", t.SetMaster(level)

	case SelPan:
		if err := msg.countIs(2); err != nil {
			return "", err
		}
		master, err := msg.number(0)
		if err != nil {
			return "", err
		}
		position, err := msg.number(1)
		if err != nil {
			return "", err
		}
		return "", t.Pan(master, position)

	case SelList:
		if err := msg.countAtLeast(1); err != nil {
			return "", err
		}
		values, err := msg.numbers(0)
		if err != nil {
			return "", err
		}
		return "", t.SetLevels(values[0], values[1:])

	case SelAdjust:
		if err := msg.countIs(t.Inputs() + 1); err != nil {
			return "", err
		}
		mode, err := msg.mode(0)
		if err != nil {
			return "", err
		}
		values, err := msg.numbers(1)
		if err != nil {
			return "", err
		}
		return "", t.SetAdjustAll(mode, values)

	case SelAdjustOne:
		if err := msg.countIs(3); err != nil {
			return "", err
		}
		mode, err := msg.mode(0)
		if err != nil {
			return "", err
		}
		index, err := msg.intBetween(1, 0, t.Inputs()-1)
		if err != nil {
			return "", err
		}
		value, err := msg.number(2)
		if err != nil {
			return "", err
		}
		return "", t.SetAdjustOne(mode, index, value)

	case SelRamp:
		if err := msg.countIs(1); err != nil {
			return "", err
		}
		ms, err := msg.number(0)
		if err != nil {
			return "", err
		}
		return "", t.SetRampTime(ms)

	case SelReport:
		if err := msg.countIs(0); err != nil {
			return "", err
		}
		return t.Report(), nil

	case SelVerbose:
		if err := msg.countIs(1); err != nil {
			return "", err
		}
		on, err := msg.intBetween(0, 0, 1)
		if err != nil {
			return "", err
		}
		t.SetVerbose(on == 1)
		return "", nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSelector, msg.Selector)
}

// ApplyLine parses line and applies it to t.
func ApplyLine(t Target, line string) (string, error) {
	msg, err := Parse(line)
	if err != nil {
		return "", err
	}
	return Apply(t, msg)
}

func (msg Message) mode(index int) (mixer.Mode, error) {
	sym, err := msg.symbol(index)
	if err != nil {
		return 0, err
	}
	mode, err := mixer.ParseMode(sym)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", msg.Selector, err)
	}
	return mode, nil
}
