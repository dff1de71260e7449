// SPDX-License-Identifier: EPL-2.0

package control

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Atom is one message argument: a number or a symbol.
type Atom struct {
	Num   float64
	Sym   string
	IsNum bool
}

func (a Atom) String() string {
	if a.IsNum {
		return strconv.FormatFloat(a.Num, 'g', -1, 64)
	}
	return a.Sym
}

// isInt reports whether the atom is a number without a fractional part.
func (a Atom) isInt() bool {
	return a.IsNum && a.Num == math.Trunc(a.Num) && !math.IsInf(a.Num, 0)
}

func parseAtom(s string) Atom {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Atom{Num: v, IsNum: true}
	}
	return Atom{Sym: s}
}

// Message is a parsed control message.
type Message struct {
	Selector string
	Args     []Atom
}

// Selectors understood by Apply.
const (
	SelMaster    = "master"
	SelPan       = "pan"
	SelList      = "list"
	SelAdjust    = "adjust"
	SelAdjustOne = "adjust_one"
	SelRamp      = "ramp"
	SelReport    = "report"
	SelVerbose   = "verbose"
)

// Parse splits line into a message. A line that starts with a number is a
// list message.
func Parse(line string) (Message, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Message{}, ErrEmptyMessage
	}

	atoms := make([]Atom, len(fields))
	for i, f := range fields {
		atoms[i] = parseAtom(f)
	}

	if atoms[0].IsNum {
		return Message{Selector: SelList, Args: atoms}, nil
	}
	return Message{Selector: strings.ToLower(atoms[0].Sym), Args: atoms[1:]}, nil
}

func (msg Message) String() string {
	var sb strings.Builder
	sb.WriteString(msg.Selector)
	for _, a := range msg.Args {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	return sb.String()
}

func (msg Message) countIs(want int) error {
	if len(msg.Args) != want {
		return fmt.Errorf("%s: %w: got %d, want %d", msg.Selector, ErrArgCount, len(msg.Args), want)
	}
	return nil
}

func (msg Message) countAtLeast(want int) error {
	if len(msg.Args) < want {
		return fmt.Errorf("%s: %w: got %d, want at least %d", msg.Selector, ErrArgCount, len(msg.Args), want)
	}
	return nil
}

func (msg Message) number(index int) (float64, error) {
	a := msg.Args[index]
	if !a.IsNum {
		return 0, fmt.Errorf("%s: %w: argument %d is %q, want a number", msg.Selector, ErrArgType, index, a.Sym)
	}
	return a.Num, nil
}

func (msg Message) numbers(from int) ([]float64, error) {
	values := make([]float64, 0, len(msg.Args)-from)
	for i := from; i < len(msg.Args); i++ {
		v, err := msg.number(i)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// intBetween returns an integer argument in [low, high].
func (msg Message) intBetween(index, low, high int) (int, error) {
	a := msg.Args[index]
	if !a.isInt() {
		return 0, fmt.Errorf("%s: %w: argument %d is %s, want an int", msg.Selector, ErrArgType, index, a)
	}
	v := int(a.Num)
	if v < low || v > high {
		return 0, fmt.Errorf("%s: %w: argument %d is %d, want [%d, %d]", msg.Selector, ErrArgRange, index, v, low, high)
	}
	return v, nil
}

func (msg Message) symbol(index int) (string, error) {
	a := msg.Args[index]
	if a.IsNum {
		return "", fmt.Errorf("%s: %w: argument %d is %s, want a symbol", msg.Selector, ErrArgType, index, a)
	}
	return a.Sym, nil
}
