// SPDX-License-Identifier: EPL-2.0

package control

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line     string
		selector string
		args     int
		str      string
	}{
		{line: "master 0.5", selector: SelMaster, args: 1, str: "master 0.5"},
		{line: "  PAN   1\t2.5 ", selector: SelPan, args: 2, str: "pan 1 2.5"},
		{line: "1 0.5 0.25", selector: SelList, args: 3, str: "list 1 0.5 0.25"},
		{line: "adjust db 0 -6", selector: SelAdjust, args: 3, str: "adjust db 0 -6"},
		{line: "report", selector: SelReport, args: 0, str: "report"},
	}

	for _, tt := range tests {
		msg, err := Parse(tt.line)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.line, err)
			continue
		}
		if msg.Selector != tt.selector || len(msg.Args) != tt.args {
			t.Errorf("Parse(%q) = %s/%d args, want %s/%d args", tt.line, msg.Selector, len(msg.Args), tt.selector, tt.args)
		}
		if got := msg.String(); got != tt.str {
			t.Errorf("Parse(%q).String() = %q, want %q", tt.line, got, tt.str)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", "   ", "\t"} {
		if _, err := Parse(line); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Parse(%q) error = %v, want ErrEmptyMessage", line, err)
		}
	}
}

func TestAtom_IsInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		atom Atom
		want bool
	}{
		{atom: parseAtom("3"), want: true},
		{atom: parseAtom("3.0"), want: true},
		{atom: parseAtom("3.5"), want: false},
		{atom: parseAtom("inf"), want: false},
		{atom: parseAtom("db"), want: false},
	}

	for _, tt := range tests {
		if got := tt.atom.isInt(); got != tt.want {
			t.Errorf("%v.isInt() = %v, want %v", tt.atom, got, tt.want)
		}
	}
}
