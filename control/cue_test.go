// SPDX-License-Identifier: EPL-2.0

package control

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCues(t *testing.T) {
	t.Parallel()

	const list = `
# comment
500	master 0.5
0 list 1 1 0
0   ramp 100

250 pan 1 0.5
`
	cues, err := ParseCues(strings.NewReader(list))
	if err != nil {
		t.Fatalf("ParseCues() error = %v", err)
	}

	want := []struct {
		at  float64
		msg string
	}{
		{0, "list 1 1 0"},
		{0, "ramp 100"},
		{250, "pan 1 0.5"},
		{500, "master 0.5"},
	}
	if len(cues) != len(want) {
		t.Fatalf("ParseCues() returned %d cues, want %d", len(cues), len(want))
	}
	for i, w := range want {
		if cues[i].AtMs != w.at || cues[i].Msg.String() != w.msg {
			t.Errorf("cue %d = %v %q, want %v %q", i, cues[i].AtMs, cues[i].Msg, w.at, w.msg)
		}
	}
}

func TestParseCues_Errors(t *testing.T) {
	t.Parallel()

	for _, list := range []string{
		"soon master 1",
		"-5 master 1",
		"100",
		"NaN master 1",
	} {
		if _, err := ParseCues(strings.NewReader(list)); !errors.Is(err, ErrBadCue) {
			t.Errorf("ParseCues(%q) error = %v, want ErrBadCue", list, err)
		}
	}
}

func TestCue_Offset(t *testing.T) {
	t.Parallel()

	c := Cue{AtMs: 250}
	if got := c.Offset(48000); got != 12000 {
		t.Errorf("Offset(48000) = %d, want 12000", got)
	}
}
