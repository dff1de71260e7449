// SPDX-License-Identifier: EPL-2.0

package control

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Cue is a message scheduled at a time offset.
type Cue struct {
	AtMs float64
	Msg  Message
}

// Offset converts the cue time into a sample offset at sampleRate.
func (c Cue) Offset(sampleRate int) int64 {
	return int64(c.AtMs * float64(sampleRate) / 1000)
}

// ParseCues reads a cue list from r and returns the cues ordered by time.
// Cues with the same time keep their order in the file.
func ParseCues(r io.Reader) ([]Cue, error) {
	var cues []Cue

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		at, rest := fields[0], strings.Join(fields[1:], " ")
		ms, err := strconv.ParseFloat(at, 64)
		if err != nil || ms < 0 || math.IsNaN(ms) || math.IsInf(ms, 0) {
			return nil, fmt.Errorf("line %d: %w: bad time %q", line, ErrBadCue, at)
		}
		msg, err := Parse(rest)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, ErrBadCue, err)
		}

		cues = append(cues, Cue{AtMs: ms, Msg: msg})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(cues, func(a, b Cue) int { return cmp.Compare(a.AtMs, b.AtMs) })
	return cues, nil
}
