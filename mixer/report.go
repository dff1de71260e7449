// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"strconv"
	"strings"
)

// State is a copy of the mixer's observable state.
type State struct {
	Inputs      int
	Buses       int
	RampMs      float64
	RampSamples int

	Ramping   bool
	Remaining int // samples left in the ramp, 0 when idle

	Master       float64
	MasterTarget float64
	Current      []float64
	Target       []float64
	Adjust       []float64
}

// Snapshot copies the current state. It allocates and is meant for the
// control side, not for the render path.
func (m *Mixer) Snapshot() State {
	st := State{
		Inputs:       m.inputs,
		Buses:        m.buses,
		RampMs:       m.rampMs,
		RampSamples:  m.rampSamples,
		Ramping:      m.ramp.ramping,
		Remaining:    m.ramp.remaining,
		Master:       m.master.current,
		MasterTarget: m.master.target,
		Current:      make([]float64, m.inputs),
		Target:       make([]float64, m.inputs),
		Adjust:       make([]float64, m.inputs),
	}
	for i, g := range m.gains {
		st.Current[i] = g.current
		st.Target[i] = g.target
	}
	copy(st.Adjust, m.adjust)
	return st
}

// Report returns a human readable dump of the channel counts, ramp time,
// master gain and the current, target and adjust gains.
func (m *Mixer) Report() string {
	st := m.Snapshot()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Channels IN: %d - Channels OUT: %d - Ramp (ms): %.1f - Master Gain: %.4f\n",
		st.Inputs, st.Buses, st.RampMs, st.Master)
	joinFloats(&sb, "    Current gains: ", st.Current)
	joinFloats(&sb, "    Target gains:  ", st.Target)
	joinFloats(&sb, "    Adjust gains:  ", st.Adjust)
	return sb.String()
}

func joinFloats(sb *strings.Builder, label string, values []float64) {
	sb.WriteString(label)
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(v, 'f', 4, 64))
	}
	sb.WriteByte('\n')
}
