// SPDX-License-Identifier: EPL-2.0

package mixer

// RenderBlock mixes n samples of ins into outs.
//
// ins holds Inputs*Buses buffers (see the package documentation for the
// stacked stereo layout) and outs holds Buses buffers; every buffer must have
// at least n samples. The shapes are not checked: a mismatch panics. outs is
// overwritten. RenderBlock does not allocate.
func (m *Mixer) RenderBlock(ins, outs [][]float64, n int) {
	for b := range m.buses {
		clear(outs[b][:n])
	}

	// a zero-length ramp completes before the first sample
	if m.ramp.ramping && m.ramp.remaining == 0 {
		m.finishRamp()
	}

	if m.master.current == 0 && m.master.target == 0 {
		if m.ramp.ramping {
			m.skip(n)
		}
		return
	}

	start := 0
	if m.ramp.ramping {
		start = m.renderRamp(ins, outs, n)
	}
	if start < n {
		m.renderSteady(ins, outs, start, n)
	}
}

// renderRamp renders the ramped head of the block and returns its length.
// The channel ramps are summed first, then the bus is scaled by the master
// ramp over the same span.
func (m *Mixer) renderRamp(ins, outs [][]float64, n int) int {
	length := m.rampLength(n)
	span := float64(length)
	den := float64(m.ramp.remaining)

	for i := range m.gains {
		g := &m.gains[i]
		adjust := m.adjust[i]
		if g.settled() {
			m.addConst(outs, ins, i, g.current*adjust, 0, length)
			continue
		}
		delta := (g.target - g.current) / den
		m.addRamp(outs, ins, i, g.current*adjust, delta*adjust, length)
		g.current += span * delta
	}

	if m.master.settled() {
		m.scaleConst(outs, m.master.current, length)
	} else {
		delta := (m.master.target - m.master.current) / den
		m.scaleRamp(outs, m.master.current, delta, length)
		m.master.current += span * delta
	}

	m.consume(length)
	return length
}

// renderSteady renders [begin, end) with constant gains.
func (m *Mixer) renderSteady(ins, outs [][]float64, begin, end int) {
	for i := range m.gains {
		m.addConst(outs, ins, i, m.master.current*m.adjust[i]*m.gains[i].current, begin, end)
	}
}

func (m *Mixer) addConst(outs, ins [][]float64, ch int, gain float64, begin, end int) {
	if gain == 0 || begin >= end {
		return
	}

	switch m.buses {
	case 1:
		out := outs[0][begin:end]
		in := ins[ch][begin:end]
		for s := range out {
			out[s] += gain * in[s]
		}
	case 2:
		left, right := outs[0][begin:end], outs[1][begin:end]
		inL, inR := ins[ch][begin:end], ins[ch+m.inputs][begin:end]
		for s := range left {
			left[s] += gain * inL[s]
			right[s] += gain * inR[s]
		}
	}
}

func (m *Mixer) addRamp(outs, ins [][]float64, ch int, gain0, delta float64, end int) {
	switch m.buses {
	case 1:
		out := outs[0][:end]
		in := ins[ch][:end]
		for s := range out {
			out[s] += (gain0 + float64(s)*delta) * in[s]
		}
	case 2:
		left, right := outs[0][:end], outs[1][:end]
		inL, inR := ins[ch][:end], ins[ch+m.inputs][:end]
		for s := range left {
			g := gain0 + float64(s)*delta
			left[s] += g * inL[s]
			right[s] += g * inR[s]
		}
	}
}

func (m *Mixer) scaleConst(outs [][]float64, gain float64, end int) {
	if gain == 1 {
		return
	}
	for b := range m.buses {
		out := outs[b][:end]
		for s := range out {
			out[s] *= gain
		}
	}
}

func (m *Mixer) scaleRamp(outs [][]float64, gain0, delta float64, end int) {
	for b := range m.buses {
		out := outs[b][:end]
		for s := range out {
			out[s] *= gain0 + float64(s)*delta
		}
	}
}
