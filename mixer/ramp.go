// SPDX-License-Identifier: EPL-2.0

package mixer

// gain is one ramped value. Control code writes target, the renderer
// moves current.
type gain struct {
	current float64
	target  float64
}

func (g gain) settled() bool { return g.current == g.target }

// rampState is either idle or ramping with a number of samples left.
// remaining can be zero: the ramp then completes at the start of the next
// block without interpolating.
type rampState struct {
	ramping   bool
	remaining int
}

// startRamp restarts the shared ramp after targets changed. When every value
// already sits on its target there is nothing to glide and the mixer stays idle.
func (m *Mixer) startRamp() {
	if m.settled() {
		m.ramp = rampState{}
		return
	}
	m.ramp = rampState{ramping: true, remaining: m.rampSamples}
}

func (m *Mixer) settled() bool {
	if !m.master.settled() {
		return false
	}
	for _, g := range m.gains {
		if !g.settled() {
			return false
		}
	}
	return true
}

// finishRamp snaps every value onto its target, goes idle and signals the
// completion.
func (m *Mixer) finishRamp() {
	m.master.current = m.master.target
	for i := range m.gains {
		m.gains[i].current = m.gains[i].target
	}
	m.ramp = rampState{}
	if m.onRampDone != nil {
		m.onRampDone()
	}
}

// rampLength returns how many of the next n samples belong to the ramp.
func (m *Mixer) rampLength(n int) int {
	return min(m.ramp.remaining, n)
}

// consume advances the ramp by length samples and finishes it when the
// countdown reaches zero.
func (m *Mixer) consume(length int) {
	m.ramp.remaining -= length
	if m.ramp.remaining == 0 {
		m.finishRamp()
	}
}

// skip advances the ramp over n samples without rendering anything.
func (m *Mixer) skip(n int) {
	length := m.rampLength(n)
	span := float64(length)
	den := float64(m.ramp.remaining)

	if !m.master.settled() {
		m.master.current += span * (m.master.target - m.master.current) / den
	}
	for i := range m.gains {
		g := &m.gains[i]
		if !g.settled() {
			g.current += span * (g.target - g.current) / den
		}
	}
	m.consume(length)
}
