// SPDX-License-Identifier: EPL-2.0

// Package mixer implements a block-based gain mixer with click-free gain changes.
//
// A Mixer sums a fixed number of input channels into one or two output buses.
// Every input channel has a ramped gain and a static adjust (trim) multiplier,
// and the whole mix passes through a ramped master gain:
//
//	out[bus][s] = master(s) * sum_i( adjust[i] * gain[i](s) * in[i][s] )
//
// # Ramps
//
// Control operations never touch the gains the renderer is using. They only
// set targets and restart one shared ramp that lasts RampSamples samples. The
// renderer glides every gain linearly from its current value to its target
// over the remaining ramp length, across as many blocks as it takes, and snaps
// each value exactly to its target when the ramp ends. A new command in the
// middle of a ramp restarts it from wherever the gains currently are.
//
//	m, _ := mixer.New(mixer.Config{Inputs: 2, Buses: 1, RampMs: 10, SampleRate: 48000})
//	m.SetLevels(1, []float64{1, 0})
//	m.RenderBlock(ins, outs, 64)
//
// # Panning
//
// Pan spreads a position over the input channels with a constant-power law:
// a position between channels i and i+1 gives cos(frac*pi/2) to i and the
// complementary sine to i+1, so the sum of squares of the pair is 1.
//
// # Bus layout
//
// With one bus, ins holds one buffer per input channel. With two buses the
// inputs are stacked: channel i reads ins[i] for the first bus and
// ins[i+Inputs] for the second.
//
// # Concurrency
//
// A Mixer is not safe for concurrent use. Control calls and RenderBlock must
// be serialized by the caller; see the engine package for a locked host.
package mixer
