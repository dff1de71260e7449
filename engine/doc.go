// SPDX-License-Identifier: EPL-2.0

// Package engine drives a mixer.Mixer from audio.Source inputs.
//
// An Engine pulls one block from every input, renders it, and hands out the
// mixed buses as interleaved samples. It is itself an audio.Source, so the
// mix can be fed to a sink, a player, or another Engine.
//
// Control messages may arrive from any goroutine. They are serialized against
// rendering, so a block is always rendered with one consistent set of
// targets. Cues are applied at their exact sample offset: a block is split
// when a cue falls inside it.
//
// Every input is conformed to the engine's sample rate and to one channel per
// bus. An input that runs out reads as silence; ReadSamples returns io.EOF
// once all inputs are exhausted.
package engine
