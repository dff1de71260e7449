// SPDX-License-Identifier: EPL-2.0

// Package audmix is a block based audio mixer with gain ramps.
//
// The mixer sums any number of input channels into one or two output buses.
// Every gain change glides linearly over a configurable ramp time, so level
// changes never click. Per channel adjust gains act as a trim that applies
// at once, and a constant-power pan law spreads a source across the inputs.
//
// # Packages
//
//   - mixer: the real-time core. RenderBlock never allocates.
//   - control: text control messages and timed cue lists
//   - engine: drives a mixer from decoded sources and applies cues at exact
//     sample offsets
//   - audio: the Source interface, resampling and channel conversion
//   - formats/*: WAV, AIFF, MP3, Ogg Vorbis and FLAC decoders
//   - output: WAV and FLAC file sinks, a stdout stream sink and live playback
//   - state: saved ramp time and verbose settings
//
// # Quick Start
//
//	sources, _ := audmix.OpenFiles(audmix.NewRegistry(), []string{"drums.wav", "bass.flac"})
//
//	m, _ := mixer.New(mixer.Config{Inputs: len(sources), SampleRate: 48000})
//	eng, _ := engine.New(m, sources, engine.Options{})
//	defer eng.Close()
//
//	eng.ApplyLine("list 1 0.8 0.6")
//
//	sink, _ := output.Create(output.Settings{Path: "mix.wav", Channels: 1, SampleRate: 48000})
//	defer sink.Close()
//
//	frames, err := audmix.Mixdown(ctx, eng, sink, 0)
//
// # Control Messages
//
//	master 0.5               master gain target
//	pan 1 1.5                master and a pan position across the inputs
//	list 1 0.2 0.4 0.6 0.8   master and one target per input
//	adjust db 0 -3 -6 -6     trim every input, linear (ampl) or in dB
//	adjust_one ampl 2 0.5    trim one input
//	ramp 50                  ramp time in milliseconds
//	report                   dump the gains
//	verbose 1                log rejected messages
//
// The cmd/audmix program wraps all of the above.
package audmix
