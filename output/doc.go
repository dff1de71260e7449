// SPDX-License-Identifier: EPL-2.0

// Package output writes rendered audio.
//
// File sinks are chosen by extension through Create: ".wav" encodes with
// github.com/go-audio/wav and ".flac" with github.com/mewkiz/flac. Both
// write 16 or 24 bit PCM. StreamSink writes a 16-bit WAV to any io.Writer
// once it is closed.
//
// Player plays a Source live through github.com/ebitengine/oto/v3. Builds
// with the headless tag leave the audio device alone and NewPlayer returns
// ErrPlaybackUnavailable.
package output
