// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams through github.com/hajimehoshi/go-mp3.
//
// The decoder always produces stereo at the stream's sample rate, so a mono
// input file still yields two identical channels:
//
//	file, _ := os.Open("input.mp3")
//	src, err := mp3.Decoder{}.Decode(file)
//	mono := audio.NewMonoMixer(src)
package mp3
