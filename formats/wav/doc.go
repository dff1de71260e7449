// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV files.
//
// Decoding goes through github.com/go-audio/wav and accepts integer PCM at
// 16, 24 or 32 bits with any channel count and sample rate:
//
//	file, _ := os.Open("input.wav")
//	src, err := wav.Decoder{}.Decode(file)
//	buf := make([]float64, 4096)
//	n, err := src.ReadSamples(buf)
//
// Closing the returned source closes the input when it is an io.Closer.
//
// WriteWAV16 writes a complete 16-bit file from interleaved samples:
//
//	err := wav.WriteWAV16(w, 48000, 2, samples)
package wav
