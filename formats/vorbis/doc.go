// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
//	file, _ := os.Open("input.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//	buf := make([]float64, 4096)
//	n, err := src.ReadSamples(buf)
//
// ReadSamples only returns whole frames, so len(dst) should be a multiple of
// Channels.
package vorbis
