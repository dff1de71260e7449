// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Integer PCM at 16, 24 or 32 bits is supported with any channel count and
// sample rate. Non-seekable inputs are buffered in memory first.
//
//	file, _ := os.Open("input.aif")
//	src, err := aiff.Decoder{}.Decode(file)
package aiff
