// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams through github.com/mewkiz/flac.
//
// Frames are decoded one at a time and handed out as interleaved float64
// samples scaled by the stream's bit depth.
package flac
