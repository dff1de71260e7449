// SPDX-License-Identifier: EPL-2.0

// Package state persists the mixer settings that survive a restart: the
// ramp time and the verbose flag.
//
// The on-disk form is a small little-endian record:
//
//	"AUDMIX"  magic, 6 bytes
//	uint32    version
//	float64   ramp time in milliseconds
//	uint8     verbose (0 or 1)
//
// Gains, pan and adjust are live values and are not saved.
package state
