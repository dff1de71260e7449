// SPDX-License-Identifier: EPL-2.0

// Package control parses text control messages and applies them to a mixer.
//
// A message is a selector followed by space separated atoms:
//
//	master 0.8
//	pan 1 1.5
//	list 1 0.5 0.25      (or just "1 0.5 0.25")
//	adjust db 0 -6 -6 0
//	adjust_one ampl 2 0.5
//	ramp 50
//	report
//	verbose 1
//
// Atoms that parse as numbers are numbers, everything else is a symbol.
// Arguments are checked for count, type and range before anything is applied,
// so a rejected message never changes the mixer.
//
// # Cues
//
// A cue list schedules messages at a time offset in milliseconds, one per
// line. Blank lines and lines starting with # are skipped:
//
//	# fade in the first input, then pan across
//	0     list 1 0 0 0 0
//	0     ramp 500
//	500   master 1
//	2000  pan 1 3
package control
