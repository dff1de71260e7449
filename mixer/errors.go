// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	// ErrInvalidSampleRate indicates a sample rate that is not a positive finite number
	ErrInvalidSampleRate = errors.New("sample rate must be a positive finite number")

	// ErrInvalidRampTime indicates a ramp time that is not a positive finite number
	ErrInvalidRampTime = errors.New("ramp time must be a positive finite number of milliseconds")

	// ErrInvalidValue indicates a gain or adjust value outside of its domain
	ErrInvalidValue = errors.New("value out of range")

	// ErrValueCount indicates a value list that does not match the number of inputs
	ErrValueCount = errors.New("value count does not match input count")

	// ErrIndexOutOfRange indicates an input index outside [0, Inputs)
	ErrIndexOutOfRange = errors.New("input index out of range")

	// ErrUnknownMode indicates an adjust mode other than linear or decibel
	ErrUnknownMode = errors.New("unknown adjust mode")
)
