// SPDX-License-Identifier: EPL-2.0

package control

import "errors"

var (
	ErrEmptyMessage    = errors.New("empty message")
	ErrUnknownSelector = errors.New("unknown selector")
	ErrArgCount        = errors.New("wrong number of arguments")
	ErrArgType         = errors.New("wrong argument type")
	ErrArgRange        = errors.New("argument out of range")
	ErrBadCue          = errors.New("malformed cue")
)
