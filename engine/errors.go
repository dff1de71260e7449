// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrInputCount     = errors.New("input count does not match the mixer")
	ErrInvalidOptions = errors.New("invalid engine options")
	ErrClosed         = errors.New("engine closed")
)
