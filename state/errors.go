// SPDX-License-Identifier: EPL-2.0

package state

import "errors"

var (
	ErrBadMagic    = errors.New("not an audmix state record")
	ErrVersion     = errors.New("unsupported state version")
	ErrBadSettings = errors.New("invalid saved settings")
)
