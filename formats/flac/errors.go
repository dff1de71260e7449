// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotFlacFile     = errors.New("not a FLAC stream")
	ErrChannelMismatch = errors.New("FLAC frame channel count changed")
)
