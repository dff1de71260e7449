// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Upmixer copies a mono source onto every output channel.
type Upmixer struct {
	src      Source
	channels int
	tmp      []float64
}

// NewUpmixer spreads the mono src over channels outputs.
func NewUpmixer(src Source, channels int) (*Upmixer, error) {
	if src.Channels() != 1 || channels < 1 {
		return nil, fmt.Errorf("%w: %d to %d channels", ErrInvalidChannels, src.Channels(), channels)
	}
	return &Upmixer{src: src, channels: channels}, nil
}

func (u *Upmixer) SampleRate() int { return u.src.SampleRate() }
func (u *Upmixer) Channels() int   { return u.channels }
func (u *Upmixer) Close() error    { return u.src.Close() }

func (u *Upmixer) ReadSamples(dst []float64) (int, error) {
	if len(dst)%u.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / u.channels
	if cap(u.tmp) < frames {
		u.tmp = make([]float64, frames)
	}

	n, err := u.src.ReadSamples(u.tmp[:frames])
	for f, v := range u.tmp[:n] {
		for c := range u.channels {
			dst[f*u.channels+c] = v
		}
	}
	return n * u.channels, err
}
