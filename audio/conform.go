// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Conform adapts src to the given sample rate and channel count. A source
// that already matches is returned unchanged.
//
// Channel conversion downmixes by averaging, spreads mono over every output
// channel, and goes through mono for any other pair of counts.
func Conform(src Source, rate, channels int) (Source, error) {
	if rate < 1 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidRate, rate)
	}
	if channels < 1 || src.Channels() < 1 {
		return nil, fmt.Errorf("%w: %d to %d channels", ErrInvalidChannels, src.Channels(), channels)
	}

	if src.SampleRate() != rate {
		src = NewResampler(src, rate)
	}

	switch {
	case src.Channels() == channels:
		return src, nil
	case channels == 1:
		return NewMonoMixer(src), nil
	case src.Channels() == 1:
		return NewUpmixer(src, channels)
	default:
		return NewUpmixer(NewMonoMixer(src), channels)
	}
}

// ReadFull drains src in reads of bufSize values and returns everything
// it produced. io.EOF is not reported as an error.
func ReadFull(src Source, bufSize int) ([]float64, error) {
	ch := src.Channels()
	bufSize = max(bufSize-bufSize%ch, ch)

	var out []float64
	buf := make([]float64, bufSize)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
	}
}
