// SPDX-License-Identifier: EPL-2.0

package output

import (
	"io"

	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/utils"
	"github.com/pkg/errors"
)

// StreamSink collects 16-bit samples and writes them as one WAV file when
// closed. It suits writers that cannot seek, such as stdout.
type StreamSink struct {
	w          io.Writer
	channels   int
	sampleRate int
	samples    []int16
	closed     bool
}

func NewStreamSink(w io.Writer, channels, sampleRate int) *StreamSink {
	return &StreamSink{w: w, channels: channels, sampleRate: sampleRate}
}

func (s *StreamSink) Name() string { return "stream" }

func (s *StreamSink) Write(interleaved []float64) error {
	if s.closed {
		return ErrClosed
	}
	for _, v := range interleaved {
		s.samples = append(s.samples, utils.FloatToInt16(v))
	}
	return nil
}

// Len returns the number of buffered samples.
func (s *StreamSink) Len() int { return len(s.samples) }

func (s *StreamSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return errors.Wrap(wav.WriteWAV16(s.w, s.sampleRate, s.channels, s.samples), "writing wav stream")
}
