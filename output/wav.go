// SPDX-License-Identifier: EPL-2.0

package output

import (
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audmix/utils"
	"github.com/pkg/errors"
)

const wavFormatPCM = 1

type wavSink struct {
	enc      *wav.Encoder
	closer   io.Closer
	buf      *goaudio.IntBuffer
	bitDepth int
	closed   bool
}

func newFileWavSink(settings Settings) (Sink, error) {
	f, err := os.Create(settings.Path)
	if err != nil {
		return nil, errors.Wrap(err, "creating wav output")
	}
	return NewWAVSink(f, settings), nil
}

// NewWAVSink encodes to ws through go-audio/wav. ws is closed with the sink
// when it is an io.Closer.
func NewWAVSink(ws io.WriteSeeker, settings Settings) Sink {
	s := &wavSink{
		enc:      wav.NewEncoder(ws, settings.SampleRate, settings.BitsPerSample, settings.Channels, wavFormatPCM),
		bitDepth: settings.BitsPerSample,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{
				NumChannels: settings.Channels,
				SampleRate:  settings.SampleRate,
			},
			SourceBitDepth: settings.BitsPerSample,
		},
	}
	if c, ok := ws.(io.Closer); ok {
		s.closer = c
	}
	return s
}

func (s *wavSink) Name() string { return "wav" }

func (s *wavSink) Write(interleaved []float64) error {
	if s.closed {
		return ErrClosed
	}
	if cap(s.buf.Data) < len(interleaved) {
		s.buf.Data = make([]int, len(interleaved))
	}
	s.buf.Data = s.buf.Data[:len(interleaved)]

	for i, v := range interleaved {
		s.buf.Data[i] = utils.FloatToInt(v, s.bitDepth)
	}
	return errors.Wrap(s.enc.Write(s.buf), "writing wav")
}

func (s *wavSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := errors.Wrap(s.enc.Close(), "finishing wav")
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func init() {
	fileSinkMap[".wav"] = newFileWavSink
}
