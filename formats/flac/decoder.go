// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// frameParser is the part of flac.Stream the source uses.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	stream     frameParser
	closer     io.Closer
	sampleRate int
	channels   int
	bitDepth   int

	// current frame, consumed from pos (in frames)
	cur  *frame.Frame
	pos  int
	done bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }

// Close releases the stream and the reader it was decoded from.
func (s *source) Close() error {
	err := s.stream.Close()
	if s.closer != nil {
		// the stream may already have closed it
		if cerr := s.closer.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) {
			err = errors.Join(err, cerr)
		}
	}
	return err
}

func (s *source) ReadSamples(dst []float64) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		if s.cur == nil || s.pos >= int(s.cur.BlockSize) {
			if s.done {
				break
			}
			fr, err := s.stream.ParseNext()
			if errors.Is(err, io.EOF) {
				s.done = true
				break
			}
			if err != nil {
				return written, fmt.Errorf("%w", err)
			}
			if len(fr.Subframes) != s.channels {
				return written, fmt.Errorf("%w: frame has %d channels, stream %d",
					ErrChannelMismatch, len(fr.Subframes), s.channels)
			}
			s.cur, s.pos = fr, 0
			continue
		}

		frames := min((len(dst)-written)/s.channels, int(s.cur.BlockSize)-s.pos)
		for f := range frames {
			for c, sub := range s.cur.Subframes {
				dst[written+f*s.channels+c] = utils.IntToFloat(int(sub.Samples[s.pos+f]), s.bitDepth)
			}
		}
		s.pos += frames
		written += frames * s.channels
	}

	if s.done && written == 0 {
		return 0, io.EOF
	}
	return written, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := stream.Info
	if info.NChannels == 0 || info.SampleRate == 0 {
		stream.Close()
		return nil, ErrNotFlacFile
	}

	var closer io.Closer
	if c, ok := r.(io.Closer); ok {
		closer = c
	}

	return &source{
		stream:     stream,
		closer:     closer,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}
