// SPDX-License-Identifier: EPL-2.0

package output

import (
	"bufio"
	"io"
	"os"

	"github.com/ik5/audmix/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
	"github.com/pkg/errors"
)

// flacBlockSize is the number of frames per encoded FLAC frame.
const flacBlockSize = 4096

type flacSink struct {
	enc        *flac.Encoder
	w          *bufio.Writer
	closer     io.Closer
	channels   frame.Channels
	sampleRate int
	bitDepth   int

	// pending samples per channel, flushed in flacBlockSize frames
	pending [][]int32
	// frames encoded so far, the number of the next frame's first sample
	written uint64
	closed  bool
}

func newFileFlacSink(settings Settings) (Sink, error) {
	f, err := os.Create(settings.Path)
	if err != nil {
		return nil, errors.Wrap(err, "creating flac output")
	}
	s, err := NewFLACSink(f, settings)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// NewFLACSink encodes verbatim FLAC frames to w. Constant blocks, such as
// silence, use constant subframes. w is closed with the sink when it is an
// io.Closer.
func NewFLACSink(w io.Writer, settings Settings) (Sink, error) {
	var channels frame.Channels
	switch settings.Channels {
	case 1:
		channels = frame.ChannelsMono
	case 2:
		channels = frame.ChannelsLR
	default:
		return nil, errors.Wrapf(ErrInvalidSettings, "flac: %d channels", settings.Channels)
	}

	bw := bufio.NewWriter(w)
	enc, err := flac.NewEncoder(bw, &meta.StreamInfo{
		BlockSizeMin:  16,
		BlockSizeMax:  65535,
		SampleRate:    uint32(settings.SampleRate),
		NChannels:     uint8(settings.Channels),
		BitsPerSample: uint8(settings.BitsPerSample),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating flac encoder")
	}

	s := &flacSink{
		enc:        enc,
		w:          bw,
		channels:   channels,
		sampleRate: settings.SampleRate,
		bitDepth:   settings.BitsPerSample,
		pending:    make([][]int32, settings.Channels),
	}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}

func (s *flacSink) Name() string { return "flac" }

func (s *flacSink) Write(interleaved []float64) error {
	if s.closed {
		return ErrClosed
	}
	n := len(s.pending)
	if len(interleaved)%n != 0 {
		return errors.Wrapf(ErrInvalidSettings, "%d samples for %d channels", len(interleaved), n)
	}

	for i, v := range interleaved {
		s.pending[i%n] = append(s.pending[i%n], int32(utils.FloatToInt(v, s.bitDepth)))
	}

	for len(s.pending[0]) >= flacBlockSize {
		if err := s.writeFrame(flacBlockSize); err != nil {
			return err
		}
	}
	return nil
}

// writeFrame encodes the first size pending frames.
func (s *flacSink) writeFrame(size int) error {
	subframes := make([]*frame.Subframe, len(s.pending))
	for c, samples := range s.pending {
		block := make([]int32, size)
		copy(block, samples)

		pred := frame.PredConstant
		for _, v := range block[1:] {
			if v != block[0] {
				pred = frame.PredVerbatim
				break
			}
		}
		subframes[c] = &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: pred},
			Samples:   block,
			NSamples:  size,
		}
		s.pending[c] = samples[:copy(samples, samples[size:])]
	}

	fr := &frame.Frame{
		Header: frame.Header{
			HasFixedBlockSize: false,
			BlockSize:         uint16(size),
			Num:               s.written,
			SampleRate:        uint32(s.sampleRate),
			Channels:          s.channels,
			BitsPerSample:     uint8(s.bitDepth),
		},
		Subframes: subframes,
	}
	s.written += uint64(size)
	return errors.Wrap(s.enc.WriteFrame(fr), "writing flac frame")
}

func (s *flacSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if rest := len(s.pending[0]); rest > 0 {
		err = s.writeFrame(rest)
	}
	if cerr := s.enc.Close(); err == nil {
		err = errors.Wrap(cerr, "finishing flac")
	}
	if ferr := s.w.Flush(); err == nil {
		err = errors.Wrap(ferr, "flushing flac")
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func init() {
	fileSinkMap[".flac"] = newFileFlacSink
}
