// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/flac"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/output"
)

// DefaultBufFrames is the read size Mixdown uses when bufFrames is zero.
const DefaultBufFrames = 4096

// NewRegistry returns a registry holding every decoder in this module,
// keyed by file extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})
	return reg
}

// OpenFiles decodes every path through reg. On error the sources opened so
// far are closed.
func OpenFiles(reg *audio.Registry, paths []string) ([]audio.Source, error) {
	sources := make([]audio.Source, 0, len(paths))

	closeAll := func() {
		for _, src := range sources {
			_ = src.Close()
		}
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("%w", err)
		}

		// decoders close f once the source is closed
		src, err := reg.DecodeFile(path, f)
		if err != nil {
			_ = f.Close()
			closeAll()
			return nil, err
		}
		sources = append(sources, src)
	}

	return sources, nil
}

// Mixdown copies src into sink until src is exhausted or ctx is done, and
// returns the number of frames written. Neither src nor sink is closed.
func Mixdown(ctx context.Context, src audio.Source, sink output.Sink, bufFrames int) (int, error) {
	if bufFrames <= 0 {
		bufFrames = DefaultBufFrames
	}
	channels := src.Channels()
	buf := make([]float64, bufFrames*channels)

	frames := 0
	for {
		if err := ctx.Err(); err != nil {
			return frames, fmt.Errorf("%w", err)
		}

		n, err := src.ReadSamples(buf)
		if n > 0 {
			if werr := sink.Write(buf[:n]); werr != nil {
				return frames, fmt.Errorf("%s sink: %w", sink.Name(), werr)
			}
			frames += n / channels
		}

		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("%w", err)
		}
	}
}
