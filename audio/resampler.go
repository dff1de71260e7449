// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/utils"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation over interleaved samples. The channel count is preserved.
// Downsampling runs the input through a one-pole low-pass first.
//
// Output frame k sits at source position k*ratio, so a source of n frames
// yields floor((n-1)/ratio)+1 frames and the first output equals the first
// input.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float64
	hasFrame [4]bool
	primed   bool

	// position between frames[1] and frames[2], in source frames
	pos float64

	srcBuf []float64
	eof    bool // source exhausted
	done   bool // output exhausted

	filterState []float64
	seeded      bool
	useFilter   bool
	filterAlpha float64
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float64, channels),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float64, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]float64, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one source frame into dst and reports whether it got one.
func (r *Resampler) readFrame(dst []float64) (bool, error) {
	n, err := r.src.ReadSamples(r.srcBuf)
	got := n == r.channels
	if got {
		copy(dst, r.srcBuf)
		if !r.seeded {
			// the first frame passes the filter unchanged
			copy(r.filterState, r.srcBuf)
			r.seeded = true
		}
		if r.useFilter {
			for c := range dst {
				dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = dst[c]
			}
		}
	}

	if errors.Is(err, io.EOF) {
		r.eof = true
		return got, nil
	}
	if err != nil {
		return got, fmt.Errorf("%w", err)
	}
	return got, nil
}

// prime loads the first frame as both t-1 and t0, then reads ahead. An
// empty source returns io.EOF.
func (r *Resampler) prime() error {
	got, err := r.readFrame(r.frames[1])
	if err != nil {
		return err
	}
	if !got {
		return io.EOF
	}
	copy(r.frames[0], r.frames[1])
	r.hasFrame[0], r.hasFrame[1] = true, true

	for i := 2; i < len(r.frames) && !r.eof; i++ {
		if r.hasFrame[i], err = r.readFrame(r.frames[i]); err != nil {
			return err
		}
		if !r.hasFrame[i] {
			break
		}
	}

	r.primed = true
	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	if !r.hasFrame[2] {
		return io.EOF
	}

	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]

	if r.eof || !r.hasFrame[2] {
		r.hasFrame[3] = false
		return nil
	}

	got, err := r.readFrame(r.frames[3])
	r.hasFrame[3] = got
	return err
}

// ReadSamples produces samples at the target rate. len(dst) must be a
// multiple of Channels.
func (r *Resampler) ReadSamples(dst []float64) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			r.done = errors.Is(err, io.EOF)
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				r.done = errors.Is(err, io.EOF)
				return written * r.channels, err
			}
		}

		// past the last source frame
		if !r.hasFrame[2] && r.pos > 0 {
			r.done = true
			return written * r.channels, io.EOF
		}

		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			y1 := r.frames[1][c]
			y2 := y1
			if r.hasFrame[2] {
				y2 = r.frames[2][c]
			}
			y3 := y2
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}
			out[c] = utils.CubicInterpolate(r.frames[0][c], y1, y2, y3, r.pos)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
