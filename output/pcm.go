// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/ik5/audmix/audio"
)

// float32Reader streams a Source as little endian float32 bytes.
type float32Reader struct {
	src audio.Source
	buf []float64
	eof bool
}

func newFloat32Reader(src audio.Source) *float32Reader {
	return &float32Reader{src: src}
}

func (r *float32Reader) Read(p []byte) (int, error) {
	if r.eof {
		return 0, io.EOF
	}

	// whole frames only
	frameBytes := 4 * r.src.Channels()
	want := len(p) / frameBytes * r.src.Channels()
	if want == 0 {
		return 0, nil
	}
	if cap(r.buf) < want {
		r.buf = make([]float64, want)
	}

	n, err := r.src.ReadSamples(r.buf[:want])
	for i, v := range r.buf[:n] {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(float32(v)))
	}

	if errors.Is(err, io.EOF) {
		r.eof = true
		if n > 0 {
			return n * 4, nil
		}
		return 0, io.EOF
	}
	return n * 4, err
}
