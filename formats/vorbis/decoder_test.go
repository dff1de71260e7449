// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// mockOggVorbisReader simulates oggvorbis.Reader: Read fills whole frames and
// returns the number of values written.
type mockOggVorbisReader struct {
	channels int
	samples  []float32
	err      error
}

func (m *mockOggVorbisReader) SampleRate() int { return 48000 }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.samples) == 0 {
		return 0, io.EOF
	}
	n := copy(buf[:len(buf)-len(buf)%m.channels], m.samples)
	m.samples = m.samples[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{[]byte("OggS but not really"), nil} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); !errors.Is(err, ErrNotVorbisFile) {
			t.Errorf("Decode(%q) error = %v, want ErrNotVorbisFile", data, err)
		}
	}
}

func TestSource_ReadSamples_CountsValues(t *testing.T) {
	t.Parallel()

	dec := &mockOggVorbisReader{channels: 2, samples: []float32{0.5, -0.5, 0.25, -0.25, 1, -1}}
	src := &source{dec: dec, sampleRate: 48000, channels: 2}

	// 5 slots hold two whole frames
	buf := make([]float64, 5)
	n, err := src.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}
	want := []float64{0.5, -0.5, 0.25, -0.25}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want[i])
		}
	}

	n, err = src.ReadSamples(buf)
	if n != 2 || err != nil {
		t.Fatalf("second ReadSamples() = %d, %v, want 2, nil", n, err)
	}
	if n, err := src.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("third ReadSamples() = %d, %v, want 0, EOF", n, err)
	}
	if n, err := src.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("read after end = %d, %v, want 0, EOF", n, err)
	}
}

func TestSource_ReadSamples_Short(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggVorbisReader{channels: 2, samples: []float32{1, 1}}, channels: 2}
	if n, err := src.ReadSamples(make([]float64, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(1 slot) = %d, %v, want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockOggVorbisReader{channels: 1, err: io.ErrUnexpectedEOF}, channels: 1}
	if _, err := src.ReadSamples(make([]float64, 8)); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrUnexpectedEOF", err)
	}
}
