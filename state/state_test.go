// SPDX-License-Identifier: EPL-2.0

package state

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"path/filepath"
	"testing"

	"github.com/ik5/audmix/mixer"
)

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	tests := []Settings{
		{RampMs: 30},
		{RampMs: 0.5, Verbose: true},
		{RampMs: 12345.678, Verbose: false},
	}

	for _, want := range tests {
		var buf bytes.Buffer
		if err := Save(&buf, want); err != nil {
			t.Fatalf("Save(%+v) error = %v", want, err)
		}
		if buf.Len() != 6+4+8+1 {
			t.Errorf("record length = %d, want 19", buf.Len())
		}

		got, err := Load(&buf)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != want {
			t.Errorf("Load() = %+v, want %+v", got, want)
		}
	}
}

func TestSave_Layout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Save(&buf, Settings{RampMs: 25, Verbose: true}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	b := buf.Bytes()

	if string(b[:6]) != "AUDMIX" {
		t.Errorf("magic = %q, want AUDMIX", b[:6])
	}
	if v := binary.LittleEndian.Uint32(b[6:10]); v != Version {
		t.Errorf("version = %d, want %d", v, Version)
	}
	if ms := math.Float64frombits(binary.LittleEndian.Uint64(b[10:18])); ms != 25 {
		t.Errorf("ramp = %v, want 25", ms)
	}
	if b[18] != 1 {
		t.Errorf("verbose byte = %d, want 1", b[18])
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	t.Parallel()

	for _, ms := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		var buf bytes.Buffer
		if err := Save(&buf, Settings{RampMs: ms}); !errors.Is(err, ErrBadSettings) {
			t.Errorf("Save(ramp=%v) error = %v, want %v", ms, err, ErrBadSettings)
		}
		if buf.Len() != 0 {
			t.Errorf("Save(ramp=%v) wrote %d bytes, want 0", ms, buf.Len())
		}
	}
}

func record(magic string, version uint32, ms float64, verbose uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString(magic)
	_ = binary.Write(&buf, binary.LittleEndian, version)
	_ = binary.Write(&buf, binary.LittleEndian, ms)
	buf.WriteByte(verbose)
	return buf.Bytes()
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	full := record("AUDMIX", 1, 30, 0)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, io.EOF},
		{"bad magic", record("VST3GO", 1, 30, 0), ErrBadMagic},
		{"version zero", record("AUDMIX", 0, 30, 0), ErrVersion},
		{"newer version", record("AUDMIX", Version+1, 30, 0), ErrVersion},
		{"truncated ramp", full[:14], io.ErrUnexpectedEOF},
		{"missing verbose", full[:18], io.EOF},
		{"zero ramp", record("AUDMIX", 1, 0, 0), ErrBadSettings},
		{"negative ramp", record("AUDMIX", 1, -3, 0), ErrBadSettings},
		{"nan ramp", record("AUDMIX", 1, math.NaN(), 0), ErrBadSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_NonZeroVerbose(t *testing.T) {
	t.Parallel()

	got, err := Load(bytes.NewReader(record("AUDMIX", 1, 10, 7)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestSaveFileLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mixer.state")
	want := Settings{RampMs: 75, Verbose: true}

	if err := SaveFile(path, want); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got != want {
		t.Errorf("LoadFile() = %+v, want %+v", got, want)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("LoadFile(missing) error = nil, want error")
	}
}

func TestCaptureApply(t *testing.T) {
	t.Parallel()

	src, err := mixer.New(mixer.Config{RampMs: 40, Verbose: true})
	if err != nil {
		t.Fatalf("mixer.New() error = %v", err)
	}
	s := Capture(src)
	if s != (Settings{RampMs: 40, Verbose: true}) {
		t.Fatalf("Capture() = %+v", s)
	}

	dst, err := mixer.New(mixer.Config{})
	if err != nil {
		t.Fatalf("mixer.New() error = %v", err)
	}
	if err := s.Apply(dst); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if dst.RampMs() != 40 || !dst.Verbose() {
		t.Errorf("restored ramp=%v verbose=%v, want 40 true", dst.RampMs(), dst.Verbose())
	}
}

func TestApply_ZeroRampIsRejected(t *testing.T) {
	t.Parallel()

	m, err := mixer.New(mixer.Config{RampMs: 40})
	if err != nil {
		t.Fatalf("mixer.New() error = %v", err)
	}
	err = Settings{RampMs: 0}.Apply(m)
	if !errors.Is(err, mixer.ErrInvalidRampTime) {
		t.Errorf("Apply(ramp=0) error = %v, want %v", err, mixer.ErrInvalidRampTime)
	}
	if m.RampMs() != mixer.DefaultRampMs {
		t.Errorf("RampMs() = %v, want %v", m.RampMs(), mixer.DefaultRampMs)
	}
}
