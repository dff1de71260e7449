// SPDX-License-Identifier: EPL-2.0

package state

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

const (
	magic = "AUDMIX"

	// Version is the record version written by Save.
	Version uint32 = 1
)

// Settings are the persisted mixer settings.
type Settings struct {
	RampMs  float64
	Verbose bool
}

// Target is anything the settings can be restored onto.
type Target interface {
	SetRampTime(ms float64) error
	SetVerbose(on bool)
}

// Capturer exposes the settings of a running mixer.
type Capturer interface {
	RampMs() float64
	Verbose() bool
}

// Capture reads the persisted settings from c.
func Capture(c Capturer) Settings {
	return Settings{RampMs: c.RampMs(), Verbose: c.Verbose()}
}

// Apply restores s onto t.
func (s Settings) Apply(t Target) error {
	if err := t.SetRampTime(s.RampMs); err != nil {
		return fmt.Errorf("restore ramp time: %w", err)
	}
	t.SetVerbose(s.Verbose)
	return nil
}

func (s Settings) valid() bool {
	return !math.IsNaN(s.RampMs) && !math.IsInf(s.RampMs, 0) && s.RampMs > 0
}

// Save writes s to w.
func Save(w io.Writer, s Settings) error {
	if !s.valid() {
		return fmt.Errorf("%w: ramp %v ms", ErrBadSettings, s.RampMs)
	}

	if _, err := io.WriteString(w, magic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, Version); err != nil {
		return fmt.Errorf("write version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, s.RampMs); err != nil {
		return fmt.Errorf("write ramp: %w", err)
	}

	var verbose uint8
	if s.Verbose {
		verbose = 1
	}
	if err := binary.Write(w, binary.LittleEndian, verbose); err != nil {
		return fmt.Errorf("write verbose: %w", err)
	}
	return nil
}

// Load reads a record written by Save.
func Load(r io.Reader) (Settings, error) {
	var s Settings

	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return s, fmt.Errorf("read magic: %w", err)
	}
	if string(header) != magic {
		return s, ErrBadMagic
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return s, fmt.Errorf("read version: %w", err)
	}
	if version == 0 || version > Version {
		return s, fmt.Errorf("%w: %d (supported up to %d)", ErrVersion, version, Version)
	}

	if err := binary.Read(r, binary.LittleEndian, &s.RampMs); err != nil {
		return s, fmt.Errorf("read ramp: %w", err)
	}

	var verbose uint8
	if err := binary.Read(r, binary.LittleEndian, &verbose); err != nil {
		return s, fmt.Errorf("read verbose: %w", err)
	}
	s.Verbose = verbose != 0

	if !s.valid() {
		return Settings{}, fmt.Errorf("%w: ramp %v ms", ErrBadSettings, s.RampMs)
	}
	return s, nil
}

// SaveFile writes s to path, replacing any existing file.
func SaveFile(path string, s Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	bw := bufio.NewWriter(f)
	if err := Save(bw, s); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// LoadFile reads settings from path.
func LoadFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w", err)
	}
	defer f.Close()

	s, err := Load(bufio.NewReader(f))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
