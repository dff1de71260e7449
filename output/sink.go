// SPDX-License-Identifier: EPL-2.0

package output

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrFormatNotSupported is returned when no sink handles the file extension
	ErrFormatNotSupported = errors.New("output format not supported")
	// ErrInvalidSettings is returned for channel counts, rates or bit depths a
	// sink cannot write
	ErrInvalidSettings = errors.New("invalid output settings")
	// ErrClosed is returned when writing to a closed sink
	ErrClosed = errors.New("sink is closed")
	// ErrPlaybackUnavailable is returned by headless builds
	ErrPlaybackUnavailable = errors.New("live playback not available in this build")
)

// Sink receives rendered audio as interleaved samples in [-1, 1].
type Sink interface {
	Name() string
	Write(interleaved []float64) error
	Close() error
}

// Settings configures a file sink.
type Settings struct {
	Path          string
	Channels      int
	SampleRate    int
	BitsPerSample int // 16 when zero
}

func (s Settings) withDefaults() (Settings, error) {
	if s.BitsPerSample == 0 {
		s.BitsPerSample = 16
	}
	switch {
	case s.Channels < 1 || s.Channels > 8:
		return s, errors.Wrapf(ErrInvalidSettings, "%d channels", s.Channels)
	case s.SampleRate < 1:
		return s, errors.Wrapf(ErrInvalidSettings, "sample rate %d", s.SampleRate)
	}
	switch s.BitsPerSample {
	case 16, 24:
	default:
		return s, errors.Wrapf(ErrInvalidSettings, "%d bits per sample", s.BitsPerSample)
	}
	return s, nil
}

type createSinkFunc func(settings Settings) (Sink, error)

var fileSinkMap = make(map[string]createSinkFunc)

// Create opens a file sink chosen by the extension of settings.Path.
func Create(settings Settings) (Sink, error) {
	ext := strings.ToLower(filepath.Ext(settings.Path))
	create, ok := fileSinkMap[ext]
	if !ok || create == nil {
		return nil, errors.Wrap(ErrFormatNotSupported, ext)
	}

	settings, err := settings.withDefaults()
	if err != nil {
		return nil, err
	}
	return create(settings)
}

// Extensions returns the file extensions Create accepts.
func Extensions() []string {
	exts := make([]string, 0, len(fileSinkMap))
	for ext := range fileSinkMap {
		exts = append(exts, ext)
	}
	return exts
}
