// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package output

import (
	"context"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/audmix/audio"
	"github.com/pkg/errors"
)

// oto allows one context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
	otoOpts oto.NewContextOptions
)

// Player plays a Source on the default audio device.
type Player struct {
	player *oto.Player
}

// NewPlayer prepares live playback of src. Every Player in a process must use
// the same sample rate and channel count.
func NewPlayer(src audio.Source) (*Player, error) {
	opts := oto.NewContextOptions{
		SampleRate:   src.SampleRate(),
		ChannelCount: src.Channels(),
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	}

	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&opts)
		if otoErr == nil {
			<-ready
			otoOpts = opts
		}
	})
	if otoErr != nil {
		return nil, errors.Wrap(otoErr, "opening audio device")
	}
	if opts.SampleRate != otoOpts.SampleRate || opts.ChannelCount != otoOpts.ChannelCount {
		return nil, errors.Wrapf(ErrInvalidSettings, "audio device already open at %d Hz, %d channels",
			otoOpts.SampleRate, otoOpts.ChannelCount)
	}

	return &Player{player: otoCtx.NewPlayer(newFloat32Reader(src))}, nil
}

// Play starts playback and blocks until the source is drained or ctx is done.
func (p *Player) Play(ctx context.Context) error {
	p.player.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for p.player.IsPlaying() {
		select {
		case <-ctx.Done():
			p.player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return errors.Wrap(p.player.Err(), "playback")
}

func (p *Player) Close() error {
	return p.player.Close()
}
