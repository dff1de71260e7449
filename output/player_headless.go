// SPDX-License-Identifier: EPL-2.0

//go:build headless

package output

import (
	"context"

	"github.com/ik5/audmix/audio"
)

// Player is unavailable in headless builds.
type Player struct{}

func NewPlayer(src audio.Source) (*Player, error) {
	return nil, ErrPlaybackUnavailable
}

func (p *Player) Play(ctx context.Context) error { return ErrPlaybackUnavailable }

func (p *Player) Close() error { return nil }
