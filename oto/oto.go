// Package oto plays audio buffers through the oto library.
package oto

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sompyler/sompyler"
)

type (
	OtoContext struct {
		context *oto.Context
	}

	OtoPlayer struct {
		player *oto.Player
		done   chan struct{}
	}
)

// NewContext creates a mono float32 oto context at sompyler.SampleRate and
// waits until the audio device is ready.
func NewContext() (*OtoContext, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sompyler.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context}, nil
}

// Play starts playing buffer and returns immediately.
func (c *OtoContext) Play(buffer sompyler.AudioBuffer) (sompyler.CloserWaiter, error) {
	var b bytes.Buffer
	if err := binary.Write(&b, binary.LittleEndian, []float32(buffer)); err != nil {
		return nil, fmt.Errorf("cannot convert buffer to bytes: %w", err)
	}
	p := &OtoPlayer{player: c.context.NewPlayer(&b), done: make(chan struct{})}
	p.player.Play()
	go func() {
		for p.player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		close(p.done)
	}()
	return p, nil
}

// Wait blocks until the buffer has been played to the end or the player has
// been closed.
func (p *OtoPlayer) Wait() {
	<-p.done
}

// Close stops the playback.
func (p *OtoPlayer) Close() error {
	p.player.Pause()
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
