// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/control"
	"github.com/ik5/audmix/mixer"
)

// DefaultBlockSize is the largest block rendered in one mixer call.
const DefaultBlockSize = 64

// Options configures an Engine. Zero fields take their defaults.
type Options struct {
	// SampleRate of the mix in Hz. Zero keeps the mixer's rate.
	SampleRate int
	// BlockSize caps the frames rendered per mixer call.
	BlockSize int
	Logger    *slog.Logger
}

type input struct {
	src  audio.Source
	done bool
}

// fill reads whole frames into buf until it is full or the source ends.
func (in *input) fill(buf []float64, channels int) (int, error) {
	got := 0
	for got < len(buf) && !in.done {
		n, err := in.src.ReadSamples(buf[got:])
		got += n
		if errors.Is(err, io.EOF) {
			in.done = true
			break
		}
		if err != nil {
			return got / channels, err
		}
		if n == 0 {
			// a source that returns nothing without EOF is treated as ended
			in.done = true
		}
	}
	return got / channels, nil
}

// Engine hosts a Mixer. See the package documentation.
type Engine struct {
	mu sync.Mutex

	mix       *mixer.Mixer
	inputs    []input
	rate      int
	buses     int
	blockSize int

	// per input interleaved read buffer and the mixer's stacked buffers
	frames [][]float64
	ins    [][]float64
	outs   [][]float64

	cues     []scheduled
	position int64

	rampDone chan struct{}
	log      *slog.Logger
	closed   bool
}

type scheduled struct {
	offset int64
	cue    control.Cue
}

// New wraps m. inputs must hold exactly m.Inputs() sources; each is
// conformed to the engine rate and to m.Buses() channels. The engine takes
// ownership of the sources and of m's ramp completion callback, which is
// chained rather than dropped.
func New(m *mixer.Mixer, inputs []audio.Source, opts Options) (*Engine, error) {
	if len(inputs) != m.Inputs() {
		return nil, fmt.Errorf("%w: got %d, mixer has %d", ErrInputCount, len(inputs), m.Inputs())
	}

	rate := opts.SampleRate
	if rate == 0 {
		rate = int(math.Round(m.SampleRate()))
	}
	if rate < 1 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidOptions, rate)
	}

	blockSize := opts.BlockSize
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}
	if blockSize < 1 {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidOptions, blockSize)
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	if err := m.SetSampleRate(float64(rate)); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	buses := m.Buses()
	e := &Engine{
		mix:       m,
		inputs:    make([]input, len(inputs)),
		rate:      rate,
		buses:     buses,
		blockSize: blockSize,
		frames:    make([][]float64, len(inputs)),
		ins:       make([][]float64, len(inputs)*buses),
		outs:      make([][]float64, buses),
		rampDone:  make(chan struct{}, 1),
		log:       log,
	}

	for i, src := range inputs {
		conformed, err := audio.Conform(src, rate, buses)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		e.inputs[i].src = conformed
		e.frames[i] = make([]float64, blockSize*buses)
	}
	for i := range e.ins {
		e.ins[i] = make([]float64, blockSize)
	}
	for b := range e.outs {
		e.outs[b] = make([]float64, blockSize)
	}

	prev := m.SetOnRampDone(nil)
	m.SetOnRampDone(func() {
		if prev != nil {
			prev()
		}
		select {
		case e.rampDone <- struct{}{}:
		default:
		}
	})

	return e, nil
}

func (e *Engine) SampleRate() int { return e.rate }

// Channels is the number of buses.
func (e *Engine) Channels() int { return e.buses }

// Position returns the number of frames rendered so far.
func (e *Engine) Position() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.position
}

// RampDone delivers a value each time a ramp completes. Completions that
// arrive while a value is still pending are merged.
func (e *Engine) RampDone() <-chan struct{} { return e.rampDone }

// Apply validates msg and applies it between two blocks.
func (e *Engine) Apply(msg control.Message) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reply, err := control.Apply(e.mix, msg)
	e.logRejected(msg.String(), err)
	return reply, err
}

// ApplyLine parses and applies one control line.
func (e *Engine) ApplyLine(line string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reply, err := control.ApplyLine(e.mix, line)
	e.logRejected(line, err)
	return reply, err
}

// argErrors are the message errors raised before a command reaches the
// mixer, which logs its own rejections.
var argErrors = []error{
	control.ErrEmptyMessage,
	control.ErrUnknownSelector,
	control.ErrArgCount,
	control.ErrArgType,
	control.ErrArgRange,
}

// logRejected reports a rejected message argument when the mixer is verbose.
func (e *Engine) logRejected(msg string, err error) {
	if err == nil || !e.mix.Verbose() {
		return
	}
	for _, target := range argErrors {
		if errors.Is(err, target) {
			e.log.Warn("control command rejected", "msg", msg, "err", err)
			return
		}
	}
}

// Report returns the mixer report.
func (e *Engine) Report() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mix.Report()
}

// Snapshot returns a copy of the mixer state.
func (e *Engine) Snapshot() mixer.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mix.Snapshot()
}

// RampMs returns the mixer ramp time.
func (e *Engine) RampMs() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mix.RampMs()
}

// Verbose reports whether the mixer logs rejected messages.
func (e *Engine) Verbose() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mix.Verbose()
}

// Schedule queues cues relative to the start of the stream. A cue whose
// offset has already been rendered applies before the next block.
func (e *Engine) Schedule(cues []control.Cue) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, c := range cues {
		e.cues = append(e.cues, scheduled{offset: c.Offset(e.rate), cue: c})
	}
	slices.SortStableFunc(e.cues, func(a, b scheduled) int { return cmp.Compare(a.offset, b.offset) })
}

// Pending returns the number of cues not yet applied.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.cues)
}

// applyDue applies every cue at or before the current position. A cue that
// fails is logged and dropped.
func (e *Engine) applyDue() {
	due := 0
	for due < len(e.cues) && e.cues[due].offset <= e.position {
		c := e.cues[due]
		if _, err := control.Apply(e.mix, c.cue.Msg); err != nil {
			e.log.Warn("cue rejected", "at_ms", c.cue.AtMs, "msg", c.cue.Msg.String(), "err", err)
		} else {
			e.log.Debug("cue applied", "at_ms", c.cue.AtMs, "frame", e.position, "msg", c.cue.Msg.String())
		}
		due++
	}
	e.cues = e.cues[due:]
}

// blockLength caps n at the next cue.
func (e *Engine) blockLength(n int) int {
	if len(e.cues) > 0 {
		n = int(min(int64(n), e.cues[0].offset-e.position))
	}
	return n
}

// ReadSamples renders interleaved bus samples into dst. len(dst) must be a
// multiple of Channels.
func (e *Engine) ReadSamples(dst []float64) (int, error) {
	if len(dst)%e.buses != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return 0, ErrClosed
	}

	frames := len(dst) / e.buses
	written := 0
	for written < frames {
		if e.exhausted() {
			return written * e.buses, io.EOF
		}

		e.applyDue()
		n := e.blockLength(min(e.blockSize, frames-written))

		got, err := e.pull(n)
		if err != nil {
			return written * e.buses, err
		}
		if e.exhausted() {
			// the tail of the last input ends the stream
			n = got
		}

		e.mix.RenderBlock(e.ins, e.outs, n)
		out := dst[written*e.buses : (written+n)*e.buses]
		for f := range n {
			for b := range e.buses {
				out[f*e.buses+b] = e.outs[b][f]
			}
		}

		written += n
		e.position += int64(n)
	}

	if e.exhausted() {
		return written * e.buses, io.EOF
	}
	return written * e.buses, nil
}

// pull reads n frames from every input into the mixer's stacked buffers and
// returns the most frames any input produced. Missing frames are zero.
func (e *Engine) pull(n int) (int, error) {
	most := 0
	for i := range e.inputs {
		in := &e.inputs[i]
		buf := e.frames[i][:n*e.buses]

		got, err := in.fill(buf, e.buses)
		if err != nil {
			return 0, fmt.Errorf("input %d: %w", i, err)
		}
		clear(buf[got*e.buses:])
		most = max(most, got)

		for b := range e.buses {
			ch := e.ins[i+b*len(e.inputs)]
			for f := range n {
				ch[f] = buf[f*e.buses+b]
			}
		}
	}
	return most, nil
}

func (e *Engine) exhausted() bool {
	for i := range e.inputs {
		if !e.inputs[i].done {
			return false
		}
	}
	return true
}

// Close closes every input. Further reads return ErrClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	var errs []error
	for i := range e.inputs {
		if err := e.inputs[i].src.Close(); err != nil {
			errs = append(errs, fmt.Errorf("input %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
