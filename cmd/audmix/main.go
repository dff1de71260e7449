// SPDX-License-Identifier: EPL-2.0

// Command audmix mixes audio files into one or two buses.
//
//	audmix [flags] input1 input2 [input...]
//
// Inputs may be WAV, AIFF, MP3, Ogg Vorbis or FLAC. The mix goes to a WAV or
// FLAC file, to stdout as WAV with -out -, or to the sound card with
// -out play. Gain changes come from a cue file and, with -interactive, from
// control messages typed on stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/control"
	"github.com/ik5/audmix/engine"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/output"
	"github.com/ik5/audmix/state"
	"golang.org/x/term"
)

type options struct {
	buses       int
	rampMs      float64
	rate        int
	block       int
	gain        float64
	cues        string
	out         string
	bits        int
	statePath   string
	save        bool
	verbose     bool
	interactive bool
	inputs      []string
	set         map[string]bool
}

func parseFlags(args []string) (options, error) {
	var opts options

	fset := flag.NewFlagSet("audmix", flag.ContinueOnError)
	fset.IntVar(&opts.buses, "buses", mixer.DefaultBuses, "output buses (1 or 2)")
	fset.Float64Var(&opts.rampMs, "ramp", mixer.DefaultRampMs, "ramp time in milliseconds")
	fset.IntVar(&opts.rate, "rate", 0, "mix sample rate in Hz (default: rate of the first input)")
	fset.IntVar(&opts.block, "block", engine.DefaultBlockSize, "frames per rendered block")
	fset.Float64Var(&opts.gain, "gain", 1, "initial gain of every input")
	fset.StringVar(&opts.cues, "cues", "", "cue file: lines of '<ms> <message>'")
	fset.StringVar(&opts.out, "out", "mix.wav", "output: a .wav or .flac path, - for stdout, play for the sound card")
	fset.IntVar(&opts.bits, "bits", 16, "bits per sample of file output (16 or 24)")
	fset.StringVar(&opts.statePath, "state", "", "settings file to load ramp and verbose from")
	fset.BoolVar(&opts.save, "save", false, "write the final settings back to -state")
	fset.BoolVar(&opts.verbose, "verbose", false, "log rejected messages and cue activity")
	fset.BoolVar(&opts.interactive, "interactive", false, "read control messages from stdin")

	fset.Usage = func() {
		fmt.Fprintln(fset.Output(), "usage: audmix [flags] input1 input2 [input...]")
		fset.PrintDefaults()
	}

	if err := fset.Parse(args); err != nil {
		return opts, err
	}

	opts.inputs = fset.Args()
	if len(opts.inputs) < mixer.MinInputs {
		fset.Usage()
		return opts, fmt.Errorf("need at least %d inputs, got %d", mixer.MinInputs, len(opts.inputs))
	}
	if opts.save && opts.statePath == "" {
		return opts, errors.New("-save requires -state")
	}

	opts.set = make(map[string]bool)
	fset.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// settings merges the state file with the flags; flags given on the command
// line win.
func (opts options) settings() (state.Settings, error) {
	s := state.Settings{RampMs: opts.rampMs, Verbose: opts.verbose}
	if opts.statePath == "" {
		return s, nil
	}

	saved, err := state.LoadFile(opts.statePath)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}

	if !opts.set["ramp"] {
		s.RampMs = saved.RampMs
	}
	if !opts.set["verbose"] {
		s.Verbose = saved.Verbose
	}
	return s, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "audmix:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "audmix:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	settings, err := opts.settings()
	if err != nil {
		return err
	}
	log := newLogger(settings.Verbose)

	sources, err := audmix.OpenFiles(audmix.NewRegistry(), opts.inputs)
	if err != nil {
		return err
	}

	rate := opts.rate
	if rate == 0 {
		rate = sources[0].SampleRate()
	}

	m, err := mixer.New(mixer.Config{
		Inputs:     len(sources),
		Buses:      opts.buses,
		RampMs:     settings.RampMs,
		SampleRate: float64(rate),
		Verbose:    settings.Verbose,
		Logger:     log,
	})
	if err != nil {
		closeAll(sources)
		return err
	}

	levels := make([]float64, m.Inputs())
	for i := range levels {
		levels[i] = opts.gain
	}
	if err := m.SetLevels(1, levels); err != nil {
		closeAll(sources)
		return err
	}

	eng, err := engine.New(m, sources, engine.Options{SampleRate: rate, BlockSize: opts.block, Logger: log})
	if err != nil {
		closeAll(sources)
		return err
	}
	defer eng.Close()

	if opts.cues != "" {
		cues, err := readCues(opts.cues)
		if err != nil {
			return err
		}
		eng.Schedule(cues)
		log.Debug("cues scheduled", "file", opts.cues, "count", len(cues))
	}

	go watchRamps(ctx, eng, log)
	if opts.interactive {
		go readControl(ctx, eng, os.Stdin, os.Stderr)
	}

	log.Info("mixing", "inputs", len(sources), "buses", eng.Channels(), "rate", rate, "out", opts.out)
	if err := render(ctx, eng, opts); err != nil {
		return err
	}

	if opts.save {
		s := state.Capture(eng)
		if err := state.SaveFile(opts.statePath, s); err != nil {
			return err
		}
		log.Debug("settings saved", "file", opts.statePath, "ramp_ms", s.RampMs, "verbose", s.Verbose)
	}
	return nil
}

func render(ctx context.Context, eng *engine.Engine, opts options) error {
	switch opts.out {
	case "play":
		player, err := output.NewPlayer(eng)
		if err != nil {
			return err
		}
		defer player.Close()
		return ignoreCancel(player.Play(ctx))

	case "-":
		sink := output.NewStreamSink(os.Stdout, eng.Channels(), eng.SampleRate())
		_, err := audmix.Mixdown(ctx, eng, sink, 0)
		return errors.Join(ignoreCancel(err), sink.Close())
	}

	sink, err := output.Create(output.Settings{
		Path:          opts.out,
		Channels:      eng.Channels(),
		SampleRate:    eng.SampleRate(),
		BitsPerSample: opts.bits,
	})
	if err != nil {
		return err
	}
	_, err = audmix.Mixdown(ctx, eng, sink, 0)
	return errors.Join(ignoreCancel(err), sink.Close())
}

// ignoreCancel treats an interrupted mix as a finished one, so the file
// written so far is still closed properly.
func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func readCues(path string) ([]control.Cue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cues, err := control.ParseCues(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cues, nil
}

func watchRamps(ctx context.Context, eng *engine.Engine, log *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-eng.RampDone():
			log.Debug("ramp done", "frame", eng.Position())
		}
	}
}

// readControl applies one control message per line of r. A prompt is shown
// only when r is a terminal.
func readControl(ctx context.Context, eng *engine.Engine, r *os.File, w io.Writer) {
	interactive := term.IsTerminal(int(r.Fd()))
	prompt := func() {
		if interactive {
			fmt.Fprint(w, "> ")
		}
	}

	sc := bufio.NewScanner(r)
	for prompt(); sc.Scan(); prompt() {
		if ctx.Err() != nil {
			return
		}
		reply, err := eng.ApplyLine(sc.Text())
		switch {
		case errors.Is(err, control.ErrEmptyMessage):
		case err != nil:
			fmt.Fprintln(w, "error:", err)
		case reply != "":
			fmt.Fprintln(w, strings.TrimRight(reply, "\n"))
		}
	}
}

func closeAll(sources []audio.Source) {
	for _, src := range sources {
		_ = src.Close()
	}
}
