// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming building blocks that feed the mixer.
//
//   - Source, the pull interface every decoder and converter implements
//   - Resampler for sample rate conversion
//   - MonoMixer and Upmixer for channel conversion
//   - Conform, which chains the above to reach a given rate and layout
//   - Registry, which maps file extensions to decoders
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float64) (int, error)
//	    Close() error
//	}
//
// ReadSamples fills dst with interleaved samples and returns the number of
// values written. A read may return data together with io.EOF; after that
// the source keeps returning 0, io.EOF.
//
// # Resampling
//
// The Resampler uses Catmull-Rom interpolation over a four frame window.
// Downsampling passes the input through a one-pole low-pass first:
//
//	resampler := audio.NewResampler(source, 48000)
//	buf := make([]float64, 4096)
//	n, err := resampler.ReadSamples(buf)
//
// # Channel Conversion
//
// MonoMixer averages all channels; Upmixer copies a mono source onto every
// output channel. Conform picks whichever is needed:
//
//	bus, err := audio.Conform(source, 48000, 2)
//
// # Sample Format
//
// Samples are float64, nominally in [-1.0, 1.0]. Values outside that range
// are passed through untouched; clipping is left to the output stage.
//
// # Error Handling
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n] first, it may hold the tail of the stream
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
