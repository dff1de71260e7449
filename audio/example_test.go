// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/audiotest"
)

// Example_resampler converts one second of 44.1 kHz audio to 16 kHz.
func Example_resampler() {
	source := audiotest.NewSineSource(44100, 1, 44100, 440.0)
	resampler := audio.NewResampler(source, 16000)

	fmt.Printf("Output sample rate: %d Hz\n", resampler.SampleRate())
	fmt.Printf("Channels: %d\n", resampler.Channels())

	buf := make([]float64, 4096)
	totalSamples := 0

	for {
		n, err := resampler.ReadSamples(buf)
		totalSamples += n

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	fmt.Printf("Total samples read: %d\n", totalSamples)
	// Output:
	// Output sample rate: 16000 Hz
	// Channels: 1
	// Total samples read: 16000
}

// Example_monoMixer averages six channels into one.
func Example_monoMixer() {
	source := audiotest.NewConstantSource(48000, 6, 100, 0.5)
	mono := audio.NewMonoMixer(source)

	buf := make([]float64, 10)
	n, _ := mono.ReadSamples(buf)

	fmt.Printf("Input: %d channels\n", source.Channels())
	fmt.Printf("Output: %d channel\n", mono.Channels())
	fmt.Printf("Read %d samples, first %.1f\n", n, buf[0])
	// Output:
	// Input: 6 channels
	// Output: 1 channel
	// Read 10 samples, first 0.5
}

// ExampleConform brings a 24 kHz mono file to the 48 kHz stereo layout of
// a two bus mix.
func ExampleConform() {
	source := audiotest.NewConstantSource(24000, 1, 1000, 0.25)

	bus, err := audio.Conform(source, 48000, 2)
	if err != nil {
		fmt.Println(err)
		return
	}

	samples, err := audio.ReadFull(bus, 4096)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d Hz, %d channels, %d frames\n", bus.SampleRate(), bus.Channels(), len(samples)/bus.Channels())
	fmt.Printf("first frame: %.2f %.2f\n", samples[0], samples[1])
	// Output:
	// 48000 Hz, 2 channels, 1999 frames
	// first frame: 0.25 0.25
}

type toneDecoder struct{}

func (toneDecoder) Decode(io.Reader) (audio.Source, error) {
	return audiotest.NewSineSource(8000, 1, 8000, 440), nil
}

// Example_registry picks a decoder by file extension.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("wav", toneDecoder{})
	registry.Register("ogg", toneDecoder{})

	fmt.Println(registry.Formats())

	src, err := registry.DecodeFile("kick.WAV", nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d Hz\n", src.SampleRate())

	_, err = registry.DecodeFile("kick.xyz", nil)
	fmt.Println(errors.Is(err, audio.ErrUnknownFormat))
	// Output:
	// [ogg wav]
	// 8000 Hz
	// true
}
