// This tool creates a WAV file of silence with the requested format. It is
// handy to produce fixtures for every sample type and container layout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/cwbudde/sndfile"
)

const blockFrames = 4096

var (
	errUnknownType   = errors.New("unknown sample type")
	errUnknownFormat = errors.New("unknown container format")
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("sfnew", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	rate := flagSet.Int("rate", 48000, "sample rate in hertz")
	channels := flagSet.Int("channels", 1, "number of channels")
	sampleType := flagSet.String("type", "16", "sample type: 16, 24, 32 or float")
	format := flagSet.String("format", "canonical", "fmt chunk layout: canonical or extensible")
	length := flagSet.Float64("length", 1, "length in seconds of output file")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	props := &sndfile.Properties{
		SampleRate: *rate,
		Channels:   *channels,
	}

	if props.SampleType, err = parseSampleType(*sampleType); err != nil {
		return err
	}

	if props.Format, err = parseContainer(*format); err != nil {
		return err
	}

	if err := props.Validate(); err != nil {
		return err
	}

	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", *output, err)
	}

	h, err := sndfile.OpenWrite(file, *output, props)
	if err != nil {
		return err
	}

	log.Printf("writing %f sec of silence to %s: %s", *length, *output, h)

	err = writeSilence(file, h, int64(math.Round(float64(*rate) * *length)))

	return errors.Join(err, sndfile.ReleaseHandle(h))
}

func writeSilence(file *os.File, h *sndfile.Handle, frames int64) error {
	blockAlign := int64(h.Format().BlockAlign)
	block := make([]byte, blockFrames*blockAlign)

	for remaining := frames; remaining > 0; {
		n := min(remaining, blockFrames)

		if _, err := file.Write(block[:n*blockAlign]); err != nil {
			return fmt.Errorf("failed to write frames: %w", err)
		}

		if err := h.Advance(n, sndfile.OpWrite); err != nil {
			return err
		}

		remaining -= n
	}

	if err := sndfile.UpdateHeader(h); err != nil {
		return err
	}

	return file.Sync()
}

func parseSampleType(s string) (sndfile.SampleType, error) {
	switch strings.ToLower(s) {
	case "16":
		return sndfile.SampleTypeInt16, nil
	case "24":
		return sndfile.SampleTypeInt24, nil
	case "32":
		return sndfile.SampleTypeInt32, nil
	case "float", "f32":
		return sndfile.SampleTypeFloat32, nil
	default:
		return sndfile.SampleTypeUnknown, fmt.Errorf("%w: %q", errUnknownType, s)
	}
}

func parseContainer(s string) (sndfile.ContainerFormat, error) {
	switch strings.ToLower(s) {
	case "canonical", "wav":
		return sndfile.ContainerCanonical, nil
	case "extensible", "wavex":
		return sndfile.ContainerExtensible, nil
	default:
		return sndfile.ContainerUnknown, fmt.Errorf("%w: %q", errUnknownFormat, s)
	}
}
