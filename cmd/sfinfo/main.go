// This tool prints the resolved format of the passed sound files. WAV files
// are parsed as is; for AIFF files it prints the WAV format a conversion of
// the same shape would use.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/sndfile"
	"github.com/go-audio/aiff"
)

const missingPathMessage = "You must pass the path of at least one file to inspect"

var (
	errMissingPath = errors.New("missing path argument")
	errInvalidAIFF = errors.New("invalid AIFF file")
	errAIFFDepth   = errors.New("unsupported AIFF bit depth")
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

func run(args []string, out io.Writer) (err error) {
	if len(args) < 1 {
		return errMissingPath
	}

	table := sndfile.NewTable(min(len(args), sndfile.MaxOpenFiles))
	defer func() {
		err = errors.Join(err, table.Finish())
	}()

	for _, path := range args {
		h, err := open(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if _, err := table.Register(h); err != nil {
			return errors.Join(err, sndfile.ReleaseHandle(h))
		}

		printHandle(out, path, h)
	}

	return nil
}

func open(path string) (*sndfile.Handle, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".aif", ".aiff":
		return openAIFF(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return sndfile.OpenRead(file, path)
}

// openAIFF maps an AIFF file onto the handle a WAV conversion would use.
func openAIFF(path string) (*sndfile.Handle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dec := aiff.NewDecoder(file)
	if !dec.IsValidFile() {
		return nil, errInvalidAIFF
	}

	props := &sndfile.Properties{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		Format:     sndfile.ContainerCanonical,
	}

	switch dec.BitDepth {
	case 16:
		props.SampleType = sndfile.SampleTypeInt16
	case 24:
		props.SampleType = sndfile.SampleTypeInt24
	case 32:
		props.SampleType = sndfile.SampleTypeInt32
	default:
		return nil, fmt.Errorf("%w: %d", errAIFFDepth, dec.BitDepth)
	}

	// more than two channels need WAVE_FORMAT_EXTENSIBLE.
	if props.Channels > 2 {
		props.Format = sndfile.ContainerExtensible
	}

	h, err := sndfile.NewHandle(props)
	if err != nil {
		return nil, err
	}

	h.SetByteOrder(sndfile.ByteOrderBig)

	return h, nil
}

func printHandle(out io.Writer, path string, h *sndfile.Handle) {
	f := h.Format()

	fmt.Fprintf(out, "%s\n", path)
	fmt.Fprintf(out, "  container:   %s\n", h.Container())
	fmt.Fprintf(out, "  sample type: %s\n", h.SampleType())
	fmt.Fprintf(out, "  channels:    %d (%s)\n", f.NumChannels, h.Layout())
	fmt.Fprintf(out, "  sample rate: %d\n", f.SampleRate)
	fmt.Fprintf(out, "  block align: %d\n", f.BlockAlign)
	fmt.Fprintf(out, "  format tag:  %#04x\n", f.FormatTag)

	if h.Container() == sndfile.ContainerExtensible {
		fmt.Fprintf(out, "  subformat:   %s\n", f.SubFormat)
		fmt.Fprintf(out, "  mask:        %#x\n", f.ChannelMask)
	}

	if h.HasStream() {
		fmt.Fprintf(out, "  frames:      %d (%s)\n", h.Frames(), h.Duration())
		fmt.Fprintf(out, "  data offset: %d\n", h.DataOffset())
	}
}
