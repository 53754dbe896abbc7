package sndfile

import (
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

// ChannelPeak is the largest absolute sample seen on a channel and the frame
// it occurred at.
type ChannelPeak struct {
	Value    float64
	Position int64
}

// UpdatePeaks scans an interleaved buffer about to be written at the current
// cursor and updates the per-channel peaks. The peak buffer is allocated on
// first use and belongs to the handle.
func (h *Handle) UpdatePeaks(buf *audio.Float32Buffer) error {
	if buf == nil {
		return errNilBuffer
	}

	numChans := int(h.fmt.NumChannels)
	if buf.Format != nil && buf.Format.NumChannels != numChans {
		return fmt.Errorf("%w: %d, want %d", errChannelMismatch, buf.Format.NumChannels, numChans)
	}

	if numChans == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidDescriptor)
	}

	if h.peaks == nil {
		h.peaks = make([]ChannelPeak, numChans)
	}

	for i, v := range buf.Data {
		ch := i % numChans

		abs := math.Abs(float64(v))
		if abs > h.peaks[ch].Value {
			h.peaks[ch] = ChannelPeak{Value: abs, Position: h.cursor + int64(i/numChans)}
		}
	}

	return nil
}

// Peaks returns a copy of the tracked peaks, or nil if none were tracked.
func (h *Handle) Peaks() []ChannelPeak {
	if h.peaks == nil {
		return nil
	}

	return append([]ChannelPeak(nil), h.peaks...)
}
