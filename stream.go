package sndfile

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Stream is the byte stream backing a handle. An *os.File satisfies it.
type Stream interface {
	io.ReadWriteSeeker
	io.Closer
}

// ownedStream is the handle's exclusive reference to its stream. A nil
// *ownedStream means no stream was attached; closed marks a stream that was
// attached and has since been closed.
type ownedStream struct {
	Stream
	closed bool
}

func (s *ownedStream) close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}

	return nil
}

// Attach hands ownership of s to the handle. Only one stream can be attached
// over the handle's lifetime.
func (h *Handle) Attach(s Stream, name string) error {
	if s == nil {
		return ErrNoStream
	}

	if h.stream != nil {
		return ErrStreamAttached
	}

	h.stream = &ownedStream{Stream: s}
	h.name = name

	return nil
}

// HasStream reports whether a stream was attached.
func (h *Handle) HasStream() bool { return h.stream != nil }

// StreamClosed reports whether the attached stream was closed.
func (h *Handle) StreamClosed() bool { return h.stream != nil && h.stream.closed }

func (h *Handle) liveStream() (Stream, error) {
	if h.stream == nil || h.stream.closed {
		return nil, ErrNoStream
	}

	return h.stream.Stream, nil
}

// Advance records that the frame codec moved frames frames with op. Writes
// past the end extend the frame count; reads never go past it.
func (h *Handle) Advance(frames int64, op Operation) error {
	if frames < 0 {
		return fmt.Errorf("%w: advance by %d", ErrFrameOutOfRange, frames)
	}

	switch op {
	case OpWrite:
		if h.isRead {
			return ErrReadOnly
		}

		if frames > math.MaxInt64-h.cursor {
			return fmt.Errorf("%w: write %d frames at %d", ErrFrameOutOfRange, frames, h.cursor)
		}

		h.cursor += frames
		h.writePos = h.cursor

		if h.cursor > h.numFrames {
			h.numFrames = h.cursor
		}
	case OpRead:
		if frames > h.numFrames-h.cursor {
			return fmt.Errorf("%w: read %d frames at %d of %d", ErrFrameOutOfRange, frames, h.cursor, h.numFrames)
		}

		h.cursor += frames
	default:
		return fmt.Errorf("%w: %d", errUnknownOperation, op)
	}

	h.lastOp = op

	return nil
}

// Seek moves the frame cursor and returns the new position. The cursor
// stays within [0, Frames()].
func (h *Handle) Seek(offset int64, whence int) (int64, error) {
	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = h.cursor + offset
	case io.SeekEnd:
		pos = h.numFrames + offset
	default:
		return h.cursor, fmt.Errorf("%w: whence %d", errUnknownWhence, whence)
	}

	if pos < 0 || pos > h.numFrames {
		return h.cursor, fmt.Errorf("%w: %d of %d", ErrFrameOutOfRange, pos, h.numFrames)
	}

	h.cursor = pos

	return pos, nil
}

// Duration returns the length of the audio at the handle's sample rate.
func (h *Handle) Duration() time.Duration {
	if h.fmt.SampleRate == 0 {
		return 0
	}

	secs := float64(h.numFrames) / float64(h.fmt.SampleRate)

	return time.Duration(math.Round(secs * float64(time.Second)))
}
