package sndfile

import "errors"

var (
	// ErrTypeNotFound is returned when a sample type has no bit depth or word
	// size mapping.
	ErrTypeNotFound = errors.New("sample type not found")

	// ErrInvalidChannels indicates a channel count that is not positive.
	ErrInvalidChannels = errors.New("invalid channel count")
	// ErrInvalidRate indicates a sample rate that is not positive.
	ErrInvalidRate = errors.New("invalid sample rate")
	// ErrInvalidSampleType indicates a sample type outside 16-bit..32-bit float.
	ErrInvalidSampleType = errors.New("invalid sample type")
	// ErrInvalidFormat indicates a container format that is neither canonical
	// nor extensible.
	ErrInvalidFormat = errors.New("invalid container format")
	// ErrInvalidChannelFormat indicates an unsupported channel layout.
	ErrInvalidChannelFormat = errors.New("invalid channel format")

	// ErrTableFull is returned when registering into a table with no empty slot.
	ErrTableFull = errors.New("handle table is full")
	// ErrBadSlot is returned for slot indexes outside the table or empty slots.
	ErrBadSlot = errors.New("bad handle slot")
	// ErrNilHandle is returned when a nil handle is passed to the table.
	ErrNilHandle = errors.New("nil handle")
	// ErrHandleRegistered is returned when a handle already occupies a slot.
	ErrHandleRegistered = errors.New("handle already registered")

	// ErrStreamAttached is returned when a handle already owns a stream.
	ErrStreamAttached = errors.New("stream already attached")
	// ErrNoStream is returned by header operations on a handle without stream.
	ErrNoStream = errors.New("no stream attached")
	// ErrReadOnly is returned when writing through a read-mode handle.
	ErrReadOnly = errors.New("handle is read-only")
	// ErrFrameOutOfRange is returned when a cursor move leaves [0, frames].
	ErrFrameOutOfRange = errors.New("frame position out of range")

	// ErrNotRIFF indicates a stream that doesn't start with a RIFF/WAVE header.
	ErrNotRIFF = errors.New("not a RIFF/WAVE stream")
	// ErrFmtChunkNotFound indicates a container without fmt chunk.
	ErrFmtChunkNotFound = errors.New("fmt chunk not found")
	// ErrDataChunkNotFound indicates a container without data chunk.
	ErrDataChunkNotFound = errors.New("data chunk not found")
	// ErrChunkTooLarge indicates a chunk whose size runs past the end of the
	// stream.
	ErrChunkTooLarge = errors.New("chunk exceeds stream")
	// ErrUnsupportedEncoding indicates a fmt chunk that doesn't resolve to an
	// uncompressed sample type.
	ErrUnsupportedEncoding = errors.New("unsupported sample encoding")
	// ErrInvalidDescriptor indicates an internally inconsistent descriptor.
	ErrInvalidDescriptor = errors.New("inconsistent format descriptor")

	errUnknownOperation = errors.New("unknown frame operation")
	errUnknownWhence    = errors.New("unknown whence")
	errNilBuffer        = errors.New("can't track peaks of a nil buffer")
	errChannelMismatch  = errors.New("buffer channel count doesn't match the handle")
)
