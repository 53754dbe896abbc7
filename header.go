package sndfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

const placeholderSize = uint32(4294967295)

var errHeaderNotWritten = errors.New("header not written")

// OpenRead attaches s to a new read handle and parses its header. On failure
// the stream is closed.
func OpenRead(s Stream, name string) (*Handle, error) {
	h, err := NewHandle(nil)
	if err != nil {
		return nil, err
	}

	if err := h.Attach(s, name); err != nil {
		return nil, err
	}

	if err := ReadHeader(h); err != nil {
		return nil, errors.Join(err, ReleaseHandle(h))
	}

	return h, nil
}

// OpenWrite attaches s to a new write handle for props and writes the
// container header. On failure the stream is closed.
func OpenWrite(s Stream, name string, props *Properties) (*Handle, error) {
	h, err := NewWriteHandle(props)
	if err != nil {
		return nil, err
	}

	if err := h.Attach(s, name); err != nil {
		return nil, err
	}

	if err := WriteHeader(h); err != nil {
		return nil, errors.Join(err, ReleaseHandle(h))
	}

	return h, nil
}

// ReadHeader parses the RIFF/WAVE header of the handle's stream, fills the
// format descriptor, chunk offsets and frame count and resolves the sample
// type. The stream is left at the first sample.
func ReadHeader(h *Handle) error {
	s, err := h.liveStream()
	if err != nil {
		return err
	}

	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to seek to end of stream: %w", err)
	}

	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the start: %w", err)
	}

	parser := riff.New(s)

	id, _, err := parser.IDnSize()
	if err != nil {
		return fmt.Errorf("failed to read chunk ID and size: %w", err)
	}

	if id != riff.RiffID {
		return fmt.Errorf("%w: %s", ErrNotRIFF, id)
	}

	if err := binary.Read(s, binary.BigEndian, &parser.Format); err != nil {
		return fmt.Errorf("failed to read format: %w", err)
	}

	if parser.Format != riff.WavFormatID {
		return fmt.Errorf("%w: %s", ErrNotRIFF, parser.Format)
	}

	var (
		offset  = int64(12)
		sawFmt  bool
		sawData bool
	)

	for !sawData {
		id, size, err := parser.IDnSize()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return fmt.Errorf("error reading chunk header - %w", err)
		}

		padded := int64(size) + int64(size%2)

		// the data chunk may carry a placeholder size, it is clamped below.
		if id != riff.DataFormatID && offset+8+padded > end {
			return fmt.Errorf("%w: %q chunk of %d bytes at %d", ErrChunkTooLarge, id, size, offset)
		}

		chunk := &riff.Chunk{
			ID:   id,
			Size: int(padded),
			R:    io.LimitReader(s, padded),
		}

		switch id {
		case riff.FmtID:
			h.fmtOffset = offset
			if err := decodeFmtChunk(h, chunk); err != nil {
				return err
			}

			sawFmt = true
		case riff.DataFormatID:
			if !sawFmt {
				return ErrFmtChunkNotFound
			}

			h.dataOffset = offset + 8
			if err := h.setFramesFromData(s, size); err != nil {
				return err
			}

			sawData = true
		default:
			chunk.Drain()
		}

		offset += 8 + padded
	}

	if !sawFmt {
		return ErrFmtChunkNotFound
	}

	if !sawData {
		return ErrDataChunkNotFound
	}

	if err := h.fmt.Validate(h.container); err != nil {
		return err
	}

	if err := ResolveSampleType(h); err != nil {
		return err
	}

	h.byteOrder = ByteOrderLittle
	h.cursor = 0

	if _, err := s.Seek(h.dataOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the PCM data: %w", err)
	}

	return nil
}

// setFramesFromData derives the frame count from the data chunk size. An
// unfinalized size is replaced by what the stream actually holds.
func (h *Handle) setFramesFromData(s Stream, size uint32) error {
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to seek to end of stream: %w", err)
	}

	dataSize := int64(size)
	if avail := end - h.dataOffset; dataSize > avail {
		dataSize = max(avail, 0)
	}

	h.numFrames = 0
	if h.fmt.BlockAlign > 0 {
		h.numFrames = dataSize / int64(h.fmt.BlockAlign)
	}

	return nil
}

func decodeFmtChunk(h *Handle, chunk *riff.Chunk) error {
	desc := FormatDescriptor{}

	fields := []struct {
		dst  any
		name string
	}{
		{&desc.FormatTag, "wav format"},
		{&desc.NumChannels, "channels"},
		{&desc.SampleRate, "sample rate"},
		{&desc.AvgBytesPerSec, "avg bytes/sec"},
		{&desc.BlockAlign, "block align"},
		{&desc.BitsPerSample, "bit depth"},
	}

	for _, f := range fields {
		if err := chunk.ReadLE(f.dst); err != nil {
			return fmt.Errorf("failed to read %s: %w", f.name, err)
		}
	}

	h.container = ContainerCanonical

	if chunk.Size > canonicalFmtSize {
		err := chunk.ReadLE(&desc.ExtSize)
		if err != nil {
			return fmt.Errorf("failed to read fmt extension size: %w", err)
		}
	}

	if desc.FormatTag == wavFormatExtensible && desc.ExtSize >= ExtensibleExtSize {
		var (
			samples uint16
			guid    [16]byte
		)

		if err := chunk.ReadLE(&samples); err != nil {
			return fmt.Errorf("failed to read valid bits per sample: %w", err)
		}

		if err := chunk.ReadLE(&desc.ChannelMask); err != nil {
			return fmt.Errorf("failed to read channel mask: %w", err)
		}

		if _, err := io.ReadFull(chunk, guid[:]); err != nil {
			return fmt.Errorf("failed to read sub format: %w", err)
		}

		desc.SubFormat, _ = GUIDFromBytes(guid[:])
		desc.Samples = ValidBits(samples)

		if desc.SubFormat.IsKSDataFormat() {
			desc.FormatTag = uint16(desc.SubFormat.Data1)
		}

		h.container = ContainerExtensible
		h.layout = ChannelLayoutMultichannel
	}

	chunk.Drain()

	h.fmt = desc

	return nil
}

// WriteHeader writes the RIFF/WAVE header of a write handle: the canonical
// or extensible fmt chunk and the data chunk header. Sizes are derived from
// the current frame count, so a fresh handle gets empty chunks.
func WriteHeader(h *Handle) error {
	if h.isRead {
		return ErrReadOnly
	}

	s, err := h.liveStream()
	if err != nil {
		return err
	}

	if err := h.fmt.Validate(h.container); err != nil {
		return err
	}

	fmtSize := uint32(canonicalFmtSize)
	if h.container == ContainerExtensible {
		fmtSize = extensibleFmtSize
	}

	formatTag := h.fmt.FormatTag
	if h.container == ContainerExtensible {
		formatTag = wavFormatExtensible
	}

	dataSize := h.dataSize()

	buf := bytes.NewBuffer(make([]byte, 0, 12+8+extensibleFmtSize+8))
	fields := []any{
		riff.RiffID,
		riffSize(fmtSize, dataSize),
		riff.WavFormatID,
		riff.FmtID,
		fmtSize,
		formatTag,
		h.fmt.NumChannels,
		h.fmt.SampleRate,
		h.fmt.AvgBytesPerSec,
		h.fmt.BlockAlign,
		h.fmt.BitsPerSample,
	}

	if h.container == ContainerExtensible {
		fields = append(fields,
			uint16(ExtensibleExtSize),
			h.fmt.Samples.raw(),
			h.fmt.ChannelMask,
			h.fmt.SubFormat.Bytes(),
		)
	}

	fields = append(fields, riff.DataFormatID, dataSize)

	for _, f := range fields {
		// chunk IDs are byte arrays, endianness doesn't apply.
		if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("failed to encode header: %w", err)
		}
	}

	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the start: %w", err)
	}

	if _, err := s.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	h.fmtOffset = 12
	h.dataOffset = int64(buf.Len())
	h.byteOrder = ByteOrderLittle

	if h.container == ContainerExtensible {
		h.fmt.ExtSize = ExtensibleExtSize
	}

	return nil
}

// UpdateHeader patches the RIFF and data chunk sizes from the frame count
// and moves the stream to the end of the sample data.
func UpdateHeader(h *Handle) error {
	if h.isRead {
		return ErrReadOnly
	}

	s, err := h.liveStream()
	if err != nil {
		return err
	}

	if h.dataOffset == 0 {
		return errHeaderNotWritten
	}

	fmtSize := uint32(h.dataOffset - h.fmtOffset - 16)
	dataSize := h.dataSize()

	if _, err := s.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to file size position: %w", err)
	}

	if err := binary.Write(s, binary.LittleEndian, riffSize(fmtSize, dataSize)); err != nil {
		return fmt.Errorf("%w when writing the total written bytes", err)
	}

	if _, err := s.Seek(h.dataOffset-4, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to PCM chunk size position: %w", err)
	}

	if err := binary.Write(s, binary.LittleEndian, dataSize); err != nil {
		return fmt.Errorf("%w when writing wav data chunk size header", err)
	}

	if _, err := s.Seek(h.dataOffset+int64(dataSize), io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to end of data: %w", err)
	}

	if dataSize%2 == 1 {
		if _, err := s.Write([]byte{0}); err != nil {
			return fmt.Errorf("failed to write data chunk padding: %w", err)
		}
	}

	return nil
}

func (h *Handle) dataSize() uint32 {
	size := h.numFrames * int64(h.fmt.BlockAlign)
	if size >= int64(placeholderSize) {
		return placeholderSize
	}

	return uint32(size)
}

// riffSize is the RIFF chunk size: the WAVE ID, the fmt chunk and the padded
// data chunk.
func riffSize(fmtSize, dataSize uint32) uint32 {
	if dataSize == placeholderSize {
		return placeholderSize
	}

	return 4 + 8 + fmtSize + 8 + dataSize + dataSize%2
}
