package sndfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// memStream is an in-memory Stream that counts Close calls.
type memStream struct {
	data     []byte
	pos      int64
	closes   int
	closeErr error
}

func newMemStream(data []byte) *memStream {
	return &memStream{data: append([]byte(nil), data...)}
}

func (m *memStream) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}

	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)

	return n, nil
}

func (m *memStream) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		m.data = append(m.data, make([]byte, end-int64(len(m.data)))...)
	}

	copy(m.data[m.pos:], p)
	m.pos = end

	return len(p), nil
}

func (m *memStream) Seek(offset int64, whence int) (int64, error) {
	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = m.pos + offset
	case io.SeekEnd:
		pos = int64(len(m.data)) + offset
	}

	if pos < 0 {
		return m.pos, errNegativeSeek
	}

	m.pos = pos

	return pos, nil
}

func (m *memStream) Close() error {
	m.closes++

	return m.closeErr
}

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errNegativeSeek         = errors.New("negative seek")
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}

// buildWav assembles a RIFF/WAVE file from a fmt payload, a data payload and
// optional chunks placed before the data chunk.
func buildWav(fmtPayload, data []byte, extra ...testChunk) []byte {
	var body []byte

	appendChunk := func(id string, payload []byte) {
		var hdr [8]byte

		copy(hdr[:4], id)
		binary.LittleEndian.PutUint32(hdr[4:], uint32(len(payload)))
		body = append(body, hdr[:]...)
		body = append(body, payload...)

		if len(payload)%2 == 1 {
			body = append(body, 0)
		}
	}

	appendChunk("fmt ", fmtPayload)

	for _, c := range extra {
		appendChunk(c.id, c.data)
	}

	appendChunk("data", data)

	out := make([]byte, 12, 12+len(body))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(4+len(body)))
	copy(out[8:12], "WAVE")

	return append(out, body...)
}

func canonicalFmt(tag, channels uint16, rate uint32, bits uint16) []byte {
	blockAlign := channels * uint16(bytesPerSample(int(bits)))
	b := make([]byte, 16)

	binary.LittleEndian.PutUint16(b[0:2], tag)
	binary.LittleEndian.PutUint16(b[2:4], channels)
	binary.LittleEndian.PutUint32(b[4:8], rate)
	binary.LittleEndian.PutUint32(b[8:12], rate*uint32(blockAlign))
	binary.LittleEndian.PutUint16(b[12:14], blockAlign)
	binary.LittleEndian.PutUint16(b[14:16], bits)

	return b
}

func extensibleFmt(channels uint16, rate uint32, bits, blockAlign uint16, sub GUID) []byte {
	b := make([]byte, 40)

	binary.LittleEndian.PutUint16(b[0:2], wavFormatExtensible)
	binary.LittleEndian.PutUint16(b[2:4], channels)
	binary.LittleEndian.PutUint32(b[4:8], rate)
	binary.LittleEndian.PutUint32(b[8:12], rate*uint32(blockAlign))
	binary.LittleEndian.PutUint16(b[12:14], blockAlign)
	binary.LittleEndian.PutUint16(b[14:16], bits)
	binary.LittleEndian.PutUint16(b[16:18], ExtensibleExtSize)
	binary.LittleEndian.PutUint16(b[18:20], bits)
	binary.LittleEndian.PutUint32(b[20:24], 0x3)

	guid := sub.Bytes()
	copy(b[24:40], guid[:])

	return b
}
