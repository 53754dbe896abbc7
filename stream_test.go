package sndfile

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttach(t *testing.T) {
	h, err := NewHandle(nil)
	require.NoError(t, err)

	assert.ErrorIs(t, h.Attach(nil, "x"), ErrNoStream)

	s := newMemStream(nil)
	require.NoError(t, h.Attach(s, "take1.wav"))
	assert.True(t, h.HasStream())
	assert.False(t, h.StreamClosed())
	assert.Equal(t, "take1.wav", h.Name())

	assert.ErrorIs(t, h.Attach(newMemStream(nil), "other.wav"), ErrStreamAttached)
	assert.Equal(t, "take1.wav", h.Name())
}

func TestAdvanceWrite(t *testing.T) {
	h, err := NewWriteHandle(nil)
	require.NoError(t, err)

	require.NoError(t, h.Advance(100, OpWrite))
	assert.Equal(t, int64(100), h.Cursor())
	assert.Equal(t, int64(100), h.Frames())
	assert.Equal(t, int64(100), h.WritePos())
	assert.Equal(t, OpWrite, h.LastOp())

	pos, err := h.Seek(10, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(10), pos)

	// overwriting inside the file doesn't grow it
	require.NoError(t, h.Advance(20, OpWrite))
	assert.Equal(t, int64(30), h.Cursor())
	assert.Equal(t, int64(100), h.Frames())

	require.NoError(t, h.Advance(70, OpRead))
	assert.Equal(t, int64(100), h.Cursor())
	assert.Equal(t, OpRead, h.LastOp())
	assert.Equal(t, int64(30), h.WritePos())

	assert.ErrorIs(t, h.Advance(1, OpRead), ErrFrameOutOfRange)
	assert.ErrorIs(t, h.Advance(-1, OpWrite), ErrFrameOutOfRange)
	assert.ErrorIs(t, h.Advance(1, OpNone), errUnknownOperation)
	assert.LessOrEqual(t, h.Cursor(), h.Frames())
}

func TestAdvanceOverflow(t *testing.T) {
	h, err := NewWriteHandle(nil)
	require.NoError(t, err)
	require.NoError(t, h.Advance(10, OpWrite))

	assert.ErrorIs(t, h.Advance(math.MaxInt64, OpRead), ErrFrameOutOfRange)
	assert.ErrorIs(t, h.Advance(math.MaxInt64, OpWrite), ErrFrameOutOfRange)
	assert.Equal(t, int64(10), h.Cursor())
	assert.Equal(t, int64(10), h.Frames())

	_, err = h.Seek(5, io.SeekStart)
	require.NoError(t, err)
	require.NoError(t, h.Advance(math.MaxInt64-5, OpWrite))
	assert.Equal(t, int64(math.MaxInt64), h.Frames())
	assert.ErrorIs(t, h.Advance(1, OpWrite), ErrFrameOutOfRange)
}

func TestAdvanceReadOnly(t *testing.T) {
	h, err := NewHandle(nil)
	require.NoError(t, err)

	assert.ErrorIs(t, h.Advance(1, OpWrite), ErrReadOnly)
	assert.Zero(t, h.Frames())
}

func TestSeek(t *testing.T) {
	h, err := NewWriteHandle(nil)
	require.NoError(t, err)
	require.NoError(t, h.Advance(50, OpWrite))

	tests := []struct {
		name    string
		offset  int64
		whence  int
		want    int64
		wantErr error
	}{
		{"start", 5, io.SeekStart, 5, nil},
		{"current", 10, io.SeekCurrent, 15, nil},
		{"end", -5, io.SeekEnd, 45, nil},
		{"at end", 0, io.SeekEnd, 50, nil},
		{"past end", 1, io.SeekEnd, 50, ErrFrameOutOfRange},
		{"negative", -100, io.SeekCurrent, 50, ErrFrameOutOfRange},
		{"bad whence", 0, 42, 50, errUnknownWhence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := h.Seek(tt.offset, tt.whence)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.want, pos)
		})
	}
}

func TestDuration(t *testing.T) {
	h, err := NewWriteHandle(&Properties{Channels: 1, SampleRate: 48000, SampleType: SampleTypeInt16, Format: ContainerCanonical})
	require.NoError(t, err)

	assert.Zero(t, h.Duration())

	require.NoError(t, h.Advance(48000, OpWrite))
	assert.Equal(t, time.Second, h.Duration())

	require.NoError(t, h.Advance(24000, OpWrite))
	assert.Equal(t, 1500*time.Millisecond, h.Duration())
}

func TestUpdatePeaks(t *testing.T) {
	h, err := NewWriteHandle(&Properties{Channels: 2, SampleRate: 44100, SampleType: SampleTypeFloat32, Format: ContainerCanonical})
	require.NoError(t, err)

	format := h.AudioFormat()
	buf := &audio.Float32Buffer{
		Format: format,
		Data:   []float32{0.1, -0.2, -0.7, 0.3, 0.5, -0.9},
	}

	require.NoError(t, h.UpdatePeaks(buf))
	require.NoError(t, h.Advance(int64(buf.NumFrames()), OpWrite))

	peaks := h.Peaks()
	require.Len(t, peaks, 2)
	assert.InDelta(t, 0.7, peaks[0].Value, 1e-6)
	assert.Equal(t, int64(1), peaks[0].Position)
	assert.InDelta(t, 0.9, peaks[1].Value, 1e-6)
	assert.Equal(t, int64(2), peaks[1].Position)

	// positions are relative to the cursor at the time of the update
	buf.Data = []float32{0.0, 1.0}
	require.NoError(t, h.UpdatePeaks(buf))

	peaks = h.Peaks()
	assert.Equal(t, int64(1), peaks[0].Position)
	assert.InDelta(t, 1.0, peaks[1].Value, 1e-6)
	assert.Equal(t, int64(3), peaks[1].Position)

	// Peaks hands out a copy
	peaks[0].Value = 42
	assert.InDelta(t, 0.7, h.Peaks()[0].Value, 1e-6)
}

func TestUpdatePeaksErrors(t *testing.T) {
	h, err := NewHandle(nil)
	require.NoError(t, err)

	assert.ErrorIs(t, h.UpdatePeaks(nil), errNilBuffer)

	buf := &audio.Float32Buffer{Format: &audio.Format{NumChannels: 2, SampleRate: 44100}, Data: []float32{0, 0}}
	assert.ErrorIs(t, h.UpdatePeaks(buf), errChannelMismatch)
	assert.Nil(t, h.Peaks())
}
