package sndfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitDepthAndWordSize(t *testing.T) {
	tests := []struct {
		typ      SampleType
		bitDepth int
		wordSize int
	}{
		{SampleTypeInt16, 16, 3},
		{SampleTypeInt24, 24, 2},
		{SampleTypeInt32, 32, 4},
		{SampleTypeFloat32, 32, 4},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			bits, err := BitDepth(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.bitDepth, bits)

			size, err := WordSize(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.wordSize, size)
		})
	}
}

func TestSampleTypeNotFound(t *testing.T) {
	for _, typ := range []SampleType{SampleTypeUnknown, SampleTypeInt8, SampleType(42)} {
		t.Run(typ.String(), func(t *testing.T) {
			_, err := BitDepth(typ)
			assert.ErrorIs(t, err, ErrTypeNotFound)

			_, err = WordSize(typ)
			assert.ErrorIs(t, err, ErrTypeNotFound)
		})
	}
}

func TestBytesPerSample(t *testing.T) {
	assert.Equal(t, 1, bytesPerSample(8))
	assert.Equal(t, 2, bytesPerSample(16))
	assert.Equal(t, 3, bytesPerSample(20))
	assert.Equal(t, 3, bytesPerSample(24))
	assert.Equal(t, 4, bytesPerSample(32))
}
