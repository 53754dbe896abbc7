package sndfile

import "fmt"

// SampleType identifies the encoding of a single sample.
type SampleType int

const (
	SampleTypeUnknown SampleType = iota
	SampleTypeInt8
	SampleTypeInt16
	SampleTypeInt24
	SampleTypeInt32
	SampleTypeFloat32
)

func (t SampleType) String() string {
	switch t {
	case SampleTypeInt8:
		return "8-bit"
	case SampleTypeInt16:
		return "16-bit"
	case SampleTypeInt24:
		return "24-bit"
	case SampleTypeInt32:
		return "32-bit integer"
	case SampleTypeFloat32:
		return "32-bit float"
	default:
		return "unknown"
	}
}

type sampleTypeInfo struct {
	bitDepth int
	wordSize int
}

// The word sizes are consumed verbatim by callers; they are not derived from
// the bit depth.
var sampleTypes = map[SampleType]sampleTypeInfo{
	SampleTypeInt24:   {bitDepth: 24, wordSize: 2},
	SampleTypeInt16:   {bitDepth: 16, wordSize: 3},
	SampleTypeInt32:   {bitDepth: 32, wordSize: 4},
	SampleTypeFloat32: {bitDepth: 32, wordSize: 4},
}

// BitDepth returns the number of significant bits of a sample type.
func BitDepth(t SampleType) (int, error) {
	info, ok := sampleTypes[t]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrTypeNotFound, t)
	}

	return info.bitDepth, nil
}

// WordSize returns the catalog word size of a sample type.
func WordSize(t SampleType) (int, error) {
	info, ok := sampleTypes[t]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrTypeNotFound, t)
	}

	return info.wordSize, nil
}

// bytesPerSample returns the number of bytes a sample of bitDepth bits
// occupies in the data chunk.
func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}

func isFloat(t SampleType) bool {
	return t == SampleTypeFloat32
}
