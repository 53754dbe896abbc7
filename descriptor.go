package sndfile

import "fmt"

const (
	wavFormatPCM        = 1
	wavFormatIEEEFloat  = 3
	wavFormatExtensible = 0xFFFE

	// FormatTagPCM is the fmt chunk tag of linear PCM.
	FormatTagPCM = wavFormatPCM
	// FormatTagIEEEFloat is the fmt chunk tag of IEEE floating point samples.
	FormatTagIEEEFloat = wavFormatIEEEFloat
	// FormatTagExtensible is the fmt chunk tag of WAVE_FORMAT_EXTENSIBLE.
	FormatTagExtensible = wavFormatExtensible

	// ExtensibleExtSize is the cbSize of an extensible fmt chunk: valid bits,
	// channel mask and subformat GUID.
	ExtensibleExtSize = 22

	canonicalFmtSize  = 16
	extensibleFmtSize = canonicalFmtSize + 2 + ExtensibleExtSize
)

// ContainerFormat selects the layout of the fmt chunk.
type ContainerFormat int

const (
	// ContainerUnknown is an unset container.
	ContainerUnknown ContainerFormat = iota
	// ContainerCanonical is the plain 16 byte fmt chunk.
	ContainerCanonical
	// ContainerExtensible is WAVE_FORMAT_EXTENSIBLE.
	ContainerExtensible
)

func (f ContainerFormat) String() string {
	switch f {
	case ContainerCanonical:
		return "canonical"
	case ContainerExtensible:
		return "extensible"
	default:
		return "unknown"
	}
}

// SamplesKind tells which member of SamplesUnion is meaningful.
type SamplesKind int

const (
	// SamplesNone is the zero union of a canonical fmt chunk.
	SamplesNone SamplesKind = iota
	// SamplesValidBits holds wValidBitsPerSample.
	SamplesValidBits
	// SamplesPerBlock holds wSamplesPerBlock.
	SamplesPerBlock
	// SamplesReserved holds wReserved.
	SamplesReserved
)

// SamplesUnion is the Samples field of WAVEFORMATEXTENSIBLE. Which of valid
// bits per sample, samples per block or reserved it holds depends on the
// compression scheme, so the kind travels with the value.
type SamplesUnion struct {
	kind  SamplesKind
	value uint16
}

// ValidBits holds wValidBitsPerSample.
func ValidBits(n uint16) SamplesUnion { return SamplesUnion{kind: SamplesValidBits, value: n} }

// PerBlock holds wSamplesPerBlock.
func PerBlock(n uint16) SamplesUnion { return SamplesUnion{kind: SamplesPerBlock, value: n} }

// ReservedSamples holds wReserved.
func ReservedSamples(n uint16) SamplesUnion { return SamplesUnion{kind: SamplesReserved, value: n} }

// Kind returns which member the union holds.
func (s SamplesUnion) Kind() SamplesKind { return s.kind }

// ValidBitsPerSample returns the value if the union holds valid bits.
func (s SamplesUnion) ValidBitsPerSample() (uint16, bool) {
	return s.value, s.kind == SamplesValidBits
}

// SamplesPerBlock returns the value if the union holds samples per block.
func (s SamplesUnion) SamplesPerBlock() (uint16, bool) {
	return s.value, s.kind == SamplesPerBlock
}

// Reserved returns the value if the union holds the reserved field.
func (s SamplesUnion) Reserved() (uint16, bool) {
	return s.value, s.kind == SamplesReserved
}

// raw is the wire value regardless of interpretation.
func (s SamplesUnion) raw() uint16 { return s.value }

// FormatDescriptor mirrors the fmt chunk, including the extensible tail.
// FormatTag always names the sample encoding (PCM or IEEE float); whether the
// chunk is written as WAVE_FORMAT_EXTENSIBLE is decided by the handle's
// container format.
type FormatDescriptor struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	// ExtSize is cbSize, the byte count following the canonical fields.
	ExtSize     uint16
	ChannelMask uint32
	SubFormat   GUID
	Samples     SamplesUnion
}

// Clone returns a copy of the descriptor.
func (f *FormatDescriptor) Clone() *FormatDescriptor {
	if f == nil {
		return nil
	}

	out := *f

	return &out
}

// Validate checks what the frame codec relies on.
func (f *FormatDescriptor) Validate(container ContainerFormat) error {
	if f == nil {
		return fmt.Errorf("%w: nil descriptor", ErrInvalidDescriptor)
	}

	if f.NumChannels == 0 {
		return fmt.Errorf("%w: no channels", ErrInvalidDescriptor)
	}

	if f.BlockAlign == 0 || f.BlockAlign%f.NumChannels != 0 {
		return fmt.Errorf("%w: block align %d for %d channels", ErrInvalidDescriptor, f.BlockAlign, f.NumChannels)
	}

	if f.BitsPerSample == 0 || bytesPerSample(int(f.BitsPerSample)) > int(f.BlockAlign/f.NumChannels) {
		return fmt.Errorf("%w: %d bits in %d byte block", ErrInvalidDescriptor, f.BitsPerSample, f.BlockAlign)
	}

	if container == ContainerExtensible && f.ExtSize < ExtensibleExtSize {
		return fmt.Errorf("%w: extensible cbSize %d", ErrInvalidDescriptor, f.ExtSize)
	}

	return nil
}

// bytesPerFrameChannel returns the number of bytes per channel per frame.
func (f *FormatDescriptor) bytesPerFrameChannel() int {
	if f.NumChannels == 0 {
		return 0
	}

	return int(f.BlockAlign) / int(f.NumChannels)
}
