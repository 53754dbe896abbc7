package sndfile

import (
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

const (
	defaultSampleRate = 44100
	defaultChannels   = 1
)

// ChannelLayout describes how channels map to speaker positions.
type ChannelLayout int

const (
	// ChannelLayoutStandard is the only layout accepted in Properties.
	ChannelLayoutStandard ChannelLayout = iota
	// ChannelLayoutMultichannel is the standard layout carried by an
	// extensible fmt chunk.
	ChannelLayoutMultichannel
)

func (l ChannelLayout) String() string {
	switch l {
	case ChannelLayoutStandard:
		return "standard"
	case ChannelLayoutMultichannel:
		return "multichannel"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// ByteOrder is the declared byte order of the sample data.
type ByteOrder int

const (
	// ByteOrderNative leaves the order to the host.
	ByteOrderNative ByteOrder = iota
	// ByteOrderLittle is the RIFF byte order.
	ByteOrderLittle
	// ByteOrderBig is the AIFF byte order.
	ByteOrderBig
)

// DitherMode selects the dither applied by the frame codec when reducing
// precision.
type DitherMode int

const (
	// DitherNone truncates.
	DitherNone DitherMode = iota
	// DitherRectangular adds uniform noise of one LSB.
	DitherRectangular
	// DitherTriangular adds triangular noise of two LSBs.
	DitherTriangular
)

// Operation is the last frame operation performed through a handle.
type Operation int

const (
	// OpNone is the state of a handle no frames went through.
	OpNone Operation = iota
	// OpRead marks a frame read.
	OpRead
	// OpWrite marks a frame write.
	OpWrite
)

// Properties configures a new handle.
type Properties struct {
	SampleRate int
	Channels   int
	SampleType SampleType
	Format     ContainerFormat
	Layout     ChannelLayout
}

// Validate checks the properties in a fixed order and returns the first
// violation.
func (p *Properties) Validate() error {
	if p.Channels <= 0 || p.Channels > math.MaxUint16 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, p.Channels)
	}

	if p.SampleRate <= 0 || int64(p.SampleRate) > math.MaxUint32 {
		return fmt.Errorf("%w: %d", ErrInvalidRate, p.SampleRate)
	}

	if p.SampleType < SampleTypeInt16 || p.SampleType > SampleTypeFloat32 {
		return fmt.Errorf("%w: %s", ErrInvalidSampleType, p.SampleType)
	}

	if p.Format <= ContainerUnknown || p.Format > ContainerExtensible {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, p.Format)
	}

	if p.Layout != ChannelLayoutStandard {
		return fmt.Errorf("%w: %s", ErrInvalidChannelFormat, p.Layout)
	}

	return nil
}

// Handle is an open sound file: the resolved format of its stream plus the
// state the frame codec shares across calls.
type Handle struct {
	stream *ownedStream
	name   string

	cursor    int64
	numFrames int64
	writePos  int64
	lastOp    Operation

	isRead        bool
	byteOrder     ByteOrder
	clipFloats    bool
	rescale       bool
	rescaleFactor float64
	dither        DitherMode

	container  ContainerFormat
	sampleType SampleType
	layout     ChannelLayout
	fmt        FormatDescriptor
	fmtOffset  int64
	dataOffset int64

	peaks []ChannelPeak
}

// NewHandle returns a read-mode handle for props. A nil props selects a mono
// 16-bit 44.1kHz canonical format. The handle has no stream and isn't
// registered in any table.
func NewHandle(props *Properties) (*Handle, error) {
	return newHandle(props, true)
}

// NewWriteHandle is NewHandle for a handle that writes frames.
func NewWriteHandle(props *Properties) (*Handle, error) {
	return newHandle(props, false)
}

func newHandle(props *Properties, isRead bool) (*Handle, error) {
	if props != nil {
		if err := props.Validate(); err != nil {
			return nil, err
		}
	}

	h := &Handle{
		isRead:        isRead,
		clipFloats:    true,
		rescaleFactor: 1.0,
		byteOrder:     ByteOrderNative,
		dither:        DitherNone,
	}

	if props == nil {
		h.container = ContainerCanonical
		h.sampleType = SampleTypeInt16
		h.layout = ChannelLayoutStandard
		h.fmt = FormatDescriptor{
			FormatTag:     wavFormatPCM,
			NumChannels:   defaultChannels,
			SampleRate:    defaultSampleRate,
			BlockAlign:    defaultChannels * 2,
			BitsPerSample: 16,
		}
		h.fmt.AvgBytesPerSec = h.fmt.SampleRate * uint32(h.fmt.BlockAlign)

		return h, nil
	}

	bits, err := BitDepth(props.SampleType)
	if err != nil {
		return nil, err
	}

	h.container = props.Format
	h.sampleType = props.SampleType
	h.layout = props.Layout

	blockAlign := int64(props.Channels) * int64(bytesPerSample(bits))
	if blockAlign > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d channels need a %d byte block", ErrInvalidChannels, props.Channels, blockAlign)
	}

	byteRate := int64(props.SampleRate) * blockAlign
	if byteRate > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d Hz needs %d bytes/sec", ErrInvalidRate, props.SampleRate, byteRate)
	}

	h.fmt = FormatDescriptor{
		FormatTag:      wavFormatPCM,
		NumChannels:    uint16(props.Channels),
		SampleRate:     uint32(props.SampleRate),
		AvgBytesPerSec: uint32(byteRate),
		BlockAlign:     uint16(blockAlign),
		BitsPerSample:  uint16(bits),
	}

	// Float samples keep the IEEE float tag and subtype. Tagging them PCM
	// would make every other reader decode them as integers.
	if isFloat(props.SampleType) {
		h.fmt.FormatTag = wavFormatIEEEFloat
	}

	if h.container == ContainerExtensible {
		h.fmt.ExtSize = ExtensibleExtSize
		if h.layout == ChannelLayoutStandard {
			h.layout = ChannelLayoutMultichannel
		}

		// Layout specific masks aren't supported yet.
		h.fmt.ChannelMask = 0
		h.fmt.SubFormat = SubtypeFor(h.fmt.FormatTag)
		h.fmt.Samples = ValidBits(uint16(bits))
	}

	return h, nil
}

// Name returns the display name given when the stream was attached.
func (h *Handle) Name() string { return h.name }

// IsRead reports whether the handle was opened for reading.
func (h *Handle) IsRead() bool { return h.isRead }

// Container returns the container format of the fmt chunk.
func (h *Handle) Container() ContainerFormat { return h.container }

// SampleType returns the resolved sample type.
func (h *Handle) SampleType() SampleType { return h.sampleType }

// Layout returns the channel layout kind.
func (h *Handle) Layout() ChannelLayout { return h.layout }

// Format returns a copy of the format descriptor.
func (h *Handle) Format() FormatDescriptor { return h.fmt }

// FmtOffset is the byte offset of the fmt chunk header in the container.
func (h *Handle) FmtOffset() int64 { return h.fmtOffset }

// DataOffset is the byte offset of the first sample in the container.
func (h *Handle) DataOffset() int64 { return h.dataOffset }

// Frames returns the total number of frames.
func (h *Handle) Frames() int64 { return h.numFrames }

// Cursor returns the current frame position.
func (h *Handle) Cursor() int64 { return h.cursor }

// WritePos returns the frame position after the last write.
func (h *Handle) WritePos() int64 { return h.writePos }

// LastOp returns the last frame operation.
func (h *Handle) LastOp() Operation { return h.lastOp }

// ByteOrder returns the declared byte order of the sample data.
func (h *Handle) ByteOrder() ByteOrder { return h.byteOrder }

// SetByteOrder sets the declared byte order.
func (h *Handle) SetByteOrder(o ByteOrder) { h.byteOrder = o }

// ClipFloats reports whether float samples are clipped to [-1, 1] on
// conversion to integers.
func (h *Handle) ClipFloats() bool { return h.clipFloats }

// SetClipFloats sets the clipping policy.
func (h *Handle) SetClipFloats(clip bool) { h.clipFloats = clip }

// Rescale returns the rescale policy and its factor.
func (h *Handle) Rescale() (bool, float64) { return h.rescale, h.rescaleFactor }

// SetRescale enables rescaling by factor. A non-positive factor disables it.
func (h *Handle) SetRescale(factor float64) {
	if factor <= 0 {
		h.rescale = false
		h.rescaleFactor = 1.0

		return
	}

	h.rescale = true
	h.rescaleFactor = factor
}

// Dither returns the dither mode.
func (h *Handle) Dither() DitherMode { return h.dither }

// SetDither sets the dither mode.
func (h *Handle) SetDither(d DitherMode) { h.dither = d }

// AudioFormat returns the go-audio format of the handle.
func (h *Handle) AudioFormat() *audio.Format {
	return &audio.Format{
		NumChannels: int(h.fmt.NumChannels),
		SampleRate:  int(h.fmt.SampleRate),
	}
}

// String implements the Stringer interface.
func (h *Handle) String() string {
	return fmt.Sprintf("%d Hz @ %d bits (%s), %d channel(s), %s container, block align %d, %d frames",
		h.fmt.SampleRate, h.fmt.BitsPerSample, h.sampleType, h.fmt.NumChannels, h.container, h.fmt.BlockAlign, h.numFrames)
}
