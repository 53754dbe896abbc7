package sndfile

import "fmt"

// ResolveSubtype derives the sample type of an extensible handle whose
// subformat is PCM. It returns false without touching the sample type when
// the handle isn't extensible or carries another subformat. A PCM subformat
// with an unsupported layout leaves the sample type unknown.
//
// 32-bit PCM always resolves to SampleTypeInt32.
func ResolveSubtype(h *Handle) bool {
	if h == nil || h.container != ContainerExtensible {
		return false
	}

	if h.fmt.SubFormat != SubtypePCM {
		return false
	}

	switch h.fmt.BitsPerSample {
	case 16:
		h.sampleType = SampleTypeInt16
	case 24:
		// 24-bit samples must be packed in 3 bytes.
		if h.fmt.NumChannels == 0 || h.fmt.bytesPerFrameChannel() != 3 {
			h.sampleType = SampleTypeUnknown
			return false
		}

		h.sampleType = SampleTypeInt24
	case 32:
		h.sampleType = SampleTypeInt32
	default:
		h.sampleType = SampleTypeUnknown
		return false
	}

	return true
}

// ResolveSampleType sets the sample type of h from its descriptor. Canonical
// containers are resolved from the format tag, extensible ones from the
// subformat.
func ResolveSampleType(h *Handle) error {
	if h == nil {
		return ErrNilHandle
	}

	switch h.container {
	case ContainerCanonical:
		h.sampleType = canonicalSampleType(h.fmt.FormatTag, h.fmt.BitsPerSample, h.fmt.bytesPerFrameChannel())
	case ContainerExtensible:
		if !ResolveSubtype(h) {
			h.sampleType = SampleTypeUnknown
			if h.fmt.SubFormat == SubtypeIEEEFloat && h.fmt.BitsPerSample == 32 {
				h.sampleType = SampleTypeFloat32
			}
		}
	default:
		h.sampleType = SampleTypeUnknown
	}

	if h.sampleType == SampleTypeUnknown {
		return fmt.Errorf("%w: %s container, tag %#x, %d bits", ErrUnsupportedEncoding,
			h.container, h.fmt.FormatTag, h.fmt.BitsPerSample)
	}

	return nil
}

func canonicalSampleType(tag, bits uint16, width int) SampleType {
	switch tag {
	case wavFormatPCM:
		switch {
		case bits == 16:
			return SampleTypeInt16
		case bits == 24 && width == 3:
			return SampleTypeInt24
		case bits == 32:
			return SampleTypeInt32
		}
	case wavFormatIEEEFloat:
		if bits == 32 {
			return SampleTypeFloat32
		}
	}

	return SampleTypeUnknown
}
