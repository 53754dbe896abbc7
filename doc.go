// Package sndfile resolves the sample encoding of RIFF/WAVE streams and
// manages the handles through which frames are read and written.
//
// The package covers uncompressed PCM (16/24/32-bit integer) and 32-bit IEEE
// float samples in both the canonical and the WAVE_FORMAT_EXTENSIBLE fmt
// chunk layouts. It provides:
//
//   - a sample type catalog (BitDepth, WordSize)
//   - subtype GUIDs and the extensible subtype resolver (ResolveSubtype)
//   - handle construction with validated Properties (NewHandle)
//   - header parsing and writing on an attached Stream (ReadHeader,
//     WriteHeader, UpdateHeader)
//   - a fixed-capacity Table of open handles (Register, Release, Finish)
//
// Converting frames to and from bytes is left to the caller, which uses the
// handle's FormatDescriptor, cursor bookkeeping (Advance, Seek) and peak
// tracking (UpdatePeaks).
package sndfile
