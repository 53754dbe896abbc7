package sndfile

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// GUID is a subtype identifier as found in the tail of an extensible fmt
// chunk. Two GUIDs are equal when all fields match, so == is the comparison.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

var ksDataFormatTail = [8]byte{0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

var (
	// SubtypePCM is KSDATAFORMAT_SUBTYPE_PCM.
	SubtypePCM = GUID{Data1: wavFormatPCM, Data2: 0x0000, Data3: 0x0010, Data4: ksDataFormatTail}
	// SubtypeIEEEFloat is KSDATAFORMAT_SUBTYPE_IEEE_FLOAT.
	SubtypeIEEEFloat = GUID{Data1: wavFormatIEEEFloat, Data2: 0x0000, Data3: 0x0010, Data4: ksDataFormatTail}

	errGUIDLength = errors.New("guid must be 16 bytes")
)

// SubtypeFor builds the KSDATAFORMAT subtype GUID carrying a format tag.
func SubtypeFor(formatTag uint16) GUID {
	return GUID{Data1: uint32(formatTag), Data2: 0x0000, Data3: 0x0010, Data4: ksDataFormatTail}
}

// ParseGUID parses the 8-4-4-4-12 text form, with or without braces.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, fmt.Errorf("failed to parse guid %q: %w", s, err)
	}

	g := GUID{
		Data1: binary.BigEndian.Uint32(u[0:4]),
		Data2: binary.BigEndian.Uint16(u[4:6]),
		Data3: binary.BigEndian.Uint16(u[6:8]),
	}
	copy(g.Data4[:], u[8:16])

	return g, nil
}

// String returns the 8-4-4-4-12 text form.
func (g GUID) String() string {
	var u uuid.UUID

	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:16], g.Data4[:])

	return u.String()
}

// Bytes returns the on-disk layout: the three integer fields little endian
// followed by the trailing bytes.
func (g GUID) Bytes() [16]byte {
	var b [16]byte

	binary.LittleEndian.PutUint32(b[0:4], g.Data1)
	binary.LittleEndian.PutUint16(b[4:6], g.Data2)
	binary.LittleEndian.PutUint16(b[6:8], g.Data3)
	copy(b[8:16], g.Data4[:])

	return b
}

// GUIDFromBytes decodes the on-disk layout produced by Bytes.
func GUIDFromBytes(b []byte) (GUID, error) {
	if len(b) != 16 {
		return GUID{}, fmt.Errorf("%w: got %d", errGUIDLength, len(b))
	}

	g := GUID{
		Data1: binary.LittleEndian.Uint32(b[0:4]),
		Data2: binary.LittleEndian.Uint16(b[4:6]),
		Data3: binary.LittleEndian.Uint16(b[6:8]),
	}
	copy(g.Data4[:], b[8:16])

	return g, nil
}

// IsKSDataFormat reports whether g is a KSDATAFORMAT subtype, i.e. a format
// tag embedded in the standard GUID template.
func (g GUID) IsKSDataFormat() bool {
	return g.Data2 == 0x0000 && g.Data3 == 0x0010 && g.Data4 == ksDataFormatTail && g.Data1 <= 0xFFFF
}
