package registry

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/google/uuid"
)

// gptPrefix marks value data that names a GPT partition by its GUID.
var gptPrefix = []byte("DMIO:ID:")

const mbrDataLen = 12 // disk signature (4) + partition offset (8)

// DescribeTarget decodes MountedDevices value data into a short description
// of the device the letter points at.
func DescribeTarget(data []byte) string {
	switch {
	case len(data) == 0:
		return ""
	case len(data) == mbrDataLen:
		sig := binary.LittleEndian.Uint32(data[0:4])
		offset := binary.LittleEndian.Uint64(data[4:12])
		return fmt.Sprintf("MBR disk %08x @ offset %d", sig, offset)
	case len(data) == len(gptPrefix)+16 && bytes.HasPrefix(data, gptPrefix):
		guid, err := guidFromWindowsBytes(data[len(gptPrefix):])
		if err != nil {
			break
		}
		return "GPT partition {" + strings.ToUpper(guid.String()) + "}"
	}

	if path, ok := decodeUTF16(data); ok {
		return path
	}

	return fmt.Sprintf("unknown (%d bytes)", len(data))
}

// guidFromWindowsBytes converts a GUID stored as Data1/Data2/Data3
// little-endian fields into RFC 4122 byte order.
func guidFromWindowsBytes(b []byte) (uuid.UUID, error) {
	if len(b) != 16 {
		return uuid.Nil, fmt.Errorf("guid must be 16 bytes, got %d", len(b))
	}

	be := make([]byte, 16)
	be[0], be[1], be[2], be[3] = b[3], b[2], b[1], b[0]
	be[4], be[5] = b[5], b[4]
	be[6], be[7] = b[7], b[6]
	copy(be[8:], b[8:])

	return uuid.FromBytes(be)
}

// decodeUTF16 decodes little-endian UTF-16 data that holds only printable characters.
func decodeUTF16(data []byte) (string, bool) {
	if len(data)%2 != 0 {
		return "", false
	}

	u := make([]uint16, 0, len(data)/2)
	for i := 0; i < len(data); i += 2 {
		u = append(u, binary.LittleEndian.Uint16(data[i:]))
	}

	s := strings.TrimRight(string(utf16.Decode(u)), "\x00")
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return "", false
		}
	}

	return s, true
}
