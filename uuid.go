package gatt

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// A UUID is a BLE UUID, either a 16-bit SIG-assigned number or a full
// 128-bit value. Bytes are stored in little-endian order, the way they
// travel on the wire.
type UUID struct {
	b []byte
}

// UUID16 converts a uint16 (such as 0x1802) to a UUID.
func UUID16(i uint16) UUID {
	return UUID{[]byte{byte(i), byte(i >> 8)}}
}

// ParseUUID parses a standard hexadecimal UUID string, such as "1802"
// or "00001802-0000-1000-8000-00805f9b34fb".
func ParseUUID(s string) (UUID, error) {
	s = strings.Replace(s, "-", "", -1)
	b, err := hex.DecodeString(s)
	if err != nil {
		return UUID{}, err
	}
	if len(b) != 2 && len(b) != 16 {
		return UUID{}, fmt.Errorf("UUIDs must have 16 or 128 bits, got %d", len(b)*8)
	}
	return UUID{reverse(b)}, nil
}

// MustParseUUID parses a standard hexadecimal UUID string,
// like ParseUUID, but panics in case of error.
func MustParseUUID(s string) UUID {
	u, err := ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Len returns the length of the UUID, in bytes. BLE UUIDs are either
// 2 or 16 bytes.
func (u UUID) Len() int {
	return len(u.b)
}

// String hex-encodes a UUID: "1802" for a 16-bit UUID, the dashed
// 8-4-4-4-12 form for a 128-bit one.
func (u UUID) String() string {
	b := reverse(u.b)
	if len(b) == 2 {
		return hex.EncodeToString(b)
	}
	s := hex.EncodeToString(b)
	return fmt.Sprintf("%s-%s-%s-%s-%s", s[0:8], s[8:12], s[12:16], s[16:20], s[20:])
}

// Full returns the 128-bit textual form expected in BlueZ GATT
// properties, expanding 16-bit UUIDs with the Bluetooth base UUID.
func (u UUID) Full() string {
	if len(u.b) == 2 {
		return fmt.Sprintf("0000%s-0000-1000-8000-00805f9b34fb", u.String())
	}
	return u.String()
}

// Equal returns a boolean reporting whether two UUIDs are identical.
func (u UUID) Equal(u2 UUID) bool {
	if len(u.b) != len(u2.b) {
		return false
	}
	for i := range u.b {
		if u.b[i] != u2.b[i] {
			return false
		}
	}
	return true
}

// reverse returns a reversed copy of u.
func reverse(u []byte) []byte {
	// Special-case 16 bit UUIDS for speed.
	l := len(u)
	if l == 2 {
		return []byte{u[1], u[0]}
	}
	b := make([]byte, l)
	for i := 0; i < l/2+1; i++ {
		b[i], b[l-i-1] = u[l-i-1], u[i]
	}
	return b
}
