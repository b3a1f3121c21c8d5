// Package keys provides the fixed-width key comparators consumed by the
// storage engines. A comparator is a capability supplied at store open time,
// the engines never interpret key bytes themselves.
package keys

import (
	"bytes"
	"fmt"
)

// Compare reports the order of two keys: negative if a sorts before b, zero
// if they are equal, positive otherwise. Both slices have the same fixed
// width, the key size of the store that owns the comparator.
type Compare func(a, b []byte) int

// Type enumerates the supported key encodings.
type Type int

const (
	// NumericSigned is a little-endian two's complement integer of key-size
	// bytes.
	NumericSigned Type = iota
	// NumericUnsigned is a little-endian unsigned integer of key-size bytes.
	NumericUnsigned
	// Bytes is a raw byte string compared lexicographically.
	Bytes
	// String is a NUL-terminated text inside a fixed-width field.
	String
)

var typeNames = map[Type]string{
	NumericSigned:   "signed",
	NumericUnsigned: "unsigned",
	Bytes:           "bytes",
	String:          "string",
}

func (t Type) String() string {
	name, ok := typeNames[t]
	if !ok {
		return fmt.Sprintf("keys.Type(%d)", int(t))
	}
	return name
}

func (t Type) MarshalText() ([]byte, error) {
	name, ok := typeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown key type %d", int(t))
	}
	return []byte(name), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseType resolves a key type by its name.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown key type '%s'", name)
}

// ForType returns the comparator for a key type.
func ForType(t Type) Compare {
	switch t {
	case NumericSigned:
		return NumericSignedCompare
	case NumericUnsigned:
		return NumericUnsignedCompare
	case String:
		return StringCompare
	default:
		return BytesCompare
	}
}

// BytesCompare orders keys as raw byte strings.
func BytesCompare(a, b []byte) int {
	return bytes.Compare(a, b)
}

// StringCompare orders keys as NUL-terminated strings, bytes after the first
// NUL are padding and do not participate.
func StringCompare(a, b []byte) int {
	return bytes.Compare(trimNul(a), trimNul(b))
}

func trimNul(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}

// NumericUnsignedCompare orders keys as little-endian unsigned integers of
// any width, comparing from the most significant byte down.
func NumericUnsignedCompare(a, b []byte) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// NumericSignedCompare orders keys as little-endian two's complement
// integers. Within one sign the unsigned byte order already matches the
// numeric order, so only the sign bits need special handling.
func NumericSignedCompare(a, b []byte) int {
	negA := a[len(a)-1]&0x80 != 0
	negB := b[len(b)-1]&0x80 != 0
	if negA != negB {
		if negA {
			return -1
		}
		return 1
	}
	return NumericUnsignedCompare(a, b)
}
