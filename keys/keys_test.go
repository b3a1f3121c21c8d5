package keys

import (
	"encoding/binary"
	"testing"
)

func i32(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func TestNumericSignedCompare(t *testing.T) {

	cases := []struct {
		a, b int32
		want int
	}{
		{0, 0, 0},
		{1, 2, -1},
		{2, 1, 1},
		{-1, 1, -1},
		{1, -1, 1},
		{-2, -1, -1},
		{-1, -2, 1},
		{-2147483648, 2147483647, -1},
	}

	for _, c := range cases {
		got := sign(NumericSignedCompare(i32(c.a), i32(c.b)))
		if got != c.want {
			t.Errorf("compare(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNumericUnsignedCompare(t *testing.T) {

	cases := []struct {
		a, b uint32
		want int
	}{
		{0, 0, 0},
		{1, 256, -1},
		{256, 1, 1},
		{0, 4294967295, -1},
		{65536, 65535, 1},
	}

	for _, c := range cases {
		got := sign(NumericUnsignedCompare(u32(c.a), u32(c.b)))
		if got != c.want {
			t.Errorf("compare(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestStringCompare(t *testing.T) {

	// Padding after the first NUL must not affect the order
	a := []byte{'a', 'b', 0, 'x'}
	b := []byte{'a', 'b', 0, 0}

	if got := StringCompare(a, b); got != 0 {
		t.Errorf("compare with different padding = %d, want 0", got)
	}

	if got := sign(StringCompare([]byte("ab\x00\x00"), []byte("ac\x00\x00"))); got != -1 {
		t.Errorf("compare(ab, ac) = %d, want -1", got)
	}
	if got := sign(StringCompare([]byte("ab\x00\x00"), []byte("a\x00\x00\x00"))); got != 1 {
		t.Errorf("compare(ab, a) = %d, want 1", got)
	}
}

func TestBytesCompare(t *testing.T) {

	if got := sign(BytesCompare([]byte{0, 1}, []byte{1, 0})); got != -1 {
		t.Errorf("compare = %d, want -1", got)
	}
}

func TestParseTypeRoundTrip(t *testing.T) {

	for _, name := range []string{"signed", "unsigned", "bytes", "string"} {
		parsed, err := ParseType(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if parsed.String() != name {
			t.Errorf("round trip %q = %q", name, parsed.String())
		}
	}

	if _, err := ParseType("float"); err == nil {
		t.Error("unknown type name accepted")
	}
}

func TestTypeMarshalText(t *testing.T) {

	text, err := NumericUnsigned.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(text) != "unsigned" {
		t.Fatalf("marshal = %q, want %q", text, "unsigned")
	}

	var parsed Type
	if err := parsed.UnmarshalText([]byte("string")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed != String {
		t.Fatalf("unmarshal = %v, want String", parsed)
	}

	if _, err := Type(99).MarshalText(); err == nil {
		t.Error("unknown type marshaled")
	}
}
