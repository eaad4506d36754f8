package codec

import (
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []CodeUnit
	}{
		{"empty", nil, []CodeUnit{}},
		{"ascii", []byte("abc"), []CodeUnit{'a', 'b', 'c'}},
		{"two byte", []byte("é"), []CodeUnit{0xE9}},
		{"three byte", []byte("あア一"), []CodeUnit{0x3042, 0x30A2, 0x4E00}},
		{"nul", []byte{0x00, 'a'}, []CodeUnit{0x00, 'a'}},
		{"truncated three byte", []byte{0xE3, 0x81}, []CodeUnit{}},
		{"stray continuation", []byte{0x80, 'A'}, []CodeUnit{'A'}},
		{"bad continuation resyncs", []byte{0xE3, 'A', 0x81, 0x82}, []CodeUnit{'A'}},
		{"lead before lead", []byte{0xC3, 0xC3, 0xA9}, []CodeUnit{0xE9}},
		{"four byte dropped", []byte("a😀b"), []CodeUnit{'a', 'b'}},
	}

	for _, tt := range tests {
		got := Decode(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: Decode(%x) = %x, want %x", tt.name, tt.input, got, tt.want)
		}
		if gotStr := DecodeString(string(tt.input)); !reflect.DeepEqual(gotStr, tt.want) {
			t.Errorf("%s: DecodeString(%q) = %x, want %x", tt.name, tt.input, gotStr, tt.want)
		}
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		unit CodeUnit
		want string
	}{
		{'A', "A"},
		{0x7F, "\x7f"},
		{0x80, "\u0080"},
		{0x7FF, "\u07ff"},
		{0x800, "\u0800"},
		{0x3042, "あ"},
		{0xFFFF, "\uffff"},
	}

	for _, tt := range tests {
		if got := EncodeString(tt.unit); got != tt.want {
			t.Errorf("EncodeString(%#x) = %q, want %q", tt.unit, got, tt.want)
		}
		if got := string(Encode(tt.unit)); got != tt.want {
			t.Errorf("Encode(%#x) = %q, want %q", tt.unit, got, tt.want)
		}
	}
}

func TestRoundTripWholePlane(t *testing.T) {
	for u := 0; u <= 0xFFFF; u++ {
		got := Decode(Encode(CodeUnit(u)))
		if len(got) != 1 || got[0] != CodeUnit(u) {
			t.Fatalf("round trip of %#x = %x", u, got)
		}
	}
}

func TestEncodeAll(t *testing.T) {
	s := "私はGoで分かち書きする123"
	if got := EncodeAll(DecodeString(s)); got != s {
		t.Errorf("EncodeAll(DecodeString(%q)) = %q", s, got)
	}
}
