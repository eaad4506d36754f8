// Package codec converts UTF-8 text to the fixed-width code units the
// segmenter works on, and back.
//
// Only the Basic Multilingual Plane is supported. Decoding is lenient: a byte
// that does not start a well-formed 1, 2 or 3 byte sequence is skipped and
// decoding resumes at the next byte, so Decode never fails.
package codec

// CodeUnit is one decoded character.
type CodeUnit uint16

// MaxEncodedLen is the number of bytes the largest CodeUnit encodes to.
const MaxEncodedLen = 3

// Decode decodes b into code units. Malformed or unsupported sequences
// (including 4-byte sequences) are dropped one byte at a time.
func Decode(b []byte) []CodeUnit {
	return decode(b)
}

// DecodeString is Decode for a string, without copying it.
func DecodeString(s string) []CodeUnit {
	return decode(s)
}

func decode[T ~string | ~[]byte](s T) []CodeUnit {
	n := len(s)
	units := make([]CodeUnit, 0, n)
	for i := 0; i < n; {
		c := s[i]
		switch {
		case c < 0x80:
			units = append(units, CodeUnit(c))
			i++
			continue
		case c >= 0xC0 && c < 0xE0:
			if i+1 < n && isContinuation(s[i+1]) {
				units = append(units, CodeUnit(c&0x1F)<<6|CodeUnit(s[i+1]&0x3F))
				i += 2
				continue
			}
		case c >= 0xE0 && c < 0xF0:
			if i+2 < n && isContinuation(s[i+1]) && isContinuation(s[i+2]) {
				units = append(units, CodeUnit(c&0x0F)<<12|CodeUnit(s[i+1]&0x3F)<<6|CodeUnit(s[i+2]&0x3F))
				i += 3
				continue
			}
		}
		// resync
		i++
	}
	return units
}

func isContinuation(b byte) bool {
	return b >= 0x80 && b < 0xC0
}

// AppendEncode appends the UTF-8 form of u to dst.
func AppendEncode(dst []byte, u CodeUnit) []byte {
	switch {
	case u < 0x80:
		return append(dst, byte(u))
	case u < 0x800:
		return append(dst, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
	default:
		return append(dst, 0xE0|byte(u>>12), 0x80|byte((u>>6)&0x3F), 0x80|byte(u&0x3F))
	}
}

// Encode returns the UTF-8 form of u.
func Encode(u CodeUnit) []byte {
	return AppendEncode(make([]byte, 0, MaxEncodedLen), u)
}

// EncodeString returns the UTF-8 form of u as a string.
func EncodeString(u CodeUnit) string {
	var buf [MaxEncodedLen]byte
	return string(AppendEncode(buf[:0], u))
}

// EncodeAll encodes a run of code units.
func EncodeAll(units []CodeUnit) string {
	buf := make([]byte, 0, len(units)*MaxEncodedLen)
	for _, u := range units {
		buf = AppendEncode(buf, u)
	}
	return string(buf)
}
