// Package xutf8 implements the UTF-8 transcoding helpers the ingestion
// core relies on for decoding legacy UCS-2BE/UCS-4BE string attributes
// and validating attribute values that are supposed to already be UTF-8.
// Grounded on _examples/original_source/common/tests/test-utf8.c, which
// specifies behavior in terms of a sibling p11_utf8_* collaborator.
package xutf8

import (
	"bytes"
	"unicode/utf8"
)

// ForUCS2BE decodes a big-endian UCS-2 byte string (BMP code points only,
// two bytes each, no surrogate pairing) into UTF-8. Truncated input (odd
// byte length) returns ok=false.
func ForUCS2BE(in []byte) (out string, ok bool) {
	if len(in)%2 != 0 {
		return "", false
	}
	var b bytes.Buffer
	for i := 0; i+1 < len(in); i += 2 {
		r := rune(in[i])<<8 | rune(in[i+1])
		b.WriteRune(r)
	}
	return b.String(), true
}

// ForUCS4BE decodes a big-endian UCS-4 (UTF-32BE) byte string into UTF-8.
// Truncated input (length not a multiple of 4), a surrogate code point
// (U+D800..U+DFFF), or a value outside the Unicode scalar range
// (beyond U+10FFFF) returns ok=false.
func ForUCS4BE(in []byte) (out string, ok bool) {
	if len(in)%4 != 0 {
		return "", false
	}
	var b bytes.Buffer
	for i := 0; i+3 < len(in); i += 4 {
		// Combine as uint32 first: widening a byte straight to rune (int32)
		// before shifting by 24 overflows into a negative value for any
		// leading byte >= 0x80, which would let surrogates and out-of-range
		// values slip past the checks below.
		v := uint32(in[i])<<24 | uint32(in[i+1])<<16 | uint32(in[i+2])<<8 | uint32(in[i+3])
		if v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
			return "", false
		}
		b.WriteRune(rune(v))
	}
	return b.String(), true
}

// Validate reports whether in is well-formed UTF-8. If length is negative,
// in is treated as NUL-terminated and only the bytes before the first NUL
// are validated; otherwise exactly the first length bytes are validated
// (length beyond len(in) is invalid).
func Validate(in []byte, length int) bool {
	if length < 0 {
		if idx := bytes.IndexByte(in, 0); idx >= 0 {
			in = in[:idx]
		}
	} else {
		if length > len(in) {
			return false
		}
		in = in[:length]
	}
	return utf8.Valid(in)
}
