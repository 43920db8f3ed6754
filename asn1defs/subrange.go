package asn1defs

import "bytes"

// SubRange locates elementDER (the exact DER bytes of a sub-element, as
// produced by asn1.RawValue.FullBytes) within original and returns its
// zero-based, inclusive [start, end] byte range. This is the Go
// equivalent of asn1_der_decoding_startEnd: the original C code computes
// (end - start) + 1 when slicing keyid out of the CertAux encoding, and
// that inclusive-end convention is preserved here so call sites that
// need "end - start + 1" as a length read naturally.
func SubRange(original, elementDER []byte) (start, end int, ok bool) {
	if len(elementDER) == 0 {
		return 0, 0, false
	}
	idx := bytes.Index(original, elementDER)
	if idx < 0 {
		return 0, 0, false
	}
	return idx, idx + len(elementDER) - 1, true
}
