// Package asn1defs is the ASN.1 decode/encode facade: decoding DER against
// a named schema element, encoding a built tree, measuring the length of
// a DER TLV, slicing a sub-encoding's exact bytes out of a larger buffer,
// and a small per-file cache keyed by (schema name, raw bytes).
//
// The "schema provider" collaborator spec.md §1 assumes available (a
// PKIX1/OPENSSL CertAux ASN.1 grammar database, modeled after libtasn1 in
// the original C implementation) has no equivalent third-party Go module
// in the example pack that does dynamic, named-element ASN.1 decoding the
// way libtasn1 does; see DESIGN.md for why this facade is built directly
// on encoding/asn1 and crypto/x509 instead, the same way
// other_examples/...go-phorce-dolly__xpki-authority-extensions.go and
// .../boulder__ca-ca.go hand-roll ASN.1 structures with encoding/asn1
// struct tags rather than reach for a schema-driven library.
package asn1defs

import (
	"crypto/x509"
	"encoding/asn1"
	"errors"
	"fmt"
)

// SchemaName names a grammar element the facade knows how to decode,
// mirroring the dotted "PKIX1.Certificate" / "OPENSSL.CertAux" element
// names the original parser passes to p11_asn1_decode.
type SchemaName string

const (
	SchemaCertificate    SchemaName = "PKIX1.Certificate"
	SchemaCertAux        SchemaName = "OPENSSL.CertAux"
	SchemaExtKeyUsage    SchemaName = "PKIX1.ExtKeyUsageSyntax"
)

// Defs stands in for the external ASN.1 schema-provider collaborator
// (out of scope per spec.md §1). Since this facade's decode logic is
// expressed directly in Go types rather than through a generic schema
// engine, Defs carries no state of its own today; it exists so call
// sites built against "decode(defs, element, bytes)" have somewhere
// real to pass, and so a future generic engine could be slotted in
// without changing callers.
type Defs struct{}

// NewDefs constructs the schema-provider handle.
func NewDefs() *Defs { return &Defs{} }

// ErrUnrecognized is returned when bytes don't parse against the named
// schema at all (as opposed to parsing but being semantically invalid).
var ErrUnrecognized = errors.New("asn1defs: data does not match schema")

// CertAux is OpenSSL's auxiliary trust structure, concatenated after a
// certificate's DER in a "TRUSTED CERTIFICATE" PEM block:
//
//	CertAux ::= SEQUENCE {
//	    trust    SEQUENCE OF OBJECT IDENTIFIER OPTIONAL,
//	    reject   [0] SEQUENCE OF OBJECT IDENTIFIER OPTIONAL,
//	    alias    UTF8String OPTIONAL,
//	    keyid    OCTET STRING OPTIONAL,
//	    other    SEQUENCE OF AlgorithmIdentifier OPTIONAL
//	}
type CertAux struct {
	Trust  []asn1.ObjectIdentifier `asn1:"optional"`
	Reject []asn1.ObjectIdentifier `asn1:"optional,tag:0"`
	Alias  string                  `asn1:"utf8,optional"`
	Keyid  asn1.RawValue           `asn1:"optional"`
	Other  asn1.RawValue           `asn1:"optional"` // algorithm list, unused by this core
}

// HasAlias reports whether the optional alias field was present.
func (c *CertAux) HasAlias() bool { return c.Alias != "" }

// HasKeyid reports whether the optional keyid field was present.
func (c *CertAux) HasKeyid() bool { return len(c.Keyid.FullBytes) > 0 }

// Node is an opaque decoded tree bound to a schema element.
type Node struct {
	Schema SchemaName
	Raw    []byte

	Cert *x509.Certificate
	Aux  *CertAux
}

// DecodeCertificate decodes data as PKIX1.Certificate (a DER X.509
// certificate). Returns ErrUnrecognized, wrapped with the underlying
// parse error, when data isn't a well-formed certificate.
func DecodeCertificate(_ *Defs, data []byte) (*Node, error) {
	cert, err := x509.ParseCertificate(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}
	return &Node{Schema: SchemaCertificate, Raw: data, Cert: cert}, nil
}

// DecodeCertAux decodes data as OPENSSL.CertAux.
func DecodeCertAux(_ *Defs, data []byte) (*Node, error) {
	var aux CertAux
	rest, err := asn1.Unmarshal(data, &aux)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: trailing data after CertAux", ErrUnrecognized)
	}
	return &Node{Schema: SchemaCertAux, Raw: data, Aux: &aux}, nil
}

// EncodeExtKeyUsageSyntax DER-encodes a PKIX1.ExtKeyUsageSyntax value
// (SEQUENCE OF OBJECT IDENTIFIER) from the given purpose OIDs, in the
// order given.
func EncodeExtKeyUsageSyntax(oids []asn1.ObjectIdentifier) ([]byte, error) {
	return asn1.Marshal(oids)
}

// TLVLength returns the byte length of the first complete DER TLV at the
// start of data: tag octet(s), length octet(s), and content. Returns an
// error if the header is malformed or data is too short for the declared
// content length. Mirrors p11_asn1_tlv_length.
func TLVLength(data []byte) (int, error) {
	if len(data) < 2 {
		return 0, errors.New("asn1defs: too short for a DER header")
	}

	pos := 0
	tag := data[pos]
	pos++
	if tag&0x1f == 0x1f {
		// Multi-byte tag: consume continuation octets (high bit set).
		for pos < len(data) && data[pos]&0x80 != 0 {
			pos++
		}
		pos++ // final tag octet
		if pos > len(data) {
			return 0, errors.New("asn1defs: truncated multi-byte tag")
		}
	}

	if pos >= len(data) {
		return 0, errors.New("asn1defs: truncated length")
	}

	lenByte := data[pos]
	pos++
	var contentLen int
	if lenByte&0x80 == 0 {
		contentLen = int(lenByte)
	} else {
		n := int(lenByte & 0x7f)
		if n == 0 {
			return 0, errors.New("asn1defs: indefinite-length DER is not permitted")
		}
		if pos+n > len(data) {
			return 0, errors.New("asn1defs: truncated long-form length")
		}
		for i := 0; i < n; i++ {
			contentLen = contentLen<<8 | int(data[pos])
			pos++
		}
	}

	total := pos + contentLen
	if total > len(data) || total < pos {
		return 0, errors.New("asn1defs: declared length exceeds buffer")
	}
	return total, nil
}
