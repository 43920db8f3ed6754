// Package x509util implements the X.509-specific helper this ingestion
// core needs beyond plain certificate parsing: computing the key
// identifier used to join a certificate with its stapled extensions.
// Grounded on p11_x509_calc_keyid in
// _examples/original_source/trust/parser.c.
package x509util

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is the join-key algorithm this format specifies, not a security boundary
	"crypto/x509"
	"encoding/asn1"
)

// KeyIDLength is the width of the key identifier (a SHA-1 digest).
const KeyIDLength = sha1.Size

type subjectPublicKeyInfo struct {
	Algorithm asn1.RawValue
	PublicKey asn1.BitString
}

// CalcKeyID computes the SHA-1 digest of cert's
// tbsCertificate.subjectPublicKeyInfo.subjectPublicKey BIT STRING
// contents (the unused-bits octet is not part of the digested bytes).
// ok is false iff the subjectPublicKeyInfo sub-element can't be
// recovered from cert's raw encoding.
func CalcKeyID(cert *x509.Certificate) (id [KeyIDLength]byte, ok bool) {
	if cert == nil || len(cert.RawSubjectPublicKeyInfo) == 0 {
		return id, false
	}
	var spki subjectPublicKeyInfo
	if _, err := asn1.Unmarshal(cert.RawSubjectPublicKeyInfo, &spki); err != nil {
		return id, false
	}
	return sha1.Sum(spki.PublicKey.Bytes), true
}
