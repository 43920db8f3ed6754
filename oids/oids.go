// Package oids holds the small set of object identifiers the trust-policy
// synthesis step (CertAux handling) needs to recognize or emit. Grounded
// on build_openssl_extensions and stapled_eku_attrs in
// _examples/original_source/trust/parser.c, which consult the same
// handful of arcs from OpenSSL's x509v3.h and PKIX.
package oids

import "encoding/asn1"

var (
	// ExtKeyUsage is id-ce-extKeyUsage, 2.5.29.37.
	ExtKeyUsage = asn1.ObjectIdentifier{2, 5, 29, 37}

	// SubjectKeyIdentifier is id-ce-subjectKeyIdentifier, 2.5.29.14, used
	// to tag a stapled key-identifier extension object with the
	// certificate it belongs to.
	SubjectKeyIdentifier = asn1.ObjectIdentifier{2, 5, 29, 14}

	// OpenSSLReject is OpenSSL's private arc for the "reject" purpose list
	// baked into a TRUSTED CERTIFICATE's aux structure (no ITU/IANA arc
	// exists for it; OpenSSL mints it under its enterprise arc).
	OpenSSLReject = asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 11129, 2, 4, 1}

	// ReservedPurpose fills an ExtKeyUsageSyntax that would otherwise be
	// empty: RFC 5280 requires at least one purpose once the extension is
	// present at all, and "present but empty" must read differently than
	// "absent" to callers checking for a specific purpose.
	ReservedPurpose = asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 11129, 2, 4, 2}
)
