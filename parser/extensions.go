package parser

import (
	"encoding/asn1"
	"fmt"
	"sort"

	"github.com/letsencrypt-labs/trustkit/asn1defs"
	"github.com/letsencrypt-labs/trustkit/attrs"
	"github.com/letsencrypt-labs/trustkit/oids"
)

// extensionAttrs builds a CKO_X_CERTIFICATE_EXTENSION object: a
// certificate extension sitting alongside the certificate it belongs to,
// joined by a shared CKA_ID. A nil extDER leaves CKA_VALUE unset, for
// callers that fill it in afterward (stapledAttrs). Mirrors
// extension_attrs.
func extensionAttrs(id attrs.Attribute, oidDER []byte, critical bool, extDER []byte) attrs.Set {
	value := attrs.Attribute{ID: attrs.Invalid}
	if extDER != nil {
		value = attrs.StrAttr(attrs.Value, extDER)
	}
	return attrs.Build(attrs.Set{},
		id,
		attrs.ULongAttr(attrs.Class, uint64(attrs.ClassCertExt)),
		attrs.BoolAttr(attrs.Modifiable, false),
		attrs.StrAttr(attrs.ObjectID, oidDER),
		attrs.BoolAttr(attrs.XCritical, critical),
		value,
	)
}

// stapledAttrs is extensionAttrs plus a freshly-encoded extension value,
// for extensions this core synthesizes rather than lifts verbatim from
// the certificate's own extension list. Mirrors stapled_attrs.
func stapledAttrs(id attrs.Attribute, oidDER []byte, critical bool, valueDER []byte) attrs.Set {
	return attrs.Take(extensionAttrs(id, oidDER, critical, nil), attrs.Value, valueDER)
}

// stapledEKUAttrs builds a stapled ExtKeyUsageSyntax extension from a set
// of purpose OIDs. An empty purpose list still needs an encodable
// ExtKeyUsageSyntax with at least one entry (RFC 5280 draws a hard line
// between "no ExtendedKeyUsage extension" and "one present but empty"),
// so it falls back to a reserved placeholder purpose. Mirrors
// stapled_eku_attrs.
func stapledEKUAttrs(id attrs.Attribute, oidDER []byte, critical bool, purposes []asn1.ObjectIdentifier) (attrs.Set, error) {
	if len(purposes) == 0 {
		purposes = []asn1.ObjectIdentifier{oids.ReservedPurpose}
	}
	der, err := asn1defs.EncodeExtKeyUsageSyntax(purposes)
	if err != nil {
		return attrs.Set{}, fmt.Errorf("encoding stapled ExtKeyUsageSyntax: %w", err)
	}
	return stapledAttrs(id, oidDER, critical, der), nil
}

func marshalOID(o asn1.ObjectIdentifier) []byte {
	der, err := asn1.Marshal(o)
	if err != nil {
		// A fixed, compile-time-constant OID can't fail to marshal.
		panic(fmt.Sprintf("parser: marshaling %v: %v", o, err))
	}
	return der
}

// buildOpenSSLExtensions synthesizes the trust-policy side effects of an
// OpenSSL TRUSTED CERTIFICATE's aux structure: a stapled ExtKeyUsageSyntax
// extension for the trust purposes, one for the rejected purposes (only
// when any are rejected), a stapled SubjectKeyIdentifier extension when
// present, and the certificate's own CKA_TRUSTED/CKA_X_DISTRUSTED flags
// derived from whether any trust purposes survive rejection. auxRaw is the
// aux structure's own encoded bytes, needed to locate the keyid sub-element
// by byte range. Mirrors build_openssl_extensions.
func (p *Parser) buildOpenSSLExtensions(cert attrs.Set, id attrs.Attribute, aux *asn1defs.CertAux, auxRaw []byte) (attrs.Set, error) {
	trust := make(map[string]asn1.ObjectIdentifier, len(aux.Trust))
	for _, o := range aux.Trust {
		trust[o.String()] = o
	}
	for _, o := range aux.Reject {
		delete(trust, o.String())
	}

	trustPurposes := sortedOIDs(trust)

	ekuAttrs, err := stapledEKUAttrs(id, marshalOID(oids.ExtKeyUsage), true, trustPurposes)
	if err != nil {
		return attrs.Set{}, err
	}
	p.sinkObject(ekuAttrs)

	if len(aux.Reject) > 0 {
		rejectAttrs, err := stapledEKUAttrs(id, marshalOID(oids.OpenSSLReject), false, aux.Reject)
		if err != nil {
			return attrs.Set{}, err
		}
		p.sinkObject(rejectAttrs)
	}

	trusted := len(trustPurposes) > 0
	cert = attrs.Merge(cert, attrs.NewSet(
		attrs.BoolAttr(attrs.Trusted, trusted),
		attrs.BoolAttr(attrs.XDistrusted, !trusted),
	), true)

	if aux.HasKeyid() {
		keyidDER := aux.Keyid.FullBytes
		if start, end, ok := asn1defs.SubRange(auxRaw, aux.Keyid.FullBytes); ok {
			keyidDER = auxRaw[start : end+1]
		}
		keyidAttrs := extensionAttrs(id, marshalOID(oids.SubjectKeyIdentifier), false, keyidDER)
		p.sinkObject(keyidAttrs)
	}

	return cert, nil
}

func sortedOIDs(set map[string]asn1.ObjectIdentifier) []asn1.ObjectIdentifier {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]asn1.ObjectIdentifier, len(keys))
	for i, k := range keys {
		out[i] = set[k]
	}
	return out
}
