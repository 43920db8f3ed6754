package parser

import (
	"fmt"

	"github.com/letsencrypt-labs/trustkit/asn1defs"
	"github.com/letsencrypt-labs/trustkit/attrs"
	"github.com/letsencrypt-labs/trustkit/pem"
	"github.com/letsencrypt-labs/trustkit/x509util"
)

// certificateAttrs builds the CKO_CERTIFICATE object for a raw DER
// certificate: class, non-modifiable, X.509 type, the DER bytes
// themselves, and the caller-supplied CKA_ID (invalid/omitted if the key
// identifier couldn't be computed). Mirrors certificate_attrs.
func certificateAttrs(id attrs.Attribute, der []byte) attrs.Set {
	return attrs.Build(attrs.Set{},
		attrs.ULongAttr(attrs.Class, uint64(attrs.ClassCertificate)),
		attrs.BoolAttr(attrs.Modifiable, false),
		attrs.ULongAttr(attrs.CertificateType, attrs.CertTypeX509),
		attrs.StrAttr(attrs.Value, der),
		id,
	)
}

func idAttrFor(kid [x509util.KeyIDLength]byte, ok bool) attrs.Attribute {
	if !ok {
		return attrs.Attribute{ID: attrs.Invalid}
	}
	return attrs.StrAttr(attrs.ID, kid[:])
}

// parseDERCertificate is the raw-DER stage of the parser driver, and is
// also reused by parsePEMCertificates for a bare "CERTIFICATE" PEM block.
// Mirrors parse_der_x509_certificate.
func (p *Parser) parseDERCertificate(data []byte) (Result, error) {
	node, err := asn1defs.DecodeCertificate(p.cache.Defs(), data)
	if err != nil {
		return Unrecognized, nil
	}

	id := idAttrFor(x509util.CalcKeyID(node.Cert))
	set := certificateAttrs(id, data)
	p.cache.Take(node, asn1defs.SchemaCertificate, data)

	p.sinkObject(set)
	return Success, nil
}

// parseOpenSSLTrustedCertificate parses OpenSSL's "TRUSTED CERTIFICATE"
// wire format: a certificate DER immediately followed by a CertAux DER,
// with no enclosing structure, so the certificate's own TLV length marks
// where the aux structure begins. Mirrors
// parse_openssl_trusted_certificate.
func (p *Parser) parseOpenSSLTrustedCertificate(data []byte) (Result, error) {
	certLen, err := asn1defs.TLVLength(data)
	if err != nil || certLen <= 0 || certLen >= len(data) {
		return Unrecognized, nil
	}

	certNode, err := asn1defs.DecodeCertificate(p.cache.Defs(), data[:certLen])
	if err != nil {
		return Unrecognized, nil
	}

	auxNode, err := asn1defs.DecodeCertAux(p.cache.Defs(), data[certLen:])
	if err != nil {
		return Unrecognized, nil
	}

	id := idAttrFor(x509util.CalcKeyID(certNode.Cert))
	set := certificateAttrs(id, data[:certLen])
	p.cache.Take(certNode, asn1defs.SchemaCertificate, data[:certLen])

	if auxNode.Aux.HasAlias() {
		set = attrs.Take(set, attrs.Label, []byte(auxNode.Aux.Alias))
	}

	set, err = p.buildOpenSSLExtensions(set, id, auxNode.Aux, auxNode.Raw)
	if err != nil {
		return Failure, fmt.Errorf("building openssl extensions: %w", err)
	}

	p.sinkObject(set)
	return Success, nil
}

// parsePEMCertificates is the PEM-envelope stage of the parser driver: it
// scans data for BEGIN/END blocks and dispatches each one by PEM type.
// Unsupported or unrecognized block types are skipped, not fatal; the
// stage itself only reports Unrecognized when the buffer contains no PEM
// blocks at all. Mirrors parse_pem_certificates/on_pem_block.
func (p *Parser) parsePEMCertificates(data []byte) (Result, error) {
	count := pem.Parse(data, func(typ string, contents []byte) {
		p.idx.Batch()
		defer p.idx.Finish()

		var ret Result
		switch typ {
		case "CERTIFICATE":
			ret, _ = p.parseDERCertificate(contents)
		case "TRUSTED CERTIFICATE":
			ret, _ = p.parseOpenSSLTrustedCertificate(contents)
		default:
			p.batch.Warningf("skipping unsupported PEM block of type %s", typ)
			ret = Success
		}

		if ret != Success {
			p.batch.Warningf("couldn't parse PEM block of type %s", typ)
		}
	})

	if count == 0 {
		return Unrecognized, nil
	}
	return Success, nil
}
