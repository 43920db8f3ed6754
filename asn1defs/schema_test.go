package asn1defs

import (
	"encoding/asn1"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsencrypt-labs/trustkit/internal/testcerts"
)

func TestDecodeCertificate(t *testing.T) {
	defs := NewDefs()
	der := testcerts.DER()

	node, err := DecodeCertificate(defs, der)
	require.NoError(t, err)
	require.NotNil(t, node.Cert)
	assert.Equal(t, "VeriSign, Inc.", node.Cert.Subject.Organization[0])
}

func TestDecodeCertificateUnrecognized(t *testing.T) {
	_, err := DecodeCertificate(NewDefs(), []byte{0x00, 0x01, 0x02})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrecognized)
}

func TestTLVLengthCertificate(t *testing.T) {
	der := testcerts.DER()
	n, err := TLVLength(der)
	require.NoError(t, err)
	assert.Equal(t, len(der), n)
}

func TestTLVLengthLongForm(t *testing.T) {
	// OCTET STRING of 200 bytes => long-form length.
	content := make([]byte, 200)
	inner, err := asn1.Marshal(asn1.RawValue{Class: 0, Tag: 4, IsCompound: false, Bytes: content})
	require.NoError(t, err)
	extra := []byte{0xDE, 0xAD}
	buf := append(append([]byte{}, inner...), extra...)

	n, err := TLVLength(buf)
	require.NoError(t, err)
	assert.Equal(t, len(inner), n)
}

func TestTLVLengthMalformed(t *testing.T) {
	_, err := TLVLength([]byte{0x30})
	assert.Error(t, err)
}

func TestCacheTakeAndFlush(t *testing.T) {
	c := NewCache(NewDefs())
	der := testcerts.DER()
	node, err := DecodeCertificate(c.Defs(), der)
	require.NoError(t, err)

	c.Take(node, SchemaCertificate, der)
	got, ok := c.Get(SchemaCertificate, der)
	require.True(t, ok)
	assert.Same(t, node, got)

	c.Flush()
	_, ok = c.Get(SchemaCertificate, der)
	assert.False(t, ok)
}

func TestEncodeExtKeyUsageSyntax(t *testing.T) {
	oids := []asn1.ObjectIdentifier{{1, 3, 6, 1, 5, 5, 7, 3, 1}}
	der, err := EncodeExtKeyUsageSyntax(oids)
	require.NoError(t, err)

	var decoded []asn1.ObjectIdentifier
	_, err = asn1.Unmarshal(der, &decoded)
	require.NoError(t, err)
	assert.Equal(t, oids, decoded)
}

func TestSubRange(t *testing.T) {
	original := []byte{0xAA, 0xBB, 0x04, 0x02, 0xCA, 0xFE, 0xCC}
	sub := []byte{0x04, 0x02, 0xCA, 0xFE}
	start, end, ok := SubRange(original, sub)
	require.True(t, ok)
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)
	assert.Equal(t, len(sub), (end-start)+1)
}

func TestSubRangeNotFound(t *testing.T) {
	_, _, ok := SubRange([]byte{0x01, 0x02}, []byte{0x03, 0x04})
	assert.False(t, ok)
}
