package attrs

// AttrID is a PKCS#11-style CK_ATTRIBUTE_TYPE: the id half of an
// (id, bytes) attribute tuple.
type AttrID uint32

// Invalid marks a slot as "omit me when building a set" (CKA_INVALID).
const Invalid AttrID = 0xFFFFFFFF

// Standard cryptographic-token attribute ids (CK_ATTRIBUTE_TYPE values),
// the subset this ingestion core reads or writes.
const (
	Class             AttrID = 0x00000000
	Token             AttrID = 0x00000001
	Private           AttrID = 0x00000002
	Label             AttrID = 0x00000003
	Application       AttrID = 0x00000010
	Value             AttrID = 0x00000011
	ObjectID          AttrID = 0x00000012
	CertificateType   AttrID = 0x00000080
	CertificateCat    AttrID = 0x00000087
	Trusted           AttrID = 0x00000086
	ID                AttrID = 0x00000102
	Modifiable        AttrID = 0x00000170
)

const vendorBase AttrID = 0x80000000

// Vendor-extension attribute ids used by this system. Unlike the standard
// ids above these have no meaning outside p11-kit-style trust stores.
const (
	XDistrusted           AttrID = vendorBase + 1
	XCritical             AttrID = vendorBase + 2
	XCertificateExtension AttrID = vendorBase + 3 // object class value, not an attribute id
)

// NSS vendor-defined trust attribute ids (the "trust-*" field family in
// the persistence grammar, §4.E). Only the handful actually exercised by
// the grammar are modeled; more can be added without touching callers.
const (
	nssTrustBase      AttrID = vendorBase + 0x100
	TrustServerAuth   AttrID = nssTrustBase + 1
	TrustClientAuth   AttrID = nssTrustBase + 2
	TrustCodeSigning  AttrID = nssTrustBase + 3
	TrustEmailProt    AttrID = nssTrustBase + 4
	TrustIPsecIKE     AttrID = nssTrustBase + 5
	TrustTimeStamping AttrID = nssTrustBase + 6
)

// Object classes (CK_OBJECT_CLASS values).
type Class_ uint64

const (
	ClassData        Class_ = 0x00000000
	ClassCertificate Class_ = 0x00000001
	ClassNSSTrust    Class_ = 0xCE534351 // vendor range, mirrors NSS's own CKO_NSS_TRUST
	ClassCertExt     Class_ = 0x80000501 // CKO_X_CERTIFICATE_EXTENSION, this system's own object class
)

// CertificateType values (CK_CERTIFICATE_TYPE).
const (
	CertTypeX509 uint64 = 0x00000000
)

// Trust values (CK_TRUST), the "constant" vocabulary for trust-* fields.
const (
	TrustUnknown          uint64 = 0x00000000
	TrustTrusted          uint64 = 0x00000001
	TrustTrustedDelegator uint64 = 0x00000002
	TrustUntrusted        uint64 = 0x00000003
	TrustMustVerify       uint64 = 0x00000004
)
