package persist

import "github.com/letsencrypt-labs/trustkit/attrs"

// fieldSpec names the attribute a field line sets. Value type is not
// declared per field: it's inferred from the value's own syntax
// (quoted string, true/false, digits, dotted-decimal, or bare symbol),
// since the grammar lets a single field name like "value" carry either a
// quoted string or a bare number (test-persist.c's test_number). constants
// is the accepted symbol vocabulary for that field when the value turns
// out to be a bare symbol; nil means the field has none.
type fieldSpec struct {
	id        attrs.AttrID
	constants map[string]uint64
}

var classConstants = map[string]uint64{
	"data":        uint64(attrs.ClassData),
	"certificate": uint64(attrs.ClassCertificate),
	"nss-trust":   uint64(attrs.ClassNSSTrust),
}

var certTypeConstants = map[string]uint64{
	"x-509": attrs.CertTypeX509,
}

var trustConstants = map[string]uint64{
	"nss-trust-unknown":           attrs.TrustUnknown,
	"nss-trust-trusted":           attrs.TrustTrusted,
	"nss-trust-trusted-delegator": attrs.TrustTrustedDelegator,
	"nss-trust-untrusted":         attrs.TrustUntrusted,
	"nss-trust-must-verify":       attrs.TrustMustVerify,
}

// knownFields is the closed set of field names the grammar accepts,
// spec.md §4.E. The trust-* family all share the same NSS trust-value
// vocabulary.
var knownFields = map[string]fieldSpec{
	"class":                  {id: attrs.Class, constants: classConstants},
	"value":                  {id: attrs.Value},
	"application":            {id: attrs.Application},
	"label":                  {id: attrs.Label},
	"id":                     {id: attrs.ID},
	"object-id":              {id: attrs.ObjectID},
	"private":                {id: attrs.Private},
	"modifiable":             {id: attrs.Modifiable},
	"trusted":                {id: attrs.Trusted},
	"distrusted":             {id: attrs.XDistrusted},
	"x-distrusted":           {id: attrs.XDistrusted},
	"critical":               {id: attrs.XCritical},
	"certificate-type":       {id: attrs.CertificateType, constants: certTypeConstants},
	"trust-server-auth":      {id: attrs.TrustServerAuth, constants: trustConstants},
	"trust-client-auth":      {id: attrs.TrustClientAuth, constants: trustConstants},
	"trust-code-signing":     {id: attrs.TrustCodeSigning, constants: trustConstants},
	"trust-email-protection": {id: attrs.TrustEmailProt, constants: trustConstants},
	"trust-ipsec-ike":        {id: attrs.TrustIPsecIKE, constants: trustConstants},
	"trust-time-stamping":    {id: attrs.TrustTimeStamping, constants: trustConstants},
}
