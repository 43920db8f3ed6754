package parser

import (
	"github.com/letsencrypt-labs/trustkit/attrs"
	"github.com/letsencrypt-labs/trustkit/index"
)

// certPriority orders duplicate-certificate resolution: a distrusted
// duplicate always wins over a trusted one, which always wins over one
// with no trust opinion. Mirrors calc_cert_priority's PRI_* enum.
type certPriority int

const (
	priUnknown certPriority = iota
	priTrusted
	priDistrust
)

func calcCertPriority(set attrs.Set) certPriority {
	if v, ok := set.FindBool(attrs.XDistrusted); ok && v {
		return priDistrust
	}
	if v, ok := set.FindBool(attrs.Trusted); ok && v {
		return priTrusted
	}
	return priUnknown
}

func pullCertLabel(set attrs.Set) string {
	v, ok := set.FindValue(attrs.Label)
	if !ok {
		return "?"
	}
	return string(v)
}

// populateTrust fills in CKA_TRUSTED/CKA_X_DISTRUSTED according to the
// location a certificate was loaded from. An anchor location marks
// certificates trusted unless they already carry a distrust flag (which
// is left alone and only warned about); a blacklist location forces
// distrust regardless of what the file itself says; a plain location only
// fills in the flags if they're altogether missing. Mirrors
// populate_trust.
func (p *Parser) populateTrust(set attrs.Set) attrs.Set {
	switch {
	case p.flags&FlagAnchor != 0:
		if v, ok := set.FindBool(attrs.XDistrusted); ok && v {
			p.batch.Warningf("certificate with distrust in location for anchors")
			return set
		}
		return attrs.Build(set,
			attrs.BoolAttr(attrs.Trusted, true),
			attrs.BoolAttr(attrs.XDistrusted, false))

	case p.flags&FlagBlacklist != 0:
		if v, ok := set.FindBool(attrs.Trusted); ok && v {
			p.batch.Warningf("overriding trust for anchor in blacklist")
		}
		return attrs.Build(set,
			attrs.BoolAttr(attrs.Trusted, false),
			attrs.BoolAttr(attrs.XDistrusted, true))

	default:
		trusted := attrs.Attribute{ID: attrs.Invalid}
		distrust := attrs.Attribute{ID: attrs.Invalid}
		if _, ok := set.FindValid(attrs.Trusted); !ok {
			trusted = attrs.BoolAttr(attrs.Trusted, false)
		}
		if _, ok := set.FindValid(attrs.XDistrusted); !ok {
			distrust = attrs.BoolAttr(attrs.XDistrusted, false)
		}
		return attrs.Build(set, trusted, distrust)
	}
}

// lookupCertDuplicate finds an already-sunk certificate object with the
// same CKA_VALUE, since a fresh load can assume anything already in the
// index with identical DER bytes is a duplicate of what's being added now.
func lookupCertDuplicate(idx *index.Index, set attrs.Set) (index.Handle, attrs.Set, bool) {
	value, ok := set.FindValue(attrs.Value)
	if !ok {
		return 0, attrs.Set{}, false
	}
	template := attrs.NewSet(
		attrs.StrAttr(attrs.Value, value),
		attrs.ULongAttr(attrs.Class, uint64(attrs.ClassCertificate)),
	)
	handle := idx.Find(template, -1)
	if handle == 0 {
		return 0, attrs.Set{}, false
	}
	dupl, ok := idx.Lookup(handle)
	if !ok {
		return 0, attrs.Set{}, false
	}
	return handle, dupl, true
}

// sinkObject is where every decoded object (certificate or synthesized
// extension) ends up: certificates go through trust reconciliation and
// duplicate resolution first, everything else is just replaced into the
// index as-is. Mirrors sink_object.
func (p *Parser) sinkObject(set attrs.Set) {
	var handle index.Handle

	if klass, ok := set.FindULong(attrs.Class); ok && klass == uint64(attrs.ClassCertificate) {
		set = p.populateTrust(set)

		if h, dupl, found := lookupCertDuplicate(p.idx, set); found {
			p.batch.Warningf("duplicate '%s' certificate found", pullCertLabel(dupl))

			if calcCertPriority(set) <= calcCertPriority(dupl) {
				return
			}
			handle = h
		}
	}

	if _, err := p.idx.Replace(handle, set); err != nil {
		p.batch.Warningf("couldn't load file into objects: %v", err)
	}
}
