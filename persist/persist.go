// Package persist implements the p11-kit-object-v1 textual persistence
// grammar: a line-oriented record format carrying typed attribute fields
// and optional embedded PEM certificate blocks. Grounded on
// parse_p11_kit_persist in _examples/original_source/trust/parser.c, with
// exact field/value behavior resolved against the fixtures in
// _examples/original_source/trust/tests/test-persist.c.
package persist

import (
	"bufio"
	"encoding/asn1"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/letsencrypt-labs/trustkit/attrs"
	"github.com/letsencrypt-labs/trustkit/internal/diag"
)

const (
	magicHeader  = "[p11-kit-object-v1]"
	pemBeginPfx  = "-----BEGIN "
	pemEndPfx    = "-----END "
	pemMarkerEnd = "-----"
	pemCertType  = "CERTIFICATE"
)

// Persist reads p11-kit-object-v1 records. It carries no state across
// calls to Read.
type Persist struct{}

// New returns a ready-to-use persistence-grammar reader.
func New() *Persist {
	return &Persist{}
}

// Magic reports whether data begins (after leading whitespace) with the
// p11-kit-object-v1 section marker, mirroring p11_persist_magic.
func (p *Persist) Magic(data []byte) bool {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	return strings.HasPrefix(trimmed, magicHeader)
}

// Read parses every record in data and returns one attrs.Set per
// successfully parsed record. A malformed record, field, value, or PEM
// block rejects the whole file: this format has all-or-nothing per-file
// failure semantics, not per-record recovery — except for unrecognized
// section headers, which are skipped with a warning and otherwise ignored.
// batch may be nil; warnings are simply discarded.
func (p *Persist) Read(batch *diag.Batch, basename string, data []byte) ([]attrs.Set, error) {
	lines := splitLines(string(data))

	var records []attrs.Set
	var cur *recordBuilder
	sawHeader := false
	discarding := false

	finish := func() error {
		if cur == nil {
			return nil
		}
		set, err := cur.build()
		if err != nil {
			return fmt.Errorf("%s: %w", basename, err)
		}
		records = append(records, set)
		cur = nil
		return nil
	}

	i := 0
	for i < len(lines) {
		line := strings.TrimRight(lines[i], "\r")

		if strings.TrimSpace(line) == "" {
			i++
			continue
		}

		if section, ok := parseHeader(line); ok {
			if err := finish(); err != nil {
				return nil, err
			}
			sawHeader = true
			if section == "p11-kit-object-v1" {
				cur = newRecordBuilder()
				discarding = false
			} else {
				batch.Warningf("skipping unknown section: %s", section)
				discarding = true
			}
			i++
			continue
		}

		if !sawHeader {
			return nil, fmt.Errorf("%s: attribute or PEM block before first section header", basename)
		}

		if discarding {
			i++
			continue
		}

		if strings.HasPrefix(line, pemBeginPfx) {
			typ, contents, next, err := readPEMBlock(lines, i)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", basename, err)
			}
			if err := cur.addPEM(typ, contents); err != nil {
				return nil, fmt.Errorf("%s: %w", basename, err)
			}
			i = next
			continue
		}

		if err := cur.addAttributeLine(line); err != nil {
			// Field-level problems (unknown field, bad value syntax) don't
			// abort the record on the spot: keep validating the rest of its
			// lines and report every bad one together when the record is
			// finished, rather than only the first.
			cur.fieldErrs = multierror.Append(cur.fieldErrs, err)
		}
		i++
	}

	if err := finish(); err != nil {
		return nil, err
	}

	return records, nil
}

func parseHeader(line string) (section string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return "", false
	}
	inner := trimmed[1 : len(trimmed)-1]
	if inner == "" {
		return "", false
	}
	return inner, true
}

// readPEMBlock consumes a BEGIN/END block starting at lines[start] and
// returns its type, decoded contents, and the index of the line following
// the END marker. Unlike the bag-of-blocks scanner in package pem, a
// mismatched or unsupported PEM block here is a hard parse error: the
// grammar has no per-block recovery.
func readPEMBlock(lines []string, start int) (typ string, contents []byte, next int, err error) {
	begin := strings.TrimSuffix(strings.TrimPrefix(lines[start], pemBeginPfx), pemMarkerEnd)
	begin = strings.TrimSpace(begin)

	var b64 strings.Builder
	i := start + 1
	for i < len(lines) {
		line := strings.TrimRight(lines[i], "\r")
		if strings.HasPrefix(line, pemEndPfx) {
			end := strings.TrimSuffix(strings.TrimPrefix(line, pemEndPfx), pemMarkerEnd)
			end = strings.TrimSpace(end)
			if end != begin {
				return "", nil, 0, fmt.Errorf("mismatched PEM block: BEGIN %s / END %s", begin, end)
			}
			decoded, derr := base64.StdEncoding.DecodeString(b64.String())
			if derr != nil {
				return "", nil, 0, fmt.Errorf("invalid PEM block body: %w", derr)
			}
			return begin, decoded, i + 1, nil
		}
		b64.WriteString(strings.TrimSpace(line))
		i++
	}
	return "", nil, 0, fmt.Errorf("unterminated PEM block: BEGIN %s", begin)
}

func splitLines(s string) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

type recordBuilder struct {
	fields    []attrs.Attribute
	class     uint64
	hasClass  bool
	pemBytes  []byte
	hasPEM    bool
	fieldErrs *multierror.Error
}

func newRecordBuilder() *recordBuilder {
	return &recordBuilder{}
}

func (r *recordBuilder) addAttributeLine(line string) error {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return fmt.Errorf("malformed attribute line: %q", line)
	}
	name := strings.TrimSpace(line[:idx])
	raw := strings.TrimSpace(line[idx+1:])

	spec, ok := knownFields[name]
	if !ok {
		return fmt.Errorf("unknown field: %s", name)
	}

	switch {
	case strings.HasPrefix(raw, `"`):
		v, err := decodeQuotedString(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		r.set(spec.id, v)

	case raw == "true" || raw == "false":
		r.set(spec.id, attrs.BoolAttr(spec.id, raw == "true").Value)

	case isDottedDecimal(raw):
		v, err := encodeOID(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		r.set(spec.id, v)

	case isAllDigits(raw):
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("field %s: invalid ulong value %q", name, raw)
		}
		r.set(spec.id, attrs.ULongAttr(spec.id, v).Value)

	default:
		v, ok := spec.constants[raw]
		if !ok {
			return fmt.Errorf("field %s: unknown value %q", name, raw)
		}
		r.set(spec.id, attrs.ULongAttr(spec.id, v).Value)
		if spec.id == attrs.Class {
			r.class = v
			r.hasClass = true
		}
	}
	return nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isDottedDecimal(s string) bool {
	if !strings.Contains(s, ".") {
		return false
	}
	parts := strings.Split(s, ".")
	for _, p := range parts {
		if !isAllDigits(p) {
			return false
		}
	}
	return true
}

func (r *recordBuilder) set(id attrs.AttrID, value []byte) {
	for idx := range r.fields {
		if r.fields[idx].ID == id {
			r.fields[idx].Value = value
			return
		}
	}
	r.fields = append(r.fields, attrs.Attribute{ID: id, Value: value})
}

func (r *recordBuilder) addPEM(typ string, contents []byte) error {
	if typ != pemCertType {
		return fmt.Errorf("unsupported PEM block type: %s", typ)
	}
	r.pemBytes = contents
	r.hasPEM = true
	return nil
}

func (r *recordBuilder) build() (attrs.Set, error) {
	if r.fieldErrs != nil {
		return attrs.Set{}, fmt.Errorf("%d invalid attribute line(s): %w", len(r.fieldErrs.Errors), r.fieldErrs)
	}
	if r.hasPEM {
		if !r.hasClass || r.class != uint64(attrs.ClassCertificate) {
			return attrs.Set{}, fmt.Errorf("PEM block present in a record whose class is not certificate")
		}
		r.set(attrs.Value, r.pemBytes)
		r.set(attrs.CertificateType, attrs.ULongAttr(attrs.CertificateType, attrs.CertTypeX509).Value)
	}
	return attrs.NewSet(r.fields...), nil
}

func decodeQuotedString(value string) ([]byte, error) {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return nil, fmt.Errorf("value is not a quoted string: %q", value)
	}
	inner := value[1 : len(value)-1]

	var out []byte
	i := 0
	for i < len(inner) {
		c := inner[i]
		if c != '%' {
			out = append(out, c)
			i++
			continue
		}
		if i+3 > len(inner) {
			return nil, fmt.Errorf("truncated %%-escape at offset %d", i)
		}
		b, err := strconv.ParseUint(inner[i+1:i+3], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid %%-escape %q", inner[i:i+3])
		}
		out = append(out, byte(b))
		i += 3
	}
	return out, nil
}

// encodeOID validates and DER-encodes a dotted-decimal OID. The grammar
// requires at least three components (test-persist.c's bad_oid fixture
// "1.2" is rejected; "1.2.3.4" is accepted).
func encodeOID(v string) ([]byte, error) {
	parts := strings.Split(v, ".")
	if len(parts) < 3 {
		return nil, fmt.Errorf("oid %q is too short", v)
	}
	arcs := make(asn1.ObjectIdentifier, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("oid %q has invalid arc %q", v, p)
		}
		arcs[i] = n
	}
	return asn1.Marshal(arcs)
}
