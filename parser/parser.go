// Package parser implements the trust-anchor ingestion driver: it tries
// the persistence grammar, then the PEM envelope scanner, then a bare
// DER certificate in that order against a byte buffer, reconciles
// certificate trust policy, and synthesizes the OpenSSL TRUSTED
// CERTIFICATE extension objects a loaded certificate implies. Grounded
// on p11_parser_new/p11_parse_memory/p11_parse_file in
// _examples/original_source/trust/parser.c.
package parser

import (
	"fmt"
	"os"

	"github.com/letsencrypt-labs/trustkit/asn1defs"
	"github.com/letsencrypt-labs/trustkit/index"
	"github.com/letsencrypt-labs/trustkit/internal/diag"
	"github.com/letsencrypt-labs/trustkit/internal/pathutil"
	"github.com/letsencrypt-labs/trustkit/persist"
)

// Result is the outcome of trying one byte buffer against one of the
// parser stages, or against ParseMemory/ParseFile as a whole.
type Result int

const (
	Unrecognized Result = iota
	Success
	Failure
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unrecognized"
	}
}

// Flags marks the trust location a file was loaded from, affecting how
// sinkObject reconciles certificate trust. The zero value means neither:
// existing trust attributes in the file are kept as-is.
type Flags int

const (
	FlagAnchor Flags = 1 << iota
	FlagBlacklist
)

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithSink sets the diagnostic sink used for warnings emitted while
// parsing (duplicate certificates, overridden trust, unsupported blocks).
// A nil sink (the default) discards everything.
func WithSink(sink *diag.Sink) Option {
	return func(p *Parser) { p.sink = sink }
}

// Parser holds the collaborators a parse needs: the object index
// certificates and extensions are sunk into, and the ASN.1 decode cache.
// A Parser is reused across files; basename and flags are scoped to the
// file currently being parsed.
type Parser struct {
	idx   *index.Index
	cache *asn1defs.Cache

	persistReader *persist.Persist
	sink          *diag.Sink

	basename string
	flags    Flags
	batch    *diag.Batch
}

// New builds a Parser. idx and cache must be non-nil.
func New(idx *index.Index, cache *asn1defs.Cache, opts ...Option) *Parser {
	p := &Parser{idx: idx, cache: cache}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type stageFunc func(*Parser, []byte) (Result, error)

var stages = []stageFunc{
	(*Parser).parseP11KitPersist,
	(*Parser).parsePEMCertificates,
	(*Parser).parseDERCertificate,
}

// ParseFile reads filename and parses it as ParseMemory would.
func (p *Parser) ParseFile(filename string, flags Flags) (Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Failure, fmt.Errorf("couldn't open and map file: %s: %w", filename, err)
	}
	return p.ParseMemory(filename, flags, data)
}

// ParseMemory tries each parser stage against data in order (persistence
// grammar, PEM envelope, raw DER certificate), stopping at the first
// stage that doesn't return Unrecognized. Objects it successfully decodes
// are sunk into the index with trust policy applied according to flags.
func (p *Parser) ParseMemory(filename string, flags Flags, data []byte) (Result, error) {
	if flags&FlagAnchor != 0 && flags&FlagBlacklist != 0 {
		panic("parser: ANCHOR and BLACKLIST flags are mutually exclusive")
	}

	p.basename = pathutil.Base(filename)
	p.flags = flags
	p.batch = p.sink.NewBatch(p.basename)

	result := Unrecognized
	var stageErr error

	for _, stage := range stages {
		p.idx.Batch()
		r, err := stage(p, data)
		p.idx.Finish()

		result = r
		if err != nil {
			stageErr = err
		}
		if r != Unrecognized {
			break
		}
	}

	p.batch.Flush()
	p.cache.Flush()
	p.basename = ""
	p.flags = 0
	p.batch = nil

	return result, stageErr
}
