package parser

import (
	"github.com/letsencrypt-labs/trustkit/persist"
)

// parseP11KitPersist is the persistence-grammar stage of the parser
// driver: it only accepts data that begins with the [p11-kit-object-v1]
// marker, and any read failure rejects the stage as Failure (not
// Unrecognized) since the marker match already committed the buffer to
// this format. Mirrors parse_p11_kit_persist.
func (p *Parser) parseP11KitPersist(data []byte) (Result, error) {
	if p.persistReader == nil {
		p.persistReader = persist.New()
	}
	if !p.persistReader.Magic(data) {
		return Unrecognized, nil
	}

	records, err := p.persistReader.Read(p.batch, p.basename, data)
	if err != nil {
		p.batch.Warningf("%v", err)
		return Failure, nil
	}

	for _, rec := range records {
		p.sinkObject(rec)
	}
	return Success, nil
}
