// Package pem implements the PEM envelope scanner: it finds every
// well-formed "-----BEGIN <TYPE>-----" / "-----END <TYPE>-----" block in
// a text buffer, base64-decodes its contents, and yields it to a
// callback. Grounded on p11_pem_parse in
// _examples/original_source/trust/parser.c (on_pem_block) and the block
// framing RFC 7468 describes.
package pem

import (
	"bufio"
	"encoding/base64"
	"strings"
)

const (
	beginPrefix = "-----BEGIN "
	endPrefix   = "-----END "
	markerSuffix = "-----"
)

// BlockFunc is invoked once per well-formed block found. typ is the PEM
// type word (e.g. "CERTIFICATE"); contents is the base64-decoded payload.
type BlockFunc func(typ string, contents []byte)

// Parse scans text for PEM blocks, invoking onBlock for each one found in
// order, and returns the number of blocks emitted. A block whose END type
// doesn't match its BEGIN type is skipped rather than aborting the scan;
// malformed base64 content likewise causes that block alone to be
// skipped. Text with zero blocks returns 0. Mirrors p11_pem_parse.
func Parse(text []byte, onBlock BlockFunc) int {
	lines := splitLines(string(text))

	count := 0
	i := 0
	for i < len(lines) {
		typ, ok := matchMarker(lines[i], beginPrefix)
		if !ok {
			i++
			continue
		}
		begin := typ
		i++

		var b64 strings.Builder
		found := false
		for i < len(lines) {
			if endTyp, ok := matchMarker(lines[i], endPrefix); ok {
				if endTyp == begin {
					found = true
					i++
				}
				// Either way, this ends the block search (matching or
				// mismatched END both terminate the block); a mismatch
				// means the block is skipped.
				break
			}
			b64.WriteString(strings.TrimSpace(lines[i]))
			i++
		}

		if !found {
			continue
		}

		decoded, err := base64.StdEncoding.DecodeString(b64.String())
		if err != nil {
			continue
		}

		onBlock(begin, decoded)
		count++
	}

	return count
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

func matchMarker(line, prefix string) (typ string, ok bool) {
	line = strings.TrimRight(line, "\r")
	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, markerSuffix) {
		return "", false
	}
	inner := line[len(prefix) : len(line)-len(markerSuffix)]
	if inner == "" {
		return "", false
	}
	return inner, true
}
