// Package pathutil implements a small set of path helpers: deriving a
// basename (which the ingestion driver uses for diagnostics), joining
// components, expanding home/temp prefixes, and testing whether a path is
// absolute. Grounded on
// _examples/original_source/common/path.c.
package pathutil

import (
	"os"
	"os/user"
	"runtime"
	"strings"
)

func delims() string {
	if runtime.GOOS == "windows" {
		return "/\\"
	}
	return "/"
}

// Base returns the trailing path segment of p, after stripping trailing
// separators. Mirrors p11_path_base.
func Base(p string) string {
	d := delims()

	end := len(p)
	for end != 0 && strings.ContainsRune(d, rune(p[end-1])) {
		end--
	}

	beg := end
	for beg != 0 && !strings.ContainsRune(d, rune(p[beg-1])) {
		beg--
	}

	return p[beg:end]
}

// Build joins non-empty components with the platform separator, avoiding
// doubled separators. Mirrors p11_path_build.
func Build(components ...string) string {
	sep := byte('/')
	if runtime.GOOS == "windows" {
		sep = '\\'
	}

	var b strings.Builder
	for _, c := range components {
		if c == "" {
			continue
		}
		if b.Len() != 0 {
			last := b.String()[b.Len()-1]
			if last == sep {
				c = strings.TrimLeft(c, string(sep))
			} else if c[0] != sep {
				b.WriteByte(sep)
			}
		}
		b.WriteString(c)
	}
	return b.String()
}

func isComponentBoundary(ch byte, ok bool) bool {
	if !ok {
		return true // NUL, i.e. end of string
	}
	if ch == '/' {
		return true
	}
	if runtime.GOOS == "windows" && ch == '\\' {
		return true
	}
	return false
}

func nextByte(s string, i int) (byte, bool) {
	if i >= len(s) {
		return 0, false
	}
	return s[i], true
}

// Expand expands a leading "~", "$HOME", or "$TEMP" (when followed by a
// path separator or the end of the string) into the user's home or temp
// directory. Mirrors p11_path_expand.
func Expand(p string) string {
	if strings.HasPrefix(p, "~") {
		ch, ok := nextByte(p, 1)
		if isComponentBoundary(ch, ok) {
			return expandHomedir(p[1:])
		}
	}
	if strings.HasPrefix(p, "$HOME") {
		ch, ok := nextByte(p, 5)
		if isComponentBoundary(ch, ok) {
			return expandHomedir(p[5:])
		}
	}
	if strings.HasPrefix(p, "$TEMP") {
		ch, ok := nextByte(p, 5)
		if isComponentBoundary(ch, ok) {
			return expandTempdir(p[5:])
		}
	}
	return p
}

func trimLeadingSep(remainder string) string {
	return strings.TrimPrefix(strings.TrimPrefix(remainder, "/"), "\\")
}

func expandHomedir(remainder string) string {
	remainder = trimLeadingSep(remainder)
	if home := os.Getenv("HOME"); home != "" {
		return Build(home, remainder)
	}
	if u, err := user.Current(); err == nil && u.HomeDir != "" {
		return Build(u.HomeDir, remainder)
	}
	return Build(string(os.PathSeparator), remainder)
}

func expandTempdir(remainder string) string {
	remainder = trimLeadingSep(remainder)
	if temp := os.Getenv("TEMP"); temp != "" {
		return Build(temp, remainder)
	}
	if temp := os.TempDir(); temp != "" {
		return Build(temp, remainder)
	}
	return Build("/tmp", remainder)
}

// Absolute reports whether p is an absolute path: begins with "/" on
// POSIX, or a drive letter followed by ":\" on Windows. Mirrors
// p11_path_absolute.
func Absolute(p string) bool {
	if strings.HasPrefix(p, "/") {
		return true
	}
	if runtime.GOOS == "windows" && len(p) >= 3 && p[1] == ':' && p[2] == '\\' {
		return true
	}
	return false
}
