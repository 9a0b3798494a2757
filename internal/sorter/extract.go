// Package sorter implements the unit-code inference and file-sorting
// pipeline: extracting canonical unit codes from filenames and document
// text, classifying faculty folders against the curated unit tables, and
// relocating documents into the sorted tree with the matching storage
// upload and database records.
package sorter

import (
	"regexp"
	"strings"
)

// codePattern matches 3-4 letters, an optional single separator and
// exactly 3 digits: "sma 191", "ICS_201", "MATH-241". Two-letter prefixes
// like "CS-101" do not match. Only the first match in the input is used.
var codePattern = regexp.MustCompile(`([A-Za-z]{3,4})[\s_-]?(\d{3})`)

// CodeFromName scans a filename (or any text) for a unit code pattern and
// returns the canonical form: upper-cased letters concatenated with the
// digits, no separator.
func CodeFromName(name string) (string, bool) {
	m := codePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]) + m[2], true
}

// CodeResolver attempts to derive a unit code for the file at path.
type CodeResolver func(path string) (string, bool)

// ResolveCode tries each resolver in order and returns the first hit.
// The chain is deliberately an explicit list so adding a fourth strategy
// is a one-line change at the call site.
func ResolveCode(path string, resolvers ...CodeResolver) (string, bool) {
	for _, resolve := range resolvers {
		if code, ok := resolve(path); ok {
			return code, true
		}
	}
	return "", false
}
