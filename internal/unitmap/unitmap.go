// Package unitmap holds the curated unit reference tables: canonical unit
// title -> code, and raw faculty folder name -> code. Both are loaded once
// from an embedded YAML file. Entry order is significant: folder
// classification takes the first matching entry, so the tables are kept as
// ordered lists rather than maps.
package unitmap

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed units.yaml
var unitsYAML []byte

type TitleEntry struct {
	Title string `yaml:"title"`
	Code  string `yaml:"code"`
}

type FolderEntry struct {
	Folder string `yaml:"folder"`
	Code   string `yaml:"code"`
}

type Table struct {
	Titles  []TitleEntry  `yaml:"titles"`
	Folders []FolderEntry `yaml:"folders"`
}

// Load parses the embedded reference tables. Codes are cleaned of stray
// whitespace and upper-cased so lookups always yield canonical codes even
// when the curated YAML carries forms like "RCH 101".
func Load() (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(unitsYAML, &t); err != nil {
		return nil, fmt.Errorf("parse unit tables: %w", err)
	}
	for i := range t.Titles {
		t.Titles[i].Code = CleanCode(t.Titles[i].Code)
	}
	for i := range t.Folders {
		t.Folders[i].Code = CleanCode(t.Folders[i].Code)
	}
	return &t, nil
}

// CleanCode strips whitespace and separators from a curated code and
// upper-cases it, e.g. "rch 101" -> "RCH101".
func CleanCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r == ' ' || r == '-' || r == '_' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// TitleForCode returns the canonical title for a code, first entry wins.
func (t *Table) TitleForCode(code string) (string, bool) {
	code = CleanCode(code)
	for _, e := range t.Titles {
		if e.Code == code {
			return e.Title, true
		}
	}
	return "", false
}
