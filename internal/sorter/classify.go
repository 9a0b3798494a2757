package sorter

import (
	"strings"
	"unicode"

	"github.com/kustudyhub/kustudyhub-api/internal/unitmap"
)

// Classifier resolves noisy faculty folder names like
// "Gross Anatomy_ Proff Sherry" to unit codes using the curated tables.
type Classifier struct {
	table *unitmap.Table
}

func NewClassifier(table *unitmap.Table) *Classifier {
	return &Classifier{table: table}
}

// NormalizeFolderName prepares a faculty folder name for matching:
// everything from the first underscore on (the instructor suffix) is
// dropped, non-alphanumeric characters are stripped, whitespace is
// collapsed, and the result is lower-cased.
func NormalizeFolderName(name string) string {
	if i := strings.IndexByte(name, '_'); i >= 0 {
		name = name[:i]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}

// Classify maps a faculty folder name to a unit code. The curated raw
// folder table is consulted first (exact match after normalizing both
// sides), then the canonical title table using bidirectional substring
// containment, with the title normalized the same way as the folder name
// so curated punctuation or spacing cannot block a match. In both passes
// the first entry in table order wins, so
// results are deterministic for a fixed table.
func (c *Classifier) Classify(folderName string) (string, bool) {
	normalized := NormalizeFolderName(folderName)
	if normalized == "" {
		return "", false
	}

	for _, e := range c.table.Folders {
		if NormalizeFolderName(e.Folder) == normalized {
			return e.Code, true
		}
	}

	for _, e := range c.table.Titles {
		title := NormalizeFolderName(e.Title)
		if title == "" {
			continue
		}
		if strings.Contains(title, normalized) || strings.Contains(normalized, title) {
			return e.Code, true
		}
	}

	return "", false
}
