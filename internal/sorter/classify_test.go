package sorter

import (
	"testing"

	"github.com/kustudyhub/kustudyhub-api/internal/unitmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFolderName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Gross Anatomy_ Proff Sherry", "gross anatomy"},
		{"Med Surg(Endocrine)_Loise Ndirangu", "med surgendocrine"},
		{"Calculus   1_Mr. Mutua", "calculus 1"},
		{"COMM. SKILLS!!_whoever", "comm skills"},
		{"_leading underscore", ""},
		{"NoUnderscoreHere", "nounderscorehere"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeFolderName(tt.input), "input %q", tt.input)
	}
}

func TestClassify_CanonicalTitleContainment(t *testing.T) {
	table, err := unitmap.Load()
	require.NoError(t, err)
	c := NewClassifier(table)

	code, ok := c.Classify("Gross Anatomy_ Proff Sherry")
	assert.True(t, ok)
	assert.Equal(t, "RCH101", code)

	// Casing in the folder name must not matter
	code, ok = c.Classify("gross anatomy_someone else")
	assert.True(t, ok)
	assert.Equal(t, "RCH101", code)

	// Folder name contained within a longer canonical title
	code, ok = c.Classify("Epidemiology_Prof. Karanja")
	assert.True(t, ok)
	assert.Equal(t, "HSM301", code)
}

func TestClassify_UnmatchedFolder(t *testing.T) {
	table, err := unitmap.Load()
	require.NoError(t, err)
	c := NewClassifier(table)

	_, ok := c.Classify("Med Surg(Endocrine)_Loise Ndirangu")
	assert.False(t, ok, "no canonical title overlaps this folder name")

	_, ok = c.Classify("")
	assert.False(t, ok)
}

// The classifier must be deterministic and strictly first-match: when two
// titles both satisfy containment, table order decides.
func TestClassify_FirstMatchInTableOrder(t *testing.T) {
	table := &unitmap.Table{
		Titles: []unitmap.TitleEntry{
			{Title: "Calculus", Code: "AAA111"},
			{Title: "Calculus I", Code: "BBB222"},
		},
	}
	c := NewClassifier(table)

	for i := 0; i < 5; i++ {
		code, ok := c.Classify("Calculus I_Dr X")
		assert.True(t, ok)
		assert.Equal(t, "AAA111", code, "earlier table entry must win")
	}
}

// Curated titles carrying punctuation or doubled spaces must still match:
// both sides of the containment check are normalized identically.
func TestClassify_NormalizesCanonicalTitles(t *testing.T) {
	table := &unitmap.Table{
		Titles: []unitmap.TitleEntry{
			{Title: "Med.  Surg (Core)", Code: "NUR210"},
		},
	}
	c := NewClassifier(table)

	code, ok := c.Classify("Med Surg Core_Loise Ndirangu")
	assert.True(t, ok)
	assert.Equal(t, "NUR210", code)
}

// A title that normalizes to nothing must never match every folder via
// empty-substring containment.
func TestClassify_EmptyTitleNeverMatches(t *testing.T) {
	table := &unitmap.Table{
		Titles: []unitmap.TitleEntry{
			{Title: "!!!", Code: "AAA111"},
		},
	}
	c := NewClassifier(table)

	_, ok := c.Classify("Pharmacology_Dr. Kimani")
	assert.False(t, ok)
}

// The curated raw folder table is consulted before title containment.
func TestClassify_FolderTableBeatsTitles(t *testing.T) {
	table := &unitmap.Table{
		Titles: []unitmap.TitleEntry{
			{Title: "Pharmacology", Code: "AAA111"},
		},
		Folders: []unitmap.FolderEntry{
			{Folder: "Pharmacology_Dr. Kimani", Code: "BBB222"},
		},
	}
	c := NewClassifier(table)

	code, ok := c.Classify("Pharmacology_Dr. Kimani")
	assert.True(t, ok)
	assert.Equal(t, "BBB222", code)
}
