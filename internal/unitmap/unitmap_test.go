package unitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, table.Titles)
	require.NotEmpty(t, table.Folders)

	// Insertion order must survive loading: first-match semantics depend
	// on it
	assert.Equal(t, "Gross Anatomy", table.Titles[0].Title)

	// Codes are cleaned at load time, "RCH 101" becomes "RCH101"
	for _, e := range table.Titles {
		assert.NotContains(t, e.Code, " ", "code %q not cleaned", e.Code)
	}
	assert.Equal(t, "RCH101", table.Titles[0].Code)
}

func TestCleanCode(t *testing.T) {
	assert.Equal(t, "RCH101", CleanCode("RCH 101"))
	assert.Equal(t, "SMA191", CleanCode("sma_191"))
	assert.Equal(t, "ICS201", CleanCode(" ics-201 "))
	assert.Equal(t, "SMA191", CleanCode("SMA191"))
}

func TestTitleForCode(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	title, ok := table.TitleForCode("RCH101")
	assert.True(t, ok)
	assert.Equal(t, "Gross Anatomy", title)

	// Lookup input is cleaned too
	title, ok = table.TitleForCode("rch 101")
	assert.True(t, ok)
	assert.Equal(t, "Gross Anatomy", title)

	_, ok = table.TitleForCode("ZZZ999")
	assert.False(t, ok)
}
