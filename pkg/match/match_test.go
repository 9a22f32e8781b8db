package match_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/diariobr/gazetteer/pkg/match"
	"github.com/diariobr/gazetteer/pkg/normalize"
	"github.com/diariobr/gazetteer/pkg/registry"
)

func acreIndex() *registry.Index {
	return registry.NewIndex([]registry.Municipality{
		{TerritoryCode: 1200401, Name: "Rio Branco", StateCode: "AC"},
		{TerritoryCode: 1200336, Name: "Mâncio Lima", StateCode: "AC"},
	}, normalize.Strict)
}

func TestEntriesExactKeyMatch(t *testing.T) {
	report := match.Entries([]match.SourceEntry{
		{DisplayText: "RIO BRANCO", AddressingValue: "17", StateCode: "AC"},
	}, acreIndex())

	require.Len(t, report.Matched, 1)
	assert.Empty(t, report.Unmatched)
	assert.Equal(t, int64(1200401), report.Matched[0].Municipality.TerritoryCode)
	assert.Equal(t, "17", report.Matched[0].Source.AddressingValue)
}

func TestEntriesAccentInsensitive(t *testing.T) {
	report := match.Entries([]match.SourceEntry{
		{DisplayText: "mancio lima"},
	}, acreIndex())

	require.Len(t, report.Matched, 1)
	assert.Equal(t, "Mâncio Lima", report.Matched[0].Municipality.Name)
}

func TestEntriesPortalPrefixStripped(t *testing.T) {
	report := match.Entries([]match.SourceEntry{
		{DisplayText: "Município de Rio Branco", AddressingValue: "17"},
		{DisplayText: "Prefeitura Municipal de Mâncio Lima"},
	}, acreIndex())

	require.Len(t, report.Matched, 2)
	assert.Equal(t, int64(1200401), report.Matched[0].Municipality.TerritoryCode)
	assert.Equal(t, int64(1200336), report.Matched[1].Municipality.TerritoryCode)
	// The scraped display text stays verbatim on the pair.
	assert.Equal(t, "Município de Rio Branco", report.Matched[0].Source.DisplayText)
}

func TestEntriesPrefixStrippedDecomposedInput(t *testing.T) {
	// NFD spellings ("i" + combining acute, "a" + combining circumflex) carry
	// more runes than their composed forms; prefix stripping must still
	// resolve them.
	report := match.Entries([]match.SourceEntry{
		{DisplayText: norm.NFD.String("Município de Rio Branco"), AddressingValue: "17"},
		{DisplayText: norm.NFD.String("Prefeitura Municipal de Mâncio Lima")},
	}, acreIndex())

	require.Len(t, report.Matched, 2)
	assert.Equal(t, int64(1200401), report.Matched[0].Municipality.TerritoryCode)
	assert.Equal(t, int64(1200336), report.Matched[1].Municipality.TerritoryCode)
}

func TestEntriesUnmatchedVerbatim(t *testing.T) {
	report := match.Entries([]match.SourceEntry{
		{DisplayText: "Rio Branco"},
		{DisplayText: "Município Fantasma", AddressingValue: "99"},
	}, acreIndex())

	assert.Len(t, report.Matched, 1)
	require.Len(t, report.Unmatched, 1)
	assert.Equal(t, "Município Fantasma", report.Unmatched[0].DisplayText)
	assert.Equal(t, []string{"Município Fantasma"}, report.UnmatchedNames())
}

func TestParseObjectShape(t *testing.T) {
	entries, err := match.Parse([]byte(`[
		{"nome": "Abadia de Goiás", "value": "1143"},
		{"text": "Município de Curitiba", "value": 42}
	]`), "GO")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Abadia de Goiás", entries[0].DisplayText)
	assert.Equal(t, "1143", entries[0].AddressingValue)
	assert.Equal(t, "GO", entries[0].StateCode)
	// Numeric value attributes keep their literal form.
	assert.Equal(t, "42", entries[1].AddressingValue)
}

func TestParseWrappedShape(t *testing.T) {
	entries, err := match.Parse([]byte(`{
		"municipalities": [{"text": "Salvador", "value": "salvador"}]
	}`), "BA")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Salvador", entries[0].DisplayText)
	assert.Equal(t, "salvador", entries[0].AddressingValue)
}

func TestParseStringArrayShape(t *testing.T) {
	entries, err := match.Parse([]byte(`["Blumenau", "Joinville"]`), "SC")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Blumenau", entries[0].DisplayText)
	assert.Empty(t, entries[0].AddressingValue)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not a list", `{"nome": "Salvador"}`},
		{"missing name", `[{"value": "3"}]`},
		{"empty string entry", `["Blumenau", ""]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := match.Parse([]byte(tt.content), "BA")
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"nome": "Goiânia", "value": "7"}]`), 0644))

	entries, err := match.LoadFile(path, "GO")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Goiânia", entries[0].DisplayText)

	_, err = match.LoadFile(filepath.Join(t.TempDir(), "absent.json"), "GO")
	assert.Error(t, err)
}
