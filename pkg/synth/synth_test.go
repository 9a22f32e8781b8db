package synth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diariobr/gazetteer/pkg/match"
	"github.com/diariobr/gazetteer/pkg/normalize"
	"github.com/diariobr/gazetteer/pkg/publisher"
	"github.com/diariobr/gazetteer/pkg/registry"
	"github.com/diariobr/gazetteer/pkg/synth"
)

func sigpubSpec() publisher.Spec {
	return publisher.Spec{
		Name:          "sigpub-test",
		SpiderType:    "sigpub",
		URL:           "https://x/",
		Field:         publisher.FieldEntityID,
		Value:         publisher.ValueSourceToken,
		Normalization: normalize.AccentFold,
		StateCode:     "PR",
	}
}

func TestMatchedEntityID(t *testing.T) {
	pairs := []match.Pair{{
		Source:       match.SourceEntry{DisplayText: "Município de Curitiba", AddressingValue: "42"},
		Municipality: registry.Municipality{TerritoryCode: 4106902, Name: "Curitiba", StateCode: "PR"},
	}}

	result, err := synth.Matched(pairs, sigpubSpec())
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Empty(t, result.NeedsCompletion)

	entry := result.Entries[0]
	assert.Equal(t, "pr_4106902", entry.ID)
	assert.Equal(t, "Curitiba", entry.Name)
	assert.Equal(t, "PR", entry.StateCode)
	assert.Equal(t, "4106902", entry.TerritoryID)
	assert.Equal(t, "sigpub", entry.SpiderType)
	assert.Equal(t, "https://x/", entry.Config.URL)
	assert.Equal(t, "42", entry.Config.EntityID)
	assert.Empty(t, entry.Config.CityName)
	assert.Empty(t, entry.Config.EntityName)
}

func TestMatchedSortedByName(t *testing.T) {
	pairs := []match.Pair{
		{
			Source:       match.SourceEntry{DisplayText: "Goiânia", AddressingValue: "2"},
			Municipality: registry.Municipality{TerritoryCode: 5208707, Name: "Goiânia", StateCode: "GO"},
		},
		{
			Source:       match.SourceEntry{DisplayText: "Abadia de Goiás", AddressingValue: "1"},
			Municipality: registry.Municipality{TerritoryCode: 5200050, Name: "Abadia de Goiás", StateCode: "GO"},
		},
	}

	result, err := synth.Matched(pairs, sigpubSpec())
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "Abadia de Goiás", result.Entries[0].Name)
	assert.Equal(t, "Goiânia", result.Entries[1].Name)
}

func TestMatchedSourceText(t *testing.T) {
	spec := publisher.Spec{
		Name:          "dom-sc",
		SpiderType:    "dom-sc",
		URL:           "https://diariomunicipal.sc.gov.br/",
		Field:         publisher.FieldEntityName,
		Value:         publisher.ValueSourceText,
		Normalization: normalize.AccentFold,
		StateCode:     "SC",
	}

	pairs := []match.Pair{{
		Source:       match.SourceEntry{DisplayText: "Prefeitura Municipal de Blumenau"},
		Municipality: registry.Municipality{TerritoryCode: 4202404, Name: "Blumenau", StateCode: "SC"},
	}}

	result, err := synth.Matched(pairs, spec)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Prefeitura Municipal de Blumenau", result.Entries[0].Config.EntityName)
}

func TestMatchedMissingTokenWithoutPlaceholderFails(t *testing.T) {
	pairs := []match.Pair{{
		Source:       match.SourceEntry{DisplayText: "Curitiba"},
		Municipality: registry.Municipality{TerritoryCode: 4106902, Name: "Curitiba", StateCode: "PR"},
	}}

	_, err := synth.Matched(pairs, sigpubSpec())
	assert.Error(t, err)
}

func TestRegistryUpperName(t *testing.T) {
	spec := publisher.Spec{
		Name:          "amm-mt",
		SpiderType:    "amm-mt",
		URL:           "https://amm.diariomunicipal.org/",
		Field:         publisher.FieldCityName,
		Value:         publisher.ValueUpperName,
		Normalization: normalize.Strict,
		StateCode:     "MT",
	}

	result, err := synth.Registry([]registry.Municipality{
		{TerritoryCode: 5100102, Name: "Açorizal", StateCode: "MT"},
	}, spec)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)

	entry := result.Entries[0]
	assert.Equal(t, "mt_5100102", entry.ID)
	// Display name stays accented; the addressing value is deaccented upper.
	assert.Equal(t, "Açorizal", entry.Name)
	assert.Equal(t, "ACORIZAL", entry.Config.CityName)
}

func TestRegistryPrefeituraName(t *testing.T) {
	spec := publisher.Spec{
		Name:          "dom-sc-full",
		SpiderType:    "dom-sc",
		URL:           "https://diariomunicipal.sc.gov.br/",
		Field:         publisher.FieldEntityName,
		Value:         publisher.ValuePrefeitura,
		Normalization: normalize.AccentFold,
		StateCode:     "SC",
	}

	result, err := synth.Registry([]registry.Municipality{
		{TerritoryCode: 4202404, Name: "Blumenau", StateCode: "SC"},
	}, spec)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Prefeitura Municipal de Blumenau", result.Entries[0].Config.EntityName)
}

func TestRegistryPlaceholder(t *testing.T) {
	spec := publisher.Spec{
		Name:          "aam",
		SpiderType:    "sigpub",
		URL:           "https://www.diariomunicipal.com.br/aam/",
		Field:         publisher.FieldEntityID,
		Value:         publisher.ValuePlaceholder,
		Placeholder:   "0",
		Normalization: normalize.Strict,
		StateCode:     "AM",
	}

	result, err := synth.Registry([]registry.Municipality{
		{TerritoryCode: 1302603, Name: "Manaus", StateCode: "AM"},
		{TerritoryCode: 1303403, Name: "Parintins", StateCode: "AM"},
	}, spec)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "0", result.Entries[0].Config.EntityID)
	// Placeholder entries are reported for later completion, not hidden.
	assert.Equal(t, []string{"am_1302603", "am_1303403"}, result.NeedsCompletion)
}

func TestRegistryRejectsSourceRules(t *testing.T) {
	_, err := synth.Registry([]registry.Municipality{
		{TerritoryCode: 4106902, Name: "Curitiba", StateCode: "PR"},
	}, sigpubSpec())
	assert.Error(t, err)
}
