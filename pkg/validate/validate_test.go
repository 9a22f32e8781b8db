package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diariobr/gazetteer/pkg/aggregate"
	"github.com/diariobr/gazetteer/pkg/validate"
)

func validEntry() aggregate.ConfigEntry {
	return aggregate.ConfigEntry{
		ID:          "go_5200050",
		Name:        "Abadia de Goiás",
		StateCode:   "GO",
		TerritoryID: "5200050",
		SpiderType:  "sigpub",
		Config: aggregate.SpiderConfig{
			URL:      "https://www.diariomunicipal.com.br/agm/",
			EntityID: "1143",
		},
	}
}

func TestEntriesValid(t *testing.T) {
	assert.Empty(t, validate.Entries([]aggregate.ConfigEntry{validEntry()}))
}

func TestEntriesMissingTerritoryID(t *testing.T) {
	entry := validEntry()
	entry.TerritoryID = ""

	findings := validate.Entries([]aggregate.ConfigEntry{entry})
	require.Len(t, findings, 1)
	assert.Equal(t, "territoryId", findings[0].Field)
	assert.Equal(t, "go_5200050", findings[0].Record)
}

func TestEntriesTerritoryIDWidth(t *testing.T) {
	for _, bad := range []string{"520005", "52000501", "52O0050", "goiania"} {
		entry := validEntry()
		entry.TerritoryID = bad

		findings := validate.Entries([]aggregate.ConfigEntry{entry})
		require.NotEmpty(t, findings, "territoryId %q must be rejected", bad)
		assert.Equal(t, "territoryId", findings[0].Field)
	}
}

func TestEntriesIDConvention(t *testing.T) {
	entry := validEntry()
	entry.ID = "GO-5200050"

	findings := validate.Entries([]aggregate.ConfigEntry{entry})
	require.Len(t, findings, 1)
	assert.Equal(t, "id", findings[0].Field)
}

func TestEntriesMissingURL(t *testing.T) {
	entry := validEntry()
	entry.Config.URL = ""

	findings := validate.Entries([]aggregate.ConfigEntry{entry})
	require.Len(t, findings, 1)
	assert.Equal(t, "config.url", findings[0].Field)
}

func TestEntriesAddressingField(t *testing.T) {
	t.Run("none set", func(t *testing.T) {
		entry := validEntry()
		entry.Config.EntityID = ""
		findings := validate.Entries([]aggregate.ConfigEntry{entry})
		require.Len(t, findings, 1)
		assert.Equal(t, "config", findings[0].Field)
	})

	t.Run("multiple set", func(t *testing.T) {
		entry := validEntry()
		entry.Config.CityName = "ABADIA DE GOIAS"
		findings := validate.Entries([]aggregate.ConfigEntry{entry})
		require.Len(t, findings, 1)
		assert.Equal(t, "config", findings[0].Field)
	})

	t.Run("wrong field for spiderType", func(t *testing.T) {
		entry := validEntry()
		entry.Config.EntityID = ""
		entry.Config.CityName = "ABADIA DE GOIAS" // sigpub expects entityId
		findings := validate.Entries([]aggregate.ConfigEntry{entry})
		require.Len(t, findings, 1)
		assert.Equal(t, "config", findings[0].Field)
	})

	t.Run("unknown spiderType accepts any single field", func(t *testing.T) {
		entry := validEntry()
		entry.SpiderType = "new-portal"
		assert.Empty(t, validate.Entries([]aggregate.ConfigEntry{entry}))
	})
}

func TestEntriesAccumulate(t *testing.T) {
	// One bad record never aborts processing of the rest of the batch, and
	// each violated invariant produces its own finding.
	broken := aggregate.ConfigEntry{}
	ok := validEntry()

	findings := validate.Entries([]aggregate.ConfigEntry{broken, ok})
	assert.GreaterOrEqual(t, len(findings), 5)
	for _, finding := range findings {
		assert.Equal(t, "#0", finding.Record)
	}
}

func TestEntriesDuplicateCoverage(t *testing.T) {
	first := validEntry()
	second := validEntry()
	second.SpiderType = "dom-sc"
	second.Config = aggregate.SpiderConfig{
		URL:        "https://diariomunicipal.sc.gov.br/",
		EntityName: "Prefeitura Municipal de Abadia de Goiás",
	}

	findings := validate.Entries([]aggregate.ConfigEntry{first, second})
	require.Len(t, findings, 1)
	assert.Equal(t, "territoryId", findings[0].Field)
	assert.Contains(t, findings[0].Message, "already covered")
}

func TestStatistics(t *testing.T) {
	entries := []aggregate.ConfigEntry{validEntry()}

	sc := validEntry()
	sc.ID = "sc_4202404"
	sc.StateCode = "SC"
	sc.TerritoryID = "4202404"
	sc.SpiderType = "dom-sc"
	entries = append(entries, sc)

	am := validEntry()
	am.ID = "am_1302603"
	am.StateCode = "AM"
	am.TerritoryID = "1302603"
	am.Config.EntityID = "0"
	entries = append(entries, am)

	stats := validate.Statistics(entries)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.ByState["GO"])
	assert.Equal(t, 1, stats.ByState["SC"])
	assert.Equal(t, 1, stats.ByState["AM"])
	assert.Equal(t, 2, stats.BySpider["sigpub"])
	assert.Equal(t, 1, stats.BySpider["dom-sc"])
	assert.Equal(t, 1, stats.PlaceholderEntries)
	assert.Equal(t, []string{"AM", "GO", "SC"}, stats.States())
	assert.Equal(t, []string{"dom-sc", "sigpub"}, stats.Spiders())
}
