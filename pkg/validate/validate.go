// Package validate checks schema and value invariants on the aggregate
// registry and derives descriptive statistics from it.
//
// Every check produces a distinct, accumulated finding; validation never
// aborts on first failure and is never fatal mid-pipeline.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/diariobr/gazetteer/pkg/aggregate"
	"github.com/diariobr/gazetteer/pkg/errors"
	"github.com/diariobr/gazetteer/pkg/publisher"
)

// territoryIDPattern matches the fixed-width IBGE territory code.
var territoryIDPattern = regexp.MustCompile(`^\d{7}$`)

// Entries validates every configuration entry and returns all findings.
func Entries(entries []aggregate.ConfigEntry) []*errors.ValidationError {
	var findings []*errors.ValidationError
	report := func(record, field, message string) {
		findings = append(findings, errors.NewValidationError(record, field, message))
	}

	covered := make(map[string]string, len(entries))

	for i, entry := range entries {
		record := entry.ID
		if record == "" {
			record = fmt.Sprintf("#%d", i)
			report(record, "id", "required field missing")
		}

		if entry.Name == "" {
			report(record, "name", "required field missing")
		}
		if entry.StateCode == "" {
			report(record, "stateCode", "required field missing")
		}
		if entry.SpiderType == "" {
			report(record, "spiderType", "required field missing")
		}

		switch {
		case entry.TerritoryID == "":
			report(record, "territoryId", "required field missing")
		case !territoryIDPattern.MatchString(entry.TerritoryID):
			report(record, "territoryId",
				fmt.Sprintf("must be a string of exactly 7 digits, got %q", entry.TerritoryID))
		}

		if entry.ID != "" && entry.StateCode != "" && entry.TerritoryID != "" {
			want := strings.ToLower(entry.StateCode) + "_" + entry.TerritoryID
			if entry.ID != want {
				report(record, "id",
					fmt.Sprintf("must be %q per the {state}_{territory} convention", want))
			}
		}

		if entry.Config.URL == "" {
			report(record, "config.url", "required field missing")
		}

		addressing := entry.Config.AddressingValues()
		switch len(addressing) {
		case 0:
			report(record, "config", "no addressing field set; exactly one of entityId, cityName, entityName is required")
		case 1:
			if want, ok := publisher.FieldForSpiderType(entry.SpiderType); ok {
				if _, set := addressing[string(want)]; !set {
					report(record, "config",
						fmt.Sprintf("spiderType %s requires addressing field %s", entry.SpiderType, want))
				}
			}
		default:
			report(record, "config", "multiple addressing fields set; exactly one is allowed")
		}

		if entry.StateCode != "" && entry.TerritoryID != "" {
			key := entry.StateCode + "/" + entry.TerritoryID
			if prev, dup := covered[key]; dup {
				report(record, "territoryId",
					fmt.Sprintf("municipality already covered by %s", prev))
			} else {
				covered[key] = record
			}
		}
	}

	return findings
}

// Stats are descriptive aggregate statistics for human review; they are not
// a correctness check.
type Stats struct {
	Total              int
	ByState            map[string]int
	BySpider           map[string]int
	PlaceholderEntries int
}

// Statistics derives per-state and per-spiderType entry counts. The state is
// taken from the id prefix, mirroring how operators read the files.
func Statistics(entries []aggregate.ConfigEntry) *Stats {
	stats := &Stats{
		Total:    len(entries),
		ByState:  make(map[string]int),
		BySpider: make(map[string]int),
	}

	for _, entry := range entries {
		state := strings.ToUpper(strings.SplitN(entry.ID, "_", 2)[0])
		if state != "" {
			stats.ByState[state]++
		}
		if entry.SpiderType != "" {
			stats.BySpider[entry.SpiderType]++
		}
		if entry.Config.EntityID == "0" {
			stats.PlaceholderEntries++
		}
	}

	return stats
}

// States returns the states present, sorted for stable reports.
func (s *Stats) States() []string {
	states := make([]string, 0, len(s.ByState))
	for state := range s.ByState {
		states = append(states, state)
	}
	sort.Strings(states)
	return states
}

// Spiders returns the spider types present, sorted for stable reports.
func (s *Stats) Spiders() []string {
	spiders := make([]string, 0, len(s.BySpider))
	for spider := range s.BySpider {
		spiders = append(spiders, spider)
	}
	sort.Strings(spiders)
	return spiders
}
