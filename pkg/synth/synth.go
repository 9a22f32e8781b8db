// Package synth builds configuration entries for matched municipalities,
// shaped by the target publisher's addressing scheme.
package synth

import (
	"sort"
	"strings"

	"github.com/diariobr/gazetteer/pkg/aggregate"
	"github.com/diariobr/gazetteer/pkg/errors"
	"github.com/diariobr/gazetteer/pkg/match"
	"github.com/diariobr/gazetteer/pkg/normalize"
	"github.com/diariobr/gazetteer/pkg/publisher"
	"github.com/diariobr/gazetteer/pkg/registry"
)

// Result carries synthesized entries plus the ids emitted with a placeholder
// addressing value. Placeholders claim coverage ahead of discovering the
// real value; the caller tracks them for later completion rather than the
// synthesizer hiding them by omission.
type Result struct {
	Entries         []aggregate.ConfigEntry
	NeedsCompletion []string
}

// Matched builds one configuration entry per matched pair. Entries are
// sorted by display name for stable, human-reviewable output.
func Matched(pairs []match.Pair, spec publisher.Spec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, pair := range pairs {
		value, placeholder, err := addressingValue(pair.Source, pair.Municipality, spec)
		if err != nil {
			return nil, err
		}

		entry := newEntry(pair.Municipality, spec, value)
		result.Entries = append(result.Entries, entry)
		if placeholder {
			result.NeedsCompletion = append(result.NeedsCompletion, entry.ID)
		}
	}

	sortEntries(result.Entries)
	return result, nil
}

// Registry builds entries straight from registry records, with no source
// list. Used to claim a whole state's municipalities on publishers whose
// addressing values are derived or discovered later.
func Registry(municipalities []registry.Municipality, spec publisher.Spec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	switch spec.Value {
	case publisher.ValueSourceToken, publisher.ValueSourceText:
		return nil, errors.NewConfigError("publisher "+spec.Name,
			"value rule "+string(spec.Value)+" requires a source list", nil)
	}

	result := &Result{}
	for _, m := range municipalities {
		value, placeholder, err := addressingValue(match.SourceEntry{}, m, spec)
		if err != nil {
			return nil, err
		}

		entry := newEntry(m, spec, value)
		result.Entries = append(result.Entries, entry)
		if placeholder {
			result.NeedsCompletion = append(result.NeedsCompletion, entry.ID)
		}
	}

	sortEntries(result.Entries)
	return result, nil
}

// addressingValue produces the value for the spec's addressing field. The
// second return reports whether the placeholder sentinel was emitted.
func addressingValue(source match.SourceEntry, m registry.Municipality, spec publisher.Spec) (string, bool, error) {
	switch spec.Value {
	case publisher.ValueSourceToken:
		if source.AddressingValue == "" {
			if spec.Placeholder != "" {
				return spec.Placeholder, true, nil
			}
			return "", false, errors.NewConfigError("publisher "+spec.Name,
				"source entry "+source.DisplayText+" has no addressing value and no placeholder is declared", nil)
		}
		return source.AddressingValue, false, nil
	case publisher.ValueSourceText:
		return source.DisplayText, false, nil
	case publisher.ValueUpperName:
		return strings.ToUpper(normalize.StripMarks(m.Name)), false, nil
	case publisher.ValuePrefeitura:
		return "Prefeitura Municipal de " + m.Name, false, nil
	case publisher.ValuePlaceholder:
		return spec.Placeholder, true, nil
	default:
		return "", false, errors.NewConfigError("publisher "+spec.Name, "unknown value rule", nil)
	}
}

// newEntry assembles a configuration entry for one municipality. The id
// convention is "{stateCodeLower}_{territoryId}", globally unique across the
// aggregate.
func newEntry(m registry.Municipality, spec publisher.Spec, value string) aggregate.ConfigEntry {
	territoryID := m.TerritoryID()

	config := aggregate.SpiderConfig{URL: spec.URL}
	switch spec.Field {
	case publisher.FieldEntityID:
		config.EntityID = value
	case publisher.FieldCityName:
		config.CityName = value
	case publisher.FieldEntityName:
		config.EntityName = value
	}

	return aggregate.ConfigEntry{
		ID:          strings.ToLower(m.StateCode) + "_" + territoryID,
		Name:        m.Name,
		StateCode:   m.StateCode,
		TerritoryID: territoryID,
		SpiderType:  spec.SpiderType,
		Config:      config,
	}
}

func sortEntries(entries []aggregate.ConfigEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
}
