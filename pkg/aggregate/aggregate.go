// Package aggregate holds the accumulated, deduplicated collection of
// per-municipality fetch configurations across all integrated publishers.
//
// Lifecycle is load-existing, append-new-non-duplicates, persist-whole-file.
// Entries loaded from disk keep their original JSON bytes and are written
// back untouched; only appended entries are marshaled fresh. The collection
// never shrinks within a run.
package aggregate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/diariobr/gazetteer/pkg/constants"
	"github.com/diariobr/gazetteer/pkg/errors"
)

// SpiderConfig is the publisher-specific addressing block of a configuration
// entry. URL is always present; exactly one addressing field among EntityID,
// CityName and EntityName is set, depending on the spiderType.
type SpiderConfig struct {
	Type       string `json:"type,omitempty"`
	URL        string `json:"url"`
	EntityID   string `json:"entityId,omitempty"`
	CityName   string `json:"cityName,omitempty"`
	EntityName string `json:"entityName,omitempty"`
}

// AddressingValues returns the set addressing fields as name/value pairs.
func (c SpiderConfig) AddressingValues() map[string]string {
	values := make(map[string]string, 1)
	if c.EntityID != "" {
		values["entityId"] = c.EntityID
	}
	if c.CityName != "" {
		values["cityName"] = c.CityName
	}
	if c.EntityName != "" {
		values["entityName"] = c.EntityName
	}
	return values
}

// ConfigEntry is the persisted unit of work: everything an automated fetcher
// needs to retrieve one municipality's official gazette from one publisher.
type ConfigEntry struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	StateCode   string       `json:"stateCode"`
	TerritoryID string       `json:"territoryId"`
	SpiderType  string       `json:"spiderType"`
	Config      SpiderConfig `json:"config"`
}

// coverageKey identifies a municipality's coverage claim. For a given state,
// at most one entry may exist per territory across the whole aggregate: one
// publisher owns a municipality's coverage.
type coverageKey struct {
	StateCode   string
	TerritoryID string
}

// Aggregate is the ordered collection of configuration entries keyed by id.
type Aggregate struct {
	entries  []ConfigEntry
	raw      []json.RawMessage // original bytes per loaded entry; nil for appends
	coverage map[coverageKey]struct{}
}

// New returns an empty aggregate.
func New() *Aggregate {
	return &Aggregate{coverage: make(map[coverageKey]struct{})}
}

// Load reads the aggregate registry file. A missing or structurally
// malformed file aborts the run: deduplication correctness depends on a
// complete view of existing coverage.
func Load(path string) (*Aggregate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	agg, err := Parse(data)
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return agg, nil
}

// Parse decodes an aggregate from a JSON array of configuration entries.
// Unknown keys on existing entries are preserved through their raw bytes.
// Entries missing id, stateCode or territoryId are rejected: a zero-valued
// coverage key would let a later merge claim the same municipality twice.
func Parse(data []byte) (*Aggregate, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.New("aggregate must be a JSON array of configuration entries")
	}

	agg := New()
	for i, msg := range raw {
		var entry ConfigEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			return nil, err
		}
		if key := entry.missingKey(); key != "" {
			record := entry.ID
			if record == "" {
				record = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("aggregate entry %s: missing required key %s", record, key)
		}
		agg.entries = append(agg.entries, entry)
		agg.raw = append(agg.raw, msg)
		agg.cover(entry)
	}
	return agg, nil
}

// missingKey reports the first absent coverage-critical key, or "".
func (e ConfigEntry) missingKey() string {
	switch {
	case e.ID == "":
		return "id"
	case e.StateCode == "":
		return "stateCode"
	case e.TerritoryID == "":
		return "territoryId"
	}
	return ""
}

func (a *Aggregate) cover(entry ConfigEntry) {
	a.coverage[coverageKey{StateCode: entry.StateCode, TerritoryID: entry.TerritoryID}] = struct{}{}
}

// Covers reports whether any publisher already claims the municipality.
func (a *Aggregate) Covers(stateCode, territoryID string) bool {
	_, ok := a.coverage[coverageKey{StateCode: stateCode, TerritoryID: territoryID}]
	return ok
}

// Len returns the number of entries in the aggregate.
func (a *Aggregate) Len() int {
	return len(a.entries)
}

// Entries returns the entries in persisted order.
func (a *Aggregate) Entries() []ConfigEntry {
	return a.entries
}

// Save writes the whole aggregate back to path. Loaded entries are written
// from their original bytes; appended entries are marshaled. The write is
// all-or-nothing at the file boundary.
func (a *Aggregate) Save(path string) error {
	raw := make([]json.RawMessage, len(a.entries))
	for i, entry := range a.entries {
		if i < len(a.raw) && a.raw[i] != nil {
			raw[i] = a.raw[i]
			continue
		}
		data, err := marshalUnescaped(entry)
		if err != nil {
			return err
		}
		raw[i] = data
	}

	data, err := marshalUnescaped(raw)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", constants.JSONIndent); err != nil {
		return err
	}
	out.WriteByte('\n')

	if err := os.WriteFile(path, out.Bytes(), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// marshalUnescaped marshals without HTML escaping so portal URLs stay
// readable in the persisted file.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
