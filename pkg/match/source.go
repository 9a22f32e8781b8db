package match

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/diariobr/gazetteer/pkg/errors"
)

// SourceEntry is one municipality as listed on a publisher's portal,
// produced by an external scraping collaborator and consumed once by the
// matcher. AddressingValue is the publisher-specific token (a numeric entity
// id or a free-text key); it may be empty for portals that only list names.
type SourceEntry struct {
	DisplayText     string
	AddressingValue string
	StateCode       string
}

// rawSourceEntry accepts the {nome|text, value} record shape. Portals encode
// the value attribute as either a string or a number.
type rawSourceEntry struct {
	Nome  string          `json:"nome"`
	Text  string          `json:"text"`
	Value json.RawMessage `json:"value"`
}

func (r rawSourceEntry) entry(state string) (SourceEntry, error) {
	display := r.Nome
	if display == "" {
		display = r.Text
	}
	if display == "" {
		return SourceEntry{}, errors.New("missing required key nome or text")
	}

	value := ""
	if len(r.Value) > 0 {
		if err := json.Unmarshal(r.Value, &value); err != nil {
			// Not a JSON string; keep the literal form (e.g. a number).
			value = strings.TrimSpace(string(r.Value))
		}
	}

	return SourceEntry{DisplayText: display, AddressingValue: value, StateCode: state}, nil
}

// LoadFile reads a raw source list for the given state. Three export shapes
// are accepted: an array of {nome|text, value} records, the same array under
// a "municipalities" key, and a bare array of display-name strings.
func LoadFile(path, state string) ([]SourceEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	entries, err := Parse(data, state)
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return entries, nil
}

// Parse decodes source entries from raw JSON.
func Parse(data []byte, state string) ([]SourceEntry, error) {
	// Unwrap the {"municipalities": [...]} report shape first.
	var wrapper struct {
		Municipalities json.RawMessage `json:"municipalities"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Municipalities) > 0 {
		data = wrapper.Municipalities
	}

	// A bare array of display names.
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		entries := make([]SourceEntry, 0, len(names))
		for i, name := range names {
			if name == "" {
				return nil, fmt.Errorf("source entry %d: empty name", i)
			}
			entries = append(entries, SourceEntry{DisplayText: name, StateCode: state})
		}
		return entries, nil
	}

	var raw []rawSourceEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("source list must be an array of {nome|text, value} records: %w", err)
	}

	entries := make([]SourceEntry, 0, len(raw))
	for i, r := range raw {
		entry, err := r.entry(state)
		if err != nil {
			return nil, fmt.Errorf("source entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
