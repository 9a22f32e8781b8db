// Package registry loads the authoritative IBGE municipality registry and
// indexes it by normalized name for identity resolution.
//
// Two registry export shapes are accepted: the nationwide dump
// ({codigo_ibge, nome, codigo_uf, latitude, longitude}) and the per-state
// IBGE API listing ({id, nome}). Records are immutable once loaded.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/diariobr/gazetteer/pkg/errors"
	"github.com/diariobr/gazetteer/pkg/normalize"
)

// Municipality is an authoritative registry record. TerritoryCode is the
// stable IBGE identifier, unique nationwide.
type Municipality struct {
	TerritoryCode int64
	Name          string
	StateCode     string
	Latitude      float64
	Longitude     float64
}

// TerritoryID returns the territory code in its fixed-width string form.
// IBGE codes are seven digits.
func (m Municipality) TerritoryID() string {
	return strconv.FormatInt(m.TerritoryCode, 10)
}

// rawMunicipality covers both accepted registry export shapes.
type rawMunicipality struct {
	ID         int64    `json:"id"`
	CodigoIBGE int64    `json:"codigo_ibge"`
	Nome       string   `json:"nome"`
	CodigoUF   int      `json:"codigo_uf"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// LoadFile reads a registry JSON file. When state is non-empty only that
// state's municipalities are returned. A missing or structurally malformed
// file is fatal: downstream deduplication depends on a complete registry
// view.
func LoadFile(path, state string) ([]Municipality, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	municipalities, err := Parse(data, state)
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return municipalities, nil
}

// Parse decodes registry records from a JSON array, filtered by state when
// state is non-empty.
func Parse(data []byte, state string) ([]Municipality, error) {
	var raw []rawMunicipality
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("registry must be an array of municipality records: %w", err)
	}

	municipalities := make([]Municipality, 0, len(raw))
	for i, r := range raw {
		m, err := r.resolve(state)
		if err != nil {
			return nil, fmt.Errorf("registry record %d: %w", i, err)
		}
		if state != "" && m.StateCode != state {
			continue
		}
		municipalities = append(municipalities, m)
	}
	return municipalities, nil
}

// resolve converts a raw record into a Municipality, deriving the state code
// from whichever source the export carries.
func (r rawMunicipality) resolve(fallbackState string) (Municipality, error) {
	code := r.CodigoIBGE
	if code == 0 {
		code = r.ID
	}
	if code == 0 {
		return Municipality{}, errors.New("missing territory code (codigo_ibge or id)")
	}
	if r.Nome == "" {
		return Municipality{}, errors.New("missing required key nome")
	}

	stateCode := ""
	if r.CodigoUF != 0 {
		if s, ok := StateForUF(r.CodigoUF); ok {
			stateCode = s
		} else {
			return Municipality{}, fmt.Errorf("unknown codigo_uf %d", r.CodigoUF)
		}
	} else if s, ok := StateForTerritory(code); ok {
		stateCode = s
	} else {
		stateCode = fallbackState
	}
	if stateCode == "" {
		return Municipality{}, fmt.Errorf("cannot determine state for territory code %d", code)
	}

	m := Municipality{
		TerritoryCode: code,
		Name:          r.Nome,
		StateCode:     stateCode,
	}
	if r.Latitude != nil {
		m.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		m.Longitude = *r.Longitude
	}
	return m, nil
}

// Collision records two or more distinct municipalities in the same state
// whose names reduce to the same normalized key. Within one state the
// registry is expected to be injective under normalization; a collision is a
// data-quality defect to surface, not a matching bug.
type Collision struct {
	Key   string
	Names []string
}

// Index provides O(1) lookup of registry records by normalized name. The
// normalization variant is fixed at construction so every lookup uses the
// same key derivation as the build.
type Index struct {
	variant    normalize.Variant
	byName     map[string]Municipality
	collisions []Collision
}

// NewIndex builds a name index over municipalities using the given variant.
// On key collisions the last record loaded wins the slot; all collisions are
// retained for reporting.
func NewIndex(municipalities []Municipality, variant normalize.Variant) *Index {
	ix := &Index{
		variant: variant,
		byName:  make(map[string]Municipality, len(municipalities)),
	}

	colliding := make(map[string][]string)
	for _, m := range municipalities {
		key := variant.Key(m.Name)
		if prev, ok := ix.byName[key]; ok && prev.TerritoryCode != m.TerritoryCode {
			if len(colliding[key]) == 0 {
				colliding[key] = append(colliding[key], prev.Name)
			}
			colliding[key] = append(colliding[key], m.Name)
		}
		ix.byName[key] = m
	}

	keys := make([]string, 0, len(colliding))
	for key := range colliding {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		ix.collisions = append(ix.collisions, Collision{Key: key, Names: colliding[key]})
	}

	return ix
}

// Variant returns the normalization variant the index was built with.
func (ix *Index) Variant() normalize.Variant {
	return ix.variant
}

// Lookup resolves a display name to its registry record via the index's
// normalization variant.
func (ix *Index) Lookup(name string) (Municipality, bool) {
	m, ok := ix.byName[ix.variant.Key(name)]
	return m, ok
}

// Len returns the number of distinct normalized keys in the index.
func (ix *Index) Len() int {
	return len(ix.byName)
}

// Collisions returns same-key registry defects found while building the
// index, ordered by key.
func (ix *Index) Collisions() []Collision {
	return ix.collisions
}
