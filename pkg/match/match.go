// Package match pairs publisher source-list entries with authoritative
// registry records by exact normalized key.
//
// Matching is deliberately precision-over-recall: a false match would misfile
// a gazette feed under the wrong municipality, which is worse than an
// omission a human later reviews. There is no similarity scoring and no
// edit-distance fallback; anything not found by exact key lands in Unmatched
// for manual follow-up.
package match

import (
	"strings"

	"github.com/diariobr/gazetteer/pkg/normalize"
	"github.com/diariobr/gazetteer/pkg/registry"
)

// Pair is one resolved identity: a source entry and the registry record it
// names.
type Pair struct {
	Source       SourceEntry
	Municipality registry.Municipality
}

// Report partitions a source list into resolved and unresolved entries. It is
// produced fresh per run and never persisted; Unmatched is the signal for
// manual follow-up.
type Report struct {
	Matched   []Pair
	Unmatched []SourceEntry
}

// UnmatchedNames returns the display names of unresolved entries, verbatim as
// scraped.
func (r *Report) UnmatchedNames() []string {
	names := make([]string, 0, len(r.Unmatched))
	for _, entry := range r.Unmatched {
		names = append(names, entry.DisplayText)
	}
	return names
}

// Entries resolves each source entry against the index. The index's
// normalization variant decides key derivation, so the publisher integration
// that built the index controls matching strictness.
func Entries(sources []SourceEntry, ix *registry.Index) *Report {
	report := &Report{}
	for _, source := range sources {
		if m, ok := lookup(source.DisplayText, ix); ok {
			report.Matched = append(report.Matched, Pair{Source: source, Municipality: m})
		} else {
			report.Unmatched = append(report.Unmatched, source)
		}
	}
	return report
}

// entityPrefixes are portal framings around the municipality name, e.g.
// "Município de Curitiba" on SIGPub association listings. They are stripped
// as a whole before retrying the lookup; this is still exact-key matching,
// not similarity scoring.
var entityPrefixes = []string{
	"municipio de ",
	"prefeitura municipal de ",
}

// lookup resolves a display name, retrying once with any known portal
// prefix removed.
func lookup(name string, ix *registry.Index) (registry.Municipality, bool) {
	if m, ok := ix.Lookup(name); ok {
		return m, true
	}

	// Index keys are case and accent insensitive, so the folded remainder
	// derives the same key the unfolded text would.
	folded := strings.ToLower(normalize.StripMarks(name))
	for _, prefix := range entityPrefixes {
		rest, found := strings.CutPrefix(folded, prefix)
		if !found {
			continue
		}
		if m, ok := ix.Lookup(strings.TrimSpace(rest)); ok {
			return m, true
		}
	}

	return registry.Municipality{}, false
}
