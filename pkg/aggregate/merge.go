package aggregate

import (
	"github.com/diariobr/gazetteer/pkg/logging"
)

// MergeResult reports what a merge changed.
type MergeResult struct {
	Added   []ConfigEntry
	Skipped []ConfigEntry
}

// Merge appends fresh entries whose (stateCode, territoryId) is not already
// covered and records the rest as skipped. Appends keep the order received;
// callers pre-sort by display name for stable, human-reviewable output.
// Existing entries are never rewritten, and re-merging the same batch adds
// nothing the second time.
func (a *Aggregate) Merge(fresh []ConfigEntry) MergeResult {
	var result MergeResult

	for _, entry := range fresh {
		if a.Covers(entry.StateCode, entry.TerritoryID) {
			logging.Debug().
				Str("id", entry.ID).
				Str("state", entry.StateCode).
				Str("territory", entry.TerritoryID).
				Msg("Municipality already covered, skipping")
			result.Skipped = append(result.Skipped, entry)
			continue
		}

		a.entries = append(a.entries, entry)
		a.raw = append(a.raw, nil)
		a.cover(entry)
		result.Added = append(result.Added, entry)
	}

	return result
}
