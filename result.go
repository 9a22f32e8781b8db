package gazetteer

import (
	"fmt"
	"io"

	"github.com/diariobr/gazetteer/pkg/aggregate"
	"github.com/diariobr/gazetteer/pkg/registry"
)

// Result is the run summary: every figure an operator needs to judge a run
// and follow up on what it could not resolve.
type Result struct {
	Publisher     string `json:"publisher"`
	StateCode     string `json:"stateCode"`
	RegistrySize  int    `json:"registrySize"`
	SourceSize    int    `json:"sourceSize"`
	AggregateSize int    `json:"aggregateSize"` // before the merge
	Matched       int    `json:"matched"`

	// Unmatched holds source display names with no registry match,
	// verbatim, for manual follow-up.
	Unmatched []string `json:"unmatched,omitempty"`

	Added   []aggregate.ConfigEntry `json:"added"`
	Skipped int                     `json:"skipped"`

	// NeedsCompletion lists entry ids emitted with a placeholder
	// addressing value that must be discovered later.
	NeedsCompletion []string `json:"needsCompletion,omitempty"`

	// Collisions are same-state registry names that reduce to the same
	// normalized key, a data-quality defect in the registry itself.
	Collisions []registry.Collision `json:"collisions,omitempty"`
}

// Summarize writes a human-readable run summary.
func (r *Result) Summarize(w io.Writer) {
	fmt.Fprintf(w, "Publisher %s (%s)\n", r.Publisher, r.StateCode)
	fmt.Fprintf(w, "  Registry municipalities: %d\n", r.RegistrySize)
	fmt.Fprintf(w, "  Source entries:          %d\n", r.SourceSize)
	fmt.Fprintf(w, "  Matched:                 %d\n", r.Matched)
	fmt.Fprintf(w, "  Unmatched:               %d\n", len(r.Unmatched))
	fmt.Fprintf(w, "  Merged:                  %d\n", len(r.Added))
	fmt.Fprintf(w, "  Skipped as duplicate:    %d\n", r.Skipped)

	if len(r.Unmatched) > 0 {
		fmt.Fprintln(w, "\nUnmatched source entries (manual follow-up needed):")
		for _, name := range r.Unmatched {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}

	if len(r.NeedsCompletion) > 0 {
		fmt.Fprintf(w, "\n%d entries carry a placeholder addressing value and need completion:\n", len(r.NeedsCompletion))
		for _, id := range r.NeedsCompletion {
			fmt.Fprintf(w, "  - %s\n", id)
		}
	}

	if len(r.Collisions) > 0 {
		fmt.Fprintln(w, "\nRegistry normalization collisions (data-quality defects):")
		for _, collision := range r.Collisions {
			fmt.Fprintf(w, "  - %s: %v\n", collision.Key, collision.Names)
		}
	}
}
