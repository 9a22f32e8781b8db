// Package gazetteer resolves identity between the authoritative IBGE
// municipality registry and per-publisher gazette portal listings, and
// synthesizes the configuration entries an automated fetcher needs to
// retrieve each municipality's official gazette.
//
// A run is a strict, single-threaded batch: read all inputs fully into
// memory, compute, write output fully. If it fails before persistence, no
// state is written.
package gazetteer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/diariobr/gazetteer/pkg/aggregate"
	"github.com/diariobr/gazetteer/pkg/errors"
	"github.com/diariobr/gazetteer/pkg/logging"
	"github.com/diariobr/gazetteer/pkg/match"
	"github.com/diariobr/gazetteer/pkg/registry"
	"github.com/diariobr/gazetteer/pkg/synth"
)

// Pipeline wires one publisher integration through load, match, synthesis,
// merge and persistence. All state is passed explicitly; nothing accumulates
// in package-level variables.
type Pipeline struct {
	config *config
}

// New creates a Pipeline with the given options. Registry path, aggregate
// path and publisher spec are required.
func New(opts ...Option) (*Pipeline, error) {
	c := &config{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	switch {
	case c.registryPath == "":
		return nil, errors.NewConfigError("pipeline", "registry file is required", nil)
	case c.aggregatePath == "":
		return nil, errors.NewConfigError("pipeline", "aggregate file is required", nil)
	case c.spec == nil:
		return nil, errors.NewConfigError("pipeline", "publisher spec is required", nil)
	}
	if err := c.spec.Validate(); err != nil {
		return nil, err
	}

	return &Pipeline{config: c}, nil
}

// Run executes the pipeline. Load failures abort immediately with the
// offending source identified; unmatched entries and duplicate skips are
// reported in the Result, never dropped silently.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	c := p.config
	log := logging.Ctx(ctx).With().
		Str("publisher", c.spec.Name).
		Str("state", c.state()).
		Logger()

	municipalities, err := registry.LoadFile(c.registryPath, c.state())
	if err != nil {
		return nil, err
	}
	log.Info().Int("municipalities", len(municipalities)).Msg("Registry loaded")

	agg, err := aggregate.Load(c.aggregatePath)
	if err != nil {
		return nil, err
	}
	log.Info().Int("entries", agg.Len()).Msg("Existing aggregate loaded")

	result := &Result{
		Publisher:     c.spec.Name,
		StateCode:     c.state(),
		RegistrySize:  len(municipalities),
		AggregateSize: agg.Len(),
	}

	index := registry.NewIndex(municipalities, c.spec.Normalization)
	for _, collision := range index.Collisions() {
		log.Warn().
			Str("key", collision.Key).
			Strs("names", collision.Names).
			Msg("Registry names collide under normalization")
	}
	result.Collisions = index.Collisions()

	synthesized, err := p.synthesize(index, municipalities, result, &log)
	if err != nil {
		return nil, err
	}

	merge := agg.Merge(synthesized.Entries)
	result.Added = merge.Added
	result.Skipped = len(merge.Skipped)
	result.NeedsCompletion = synthesized.NeedsCompletion

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if c.dryRun {
		log.Info().Int("added", len(merge.Added)).Msg("Dry run, skipping persistence")
		return result, nil
	}

	if err := agg.Save(c.aggregatePath); err != nil {
		return nil, err
	}
	if c.reportPath != "" {
		if err := aggregate.NewAddedReport(merge.Added).Write(c.reportPath); err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("added", len(merge.Added)).
		Int("skipped", result.Skipped).
		Int("aggregate_total", agg.Len()).
		Msg("Aggregate updated")
	return result, nil
}

// synthesize builds fresh entries either from a source list or, when none is
// configured, straight from the registry (whole-state coverage claims).
func (p *Pipeline) synthesize(index *registry.Index, municipalities []registry.Municipality, result *Result, log *zerolog.Logger) (*synth.Result, error) {
	c := p.config

	if c.sourcePath == "" {
		result.SourceSize = len(municipalities)
		result.Matched = len(municipalities)
		return synth.Registry(municipalities, *c.spec)
	}

	entries, err := match.LoadFile(c.sourcePath, c.state())
	if err != nil {
		return nil, err
	}
	result.SourceSize = len(entries)

	report := match.Entries(entries, index)
	result.Matched = len(report.Matched)
	result.Unmatched = report.UnmatchedNames()
	for _, name := range result.Unmatched {
		log.Warn().Str("name", name).Msg("Source entry has no registry match")
	}

	return synth.Matched(report.Matched, *c.spec)
}

// state returns the configured state filter, defaulting to the publisher's.
func (c *config) state() string {
	if c.stateCode != "" {
		return c.stateCode
	}
	return c.spec.StateCode
}
