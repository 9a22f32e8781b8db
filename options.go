package gazetteer

import (
	"github.com/diariobr/gazetteer/pkg/errors"
	"github.com/diariobr/gazetteer/pkg/publisher"
)

// config holds pipeline configuration assembled from options.
type config struct {
	registryPath  string
	sourcePath    string
	aggregatePath string
	reportPath    string
	stateCode     string
	spec          *publisher.Spec
	dryRun        bool
}

// Option is a function that configures a Pipeline.
type Option func(*config) error

// WithRegistryFile sets the authoritative IBGE registry JSON file.
func WithRegistryFile(path string) Option {
	return func(c *config) error {
		c.registryPath = path
		return nil
	}
}

// WithSourceFile sets the raw publisher source list. Without one, entries
// are synthesized straight from the registry (whole-state coverage claims).
func WithSourceFile(path string) Option {
	return func(c *config) error {
		c.sourcePath = path
		return nil
	}
}

// WithAggregateFile sets the aggregate registry file to merge into.
func WithAggregateFile(path string) Option {
	return func(c *config) error {
		c.aggregatePath = path
		return nil
	}
}

// WithReportFile sets where the "newly added" report is written. Empty
// disables the report.
func WithReportFile(path string) Option {
	return func(c *config) error {
		c.reportPath = path
		return nil
	}
}

// WithPublisher sets the publisher integration to synthesize for.
func WithPublisher(spec publisher.Spec) Option {
	return func(c *config) error {
		c.spec = &spec
		return nil
	}
}

// WithState overrides the publisher's default state filter.
func WithState(stateCode string) Option {
	return func(c *config) error {
		if stateCode != "" && len(stateCode) != 2 {
			return errors.NewConfigError("pipeline", "state must be a two-letter code", nil)
		}
		c.stateCode = stateCode
		return nil
	}
}

// WithDryRun disables persistence; the run computes and reports only.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}
