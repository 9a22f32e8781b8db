package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gazetteer "github.com/diariobr/gazetteer"
	"github.com/diariobr/gazetteer/internal/cmd/output"
	"github.com/diariobr/gazetteer/pkg/publisher"
)

var buildFlags struct {
	publisher      string
	publishersFile string
	registry       string
	source         string
	aggregate      string
	report         string
	state          string
	dryRun         bool
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Match a publisher's municipality list and merge fresh configs",
	Long: `Build runs the full pipeline for one publisher integration: load the IBGE
registry and the existing aggregate, match the publisher's scraped municipality
list (or claim the whole state when no source list is given), synthesize
configuration entries for the matches, and merge entries for municipalities
not yet covered into the aggregate file.

Unmatched source entries are reported for manual follow-up, never guessed at.`,
	Example: `  # Merge the AGM (Goiás) scraped list into the aggregate
  gazetteer build --publisher agm --registry municipios.json \
    --source agm-raw.json --aggregate aggregate.json

  # Claim every AM municipality with a placeholder entity id
  gazetteer build --publisher aam --registry municipios.json \
    --aggregate aggregate.json --report am-added.json

  # Preview without writing anything
  gazetteer build --publisher agm --registry municipios.json \
    --source agm-raw.json --aggregate aggregate.json --dry-run`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildFlags.publisher, "publisher", "p", "", "publisher integration name (see 'gazetteer publishers')")
	buildCmd.Flags().StringVar(&buildFlags.publishersFile, "publishers-file", "", "YAML file with custom publisher integrations")
	buildCmd.Flags().StringVar(&buildFlags.registry, "registry", "", "IBGE municipality registry JSON file")
	buildCmd.Flags().StringVar(&buildFlags.source, "source", "", "scraped publisher municipality list (omit to claim the whole state)")
	buildCmd.Flags().StringVar(&buildFlags.aggregate, "aggregate", "", "aggregate registry JSON file to merge into")
	buildCmd.Flags().StringVar(&buildFlags.report, "report", "", "write newly added entries to this JSON report file")
	buildCmd.Flags().StringVar(&buildFlags.state, "state", "", "two-letter state code override")
	buildCmd.Flags().BoolVar(&buildFlags.dryRun, "dry-run", false, "compute and report without writing files")

	_ = buildCmd.MarkFlagRequired("publisher")
	_ = buildCmd.MarkFlagRequired("registry")
	_ = buildCmd.MarkFlagRequired("aggregate")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	spec, err := resolvePublisher(buildFlags.publisher, buildFlags.publishersFile)
	if err != nil {
		return err
	}

	pipeline, err := gazetteer.New(
		gazetteer.WithRegistryFile(buildFlags.registry),
		gazetteer.WithSourceFile(buildFlags.source),
		gazetteer.WithAggregateFile(buildFlags.aggregate),
		gazetteer.WithReportFile(buildFlags.report),
		gazetteer.WithPublisher(spec),
		gazetteer.WithState(buildFlags.state),
		gazetteer.WithDryRun(buildFlags.dryRun),
	)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	f, format := formatter()
	if format == output.FormatTable {
		result.Summarize(os.Stdout)
		return nil
	}
	return f.Format(os.Stdout, result)
}

// resolvePublisher finds the named integration, preferring a custom
// publishers file over the built-in set when one is given.
func resolvePublisher(name, file string) (publisher.Spec, error) {
	if file != "" {
		specs, err := publisher.LoadFile(file)
		if err != nil {
			return publisher.Spec{}, err
		}
		for _, spec := range specs {
			if spec.Name == name {
				return spec, nil
			}
		}
		return publisher.Spec{}, fmt.Errorf("publisher %q not found in %s", name, file)
	}

	spec, ok := publisher.Lookup(name)
	if !ok {
		return publisher.Spec{}, fmt.Errorf("unknown publisher %q; run 'gazetteer publishers' to list integrations", name)
	}
	return spec, nil
}
