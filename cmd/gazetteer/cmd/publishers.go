package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/diariobr/gazetteer/internal/cmd/output"
	"github.com/diariobr/gazetteer/pkg/publisher"
)

var publishersFile string

var publishersCmd = &cobra.Command{
	Use:   "publishers",
	Short: "List publisher integrations",
	Long: `Publishers lists the available gazette publisher integrations: the portal
URL, the addressing field its spider type needs, how the addressing value is
derived, and which normalization variant matching uses.

With --publishers-file the custom integrations from that YAML file are listed
instead of the built-in set.`,
	RunE: runPublishers,
}

func init() {
	rootCmd.AddCommand(publishersCmd)
	publishersCmd.Flags().StringVar(&publishersFile, "publishers-file", "", "YAML file with custom publisher integrations")
}

func runPublishers(_ *cobra.Command, _ []string) error {
	specs := publisher.Builtin()
	if publishersFile != "" {
		loaded, err := publisher.LoadFile(publishersFile)
		if err != nil {
			return err
		}
		specs = loaded
	}

	f, format := formatter()
	if format != output.FormatTable {
		return f.Format(os.Stdout, specs)
	}

	data := output.Data{
		Headers: []string{"Name", "State", "Spider Type", "Field", "Value Rule", "Normalization", "URL"},
	}
	for _, spec := range specs {
		data.Rows = append(data.Rows, []string{
			spec.Name,
			spec.StateCode,
			spec.SpiderType,
			string(spec.Field),
			string(spec.Value),
			string(spec.Normalization),
			spec.URL,
		})
	}
	return f.Format(os.Stdout, data)
}
