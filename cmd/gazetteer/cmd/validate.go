package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diariobr/gazetteer/internal/cmd/output"
	"github.com/diariobr/gazetteer/pkg/aggregate"
	"github.com/diariobr/gazetteer/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <aggregate.json>",
	Short: "Check the aggregate registry against its schema and invariants",
	Long: `Validate loads an aggregate registry file and reports every violation:
missing required fields, malformed territory ids, id convention mismatches,
addressing-field problems, and municipalities claimed more than once.

All findings are reported in one pass; the exit code is non-zero when any
violation is found.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validationFinding is the serializable form of one violation.
type validationFinding struct {
	Record  string `json:"record"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func runValidate(_ *cobra.Command, args []string) error {
	agg, err := aggregate.Load(args[0])
	if err != nil {
		return err
	}

	findings := validate.Entries(agg.Entries())
	if len(findings) == 0 {
		fmt.Printf("%s: %d entries, no violations\n", args[0], agg.Len())
		return nil
	}

	f, format := formatter()
	if format == output.FormatTable {
		data := output.Data{
			Headers: []string{"Record", "Field", "Problem"},
			Rows:    make([][]string, 0, len(findings)),
		}
		for _, finding := range findings {
			data.Rows = append(data.Rows, []string{finding.Record, finding.Field, finding.Message})
		}
		if err := f.Format(os.Stdout, data); err != nil {
			return err
		}
	} else {
		payload := make([]validationFinding, 0, len(findings))
		for _, finding := range findings {
			payload = append(payload, validationFinding{
				Record:  finding.Record,
				Field:   finding.Field,
				Message: finding.Message,
			})
		}
		if err := f.Format(os.Stdout, payload); err != nil {
			return err
		}
	}

	return fmt.Errorf("%d validation errors in %s", len(findings), args[0])
}
