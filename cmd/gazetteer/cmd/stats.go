package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/diariobr/gazetteer/internal/cmd/output"
	"github.com/diariobr/gazetteer/pkg/aggregate"
	"github.com/diariobr/gazetteer/pkg/registry"
	"github.com/diariobr/gazetteer/pkg/validate"
)

var statsCmd = &cobra.Command{
	Use:   "stats <aggregate.json>",
	Short: "Show per-state and per-spiderType entry counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// statsPayload is the serializable form of the aggregate statistics.
type statsPayload struct {
	File               string         `json:"file"`
	Total              int            `json:"total"`
	ByState            map[string]int `json:"byState"`
	BySpider           map[string]int `json:"bySpider"`
	PlaceholderEntries int            `json:"placeholderEntries"`
}

func runStats(_ *cobra.Command, args []string) error {
	agg, err := aggregate.Load(args[0])
	if err != nil {
		return err
	}

	stats := validate.Statistics(agg.Entries())

	f, format := formatter()
	if format != output.FormatTable {
		return f.Format(os.Stdout, statsPayload{
			File:               args[0],
			Total:              stats.Total,
			ByState:            stats.ByState,
			BySpider:           stats.BySpider,
			PlaceholderEntries: stats.PlaceholderEntries,
		})
	}

	data := output.Data{
		Headers:         []string{"State", "UF Code", "Entries"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight, output.AlignRight},
	}
	for _, state := range stats.States() {
		uf := ""
		if code, ok := registry.UFForState(state); ok {
			uf = strconv.Itoa(code)
		}
		data.Rows = append(data.Rows, []string{state, uf, strconv.Itoa(stats.ByState[state])})
	}
	if err := f.Format(os.Stdout, data); err != nil {
		return err
	}

	spiders := output.Data{
		Headers:         []string{"Spider Type", "Entries"},
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignRight},
	}
	for _, spider := range stats.Spiders() {
		spiders.Rows = append(spiders.Rows, []string{spider, strconv.Itoa(stats.BySpider[spider])})
	}
	if err := f.Format(os.Stdout, spiders); err != nil {
		return err
	}

	summary := output.Data{
		Headers: []string{"Total", "Placeholder Entries"},
		Rows: [][]string{{
			strconv.Itoa(stats.Total),
			strconv.Itoa(stats.PlaceholderEntries),
		}},
		ColumnAlignment: []output.Align{output.AlignRight, output.AlignRight},
	}
	return f.Format(os.Stdout, summary)
}
