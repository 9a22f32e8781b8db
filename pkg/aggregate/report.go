package aggregate

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/agentstation/utc"

	"github.com/diariobr/gazetteer/pkg/constants"
	"github.com/diariobr/gazetteer/pkg/errors"
)

// AddedReport is the companion "newly added" file written next to the
// aggregate after a merge, for human review.
type AddedReport struct {
	Total          int           `json:"total"`
	GeneratedAt    utc.Time      `json:"generatedAt"`
	Municipalities []ConfigEntry `json:"municipalities"`
}

// NewAddedReport builds a report over the entries added by a merge.
func NewAddedReport(added []ConfigEntry) *AddedReport {
	if added == nil {
		added = []ConfigEntry{}
	}
	return &AddedReport{
		Total:          len(added),
		GeneratedAt:    utc.Now(),
		Municipalities: added,
	}
}

// Write persists the report as indented JSON.
func (r *AddedReport) Write(path string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", constants.JSONIndent)
	if err := enc.Encode(r); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
