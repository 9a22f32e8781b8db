package publisher_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diariobr/gazetteer/pkg/normalize"
	"github.com/diariobr/gazetteer/pkg/publisher"
)

func TestBuiltinSpecsAreValid(t *testing.T) {
	specs := publisher.Builtin()
	require.NotEmpty(t, specs)

	for _, spec := range specs {
		assert.NoError(t, spec.Validate(), "builtin %s must validate", spec.Name)
	}

	// Sorted by name for stable listings.
	for i := 1; i < len(specs); i++ {
		assert.Less(t, specs[i-1].Name, specs[i].Name)
	}
}

func TestLookup(t *testing.T) {
	spec, ok := publisher.Lookup("agm")
	require.True(t, ok)
	assert.Equal(t, "sigpub", spec.SpiderType)
	assert.Equal(t, publisher.FieldEntityID, spec.Field)
	assert.Equal(t, normalize.AccentFold, spec.Normalization)
	assert.Equal(t, "GO", spec.StateCode)

	_, ok = publisher.Lookup("unknown-portal")
	assert.False(t, ok)
}

func TestFieldForSpiderType(t *testing.T) {
	field, ok := publisher.FieldForSpiderType("sigpub")
	require.True(t, ok)
	assert.Equal(t, publisher.FieldEntityID, field)

	field, ok = publisher.FieldForSpiderType("dom-sc")
	require.True(t, ok)
	assert.Equal(t, publisher.FieldEntityName, field)

	_, ok = publisher.FieldForSpiderType("mystery")
	assert.False(t, ok)
}

func TestSpecValidate(t *testing.T) {
	valid := publisher.Spec{
		Name:          "example",
		SpiderType:    "sigpub",
		URL:           "https://example.org/",
		Field:         publisher.FieldEntityID,
		Value:         publisher.ValueSourceToken,
		Normalization: normalize.Strict,
		StateCode:     "GO",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*publisher.Spec)
	}{
		{"missing name", func(s *publisher.Spec) { s.Name = "" }},
		{"missing spiderType", func(s *publisher.Spec) { s.SpiderType = "" }},
		{"missing url", func(s *publisher.Spec) { s.URL = "" }},
		{"bad field", func(s *publisher.Spec) { s.Field = "zipCode" }},
		{"bad value rule", func(s *publisher.Spec) { s.Value = "guess" }},
		{"placeholder without token", func(s *publisher.Spec) {
			s.Value = publisher.ValuePlaceholder
			s.Placeholder = ""
		}},
		{"bad normalization", func(s *publisher.Spec) { s.Normalization = "loose" }},
		{"missing stateCode", func(s *publisher.Spec) { s.StateCode = "" }},
		{"overlong stateCode", func(s *publisher.Spec) { s.StateCode = "GOI" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := valid
			tt.mutate(&spec)
			assert.Error(t, spec.Validate())
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.yaml")
	content := `- name: ame-es
  spiderType: sigpub
  url: https://www.diariomunicipal.es.gov.br/
  field: entityId
  value: source-token
  normalization: accent-fold
  stateCode: ES
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	specs, err := publisher.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "ame-es", specs[0].Name)
	assert.Equal(t, normalize.AccentFold, specs[0].Normalization)
}

func TestLoadFileInvalidSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.yaml")
	content := `- name: broken
  spiderType: sigpub
  url: https://example.org/
  field: zipCode
  value: source-token
  normalization: strict
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := publisher.LoadFile(path)
	assert.Error(t, err)
}
