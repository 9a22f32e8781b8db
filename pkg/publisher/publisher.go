// Package publisher declares gazette publisher integrations: how each
// hosting platform addresses a municipality's content and how configuration
// values are derived for it.
//
// Each integration fixes its normalization variant explicitly. Inferring the
// variant from the data silently produces false non-matches (and, rarely,
// false matches), so it is part of the declared spec.
package publisher

import (
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/diariobr/gazetteer/pkg/constants"
	"github.com/diariobr/gazetteer/pkg/errors"
	"github.com/diariobr/gazetteer/pkg/normalize"
)

// AddressingField is the publisher-specific key needed to locate a
// municipality's content on that publisher's platform. Exactly one field is
// present per configuration entry.
type AddressingField string

const (
	// FieldEntityID addresses by numeric entity id (SIGPub platforms).
	FieldEntityID AddressingField = "entityId"
	// FieldCityName addresses by exact city name token.
	FieldCityName AddressingField = "cityName"
	// FieldEntityName addresses by formatted entity display name.
	FieldEntityName AddressingField = "entityName"
)

// ValueRule selects how the addressing value is produced from a matched
// municipality.
type ValueRule string

const (
	// ValueSourceToken uses the raw addressing token scraped from the portal.
	ValueSourceToken ValueRule = "source-token"
	// ValueSourceText uses the display text scraped from the portal.
	ValueSourceText ValueRule = "source-text"
	// ValueUpperName derives the value by uppercasing the deaccented
	// registry name.
	ValueUpperName ValueRule = "upper-name"
	// ValuePrefeitura derives "Prefeitura Municipal de {name}" from the
	// registry name.
	ValuePrefeitura ValueRule = "prefeitura-name"
	// ValuePlaceholder emits the spec's placeholder token. Coverage is
	// claimed ahead of discovering the real value; callers must track these
	// entries for later completion.
	ValuePlaceholder ValueRule = "placeholder"
)

// Spec describes one publisher integration. It is fixed configuration, not
// runtime state.
type Spec struct {
	Name          string            `json:"name" yaml:"name"`
	SpiderType    string            `json:"spiderType" yaml:"spiderType"`
	URL           string            `json:"url" yaml:"url"`
	Field         AddressingField   `json:"field" yaml:"field"`
	Value         ValueRule         `json:"value" yaml:"value"`
	Placeholder   string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Normalization normalize.Variant `json:"normalization" yaml:"normalization"`
	StateCode     string            `json:"stateCode" yaml:"stateCode"`
}

// Validate checks that the spec is complete and internally consistent.
func (s *Spec) Validate() error {
	switch {
	case s.Name == "":
		return errors.NewConfigError("publisher", "missing name", nil)
	case s.SpiderType == "":
		return errors.NewConfigError("publisher "+s.Name, "missing spiderType", nil)
	case s.URL == "":
		return errors.NewConfigError("publisher "+s.Name, "missing url", nil)
	}

	switch s.Field {
	case FieldEntityID, FieldCityName, FieldEntityName:
	default:
		return errors.NewConfigError("publisher "+s.Name,
			"field must be one of entityId, cityName, entityName", nil)
	}

	switch s.Value {
	case ValueSourceToken, ValueSourceText, ValueUpperName, ValuePrefeitura:
	case ValuePlaceholder:
		if s.Placeholder == "" {
			return errors.NewConfigError("publisher "+s.Name,
				"placeholder value rule requires a placeholder token", nil)
		}
	default:
		return errors.NewConfigError("publisher "+s.Name, "unknown value rule", nil)
	}

	if !s.Normalization.Valid() {
		return errors.NewConfigError("publisher "+s.Name,
			"normalization must be strict or accent-fold", nil)
	}

	// Without a state the registry filter is empty and a registry-driven run
	// would claim every municipality in the country.
	if len(s.StateCode) != constants.StateCodeLength {
		return errors.NewConfigError("publisher "+s.Name,
			"stateCode must be a two-letter code", nil)
	}

	return nil
}

// builtins are the integrations carried by the tool itself. URLs and
// addressing schemes follow each platform's portal.
var builtins = map[string]Spec{
	"aam": {
		Name:          "aam",
		SpiderType:    "sigpub",
		URL:           "https://www.diariomunicipal.com.br/aam/",
		Field:         FieldEntityID,
		Value:         ValuePlaceholder,
		Placeholder:   "0", // real entity ids still undiscovered on the AAM portal
		Normalization: normalize.Strict,
		StateCode:     "AM",
	},
	"agm": {
		Name:          "agm",
		SpiderType:    "sigpub",
		URL:           "https://www.diariomunicipal.com.br/agm/",
		Field:         FieldEntityID,
		Value:         ValueSourceToken,
		Normalization: normalize.AccentFold,
		StateCode:     "GO",
	},
	"amm-mt": {
		Name:          "amm-mt",
		SpiderType:    "amm-mt",
		URL:           "https://amm.diariomunicipal.org/",
		Field:         FieldCityName,
		Value:         ValueUpperName,
		Normalization: normalize.Strict,
		StateCode:     "MT",
	},
	"diario-ba": {
		Name:          "diario-ba",
		SpiderType:    "diario-ba",
		URL:           "https://www.diariooficialba.com.br/",
		Field:         FieldCityName,
		Value:         ValueSourceToken,
		Normalization: normalize.Strict,
		StateCode:     "BA",
	},
	"dom-sc": {
		Name:          "dom-sc",
		SpiderType:    "dom-sc",
		URL:           "https://diariomunicipal.sc.gov.br/",
		Field:         FieldEntityName,
		Value:         ValueSourceText,
		Normalization: normalize.AccentFold,
		StateCode:     "SC",
	},
}

// fieldBySpiderType is derived from the built-in integrations and used by
// the validator to check addressing-field presence per spiderType.
var fieldBySpiderType = map[string]AddressingField{
	"sigpub":    FieldEntityID,
	"amm-mt":    FieldCityName,
	"diario-ba": FieldCityName,
	"dom-sc":    FieldEntityName,
}

// Builtin returns the built-in integrations sorted by name.
func Builtin() []Spec {
	specs := make([]Spec, 0, len(builtins))
	for _, spec := range builtins {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Lookup returns the built-in integration with the given name.
func Lookup(name string) (Spec, bool) {
	spec, ok := builtins[name]
	return spec, ok
}

// FieldForSpiderType returns the addressing field a spiderType is expected
// to carry.
func FieldForSpiderType(spiderType string) (AddressingField, bool) {
	field, ok := fieldBySpiderType[spiderType]
	return field, ok
}

// LoadFile reads publisher integrations from a YAML file. Each spec is
// validated before being returned.
func LoadFile(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var specs []Spec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	for i := range specs {
		if err := specs[i].Validate(); err != nil {
			return nil, err
		}
	}
	return specs, nil
}
