// Package projecttype maps public project type spellings to internal keys and
// describes how each internal type is read from the backend API.
package projecttype

import (
	"encoding/json"
	"math"
	"strings"
)

const (
	// Canonical is the public spelling used in invitation URLs.
	Canonical = "savings-circle"
	// Tontine is the internal key for savings circles. It used to be public
	// and is still redirected to Canonical.
	Tontine = "tontine"
)

var publicToInternal = map[string]string{
	"savings-circle": Tontine,
	"savings_circle": Tontine,
}

// ToInternal converts a public project type to its internal key. Unmapped
// values are returned unchanged.
func ToInternal(publicType string) string {
	if internal, ok := publicToInternal[publicType]; ok {
		return internal
	}
	return publicType
}

// IsDeprecated reports whether publicType is the retired public spelling.
func IsDeprecated(publicType string) bool {
	return publicType == Tontine
}

// CanonicalPublic returns the spelling invitation URLs should use.
func CanonicalPublic(publicType string) string {
	if IsDeprecated(publicType) {
		return Canonical
	}
	return publicType
}

// Metadata is the project summary returned to the invitation page. Missing
// fields are encoded as JSON null.
type Metadata struct {
	Name    *string `json:"name"`
	Members *int    `json:"members"`
	Cycles  *int    `json:"cycles"`
}

// Mapper shapes raw backend fields into Metadata.
type Mapper func(raw map[string]any) Metadata

// Variant is one way of reading a project from the backend.
type Variant struct {
	// Path is appended to the API base URL, followed by "/{id}".
	Path string
	// Suffix is appended after the id, e.g. "/public".
	Suffix string
	Map    Mapper
}

// RecordPath returns the backend path for id, relative to the API base URL.
func (v Variant) RecordPath(escapedID string) string {
	return v.Path + "/" + escapedID + v.Suffix
}

// APIConfig describes how to read one internal project type.
type APIConfig struct {
	Authenticated Variant
	Public        *Variant
	UsePublic     bool
}

// Selected returns the variant to use for reads.
func (c APIConfig) Selected() Variant {
	if c.UsePublic && c.Public != nil {
		return *c.Public
	}
	return c.Authenticated
}

// Registry holds API configs keyed by internal project type.
type Registry map[string]APIConfig

// Lookup returns the config for an internal project type.
func (r Registry) Lookup(internalType string) (APIConfig, bool) {
	cfg, ok := r[internalType]
	return cfg, ok
}

// DefaultRegistry returns the supported project types. usePublic selects the
// public read variant where one exists.
func DefaultRegistry(usePublic bool) Registry {
	return Registry{
		Tontine: {
			Authenticated: Variant{
				Path: "/tontines",
				Map:  fieldMapper("name", "current_participants_count", "available_cycles"),
			},
			Public: &Variant{
				Path:   "/tontines",
				Suffix: "/public",
				Map:    fieldMapper("name", "members", "cycles"),
			},
			UsePublic: usePublic,
		},
	}
}

func fieldMapper(nameKey, membersKey, cyclesKey string) Mapper {
	return func(raw map[string]any) Metadata {
		return Metadata{
			Name:    stringField(raw, nameKey),
			Members: intField(raw, membersKey),
			Cycles:  intField(raw, cyclesKey),
		}
	}
}

func stringField(raw map[string]any, key string) *string {
	value, ok := raw[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

// intField keeps integers exact and nulls values that are fractional or do
// not fit in an int.
func intField(raw map[string]any, key string) *int {
	switch value := raw[key].(type) {
	case int:
		return &value
	case json.Number:
		if n, err := value.Int64(); err == nil {
			if n < math.MinInt || n > math.MaxInt {
				return nil
			}
			i := int(n)
			return &i
		}
		f, err := value.Float64()
		if err != nil {
			return nil
		}
		return intFromFloat(f)
	case float64:
		return intFromFloat(value)
	default:
		return nil
	}
}

func intFromFloat(f float64) *int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	if f < math.MinInt || f >= math.MaxInt {
		return nil
	}
	n := int(f)
	return &n
}
