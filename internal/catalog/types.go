package catalog

import (
	"encoding/json"
	"fmt"
)

// Dataset keys. Matching is exact: "pattern name" is an unknown key.
const (
	keyPatternName  = "Pattern Name"
	keyManufacturer = "Manufacturer"
	keyColorway     = "Colorway"
	keyFabricType   = "Fabric Type"
)

// Fabric is a single record from the fabric dataset. Every field is optional;
// a nil field means the key was missing (or null) in the source payload.
type Fabric struct {
	PatternName  *string `json:"Pattern Name"`
	Manufacturer *string `json:"Manufacturer"`
	Colorway     *string `json:"Colorway"`
	FabricType   *string `json:"Fabric Type"`
}

// UnmarshalJSON reads only the four dataset keys, compared case-sensitively,
// unlike encoding/json's struct tag matching. Other keys are ignored.
func (f *Fabric) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Fabric{}
	fields := []struct {
		key string
		dst **string
	}{
		{keyPatternName, &out.PatternName},
		{keyManufacturer, &out.Manufacturer},
		{keyColorway, &out.Colorway},
		{keyFabricType, &out.FabricType},
	}
	for _, field := range fields {
		value, ok := raw[field.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, field.dst); err != nil {
			return fmt.Errorf("field %q: %w", field.key, err)
		}
	}
	*f = out
	return nil
}

// Pattern returns the pattern name, or "" when absent.
func (f Fabric) Pattern() string { return deref(f.PatternName) }

// Maker returns the manufacturer, or "" when absent.
func (f Fabric) Maker() string { return deref(f.Manufacturer) }

// Color returns the colorway, or "" when absent.
func (f Fabric) Color() string { return deref(f.Colorway) }

// Type returns the fabric type, or "" when absent.
func (f Fabric) Type() string { return deref(f.FabricType) }

// Result is the outcome of an asynchronous load. Exactly one of Catalog and
// Err is set.
type Result struct {
	Catalog *Catalog
	Err     error
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
