package enums

import "fmt"

// BrandMode is the brand-vs-generic filter dimension. Brand excludes
// medicines whose display name equals their generic name; generic keeps
// only those that match (or carry no generic name at all).
type BrandMode string

const (
	BrandModeBoth    BrandMode = "both"
	BrandModeBrand   BrandMode = "brand"
	BrandModeGeneric BrandMode = "generic"
)

var validBrandModes = []BrandMode{
	BrandModeBoth,
	BrandModeBrand,
	BrandModeGeneric,
}

// IsValid reports whether the value matches the canonical brand mode enum.
func (m BrandMode) IsValid() bool {
	for _, candidate := range validBrandModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// String returns the wire value.
func (m BrandMode) String() string {
	return string(m)
}

// ParseBrandMode converts the raw string to BrandMode. Empty input
// defaults to both.
func ParseBrandMode(value string) (BrandMode, error) {
	if value == "" {
		return BrandModeBoth, nil
	}
	for _, candidate := range validBrandModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid brand mode %q", value)
}
