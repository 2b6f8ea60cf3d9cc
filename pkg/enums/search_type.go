package enums

import "fmt"

// SearchType tags what kind of lookup a history entry recorded.
type SearchType string

const (
	SearchTypeMedicine SearchType = "medicine"
	SearchTypePharmacy SearchType = "pharmacy"
	SearchTypeLocation SearchType = "location"
)

var validSearchTypes = []SearchType{
	SearchTypeMedicine,
	SearchTypePharmacy,
	SearchTypeLocation,
}

// IsValid reports whether the value matches the canonical search type enum.
func (s SearchType) IsValid() bool {
	for _, candidate := range validSearchTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// String returns the wire value.
func (s SearchType) String() string {
	return string(s)
}

// ParseSearchType converts the raw string to SearchType.
func ParseSearchType(value string) (SearchType, error) {
	for _, candidate := range validSearchTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid search type %q", value)
}
