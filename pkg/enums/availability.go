package enums

import "fmt"

// Availability describes the stock state surfaced for a medicine.
type Availability string

const (
	AvailabilityInStock    Availability = "in_stock"
	AvailabilityLowStock   Availability = "low_stock"
	AvailabilityOutOfStock Availability = "out_of_stock"
	AvailabilityUnknown    Availability = "unknown"
)

var validAvailabilities = []Availability{
	AvailabilityInStock,
	AvailabilityLowStock,
	AvailabilityOutOfStock,
	AvailabilityUnknown,
}

// IsValid reports whether the value matches the canonical availability enum.
func (a Availability) IsValid() bool {
	for _, candidate := range validAvailabilities {
		if candidate == a {
			return true
		}
	}
	return false
}

// String returns the wire value.
func (a Availability) String() string {
	return string(a)
}

// ParseAvailability converts the raw string to Availability.
func ParseAvailability(value string) (Availability, error) {
	for _, candidate := range validAvailabilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid availability %q", value)
}

const (
	// inStockThreshold is exclusive: a quantity must exceed it to count as in stock.
	inStockThreshold = 20
)

// AvailabilityForQuantity classifies a raw quantity against the shared
// stock thresholds. Quantity 21 is in stock, 20 and below (but above
// zero) is low stock, zero or negative is out of stock.
func AvailabilityForQuantity(quantity int) Availability {
	switch {
	case quantity > inStockThreshold:
		return AvailabilityInStock
	case quantity > 0:
		return AvailabilityLowStock
	default:
		return AvailabilityOutOfStock
	}
}
