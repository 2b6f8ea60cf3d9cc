package search

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmaseek/pharmaseek-backend/internal/history"
	"github.com/pharmaseek/pharmaseek-backend/internal/pharmacies"
	"github.com/pharmaseek/pharmaseek-backend/pkg/db/models"
	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
)

// MedicineResult is the wire rendering of one catalog medicine.
type MedicineResult struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	GenericName   *string            `json:"genericName,omitempty"`
	DosageForm    string             `json:"dosageForm"`
	Strength      string             `json:"strength"`
	Strengths     []string           `json:"strengths"`
	Manufacturer  string             `json:"manufacturer"`
	Category      string             `json:"category"`
	Price         decimal.Decimal    `json:"price"`
	OriginalPrice *decimal.Decimal   `json:"originalPrice,omitempty"`
	Availability  enums.Availability `json:"availability"`
	Rating        float64            `json:"rating"`
}

// Result is a committed search response: the filtered medicines, the
// pharmacies stocking the queried medicine, and the recorded history entry.
type Result struct {
	Medicines  []MedicineResult           `json:"medicines"`
	Pharmacies []pharmacies.Pharmacy      `json:"pharmacies"`
	History    *history.SearchHistoryItem `json:"history,omitempty"`
}

func toResult(m models.Medicine) MedicineResult {
	return MedicineResult{
		ID:            m.ID,
		Name:          m.Name,
		GenericName:   m.GenericName,
		DosageForm:    m.DosageForm,
		Strength:      m.Strength,
		Strengths:     m.Strengths,
		Manufacturer:  m.Manufacturer,
		Category:      m.Category,
		Price:         m.Price,
		OriginalPrice: m.OriginalPrice,
		Availability:  m.Availability,
		Rating:        m.Rating,
	}
}
