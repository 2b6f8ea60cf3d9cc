package medicines

import (
	"time"

	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
)

// InventoryItem mirrors the upstream per-pharmacy medicine record. The
// status field is derived locally from the quantity.
type InventoryItem struct {
	ID         string             `json:"id"`
	PharmacyID string             `json:"pharmacyId"`
	Name       string             `json:"name"`
	Quantity   int                `json:"quantity"`
	Price      string             `json:"price,omitempty"`
	Status     enums.Availability `json:"status"`
	UpdatedAt  time.Time          `json:"updatedAt,omitempty"`
}

// CreateRequest is the body for adding a medicine to a pharmacy's inventory.
type CreateRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=160"`
	Quantity   int    `json:"quantity" validate:"gte=0"`
	PharmacyID string `json:"pharmacyId" validate:"required"`
	Price      string `json:"price" validate:"omitempty,max=20"`
}

// UpdateRequest is the body for editing an inventory record's name or quantity.
type UpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=160"`
	Quantity *int    `json:"quantity" validate:"omitempty,gte=0"`
}
