package pharmacies

import (
	"github.com/pharmaseek/pharmaseek-backend/pkg/types"
)

// Pharmacy mirrors the upstream pharmacy record, with open_now computed
// locally at request time.
type Pharmacy struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Phone     string          `json:"phone,omitempty"`
	Email     string          `json:"email,omitempty"`
	Rating    float64         `json:"rating,omitempty"`
	OpenHours types.OpenHours `json:"openHours,omitempty"`
	OpenNow   bool            `json:"open_now"`
}

// CreateRequest is the body for registering a new pharmacy upstream.
type CreateRequest struct {
	Name      string          `json:"name" validate:"required,min=2,max=120"`
	Address   string          `json:"address" validate:"required,min=5,max=240"`
	Phone     string          `json:"phone" validate:"omitempty,max=32"`
	Email     string          `json:"email" validate:"omitempty,email"`
	OpenHours types.OpenHours `json:"openHours" validate:"omitempty"`
}

// UpdateRequest is the body for updating a pharmacy record upstream.
type UpdateRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Address   *string          `json:"address" validate:"omitempty,min=5,max=240"`
	Phone     *string          `json:"phone" validate:"omitempty,max=32"`
	Email     *string          `json:"email" validate:"omitempty,email"`
	OpenHours *types.OpenHours `json:"openHours" validate:"omitempty"`
}
