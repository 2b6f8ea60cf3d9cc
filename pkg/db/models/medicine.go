package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
)

// StringList persists a list of tokens as a JSON column so the catalog
// schema works on both the embedded and the Postgres driver.
type StringList []string

// Value marshals the list for storage.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes the stored JSON back into the list.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("string list: unsupported scan type %T", value)
	}
	result := StringList{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*l = result
	return nil
}

// Medicine is one entry of the demonstration catalog that backs live
// suggestions and the client-side filter pipeline.
type Medicine struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name          string             `gorm:"column:name;not null"`
	GenericName   *string            `gorm:"column:generic_name"`
	DosageForm    string             `gorm:"column:dosage_form;not null"`
	Strength      string             `gorm:"column:strength;not null"`
	Strengths     StringList         `gorm:"column:strengths;type:text;not null"`
	Manufacturer  string             `gorm:"column:manufacturer;not null"`
	Category      string             `gorm:"column:category;not null"`
	Price         decimal.Decimal    `gorm:"column:price;type:numeric(10,2);not null"`
	OriginalPrice *decimal.Decimal   `gorm:"column:original_price;type:numeric(10,2)"`
	Availability  enums.Availability `gorm:"column:availability;not null;default:unknown"`
	Rating        float64            `gorm:"column:rating;not null;default:0"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the catalog table name.
func (Medicine) TableName() string {
	return "catalog_medicines"
}

// IsGeneric reports whether the display name matches the generic name,
// or the medicine carries no generic name at all.
func (m Medicine) IsGeneric() bool {
	if m.GenericName == nil || *m.GenericName == "" {
		return true
	}
	return m.Name == *m.GenericName
}
