package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/pharmaseek/pharmaseek-backend/pkg/db/models"
)

// Repository loads the demonstration catalog.
type Repository interface {
	All(ctx context.Context) ([]models.Medicine, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) All(ctx context.Context) ([]models.Medicine, error) {
	var medicines []models.Medicine
	err := r.db.WithContext(ctx).
		Order("name asc").
		Find(&medicines).Error
	if err != nil {
		return nil, err
	}
	return medicines, nil
}
