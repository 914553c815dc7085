package repositories

import (
	"context"

	"gorm.io/gorm"

	"imagenctl/internal/models"
)

type GenerationRepository interface {
	Create(ctx context.Context, generation *models.Generation) error
	Recent(ctx context.Context, limit int) ([]models.Generation, error)
}

type generationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) Create(ctx context.Context, generation *models.Generation) error {
	return r.db.WithContext(ctx).Create(generation).Error
}

func (r *generationRepository) Recent(ctx context.Context, limit int) ([]models.Generation, error) {
	if limit <= 0 {
		limit = 10
	}
	var generations []models.Generation
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&generations).Error
	if err != nil {
		return nil, err
	}
	return generations, nil
}
