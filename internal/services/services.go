package services

import (
	"gorm.io/gorm"

	"imagenctl/internal/imagen"
	"imagenctl/internal/repositories"
)

// DbServices aggregates the domain services backed by the database.
type DbServices struct {
	Generations GenerationService
}

// NewDbServices constructs the service container using repositories backed by db.
// A nil db yields services without history recording.
func NewDbServices(db *gorm.DB, generator imagen.Generator) *DbServices {
	var generationRepo repositories.GenerationRepository
	if db != nil {
		generationRepo = repositories.NewGenerationRepository(db)
	}
	return &DbServices{
		Generations: NewGenerationService(generator, generationRepo),
	}
}
