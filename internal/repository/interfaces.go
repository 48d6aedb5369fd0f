package repository

import (
	"ppeserver/internal/dto"
	"ppeserver/internal/models"
)

// AnalysisRepository defines the interface for analysis data operations.
type AnalysisRepository interface {
	// Create operations
	Insert(analysis *models.Analysis) error

	// Read operations
	GetByID(id string) (*models.Analysis, error)
	GetAll(filter *dto.AnalysisFilters) ([]models.Analysis, error)
	GetTotalCount(filter *dto.AnalysisFilters) (int, error)
	GetSites() ([]string, error)
	GetStats() (*models.AnalysisStats, error)

	// Delete operations
	Delete(id string) error
	DeleteAll() error
}

// DetectionRepository defines the interface for detection data operations.
type DetectionRepository interface {
	// Create operations
	InsertBatch(detections []models.Detection) error

	// Read operations
	GetByAnalysisID(analysisID string) ([]models.Detection, error)
	GetAllCategories() ([]string, error)

	// Delete operations
	DeleteByAnalysisID(analysisID string) error
}
