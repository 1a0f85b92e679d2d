package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/basscalc/pkg/models"
	"github.com/google/uuid"
)

// ErrDesignNotFound is returned when no design exists for an ID
var ErrDesignNotFound = errors.New("design not found")

// DesignRepository defines the interface for design data operations
type DesignRepository interface {
	Create(ctx context.Context, design *models.Design) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Design, error)
	List(ctx context.Context) ([]*models.Design, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
