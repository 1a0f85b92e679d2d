package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RMahshie/basscalc/internal/repository"
	"github.com/RMahshie/basscalc/pkg/models"
	"github.com/google/uuid"
)

const schema = `
CREATE TABLE IF NOT EXISTS designs (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	input_values JSONB NOT NULL,
	precisions   JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS designs_created_at_idx ON designs (created_at DESC);`

// Migrate creates the tables the repository needs
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate designs: %w", err)
	}
	return nil
}

// PostgresDesignRepository implements DesignRepository for PostgreSQL
type PostgresDesignRepository struct {
	db *sql.DB
}

// NewPostgresDesignRepository creates a new PostgreSQL design repository
func NewPostgresDesignRepository(db *sql.DB) repository.DesignRepository {
	return &PostgresDesignRepository{db: db}
}

// Create inserts a new design record
func (r *PostgresDesignRepository) Create(ctx context.Context, design *models.Design) error {
	values, err := json.Marshal(design.Values)
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}
	precisions, err := json.Marshal(design.Precisions)
	if err != nil {
		return fmt.Errorf("failed to encode precisions: %w", err)
	}

	query := `
		INSERT INTO designs (id, name, description, input_values, precisions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		design.ID,
		design.Name,
		design.Description,
		string(values),
		string(precisions),
		design.CreatedAt)

	return err
}

// GetByID retrieves a design by ID
func (r *PostgresDesignRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	query := `
		SELECT id, name, description, input_values, precisions, created_at
		FROM designs
		WHERE id = $1`

	design, err := scanDesign(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrDesignNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return design, nil
}

// List retrieves every design, newest first
func (r *PostgresDesignRepository) List(ctx context.Context) ([]*models.Design, error) {
	query := `
		SELECT id, name, description, input_values, precisions, created_at
		FROM designs
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var designs []*models.Design
	for rows.Next() {
		design, err := scanDesign(rows)
		if err != nil {
			return nil, err
		}
		designs = append(designs, design)
	}

	return designs, rows.Err()
}

// Delete removes a design
func (r *PostgresDesignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM designs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", repository.ErrDesignNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDesign(row scanner) (*models.Design, error) {
	var design models.Design
	var values, precisions []byte

	err := row.Scan(
		&design.ID,
		&design.Name,
		&design.Description,
		&values,
		&precisions,
		&design.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(values, &design.Values); err != nil {
		return nil, fmt.Errorf("failed to decode values: %w", err)
	}
	if err := json.Unmarshal(precisions, &design.Precisions); err != nil {
		return nil, fmt.Errorf("failed to decode precisions: %w", err)
	}

	return &design, nil
}
