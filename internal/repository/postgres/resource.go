package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ayursutra/clinic-api/internal/model"
	"github.com/ayursutra/clinic-api/internal/repository"
)

type resourceRepository struct {
	BaseRepository
}

func NewResourceRepository(db *sqlx.DB) repository.ResourceRepository {
	return &resourceRepository{BaseRepository: NewBaseRepository(db)}
}

const resourceColumns = `
	id, name, type, location, description, capacity,
	is_active, created_at, updated_at
`

func (r *resourceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`

	var resource model.Resource
	if err := r.db.GetContext(ctx, &resource, query, id); err != nil {
		return nil, translateError(err)
	}
	return &resource, nil
}

func (r *resourceRepository) ListActive(ctx context.Context) ([]*model.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE is_active = true
		ORDER BY name ASC
	`
	var resources []*model.Resource
	if err := r.db.SelectContext(ctx, &resources, query); err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}
