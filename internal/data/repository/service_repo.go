package repository

import (
	"context"
	"fmt"

	"gezana/internal/data/entity"
	"gezana/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindAvailable(ctx context.Context, category string, limit, offset int) ([]*entity.Service, error)
	CountAvailable(ctx context.Context, category string) (int64, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `id, provider_id, title, description, category, subcategory,
	price, price_type, photos, is_available, location, created_at, updated_at`

func (r *serviceRepository) Create(ctx context.Context, service *entity.Service) error {
	query := `
		INSERT INTO services (` + serviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		service.ID,
		service.ProviderID,
		service.Title,
		service.Description,
		service.Category,
		service.Subcategory,
		service.Price,
		service.PriceType,
		service.Photos,
		service.IsAvailable,
		service.Location,
		service.CreatedAt,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("title", service.Title),
			zap.String("provider_id", service.ProviderID.String()),
		)
		return fmt.Errorf("create service %s: %w", service.Title, err)
	}

	return nil
}

func scanService(row pgx.Row) (*entity.Service, error) {
	var service entity.Service
	err := row.Scan(
		&service.ID,
		&service.ProviderID,
		&service.Title,
		&service.Description,
		&service.Category,
		&service.Subcategory,
		&service.Price,
		&service.PriceType,
		&service.Photos,
		&service.IsAvailable,
		&service.Location,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1 AND deleted_at IS NULL`

	service, err := scanService(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return service, nil
}

func (r *serviceRepository) FindAvailable(ctx context.Context, category string, limit, offset int) ([]*entity.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE is_available = true AND deleted_at IS NULL
		  AND ($1 = '' OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, category, limit, offset)
	if err != nil {
		r.log.Error("Failed to find available services",
			zap.Error(err),
			zap.String("category", category),
		)
		return nil, fmt.Errorf("find available services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}

	return services, nil
}

func (r *serviceRepository) CountAvailable(ctx context.Context, category string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM services
		WHERE is_available = true AND deleted_at IS NULL
		  AND ($1 = '' OR category = $1)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, category).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count available services", zap.Error(err))
		return 0, fmt.Errorf("count available services: %w", err)
	}

	return count, nil
}

func (r *serviceRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE provider_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, providerID)
	if err != nil {
		r.log.Error("Failed to find services by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("find services by provider ID %s: %w", providerID.String(), err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, service)
	}

	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.Service) error {
	query := `
		UPDATE services
		SET title = $2, description = $3, category = $4, subcategory = $5,
		    price = $6, price_type = $7, photos = $8, is_available = $9,
		    location = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		service.ID,
		service.Title,
		service.Description,
		service.Category,
		service.Subcategory,
		service.Price,
		service.PriceType,
		service.Photos,
		service.IsAvailable,
		service.Location,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update service",
			zap.Error(err),
			zap.String("service_id", service.ID.String()),
		)
		return fmt.Errorf("update service %s: %w", service.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", service.ID.String())
	}

	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Soft delete: bookings keep referencing the row for history.
	query := `UPDATE services SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete service",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return fmt.Errorf("delete service %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", id.String())
	}

	r.log.Info("Service deleted", zap.String("service_id", id.String()))
	return nil
}
