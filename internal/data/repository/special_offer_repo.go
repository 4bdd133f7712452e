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

type SpecialOfferRepository interface {
	Create(ctx context.Context, offer *entity.SpecialOffer) error
	// FindActiveByServiceID returns the offer currently in effect for a
	// service, or nil when the service has none.
	FindActiveByServiceID(ctx context.Context, serviceID uuid.UUID) (*entity.SpecialOffer, error)
	FindByServiceID(ctx context.Context, serviceID uuid.UUID) ([]*entity.SpecialOffer, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type specialOfferRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSpecialOfferRepository(db database.PgxIface, log *zap.Logger) SpecialOfferRepository {
	return &specialOfferRepository{
		db:  db,
		log: log.With(zap.String("repository", "special_offer")),
	}
}

const offerColumns = `id, service_id, discount_type, value, starts_at, ends_at, is_active, created_at, updated_at`

func (r *specialOfferRepository) Create(ctx context.Context, offer *entity.SpecialOffer) error {
	query := `
		INSERT INTO special_offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		offer.ID,
		offer.ServiceID,
		offer.DiscountType,
		offer.Value,
		offer.StartsAt,
		offer.EndsAt,
		offer.IsActive,
		offer.CreatedAt,
		offer.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create special offer",
			zap.Error(err),
			zap.String("service_id", offer.ServiceID.String()),
		)
		return fmt.Errorf("create special offer: %w", err)
	}

	return nil
}

func scanOffer(row pgx.Row) (*entity.SpecialOffer, error) {
	var offer entity.SpecialOffer
	err := row.Scan(
		&offer.ID,
		&offer.ServiceID,
		&offer.DiscountType,
		&offer.Value,
		&offer.StartsAt,
		&offer.EndsAt,
		&offer.IsActive,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *specialOfferRepository) FindActiveByServiceID(ctx context.Context, serviceID uuid.UUID) (*entity.SpecialOffer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM special_offers
		WHERE service_id = $1
		  AND is_active = true
		  AND starts_at <= NOW()
		  AND ends_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	offer, err := scanOffer(r.db.QueryRow(ctx, query, serviceID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active offer",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
		)
		return nil, fmt.Errorf("find active offer for service %s: %w", serviceID.String(), err)
	}

	return offer, nil
}

func (r *specialOfferRepository) FindByServiceID(ctx context.Context, serviceID uuid.UUID) ([]*entity.SpecialOffer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM special_offers
		WHERE service_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, serviceID)
	if err != nil {
		r.log.Error("Failed to find offers by service ID",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
		)
		return nil, fmt.Errorf("find offers for service %s: %w", serviceID.String(), err)
	}
	defer rows.Close()

	var offers []*entity.SpecialOffer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			r.log.Error("Failed to scan offer row", zap.Error(err))
			return nil, fmt.Errorf("scan offer row: %w", err)
		}
		offers = append(offers, offer)
	}

	return offers, nil
}

func (r *specialOfferRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE special_offers SET is_active = false, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate offer",
			zap.Error(err),
			zap.String("offer_id", id.String()),
		)
		return fmt.Errorf("deactivate offer %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("offer %s not found", id.String())
	}

	return nil
}
