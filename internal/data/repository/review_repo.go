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

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindVisibleByServiceID(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountVisibleByServiceID(ctx context.Context, serviceID uuid.UUID) (int64, error)
	SetVisibility(ctx context.Context, id uuid.UUID, visible bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, service_id, user_id, rating, comment, is_visible, created_at, updated_at`

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.ServiceID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.IsVisible,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("service_id", review.ServiceID.String()),
			zap.String("user_id", review.UserID.String()),
		)
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.ServiceID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.IsVisible,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindVisibleByServiceID(ctx context.Context, serviceID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE service_id = $1 AND is_visible = true
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, serviceID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by service ID",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
		)
		return nil, fmt.Errorf("find reviews for service %s: %w", serviceID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

func (r *reviewRepository) CountVisibleByServiceID(ctx context.Context, serviceID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE service_id = $1 AND is_visible = true`

	var count int64
	err := r.db.QueryRow(ctx, query, serviceID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
		)
		return 0, fmt.Errorf("count reviews for service %s: %w", serviceID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) SetVisibility(ctx context.Context, id uuid.UUID, visible bool) error {
	query := `UPDATE reviews SET is_visible = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, visible)
	if err != nil {
		r.log.Error("Failed to set review visibility",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("set review %s visibility: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	return nil
}
