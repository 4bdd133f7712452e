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

type MembershipRepository interface {
	Create(ctx context.Context, membership *entity.Membership) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Membership, error)
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Membership, error)
}

type membershipRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMembershipRepository(db database.PgxIface, log *zap.Logger) MembershipRepository {
	return &membershipRepository{
		db:  db,
		log: log.With(zap.String("repository", "membership")),
	}
}

const membershipColumns = `id, user_id, plan_name, price, status, payment_method,
	transaction_id, starts_at, expires_at, created_at, updated_at`

func (r *membershipRepository) Create(ctx context.Context, membership *entity.Membership) error {
	query := `
		INSERT INTO memberships (` + membershipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		membership.ID,
		membership.UserID,
		membership.PlanName,
		membership.Price,
		membership.Status,
		membership.PaymentMethod,
		membership.TransactionID,
		membership.StartsAt,
		membership.ExpiresAt,
		membership.CreatedAt,
		membership.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create membership",
			zap.Error(err),
			zap.String("user_id", membership.UserID.String()),
		)
		return fmt.Errorf("create membership for user %s: %w", membership.UserID.String(), err)
	}

	return nil
}

func scanMembership(row pgx.Row) (*entity.Membership, error) {
	var membership entity.Membership
	err := row.Scan(
		&membership.ID,
		&membership.UserID,
		&membership.PlanName,
		&membership.Price,
		&membership.Status,
		&membership.PaymentMethod,
		&membership.TransactionID,
		&membership.StartsAt,
		&membership.ExpiresAt,
		&membership.CreatedAt,
		&membership.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *membershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE id = $1`

	membership, err := scanMembership(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find membership by ID",
			zap.Error(err),
			zap.String("membership_id", id.String()),
		)
		return nil, fmt.Errorf("find membership by ID %s: %w", id.String(), err)
	}

	return membership, nil
}

func (r *membershipRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE user_id = $1 AND status = 'active' AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`

	membership, err := scanMembership(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active membership",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find active membership for user %s: %w", userID.String(), err)
	}

	return membership, nil
}
