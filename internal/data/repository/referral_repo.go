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

type ReferralRepository interface {
	Create(ctx context.Context, code *entity.ReferralCode) error
	// FindValidCode looks up an active, unexpired code by its normalized
	// value. Returns nil when the code is unknown or exhausted.
	FindValidCode(ctx context.Context, code string) (*entity.ReferralCode, error)
	IncrementUse(ctx context.Context, id uuid.UUID) error
}

type referralRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReferralRepository(db database.PgxIface, log *zap.Logger) ReferralRepository {
	return &referralRepository{
		db:  db,
		log: log.With(zap.String("repository", "referral")),
	}
}

func (r *referralRepository) Create(ctx context.Context, code *entity.ReferralCode) error {
	query := `
		INSERT INTO referral_codes (id, code, use_count, max_uses, expires_at, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		code.ID,
		code.Code,
		code.UseCount,
		code.MaxUses,
		code.ExpiresAt,
		code.IsActive,
		code.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create referral code",
			zap.Error(err),
			zap.String("code", code.Code),
		)
		return fmt.Errorf("create referral code %s: %w", code.Code, err)
	}

	return nil
}

func (r *referralRepository) FindValidCode(ctx context.Context, code string) (*entity.ReferralCode, error) {
	query := `
		SELECT id, code, use_count, max_uses, expires_at, is_active, created_at
		FROM referral_codes
		WHERE code = $1
		  AND is_active = true
		  AND (expires_at IS NULL OR expires_at > NOW())
		  AND (max_uses IS NULL OR use_count < max_uses)
	`

	var referral entity.ReferralCode
	err := r.db.QueryRow(ctx, query, code).Scan(
		&referral.ID,
		&referral.Code,
		&referral.UseCount,
		&referral.MaxUses,
		&referral.ExpiresAt,
		&referral.IsActive,
		&referral.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find referral code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find referral code %s: %w", code, err)
	}

	return &referral, nil
}

func (r *referralRepository) IncrementUse(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE referral_codes SET use_count = use_count + 1 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to increment referral use",
			zap.Error(err),
			zap.String("referral_id", id.String()),
		)
		return fmt.Errorf("increment referral %s use: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("referral code %s not found", id.String())
	}

	return nil
}
