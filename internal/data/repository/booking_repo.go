package repository

import (
	"context"
	"fmt"
	"time"

	"gezana/internal/data/entity"
	"gezana/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	Count(ctx context.Context) (int64, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	UpdatePayment(ctx context.Context, bookingID uuid.UUID, status entity.PaymentStatus, transactionID string, paidAt *time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, order_id, service_id, user_id,
	guest_full_name, guest_email, guest_phone, guest_address,
	scheduled_at, note, status, payment_method, payment_status,
	referral_code, amount, transaction_id, paid_at, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	var guestName, guestEmail, guestPhone, guestAddress *string
	if booking.Guest != nil {
		guestName = &booking.Guest.FullName
		guestEmail = &booking.Guest.Email
		guestPhone = &booking.Guest.Phone
		guestAddress = &booking.Guest.Address
	}

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.OrderID,
		booking.ServiceID,
		booking.UserID,
		guestName,
		guestEmail,
		guestPhone,
		guestAddress,
		booking.ScheduledAt,
		booking.Note,
		booking.Status,
		booking.PaymentMethod,
		booking.PaymentStatus,
		booking.ReferralCode,
		booking.Amount,
		booking.TransactionID,
		booking.PaidAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("service_id", booking.ServiceID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.OrderID, err)
	}

	return nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	var guestName, guestEmail, guestPhone, guestAddress *string

	err := row.Scan(
		&booking.ID,
		&booking.OrderID,
		&booking.ServiceID,
		&booking.UserID,
		&guestName,
		&guestEmail,
		&guestPhone,
		&guestAddress,
		&booking.ScheduledAt,
		&booking.Note,
		&booking.Status,
		&booking.PaymentMethod,
		&booking.PaymentStatus,
		&booking.ReferralCode,
		&booking.Amount,
		&booking.TransactionID,
		&booking.PaidAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if booking.UserID == nil && guestName != nil {
		booking.Guest = &entity.GuestInfo{
			FullName: *guestName,
			Email:    derefOrEmpty(guestEmail),
			Phone:    derefOrEmpty(guestPhone),
			Address:  derefOrEmpty(guestAddress),
		}
	}

	return &booking, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.queryBookings(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	bookings, err := r.queryBookings(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all bookings", zap.Error(err))
		return nil, fmt.Errorf("find all bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT b.` + providerJoinColumns() + `
		FROM bookings b
		INNER JOIN services s ON b.service_id = s.id
		WHERE s.provider_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.queryBookings(ctx, query, providerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return nil, fmt.Errorf("find bookings by provider ID %s: %w", providerID.String(), err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		INNER JOIN services s ON b.service_id = s.id
		WHERE s.provider_id = $1
	`

	var count int64
	err := r.db.QueryRow(ctx, query, providerID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by provider ID",
			zap.Error(err),
			zap.String("provider_id", providerID.String()),
		)
		return 0, fmt.Errorf("count bookings by provider ID %s: %w", providerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET scheduled_at = $2, note = $3, status = $4, referral_code = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ScheduledAt,
		booking.Note,
		booking.Status,
		booking.ReferralCode,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) UpdatePayment(ctx context.Context, bookingID uuid.UUID, status entity.PaymentStatus, transactionID string, paidAt *time.Time) error {
	query := `
		UPDATE bookings
		SET payment_status = $2, transaction_id = $3, paid_at = $4, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, bookingID, status, transactionID, paidAt)
	if err != nil {
		r.log.Error("Failed to update booking payment",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_status", string(status)),
		)
		return fmt.Errorf("update booking %s payment to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

// providerJoinColumns prefixes the shared column list for the aliased join
// query.
func providerJoinColumns() string {
	return `id, b.order_id, b.service_id, b.user_id,
	b.guest_full_name, b.guest_email, b.guest_phone, b.guest_address,
	b.scheduled_at, b.note, b.status, b.payment_method, b.payment_status,
	b.referral_code, b.amount, b.transaction_id, b.paid_at, b.created_at, b.updated_at`
}
