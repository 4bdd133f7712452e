package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"gezana/internal/data/entity"
	"gezana/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInvoiceServiceForTest(env *testEnv) InvoiceService {
	return NewInvoiceService(env.repo, env.identity, env.config, zap.NewNop())
}

func TestInvoiceForBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("NumberDerivedFromBookingID", func(t *testing.T) {
		env := newTestEnv()
		svc := newInvoiceServiceForTest(env)
		booking := addBooking(env, entity.PaymentMethodCash)

		invoice, err := svc.ForBooking(ctx, booking.ID.String(), nil, "")
		require.NoError(t, err)

		hex := strings.ToUpper(strings.ReplaceAll(booking.ID.String(), "-", "")[:8])
		assert.Equal(t, "INV-BKG-"+hex, invoice.InvoiceNumber)
	})

	t.Run("Idempotent", func(t *testing.T) {
		env := newTestEnv()
		svc := newInvoiceServiceForTest(env)
		booking := addBooking(env, entity.PaymentMethodCash)

		first, err := svc.ForBooking(ctx, booking.ID.String(), nil, "")
		require.NoError(t, err)
		second, err := svc.ForBooking(ctx, booking.ID.String(), nil, "")
		require.NoError(t, err)

		assert.Equal(t, first.InvoiceNumber, second.InvoiceNumber)
		assert.Equal(t, first.Amount, second.Amount)
		assert.Equal(t, first.Customer, second.Customer)
	})

	t.Run("SubtotalEqualsTotalNoTax", func(t *testing.T) {
		env := newTestEnv()
		svc := newInvoiceServiceForTest(env)
		booking := addBooking(env, entity.PaymentMethodCash)
		booking.Amount = 800

		invoice, err := svc.ForBooking(ctx, booking.ID.String(), nil, "")
		require.NoError(t, err)

		assert.InDelta(t, 800.0, invoice.Amount.Subtotal, 0.001)
		assert.InDelta(t, 800.0, invoice.Amount.Total, 0.001)
		assert.Equal(t, 0.0, invoice.Amount.Tax)
		assert.Equal(t, "ETB", invoice.Amount.Currency)
	})

	t.Run("GuestContactSnapshotUsed", func(t *testing.T) {
		env := newTestEnv()
		svc := newInvoiceServiceForTest(env)
		booking := addBooking(env, entity.PaymentMethodCash)

		invoice, err := svc.ForBooking(ctx, booking.ID.String(), nil, "")
		require.NoError(t, err)

		assert.Equal(t, "Hana Girma", invoice.Customer.FullName)
		assert.Equal(t, "hana@example.com", invoice.Customer.Email)
	})

	t.Run("RegisteredUserProfileUsed", func(t *testing.T) {
		env := newTestEnv()
		svc := newInvoiceServiceForTest(env)
		user := env.addUser(entity.RoleSeeker)
		booking := addBooking(env, entity.PaymentMethodCash)
		booking.UserID = &user.ID
		booking.Guest = nil

		invoice, err := svc.ForBooking(ctx, booking.ID.String(), &user.ID, "seeker")
		require.NoError(t, err)

		assert.Equal(t, user.FullName, invoice.Customer.FullName)
		assert.Equal(t, user.Email, invoice.Customer.Email)
	})

	t.Run("MissingServiceYieldsPlaceholders", func(t *testing.T) {
		env := newTestEnv()
		svc := newInvoiceServiceForTest(env)
		booking := addBooking(env, entity.PaymentMethodCash)

		invoice, err := svc.ForBooking(ctx, booking.ID.String(), nil, "")
		require.NoError(t, err)

		assert.Equal(t, "N/A", invoice.Service.Name)
		assert.Equal(t, "N/A", invoice.Service.ProviderName)
	})

	t.Run("ServiceAndProviderDecorated", func(t *testing.T) {
		env := newTestEnv()
		svc := newInvoiceServiceForTest(env)
		service := env.addService(1000)
		provider := env.addUser(entity.RoleProvider)
		service.ProviderID = provider.ID

		booking := addBooking(env, entity.PaymentMethodCash)
		booking.ServiceID = service.ID

		invoice, err := svc.ForBooking(ctx, booking.ID.String(), nil, "")
		require.NoError(t, err)

		assert.Equal(t, service.Title, invoice.Service.Name)
		assert.Equal(t, provider.FullName, invoice.Service.ProviderName)
		assert.Equal(t, service.Location, invoice.Service.Location)
	})

	t.Run("PaymentBlockReflectsBooking", func(t *testing.T) {
		env := newTestEnv()
		svc := newInvoiceServiceForTest(env)
		booking := addBooking(env, entity.PaymentMethodOnline)
		txn := "TXN-1700000000000-000001"
		paidAt := time.Now()
		booking.PaymentStatus = entity.PaymentStatusPaid
		booking.TransactionID = &txn
		booking.PaidAt = &paidAt

		invoice, err := svc.ForBooking(ctx, booking.ID.String(), nil, "")
		require.NoError(t, err)

		assert.Equal(t, "paid", invoice.Payment.Status)
		assert.Equal(t, "online", invoice.Payment.Method)
		assert.Equal(t, txn, invoice.Payment.TransactionID)
		assert.NotNil(t, invoice.Payment.PaidAt)
	})

	t.Run("CashPaidAtStampedAtDerivation", func(t *testing.T) {
		env := newTestEnv()
		svc := NewInvoiceService(env.repo, env.identity, env.config, zap.NewNop()).(*invoiceService)
		derivedAt := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
		svc.now = func() time.Time { return derivedAt }

		booking := addBooking(env, entity.PaymentMethodCash)
		require.Nil(t, booking.PaidAt)

		invoice, err := svc.ForBooking(ctx, booking.ID.String(), nil, "")
		require.NoError(t, err)

		require.NotNil(t, invoice.Payment.PaidAt)
		assert.Equal(t, derivedAt, *invoice.Payment.PaidAt)
		// The stamp is presentation-only; the booking record stays unpaid.
		assert.Nil(t, env.bookings.bookings[booking.ID].PaidAt)
	})

	t.Run("OnlinePaidAtKeepsConfirmationTime", func(t *testing.T) {
		env := newTestEnv()
		svc := NewInvoiceService(env.repo, env.identity, env.config, zap.NewNop()).(*invoiceService)
		svc.now = func() time.Time { return time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC) }

		booking := addBooking(env, entity.PaymentMethodOnline)
		confirmedAt := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
		booking.PaymentStatus = entity.PaymentStatusPaid
		booking.PaidAt = &confirmedAt

		invoice, err := svc.ForBooking(ctx, booking.ID.String(), nil, "")
		require.NoError(t, err)

		require.NotNil(t, invoice.Payment.PaidAt)
		assert.Equal(t, confirmedAt, *invoice.Payment.PaidAt)
	})

	t.Run("StrangerForbiddenOnUserBooking", func(t *testing.T) {
		env := newTestEnv()
		svc := newInvoiceServiceForTest(env)
		user := env.addUser(entity.RoleSeeker)
		booking := addBooking(env, entity.PaymentMethodCash)
		booking.UserID = &user.ID
		booking.Guest = nil

		stranger := uuid.New()
		_, err := svc.ForBooking(ctx, booking.ID.String(), &stranger, "seeker")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unauthorized")
	})

	t.Run("RenderTextContainsAllSections", func(t *testing.T) {
		env := newTestEnv()
		svc := newInvoiceServiceForTest(env)
		booking := addBooking(env, entity.PaymentMethodCash)

		invoice, err := svc.ForBooking(ctx, booking.ID.String(), nil, "")
		require.NoError(t, err)

		text := invoice.RenderText()
		for _, section := range []string{"INVOICE", "CUSTOMER", "SERVICE", "AMOUNT", "PAYMENT"} {
			assert.Contains(t, text, section)
		}
		assert.Contains(t, text, invoice.InvoiceNumber)
		assert.Equal(t, "invoice-"+invoice.InvoiceNumber+".txt", invoice.FileName())
	})
}

func TestInvoiceForMembership(t *testing.T) {
	ctx := context.Background()

	setup := func() (*testEnv, InvoiceService, *entity.Membership, *entity.User) {
		env := newTestEnv()
		svc := newInvoiceServiceForTest(env)
		user := env.addUser(entity.RoleSeeker)

		membershipSvc := NewMembershipService(env.repo, zap.NewNop())
		resp, err := membershipSvc.Purchase(ctx, user.ID, &request.PurchaseMembershipRequest{
			PlanName:      "premium",
			PaymentMethod: "online",
		})
		if err != nil {
			panic(err)
		}
		membership := env.membership.memberships[mustParse(resp.ID)]
		return env, svc, membership, user
	}

	t.Run("OwnerGetsInvoice", func(t *testing.T) {
		_, svc, membership, user := setup()

		invoice, err := svc.ForMembership(ctx, membership.ID.String(), user.ID, "seeker")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-MEM-"))
		assert.Equal(t, "premium", invoice.Service.Name)
		assert.InDelta(t, 1200.0, invoice.Amount.Total, 0.001)
		assert.Equal(t, "paid", invoice.Payment.Status)
		assert.Equal(t, user.FullName, invoice.Customer.FullName)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		_, svc, membership, _ := setup()

		_, err := svc.ForMembership(ctx, membership.ID.String(), uuid.New(), "seeker")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unauthorized")
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		_, svc, membership, _ := setup()

		invoice, err := svc.ForMembership(ctx, membership.ID.String(), uuid.New(), "admin")
		require.NoError(t, err)
		assert.NotEmpty(t, invoice.InvoiceNumber)
	})
}
