package usecase

import (
	"context"
	"fmt"
	"time"

	"gezana/internal/data/entity"
	"gezana/internal/data/repository"
	"gezana/pkg/cache"
	"gezana/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes for service tests. Errors are injected through
// the fail* fields.

type fakeBookingRepo struct {
	bookings      map[uuid.UUID]*entity.Booking
	failCreate    error
	failPayment   error
	paymentCalls  int
	lastPaymentID uuid.UUID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.UserID != nil && *b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	list, _ := f.FindByUserID(ctx, userID, 0, 0)
	return int64(len(list)), nil
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) FindByProviderID(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) CountByProviderID(ctx context.Context, providerID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	if _, ok := f.bookings[booking.ID]; !ok {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}
	booking.Status = status
	return nil
}

func (f *fakeBookingRepo) UpdatePayment(ctx context.Context, bookingID uuid.UUID, status entity.PaymentStatus, transactionID string, paidAt *time.Time) error {
	f.paymentCalls++
	f.lastPaymentID = bookingID
	if f.failPayment != nil {
		return f.failPayment
	}
	booking, ok := f.bookings[bookingID]
	if !ok {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}
	booking.PaymentStatus = status
	booking.TransactionID = &transactionID
	booking.PaidAt = paidAt
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.bookings[id]; !ok {
		return fmt.Errorf("booking %s not found", id.String())
	}
	delete(f.bookings, id)
	return nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[uuid.UUID]*entity.Service{}}
}

func (f *fakeServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	service, ok := f.services[id]
	if !ok {
		return nil, nil
	}
	return service, nil
}

func (f *fakeServiceRepo) FindAvailable(ctx context.Context, category string, limit, offset int) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, s := range f.services {
		if s.IsAvailable && (category == "" || s.Category == category) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) CountAvailable(ctx context.Context, category string) (int64, error) {
	list, _ := f.FindAvailable(ctx, category, 0, 0)
	return int64(len(list)), nil
}

func (f *fakeServiceRepo) FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.Service, error) {
	var out []*entity.Service
	for _, s := range f.services {
		if s.ProviderID == providerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, service *entity.Service) error {
	f.services[service.ID] = service
	return nil
}

func (f *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.services, id)
	return nil
}

type fakeOfferRepo struct {
	active map[uuid.UUID]*entity.SpecialOffer // keyed by service ID
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{active: map[uuid.UUID]*entity.SpecialOffer{}}
}

func (f *fakeOfferRepo) Create(ctx context.Context, offer *entity.SpecialOffer) error {
	f.active[offer.ServiceID] = offer
	return nil
}

func (f *fakeOfferRepo) FindActiveByServiceID(ctx context.Context, serviceID uuid.UUID) (*entity.SpecialOffer, error) {
	offer, ok := f.active[serviceID]
	if !ok {
		return nil, nil
	}
	return offer, nil
}

func (f *fakeOfferRepo) FindByServiceID(ctx context.Context, serviceID uuid.UUID) ([]*entity.SpecialOffer, error) {
	offer, ok := f.active[serviceID]
	if !ok {
		return nil, nil
	}
	return []*entity.SpecialOffer{offer}, nil
}

func (f *fakeOfferRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	for serviceID, offer := range f.active {
		if offer.ID == id {
			delete(f.active, serviceID)
		}
	}
	return nil
}

type fakeReferralRepo struct {
	codes map[string]*entity.ReferralCode
	uses  map[uuid.UUID]int
}

func newFakeReferralRepo() *fakeReferralRepo {
	return &fakeReferralRepo{
		codes: map[string]*entity.ReferralCode{},
		uses:  map[uuid.UUID]int{},
	}
}

func (f *fakeReferralRepo) Create(ctx context.Context, code *entity.ReferralCode) error {
	f.codes[code.Code] = code
	return nil
}

func (f *fakeReferralRepo) FindValidCode(ctx context.Context, code string) (*entity.ReferralCode, error) {
	referral, ok := f.codes[code]
	if !ok || !referral.IsActive {
		return nil, nil
	}
	return referral, nil
}

func (f *fakeReferralRepo) IncrementUse(ctx context.Context, id uuid.UUID) error {
	f.uses[id]++
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	user, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id.String())
	}
	user.IsActive = false
	return nil
}

type fakeMembershipRepo struct {
	memberships map[uuid.UUID]*entity.Membership
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{memberships: map[uuid.UUID]*entity.Membership{}}
}

func (f *fakeMembershipRepo) Create(ctx context.Context, membership *entity.Membership) error {
	f.memberships[membership.ID] = membership
	return nil
}

func (f *fakeMembershipRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Membership, error) {
	membership, ok := f.memberships[id]
	if !ok {
		return nil, nil
	}
	return membership, nil
}

func (f *fakeMembershipRepo) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Membership, error) {
	for _, m := range f.memberships {
		if m.UserID == userID && m.Status == entity.MembershipActive {
			return m, nil
		}
	}
	return nil, nil
}

type noopSessionRepo struct{}

func (noopSessionRepo) Create(ctx context.Context, session *entity.Session) error { return nil }
func (noopSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	return nil, nil
}
func (noopSessionRepo) Revoke(ctx context.Context, token string) error { return nil }
func (noopSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return nil
}
func (noopSessionRepo) CleanExpiredSessions(ctx context.Context) error { return nil }

// testEnv bundles the fakes behind a wired service layer.
type testEnv struct {
	repo       *repository.Repository
	bookings   *fakeBookingRepo
	services   *fakeServiceRepo
	offers     *fakeOfferRepo
	referrals  *fakeReferralRepo
	users      *fakeUserRepo
	membership *fakeMembershipRepo
	profiles   cache.ProfileCache
	config     *utils.Config
	identity   IdentityService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		bookings:   newFakeBookingRepo(),
		services:   newFakeServiceRepo(),
		offers:     newFakeOfferRepo(),
		referrals:  newFakeReferralRepo(),
		users:      newFakeUserRepo(),
		membership: newFakeMembershipRepo(),
		profiles:   cache.NewMemoryProfileCache(time.Minute),
		config: &utils.Config{
			Booking: utils.BookingConfig{
				CreateTimeoutSeconds: 60,
				Currency:             "ETB",
			},
			Session: utils.SessionConfig{ExpiryHours: 24},
		},
	}

	env.repo = &repository.Repository{
		User:         env.users,
		Service:      env.services,
		Booking:      env.bookings,
		SpecialOffer: env.offers,
		Referral:     env.referrals,
		Membership:   env.membership,
	}
	env.identity = NewIdentityService(env.users, env.profiles, zap.NewNop())
	return env
}

func (env *testEnv) addService(price float64) *entity.Service {
	service := &entity.Service{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		ProviderID:  uuid.New(),
		Title:       "Deep Home Cleaning",
		Category:    "cleaning",
		Price:       price,
		PriceType:   entity.PriceTypeFixed,
		IsAvailable: true,
		Location:    "Addis Ababa",
	}
	env.services.services[service.ID] = service
	return service
}

func mustParse(id string) uuid.UUID {
	return uuid.MustParse(id)
}

func (env *testEnv) addUser(role entity.UserRole) *entity.User {
	phone := "0911223344"
	address := "Kazanchis, Addis Ababa"
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		FullName: "Sara Tesfaye",
		Email:    "sara@example.com",
		Phone:    &phone,
		Address:  &address,
		Role:     role,
		IsActive: true,
	}
	env.users.users[user.ID] = user
	return user
}
