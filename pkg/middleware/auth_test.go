package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gezana/internal/data/entity"
	"gezana/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
	failErr  error
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.sessions[token], nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error { return nil }

func (f *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error { return nil }

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) Deactivate(ctx context.Context, id uuid.UUID) error { return nil }

type authFixture struct {
	sessions *fakeSessionRepo
	users    *fakeUserRepo
	token    string
	userID   uuid.UUID
}

func newAuthFixture(role entity.UserRole) *authFixture {
	token := uuid.New()
	userID := uuid.New()
	return &authFixture{
		sessions: &fakeSessionRepo{
			sessions: map[string]*entity.Session{
				token.String(): {
					UserID:    userID,
					Token:     token,
					ExpiresAt: time.Now().Add(time.Hour),
				},
			},
		},
		users: &fakeUserRepo{
			users: map[uuid.UUID]*entity.User{
				userID: {
					Base:     entity.Base{ID: userID},
					FullName: "Sara Tesfaye",
					Email:    "sara@example.com",
					Role:     role,
					IsActive: true,
				},
			},
		},
		token:  token.String(),
		userID: userID,
	}
}

// recorder captures the identity the middleware placed in the context.
type recorder struct {
	gotUser bool
	gotID   uuid.UUID
	gotRole string
}

func (rec *recorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
			rec.gotUser = true
			rec.gotID = id
			rec.gotRole, _ = utils.GetRoleFromContext(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthSession(t *testing.T) {
	t.Run("ValidTokenPasses", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleSeeker)
		var rec recorder

		handler := AuthSession(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		req.Header.Set("Authorization", "Bearer "+fx.token)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		require.True(t, rec.gotUser)
		assert.Equal(t, fx.userID, rec.gotID)
	})

	t.Run("ProviderRoleResolvedFromUser", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleProvider)
		var rec recorder

		handler := AuthSession(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodPatch, "/api/bookings/x/status", nil)
		req.Header.Set("Authorization", "Bearer "+fx.token)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		require.True(t, rec.gotUser)
		assert.Equal(t, string(entity.RoleProvider), rec.gotRole)
	})

	t.Run("AdminRoleResolvedFromUser", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleAdmin)
		var rec recorder

		handler := AuthSession(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodPatch, "/api/bookings/x/status", nil)
		req.Header.Set("Authorization", "Bearer "+fx.token)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, string(entity.RoleAdmin), rec.gotRole)
	})

	t.Run("MissingTokenRejected", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleSeeker)
		var rec recorder

		handler := AuthSession(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.False(t, rec.gotUser)
	})

	t.Run("UnknownTokenRejected", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleSeeker)
		var rec recorder

		handler := AuthSession(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		req.Header.Set("Authorization", "Bearer "+uuid.New().String())
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("DeactivatedUserRejected", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleSeeker)
		fx.users.users[fx.userID].IsActive = false
		var rec recorder

		handler := AuthSession(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		req.Header.Set("Authorization", "Bearer "+fx.token)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.False(t, rec.gotUser)
	})

	t.Run("LowercaseBearerAccepted", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleSeeker)
		var rec recorder

		handler := AuthSession(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		req.Header.Set("Authorization", "bearer "+fx.token)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		assert.True(t, rec.gotUser)
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("NoTokenProceedsAsGuest", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleSeeker)
		var rec recorder

		handler := OptionalAuth(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		assert.False(t, rec.gotUser)
	})

	t.Run("ValidTokenUpgrades", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleSeeker)
		var rec recorder

		handler := OptionalAuth(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+fx.token)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		require.True(t, rec.gotUser)
		assert.Equal(t, fx.userID, rec.gotID)
	})

	t.Run("ProviderRoleResolvedFromUser", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleProvider)
		var rec recorder

		handler := OptionalAuth(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodGet, "/api/bookings/x", nil)
		req.Header.Set("Authorization", "Bearer "+fx.token)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		require.True(t, rec.gotUser)
		assert.Equal(t, string(entity.RoleProvider), rec.gotRole)
	})

	t.Run("StaleTokenDegradesToGuest", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleSeeker)
		var rec recorder

		handler := OptionalAuth(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+uuid.New().String())
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		assert.False(t, rec.gotUser)
	})

	t.Run("DeactivatedUserDegradesToGuest", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleSeeker)
		fx.users.users[fx.userID].IsActive = false
		var rec recorder

		handler := OptionalAuth(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+fx.token)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		assert.False(t, rec.gotUser)
	})

	t.Run("StoreErrorDegradesToGuest", func(t *testing.T) {
		fx := newAuthFixture(entity.RoleSeeker)
		fx.sessions.failErr = errors.New("connection refused")
		var rec recorder

		handler := OptionalAuth(fx.sessions, fx.users, zap.NewNop())(rec.handler())
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
		req.Header.Set("Authorization", "Bearer "+fx.token)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		assert.False(t, rec.gotUser)
	})
}
