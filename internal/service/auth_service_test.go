package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
	"github.com/hanzong05/kitapos-middleware/internal/config"
	"github.com/hanzong05/kitapos-middleware/internal/domain"
	"github.com/hanzong05/kitapos-middleware/internal/events"
	"github.com/hanzong05/kitapos-middleware/internal/service"
	apperrors "github.com/hanzong05/kitapos-middleware/pkg/util"
)

// fakeUserRepository keeps accounts in memory and mirrors the repository
// contract of reporting misses as pgx.ErrNoRows.
type fakeUserRepository struct {
	seq   int
	users map[string]*domain.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user *domain.User) error {
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepository) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepository) List(_ context.Context, _, _ int) ([]domain.User, error) {
	var out []domain.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepository()
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventUserRegistered, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	svc := service.NewAuthService(testAuthConfig(), repo, dispatcher)

	user, token, exp, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "New Cashier",
		Email:    "new@techcorp.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleCashier, user.Role, "role defaults to cashier")
	assert.Nil(t, user.CompanyID, "registration grants no affiliation")
	assert.Nil(t, user.StoreID)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, verr := svc.TokenManager().Verify(token)
	require.Nil(t, verr)
	assert.Equal(t, user.ID, claims.Subject)

	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.UserRegisteredPayload)
	require.True(t, ok)
	assert.Equal(t, user.ID, payload.UserID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	svc := service.NewAuthService(testAuthConfig(), repo, nil)

	_, _, _, err := svc.Register(context.Background(), service.RegisterInput{
		Name: "First", Email: "dup@techcorp.com", Password: "password123",
	})
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), service.RegisterInput{
		Name: "Second", Email: "dup@techcorp.com", Password: "password456",
	})
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "USER_EXISTS", de.Code)
	assert.Equal(t, 409, de.HTTPStatus)
}

func TestAuthService_Register_RoleRestricted(t *testing.T) {
	repo := newFakeUserRepository()
	svc := service.NewAuthService(testAuthConfig(), repo, nil)

	// Privileged roles cannot be claimed through open registration.
	for _, role := range []domain.Role{domain.RoleSuperAdmin, domain.RoleManager} {
		_, _, _, err := svc.Register(context.Background(), service.RegisterInput{
			Name: "Climber", Email: "climber@techcorp.com", Password: "password123", Role: role,
		})
		require.Error(t, err, "role %s", role)
		de := apperrors.ToDomainError(err)
		assert.Equal(t, "INVALID_ROLE", de.Code)
		assert.Equal(t, 400, de.HTTPStatus)
	}
	assert.Empty(t, repo.users, "no account created")

	user, _, _, err := svc.Register(context.Background(), service.RegisterInput{
		Name: "Staff", Email: "staff@techcorp.com", Password: "password123", Role: domain.RoleStaff,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, user.Role)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepository()
	svc := service.NewAuthService(testAuthConfig(), repo, nil)

	hash, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &domain.User{
		Name: "Manager", Email: "manager@techcorp.com", PasswordHash: hash, Role: domain.RoleManager,
	}))

	user, token, _, err := svc.Login(context.Background(), "manager@techcorp.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, user.Role)

	claims, verr := svc.TokenManager().Verify(token)
	require.Nil(t, verr)
	assert.Equal(t, domain.RoleManager, claims.Role)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepository()
	svc := service.NewAuthService(testAuthConfig(), repo, nil)

	_, _, _, err := svc.Register(context.Background(), service.RegisterInput{
		Name: "User", Email: "known@techcorp.com", Password: "password123",
	})
	require.NoError(t, err)

	// Unknown email and wrong password report the same failure.
	_, _, _, unknownErr := svc.Login(context.Background(), "nobody@techcorp.com", "password123")
	_, _, _, wrongErr := svc.Login(context.Background(), "known@techcorp.com", "wrong-password")

	for _, err := range []error{unknownErr, wrongErr} {
		require.Error(t, err)
		de := apperrors.ToDomainError(err)
		assert.Equal(t, "INVALID_CREDENTIALS", de.Code)
		assert.Equal(t, 401, de.HTTPStatus)
		assert.Equal(t, "invalid email or password", de.Message)
	}
}

func TestAuthService_Logout_AlwaysSucceeds(t *testing.T) {
	svc := service.NewAuthService(testAuthConfig(), newFakeUserRepository(), nil)

	identity := &auth.Identity{SubjectID: "user-1", Role: domain.RoleCashier}
	assert.NoError(t, svc.Logout(context.Background(), identity))
	assert.NoError(t, svc.Logout(context.Background(), identity), "logout is idempotent")
	assert.NoError(t, svc.Logout(context.Background(), nil))
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newFakeUserRepository()
	svc := service.NewAuthService(testAuthConfig(), repo, nil)

	user, _, _, err := svc.Register(context.Background(), service.RegisterInput{
		Name: "User", Email: "pw@techcorp.com", Password: "password123",
	})
	require.NoError(t, err)

	identity := &auth.Identity{SubjectID: user.ID, Email: user.Email, Role: user.Role}

	err = svc.ChangePassword(context.Background(), identity, "wrong-password", "newpassword")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.ChangePassword(context.Background(), identity, "password123", "newpassword"))

	_, _, _, err = svc.Login(context.Background(), "pw@techcorp.com", "password123")
	assert.Error(t, err, "old password no longer accepted")
	_, _, _, err = svc.Login(context.Background(), "pw@techcorp.com", "newpassword")
	assert.NoError(t, err)
}
