package service

import (
	"context"
	"testing"
	"time"

	"github.com/olumide/foodloan-backend/config"
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/internal/db"
	"github.com/olumide/foodloan-backend/pkg/redis"
	"github.com/olumide/foodloan-backend/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryOTPStore keeps codes in a map so tests need no Redis.
type memoryOTPStore struct {
	codes map[string]string
}

func newMemoryOTPStore() *memoryOTPStore {
	return &memoryOTPStore{codes: make(map[string]string)}
}

func (s *memoryOTPStore) Store(_ context.Context, identifier, code string, _ time.Duration) error {
	s.codes[identifier] = code
	return nil
}

func (s *memoryOTPStore) Verify(_ context.Context, identifier, code string) error {
	stored, ok := s.codes[identifier]
	if !ok || stored != code {
		return redis.ErrOTPMismatch
	}
	delete(s.codes, identifier)
	return nil
}

type memoryBlacklist struct {
	revoked map[string]bool
}

func newMemoryBlacklist() *memoryBlacklist {
	return &memoryBlacklist{revoked: make(map[string]bool)}
}

func (b *memoryBlacklist) Revoke(_ context.Context, token string, _ time.Duration) error {
	b.revoked[token] = true
	return nil
}

func setupAuthServiceTest(t *testing.T) (AuthService, *memoryOTPStore, *memoryBlacklist, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		Loan: config.LoanConfig{OTPExpiry: 5 * time.Minute},
	}

	userRepo := repository.NewUserRepository(testDB)
	otpStore := newMemoryOTPStore()
	blacklist := newMemoryBlacklist()
	authService := NewAuthService(userRepo, otpStore, blacklist, cfg)

	hash, err := util.HashPassword("admin-pass")
	require.NoError(t, err)

	salary := decimal.NewFromInt(80000)
	email := "ada@example.com"
	user := &model.User{
		FirstName:      "Ada",
		LastName:       "Obi",
		Email:          &email,
		Phone:          "+2348012345678",
		EmployeeID:     "EMP-001",
		SalaryPerMonth: salary,
		LoanUnit:       model.DeriveLoanUnit(salary),
		PasswordHash:   hash,
		Role:           model.RoleUser,
	}
	testDB.Create(user)

	return authService, otpStore, blacklist, user
}

func TestAuthService_InitiateLogin_IssuesOTP(t *testing.T) {
	authService, otpStore, _, user := setupAuthServiceTest(t)
	ctx := context.Background()

	// Any of the three identifiers works
	for _, identifier := range []string{user.Phone, *user.Email, user.EmployeeID} {
		err := authService.InitiateLogin(ctx, identifier)
		require.NoError(t, err)
		assert.Len(t, otpStore.codes[identifier], 6)
	}
}

func TestAuthService_InitiateLogin_UnknownIdentifier(t *testing.T) {
	authService, _, _, _ := setupAuthServiceTest(t)

	err := authService.InitiateLogin(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_VerifyOTP_Success(t *testing.T) {
	authService, otpStore, _, user := setupAuthServiceTest(t)
	ctx := context.Background()

	require.NoError(t, authService.InitiateLogin(ctx, user.Phone))
	code := otpStore.codes[user.Phone]

	tokens, loggedIn, err := authService.VerifyOTP(ctx, user.Phone, code)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthService_VerifyOTP_SingleUse(t *testing.T) {
	authService, otpStore, _, user := setupAuthServiceTest(t)
	ctx := context.Background()

	require.NoError(t, authService.InitiateLogin(ctx, user.Phone))
	code := otpStore.codes[user.Phone]

	_, _, err := authService.VerifyOTP(ctx, user.Phone, code)
	require.NoError(t, err)

	// Replaying the consumed code fails
	_, _, err = authService.VerifyOTP(ctx, user.Phone, code)
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestAuthService_VerifyOTP_WrongCode(t *testing.T) {
	authService, _, _, user := setupAuthServiceTest(t)
	ctx := context.Background()

	require.NoError(t, authService.InitiateLogin(ctx, user.Phone))

	_, _, err := authService.VerifyOTP(ctx, user.Phone, "000000")
	assert.ErrorIs(t, err, ErrOTPInvalid)
}

func TestAuthService_PasswordLogin(t *testing.T) {
	authService, _, _, user := setupAuthServiceTest(t)

	tokens, loggedIn, err := authService.PasswordLogin(user.EmployeeID, "admin-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, err = authService.PasswordLogin(user.EmployeeID, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.PasswordLogin("no-such-user", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshTokens(t *testing.T) {
	authService, _, _, user := setupAuthServiceTest(t)

	tokens, _, err := authService.PasswordLogin(user.Phone, "admin-pass")
	require.NoError(t, err)

	refreshed, err := authService.RefreshTokens(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = authService.RefreshTokens("garbage-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Logout(t *testing.T) {
	authService, _, blacklist, user := setupAuthServiceTest(t)

	tokens, _, err := authService.PasswordLogin(user.Phone, "admin-pass")
	require.NoError(t, err)

	require.NoError(t, authService.Logout(context.Background(), tokens.AccessToken))
	assert.True(t, blacklist.revoked[tokens.AccessToken])
}
