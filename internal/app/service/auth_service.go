package service

import (
	"context"
	"errors"
	"time"

	"github.com/olumide/foodloan-backend/config"
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"github.com/olumide/foodloan-backend/pkg/metrics"
	"github.com/olumide/foodloan-backend/pkg/redis"
	"github.com/olumide/foodloan-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOTPInvalid         = errors.New("otp is invalid or has expired")
	ErrPasswordNotSet     = errors.New("no password set for this account")
)

const otpLength = 6

// OTPStore keeps issued passcodes until they are consumed or expire.
type OTPStore interface {
	Store(ctx context.Context, identifier, code string, expiry time.Duration) error
	Verify(ctx context.Context, identifier, code string) error
}

// TokenBlacklist revokes access tokens until their natural expiry.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, expiry time.Duration) error
}

// AuthService handles employee login. The primary path is passwordless:
// the employee identifies themselves by phone, email or employee ID and
// proves it with an SMS passcode. Password login exists for admins.
type AuthService interface {
	InitiateLogin(ctx context.Context, identifier string) error
	VerifyOTP(ctx context.Context, identifier, code string) (*util.TokenPair, *model.User, error)
	PasswordLogin(identifier, password string) (*util.TokenPair, *model.User, error)
	RefreshTokens(refreshToken string) (*util.TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	GetProfile(userID uint) (*model.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	otpStore  OTPStore
	blacklist TokenBlacklist
	cfg       *config.Config
	sendSMS   func(cfg *config.SMSConfig, phone, code string) error
}

func NewAuthService(
	userRepo repository.UserRepository,
	otpStore OTPStore,
	blacklist TokenBlacklist,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		otpStore:  otpStore,
		blacklist: blacklist,
		cfg:       cfg,
		sendSMS:   util.SendOTPSMS,
	}
}

func (s *authService) InitiateLogin(ctx context.Context, identifier string) error {
	logger.Info("Initiating OTP login", map[string]interface{}{
		"identifier": identifier,
	})

	user, err := s.userRepo.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("OTP login for unknown identifier", map[string]interface{}{
				"identifier": identifier,
			})
			return ErrUserNotFound
		}
		return err
	}

	code, err := util.GenerateOTP(otpLength)
	if err != nil {
		logger.Error("Failed to generate OTP", err, nil)
		return err
	}

	if err := s.otpStore.Store(ctx, identifier, code, s.cfg.Loan.OTPExpiry); err != nil {
		return err
	}

	if err := s.sendSMS(&s.cfg.SMS, user.Phone, code); err != nil {
		logger.Error("Failed to send OTP SMS", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	metrics.OTPIssued.Inc()
	logger.Info("OTP issued", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, identifier, code string) (*util.TokenPair, *model.User, error) {
	logger.Info("Verifying OTP", map[string]interface{}{
		"identifier": identifier,
	})

	user, err := s.userRepo.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	if err := s.otpStore.Verify(ctx, identifier, code); err != nil {
		if errors.Is(err, redis.ErrOTPMismatch) {
			logger.Warn("OTP verification failed", map[string]interface{}{
				"user_id": user.ID,
			})
			return nil, nil, ErrOTPInvalid
		}
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("OTP login successful", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return tokens, user, nil
}

func (s *authService) PasswordLogin(identifier, password string) (*util.TokenPair, *model.User, error) {
	logger.Info("Password login attempt", map[string]interface{}{
		"identifier": identifier,
	})

	user, err := s.userRepo.FindByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same answer as a wrong password, do not leak which it was
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if user.PasswordHash == "" {
		logger.Warn("Password login for OTP-only account", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrPasswordNotSet
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Password login failed", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Password login successful", map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return tokens, user, nil
}

func (s *authService) RefreshTokens(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.cfg.JWT.Secret)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if err := s.blacklist.Revoke(ctx, accessToken, s.cfg.JWT.AccessTokenExpiry); err != nil {
		logger.Error("Failed to revoke access token", err, nil)
		return err
	}
	return nil
}

func (s *authService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(user *model.User) (*util.TokenPair, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return util.GenerateTokenPair(
		user.ID,
		email,
		string(user.Role),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenExpiry,
		s.cfg.JWT.RefreshTokenExpiry,
	)
}

// Redis-backed implementations used outside tests.

type redisOTPStore struct{}

func NewRedisOTPStore() OTPStore {
	return &redisOTPStore{}
}

func (redisOTPStore) Store(ctx context.Context, identifier, code string, expiry time.Duration) error {
	return redis.StoreOTP(ctx, identifier, code, expiry)
}

func (redisOTPStore) Verify(ctx context.Context, identifier, code string) error {
	return redis.VerifyOTP(ctx, identifier, code)
}

type redisTokenBlacklist struct{}

func NewRedisTokenBlacklist() TokenBlacklist {
	return &redisTokenBlacklist{}
}

func (redisTokenBlacklist) Revoke(ctx context.Context, token string, expiry time.Duration) error {
	return redis.BlacklistToken(ctx, token, expiry)
}
