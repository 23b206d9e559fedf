package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/olumide/foodloan-backend/config"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// ErrOTPMismatch is returned when the submitted code does not match the
// stored one, or when no code is stored for the identifier.
var ErrOTPMismatch = fmt.Errorf("otp does not match or has expired")

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// SetClient swaps the client instance
func SetClient(c *redis.Client) {
	client = c
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// StoreOTP saves a one-time passcode for a login identifier with a TTL.
// Issuing a new code overwrites any previous one.
func StoreOTP(ctx context.Context, identifier, code string, expiry time.Duration) error {
	key := fmt.Sprintf("otp:%s", identifier)
	err := client.Set(ctx, key, code, expiry).Err()
	if err != nil {
		logger.Error("Failed to store OTP", err, map[string]interface{}{
			"identifier": identifier,
		})
		return err
	}

	logger.Debug("OTP stored", map[string]interface{}{
		"identifier": identifier,
		"expiry":     expiry.String(),
	})
	return nil
}

// VerifyOTP checks a submitted code against the stored one and consumes
// it on success. Codes are single use.
func VerifyOTP(ctx context.Context, identifier, code string) error {
	key := fmt.Sprintf("otp:%s", identifier)
	val, err := client.Get(ctx, key).Result()

	if err == redis.Nil {
		return ErrOTPMismatch
	}
	if err != nil {
		logger.Error("Failed to read OTP", err, map[string]interface{}{
			"identifier": identifier,
		})
		return err
	}

	if val != code {
		return ErrOTPMismatch
	}

	if err := client.Del(ctx, key).Err(); err != nil {
		logger.Error("Failed to consume OTP", err, map[string]interface{}{
			"identifier": identifier,
		})
		return err
	}
	return nil
}

// BlacklistToken adds a token to the blacklist
func BlacklistToken(ctx context.Context, token string, expiry time.Duration) error {
	logger.Debug("Adding token to blacklist", map[string]interface{}{
		"expiry": expiry.String(),
	})

	key := fmt.Sprintf("blacklist:%s", token)
	err := client.Set(ctx, key, "revoked", expiry).Err()
	if err != nil {
		logger.Error("Failed to blacklist token", err, nil)
		return err
	}

	logger.Debug("Token successfully blacklisted", nil)
	return nil
}

// Blacklist adapts the package-level blacklist lookup for callers that
// accept an interface.
type Blacklist struct{}

func (Blacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	return IsTokenBlacklisted(ctx, token)
}

// IsTokenBlacklisted checks if a token is in the blacklist
func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", token)
	val, err := client.Get(ctx, key).Result()

	if err == redis.Nil {
		// Key does not exist - token is not blacklisted
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token blacklist", err, nil)
		return false, err
	}

	// Token is blacklisted
	return val == "revoked", nil
}
