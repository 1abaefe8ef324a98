package auth

import (
	"context"
	"fmt"
	"time"

	"feedbackhub/internal/cache"
)

const refreshTokenKeyPrefix = "refresh_token:"

// refreshTokenEntry is the payload stored in Redis per refresh token.
type refreshTokenEntry struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// TokenStoreInterface defines the interface for refresh token storage.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID uint, email string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore handles storage and retrieval of refresh tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	entry := refreshTokenEntry{UserID: userID, Email: email}
	s.cache.SetJSON(ctx, refreshTokenKeyPrefix+tokenID, entry, ttl)
	return nil
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (userID uint, email string, err error) {
	var entry refreshTokenEntry
	if !s.cache.GetJSON(ctx, refreshTokenKeyPrefix+tokenID, &entry) {
		return 0, "", fmt.Errorf("refresh token not found")
	}
	return entry.UserID, entry.Email, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}
