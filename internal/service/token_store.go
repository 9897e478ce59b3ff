package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/jwt"

	"github.com/redis/go-redis/v9"
)

// TokenStore whitelists issued token ids. A token is valid only while its id
// is present.
type TokenStore interface {
	Allow(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string, ttl time.Duration) error
	IsAllowed(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string) error
	RevokeAll(ctx context.Context, userID uint) error
}

type redisTokenStore struct {
	client redis.Cmdable
}

func NewRedisTokenStore(client redis.Cmdable) TokenStore {
	return &redisTokenStore{client: client}
}

// TokenKey formats keys as access_token:<user id>:<token id>.
func TokenKey(tokenType jwt.TokenType, userID uint, tokenID string) string {
	return fmt.Sprintf("%s_token:%d:%s", tokenType, userID, tokenID)
}

func (s *redisTokenStore) Allow(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, TokenKey(tokenType, userID, tokenID), "valid", ttl).Err()
}

func (s *redisTokenStore) IsAllowed(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string) (bool, error) {
	exists, err := s.client.Exists(ctx, TokenKey(tokenType, userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, tokenType jwt.TokenType, userID uint, tokenID string) error {
	return s.client.Del(ctx, TokenKey(tokenType, userID, tokenID)).Err()
}

// RevokeAll drops every access and refresh token issued to the user.
func (s *redisTokenStore) RevokeAll(ctx context.Context, userID uint) error {
	for _, tokenType := range []jwt.TokenType{jwt.AccessToken, jwt.RefreshToken} {
		if err := s.deleteMatching(ctx, userTokenPattern(tokenType, userID)); err != nil {
			return err
		}
	}
	return nil
}

// userTokenPattern matches every key TokenKey builds for the user.
func userTokenPattern(tokenType jwt.TokenType, userID uint) string {
	return fmt.Sprintf("%s_token:%d:*", tokenType, userID)
}

func (s *redisTokenStore) deleteMatching(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
