package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const denylistPrefix = "denylist:"

// DenylistService tracks revoked JWTs in Redis until they would have expired
// anyway. Logout adds the presented token; the auth middleware checks it.
type DenylistService struct {
	rdb *redis.Client
}

func NewDenylistService(rdb *redis.Client) *DenylistService {
	return &DenylistService{rdb: rdb}
}

func (s *DenylistService) Add(tokenString string, expiration time.Duration) error {
	return s.rdb.Set(context.Background(), denylistPrefix+tokenString, 1, expiration).Err()
}

func (s *DenylistService) Contains(tokenString string) (bool, error) {
	val, err := s.rdb.Get(context.Background(), denylistPrefix+tokenString).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val != "", nil
}
