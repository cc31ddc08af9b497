package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/veewoo/veewoo-prompt/internal/models"
)

const userCacheDuration = 1 * time.Hour

type UserService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewUserService(db *gorm.DB, rdb *redis.Client) *UserService {
	return &UserService{db: db, rdb: rdb}
}

// FindByID resolves a user, serving from the Redis cache when possible. The
// auth middleware calls this on every authenticated request.
func (s *UserService) FindByID(userID uint) (models.User, error) {
	cacheKey := fmt.Sprintf("user:%d", userID)
	if s.rdb != nil {
		val, err := s.rdb.Get(context.Background(), cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(user); err == nil {
			s.rdb.Set(context.Background(), cacheKey, data, userCacheDuration)
		}
	}

	return user, nil
}
