package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/veewoo/veewoo-prompt/internal/models"
)

const (
	tagListCacheKey      = "tags:all"
	tagListCacheDuration = 1 * time.Hour
)

type TagService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewTagService(db *gorm.DB, rdb *redis.Client) *TagService {
	return &TagService{db: db, rdb: rdb}
}

// List returns every tag in the shared namespace, cached in Redis. The cache
// is dropped whenever reconciliation creates a new tag.
func (s *TagService) List() ([]models.Tag, error) {
	if s.rdb != nil {
		val, err := s.rdb.Get(context.Background(), tagListCacheKey).Result()
		if err == nil {
			var tags []models.Tag
			if err := json.Unmarshal([]byte(val), &tags); err == nil {
				return tags, nil
			}
		}
	}

	var tags []models.Tag
	if err := s.db.Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(tags); err == nil {
			s.rdb.Set(context.Background(), tagListCacheKey, data, tagListCacheDuration)
		}
	}

	return tags, nil
}

func invalidateTagCache(rdb *redis.Client) {
	if rdb != nil {
		rdb.Del(context.Background(), tagListCacheKey)
	}
}
