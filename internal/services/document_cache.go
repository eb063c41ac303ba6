package services

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Viper373/prompt-shelf/internal/database"
	"github.com/Viper373/prompt-shelf/internal/models"
	"github.com/Viper373/prompt-shelf/pkg/logger"
)

const DocumentCacheDuration = 2 * time.Hour

func documentCacheKey(userID uint, fileKey string) string {
	return fmt.Sprintf("%d/%s", userID, fileKey)
}

// GetDocument returns the cached document for (user, prompt), or invokes
// loader and best-effort populates the cache. Cache failures are logged and
// treated as misses; the document store is authoritative.
func GetDocument(userID uint, fileKey string, loader func() (*models.PromptDocument, error)) (*models.PromptDocument, error) {
	key := documentCacheKey(userID, fileKey)

	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, key).Result()
		if err == nil {
			if doc, perr := models.ParsePromptDocument([]byte(val)); perr == nil {
				return doc, nil
			}
			// Unreadable cache entry, fall through to a full reload.
		} else if err != redis.Nil {
			logger.Log.Warn("document cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	doc, err := loader()
	if err != nil {
		return nil, err
	}

	CacheDocument(userID, doc)
	return doc, nil
}

// CacheDocument overwrites the cache entry with the document's current state
// so that a later read in this process sees fresh data without reloading from
// disk. A cache-set failure never fails the caller.
func CacheDocument(userID uint, doc *models.PromptDocument) {
	if database.RedisClient == nil {
		return
	}
	data, err := doc.Marshal()
	if err != nil {
		return
	}
	key := documentCacheKey(userID, doc.ID)
	if err := database.RedisClient.Set(database.Ctx, key, data, DocumentCacheDuration).Err(); err != nil {
		logger.Log.Warn("document cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// DropDocumentCache removes the cache entry, best-effort.
func DropDocumentCache(userID uint, fileKey string) {
	if database.RedisClient == nil {
		return
	}
	key := documentCacheKey(userID, fileKey)
	if err := database.RedisClient.Del(database.Ctx, key).Err(); err != nil {
		logger.Log.Warn("document cache delete failed", zap.String("key", key), zap.Error(err))
	}
}
