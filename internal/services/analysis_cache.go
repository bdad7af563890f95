package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"shoppingapp-backend/internal/ai"
	"shoppingapp-backend/internal/database"
)

const (
	additiveCachePrefix = "additives:"
	additiveCacheTTL    = 7 * 24 * time.Hour
)

// AnalysisCache memoizes additive analyses by item name so repeating a
// lookup for the same product does not spend budget again. Ingredient lists
// for a named product rarely change inside the TTL window. Disabled when
// redis is absent.
type AnalysisCache struct {
	client *redis.Client
}

func NewAnalysisCache(client *redis.Client) *AnalysisCache {
	return &AnalysisCache{client: client}
}

func additiveCacheKey(itemName string) string {
	return additiveCachePrefix + strings.ToLower(strings.TrimSpace(itemName))
}

// GetAdditives returns a cached result, or nil on miss.
func (c *AnalysisCache) GetAdditives(itemName string) *ai.AdditiveResult {
	if c == nil || c.client == nil || itemName == "" {
		return nil
	}
	val, err := c.client.Get(database.Ctx, additiveCacheKey(itemName)).Result()
	if err != nil {
		return nil
	}
	var result ai.AdditiveResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil
	}
	return &result
}

// SetAdditives caches a decoded result.
func (c *AnalysisCache) SetAdditives(itemName string, result *ai.AdditiveResult) {
	if c == nil || c.client == nil || itemName == "" || result == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	c.client.Set(database.Ctx, additiveCacheKey(itemName), data, additiveCacheTTL)
}
