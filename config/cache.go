package config

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// Cache instances for different data types
	AnalysisCache *cache.Cache
	LookupCache   *cache.Cache
)

const (
	// Analysis composites are recomputed often but the underlying dataset
	// only changes between result publications.
	analysisCacheDuration   = 5 * time.Minute
	analysisCleanupInterval = 10 * time.Minute

	lookupCacheDuration   = 1 * time.Hour
	lookupCleanupInterval = 2 * time.Hour
)

func InitCache() {
	AnalysisCache = cache.New(analysisCacheDuration, analysisCleanupInterval)
	LookupCache = cache.New(lookupCacheDuration, lookupCleanupInterval)
}

func ClearAllCaches() {
	AnalysisCache.Flush()
	LookupCache.Flush()
}

func GetCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += ":" + fmt.Sprintf("%v", param)
	}
	return key
}
