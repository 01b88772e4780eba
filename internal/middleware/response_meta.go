package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/careplan-api/pkg/middleware/requestid"
)

const (
	requestStartKey = "request_started_at"
	cacheHitKey     = "cache_hit"
)

// WithResponseMeta stamps the request start so handlers can report timings.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Next()
	}
}

// SetCacheHit records whether the payload was served from the dashboard cache.
func SetCacheHit(c *gin.Context, hit bool) {
	c.Set(cacheHitKey, hit)
}

// ResponseMeta builds the envelope meta for the current request. Keys are
// only present when known.
func ResponseMeta(c *gin.Context) map[string]interface{} {
	meta := make(map[string]interface{})
	if c == nil {
		return meta
	}
	if hit, ok := c.Get(cacheHitKey); ok {
		meta[cacheHitKey] = hit
	}
	if raw, ok := c.Get(requestStartKey); ok {
		if started, ok := raw.(time.Time); ok {
			meta["processing_time_ms"] = time.Since(started).Milliseconds()
		}
	}
	if id := requestid.Value(c); id != "" {
		meta["request_id"] = id
	}
	return meta
}
