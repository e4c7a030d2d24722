package database

import (
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// Without a configured client the cache helpers behave like a permanent miss.
func TestCacheHelpers_NoClient(t *testing.T) {
	Redis = nil

	assert.ErrorIs(t, CacheSet("k", "v", 0), redis.Nil)

	var dest string
	assert.ErrorIs(t, CacheGet("k", &dest), redis.Nil)
	assert.Empty(t, dest)

	assert.NoError(t, CacheInvalidate("k*"))
}
