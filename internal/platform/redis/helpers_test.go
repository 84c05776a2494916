package redis_test

import (
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/phrazzld/cards-api/internal/config"
)

func configWithURL(url string) config.RedisConfig {
	return config.RedisConfig{URL: url, CacheTTLSeconds: 60}
}

// redisURL returns REDIS_URL, or the address of an in-process miniredis that
// is shut down when t finishes.
func redisURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv("REDIS_URL"); url != "" {
		return url
	}
	return "redis://" + miniredis.RunT(t).Addr()
}
