package redis_test

import (
	"testing"

	"guesthouse/config"
	"guesthouse/infras/redis"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "guesthouse-worker"
	cfg.Cache.Redis.Primary.Host = "cache.internal"
	cfg.Cache.Redis.Primary.Port = "6380"
	cfg.Cache.Redis.Primary.Password = "secret"
	cfg.Cache.Redis.Primary.DB = 2

	options := redis.Options(cfg)

	assert.Equal(t, "cache.internal:6380", options.Addr)
	assert.Equal(t, "secret", options.Password)
	assert.Equal(t, 2, options.DB)
	assert.Equal(t, "guesthouse-worker", options.ClientName)
}
