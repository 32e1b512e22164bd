package redisclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/redisclient"
	"github.com/jhoicas/pdv-planilha-api/pkg/config"
)

func TestOptions(t *testing.T) {
	opt, err := redisclient.Options(config.CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opt.Addr)

	opt, err = redisclient.Options(config.CacheConfig{RedisHost: "cache", RedisPort: "6380", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opt.Addr)
	assert.Equal(t, 2, opt.DB)

	opt, err = redisclient.Options(config.CacheConfig{RedisURL: "redis://:pw@redis:6379/3", RedisHost: "ignorado"})
	require.NoError(t, err)
	assert.Equal(t, "redis:6379", opt.Addr)
	assert.Equal(t, "pw", opt.Password)
	assert.Equal(t, 3, opt.DB)

	_, err = redisclient.Options(config.CacheConfig{RedisURL: "http://no-es-redis"})
	assert.Error(t, err)
}
