package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisThresholdCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisThresholdCache(client, ttl)
}

func TestRedisThresholdCache_Miss(t *testing.T) {
	_, c := setupTestRedis(t, time.Minute)

	got, found, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestRedisThresholdCache_SetGet(t *testing.T) {
	mr, c := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	in := models.DefaultAlertThresholds()
	in.ID = 7
	in.SaturationMin = 85
	require.NoError(t, c.Set(ctx, &in))

	assert.True(t, mr.Exists(DefaultThresholdsKey))
	assert.Equal(t, time.Minute, mr.TTL(DefaultThresholdsKey))

	got, found, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint(7), got.ID)
	assert.Equal(t, 85, got.SaturationMin)
	assert.Equal(t, "140/90", got.BloodPressureMax)
}

func TestRedisThresholdCache_Expiry(t *testing.T) {
	mr, c := setupTestRedis(t, time.Second)
	ctx := context.Background()

	in := models.DefaultAlertThresholds()
	require.NoError(t, c.Set(ctx, &in))

	mr.FastForward(2 * time.Second)

	_, found, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisThresholdCache_KeepsNewerVersion(t *testing.T) {
	mr, c := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	newer := models.DefaultAlertThresholds()
	newer.ID = 7
	newer.SaturationMin = 85
	require.NoError(t, c.Set(ctx, &newer))

	// a slow reader writing back what it loaded before version 7 existed
	older := models.DefaultAlertThresholds()
	older.ID = 5
	older.SaturationMin = 90
	require.NoError(t, c.Set(ctx, &older))

	got, found, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint(7), got.ID)
	assert.Equal(t, 85, got.SaturationMin)

	next := models.DefaultAlertThresholds()
	next.ID = 8
	next.SaturationMin = 88
	require.NoError(t, c.Set(ctx, &next))

	got, found, err = c.Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint(8), got.ID)
	assert.Equal(t, 88, got.SaturationMin)
	assert.Equal(t, time.Minute, mr.TTL(DefaultThresholdsKey))
}

func TestRedisThresholdCache_SetOverwritesCorrupt(t *testing.T) {
	mr, c := setupTestRedis(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, mr.Set(DefaultThresholdsKey, "not json"))

	in := models.DefaultAlertThresholds()
	in.ID = 3
	require.NoError(t, c.Set(ctx, &in))

	got, found, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint(3), got.ID)
}

func TestRedisThresholdCache_Corrupt(t *testing.T) {
	mr, c := setupTestRedis(t, time.Minute)
	require.NoError(t, mr.Set(DefaultThresholdsKey, "not json"))

	_, found, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedisThresholdCache_ServerDown(t *testing.T) {
	mr, c := setupTestRedis(t, time.Minute)
	mr.Close()

	_, _, err := c.Get(context.Background())
	assert.Error(t, err)

	in := models.DefaultAlertThresholds()
	assert.Error(t, c.Set(context.Background(), &in))
}

func TestFromEnv(t *testing.T) {
	t.Setenv(common.EnvKeyRedisAddr, "")
	assert.Nil(t, FromEnv())

	t.Setenv(common.EnvKeyRedisAddr, "127.0.0.1:6379")
	t.Setenv(common.EnvKeyThresholdsCacheTTLSeconds, "30")
	c := FromEnv()
	require.NotNil(t, c)
	assert.Equal(t, 30*time.Second, c.ttl)
}
