package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"liyu1981.xyz/telemonitoring-service/pkg/common"
	"liyu1981.xyz/telemonitoring-service/pkg/models"
)

const DefaultThresholdsKey = "telemonitoring:thresholds:current"

// ThresholdCache holds a snapshot of the thresholds in force. A miss is (nil, false, nil).
// Set never replaces a snapshot of a newer version (higher ID).
type ThresholdCache interface {
	Get(ctx context.Context) (*models.AlertThresholds, bool, error)
	Set(ctx context.Context, thresholds *models.AlertThresholds) error
}

type RedisThresholdCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// KEYS[1] snapshot key; ARGV[1] snapshot, ARGV[2] its ID, ARGV[3] ttl in ms (0 keeps it forever)
var setIfNotOlderScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current then
	local ok, cached = pcall(cjson.decode, current)
	if ok and type(cached) == 'table' and tonumber(cached['ID']) and tonumber(cached['ID']) > tonumber(ARGV[2]) then
		return 0
	end
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

func NewRedisThresholdCache(client *redis.Client, ttl time.Duration) *RedisThresholdCache {
	return &RedisThresholdCache{client: client, key: DefaultThresholdsKey, ttl: ttl}
}

func (c *RedisThresholdCache) Get(ctx context.Context) (*models.AlertThresholds, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", c.key, err)
	}

	var thresholds models.AlertThresholds
	if err := json.Unmarshal(data, &thresholds); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return &thresholds, true, nil
}

func (c *RedisThresholdCache) Set(ctx context.Context, thresholds *models.AlertThresholds) error {
	data, err := json.Marshal(thresholds)
	if err != nil {
		return err
	}
	err = setIfNotOlderScript.Run(ctx, c.client, []string{c.key}, data, thresholds.ID, c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("set %s: %w", c.key, err)
	}
	return nil
}

// FromEnv returns nil when TM_REDIS_ADDR is unset; callers then run without a cache.
func FromEnv() *RedisThresholdCache {
	addr := common.EnvString(common.EnvKeyRedisAddr, "")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	return NewRedisThresholdCache(client, common.EnvSeconds(common.EnvKeyThresholdsCacheTTLSeconds, time.Minute))
}
