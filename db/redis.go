package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mmcloughlin/geohash"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

// TrendingCacheTTL bounds how stale a cached trending response can get.
// Trending scores drift continuously with the clock, so five minutes is
// already generous.
const TrendingCacheTTL = 5 * time.Minute

func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// TrendingKey buckets nearby requesters onto the same cache entry by
// truncating the location to a precision-6 geohash cell (about 1.2 km).
func TrendingKey(lat, lon, radiusKm float64) string {
	return fmt.Sprintf("trending:%s:radius:%d", geohash.EncodeWithPrecision(lat, lon, 6), int(radiusKm))
}

func GetCached(key string) (string, bool, error) {
	val, err := Redis.Get(Ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func SetCached(key string, value string, ttl time.Duration) error {
	return Redis.Set(Ctx, key, value, ttl).Err()
}
