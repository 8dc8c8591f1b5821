package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"bizdel/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService fronts the read-mostly scheme catalog and holds generic
// strings. A cache miss is (nil, nil), never an error.
type CacheService interface {
	GetSchemes(ctx context.Context, key string) ([]*models.Scheme, error)
	SetSchemes(ctx context.Context, key string, schemes []*models.Scheme, ttl time.Duration) error
	InvalidateSchemes(ctx context.Context) error

	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as bare host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func schemeKey(key string) string {
	return fmt.Sprintf("bizdel:schemes:%s", key)
}

func (r *redisCacheService) GetSchemes(ctx context.Context, key string) ([]*models.Scheme, error) {
	data, err := r.client.Get(ctx, schemeKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var schemes []*models.Scheme
	if err := json.Unmarshal(data, &schemes); err != nil {
		return nil, err
	}
	return schemes, nil
}

func (r *redisCacheService) SetSchemes(ctx context.Context, key string, schemes []*models.Scheme, ttl time.Duration) error {
	data, err := json.Marshal(schemes)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, schemeKey(key), data, ttl).Err()
}

func (r *redisCacheService) InvalidateSchemes(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "bizdel:schemes:*").Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
