package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/glowmart/pkg/config"
	"github.com/example/glowmart/pkg/models"
	"github.com/go-redis/redis/v8"
)

const (
	catalogKey = "catalog:products"
	catalogTTL = 5 * time.Minute

	// QR references live long enough for a payment gateway to reconcile.
	qrisTTL = 24 * time.Hour
)

type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func (r *RedisRepository) setJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisRepository) getJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// CacheCatalog stores the full product list. The catalog is small and
// read-heavy; mutations invalidate rather than patch.
func (r *RedisRepository) CacheCatalog(ctx context.Context, products []models.Product) error {
	return r.setJSON(ctx, catalogKey, products, catalogTTL)
}

func (r *RedisRepository) GetCatalog(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.getJSON(ctx, catalogKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *RedisRepository) InvalidateCatalog(ctx context.Context) error {
	return r.client.Del(ctx, catalogKey).Err()
}

// StoreQRISReference maps a QR payment reference to the order number it
// paid for, so a gateway callback can be matched to an order.
func (r *RedisRepository) StoreQRISReference(ctx context.Context, reference, orderNumber string) error {
	key := fmt.Sprintf("qris:%s", reference)
	return r.client.Set(ctx, key, orderNumber, qrisTTL).Err()
}

func (r *RedisRepository) GetQRISReference(ctx context.Context, reference string) (string, error) {
	key := fmt.Sprintf("qris:%s", reference)
	return r.client.Get(ctx, key).Result()
}
