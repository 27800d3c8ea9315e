package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"palletdock/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService caches the read views served between assignments. Cached data
// may go stale the moment another caller assigns a box; the assignment engine
// re-validates inside its own transaction, so staleness here is harmless.
type CacheService interface {
	GetPalletGroups(ctx context.Context) ([]*models.PalletGroup, error)
	SetPalletGroups(ctx context.Context, groups []*models.PalletGroup, ttl time.Duration) error

	GetAvailability(ctx context.Context, combo models.Combination) (*models.AvailabilityReport, error)
	SetAvailability(ctx context.Context, combo models.Combination, report *models.AvailabilityReport, ttl time.Duration) error

	// InvalidateAssignmentCache drops every cached view after a mutation.
	InvalidateAssignmentCache(ctx context.Context) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both bare host:port and redis:// URLs.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") {
		parsedAddr = strings.TrimPrefix(addr, "redis://")
	} else if strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(addr, "rediss://")
	}
	if idx := strings.Index(parsedAddr, "/"); idx != -1 {
		parsedAddr = parsedAddr[:idx]
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: redis ping failed on startup: %v (addr: %s)", err, parsedAddr)
	}

	return &redisCacheService{client: client}
}

const (
	keyPrefix       = "palletdock:"
	palletGroupsKey = keyPrefix + "groups"
)

func availabilityKey(combo models.Combination) string {
	return fmt.Sprintf("%savailability:%s", keyPrefix, combo.Key())
}

func (r *redisCacheService) GetPalletGroups(ctx context.Context) ([]*models.PalletGroup, error) {
	data, err := r.client.Get(ctx, palletGroupsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var groups []*models.PalletGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *redisCacheService) SetPalletGroups(ctx context.Context, groups []*models.PalletGroup, ttl time.Duration) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, palletGroupsKey, data, ttl).Err()
}

func (r *redisCacheService) GetAvailability(ctx context.Context, combo models.Combination) (*models.AvailabilityReport, error) {
	data, err := r.client.Get(ctx, availabilityKey(combo)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var report models.AvailabilityReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *redisCacheService) SetAvailability(ctx context.Context, combo models.Combination, report *models.AvailabilityReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, availabilityKey(combo), data, ttl).Err()
}

func (r *redisCacheService) InvalidateAssignmentCache(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
