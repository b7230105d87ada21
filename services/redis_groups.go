package services

import (
	"context"
	"fmt"
	"sort"

	"myapp/models"

	"github.com/redis/go-redis/v9"
)

const groupKeyPrefix = "myapp:group:"

// RedisGroupRegistry mirrors group membership into Redis sets so every process
// sharing the instance sees the same membership. Delivery stays local: each
// process only holds connections for its own members.
type RedisGroupRegistry struct {
	rdb   *redis.Client
	local *HubService
}

func NewRedisGroupRegistry(rdb *redis.Client, local *HubService) *RedisGroupRegistry {
	return &RedisGroupRegistry{rdb: rdb, local: local}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return rdb, nil
}

func groupKey(group string) string {
	return groupKeyPrefix + group
}

func (r *RedisGroupRegistry) Add(ctx context.Context, group string, member Member) error {
	if err := r.rdb.SAdd(ctx, groupKey(group), member.ID()).Err(); err != nil {
		return fmt.Errorf("adding %s to group %s: %w", member.ID(), group, err)
	}
	return r.local.Add(ctx, group, member)
}

// Discard always removes the local member, even when Redis is unreachable.
func (r *RedisGroupRegistry) Discard(ctx context.Context, group string, member Member) error {
	localErr := r.local.Discard(ctx, group, member)
	if err := r.rdb.SRem(ctx, groupKey(group), member.ID()).Err(); err != nil {
		return fmt.Errorf("removing %s from group %s: %w", member.ID(), group, err)
	}
	return localErr
}

func (r *RedisGroupRegistry) Members(ctx context.Context, group string) ([]string, error) {
	ids, err := r.rdb.SMembers(ctx, groupKey(group)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing group %s: %w", group, err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *RedisGroupRegistry) Broadcast(ctx context.Context, group string, message models.PushMessage) (int, error) {
	return r.local.Broadcast(ctx, group, message)
}
