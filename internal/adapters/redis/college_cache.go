package redis

// Package redis provides Redis-backed adapters. The college cache is a
// read-through layer over the college repository: registry lookups sit on
// the login and route-guard hot path, while college records change rarely.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devxconsultancy/assess-ui-api/internal/core"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
)

const defaultCollegeTTL = 5 * time.Minute

// CollegeCache wraps a CollegeRepository with TTL-based Redis caching for
// the three hot lookups. Writes and resource listings pass straight through;
// Create invalidates nothing because new records cannot already be cached.
type CollegeCache struct {
	next   core.CollegeRepository
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ core.CollegeRepository = (*CollegeCache)(nil)

// NewCollegeCache creates a read-through college cache.
func NewCollegeCache(client redis.UniversalClient, next core.CollegeRepository) *CollegeCache {
	return &CollegeCache{
		next:   next,
		client: client,
		prefix: "college:",
		ttl:    defaultCollegeTTL,
	}
}

// WithTTL overrides the cache TTL. Zero or negative disables expiry override.
func (c *CollegeCache) WithTTL(ttl time.Duration) *CollegeCache {
	if ttl > 0 {
		c.ttl = ttl
	}
	return c
}

func (c *CollegeCache) GetBySlug(ctx context.Context, slug string) (*model.College, error) {
	return c.lookup(ctx, "slug:"+slug, func() (*model.College, error) {
		return c.next.GetBySlug(ctx, slug)
	})
}

func (c *CollegeCache) GetByID(ctx context.Context, id string) (*model.College, error) {
	return c.lookup(ctx, "id:"+id, func() (*model.College, error) {
		return c.next.GetByID(ctx, id)
	})
}

func (c *CollegeCache) GetByEmailDomain(ctx context.Context, domain string) (*model.College, error) {
	return c.lookup(ctx, "domain:"+domain, func() (*model.College, error) {
		return c.next.GetByEmailDomain(ctx, domain)
	})
}

func (c *CollegeCache) ListResources(ctx context.Context, collegeID string) ([]*model.CollegeResource, error) {
	return c.next.ListResources(ctx, collegeID)
}

func (c *CollegeCache) AddResource(ctx context.Context, collegeID, name string) (*model.CollegeResource, error) {
	return c.next.AddResource(ctx, collegeID, name)
}

func (c *CollegeCache) Create(ctx context.Context, req *model.CreateCollegeRequest) (*model.College, error) {
	return c.next.Create(ctx, req)
}

func (c *CollegeCache) List(ctx context.Context, limit, offset int) ([]*model.College, error) {
	return c.next.List(ctx, limit, offset)
}

// lookup serves from cache when possible, otherwise loads from the
// underlying repository and populates the cache. Cache failures degrade to
// plain repository reads; they are never surfaced to callers.
func (c *CollegeCache) lookup(
	ctx context.Context,
	key string,
	load func() (*model.College, error),
) (*model.College, error) {
	fullKey := c.prefix + key

	if data, err := c.client.Get(ctx, fullKey).Result(); err == nil {
		var college model.College
		if unmarshalErr := json.Unmarshal([]byte(data), &college); unmarshalErr == nil {
			return &college, nil
		}
		// Corrupt entry; drop it and fall through to the repository.
		_ = c.client.Del(ctx, fullKey).Err()
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return nil, fmt.Errorf("college cache get: %w", ctx.Err())
	}

	college, err := load()
	if err != nil {
		return nil, err
	}

	if data, marshalErr := json.Marshal(college); marshalErr == nil {
		_ = c.client.Set(ctx, fullKey, data, c.ttl).Err()
	}
	return college, nil
}
