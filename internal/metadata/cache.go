package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedProvider is a read-through Redis cache in front of a Provider.
// Lookups for the same normalized query are answered from cache within
// the TTL; any Redis failure falls through to the upstream silently.
type CachedProvider struct {
	upstream Provider
	rdb      *redis.Client
	ttl      time.Duration
}

func NewCachedProvider(upstream Provider, rdb *redis.Client, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedProvider{upstream: upstream, rdb: rdb, ttl: ttl}
}

func (c *CachedProvider) lookup(ctx context.Context, key string, out any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Metadata cache: get %s: %v", key, err)
		}
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (c *CachedProvider) put(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("Metadata cache: set %s: %v", key, err)
	}
}

func (c *CachedProvider) SearchMovie(ctx context.Context, title string, year *int) ([]Result, error) {
	y := 0
	if year != nil {
		y = *year
	}
	key := fmt.Sprintf("tmdb:search:movie:%s:%d", title, y)

	var cached []Result
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}
	results, err := c.upstream.SearchMovie(ctx, title, year)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, results)
	return results, nil
}

func (c *CachedProvider) SearchTV(ctx context.Context, query string) ([]Result, error) {
	key := "tmdb:search:tv:" + query

	var cached []Result
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}
	results, err := c.upstream.SearchTV(ctx, query)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, results)
	return results, nil
}

func (c *CachedProvider) MovieDetails(ctx context.Context, id int) (*Details, error) {
	key := fmt.Sprintf("tmdb:movie:%d", id)

	var cached Details
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}
	d, err := c.upstream.MovieDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, d)
	return d, nil
}

func (c *CachedProvider) TVDetails(ctx context.Context, id int) (*Details, error) {
	key := fmt.Sprintf("tmdb:tv:%d", id)

	var cached Details
	if c.lookup(ctx, key, &cached) {
		return &cached, nil
	}
	d, err := c.upstream.TVDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, d)
	return d, nil
}
