package research

import (
	"context"
	"sync"

	"github.com/sitescout/sitescout"
	"golang.org/x/sync/singleflight"
)

// Cache deduplicates analysis and fetch work within a batch. Section maps
// are keyed by domain, fetched content by (domain, section). Concurrent
// requests for the same key share one in-flight call via singleflight;
// successful results are kept for the cache's lifetime. Failures are not
// cached, so a later request may retry.
type Cache struct {
	group singleflight.Group

	mu       sync.RWMutex
	sections map[string]*sitescout.SectionMap
	contents map[string]*sitescout.FetchedContent
}

// NewCache creates an empty cache. A cache is scoped to one batch; create
// a fresh one per run to pick up site changes.
func NewCache() *Cache {
	return &Cache{
		sections: make(map[string]*sitescout.SectionMap),
		contents: make(map[string]*sitescout.FetchedContent),
	}
}

// SectionMap returns the cached section map for domain, calling analyze at
// most once per domain across concurrent callers.
func (c *Cache) SectionMap(ctx context.Context, domain string, analyze func(ctx context.Context) (*sitescout.SectionMap, error)) (*sitescout.SectionMap, error) {
	c.mu.RLock()
	cached, ok := c.sections[domain]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do("sections\x00"+domain, func() (any, error) {
		sections, err := analyze(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.sections[domain] = sections
		c.mu.Unlock()
		return sections, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sitescout.SectionMap), nil
}

// Content returns the cached content for (domain, section), calling fetch
// at most once per key across concurrent callers.
func (c *Cache) Content(ctx context.Context, domain, section string, fetch func(ctx context.Context) (*sitescout.FetchedContent, error)) (*sitescout.FetchedContent, error) {
	key := domain + "\x00" + section

	c.mu.RLock()
	cached, ok := c.contents[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do("content\x00"+key, func() (any, error) {
		content, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.contents[key] = content
		c.mu.Unlock()
		return content, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sitescout.FetchedContent), nil
}
