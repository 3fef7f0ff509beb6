package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/schemamap/compiler"
)

// schemaInput represents the three ways a JSON Schema document can be
// provided to a tool. Exactly one of File, URL, or Content must be set.
type schemaInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON Schema file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a JSON Schema document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline JSON Schema document content (JSON or YAML)"`
}

// compileSettings are the compiler options shared by every tool.
type compileSettings struct {
	RootName         string
	NamespaceMapping map[string]string
	NoDedup          bool
}

func (s compileSettings) options() []compiler.Option {
	var opts []compiler.Option
	if s.RootName != "" {
		opts = append(opts, compiler.WithRootName(s.RootName))
	}
	if len(s.NamespaceMapping) > 0 {
		opts = append(opts, compiler.WithNamespaceMapping(s.NamespaceMapping))
	}
	if s.NoDedup {
		opts = append(opts, compiler.WithDedup(false))
	}
	return opts
}

// key renders the settings deterministically for cache keys.
func (s compileSettings) key() string {
	ids := make([]string, 0, len(s.NamespaceMapping))
	for id := range s.NamespaceMapping {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	var b strings.Builder
	fmt.Fprintf(&b, "root=%s;dedup=%t", s.RootName, !s.NoDedup)
	for _, id := range ids {
		fmt.Fprintf(&b, ";%s=%s", id, s.NamespaceMapping[id])
	}
	return b.String()
}

// load returns the raw document bytes.
func (s schemaInput) load(ctx context.Context) ([]byte, error) {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	switch {
	case s.Content != "":
		if int64(len(s.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SCHEMAMAP_MAX_INLINE_SIZE to increase",
				len(s.Content), cfg.MaxInlineSize)
		}
		return []byte(s.Content), nil
	case s.File != "":
		return os.ReadFile(s.File)
	default:
		return fetch(ctx, s.URL)
	}
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	client := http.DefaultClient
	if !cfg.AllowPrivateIPs {
		client = newSafeHTTPClient()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxInlineSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("document at %s exceeds maximum %d bytes", url, cfg.MaxInlineSize)
	}
	return data, nil
}

// compileSchemas loads every input and compiles them as one document set,
// using the cache when enabled.
func compileSchemas(ctx context.Context, inputs []schemaInput, settings compileSettings) (*compiler.Result, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("at least one schema is required")
	}
	if len(inputs) > cfg.MaxSchemas {
		return nil, fmt.Errorf("%d schemas exceeds maximum %d; set SCHEMAMAP_MAX_SCHEMAS to increase", len(inputs), cfg.MaxSchemas)
	}

	docs := make([][]byte, 0, len(inputs))
	h := sha256.New()
	for i, in := range inputs {
		data, err := in.load(ctx)
		if err != nil {
			return nil, fmt.Errorf("schemas[%d]: %w", i, err)
		}
		docs = append(docs, data)
		sum := sha256.Sum256(data)
		h.Write(sum[:])
	}
	h.Write([]byte(settings.key()))
	key := hex.EncodeToString(h.Sum(nil))

	if cfg.CacheEnabled {
		if cached := resultCache.get(key); cached != nil {
			return cached, nil
		}
	}
	result, err := compiler.Compile(docs, settings.options()...)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		resultCache.put(key, result, cfg.CacheTTL)
	}
	return result, nil
}

// cacheEntry holds a cached compile result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *compiler.Result
	insertAt  time.Time
	expiresAt time.Time
}

// resultCacheStore provides a session-scoped cache of compile results keyed
// by a SHA-256 over the document contents and compile settings. A
// background sweeper removes expired entries.
type resultCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var resultCache = &resultCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *resultCacheStore) get(key string) *compiler.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.result
	}
	return nil
}

// put stores a result, evicting the least recently used entry at capacity.
func (c *resultCacheStore) put(key string, result *compiler.Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *resultCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper. It stops when ctx
// is cancelled.
func (c *resultCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *resultCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *resultCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
