// Package query is a small keyed cache for remote reads. It returns fresh
// values without refetching, shares in-flight fetches between callers,
// retries failures with backoff and expires idle entries.
package query

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/alexisbeaulieu97/recipedia/internal/logger"
	"github.com/alexisbeaulieu97/recipedia/internal/ports"
	apperrors "github.com/alexisbeaulieu97/recipedia/pkg/errors"
)

// ErrDisabled is returned by Fetch for a query whose Enabled flag is false.
var ErrDisabled = errors.New("query disabled")

const (
	DefaultSize    = 256
	DefaultRetries = 3
	DefaultGCTime  = 5 * time.Minute
	DefaultTimeout = 30 * time.Second
)

// Query describes one cacheable read.
type Query[T any] struct {
	Key   []string
	Fetch func(ctx context.Context) (T, error)
	// Enabled gates the fetch entirely.
	Enabled   bool
	StaleTime time.Duration
	// GCTime is how long an entry survives after its last update. Zero means
	// DefaultGCTime.
	GCTime time.Duration
}

type status int

const (
	statusLoading status = iota
	statusSuccess
	statusError
)

type entry struct {
	key         []string
	value       any
	hasValue    bool
	err         error
	status      status
	updatedAt   time.Time
	staleTime   time.Duration
	gcTime      time.Duration
	invalidated bool
}

func (e *entry) stale(now time.Time) bool {
	return e.invalidated || !e.hasValue || now.Sub(e.updatedAt) >= e.staleTime
}

// Stats summarizes the cache.
type Stats struct {
	Total   int `json:"total"`
	Stale   int `json:"stale"`
	Loading int `json:"loading"`
	Error   int `json:"error"`
}

// Options configures a Client.
type Options struct {
	Size    int
	Retries int
	// InitialInterval is the first backoff delay.
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// Timeout bounds a shared fetch, retries included. It runs detached from
	// the callers waiting on it.
	Timeout time.Duration
	Now     func() time.Time
	Logger  ports.Logger
}

// Client holds the cache. The zero value is not usable; call New.
type Client struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *entry]
	group   singleflight.Group

	retries         int
	initialInterval time.Duration
	maxInterval     time.Duration
	timeout         time.Duration
	now             func() time.Time
	logger          ports.Logger
}

// New creates a Client.
func New(opts Options) *Client {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	} else if retries == 0 {
		retries = DefaultRetries
	}
	initial := opts.InitialInterval
	if initial <= 0 {
		initial = time.Second
	}
	maxInterval := opts.MaxInterval
	if maxInterval <= 0 {
		maxInterval = 30 * time.Second
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, *entry](size)

	return &Client{
		entries:         cache,
		retries:         retries,
		initialInterval: initial,
		maxInterval:     maxInterval,
		timeout:         timeout,
		now:             now,
		logger:          logger.OrNoOp(opts.Logger).With("component", "query"),
	}
}

func hashKey(key []string) string {
	return strings.Join(key, "\x1f")
}

// Fetch returns the cached value for q when fresh, otherwise runs q.Fetch.
// Concurrent calls for the same key share a single fetch. A caller whose ctx
// ends stops waiting; the fetch keeps running for the others.
func Fetch[T any](ctx context.Context, c *Client, q Query[T]) (T, error) {
	var zero T
	if !q.Enabled {
		return zero, ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	hashed := hashKey(q.Key)
	c.collect()

	if v, ok := c.fresh(hashed); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	ch := c.group.DoChan(hashed, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		c.begin(hashed, q.Key, q.StaleTime, q.GCTime)
		value, err := c.retry(fetchCtx, hashed, func() (any, error) { return q.Fetch(fetchCtx) })
		c.finish(hashed, value, err)
		return value, err
	})

	select {
	case <-ctx.Done():
		c.logger.Debug(ctx, "caller stopped waiting", "key", hashed, "error", ctx.Err())
		return zero, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.logger.Debug(ctx, "shared in-flight fetch", "key", hashed)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		typed, _ := res.Val.(T)
		return typed, nil
	}
}

func (c *Client) retry(ctx context.Context, hashed string, op func() (any, error)) (any, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = c.maxInterval

	attempt := 0
	return backoff.Retry(ctx, func() (any, error) {
		attempt++
		v, err := op()
		if err == nil {
			return v, nil
		}
		if !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		c.logger.Debug(ctx, "fetch failed", "key", hashed, "attempt", attempt, "error", err)
		return nil, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(c.retries+1)))
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *apperrors.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

func (c *Client) fresh(hashed string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(hashed)
	if !ok || e.status != statusSuccess || e.stale(c.now()) {
		return nil, false
	}
	return e.value, true
}

func (c *Client) begin(hashed string, key []string, staleTime, gcTime time.Duration) {
	if gcTime <= 0 {
		gcTime = DefaultGCTime
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Peek(hashed)
	if !ok {
		e = &entry{key: append([]string(nil), key...)}
		c.entries.Add(hashed, e)
	}
	e.status = statusLoading
	e.staleTime = staleTime
	e.gcTime = gcTime
}

func (c *Client) finish(hashed string, value any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Peek(hashed)
	if !ok {
		// Cleared while in flight.
		return
	}
	e.updatedAt = c.now()
	if err != nil {
		e.status = statusError
		e.err = err
		return
	}
	e.status = statusSuccess
	e.value = value
	e.hasValue = true
	e.err = nil
	e.invalidated = false
}

// collect drops entries whose gc time has elapsed.
func (c *Client) collect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for _, k := range c.entries.Keys() {
		e, ok := c.entries.Peek(k)
		if !ok || e.status == statusLoading {
			continue
		}
		if now.Sub(e.updatedAt) > e.gcTime {
			c.entries.Remove(k)
		}
	}
}

// Invalidate marks every entry whose key begins with prefix as stale. An
// empty prefix matches everything.
func (c *Client) Invalidate(prefix ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, k := range c.entries.Keys() {
		e, ok := c.entries.Peek(k)
		if !ok || !hasPrefix(e.key, prefix) {
			continue
		}
		e.invalidated = true
		n++
	}
	return n
}

func hasPrefix(key, prefix []string) bool {
	if len(prefix) > len(key) {
		return false
	}
	for i := range prefix {
		if key[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Clear removes every entry.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
}

// Stats reports entry counts. Stale counts entries that would refetch.
func (c *Client) Stats() Stats {
	c.collect()

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var s Stats
	for _, k := range c.entries.Keys() {
		e, ok := c.entries.Peek(k)
		if !ok {
			continue
		}
		s.Total++
		switch e.status {
		case statusLoading:
			s.Loading++
		case statusError:
			s.Error++
		}
		if e.stale(now) {
			s.Stale++
		}
	}
	return s
}
