package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/recipedia/internal/logger"
	"github.com/alexisbeaulieu97/recipedia/internal/ports"
	apperrors "github.com/alexisbeaulieu97/recipedia/pkg/errors"
)

// HTTPClient is the subset of *http.Client the client uses.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to TheMealDB.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     ports.Logger
	shuffle    func(n int, swap func(i, j int))
	random     RandomPolicy
}

// ClientOpts configures a Client. Zero values select the defaults.
type ClientOpts struct {
	BaseURL    string
	HTTPClient HTTPClient
	Timeout    time.Duration
	Logger     ports.Logger
	// Shuffle reorders related candidates; rand.Shuffle when nil.
	Shuffle func(n int, swap func(i, j int))
	Random  RandomPolicy
}

var _ API = (*Client)(nil)

// NewClient builds a Client.
func NewClient(opts ClientOpts) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	shuffle := opts.Shuffle
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	random := opts.Random
	if random == (RandomPolicy{}) {
		random = DefaultRandomPolicy
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger.OrNoOp(opts.Logger).With("component", "mealdb"),
		shuffle:    shuffle,
		random:     random,
	}
}

// BaseURL returns the endpoint root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, op, endpoint string, params url.Values, out any) error {
	target := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "op", op, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request completed",
		"op", op,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return apperrors.NewStatusError(op, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) meals(ctx context.Context, op, endpoint string, params url.Values) ([]Recipe, error) {
	var body mealsResponse
	if err := c.get(ctx, op, endpoint, params, &body); err != nil {
		return nil, err
	}

	recipes := make([]Recipe, 0, len(body.Meals))
	for _, m := range body.Meals {
		if m == nil {
			continue
		}
		recipes = append(recipes, normalize(m))
	}
	return recipes, nil
}

// SearchByName returns recipes whose name matches term. No matches yields an
// empty slice.
func (c *Client) SearchByName(ctx context.Context, term string) ([]Recipe, error) {
	return c.meals(ctx, "search", "search.php", url.Values{"s": {term}})
}

// LookupByID returns the recipe with id, or nil when none exists.
func (c *Client) LookupByID(ctx context.Context, id string) (*Recipe, error) {
	recipes, err := c.meals(ctx, "lookup", "lookup.php", url.Values{"i": {id}})
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return &recipes[0], nil
}

// LookupMany looks up every id concurrently. Any failure fails the whole call;
// ids with no match are dropped. Results follow the order of ids.
func (c *Client) LookupMany(ctx context.Context, ids []string) ([]Recipe, error) {
	found := make([]*Recipe, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			recipe, err := c.LookupByID(gctx, id)
			if err != nil {
				return err
			}
			found[i] = recipe
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recipes := make([]Recipe, 0, len(ids))
	for _, r := range found {
		if r != nil {
			recipes = append(recipes, *r)
		}
	}
	return recipes, nil
}

// Random returns one random recipe.
func (c *Client) Random(ctx context.Context) (*Recipe, error) {
	recipes, err := c.meals(ctx, "random", "random.php", nil)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return &recipes[0], nil
}

// FetchRandomUnique collects up to count distinct random recipes.
func (c *Client) FetchRandomUnique(ctx context.Context, count int) ([]Recipe, error) {
	recipes, err := c.random.Collect(ctx, count, c.drawRandom)
	if err != nil {
		return nil, err
	}
	if len(recipes) < count {
		c.logger.Info(ctx, "random pool exhausted before target",
			"want", count,
			"have", len(recipes),
		)
	}
	return recipes, nil
}

// drawRandom issues n concurrent random requests.
func (c *Client) drawRandom(ctx context.Context, n int) ([]Recipe, error) {
	batch := make([]*Recipe, n)

	g, gctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error {
			r, err := c.Random(gctx)
			if err != nil {
				return err
			}
			batch[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Recipe, 0, n)
	for _, r := range batch {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// FetchMostPopular returns the fixed popular selection.
func (c *Client) FetchMostPopular(ctx context.Context) ([]Recipe, error) {
	return c.LookupMany(ctx, MostPopularIDs)
}

// ListCategory returns the summaries of every recipe in category.
func (c *Client) ListCategory(ctx context.Context, category string) ([]Summary, error) {
	var body filterResponse
	if err := c.get(ctx, "filter", "filter.php", url.Values{"c": {category}}, &body); err != nil {
		return nil, err
	}
	if body.Meals == nil {
		return []Summary{}, nil
	}
	return body.Meals, nil
}

// FetchRelated returns up to RelatedLimit full recipes sharing category,
// excluding excludeID. Candidates are chosen at random.
func (c *Client) FetchRelated(ctx context.Context, category, excludeID string) ([]Recipe, error) {
	summaries, err := c.ListCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		if s.ID != "" && s.ID != excludeID {
			ids = append(ids, s.ID)
		}
	}
	c.shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if len(ids) > RelatedLimit {
		ids = ids[:RelatedLimit]
	}
	if len(ids) == 0 {
		return []Recipe{}, nil
	}
	return c.LookupMany(ctx, ids)
}
