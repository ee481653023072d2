// Package algomancer resolves card and deck display data from the
// algomancer.cc catalog API.
package algomancer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/catalog"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/platform/logging"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/platform/resilience"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/usecase"
)

const (
	defaultBaseURL   = "https://algomancer.cc/api"
	defaultBatchSize = 50
	defaultWorkers   = 4
	maxResponseBytes = 4 << 20

	cardsLookupPath = "/cards/lookup"
	decksLookupPath = "/decks/lookup"
)

var errCatalogTransient = crerr.New("catalog transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	BatchSize      int
	Workers        int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	batchSize  int
	workers    int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

var _ catalog.Lookup = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 5 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		batchSize:  positiveOr(cfg.BatchSize, defaultBatchSize),
		workers:    positiveOr(cfg.Workers, defaultWorkers),
		logger:     logger,
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
}

func (c *Client) CardsByIDs(ctx context.Context, ids []string) ([]catalog.Card, error) {
	docs, err := lookupAll[cardDocument](ctx, c, cardsLookupPath, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup cards: %w", err)
	}

	out := make([]catalog.Card, 0, len(docs))
	for _, d := range docs {
		out = append(out, catalog.Card{ID: d.ID, Name: d.Name, ImageURL: d.ImageURL, Element: d.Element})
	}
	return out, nil
}

func (c *Client) DecksByIDs(ctx context.Context, ids []string) ([]catalog.Deck, error) {
	docs, err := lookupAll[deckDocument](ctx, c, decksLookupPath, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup decks: %w", err)
	}

	out := make([]catalog.Deck, 0, len(docs))
	for _, d := range docs {
		out = append(out, catalog.Deck{ID: d.ID, Name: d.Name, OwnerID: d.OwnerID, ImageURL: d.ImageURL})
	}
	return out, nil
}

// lookupAll splits ids into batches and fetches them over a bounded worker
// pool. Any failed batch fails the whole lookup.
func lookupAll[T any](ctx context.Context, c *Client, path string, ids []string) ([]T, error) {
	ids = uniqueNonEmpty(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	batches := chunk(ids, c.batchSize)
	if len(batches) == 1 {
		return lookupBatch[T](ctx, c, path, batches[0])
	}

	pool, err := ants.NewPool(min(c.workers, len(batches)))
	if err != nil {
		return nil, crerr.Wrap(err, "create catalog worker pool")
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		out      = make([]T, 0, len(ids))
		firstErr error
	)
	for _, batch := range batches {
		batch := batch
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			items, err := lookupBatch[T](ctx, c, path, batch)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			out = append(out, items...)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, crerr.Wrap(err, "submit catalog batch")
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func lookupBatch[T any](ctx context.Context, c *Client, path string, ids []string) ([]T, error) {
	var envelope lookupResponse[T]
	err := c.breaker.Do(ctx, func(ctx context.Context) error {
		return c.postJSON(ctx, path, lookupRequest{IDs: ids}, &envelope)
	}, isCircuitFailure)
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "catalog circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return nil, fmt.Errorf("%w: catalog is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		if isCircuitFailure(err) {
			return nil, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, target any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return crerr.Wrap(err, "encode catalog request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf.B))
	if err != nil {
		return crerr.Wrap(err, "build catalog request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "send catalog request"), errCatalogTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "read catalog response"), errCatalogTransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := crerr.Newf("catalog status=%d body=%s", resp.StatusCode, abbreviate(raw))
		if isRetryableStatus(resp.StatusCode) {
			return crerr.Mark(statusErr, errCatalogTransient)
		}
		return statusErr
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode catalog response")
	}
	return nil
}

type lookupRequest struct {
	IDs []string `json:"ids"`
}

type lookupResponse[T any] struct {
	Data []T `json:"data"`
}

type cardDocument struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Element  string `json:"element"`
}

type deckDocument struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	OwnerID  string `json:"ownerId"`
	ImageURL string `json:"imageUrl"`
}
