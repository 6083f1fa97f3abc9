// Package pokeapi is the entity repository: it fetches entities by linear id
// range from a PokeAPI compatible HTTP endpoint.
package pokeapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/atomicstack/pokedex/internal/logging/events"
	"github.com/atomicstack/pokedex/internal/pokemon"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

const maxBodyBytes = 4 << 20

// Repository is everything the engine needs from the outside world.
type Repository interface {
	// FetchRange returns entities for ids start..start+count-1. Index i of the
	// result holds id start+i. Any single failure fails the whole range.
	FetchRange(ctx context.Context, start, count int) ([]pokemon.Pokemon, error)
	// FetchSpecies returns localized species data for one id.
	FetchSpecies(ctx context.Context, id int) (pokemon.Species, error)
}

// Config describes how the HTTP client talks to the API.
type Config struct {
	BaseURL         string
	Concurrency     int
	Timeout         time.Duration
	RequestInterval time.Duration
	HTTPClient      *http.Client
}

// Client implements Repository over HTTP.
type Client struct {
	baseURL     string
	concurrency int
	timeout     time.Duration
	http        *http.Client
	throttle    *throttle
}

var _ Repository = (*Client)(nil)

// New builds a client. Zero values fall back to sensible defaults.
func New(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:     base,
		concurrency: concurrency,
		timeout:     cfg.Timeout,
		http:        httpClient,
		throttle:    newThrottle(cfg.RequestInterval),
	}
}

// FetchRange fetches each id with up to Concurrency requests in flight.
func (c *Client) FetchRange(ctx context.Context, start, count int) ([]pokemon.Pokemon, error) {
	if start < 1 || count < 1 {
		return nil, fmt.Errorf("fetch range start=%d count=%d: %w", start, count, ErrInvalidRange)
	}
	out := make([]pokemon.Pokemon, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i := 0; i < count; i++ {
		id := start + i
		g.Go(func() error {
			p, err := c.fetchPokemon(gctx, id)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchSpecies fetches the species record for id.
func (c *Client) FetchSpecies(ctx context.Context, id int) (pokemon.Species, error) {
	if id < 1 {
		return pokemon.Species{}, fmt.Errorf("fetch species id=%d: %w", id, ErrInvalidRange)
	}
	url := fmt.Sprintf("%s/pokemon-species/%d", c.baseURL, id)
	body, err := c.get(ctx, url)
	if err != nil {
		return pokemon.Species{}, err
	}
	s, err := DecodeSpecies(body)
	if err != nil {
		return pokemon.Species{}, &DecodeError{URL: url, Err: err}
	}
	return s, nil
}

func (c *Client) fetchPokemon(ctx context.Context, id int) (pokemon.Pokemon, error) {
	url := fmt.Sprintf("%s/pokemon/%d", c.baseURL, id)
	body, err := c.get(ctx, url)
	if err != nil {
		return pokemon.Pokemon{}, err
	}
	p, err := DecodePokemon(body)
	if err != nil {
		return pokemon.Pokemon{}, &DecodeError{URL: url, Err: err}
	}
	if p.ID != id {
		return pokemon.Pokemon{}, &DecodeError{URL: url, Err: unexpectedID(id, p.ID)}
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.throttle.wait(ctx); err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	events.Client.Request(url)
	began := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		events.Client.Error(url, err)
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	events.Client.Response(url, resp.StatusCode, time.Since(began))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	return body, nil
}

// Funcs adapts plain functions to Repository. Nil fields fail with
// ErrUnimplemented, which keeps tests honest about what they exercise.
type Funcs struct {
	FetchRangeFunc   func(ctx context.Context, start, count int) ([]pokemon.Pokemon, error)
	FetchSpeciesFunc func(ctx context.Context, id int) (pokemon.Species, error)
}

var _ Repository = Funcs{}

func (f Funcs) FetchRange(ctx context.Context, start, count int) ([]pokemon.Pokemon, error) {
	if f.FetchRangeFunc == nil {
		return nil, fmt.Errorf("FetchRange: %w", ErrUnimplemented)
	}
	return f.FetchRangeFunc(ctx, start, count)
}

func (f Funcs) FetchSpecies(ctx context.Context, id int) (pokemon.Species, error) {
	if f.FetchSpeciesFunc == nil {
		return pokemon.Species{}, fmt.Errorf("FetchSpecies: %w", ErrUnimplemented)
	}
	return f.FetchSpeciesFunc(ctx, id)
}

// Preview returns a repository serving mock data without network access.
func Preview() Funcs {
	return Funcs{
		FetchRangeFunc: func(ctx context.Context, start, count int) ([]pokemon.Pokemon, error) {
			if start < 1 || count < 1 {
				return nil, fmt.Errorf("fetch range start=%d count=%d: %w", start, count, ErrInvalidRange)
			}
			return pokemon.MockRange(start, start+count-1), nil
		},
		FetchSpeciesFunc: func(ctx context.Context, id int) (pokemon.Species, error) {
			return pokemon.MockSpecies(id), nil
		},
	}
}
