package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
)

const userAgent = "Mozilla/5.0 (compatible; PulseBoard/1.0)"

// Breaker configures when a provider is short-circuited. After Failures
// consecutive failed calls every call is rejected for Cooldown, then a single
// trial call decides whether the provider is back.
type Breaker struct {
	Failures uint32
	Cooldown time.Duration
}

// DefaultBreaker suits fetchers called in quick succession.
func DefaultBreaker() Breaker {
	return Breaker{Failures: 5, Cooldown: 30 * time.Second}
}

func newBreaker(name string, b Breaker) *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     b.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= b.Failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[WARN] provider %s breaker %s -> %s", name, from, to)
		},
	})
}

// providerClient performs single-attempt JSON GETs against one provider.
// Calls pass through a circuit breaker so a provider that keeps failing is
// short-circuited instead of being hit every cycle.
type providerClient struct {
	name    string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func newProviderClient(name, proxyURL string, timeout time.Duration) *providerClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &providerClient{
		name: name,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		breaker: newBreaker(name, DefaultBreaker()),
	}
}

// setBreaker replaces the breaker, resetting its counts.
func (c *providerClient) setBreaker(b Breaker) {
	c.breaker = newBreaker(c.name, b)
}

// getJSON fetches endpoint and decodes the body into out. Every failure is
// wrapped with ErrDataUnavailable.
func (c *providerClient) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.get(ctx, endpoint)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode: %w", ErrDataUnavailable, err)
	}
	return nil
}

func (c *providerClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, truncate(body, 256))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
