// Package useeio is a thin read-only client for a USEEIO-style API: the
// external collaborator that supplies the sector list, the indicator
// catalog, and the precomputed result matrix the heatmap engine consumes.
package useeio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/impactmap/impactmap-cli/internal/heatmap"
)

// DefaultMatrixName is the direct-requirements result matrix exposed by
// USEEIO-style APIs.
const DefaultMatrixName = "U"

type Client struct {
	httpClient       *http.Client
	baseURL          string
	apiKey           string
	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
}

// NewClient builds a client for the given API base URL. An empty apiKey is
// fine for public model endpoints. Non-positive timing arguments fall back
// to defaults.
func NewClient(baseURL, apiKey string, httpTimeout time.Duration, retryMax int, baseDelay, maxDelay time.Duration) *Client {
	if httpTimeout <= 0 {
		httpTimeout = 60 * time.Second
	}
	if retryMax <= 0 {
		retryMax = 3
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 4 * time.Second
	}
	return &Client{
		httpClient:       &http.Client{Timeout: httpTimeout},
		baseURL:          strings.TrimRight(baseURL, "/"),
		apiKey:           apiKey,
		retryMaxAttempts: retryMax,
		retryBaseDelay:   baseDelay,
		retryMaxDelay:    maxDelay,
	}
}

// Sectors fetches the full sector list.
func (c *Client) Sectors(ctx context.Context) ([]heatmap.Sector, error) {
	var out []heatmap.Sector
	if err := c.getJSON(ctx, "/sectors", &out); err != nil {
		return nil, fmt.Errorf("fetch sectors: %w", err)
	}
	return out, nil
}

// Indicators fetches the full indicator catalog.
func (c *Client) Indicators(ctx context.Context) ([]heatmap.Indicator, error) {
	var out []heatmap.Indicator
	if err := c.getJSON(ctx, "/indicators", &out); err != nil {
		return nil, fmt.Errorf("fetch indicators: %w", err)
	}
	return out, nil
}

// Matrix fetches the named result matrix as a dense row-major table keyed by
// (indicator index, sector index).
func (c *Client) Matrix(ctx context.Context, name string) ([][]float64, error) {
	if name == "" {
		name = DefaultMatrixName
	}
	var out [][]float64
	if err := c.getJSON(ctx, "/matrix/"+name, &out); err != nil {
		return nil, fmt.Errorf("fetch matrix %s: %w", name, err)
	}
	return out, nil
}

// FetchDataset pulls sectors, indicators, and the named matrix and bundles
// them for the engine.
func (c *Client) FetchDataset(ctx context.Context, matrixName string) (heatmap.Dataset, error) {
	sectors, err := c.Sectors(ctx)
	if err != nil {
		return heatmap.Dataset{}, err
	}
	indicators, err := c.Indicators(ctx)
	if err != nil {
		return heatmap.Dataset{}, err
	}
	matrix, err := c.Matrix(ctx, matrixName)
	if err != nil {
		return heatmap.Dataset{}, err
	}
	return heatmap.Dataset{
		Sectors:    sectors,
		Indicators: indicators,
		Matrix:     heatmap.NewDenseMatrix(matrix),
	}, nil
}

// getJSON performs a GET with bounded retry on 429/5xx and retryable network
// errors, then decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c.baseURL == "" {
		return errors.New("API base URL is not configured")
	}
	endpoint := c.baseURL + path
	maxAttempts := c.retryMaxAttempts
	backoff := c.retryBaseDelay

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		httpReq.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			httpReq.Header.Set("x-api-key", c.apiKey)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if isRetryableNetErr(err) && attempt < maxAttempts {
				lastErr = err
				time.Sleep(withJitter(backoff))
				backoff *= 2
				continue
			}
			return &UnreachableError{Endpoint: endpoint, Err: err}
		}

		done, err := c.handleResponse(resp, out, attempt < maxAttempts, &backoff)
		if done {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// handleResponse decodes a success body or classifies an error response.
// done=false signals the caller to retry.
func (c *Client) handleResponse(resp *http.Response, out any, mayRetry bool, backoff *time.Duration) (done bool, err error) {
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return true, fmt.Errorf("decode response: %w", err)
		}
		return true, nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: extractRequestID(resp)}
	var raw map[string]any
	if json.Unmarshal(body, &raw) == nil {
		if msg, ok := raw["message"].(string); ok {
			apiErr.Message = msg
		}
		if code, ok := raw["code"].(string); ok {
			apiErr.Code = code
		}
	}

	retryable := resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode >= 500 && resp.StatusCode <= 599)
	if retryable && mayRetry {
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := parseRetryAfterSeconds(ra); err == nil && secs > 0 {
				time.Sleep(time.Duration(secs) * time.Second)
				return false, apiErr
			}
		}
		sleep := withJitter(*backoff)
		if c.retryMaxDelay > 0 && sleep > c.retryMaxDelay {
			sleep = c.retryMaxDelay
		}
		time.Sleep(sleep)
		*backoff *= 2
		return false, apiErr
	}
	return true, classifyAPIError(apiErr, resp)
}

func isRetryableNetErr(err error) bool {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	return errors.Is(err, io.EOF)
}

// parseRetryAfterSeconds interprets a Retry-After header value as seconds or
// an HTTP date.
func parseRetryAfterSeconds(v string) (int, error) {
	if s, err := strconv.Atoi(v); err == nil {
		return s, nil
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return int(d.Seconds()), nil
	}
	return 0, fmt.Errorf("invalid Retry-After: %q", v)
}

// extractRequestID pulls a best-effort request ID from common headers.
func extractRequestID(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	for _, k := range []string{"X-Request-Id", "X-Request-ID", "X-Amzn-Requestid"} {
		if v := resp.Header.Get(k); v != "" {
			return v
		}
	}
	return ""
}

// withJitter returns a backoff duration with +/- 20% jitter applied.
func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 500 * time.Millisecond
	}
	f := 0.8 + rand.Float64()*0.4
	out := time.Duration(float64(d) * f)
	if out <= 0 {
		return d
	}
	return out
}
