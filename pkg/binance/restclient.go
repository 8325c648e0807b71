package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) HTTPClient() *http.Client {
	return c.httpClient
}

// GetKlines fetches up to limit candlesticks for symbol, oldest first.
func (c *RESTClient) GetKlines(ctx context.Context, symbol, interval string, limit int) ([]Kline, error) {
	if _, err := ParseKlineInterval(interval); err != nil {
		return nil, err
	}
	if limit < MinKlineLimit || limit > MaxKlineLimit {
		return nil, fmt.Errorf("invalid kline limit %d: must be between %d and %d", limit, MinKlineLimit, MaxKlineLimit)
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("limit", strconv.Itoa(limit))

	var raw [][]json.RawMessage
	if err := c.get(ctx, "/api/v3/klines", params, &raw); err != nil {
		return nil, err
	}

	klines, err := ParseKlineList(raw)
	if err != nil {
		return nil, fmt.Errorf("parse result: %w", err)
	}
	return klines, nil
}

// GetAveragePrice fetches the provider's rolling average price for symbol.
func (c *RESTClient) GetAveragePrice(ctx context.Context, symbol string) (*AvgPrice, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var avg AvgPrice
	if err := c.get(ctx, "/api/v3/avgPrice", params, &avg); err != nil {
		return nil, err
	}
	return &avg, nil
}

func (c *RESTClient) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path + "?" + params.Encode()

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return newAPIError(resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == 0 {
		apiErr.Code = 0
		apiErr.Msg = string(body)
	}
	return apiErr
}
