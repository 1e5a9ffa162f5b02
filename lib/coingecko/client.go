package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when the upstream reports an unknown coin id.
var ErrNotFound = errors.New("coingecko: coin not found")

type ErrorKind int

const (
	// KindUnreachable covers transport-level failures: DNS, refused
	// connections, timeouts.
	KindUnreachable ErrorKind = iota
	// KindBadResponse covers non-success statuses and malformed bodies.
	KindBadResponse
)

type UpstreamError struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("coingecko: upstream returned status %d", e.Status)
	}
	return fmt.Sprintf("coingecko: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
	}
}

type MarketsParams struct {
	// IDs restricts the result to the given coin ids. Empty means top of
	// the market.
	IDs       []string
	PerPage   int
	Sparkline bool
}

// Markets calls /coins/markets ordered by market cap descending, priced in
// USD, with 24h change percentages.
func (c *Client) Markets(ctx context.Context, params MarketsParams) ([]Market, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(params.PerPage))
	q.Set("page", "1")
	q.Set("sparkline", strconv.FormatBool(params.Sparkline))
	q.Set("price_change_percentage", "24h")
	if len(params.IDs) > 0 {
		q.Set("ids", strings.Join(params.IDs, ","))
	}

	var markets []Market
	if err := c.getJSON(ctx, "/coins/markets", q, &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

// Coin calls /coins/{id} and returns the full detail record.
func (c *Client) Coin(ctx context.Context, id string) (*CoinDetail, error) {
	var detail CoinDetail
	if err := c.getJSON(ctx, "/coins/"+url.PathEscape(id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// MarketChart calls /coins/{id}/market_chart for the given day range.
func (c *Client) MarketChart(ctx context.Context, id string, days int) (*ChartData, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", strconv.Itoa(days))

	var chart ChartData
	if err := c.getJSON(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", q, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &UpstreamError{Kind: KindUnreachable, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Kind: KindUnreachable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{Kind: KindBadResponse, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &UpstreamError{Kind: KindBadResponse, Err: err}
	}
	return nil
}
