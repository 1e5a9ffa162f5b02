package coingecko

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, "assethub-test/1.0", 5*time.Second), server
}

func TestMarketsRequestShape(t *testing.T) {
	var gotQuery map[string][]string
	var gotUA, gotAccept string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		assert.Equal(t, "/coins/markets", r.URL.Path)
		w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":50000}]`))
	})
	defer server.Close()

	markets, err := client.Markets(context.Background(), MarketsParams{
		IDs:       []string{"bitcoin", "ethereum"},
		PerPage:   2,
		Sparkline: true,
	})

	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "bitcoin", markets[0].ID)
	assert.Equal(t, 50000.0, *markets[0].CurrentPrice)

	assert.Equal(t, []string{"usd"}, gotQuery["vs_currency"])
	assert.Equal(t, []string{"market_cap_desc"}, gotQuery["order"])
	assert.Equal(t, []string{"2"}, gotQuery["per_page"])
	assert.Equal(t, []string{"1"}, gotQuery["page"])
	assert.Equal(t, []string{"true"}, gotQuery["sparkline"])
	assert.Equal(t, []string{"24h"}, gotQuery["price_change_percentage"])
	assert.Equal(t, []string{"bitcoin,ethereum"}, gotQuery["ids"])
	assert.Equal(t, "assethub-test/1.0", gotUA)
	assert.Equal(t, "application/json", gotAccept)
}

func TestMarketsOmitsIDsFilterWhenEmpty(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("ids"))
		assert.Equal(t, "false", r.URL.Query().Get("sparkline"))
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	markets, err := client.Markets(context.Background(), MarketsParams{PerPage: 10})

	require.NoError(t, err)
	assert.Empty(t, markets)
}

func TestCoinDecodesDetail(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin", r.URL.Path)
		w.Write([]byte(`{
			"id": "bitcoin",
			"symbol": "btc",
			"name": "Bitcoin",
			"description": {"en": "Digital gold."},
			"image": {"large": "https://img.example/btc.png"},
			"market_data": {
				"current_price": {"usd": 50000, "eur": 47000},
				"market_cap": {"usd": 950000000000},
				"price_change_24h": -1000,
				"price_change_percentage_24h": -1.96
			}
		}`))
	})
	defer server.Close()

	detail, err := client.Coin(context.Background(), "bitcoin")

	require.NoError(t, err)
	assert.Equal(t, "bitcoin", detail.ID)
	assert.Equal(t, "Digital gold.", detail.Description["en"])
	assert.Equal(t, "https://img.example/btc.png", detail.Image.Large)
	assert.Equal(t, 50000.0, detail.MarketData.CurrentPrice["usd"])
	assert.Equal(t, -1000.0, *detail.MarketData.PriceChange24h)
}

func TestMarketChartDecodesSeries(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		w.Write([]byte(`{
			"prices": [[1712908800000, 50000], [1712912400000, 50100]],
			"market_caps": [[1712908800000, 950000000000]],
			"total_volumes": []
		}`))
	})
	defer server.Close()

	chart, err := client.MarketChart(context.Background(), "bitcoin", 7)

	require.NoError(t, err)
	require.Len(t, chart.Prices, 2)
	assert.Equal(t, ChartPoint{1712908800000, 50000}, chart.Prices[0])
	assert.Len(t, chart.MarketCaps, 1)
	assert.Empty(t, chart.TotalVolumes)
}

func TestNotFoundStatusMapsToErrNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.Coin(context.Background(), "invalid-coin")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServerErrorMapsToBadResponse(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := client.Markets(context.Background(), MarketsParams{PerPage: 10})

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, KindBadResponse, upstreamErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.Status)
}

func TestMalformedBodyMapsToBadResponse(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	})
	defer server.Close()

	_, err := client.Markets(context.Background(), MarketsParams{PerPage: 10})

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, KindBadResponse, upstreamErr.Kind)
}

func TestConnectionFailureMapsToUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // refuse connections from now on
	client := NewClient(server.URL, "assethub-test/1.0", time.Second)

	_, err := client.Markets(context.Background(), MarketsParams{PerPage: 10})

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, KindUnreachable, upstreamErr.Kind)
}
