package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/coinwatch/assethub/lib/cache"
	"github.com/coinwatch/assethub/lib/coingecko"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

var (
	ErrAssetNotFound       = errors.New("asset not found")
	ErrUpstreamUnavailable = errors.New("market data upstream unavailable")
	ErrFavoriteNotFound    = errors.New("favorite not found")
)

// MarketDataClient is the upstream provider contract. The production
// implementation lives in lib/coingecko.
type MarketDataClient interface {
	Markets(ctx context.Context, params coingecko.MarketsParams) ([]coingecko.Market, error)
	Coin(ctx context.Context, id string) (*coingecko.CoinDetail, error)
	MarketChart(ctx context.Context, id string, days int) (*coingecko.ChartData, error)
}

// NoiseFunc supplies the volatility term for one synthetic chart point.
// It must return values in [-0.05, 0.05].
type NoiseFunc func() float64

func DefaultNoise() float64 {
	return (rand.Float64() - 0.5) * 0.1
}

type AssethubService struct {
	Config *Config
	DB     *bun.DB
	Cache  cache.Store
	Client MarketDataClient
	Logger *lecho.Logger
	// Noise is the randomness source for synthetic charts. Tests inject a
	// deterministic one.
	Noise NoiseFunc
}

func (svc *AssethubService) cacheTTL() time.Duration {
	return time.Duration(svc.Config.CacheTTL) * time.Second
}

// cacheSet writes a cache entry and only logs on failure. A broken cache
// must never fail a request.
func (svc *AssethubService) cacheSet(ctx context.Context, key string, v interface{}) {
	if err := cache.SetJSON(ctx, svc.Cache, key, v, svc.cacheTTL()); err != nil {
		svc.Logger.Errorf("Failed to write cache entry %s: %v", key, err)
	}
}

func (svc *AssethubService) noise() float64 {
	if svc.Noise != nil {
		return svc.Noise()
	}
	return DefaultNoise()
}
