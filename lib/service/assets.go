package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"sort"
	"strings"

	"github.com/coinwatch/assethub/lib/cache"
	"github.com/coinwatch/assethub/lib/coingecko"
)

const (
	topAssetsCacheKey = "assets:list:top10"
	topAssetsCount    = 10

	assetCacheKeyPrefix = "asset:"
	batchCacheKeyPrefix = "assets:batch:"
)

// Asset is the normalized per-asset record kept in the cache and returned
// by the detail endpoint. Only the id is guaranteed; upstream responses are
// not schema-guaranteed, so everything else is nullable.
type Asset struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Symbol                   string   `json:"symbol"`
	Image                    *string  `json:"image"`
	CurrentPrice             *float64 `json:"current_price"`
	PriceChange24h           *float64 `json:"price_change_24h"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	MarketCap                *float64 `json:"market_cap"`
	Description              *string  `json:"description"`
}

func assetCacheKey(id string) string {
	return assetCacheKeyPrefix + id
}

// batchCacheKey derives a deterministic key from the sorted, deduplicated,
// trimmed id set so equivalent requests share one entry.
func batchCacheKey(ids []string) string {
	sum := sha1.Sum([]byte(strings.Join(ids, ",")))
	return batchCacheKeyPrefix + hex.EncodeToString(sum[:])
}

func normalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		normalized = append(normalized, id)
	}
	sort.Strings(normalized)
	return normalized
}

// ListAssets returns market records for the given ids, or the top 10 by
// market cap when ids is empty. Upstream failures never propagate: the
// result degrades to whatever the cache still holds, or an empty list.
func (svc *AssethubService) ListAssets(ctx context.Context, ids []string) []coingecko.Market {
	ids = normalizeIDs(ids)
	if len(ids) == 0 {
		return svc.topAssets(ctx)
	}
	return svc.assetsByIDs(ctx, ids)
}

func (svc *AssethubService) topAssets(ctx context.Context) []coingecko.Market {
	var markets []coingecko.Market
	if cache.GetJSON(ctx, svc.Cache, topAssetsCacheKey, &markets) {
		return markets
	}

	markets, err := svc.Client.Markets(ctx, coingecko.MarketsParams{
		PerPage:   topAssetsCount,
		Sparkline: true,
	})
	if err != nil {
		svc.Logger.Errorf("Failed to fetch top assets: %v", err)
		return []coingecko.Market{}
	}
	if len(markets) == 0 {
		return []coingecko.Market{}
	}

	svc.cacheSet(ctx, topAssetsCacheKey, markets)
	svc.seedAssetEntries(ctx, markets)
	return markets
}

func (svc *AssethubService) assetsByIDs(ctx context.Context, ids []string) []coingecko.Market {
	key := batchCacheKey(ids)
	var markets []coingecko.Market
	if cache.GetJSON(ctx, svc.Cache, key, &markets) {
		return markets
	}

	markets, err := svc.Client.Markets(ctx, coingecko.MarketsParams{
		IDs:     ids,
		PerPage: len(ids),
	})
	if err != nil {
		svc.Logger.Errorf("Failed to fetch assets %v, assembling from cache: %v", ids, err)
		return svc.assembleFromCache(ctx, ids)
	}

	svc.cacheSet(ctx, key, markets)
	svc.seedAssetEntries(ctx, markets)
	return markets
}

// assembleFromCache builds a best-effort batch response from whatever
// per-asset entries already exist. Ids without an entry are skipped, so
// the result may be shorter than the request, or empty.
func (svc *AssethubService) assembleFromCache(ctx context.Context, ids []string) []coingecko.Market {
	markets := make([]coingecko.Market, 0, len(ids))
	for _, id := range ids {
		var asset Asset
		if !cache.GetJSON(ctx, svc.Cache, assetCacheKey(id), &asset) {
			continue
		}
		markets = append(markets, marketFromAsset(asset))
	}
	return markets
}

// seedAssetEntries warms the per-asset cache from a markets response so
// subsequent detail fetches start from a partial record. The list endpoint
// never carries descriptions, so these entries stay partial until a detail
// fetch overwrites them.
func (svc *AssethubService) seedAssetEntries(ctx context.Context, markets []coingecko.Market) {
	for _, market := range markets {
		svc.cacheSet(ctx, assetCacheKey(market.ID), assetFromMarket(market))
	}
}

// GetAsset returns the fully normalized record for one asset, calling the
// upstream only when the cached entry is absent or was never enriched with
// a description.
func (svc *AssethubService) GetAsset(ctx context.Context, id string) (*Asset, error) {
	var cached *Asset
	var entry Asset
	if cache.GetJSON(ctx, svc.Cache, assetCacheKey(id), &entry) {
		cached = &entry
	}
	if cached != nil && cached.Description != nil {
		return cached, nil
	}

	detail, err := svc.Client.Coin(ctx, id)
	if err != nil {
		if errors.Is(err, coingecko.ErrNotFound) && cached == nil {
			return nil, ErrAssetNotFound
		}
		if cached != nil {
			svc.Logger.Errorf("Serving stale cache entry for %s after upstream error: %v", id, err)
			return cached, nil
		}
		svc.Logger.Errorf("Failed to fetch asset %s: %v", id, err)
		return nil, ErrUpstreamUnavailable
	}

	asset := assetFromDetail(detail)
	svc.cacheSet(ctx, assetCacheKey(id), asset)
	return asset, nil
}

func assetFromMarket(market coingecko.Market) Asset {
	asset := Asset{
		ID:                       market.ID,
		Name:                     market.Name,
		Symbol:                   market.Symbol,
		CurrentPrice:             market.CurrentPrice,
		PriceChange24h:           market.PriceChange24h,
		PriceChangePercentage24h: market.PriceChangePercentage24h,
		MarketCap:                market.MarketCap,
	}
	if market.Image != "" {
		asset.Image = &market.Image
	}
	return asset
}

func marketFromAsset(asset Asset) coingecko.Market {
	market := coingecko.Market{
		ID:                       asset.ID,
		Name:                     asset.Name,
		Symbol:                   asset.Symbol,
		CurrentPrice:             asset.CurrentPrice,
		PriceChange24h:           asset.PriceChange24h,
		PriceChangePercentage24h: asset.PriceChangePercentage24h,
		MarketCap:                asset.MarketCap,
	}
	if asset.Image != nil {
		market.Image = *asset.Image
	}
	return market
}

func assetFromDetail(detail *coingecko.CoinDetail) *Asset {
	asset := &Asset{
		ID:     detail.ID,
		Name:   detail.Name,
		Symbol: detail.Symbol,
	}
	if detail.Image.Large != "" {
		asset.Image = &detail.Image.Large
	}
	if md := detail.MarketData; md != nil {
		if price, ok := md.CurrentPrice["usd"]; ok {
			p := price
			asset.CurrentPrice = &p
		}
		if mcap, ok := md.MarketCap["usd"]; ok {
			c := mcap
			asset.MarketCap = &c
		}
		asset.PriceChange24h = md.PriceChange24h
		asset.PriceChangePercentage24h = md.PriceChangePercentage24h
	}
	// an enriched entry always carries a description, possibly empty, to
	// distinguish it from entries seeded by the list endpoint
	description := detail.Description["en"]
	asset.Description = &description
	return asset
}
