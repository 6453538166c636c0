// internal/adapter/source/coingecko.go

package source

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"trendpulse/internal/domain/trend"
)

const defaultMaxNFTs = 5

// CoinGeckoConfig contains configuration for the crypto-trending adapter
type CoinGeckoConfig struct {
	BaseURL string
	// MaxNFTs truncates the secondary NFT list
	MaxNFTs int
}

// CoinGecko fetches trending coins and NFTs from the search/trending
// endpoint. Failure propagates, there is no degraded result for this source.
type CoinGecko struct {
	cfg    CoinGeckoConfig
	client *http.Client
	log    zerolog.Logger
}

// NewCoinGecko creates the crypto-trending adapter
func NewCoinGecko(cfg CoinGeckoConfig, client *http.Client, log zerolog.Logger) *CoinGecko {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.MaxNFTs <= 0 {
		cfg.MaxNFTs = defaultMaxNFTs
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &CoinGecko{cfg: cfg, client: client, log: log}
}

// Tag implements trend.Source
func (s *CoinGecko) Tag() trend.SourceTag { return trend.SourceCrypto }

type trendingResponse struct {
	Coins []struct {
		Item struct {
			Name          string `json:"name"`
			Symbol        string `json:"symbol"`
			MarketCapRank int    `json:"market_cap_rank"`
			Thumb         string `json:"thumb"`
		} `json:"item"`
	} `json:"coins"`
	NFTs []struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Thumb  string `json:"thumb"`
	} `json:"nfts"`
}

// Fetch implements trend.Source. Coins keep their market-cap rank, NFT
// entries carry no rank and are truncated to the configured maximum.
func (s *CoinGecko) Fetch(ctx context.Context, limit int) ([]trend.TrendItem, error) {
	var resp trendingResponse
	if err := fetchJSON(ctx, s.client, s.cfg.BaseURL+"/search/trending", &resp); err != nil {
		return nil, trend.NewSourceError(trend.SourceCrypto, err)
	}

	coins := resp.Coins
	if limit > 0 && len(coins) > limit {
		coins = coins[:limit]
	}

	items := make([]trend.TrendItem, 0, len(coins)+s.cfg.MaxNFTs)
	for _, c := range coins {
		if strings.TrimSpace(c.Item.Name) == "" {
			continue
		}
		items = append(items, trend.TrendItem{
			Rank:   c.Item.MarketCapRank,
			Label:  c.Item.Name,
			Source: trend.SourceCrypto,
			Metadata: map[string]any{
				"symbol":    c.Item.Symbol,
				"thumbnail": c.Item.Thumb,
			},
		})
	}

	nfts := resp.NFTs
	if len(nfts) > s.cfg.MaxNFTs {
		nfts = nfts[:s.cfg.MaxNFTs]
	}
	for _, n := range nfts {
		if strings.TrimSpace(n.Name) == "" {
			continue
		}
		items = append(items, trend.TrendItem{
			Label:  n.Name,
			Source: trend.SourceCrypto,
			Metadata: map[string]any{
				"symbol":    n.Symbol,
				"thumbnail": n.Thumb,
				"type":      "nft",
			},
		})
	}
	return items, nil
}

var _ trend.Source = (*CoinGecko)(nil)
