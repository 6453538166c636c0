// internal/domain/trend/source.go

package trend

import (
	"context"
)

// Source is one upstream trend provider normalized behind a common contract.
//
// Fetch returns the provider's current trends, at most limit items when
// limit > 0 and the provider's own default otherwise. Failure policy is
// per-adapter: the social adapter absorbs every failure into a single
// degraded placeholder item and never returns an error, while the news and
// crypto adapters return a *SourceError because a partial or corrupt ranked
// list from them is unusable.
type Source interface {
	Tag() SourceTag
	Fetch(ctx context.Context, limit int) ([]TrendItem, error)
}
