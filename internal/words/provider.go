// internal/words/provider.go
//
// Dictionary provider: decides where the dictionary comes from.
//
// Load order:
//   1. If the cache is stale and a Fetcher is configured, refresh it.
//      A failed refresh is logged and otherwise ignored.
//   2. Read the cache.
//   3. If the cache is missing, malformed or empty, use the embedded lists.

package words

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Source identifies where a loaded dictionary came from.
type Source string

const (
	SourceRemote   Source = "remote"   // freshly fetched, then read from cache
	SourceCache    Source = "cache"    // cache was fresh enough
	SourceEmbedded Source = "embedded" // compiled-in fallback
)

// Provider loads the dictionary following the refresh policy above.
type Provider struct {
	Cache   *Cache
	Fetcher Fetcher // optional; nil means offline
	Now     func() time.Time
}

func (p *Provider) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Load returns the dictionary and the source it was read from.
func (p *Provider) Load(ctx context.Context) (*Dictionary, Source, error) {
	src := SourceCache
	if p.Fetcher != nil && p.Cache.Stale(p.now()) {
		n, err := p.Cache.Refresh(ctx, p.Fetcher)
		if err != nil {
			log.Warn().Err(err).Str("path", p.Cache.Path).Msg("dictionary refresh failed")
		} else {
			log.Debug().Int("words", n).Str("path", p.Cache.Path).Msg("dictionary refreshed")
			src = SourceRemote
		}
	}

	list, err := p.Cache.Load()
	if err == nil {
		if d := NewDictionary(list); d.Len() > 0 {
			return d, src, nil
		}
		log.Warn().Str("path", p.Cache.Path).Msg("cached dictionary has no playable words")
	} else {
		log.Debug().Err(err).Msg("dictionary cache unavailable")
	}

	d, err := Embedded()
	if err != nil {
		return nil, "", err
	}
	return d, SourceEmbedded, nil
}
