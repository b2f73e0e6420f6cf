package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedProvider wraps a Provider with a Redis read-through cache so
// repeated queries skip the embedding API. Cache failures fall through to
// the underlying provider.
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
	model string
	ttl   time.Duration
}

func NewCachedProvider(inner Provider, rdb *redis.Client, model string, ttl time.Duration) Provider {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedProvider{
		inner: inner,
		rdb:   rdb,
		model: model,
		ttl:   ttl,
	}
}

func (p *CachedProvider) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(p.model + "|" + text))
	return "emb:" + hex.EncodeToString(sum[:])
}

func (p *CachedProvider) Generate(ctx context.Context, text string) (*EmbeddingResponse, error) {
	key := p.cacheKey(text)

	if data, err := p.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached EmbeddingResponse
		if err := json.Unmarshal(data, &cached); err == nil && len(cached.Values) > 0 {
			return &cached, nil
		}
	}

	resp, err := p.inner.Generate(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		p.rdb.Set(ctx, key, data, p.ttl)
	}

	return resp, nil
}
