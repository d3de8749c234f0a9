package storage

import (
	"context"

	"github.com/mind-engage/mcq-reviewer/internal/logger"
)

// BestEffort wraps a KV so that failures are logged and swallowed. A nil
// inner store behaves as an always-empty store.
type BestEffort struct {
	kv  KV
	log *logger.Logger
}

func NewBestEffort(kv KV, log *logger.Logger) *BestEffort {
	return &BestEffort{kv: kv, log: logger.OrNop(log)}
}

func (b *BestEffort) Get(ctx context.Context, key string) ([]byte, bool) {
	if b == nil || b.kv == nil {
		return nil, false
	}
	v, ok, err := b.kv.Get(ctx, key)
	if err != nil {
		b.log.Warn("kv get failed", "key", key, "error", err)
		return nil, false
	}
	return v, ok
}

func (b *BestEffort) Set(ctx context.Context, key string, val []byte) {
	if b == nil || b.kv == nil {
		return
	}
	if err := b.kv.Set(ctx, key, val); err != nil {
		b.log.Warn("kv set failed", "key", key, "error", err)
	}
}

func (b *BestEffort) Remove(ctx context.Context, key string) {
	if b == nil || b.kv == nil {
		return
	}
	if err := b.kv.Remove(ctx, key); err != nil {
		b.log.Warn("kv remove failed", "key", key, "error", err)
	}
}
