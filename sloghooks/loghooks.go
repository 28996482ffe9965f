// Package sloghooks logs keycache hook events with log/slog.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/keycache"
)

type Options struct {
	// Sampling for the per-request event; 0/1 = log all.
	DecodeFailedEvery uint64
	// Optional key redactor for redis keys. Defaults to a SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	decodeCtr atomic.Uint64
}

var _ keycache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n <= 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) KeysLoaded(source string, count int) {
	if h.l == nil {
		return
	}
	h.l.Info("keycache.keys_loaded", "source", source, "count", count)
}

func (h *Hooks) ReloadFailed(source string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("keycache.reload_failed", "source", source, "err", err)
}

func (h *Hooks) DbTokenSkipped(node, item, token string) {
	if h.l == nil {
		return
	}
	h.l.Warn("keycache.db_token_skipped", "node", node, "item", item, "token", token)
}

func (h *Hooks) ExpireIgnored(node, item, value string) {
	if h.l == nil {
		return
	}
	h.l.Warn("keycache.expire_ignored", "node", node, "item", item, "value", value)
}

func (h *Hooks) DecodeFailed(key string, err error) {
	if h.l == nil || !sample(h.opts.DecodeFailedEvery, &h.decodeCtr) {
		return
	}
	h.l.Warn("keycache.decode_failed", "key", h.redact(key), "err", err)
}
