// Package promhook counts keycache hook events with prometheus.
package promhook

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/keycache"
)

type Options struct {
	Namespace string                // metric prefix; "" => "keycache"
	Registry  prometheus.Registerer // nil => prometheus.DefaultRegisterer
}

// Hooks implements keycache.Hooks. Labels stay low-cardinality: redis keys
// are never used as label values.
type Hooks struct {
	keysLoaded    *prometheus.CounterVec
	keyCount      *prometheus.GaugeVec
	reloadFailed  *prometheus.CounterVec
	tokensSkipped *prometheus.CounterVec
	expireIgnored *prometheus.CounterVec
	decodeFailed  prometheus.Counter
}

var _ keycache.Hooks = (*Hooks)(nil)

// New creates and registers the collectors.
func New(opts Options) (*Hooks, error) {
	ns := opts.Namespace
	if ns == "" {
		ns = "keycache"
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	h := &Hooks{
		keysLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "config_loads_total",
			Help:      "Successful key config loads per source.",
		}, []string{"source"}),
		keyCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "config_items",
			Help:      "Item configs in the active key set per source.",
		}, []string{"source"}),
		reloadFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "config_reload_failures_total",
			Help:      "Failed key config reloads per source.",
		}, []string{"source"}),
		tokensSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "config_db_tokens_skipped_total",
			Help:      "Malformed shard db tokens skipped while loading.",
		}, []string{"node"}),
		expireIgnored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "config_expire_ignored_total",
			Help:      "Malformed or non-positive expire values ignored while loading.",
		}, []string{"node"}),
		decodeFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "decode_failures_total",
			Help:      "Stored values that could not be decoded.",
		}),
	}
	for _, c := range []prometheus.Collector{
		h.keysLoaded, h.keyCount, h.reloadFailed, h.tokensSkipped, h.expireIgnored, h.decodeFailed,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) KeysLoaded(source string, count int) {
	h.keysLoaded.WithLabelValues(source).Inc()
	h.keyCount.WithLabelValues(source).Set(float64(count))
}

func (h *Hooks) ReloadFailed(source string, _ error) { h.reloadFailed.WithLabelValues(source).Inc() }

func (h *Hooks) DbTokenSkipped(node, _, _ string) { h.tokensSkipped.WithLabelValues(node).Inc() }

func (h *Hooks) ExpireIgnored(node, _, _ string) { h.expireIgnored.WithLabelValues(node).Inc() }

func (h *Hooks) DecodeFailed(string, error) { h.decodeFailed.Inc() }
