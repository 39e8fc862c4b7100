// Package metrics counts generated wallets, nodes and failures and exports
// them in the node exporter textfile format.
package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github/chapool/go-hdwallet/internal/wallet"
)

const namespace = "hdwallet"

// Recorder holds the generation counters on its own registry
type Recorder struct {
	registry *prometheus.Registry
	wallets  *prometheus.CounterVec
	nodes    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewRecorder creates a Recorder with freshly registered counters
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		wallets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallets_generated_total",
			Help:      "Number of generated wallets by spec.",
		}, []string{"spec", "watch_only"}),
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_generated_total",
			Help:      "Number of generated key nodes by spec.",
		}, []string{"spec"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_failures_total",
			Help:      "Number of failed generations by error kind.",
		}, []string{"kind"}),
	}

	r.registry.MustRegister(r.wallets, r.nodes, r.failures)

	return r
}

// Registry returns the registry holding the counters
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveWallet counts w and its nodes
func (r *Recorder) ObserveWallet(w *wallet.Wallet) {
	watchOnly := "false"
	if w.IsWatchOnly() {
		watchOnly = "true"
	}

	r.wallets.WithLabelValues(w.SpecName(), watchOnly).Inc()
	r.nodes.WithLabelValues(w.SpecName()).Add(float64(len(w.Nodes())))
}

// ObserveFailure counts err under its error kind
func (r *Recorder) ObserveFailure(err error) {
	r.failures.WithLabelValues(wallet.ErrorKind(err)).Inc()
}

// WriteTextfile writes all counters to path in the text exposition format
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(wallet.ErrIOFailure, "failed to write metrics to %q: %v", path, err)
	}

	return nil
}
