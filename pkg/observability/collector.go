package observability

import (
	"log/slog"
	"strings"

	"github.com/aretw0/nerv/internal/logging"
	"github.com/aretw0/nerv/pkg/hub"
	"github.com/aretw0/nerv/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event kinds used as the "kind" label.
const (
	KindNew    = string(model.ChangeNew)
	KindUpdate = string(model.ChangeUpdate)
	KindDelete = string(model.ChangeDelete)
	KindChange = model.EventChange
)

// Collector counts the change traffic of watched Nodes.
type Collector struct {
	namespace   string
	subsystem   string
	constLabels prometheus.Labels
	logger      *slog.Logger

	events  *prometheus.CounterVec
	watched prometheus.Gauge
}

// Option configures a Collector.
type Option func(*Collector)

// WithNamespace sets the metrics namespace (default "nerv").
func WithNamespace(namespace string) Option {
	return func(c *Collector) {
		c.namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Collector) {
		c.subsystem = subsystem
	}
}

// WithConstLabels adds constant labels to every metric.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Collector) {
		c.constLabels = labels
	}
}

// WithLogger configures a logger for the Collector.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// NewCollector creates the metrics and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer, opts ...Option) *Collector {
	c := &Collector{
		namespace: "nerv",
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)
	c.events = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   c.namespace,
		Subsystem:   c.subsystem,
		Name:        "events_total",
		Help:        "Total number of events fired by watched nodes",
		ConstLabels: c.constLabels,
	}, []string{"kind"})
	c.watched = factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   c.namespace,
		Subsystem:   c.subsystem,
		Name:        "watched_nodes",
		Help:        "Number of nodes currently watched",
		ConstLabels: c.constLabels,
	})
	return c
}

// Watch counts every event fired on n's hub until Unwatch is called with the
// returned subscription.
func (c *Collector) Watch(n *model.Node) *hub.Subscription {
	sub := n.Hub().Tap(func(event string, args []any) {
		c.events.WithLabelValues(KindOf(event)).Inc()
	})
	c.watched.Inc()
	c.logger.Debug("watching node", "shape", n.Shape().String())
	return sub
}

// Unwatch stops counting the events behind sub. Unwatching twice is a no-op.
func (c *Collector) Unwatch(sub *hub.Subscription) {
	if !sub.Active() {
		return
	}
	sub.Unbind()
	c.watched.Dec()
}

// KindOf maps an event name to its "kind" label: the change type of
// "<key>:<type>" events, or "change".
func KindOf(event string) string {
	i := strings.LastIndexByte(event, ':')
	if i < 0 {
		return event
	}
	return event[i+1:]
}
