package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Checkout holds counters and histograms for the checkout flow.
type Checkout struct {
	attempts        prometheus.Counter
	ordersCreated   prometheus.Counter
	groupFailures   prometheus.Counter
	lookupAborts    prometheus.Counter
	claimRejections prometheus.Counter
	cartsCleared    prometheus.Counter
	duration        prometheus.Histogram
}

// NewCheckout registers checkout metrics on the given registerer.
func NewCheckout(registerer prometheus.Registerer) *Checkout {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &Checkout{
		attempts: registerCounter(registerer, prometheus.CounterOpts{
			Name: "kinmel_checkout_attempts_total",
			Help: "Total number of checkout attempts",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "kinmel_checkout_orders_created_total",
			Help: "Total number of vendor orders created by checkout",
		}),
		groupFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "kinmel_checkout_group_failures_total",
			Help: "Total number of vendor groups that failed to materialize",
		}),
		lookupAborts: registerCounter(registerer, prometheus.CounterOpts{
			Name: "kinmel_checkout_lookup_aborts_total",
			Help: "Total number of checkouts aborted by a stale catalog reference",
		}),
		claimRejections: registerCounter(registerer, prometheus.CounterOpts{
			Name: "kinmel_checkout_claim_rejections_total",
			Help: "Total number of checkouts rejected because one was already in flight",
		}),
		cartsCleared: registerCounter(registerer, prometheus.CounterOpts{
			Name: "kinmel_checkout_carts_cleared_total",
			Help: "Total number of carts cleared after a fully successful checkout",
		}),
		duration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "kinmel_checkout_duration_seconds",
			Help:    "Duration of checkout calls in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (c *Checkout) Attempt() {
	if c != nil {
		c.attempts.Inc()
	}
}

func (c *Checkout) OrderCreated() {
	if c != nil {
		c.ordersCreated.Inc()
	}
}

func (c *Checkout) GroupFailed() {
	if c != nil {
		c.groupFailures.Inc()
	}
}

func (c *Checkout) LookupAborted() {
	if c != nil {
		c.lookupAborts.Inc()
	}
}

func (c *Checkout) ClaimRejected() {
	if c != nil {
		c.claimRejections.Inc()
	}
}

func (c *Checkout) CartCleared() {
	if c != nil {
		c.cartsCleared.Inc()
	}
}

func (c *Checkout) ObserveDuration(seconds float64) {
	if c != nil {
		c.duration.Observe(seconds)
	}
}

// registerCounter tolerates re-registration so tests can construct
// the metrics set more than once against the default registerer.
func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	counter := prometheus.NewCounter(opts)
	if err := registerer.Register(counter); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Counter)
		}
		panic(err)
	}
	return counter
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	histogram := prometheus.NewHistogram(opts)
	if err := registerer.Register(histogram); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		panic(err)
	}
	return histogram
}
