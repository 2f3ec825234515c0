package exporter

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricDepositCount      = "deposit_count"
	MetricWithdrawCount     = "withdraw_count"
	MetricClaimCount        = "claim_count"
	MetricDistributionCount = "distribution_count"
	MetricErrorCount        = "error_count"
)

var (
	initOnce sync.Once
	counters map[string]prometheus.Counter
)

// Init registers the static operation counters. Safe to call more than once
// (router construction in tests re-runs the wiring).
func Init() {
	initOnce.Do(func() {
		counters = make(map[string]prometheus.Counter)
		specs := []struct {
			name string
			help string
		}{
			{MetricDepositCount, "Counts successful stake deposits"},
			{MetricWithdrawCount, "Counts successful stake withdrawals"},
			{MetricClaimCount, "Counts successful yield claims"},
			{MetricDistributionCount, "Counts successful asset yield distributions"},
			{MetricErrorCount, "Counts requests that ended in server errors"},
		}
		for _, spec := range specs {
			counter := prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "assetrail",
				Subsystem: "treasury",
				Name:      spec.name,
				Help:      spec.help,
			})
			prometheus.MustRegister(counter)
			counters[spec.name] = counter
		}
	})
}

func GetCounter(name string) prometheus.Counter {
	return counters[name]
}

func Inc(name string) {
	if c, ok := counters[name]; ok {
		c.Inc()
	}
}
