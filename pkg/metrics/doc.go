/*
Package metrics provides Prometheus metrics collection and exposition
for the repository core.

The metrics package defines and registers the counters, histograms,
and gauges that give operators visibility into Client API traffic,
validation-engine chain walks, queue throughput, and repository error
rates. Metrics are exposed via an HTTP endpoint for scraping by a
Prometheus server, and the bounded caches in pkg/cache register their
own hit/miss/eviction/size collectors through this package's init.

# Metric Catalog

nebula_api_requests_total{operation, outcome}:
  - Type: Counter
  - Description: Total Client API operations by operation and outcome ("ok"/"error")

nebula_api_request_duration_seconds{operation}:
  - Type: Histogram
  - Description: Client API operation latency

nebula_validations_total{outcome}:
  - Type: Counter
  - Description: Total certificate/document chain validations by outcome

nebula_validation_chain_depth:
  - Type: Histogram
  - Description: Depth reached while walking a chain

nebula_queue_enqueued_total{queue} / nebula_queue_dequeued_total{queue}:
  - Type: Counter
  - Description: Queue traffic by queue id

nebula_repository_errors_total{namespace, kind}:
  - Type: Counter
  - Description: Repository errors by namespace and error kind

nebula_cache_hits_total{cache} / nebula_cache_misses_total{cache} / nebula_cache_evictions_total{cache}:
  - Type: Counter
  - Description: Bounded-cache traffic, registered by pkg/cache

nebula_cache_entries{cache}:
  - Type: Gauge
  - Description: Current entry count per bounded cache

# Usage

Recording a Client API operation:

	timer := metrics.NewTimer()
	err := op()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.APIRequestsTotal.WithLabelValues("retrieveDocument", outcome).Inc()
	timer.ObserveDurationVec(metrics.APIRequestDuration, "retrieveDocument")

Exposing the scrape endpoint:

	http.Handle("/metrics", metrics.Handler())
	http.ListenAndServe(":9090", nil)
*/
package metrics
