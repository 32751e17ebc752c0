// Package cache implements the bounded, FIFO-evicted in-process caches
// the Client API keeps in front of the certificate, document, and type
// namespaces (§4.5). Unlike an LRU, a Get never promotes an entry: the
// only thing that determines eviction order is insertion order.
package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Default capacities named by §4.5.
const (
	CertificateCapacity = 64
	DocumentCapacity    = 128
	TypeCapacity        = 256
)

// FIFO is a fixed-capacity cache keyed by string id. Eviction always
// removes the oldest surviving insertion, regardless of how recently
// (or how often) an entry was read.
type FIFO struct {
	mu       sync.Mutex
	name     string
	capacity int
	values   map[string][]byte
	order    []string
}

// New builds a FIFO cache with the given capacity, labelled name for
// the metrics it emits. capacity <= 0 disables eviction entirely
// (unbounded), which no caller in this repository uses but which
// keeps the zero value meaningful for tests.
func New(name string, capacity int) *FIFO {
	return &FIFO{
		name:     name,
		capacity: capacity,
		values:   make(map[string][]byte),
	}
}

// Get returns the cached blob for id, if present. It does not affect
// eviction order.
func (c *FIFO) Get(id string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	blob, ok := c.values[id]
	if ok {
		cacheHits.WithLabelValues(c.name).Inc()
	} else {
		cacheMisses.WithLabelValues(c.name).Inc()
	}
	return blob, ok
}

// Put inserts id into the cache if it is not already present. If the
// cache is at capacity, the oldest entry is evicted first. Put is a
// no-op if id is already cached, since the spec's caches hold
// immutable blobs keyed by content-derived identifiers.
func (c *FIFO) Put(id string, blob []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.values[id]; exists {
		return
	}
	if c.capacity > 0 && len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.values, oldest)
		cacheEvictions.WithLabelValues(c.name).Inc()
	}
	c.values[id] = blob
	c.order = append(c.order, id)
	cacheSize.WithLabelValues(c.name).Set(float64(len(c.order)))
}

// Len reports the number of entries currently cached.
func (c *FIFO) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

var (
	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_cache_hits_total",
			Help: "Total number of cache lookups that found an entry, by cache name.",
		},
		[]string{"cache"},
	)

	cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_cache_misses_total",
			Help: "Total number of cache lookups that found nothing, by cache name.",
		},
		[]string{"cache"},
	)

	cacheEvictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_cache_evictions_total",
			Help: "Total number of FIFO evictions, by cache name.",
		},
		[]string{"cache"},
	)

	cacheSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nebula_cache_entries",
			Help: "Current number of entries held by a cache, by cache name.",
		},
		[]string{"cache"},
	)
)

// Collectors returns the prometheus collectors this package registers,
// for wiring into a registry at startup (see pkg/metrics).
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{cacheHits, cacheMisses, cacheEvictions, cacheSize}
}
