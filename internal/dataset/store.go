package dataset

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"esgpulse/internal/analytics"
)

// Snapshot is one immutable generation of the three datasets. Uploads
// replace datasets wholesale: every replacement produces a new snapshot
// with a fresh version, never an incremental merge. Readers must treat the
// slices as read-only; the analytics engine never mutates its inputs.
type Snapshot struct {
	Version      string                           `json:"version"`
	LoadedAt     time.Time                        `json:"loaded_at"`
	Observations []analytics.ObservationRow       `json:"-"`
	Metrics      []analytics.MetricObservation    `json:"-"`
	Benchmarks   []analytics.BenchmarkObservation `json:"-"`
}

// Store holds the current snapshot behind an RWMutex pointer swap. Readers
// always see a consistent generation even while an upload replaces one of
// the datasets.
type Store struct {
	mu      sync.RWMutex
	current *Snapshot
}

// NewStore creates a store with an empty initial snapshot.
func NewStore() *Store {
	return &Store{
		current: &Snapshot{
			Version:  uuid.New().String(),
			LoadedAt: time.Now(),
		},
	}
}

// Snapshot returns the current dataset generation.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Version returns the current snapshot version.
func (s *Store) Version() string {
	return s.Snapshot().Version
}

// ReplaceAll installs all three datasets as a new snapshot.
func (s *Store) ReplaceAll(obs []analytics.ObservationRow, metrics []analytics.MetricObservation, bench []analytics.BenchmarkObservation) *Snapshot {
	return s.swap(func(next *Snapshot) {
		next.Observations = obs
		next.Metrics = metrics
		next.Benchmarks = bench
	})
}

// Replace installs one dataset kind wholesale, carrying the other two over
// from the previous snapshot.
func (s *Store) Replace(kind Kind, obs []analytics.ObservationRow, metrics []analytics.MetricObservation, bench []analytics.BenchmarkObservation) *Snapshot {
	return s.swap(func(next *Snapshot) {
		switch kind {
		case KindObservations:
			next.Observations = obs
		case KindMetrics:
			next.Metrics = metrics
		case KindBenchmark:
			next.Benchmarks = bench
		}
	})
}

func (s *Store) swap(apply func(next *Snapshot)) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := &Snapshot{
		Version:      uuid.New().String(),
		LoadedAt:     time.Now(),
		Observations: s.current.Observations,
		Metrics:      s.current.Metrics,
		Benchmarks:   s.current.Benchmarks,
	}
	apply(next)
	s.current = next
	return next
}
