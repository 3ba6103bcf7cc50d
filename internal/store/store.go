// Package store persists the cerpen collection and its side tables. Two
// record store backends exist: the embedded local database (default) and the
// remote document collection. Exactly one is selected at startup; callers
// only see the RecordStore interface.
package store

import (
	"context"
	"fmt"

	"tintaku/internal/models"

	"github.com/VictoriaMetrics/metrics"
)

// RecordStore is the capability interface over one cerpen collection.
// GetByID reports a missing record as (nil, nil): absence is a result, not
// an error.
type RecordStore interface {
	// ListAll returns every stored record with no ordering guarantee.
	ListAll(ctx context.Context) ([]models.Cerpen, error)
	// GetByID is a point lookup.
	GetByID(ctx context.Context, id string) (*models.Cerpen, error)
	// Put inserts or fully replaces the record keyed by its id.
	Put(ctx context.Context, c *models.Cerpen) error
	// DeleteByID removes a record; deleting a missing id is a no-op.
	DeleteByID(ctx context.Context, id string) error
}

func countOp(backend, op string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`tintaku_store_ops_total{backend=%q,op=%q}`, backend, op)).Inc()
}

func countFailure(backend, op string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`tintaku_store_failures_total{backend=%q,op=%q}`, backend, op)).Inc()
}
