// Package rates retrieves daily exchange rates from external sources and
// reconciles the sparse results into a continuous daily series.
package rates

import (
	"context"
	"time"

	"github.com/frousseau/sheetkeeper/internal/model"
)

// Fetcher retrieves a sparse daily rate series covering the closed
// interval [from, to]. Transport and parse failures are fatal: there is
// no retry and no partial result.
type Fetcher interface {
	Fetch(ctx context.Context, from, to time.Time) (model.RateSeries, error)
	Source() string
}
