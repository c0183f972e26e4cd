package ports

import (
	"context"

	"shipdate-policy-service/internal/domain"
)

// Optional persistence for successful distance resolutions, keyed by
// (origin, destination). Keys are expected to be consistent (e.g.,
// already normalized) by the caller.
type DistanceCache interface {
	Get(ctx context.Context, origin string, destination string) (domain.DistanceResult, bool, error)
	Put(ctx context.Context, origin string, destination string, result domain.DistanceResult) error
}
