package ports

import (
	"context"
	"errors"
	"fmt"

	"shipdate-policy-service/internal/domain"
)

// ErrCredentialMissing indicates the distance service API credential
// could not be obtained from configuration. Resolution fails closed.
var ErrCredentialMissing = errors.New("distance service credential missing")

// ServiceStatusError reports a non-success answer from the external
// distance service: a non-200 HTTP status, a non-OK top-level status,
// or a non-OK per-element status.
type ServiceStatusError struct {
	HTTPStatus    int
	Status        string
	ElementStatus string
}

func (e *ServiceStatusError) Error() string {
	return fmt.Sprintf(
		"distance service status: http=%d status=%q element=%q",
		e.HTTPStatus, e.Status, e.ElementStatus,
	)
}

// Contract for resolving the shipping distance from the fixed origin to
// a destination address.
//
// An empty destination yields an unresolved result without error and
// without a network call. Failures are typed so callers can assert on
// the failure kind; callers at the event boundary convert any error to
// an unresolved result and continue degraded.
type DistanceProvider interface {
	Resolve(ctx context.Context, destination string) (domain.DistanceResult, error)
}
