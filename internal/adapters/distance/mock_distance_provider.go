package distance

import (
	"context"

	"shipdate-policy-service/internal/domain"
)

// MockDistanceProvider serves canned resolutions keyed by destination.
// Unknown destinations resolve to an unresolved result, matching the
// real provider's degraded behavior.
type MockDistanceProvider struct {
	m     map[string]domain.DistanceResult
	Calls int
}

func NewMockDistanceProvider(results map[string]domain.DistanceResult) *MockDistanceProvider {
	m := make(map[string]domain.DistanceResult, len(results))
	for dest, r := range results {
		m[dest] = r
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) Resolve(ctx context.Context, destination string) (domain.DistanceResult, error) {
	p.Calls++
	return p.m[destination], nil
}
