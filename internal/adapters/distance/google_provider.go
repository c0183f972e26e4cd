package distance

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"shipdate-policy-service/internal/domain"
	"shipdate-policy-service/internal/ports"
)

// GoogleProvider implements DistanceProvider using the Google Distance
// Matrix API.
//
// It coordinates:
//   - Address normalization
//   - Credential lookup from the configuration store (fail closed)
//   - External API calls with retry/backoff
//   - Optional persistent caching of successful resolutions
//
// The origin address is fixed per deployment.
type GoogleProvider struct {
	session *http.Client
	baseURL string
	origin  string
	creds   ports.CredentialStore
	cache   ports.DistanceCache
	log     *zap.Logger
}

func NewGoogleProvider(
	origin string,
	creds ports.CredentialStore,
	cache ports.DistanceCache,
	log *zap.Logger,
) (*GoogleProvider, error) {
	if strings.TrimSpace(origin) == "" {
		return nil, errors.New("origin address is empty")
	}
	if creds == nil {
		return nil, errors.New("credential store is nil")
	}

	provider := &GoogleProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://maps.googleapis.com",
		origin:  origin,
		creds:   creds,
		cache:   cache,
		log:     log,
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *GoogleProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Resolve returns the distance in miles from the fixed origin to the
// destination address, plus the service's resolved form of that
// address. An empty destination short-circuits to an unresolved result.
func (g *GoogleProvider) Resolve(ctx context.Context, destination string) (domain.DistanceResult, error) {
	dest := g.normalize(destination)
	if dest == "" {
		return domain.DistanceResult{}, nil
	}

	// Check the persistent cache before issuing an external call.
	if g.cache != nil {
		hit, ok, err := g.cache.Get(ctx, g.origin, dest)
		if err != nil {
			g.log.Warn("distance cache read failed", zap.Error(err))
		} else if ok {
			return hit, nil
		}
	}

	key, err := g.creds.APIKey(ctx)
	if err != nil {
		return domain.DistanceResult{}, err
	}
	if key == "" {
		return domain.DistanceResult{}, ports.ErrCredentialMissing
	}

	result, err := g.fetchElement(ctx, dest, key)
	if err != nil {
		return domain.DistanceResult{}, err
	}

	// Only fully resolved results are worth remembering; data-quality
	// failures should be retried on the next address change.
	if g.cache != nil && result.Resolved() {
		if err := g.cache.Put(ctx, g.origin, dest, result); err != nil {
			g.log.Warn("distance cache write failed", zap.Error(err))
		}
	}

	return result, nil
}
