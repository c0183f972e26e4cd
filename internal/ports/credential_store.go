package ports

import "context"

// Port: single-row configuration lookup yielding the distance service
// API key. An empty key with nil error means no credential is
// configured.
type CredentialStore interface {
	APIKey(ctx context.Context) (string, error)
}
