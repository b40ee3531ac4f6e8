package directus

import (
	"context"
	"fmt"

	"github.com/cheatsheethub/cheatsheethub/pkg/cms"
	"github.com/cheatsheethub/cheatsheethub/pkg/server/store"
)

// HealthStore provides health check operations against the CMS
type HealthStore struct {
	client *cms.Client
}

// NewHealthStore creates a new HealthStore
func NewHealthStore(client *cms.Client) *HealthStore {
	return &HealthStore{client: client}
}

// CheckConnectivity pings the CMS
func (s *HealthStore) CheckConnectivity(ctx context.Context) error {
	if err := s.client.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return nil
}
