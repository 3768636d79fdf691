package ports

import "context"

// Contract for caching serialized scorecard responses.
//
// The cache is an explicit dependency handed to its consumers; entries expire
// on a TTL owned by the implementation, and Invalidate drops everything the
// cache holds. A miss is (nil, false, nil), never an error.
type ScorecardCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte) error
	Invalidate(ctx context.Context) error
}
