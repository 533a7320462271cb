// Package metadata stores the CLI's local key/value state, such as the
// session tokens and the name of the logged-in user.
package metadata

import "context"

type Repository interface {
	// Get returns "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes all values in one transaction.
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}
