// Package metadata stores small session values for the console (the bearer
// token, the acting admin, the time of the last successful reload) in the
// local SQLite database.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyAuthToken  = "auth_token"
	KeyActorID    = "actor_id"
	KeyLastReload = "last_reload"
)

type Repository interface {
	// Get returns (nil, nil) when key is not set.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// GetString is Get for text values; a missing key yields "".
func GetString(ctx context.Context, r Repository, key string) (string, error) {
	v, err := r.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func SetString(ctx context.Context, r Repository, key, value string) error {
	return r.Set(ctx, key, []byte(value))
}
