package storage

import (
	"context"
	"errors"

	"github.com/kylycht/coinboard/model"
)

var (
	ErrNotFound = errors.New("key not found")
)

// Storage interface describes methods of
// persistence storage
type Storage interface {
	// Load loads all available currencies
	// from the storage
	// First slice contains all fiat currencies
	// followed by crypto
	Load(ctx context.Context) ([]model.Currency, []model.Currency, error)
}

// Catalog lists the currency codes
// a converter can choose from
type Catalog interface {
	// Codes returns the sorted currency codes
	Codes() []string
}

// KV is the key-value persistence
// behind per-user state
type KV interface {
	// Get returns the value stored under key
	// or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the underlying connection
	Close(ctx context.Context) error
}
