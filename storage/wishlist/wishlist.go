// Package wishlist keeps the coin ids each user has starred.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kylycht/coinboard/storage"
)

const (
	KeyPrefix = "crypto-wishlist" // key of a user list is KeyPrefix:<userID>
	stripes   = 64
)

var (
	ErrCorrupt   = errors.New("wishlist is corrupt")
	ErrEmptyUser = errors.New("user id is required")
	ErrEmptyCoin = errors.New("coin id is required")
)

type Store struct {
	kv    storage.KV          // where lists are persisted
	locks [stripes]sync.Mutex // serialise read-modify-write per user
}

func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Key returns the storage key holding the list of userID.
func Key(userID string) string {
	return KeyPrefix + ":" + userID
}

// List returns the coin ids of userID in insertion order.
// A user without a stored list has an empty one.
func (s *Store) List(ctx context.Context, userID string) ([]string, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUser
	}

	return s.load(ctx, userID)
}

// Contains reports whether coinID is on the list of userID.
func (s *Store) Contains(ctx context.Context, userID, coinID string) (bool, error) {
	ids, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}

	return indexOf(ids, coinID) >= 0, nil
}

// Count returns the number of coins on the list of userID.
func (s *Store) Count(ctx context.Context, userID string) (int, error) {
	ids, err := s.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	return len(ids), nil
}

// Toggle adds coinID when it is absent and removes it otherwise.
// It returns whether coinID is in the list afterwards.
func (s *Store) Toggle(ctx context.Context, userID, coinID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, ErrEmptyUser
	}

	if strings.TrimSpace(coinID) == "" {
		return false, ErrEmptyCoin
	}

	lock := s.lock(userID)
	lock.Lock()
	defer lock.Unlock()

	ids, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}

	member := false
	if i := indexOf(ids, coinID); i >= 0 {
		ids = append(ids[:i], ids[i+1:]...)
	} else {
		ids = append(ids, coinID)
		member = true
	}

	value, err := json.Marshal(ids)
	if err != nil {
		return false, err
	}

	if err := s.kv.Set(ctx, Key(userID), value); err != nil {
		return false, fmt.Errorf("unable to save wishlist: %w", err)
	}

	log.Debug().Str("user", userID).Str("coin", coinID).Bool("member", member).Msg("wishlist toggled")

	return member, nil
}

func (s *Store) load(ctx context.Context, userID string) ([]string, error) {
	value, err := s.kv.Get(ctx, Key(userID))
	if errors.Is(err, storage.ErrNotFound) {
		return []string{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load wishlist: %w", err)
	}

	ids := []string{}
	if err := json.Unmarshal(value, &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

func (s *Store) lock(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))

	return &s.locks[h.Sum32()%stripes]
}

func indexOf(ids []string, id string) int {
	for i := range ids {
		if ids[i] == id {
			return i
		}
	}

	return -1
}
