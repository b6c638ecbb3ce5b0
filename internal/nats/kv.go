package nats

import (
	"context"
	"errors"
	"fmt"

	"chatterly/internal/core"

	"github.com/nats-io/nats.go/jetstream"
)

// Bucket is the part of jetstream.KeyValue the session store relies on.
type Bucket interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
	Put(ctx context.Context, key string, value []byte) (uint64, error)
	Delete(ctx context.Context, key string, opts ...jetstream.KVDeleteOpt) error
}

// SessionStore implements core.SessionStore on top of a JetStream key-value
// bucket, so several machines can share one login.
type SessionStore struct {
	NATS *NATS

	kv Bucket
}

func NewSessionStore(kv Bucket) *SessionStore {
	return &SessionStore{kv: kv}
}

func (s *SessionStore) Init(_ context.Context) error {
	s.kv = s.NATS.KV
	return nil
}

func (s *SessionStore) Token(ctx context.Context) (string, error) {
	entry, err := s.kv.Get(ctx, core.SessionTokenKey)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) || errors.Is(err, jetstream.ErrKeyDeleted) {
			return "", nil
		}
		return "", err
	}

	return string(entry.Value()), nil
}

func (s *SessionStore) SetToken(ctx context.Context, token string) error {
	_, err := s.kv.Put(ctx, core.SessionTokenKey, []byte(token))
	if err != nil {
		return fmt.Errorf("failed to store key %s: %w", core.SessionTokenKey, err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	err := s.kv.Delete(ctx, core.SessionTokenKey)
	if err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return err
	}
	return nil
}
