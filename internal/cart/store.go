package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/rafaelmbarbosa/cardapiozap-backend/pkg/errors"
	"github.com/rafaelmbarbosa/cardapiozap-backend/pkg/redis"
)

// SnapshotStore persists cart snapshots between requests.
type SnapshotStore interface {
	Load(ctx context.Context, establishmentID, sessionID string) (*Snapshot, error)
	Save(ctx context.Context, establishmentID, sessionID string, snap *Snapshot) error
	Delete(ctx context.Context, establishmentID, sessionID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a SnapshotStore over the shared redis client. Snapshots
// expire after the configured TTL; an expired cart simply reads back empty.
func NewRedisStore(client *redis.Client, ttl time.Duration) (SnapshotStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &redisStore{client: client, ttl: ttl}, nil
}

func (r *redisStore) Load(ctx context.Context, establishmentID, sessionID string) (*Snapshot, error) {
	raw, err := r.client.Get(ctx, r.client.CartKey(establishmentID, sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewSnapshot(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding cart snapshot")
	}
	if snap.Addons == nil {
		snap.Addons = Ledger{}
	}
	return &snap, nil
}

func (r *redisStore) Save(ctx context.Context, establishmentID, sessionID string, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart snapshot")
	}
	key := r.client.CartKey(establishmentID, sessionID)
	if err := r.client.Set(ctx, key, string(raw), r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing cart snapshot")
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, establishmentID, sessionID string) error {
	if err := r.client.Del(ctx, r.client.CartKey(establishmentID, sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting cart snapshot")
	}
	return nil
}
