package snapshot

import (
	"context"
	"encoding/json"

	snapshotv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/snapshot/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
	"github.com/muhammadchandra19/batch-matcher/pkg/logger"
	"github.com/muhammadchandra19/batch-matcher/pkg/redis"
)

// Store keeps the final resting book of each instrument in Redis, one key per instrument.
type Store struct {
	prefix      string
	logger      logger.Interface
	redisclient redis.Client
}

// NewSnapshotStore creates a new Store with the given Redis client and key prefix.
func NewSnapshotStore(redisclient redis.Client, prefix string, log logger.Interface) *Store {
	return &Store{
		prefix:      prefix,
		redisclient: redisclient,
		logger:      log,
	}
}

// Key returns the Redis key of the snapshot of instrument.
func (s *Store) Key(instrument string) string {
	if s.prefix == "" {
		return instrument
	}
	return s.prefix + ":" + instrument
}

// Store stores the snapshot in Redis, replacing the previous one of its instrument.
// An empty book clears the key instead.
func (s *Store) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	key := s.Key(snapshot.Instrument)

	if snapshot.Depth() == 0 {
		return s.clear(ctx, key)
	}

	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "key", Value: key},
			logger.Field{Key: "action", Value: "marshal snapshot"},
		)
		return errors.NewTracer("snapshot_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, key, buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "key", Value: key},
			logger.Field{Key: "action", Value: "store snapshot"},
		)
		return errors.NewTracer("snapshot_store_error").Wrap(err)
	}

	s.logger.InfoContext(ctx, "Snapshot stored",
		logger.Field{Key: "key", Value: key},
		logger.Field{Key: "depth", Value: snapshot.Depth()},
	)
	return nil
}

func (s *Store) clear(ctx context.Context, key string) error {
	if _, err := s.redisclient.Del(ctx, key); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "key", Value: key},
			logger.Field{Key: "action", Value: "clear snapshot"},
		)
		return errors.NewTracer("snapshot_clear_error").Wrap(err)
	}

	s.logger.InfoContext(ctx, "Snapshot cleared", logger.Field{Key: "key", Value: key})
	return nil
}

// LoadStore loads the snapshot of instrument. It returns nil without error when none is stored.
func (s *Store) LoadStore(ctx context.Context, instrument string) (*snapshotv1.Snapshot, error) {
	key := s.Key(instrument)

	data, err := s.redisclient.Get(ctx, key)
	if err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "key", Value: key},
			logger.Field{Key: "action", Value: "load snapshot"},
		)
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, "No snapshot found",
			logger.Field{Key: "key", Value: key},
		)
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "key", Value: key},
			logger.Field{Key: "action", Value: "unmarshal snapshot"},
		)
		return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
	}

	return &snapshot, nil
}
