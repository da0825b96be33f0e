package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// Collection keys used by the support desk.
const (
	KeyTickets = "tickets"
	KeyUsers   = "users"
	KeyLogs    = "logs"
	KeyStats   = "stats"
)

var emptyArray = []byte("[]")

// Store reads and writes whole collections. Every load-mutate-save on a key
// is serialised in-process; versioned media additionally reject writes that
// raced with another process.
type Store struct {
	medium   Medium
	prefix   string
	maxBytes int
	locks    *keyedMutex
	logger   logger.Interface
}

type Option func(*Store)

// WithKeyPrefix namespaces every key, e.g. "discord_" turns "tickets" into
// "discord_tickets".
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithMaxBytes limits the encoded size of a single collection. Zero or less
// disables the limit.
func WithMaxBytes(n int) Option {
	return func(s *Store) { s.maxBytes = n }
}

func WithLogger(l logger.Interface) Option {
	return func(s *Store) { s.logger = l }
}

func New(medium Medium, opts ...Option) *Store {
	s := &Store{
		medium: medium,
		locks:  newKeyedMutex(),
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) fullKey(key string) string {
	return s.prefix + key
}

// LoadAll returns the records stored under key in stored order. An absent
// key yields an empty slice; content that is not a JSON array yields a
// corrupt_data error.
func (s *Store) LoadAll(ctx context.Context, key string) ([]json.RawMessage, error) {
	data, found, err := s.medium.Get(ctx, s.fullKey(key))
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to load collection %q", key), err)
	}
	if !found {
		return []json.RawMessage{}, nil
	}
	return decodeArray(key, data)
}

// SaveAll overwrites the collection under key with records.
func (s *Store) SaveAll(ctx context.Context, key string, records []json.RawMessage) error {
	unlock := s.locks.Lock(key)
	defer unlock()

	data, err := s.encodeArray(key, records)
	if err != nil {
		return err
	}
	if err := s.medium.Put(ctx, s.fullKey(key), data); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to save collection %q", key), err)
	}

	s.logger.Debugw("collection saved", "key", key, "records", len(records), "bytes", len(data))
	return nil
}

// Update loads the collection, applies fn and saves the result as one step.
// If fn returns an error nothing is written. On a versioned medium a write
// that lost a race with another process fails with a storage error wrapping
// ErrVersionConflict; it is not retried.
func (s *Store) Update(ctx context.Context, key string, fn func([]json.RawMessage) ([]json.RawMessage, error)) error {
	unlock := s.locks.Lock(key)
	defer unlock()

	full := s.fullKey(key)

	if vm, ok := s.medium.(VersionedMedium); ok {
		data, version, found, err := vm.GetVersioned(ctx, full)
		if err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to load collection %q", key), err)
		}
		records := []json.RawMessage{}
		if found {
			if records, err = decodeArray(key, data); err != nil {
				return err
			}
		}

		out, err := fn(records)
		if err != nil {
			return err
		}
		encoded, err := s.encodeArray(key, out)
		if err != nil {
			return err
		}

		if err := vm.PutIfVersion(ctx, full, encoded, version); err != nil {
			if IsVersionConflict(err) {
				s.logger.Warnw("concurrent update rejected", "key", key, "version", version)
				return apperrors.NewStorageError(fmt.Sprintf("collection %q was modified concurrently", key), err)
			}
			return apperrors.NewStorageError(fmt.Sprintf("failed to save collection %q", key), err)
		}
		return nil
	}

	data, found, err := s.medium.Get(ctx, full)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to load collection %q", key), err)
	}
	records := []json.RawMessage{}
	if found {
		if records, err = decodeArray(key, data); err != nil {
			return err
		}
	}

	out, err := fn(records)
	if err != nil {
		return err
	}
	encoded, err := s.encodeArray(key, out)
	if err != nil {
		return err
	}
	if err := s.medium.Put(ctx, full, encoded); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to save collection %q", key), err)
	}
	return nil
}

// LoadDocument decodes a single JSON document stored under key into v and
// reports whether it existed.
func (s *Store) LoadDocument(ctx context.Context, key string, v interface{}) (bool, error) {
	data, found, err := s.medium.Get(ctx, s.fullKey(key))
	if err != nil {
		return false, apperrors.NewStorageError(fmt.Sprintf("failed to load document %q", key), err)
	}
	if !found || len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, apperrors.NewCorruptDataError(key, err)
	}
	return true, nil
}

// SaveDocument stores v as a single JSON document under key.
func (s *Store) SaveDocument(ctx context.Context, key string, v interface{}) error {
	unlock := s.locks.Lock(key)
	defer unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to encode document %q", key), err)
	}
	if err := s.checkQuota(key, data); err != nil {
		return err
	}
	if err := s.medium.Put(ctx, s.fullKey(key), data); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to save document %q", key), err)
	}
	return nil
}

func (s *Store) encodeArray(key string, records []json.RawMessage) ([]byte, error) {
	data := emptyArray
	if len(records) > 0 {
		var err error
		if data, err = json.Marshal(records); err != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to encode collection %q", key), err)
		}
	}
	if err := s.checkQuota(key, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) checkQuota(key string, data []byte) error {
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		return apperrors.NewStorageError(
			fmt.Sprintf("collection %q needs %d bytes, limit is %d", key, len(data), s.maxBytes),
			ErrQuotaExceeded,
		)
	}
	return nil
}

func decodeArray(key string, data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []json.RawMessage{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, apperrors.NewCorruptDataError(key, err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}
