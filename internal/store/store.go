package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/neethishnk/hawkcards/prometheus"
)

// Collection keys.
const (
	KeyUsers     = "hawk_users"
	KeyLogs      = "hawk_logs"
	KeyCards     = "hawk_cards"
	KeyContacts  = "hawk_contacts"
	KeySegments  = "hawk_segments"
	KeyTemplates = "hawk_templates"
)

var allKeys = []string{KeyUsers, KeyLogs, KeyCards, KeyContacts, KeySegments, KeyTemplates}

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// ErrEmailExists is returned when a new user's email is already registered,
// ignoring case.
var ErrEmailExists = errors.New("email already exists")

// timeLayout matches JavaScript's Date.toISOString.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a fresh id for the given prefix ("user", "card", ...).
type IDGenerator func(prefix string) string

// UUIDGenerator builds ids of the form <prefix>-<uuid>.
func UUIDGenerator(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Option configures a Store.
type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) { s.now = c }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.newID = g }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store holds every collection of the product. Each collection is read and
// written whole; a mutex serialises read-modify-write cycles in this process.
// Writers in other processes sharing the backend are not coordinated.
type Store struct {
	kv    KV
	now   Clock
	newID IDGenerator
	log   *zap.Logger
	mu    sync.Mutex
}

// New creates a Store over kv.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: UUIDGenerator,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store's clock reading formatted as a timestamp.
func (s *Store) Now() string {
	return formatTime(s.now())
}

// Reset removes every collection so the demo data applies again.
func (s *Store) Reset(ctx context.Context) error {
	defer prometheus.TrackStoreOperation("reset")(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, allKeys...)
}

// load reads a collection. A missing key yields the seed, which is written
// back when persistSeed is set. Malformed JSON is logged and replaced by the
// seed; backend failures are returned.
func load[T any](ctx context.Context, s *Store, key string, seed func(time.Time) []T, persistSeed bool) ([]T, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		items := seed(s.now())
		if persistSeed {
			if err := save(ctx, s, key, items); err != nil {
				return nil, err
			}
		}
		return items, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn("Discarding malformed collection, using defaults",
			zap.String("key", key), zap.Error(err))
		return seed(s.now()), nil
	}
	return items, nil
}

func save[T any](ctx context.Context, s *Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}
