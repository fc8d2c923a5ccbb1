// Package syncer keeps a per-user collection in memory and in local storage
// and mirrors writes to a remote service when it is reachable.
//
// Writes apply locally first. When the service is down the write is queued
// and replayed, in order, before the next remote fetch, so records created
// offline survive reconnection.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/johanfuertv/WhereToGo-App/internal/client/api"
	apperrors "github.com/johanfuertv/WhereToGo-App/pkg/errors"
	"github.com/johanfuertv/WhereToGo-App/pkg/retry"
)

// Source tells where the data returned by Load came from
type Source string

const (
	SourceRemote   Source = "remote"
	SourceLocal    Source = "local"
	SourceFallback Source = "fallback"
)

// Policy decides what Add does when the key is already present
type Policy int

const (
	// Upsert replaces the existing entry
	Upsert Policy = iota
	// RejectDuplicate fails with a conflict error
	RejectDuplicate
)

// Prober reports and records service availability
type Prober interface {
	Check(ctx context.Context) bool
	MarkUnavailable()
}

// Store persists values by key
type Store interface {
	Load(key string, v interface{}) (bool, error)
	Save(key string, v interface{}) error
}

// Remote holds the service calls for one entity. Create returns the record
// as stored by the service.
type Remote[T any] struct {
	Fetch  func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, record T) (T, error)
	Delete func(ctx context.Context, record T) error
}

// Config describes one synchronized collection
type Config[T any] struct {
	// Entity names the collection, e.g. "favorites"
	Entity string
	UserID string
	Key    func(T) string
	Remote Remote[T]
	Policy Policy
	// Samples are shown when nothing is stored and the service is down
	Samples func() []T
	// Validate, when set, rejects a record before any local change
	Validate func(T) error
}

// Result is the outcome of Load
type Result[T any] struct {
	Source Source
	Data   []T
}

// OpKind is the kind of a queued write
type OpKind string

const (
	OpAdd    OpKind = "add"
	OpRemove OpKind = "remove"
)

// Op is a write that has not reached the service yet
type Op[T any] struct {
	Kind   OpKind `json:"kind"`
	Record T      `json:"record"`
}

// Option configures a Syncer
type Option func(*options)

type options struct {
	reconcile bool
	retry     retry.Config
}

// WithoutReconciliation drops writes that fail to reach the service. The
// next remote fetch then overwrites the local copy.
func WithoutReconciliation() Option {
	return func(o *options) { o.reconcile = false }
}

// WithRetry sets the backoff used when replaying queued writes
func WithRetry(cfg retry.Config) Option {
	return func(o *options) { o.retry = cfg }
}

// Syncer is an optimistic, locally persisted view of a remote collection
type Syncer[T any] struct {
	cfg   Config[T]
	opts  options
	probe Prober
	store Store

	mu      sync.RWMutex
	items   []T
	pending []Op[T]

	// remoteMu orders remote writes: queued writes always reach the
	// service before newer ones
	remoteMu sync.Mutex
}

// New creates a syncer. All Remote functions must be set.
func New[T any](cfg Config[T], probe Prober, store Store, opts ...Option) *Syncer[T] {
	o := options{reconcile: true, retry: retry.QuickConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Syncer[T]{cfg: cfg, opts: o, probe: probe, store: store}
}

// StorageKey is the local storage key of the collection
func (s *Syncer[T]) StorageKey() string {
	return fmt.Sprintf("%s_%s", s.cfg.Entity, s.cfg.UserID)
}

// PendingKey is the local storage key of the write queue
func (s *Syncer[T]) PendingKey() string {
	return fmt.Sprintf("pending_%s_%s", s.cfg.Entity, s.cfg.UserID)
}

// Items returns a copy of the in-memory collection
func (s *Syncer[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...)
}

// Pending returns a copy of the queued writes
func (s *Syncer[T]) Pending() []Op[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Op[T](nil), s.pending...)
}

// Has reports whether key is in the in-memory collection. It never touches
// the network.
func (s *Syncer[T]) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(key) >= 0
}

// Get returns the in-memory record stored under key
func (s *Syncer[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(key); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Add stores record locally and then on the service if it is reachable.
// Unreachable services only mark the probe down; rejections from the
// service undo the local change and are returned.
func (s *Syncer[T]) Add(ctx context.Context, record T) error {
	if s.cfg.Validate != nil {
		if err := s.cfg.Validate(record); err != nil {
			return err
		}
	}
	key := s.cfg.Key(record)

	s.mu.Lock()
	idx := s.indexOf(key)
	if idx >= 0 && s.cfg.Policy == RejectDuplicate {
		s.mu.Unlock()
		return apperrors.NewConflictError(fmt.Sprintf("%s entry %q already exists", s.cfg.Entity, key))
	}
	var previous *T
	if idx >= 0 {
		prev := s.items[idx]
		previous = &prev
		s.items[idx] = record
	} else {
		s.items = append(s.items, record)
	}
	s.persistLocked()
	s.mu.Unlock()

	s.remoteMu.Lock()
	defer s.remoteMu.Unlock()

	if !s.online(ctx) {
		s.enqueue(Op[T]{Kind: OpAdd, Record: record})
		return nil
	}

	stored, err := s.cfg.Remote.Create(ctx, record)
	switch {
	case err == nil:
		s.mu.Lock()
		if i := s.indexOf(key); i >= 0 {
			s.items[i] = stored
			s.persistLocked()
		}
		s.mu.Unlock()
		return nil
	case api.IsUnreachable(err):
		s.markDown(err, "add")
		s.enqueue(Op[T]{Kind: OpAdd, Record: record})
		return nil
	default:
		s.mu.Lock()
		if previous != nil {
			s.putLocked(key, *previous)
		} else {
			s.removeLocked(key)
		}
		s.persistLocked()
		s.mu.Unlock()
		return err
	}
}

// Remove deletes the record stored under key locally and then on the
// service. A record the service no longer has counts as removed.
func (s *Syncer[T]) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	idx := s.indexOf(key)
	if idx < 0 {
		s.mu.Unlock()
		return apperrors.NewNotFoundError(fmt.Sprintf("%s entry %q not found", s.cfg.Entity, key))
	}
	record := s.items[idx]
	s.removeLocked(key)
	s.persistLocked()
	s.mu.Unlock()

	s.remoteMu.Lock()
	defer s.remoteMu.Unlock()

	if !s.online(ctx) {
		s.enqueue(Op[T]{Kind: OpRemove, Record: record})
		return nil
	}

	err := s.cfg.Remote.Delete(ctx, record)
	switch {
	case err == nil, apperrors.Is(err, apperrors.ErrorTypeNotFound):
		return nil
	case api.IsUnreachable(err):
		s.markDown(err, "remove")
		s.enqueue(Op[T]{Kind: OpRemove, Record: record})
		return nil
	default:
		s.mu.Lock()
		s.putLocked(key, record)
		s.persistLocked()
		s.mu.Unlock()
		return err
	}
}

// online reports whether a write may go straight to the service: the probe
// says it is up and every queued write has been delivered first. Callers
// hold remoteMu.
func (s *Syncer[T]) online(ctx context.Context) bool {
	if !s.probe.Check(ctx) {
		return false
	}
	if !s.opts.reconcile {
		return true
	}
	if err := s.replay(ctx); err != nil {
		s.markDown(err, "replay")
		return false
	}
	return true
}

// Load hydrates the collection from local storage and, when the service is
// reachable, replays queued writes and replaces the collection with the
// service's copy. Without the service it returns the local copy, or the
// sample records when nothing is stored.
func (s *Syncer[T]) Load(ctx context.Context) (Result[T], error) {
	s.hydrate()

	s.remoteMu.Lock()
	ok := s.online(ctx)
	s.remoteMu.Unlock()
	if !ok {
		return s.offlineResult(), nil
	}

	data, err := s.cfg.Remote.Fetch(ctx)
	if err != nil {
		if api.IsUnreachable(err) {
			s.markDown(err, "fetch")
			return s.offlineResult(), nil
		}
		return Result[T]{Source: SourceLocal, Data: s.Items()}, err
	}

	s.mu.Lock()
	s.items = append([]T(nil), data...)
	s.persistLocked()
	s.mu.Unlock()

	return Result[T]{Source: SourceRemote, Data: append([]T(nil), data...)}, nil
}

func (s *Syncer[T]) offlineResult() Result[T] {
	items := s.Items()
	if len(items) > 0 || s.cfg.Samples == nil {
		return Result[T]{Source: SourceLocal, Data: items}
	}
	return Result[T]{Source: SourceFallback, Data: s.cfg.Samples()}
}

func (s *Syncer[T]) hydrate() {
	var items []T
	if _, err := s.store.Load(s.StorageKey(), &items); err != nil {
		log.Warn().Err(err).Str("key", s.StorageKey()).Msg("Ignoring unreadable local collection")
		items = nil
	}
	var pending []Op[T]
	if _, err := s.store.Load(s.PendingKey(), &pending); err != nil {
		log.Warn().Err(err).Str("key", s.PendingKey()).Msg("Ignoring unreadable pending queue")
		pending = nil
	}

	s.mu.Lock()
	s.items = items
	s.pending = pending
	s.mu.Unlock()
}

// replay sends queued writes in order. It stops at the first write the
// service cannot be reached for and keeps it and the rest queued. Callers
// hold remoteMu.
func (s *Syncer[T]) replay(ctx context.Context) error {
	for {
		s.mu.RLock()
		if len(s.pending) == 0 {
			s.mu.RUnlock()
			return nil
		}
		op := s.pending[0]
		s.mu.RUnlock()

		err := retry.DoWithLog(ctx, s.opts.retry, s.cfg.Entity, func() error {
			err := s.apply(ctx, op)
			if err == nil || api.IsUnreachable(err) {
				return err
			}
			return retry.Permanent(err)
		}, func(attempt int, err error, next time.Duration) {
			log.Debug().Err(err).Int("attempt", attempt).Dur("next", next).
				Str("entity", s.cfg.Entity).Msg("Retrying queued write")
		})
		if err != nil && api.IsUnreachable(err) {
			return err
		}
		if err != nil {
			log.Warn().Err(err).Str("entity", s.cfg.Entity).Str("kind", string(op.Kind)).
				Str("key", s.cfg.Key(op.Record)).Msg("Dropping queued write rejected by service")
		}

		s.mu.Lock()
		if len(s.pending) > 0 {
			s.pending = s.pending[1:]
		}
		s.persistPendingLocked()
		s.mu.Unlock()
	}
}

func (s *Syncer[T]) apply(ctx context.Context, op Op[T]) error {
	switch op.Kind {
	case OpAdd:
		_, err := s.cfg.Remote.Create(ctx, op.Record)
		if s.cfg.Policy == RejectDuplicate && apperrors.Is(err, apperrors.ErrorTypeConflict) {
			return nil
		}
		return err
	case OpRemove:
		err := s.cfg.Remote.Delete(ctx, op.Record)
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return nil
		}
		return err
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unknown queued operation %q", op.Kind))
	}
}

// enqueue records a write for replay, keeping at most the writes needed to
// reach the latest local state of its key: a newer write supersedes older
// ones, except that a queued remove stays ahead of a re-add when duplicates
// are rejected, so the service drops its old copy first.
func (s *Syncer[T]) enqueue(op Op[T]) {
	if !s.opts.reconcile {
		return
	}
	key := s.cfg.Key(op.Record)

	s.mu.Lock()
	defer s.mu.Unlock()

	var firstRemove *Op[T]
	kept := s.pending[:0:0]
	for _, queued := range s.pending {
		if s.cfg.Key(queued.Record) != key {
			kept = append(kept, queued)
			continue
		}
		if queued.Kind == OpRemove && firstRemove == nil {
			removed := queued
			firstRemove = &removed
		}
	}
	if op.Kind == OpAdd && s.cfg.Policy == RejectDuplicate && firstRemove != nil {
		kept = append(kept, *firstRemove)
	}
	s.pending = append(kept, op)
	s.persistPendingLocked()
}

func (s *Syncer[T]) markDown(err error, op string) {
	s.probe.MarkUnavailable()
	log.Warn().Err(err).Str("entity", s.cfg.Entity).Str("op", op).Msg("Service unreachable, keeping local copy")
}

func (s *Syncer[T]) indexOf(key string) int {
	for i, item := range s.items {
		if s.cfg.Key(item) == key {
			return i
		}
	}
	return -1
}

func (s *Syncer[T]) putLocked(key string, record T) {
	if i := s.indexOf(key); i >= 0 {
		s.items[i] = record
		return
	}
	s.items = append(s.items, record)
}

func (s *Syncer[T]) removeLocked(key string) {
	if i := s.indexOf(key); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

func (s *Syncer[T]) persistLocked() {
	if err := s.store.Save(s.StorageKey(), s.items); err != nil {
		log.Error().Err(err).Str("key", s.StorageKey()).Msg("Failed to persist local collection")
	}
}

func (s *Syncer[T]) persistPendingLocked() {
	if err := s.store.Save(s.PendingKey(), s.pending); err != nil {
		log.Error().Err(err).Str("key", s.PendingKey()).Msg("Failed to persist pending queue")
	}
}
