package lib

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/slok/habits/internal/app/addhabit"
	"github.com/slok/habits/internal/app/addtask"
	"github.com/slok/habits/internal/app/catalog"
	"github.com/slok/habits/internal/app/coins"
	"github.com/slok/habits/internal/app/convertsteps"
	"github.com/slok/habits/internal/app/progress"
	"github.com/slok/habits/internal/app/replacetask"
	"github.com/slok/habits/internal/app/seed"
	"github.com/slok/habits/internal/app/steps"
	"github.com/slok/habits/internal/app/summary"
	"github.com/slok/habits/internal/app/togglehabit"
	"github.com/slok/habits/internal/ledger"
	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/notify"
	"github.com/slok/habits/internal/storage"
	storageio "github.com/slok/habits/internal/storage/io"
	"github.com/slok/habits/internal/storage/memory"
	"github.com/slok/habits/internal/storage/sqlite"
)

// StorageType identifies the state backend of a store. Every backend is
// volatile, the state never outlives the store.
type StorageType string

const (
	// StorageMemory keeps the state in Go slices.
	StorageMemory StorageType = "memory"
	// StorageSQLite keeps the state in a private in-memory SQLite database.
	StorageSQLite StorageType = "sqlite"
)

// Config configures the store.
//
// All fields are optional. An empty Config{} gives a memory backed store
// seeded with the default tasks, habits and catalogs.
type Config struct {
	// Storage selects the state backend.
	// Default: [StorageMemory].
	Storage StorageType

	// SeedFS is the filesystem the seed is read from.
	// Default: the embedded default seed.
	SeedFS fs.FS

	// SeedPath is the YAML seed file path inside SeedFS.
	// Default: the embedded default seed path.
	SeedPath string

	// Logger receives structured log output from the store.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger

	// Clock returns the time used for events and ledger entries.
	// Default: UTC now.
	Clock func() time.Time
}

func (c *Config) defaults() error {
	switch c.Storage {
	case "":
		c.Storage = StorageMemory
	case StorageMemory, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage)
	}

	if c.SeedFS == nil {
		c.SeedFS = storageio.DefaultSeedFS()
		if c.SeedPath == "" {
			c.SeedPath = storageio.DefaultSeedPath
		}
	}

	if c.SeedPath == "" {
		return fmt.Errorf("seed path is required with a custom seed filesystem")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	if c.Clock == nil {
		c.Clock = func() time.Time { return time.Now().UTC() }
	}

	return nil
}

// Store is the habit state container.
//
// Create a Store with [New] and release its resources with [Store.Close].
// A Store is safe for concurrent use. Mutations are serialized and every
// state change is published to the subscribers after the mutation finishes,
// one event at a time and in mutation order.
type Store struct {
	// mu serializes mutations and guards closed, seq, pending and draining.
	mu     sync.Mutex
	closed bool
	// seq is the sequence number of the last queued event.
	seq uint64
	// pending holds the events queued for delivery, oldest first.
	pending []Event
	// draining is true while a goroutine is delivering the pending events.
	draining bool

	repo    storage.Repository
	bus     *notify.Bus[Event]
	logger  log.Logger
	clock   func() time.Time
	closeFn func() error

	addTask      *addtask.Service
	addHabit     *addhabit.Service
	progress     *progress.Service
	toggleHabit  *togglehabit.Service
	replaceTask  *replacetask.Service
	coins        *coins.Service
	steps        *steps.Service
	convertSteps *convertsteps.Service
	summary      *summary.Service
	catalog      *catalog.Service
}

// New creates a new store loaded with the configured seed.
//
// The caller should call [Store.Close] when done. Typically used with defer:
//
//	store, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
func New(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, mapError(fmt.Errorf("invalid config: %w: %w", ErrNotValid, err))
	}
	logger := cfg.Logger.WithValues(log.Kv{"svc": "lib.Store"})

	seedModel, err := storageio.NewSeedYAMLRepository(cfg.SeedFS).GetSeed(ctx, cfg.SeedPath)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not load seed: %w", err))
	}

	repo, closeFn, err := newRepository(ctx, cfg.Storage, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	s, err := newStore(repo, seedModel.Catalog, cfg.Logger, cfg.Clock)
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	s.logger = logger
	s.closeFn = closeFn

	seedSvc, err := seed.NewService(seed.ServiceConfig{Repository: repo, Logger: cfg.Logger})
	if err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	if err := seedSvc.Run(ctx, seed.Request{Seed: seedModel}); err != nil {
		_ = closeFn()
		return nil, mapError(fmt.Errorf("could not seed store: %w", err))
	}

	logger.Debugf("Store ready with %s storage", cfg.Storage)

	return s, nil
}

func newRepository(ctx context.Context, st StorageType, logger log.Logger) (storage.Repository, func() error, error) {
	switch st {
	case StorageSQLite:
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{Logger: logger})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: logger})
		if err != nil {
			return nil, nil, err
		}
		return repo, func() error { return nil }, nil
	}
}

func newStore(repo storage.Repository, cat model.Catalog, logger log.Logger, clock func() time.Time) (*Store, error) {
	book, err := ledger.NewBook(ledger.BookConfig{Repository: repo, Logger: logger, Clock: clock})
	if err != nil {
		return nil, fmt.Errorf("could not create ledger: %w", err)
	}

	s := &Store{repo: repo, bus: notify.NewBus[Event](), clock: clock}

	if s.addTask, err = addtask.NewService(addtask.ServiceConfig{Repository: repo, Logger: logger}); err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	if s.addHabit, err = addhabit.NewService(addhabit.ServiceConfig{Repository: repo, Logger: logger}); err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	if s.progress, err = progress.NewService(progress.ServiceConfig{Repository: repo, Ledger: book, Logger: logger}); err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	if s.toggleHabit, err = togglehabit.NewService(togglehabit.ServiceConfig{Repository: repo, Logger: logger}); err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	if s.replaceTask, err = replacetask.NewService(replacetask.ServiceConfig{Repository: repo, Logger: logger}); err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	if s.coins, err = coins.NewService(coins.ServiceConfig{Repository: repo, Ledger: book, Logger: logger}); err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	if s.steps, err = steps.NewService(steps.ServiceConfig{Repository: repo, Logger: logger}); err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	if s.convertSteps, err = convertsteps.NewService(convertsteps.ServiceConfig{Repository: repo, Ledger: book, Progress: s.progress, Logger: logger}); err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	if s.summary, err = summary.NewService(summary.ServiceConfig{Repository: repo, Logger: logger}); err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	if s.catalog, err = catalog.NewService(catalog.ServiceConfig{Catalog: cat, Repository: repo, Logger: logger}); err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	return s, nil
}

// Close releases the resources held by the store and drops every subscriber.
// After Close returns every operation fails with [ErrClosed]. Closing twice is
// safe.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.bus.Reset()

	if s.closeFn != nil {
		return s.closeFn()
	}
	return nil
}

// Subscribe registers fn to be called synchronously after every state change,
// and returns the func that removes it.
//
// Subscribers run once the mutation has finished, so they may read snapshots
// or even mutate the store from inside the callback. Events are delivered in
// mutation order, one at a time. An event raised from inside a callback is
// delivered after the callback returns. When another
// goroutine is already delivering events, the mutation returns after queuing
// its event and that goroutine delivers it.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

// mutate runs fn serialized with the rest of mutations and queues the event it
// returns, if any. The lock is released before the queue is delivered.
func (s *Store) mutate(fn func() (*Event, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	ev, err := fn()
	if err != nil {
		s.mu.Unlock()
		return mapError(err)
	}

	if ev != nil {
		s.seq++
		ev.Seq = s.seq
		s.pending = append(s.pending, *ev)
	}

	deliver := !s.draining && len(s.pending) > 0
	if deliver {
		s.draining = true
	}
	s.mu.Unlock()

	if deliver {
		s.drain()
	}

	return nil
}

// drain publishes the pending events until the queue is empty. Only one
// goroutine drains at a time.
func (s *Store) drain() {
	defer func() {
		// A subscriber panic releases the drain.
		if r := recover(); r != nil {
			s.mu.Lock()
			s.draining = false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		ev := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		s.bus.Publish(ev)
	}
}

// read fails once the store is closed.
func (s *Store) read() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	return nil
}

func (s *Store) event(kind EventKind, key string) *Event {
	return &Event{Kind: kind, Key: key, At: s.clock()}
}
