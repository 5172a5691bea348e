package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// ConnectFunc opens and verifies a client.
type ConnectFunc func(ctx context.Context) (*mongo.Client, error)

// InitFunc runs once against a freshly connected database, e.g. to create indexes.
type InitFunc func(ctx context.Context, db *mongo.Database) error

// Source hands out the shared database handle.
type Source interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// Provider is the process-wide, lazily connected MongoDB handle. Concurrent
// first callers share one connection attempt. A failed attempt is not
// remembered, so the next caller tries again.
type Provider struct {
	connect ConnectFunc
	dbName  string
	timeout time.Duration
	inits   []InitFunc

	group singleflight.Group

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
}

// NewProvider returns a Provider for cfg. No connection is made until the
// first call to Database.
func NewProvider(cfg Config, inits ...InitFunc) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return newProvider(dial(cfg.URI), cfg.Database, timeout, inits...)
}

func newProvider(connect ConnectFunc, dbName string, timeout time.Duration, inits ...InitFunc) *Provider {
	return &Provider{connect: connect, dbName: dbName, timeout: timeout, inits: inits}
}

// Database returns the shared handle, connecting on first use.
func (p *Provider) Database(ctx context.Context) (*mongo.Database, error) {
	if db := p.cached(); db != nil {
		return db, nil
	}

	v, err, _ := p.group.Do("connect", func() (any, error) {
		if db := p.cached(); db != nil {
			return db, nil
		}
		return p.open(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Database), nil
}

// Ping verifies connectivity, connecting first if needed.
func (p *Provider) Ping(ctx context.Context) error {
	db, err := p.Database(ctx)
	if err != nil {
		return err
	}
	return db.Client().Ping(ctx, nil)
}

// Close disconnects the client if one was opened.
func (p *Provider) Close(ctx context.Context) error {
	p.mu.Lock()
	client := p.client
	p.client, p.db = nil, nil
	p.mu.Unlock()

	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func (p *Provider) cached() *mongo.Database {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.db
}

// open runs one connection attempt. The attempt is detached from the caller's
// cancellation because other callers may be waiting on it.
func (p *Provider) open(ctx context.Context) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	client, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}

	db := client.Database(p.dbName)
	for _, fn := range p.inits {
		if err := fn(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("mongo init: %w", err)
		}
	}

	p.mu.Lock()
	p.client, p.db = client, db
	p.mu.Unlock()
	return db, nil
}

// dial establishes a MongoDB client and verifies connectivity with a ping.
func dial(uri string) ConnectFunc {
	return func(ctx context.Context) (*mongo.Client, error) {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}

		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("mongo ping: %w", err)
		}
		return client, nil
	}
}

// EnsureIndexes creates the unique and lookup indexes of every collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range indexModels() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}
