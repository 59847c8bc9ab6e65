package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"austender/migrations"
)

// querier is the part of a connection the aggregation queries use.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool

	// QueryTimeout bounds each aggregation query. Zero means no timeout.
	QueryTimeout time.Duration

	// acquire hands out a connection and its release func. Nil means Pool.
	acquire func(ctx context.Context) (querier, func(), error)
}

// Open creates a connection pool without connecting. Connections are made
// on first use, so an unreachable database surfaces per query.
func Open(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// New creates a new database connection pool and checks it can connect.
func New(ctx context.Context, connString string) (*DB, error) {
	d, err := Open(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := d.Ping(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return d, nil
}

// Ping checks that a connection to the database can be established.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// RunMigrations applies the embedded contracts schema. Only the seed command
// and tests call this; the server treats the table as externally owned.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// withConn acquires one connection for the duration of fn and releases it on
// every return path.
func (d *DB) withConn(ctx context.Context, fn func(ctx context.Context, conn querier) error) error {
	if d.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.QueryTimeout)
		defer cancel()
	}

	acquire := d.acquire
	if acquire == nil {
		acquire = d.acquirePool
	}

	conn, release, err := acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer release()

	return fn(ctx, conn)
}

func (d *DB) acquirePool(ctx context.Context) (querier, func(), error) {
	conn, err := d.Pool.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	return conn, conn.Release, nil
}
