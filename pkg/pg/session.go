package pg

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultSchema is the shared schema holding cross-tenant tables.
const DefaultSchema = "public"

var schemaNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// DBTX is the query surface shared by sessions and transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ValidateSchemaName rejects anything that is not a plain lower-case identifier.
func ValidateSchemaName(schema string) error {
	if !schemaNamePattern.MatchString(schema) {
		return ErrInvalidSchemaName
	}
	return nil
}

// Sessions hands out pooled connections pinned to a schema via search_path.
type Sessions struct {
	pool           *pgxpool.Pool
	log            *slog.Logger
	releaseTimeout time.Duration
}

// NewSessions creates a session factory over pool.
func NewSessions(pool *pgxpool.Pool, cfg Config, log *slog.Logger) *Sessions {
	timeout := cfg.ReleaseTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sessions{pool: pool, log: log, releaseTimeout: timeout}
}

// Acquire takes a connection from the pool and points its search_path at schema.
// The caller must Release the session on every path.
func (s *Sessions) Acquire(ctx context.Context, schema string) (*Session, error) {
	if err := ValidateSchemaName(schema); err != nil {
		return nil, err
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToAcquireSession, err)
	}

	sess := &Session{conn: conn, schema: schema, sessions: s}
	if schema == DefaultSchema {
		return sess, nil
	}

	path := pgx.Identifier{schema}.Sanitize()
	if _, err := conn.Exec(ctx, "SELECT set_config('search_path', $1, false)", path); err != nil {
		sess.discard(ctx)
		return nil, errors.Join(ErrFailedToSetSchema, err)
	}
	sess.scoped = true

	return sess, nil
}

// Session is a single pooled connection bound to one schema.
// It is not safe for concurrent use.
type Session struct {
	conn     *pgxpool.Conn
	schema   string
	scoped   bool
	sessions *Sessions

	once     sync.Once
	released bool
}

func (s *Session) Schema() string { return s.schema }

func (s *Session) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if s.released {
		return pgconn.CommandTag{}, ErrSessionReleased
	}
	return s.conn.Exec(ctx, sql, args...)
}

func (s *Session) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if s.released {
		return nil, ErrSessionReleased
	}
	return s.conn.Query(ctx, sql, args...)
}

func (s *Session) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if s.released {
		return errRow{err: ErrSessionReleased}
	}
	return s.conn.QueryRow(ctx, sql, args...)
}

// Begin starts a transaction on the session's connection, so it sees the same schema.
func (s *Session) Begin(ctx context.Context) (pgx.Tx, error) {
	if s.released {
		return nil, ErrSessionReleased
	}
	return s.conn.Begin(ctx)
}

// Release resets search_path and returns the connection to the pool.
// A connection whose reset fails is closed instead, so a tenant schema never
// leaks into another request. Release is idempotent and ignores ctx cancellation.
func (s *Session) Release(ctx context.Context) {
	s.once.Do(func() {
		s.released = true
		if !s.scoped {
			s.conn.Release()
			return
		}

		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sessions.releaseTimeout)
		defer cancel()

		if _, err := s.conn.Exec(rctx, "RESET search_path"); err != nil {
			s.sessions.log.WarnContext(ctx, "closing connection after failed search_path reset",
				slog.String("schema", s.schema), slog.Any("error", err))
			s.discard(rctx)
			return
		}
		s.conn.Release()
	})
}

func (s *Session) discard(ctx context.Context) {
	s.released = true
	raw := s.conn.Hijack()
	_ = raw.Close(context.WithoutCancel(ctx))
}

// WithSession runs fn inside a session for schema and always releases it.
func WithSession(ctx context.Context, sessions *Sessions, schema string, fn func(*Session) error) error {
	sess, err := sessions.Acquire(ctx, schema)
	if err != nil {
		return err
	}
	defer sess.Release(ctx)

	return fn(sess)
}

// WithTx runs fn in a transaction on db, committing on success.
func WithTx(ctx context.Context, db DBTX, fn func(pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
