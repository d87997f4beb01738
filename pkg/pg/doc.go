// Package pg bootstraps PostgreSQL access on top of pgx/v5: pool creation
// with retries, goose migrations, health checks, error classification and
// schema-scoped sessions.
//
// A Session pins one pooled connection to a schema by setting search_path,
// which lets unqualified table names resolve into a tenant's schema:
//
//	sessions := pg.NewSessions(pool, cfg, log)
//	err := pg.WithSession(ctx, sessions, "tenant_0198a3f27c1e7b4a", func(s *pg.Session) error {
//		_, err := s.Exec(ctx, "UPDATE users SET is_active = false WHERE id = $1", id)
//		return err
//	})
//
// Releasing a session always resets search_path before the connection goes
// back to the pool; if the reset fails the connection is closed.
package pg
