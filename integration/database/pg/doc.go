// Package pg provides PostgreSQL-backed persistence for session rows and
// anomaly flags, plus connection management with retry logic and goose-based
// schema migrations.
//
// SessionStore implements session.Store. Its Create runs the
// demote-then-insert sequence inside a single transaction, and the schema
// carries a partial unique index on (user_id) WHERE is_current, so two racing
// logins can never commit two current rows for one user: the second writer
// fails with a unique violation and should be retried by the caller
// (IsUniqueViolation classifies the error).
//
// # Usage
//
//	cfg := pg.Config{ConnectionString: "postgres://..."}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil { ... }
//
//	store := pg.NewSessionStore(pool)
//	flags := pg.NewFlagStore(pool)
package pg
