// Package session tracks which device a user is currently authenticated from
// and enforces a one-canonical-active-session policy across devices.
//
// # Model
//
// Every successful authentication creates one durable Session row carrying an
// opaque token, a device descriptor derived from the User-Agent, and a
// location snapshot resolved from the client IP. At most one row per user is
// current at any quiescent moment. A new login demotes the previous current
// row to a superseded state instead of deleting it: the older device keeps
// its row, can still be listed and terminated, but fails validation until the
// user logs in from it again. Rows are destroyed only by explicit
// termination; there is no soft delete and no automatic expiry (idle-timeout
// policy belongs to the identity provider).
//
// # Core Components
//
//   - Session: one authenticated device-login record
//   - Manager: coordinates creation, validation, heartbeat, and termination
//   - Store: persistence interface (Postgres, in-memory)
//   - MemoryStore: mutex-guarded Store for tests and development
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/sessionguard/core/session"
//
//	manager := session.NewManager(store,
//		session.WithResolver(geoResolver),
//		session.WithFlagger(reviewQueue),
//	)
//
//	// On successful authentication:
//	sess, err := manager.Create(ctx, userID, r.UserAgent(), clientIP)
//	// The caller persists sess.Token locally (cookie, local storage).
//
//	// On each sensitive action:
//	result, err := manager.Validate(ctx, userID, localToken)
//	if err != nil {
//		// persistence failure: show a generic retryable error
//	}
//	if !result.Valid && result.Conflict != nil {
//		// logged in elsewhere; result.Conflict carries the other
//		// device's descriptor for the "you've been superseded" UI
//	}
//
// # Exclusivity Under Concurrent Logins
//
// Two near-simultaneous Create calls for the same user each run a
// demote-then-insert sequence. Store implementations must make that sequence
// atomic (a transaction in Postgres, a single mutex in MemoryStore) so the
// interleaving can never leave two current rows. The Postgres schema
// additionally carries a partial unique index on (user_id) WHERE is_current
// that makes a racing second writer fail rather than corrupt the invariant;
// such a failure is retryable.
//
// # Anomaly Hook
//
// When a Flagger is configured, Create compares the new login's location
// against the snapshot on the previous current row and records a flag for
// manual review when the countries differ. The flag write is best-effort:
// the session is already committed, so a flag failure is logged, never
// surfaced to the authenticating user.
package session
