// Package sessions provides the durable storage for the saved login.
//
// # Overview
//
// A single row keyed "user" in the local SQLite metadata table holds the
// JSON-encoded models.StoredCredentials. Its absence means nobody is logged
// in. Save is transactional: the value is written, read back and compared
// before the transaction commits, so a reader never sees a partial record.
//
// Key Types
//
//   - type Repository: contract used by the auth service
//   - type SQLiteRepository: SQLite implementation over *sql.DB
//
// Typical Usage
//
//	repo := sessions.NewSQLiteRepository(db)
//	_ = repo.Save(ctx, models.StoredCredentials{Username: "hitesh", Token: tok})
//	creds, _ := repo.Load(ctx) // nil, nil when nothing is stored
//	_ = repo.Clear(ctx)
package sessions
