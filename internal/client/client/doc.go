// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the record store (see the Client
//     interface): login/logout/status/signup and medicine CRUD.
//  2. A concrete HTTP implementation (see HTTPClient) that sends the Basic
//     credential token, tags every request with an X-Request-ID and maps
//     HTTP outcomes to sentinel errors.
//  3. Local persistence bootstrap (OpenDatabase, RunMigrations) wiring an
//     SQLite database and applying the embedded goose migrations.
//
// # Error Handling
//
// Callers match with errors.Is / errors.As: ErrUnauthorized (HTTP 401),
// ErrUnavailable (no response at all) and *StatusError for any other
// non-2xx answer.
//
// Every call is a single attempt. There are no retries and no client-side
// timeout beyond what the caller's context imposes.
package client
