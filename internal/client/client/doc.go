// Package client contains the CLI's building blocks for talking to the
// study planner API.
//
// # Overview
//
// The package provides:
//  1. An API contract (see the Client interface) covering accounts, plans,
//     progress, resources, motivation, text analysis and document summaries.
//  2. A concrete HTTP implementation (see HTTPClient) that unwraps the
//     server's response envelope, injects the bearer access token and, on a
//     401, refreshes the token pair once and retries the call.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI,
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound. Server-side
// failures arrive as *APIError carrying the status and machine code.
package client
