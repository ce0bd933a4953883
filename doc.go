// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballotbox API server.

ballotbox runs timed, multi-choice polls with per-poll duplicate-vote
protection (none, cookie, IP address, or login) and delayed result reveal.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=ballotbox.db SESSION_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8087 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - SESSION_SECRET (-session-secret): Secret for session JWT signing

Optional settings:

  - PORT (-p): Server port (default: 8087)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server is a GraphQL API over a small voting engine:

  - engine: poll lifecycle, voter fingerprinting, dedup ledger, vote caster
  - graph: GraphQL schema and resolvers
  - db: poll document store (optimistic versioning) and user store
  - middleware: logging, CORS, voter context, cookie plumbing
  - auth: password hashing and session tokens
  - metrics: Prometheus counters
  - models: domain types and typed errors
  - clock: injectable time source
  - router: route definitions using Go 1.22+ routing
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
