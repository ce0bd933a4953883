// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes using Go 1.22+ routing.

# Routes

	POST /graphql   GraphQL queries and mutations
	GET  /graphiql  GraphiQL playground
	GET  /health    health check
	GET  /metrics   Prometheus scrape endpoint
	GET  /          API banner

NewRouter also performs the wiring: stores on top of the *sql.DB, the
engine on top of the stores, the resolver on top of the engine, and the
middleware chain (logging, CORS, voter context, pending cookies) around
the GraphQL handler.
*/
package router
