// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ballotbox/ballotbox/cliparse"
	"github.com/ballotbox/ballotbox/clock"
	"github.com/ballotbox/ballotbox/db"
	"github.com/ballotbox/ballotbox/engine"
	"github.com/ballotbox/ballotbox/graph"
	"github.com/ballotbox/ballotbox/metrics"
	"github.com/ballotbox/ballotbox/middleware"
)

func NewRouter(dbConn *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Wire the engine and its collaborators
	polls := db.NewPollStore(dbConn)
	users := db.NewUserStore(dbConn)
	clk := clock.Real{}
	builder := engine.NewBuilder(polls, users, clk)
	caster := engine.NewCaster(polls, clk)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	resolver := graph.NewResolver(builder, caster, polls, users, clk, collector, cfg.SessionSecret)

	// The GraphQL endpoint carries the whole query/mutation surface. Voter
	// signals come in through cookies and headers; cookie mutations go back
	// out through the pending-cookie writer.
	graphqlHandler := middleware.WithLogging(
		middleware.CORS(
			middleware.WithVoterContext(cfg.SessionSecret,
				middleware.WithPendingCookies(
					graph.NewHandler(resolver)))))

	mux.Handle("POST /graphql", graphqlHandler)
	mux.Handle("OPTIONS /graphql", graphqlHandler)
	mux.Handle("GET /graphiql", graph.PlaygroundHandler())

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", metrics.Handler(registry))

	// Root endpoint. The "/" pattern also catches every path no other route
	// claims, so unknown paths get the JSON error shape here.
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.ErrorResponse(w, http.StatusNotFound, "unknown path")
			return
		}
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
