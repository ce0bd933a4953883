// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package graph

import (
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

// NewHandler parses the schema against the resolver and returns the
// /graphql HTTP handler. Panics on a schema/resolver mismatch, which is a
// programming error caught at startup.
func NewHandler(resolver *Resolver) http.Handler {
	schema := graphql.MustParseSchema(schemaString, resolver)
	return &relay.Handler{Schema: schema}
}

// PlaygroundHandler serves a minimal GraphiQL page pointed at /graphql.
func PlaygroundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(graphiqlHTML))
	})
}

const graphiqlHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>ballotbox GraphiQL</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphiql@3/graphiql.min.css"/>
</head>
<body style="margin:0">
  <div id="graphiql" style="height:100vh"></div>
  <script src="https://cdn.jsdelivr.net/npm/react@18/umd/react.production.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/react-dom@18/umd/react-dom.production.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/graphiql@3/graphiql.min.js"></script>
  <script>
    ReactDOM.createRoot(document.getElementById('graphiql')).render(
      React.createElement(GraphiQL, {
        fetcher: GraphiQL.createFetcher({ url: '/graphql' }),
      })
    );
  </script>
</body>
</html>
`
