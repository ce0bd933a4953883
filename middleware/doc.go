// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware contains HTTP middleware and request/response helpers.

# Middleware

  - WithLogging: structured request start/completion logging
  - CORS: cross-origin headers plus preflight handling
  - WithPendingCookies: lets resolvers queue Set-Cookie headers

# Helpers

  - JSONResponse / ErrorResponse: JSON encoding with standard error shape,
    used by the plain HTTP endpoints (GraphQL responses are encoded by the
    relay handler)
  - GetClientIP: X-Forwarded-For / X-Real-IP / RemoteAddr resolution

# Voter Context

VoterContext distills a request into the three identity signals the engine
consumes: client IP, session user and the voted-polls cookie set. The voted
set travels as a "|"-delimited list of poll IDs in the voted_polls cookie;
the session is a JWT in the session cookie.

# Pending Cookies

Cookie-protected votes produce an updated voted-polls set that must reach
the client as a cookie, but GraphQL resolvers never see the response
writer. SetPendingCookie queues the cookie on the request context and
WithPendingCookies flushes the queue into headers before the body is
written.
*/
package middleware
