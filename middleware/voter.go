// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/ballotbox/ballotbox/auth"
	"github.com/ballotbox/ballotbox/models"
)

// Cookie names used by the transport layer.
const (
	SessionCookie    = "session"
	VotedPollsCookie = "voted_polls"
)

// votedPollsSep delimits poll IDs inside the voted-polls cookie value.
// Commas are not legal in cookie values.
const votedPollsSep = "|"

// VoterContext assembles the ambient request signals the engine needs: the
// client network address, the authenticated user (if the session cookie
// holds a valid token) and the voted-polls token set the client carried.
func VoterContext(r *http.Request, sessionSecret string) models.RequestContext {
	reqCtx := models.RequestContext{
		IPAddress:  GetClientIP(r),
		VotedPolls: ReadVotedPolls(r),
	}

	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		// An invalid or expired session just means anonymous.
		if uid, err := auth.ParseSessionToken(c.Value, sessionSecret); err == nil {
			reqCtx.UserID = uid
		}
	}

	return reqCtx
}

// ReadVotedPolls parses the voted-polls cookie into a poll ID list.
func ReadVotedPolls(r *http.Request) []string {
	c, err := r.Cookie(VotedPollsCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	var ids []string
	for _, id := range strings.Split(c.Value, votedPollsSep) {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// VotedPollsValue encodes a poll ID list as a cookie value.
func VotedPollsValue(ids []string) string {
	return strings.Join(ids, votedPollsSep)
}

type voterCtxKey struct{}

// WithVoterContext resolves the voter signals once per request and stores
// them on the request context for resolvers to pick up.
func WithVoterContext(sessionSecret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), voterCtxKey{}, VoterContext(r, sessionSecret))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// VoterFromContext returns the request's voter signals, or a zero context
// when WithVoterContext did not run.
func VoterFromContext(ctx context.Context) models.RequestContext {
	reqCtx, _ := ctx.Value(voterCtxKey{}).(models.RequestContext)
	return reqCtx
}

// Pending cookie plumbing. GraphQL resolvers cannot reach the response
// writer, so outbound cookie mutations are collected on the request context
// and flushed onto the response just before the first header write.

type cookieBinKey struct{}

type cookieBin struct {
	mu      sync.Mutex
	cookies []*http.Cookie
}

// SetPendingCookie records a cookie to be written with the response. No-op
// when the request was not wrapped by WithPendingCookies.
func SetPendingCookie(ctx context.Context, c *http.Cookie) {
	bin, ok := ctx.Value(cookieBinKey{}).(*cookieBin)
	if !ok {
		return
	}
	bin.mu.Lock()
	bin.cookies = append(bin.cookies, c)
	bin.mu.Unlock()
}

// WithPendingCookies installs a pending-cookie bin on the request context
// and flushes it into Set-Cookie headers before the response body starts.
func WithPendingCookies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bin := &cookieBin{}
		cw := &cookieFlushWriter{ResponseWriter: w, bin: bin}
		next.ServeHTTP(cw, r.WithContext(context.WithValue(r.Context(), cookieBinKey{}, bin)))
	})
}

type cookieFlushWriter struct {
	http.ResponseWriter
	bin         *cookieBin
	wroteHeader bool
}

func (w *cookieFlushWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.bin.mu.Lock()
		for _, c := range w.bin.cookies {
			http.SetCookie(w.ResponseWriter, c)
		}
		w.bin.mu.Unlock()
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *cookieFlushWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
