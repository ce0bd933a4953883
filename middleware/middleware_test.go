package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ballotbox/ballotbox/auth"
	"github.com/ballotbox/ballotbox/models"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "x-forwarded-for single",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "1.2.3.4",
		},
		{
			name:       "x-forwarded-for chain",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.2"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "1.2.3.4",
		},
		{
			name:       "x-real-ip",
			headers:    map[string]string{"X-Real-IP": "5.6.7.8"},
			remoteAddr: "10.0.0.1:1234",
			expected:   "5.6.7.8",
		},
		{
			name:       "remote addr with port",
			remoteAddr: "10.0.0.1:1234",
			expected:   "10.0.0.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "10.0.0.1",
			expected:   "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]string{"status": "ok"})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "unknown path")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	var body models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Error != http.StatusText(http.StatusNotFound) {
		t.Errorf("Expected Not Found, got %q", body.Error)
	}
	if body.Message != "unknown path" {
		t.Errorf("Expected message preserved, got %q", body.Message)
	}
}

func TestVotedPollsCookieCodec(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{name: "no cookie", value: "", expected: nil},
		{name: "single id", value: "p1", expected: []string{"p1"}},
		{name: "multiple ids", value: "p1|p2|p3", expected: []string{"p1", "p2", "p3"}},
		{name: "empty segments skipped", value: "|p1||p2|", expected: []string{"p1", "p2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.value != "" {
				req.AddCookie(&http.Cookie{Name: VotedPollsCookie, Value: tt.value})
			}

			got := ReadVotedPolls(req)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("Expected %v, got %v", tt.expected, got)
				}
			}
		})
	}

	t.Run("value roundtrip", func(t *testing.T) {
		ids := []string{"p1", "p2"}
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: VotedPollsCookie, Value: VotedPollsValue(ids)})

		got := ReadVotedPolls(req)
		if len(got) != 2 || got[0] != "p1" || got[1] != "p2" {
			t.Errorf("Expected [p1 p2], got %v", got)
		}
	})
}

func TestWithVoterContext(t *testing.T) {
	var captured struct {
		ip         string
		userID     string
		votedPolls []string
	}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqCtx := VoterFromContext(r.Context())
		captured.ip = reqCtx.IPAddress
		captured.userID = reqCtx.UserID
		captured.votedPolls = reqCtx.VotedPolls
		w.WriteHeader(http.StatusOK)
	})
	handler := WithVoterContext("test-secret", inner)

	t.Run("anonymous request", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/graphql", nil)
		req.RemoteAddr = "1.2.3.4:5678"
		req.AddCookie(&http.Cookie{Name: VotedPollsCookie, Value: "p1|p2"})

		handler.ServeHTTP(httptest.NewRecorder(), req)

		if captured.ip != "1.2.3.4" {
			t.Errorf("Expected IP 1.2.3.4, got %q", captured.ip)
		}
		if captured.userID != "" {
			t.Errorf("Expected anonymous, got user %q", captured.userID)
		}
		if len(captured.votedPolls) != 2 {
			t.Errorf("Expected 2 voted polls, got %v", captured.votedPolls)
		}
	})

	t.Run("valid session resolves the user", func(t *testing.T) {
		token, err := auth.NewSessionToken("u1", "test-secret")
		if err != nil {
			t.Fatalf("Failed to issue session token: %v", err)
		}
		req := httptest.NewRequest("POST", "/graphql", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})

		handler.ServeHTTP(httptest.NewRecorder(), req)

		if captured.userID != "u1" {
			t.Errorf("Expected user u1, got %q", captured.userID)
		}
	})

	t.Run("invalid session is anonymous", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/graphql", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})

		handler.ServeHTTP(httptest.NewRecorder(), req)

		if captured.userID != "" {
			t.Errorf("Expected anonymous, got user %q", captured.userID)
		}
	})
}

func TestWithPendingCookies(t *testing.T) {
	t.Run("pending cookie flushed before body", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			SetPendingCookie(r.Context(), &http.Cookie{Name: VotedPollsCookie, Value: "p1", Path: "/"})
			w.Write([]byte("ok"))
		})
		w := httptest.NewRecorder()
		WithPendingCookies(inner).ServeHTTP(w, httptest.NewRequest("POST", "/graphql", nil))

		res := w.Result()
		cookies := res.Cookies()
		if len(cookies) != 1 || cookies[0].Name != VotedPollsCookie || cookies[0].Value != "p1" {
			t.Errorf("Expected voted_polls cookie, got %v", cookies)
		}
		if w.Body.String() != "ok" {
			t.Errorf("Body not preserved: %q", w.Body.String())
		}
	})

	t.Run("no pending cookies sets nothing", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		w := httptest.NewRecorder()
		WithPendingCookies(inner).ServeHTTP(w, httptest.NewRequest("POST", "/graphql", nil))

		if got := w.Result().Cookies(); len(got) != 0 {
			t.Errorf("Expected no cookies, got %v", got)
		}
	})

	t.Run("set outside wrapper is a no-op", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/graphql", nil)
		// Must not panic when the bin is absent.
		SetPendingCookie(req.Context(), &http.Cookie{Name: "x", Value: "y"})
	})
}
