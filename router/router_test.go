package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ballotbox/ballotbox/models"
	"github.com/ballotbox/ballotbox/testutil"
)

func TestRouter(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(conn, testutil.GetTestConfig())

	t.Run("health check", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var health map[string]string
		testutil.AssertJSON(t, w, &health)
		if health["status"] != "ok" {
			t.Errorf("Expected status ok, got %q", health["status"])
		}
	})

	t.Run("root endpoint", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("unknown path is a JSON 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/no-such-path", nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)

		var errResp models.ErrorResponse
		testutil.AssertJSON(t, w, &errResp)
		if errResp.Error != http.StatusText(http.StatusNotFound) {
			t.Errorf("Expected Not Found error, got %q", errResp.Error)
		}
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("graphiql page", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/graphiql", nil))
		testutil.AssertStatus(t, w, http.StatusOK)
		if ct := w.Header().Get("Content-Type"); ct != "text/html" {
			t.Errorf("Expected text/html, got %q", ct)
		}
	})

	t.Run("graphql preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/graphql", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Expected origin echoed back, got %q", got)
		}
	})

	t.Run("graphql query", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"query": "query { polls { id } }",
		})
		req := httptest.NewRequest("POST", "/graphql", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		if !strings.Contains(w.Body.String(), `"polls"`) {
			t.Errorf("Unexpected GraphQL response: %s", w.Body.String())
		}
	})
}

func TestRouterMetricsCountActivity(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	mux := NewRouter(conn, testutil.GetTestConfig())

	body, _ := json.Marshal(map[string]interface{}{
		"query": `mutation {
			createPoll(input: {question: "Counted?", choices: ["A", "B"], protectionMode: NONE}) { id }
		}`,
	})
	req := httptest.NewRequest("POST", "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(w.Body.String(), "ballotbox_polls_created_total 1") {
		t.Errorf("Expected poll creation counted in metrics, got:\n%s", w.Body.String())
	}
}
