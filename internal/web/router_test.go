package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hmans/crudql/internal/config"
	"github.com/hmans/crudql/internal/graph"
	"github.com/hmans/crudql/internal/recordcore"
)

func setupTestRouter(t *testing.T, playground bool) (http.Handler, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	core := recordcore.New(cfg)
	if err := core.Load(); err != nil {
		t.Fatalf("failed to load core: %v", err)
	}

	schema, err := graph.NewSchemaForVariant(config.VariantCRUD, &graph.Resolver{Core: core})
	if err != nil {
		t.Fatalf("failed to build schema: %v", err)
	}

	var logs bytes.Buffer
	r := NewRouter(schema, Options{Playground: playground}, zerolog.New(&logs))
	return r, &logs
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, gqlResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, DefaultPath, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp gqlResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v (%q)", err, rec.Body.String())
	}
	return rec, resp
}

func get(h http.Handler, params url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, DefaultPath+"?"+params.Encode(), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPostQuery(t *testing.T) {
	r, _ := setupTestRouter(t, true)

	rec, resp := post(t, r, `{"query": "{ hello }"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if string(resp.Data["hello"]) != `"Hello, GraphQL!"` {
		t.Errorf("hello = %s", resp.Data["hello"])
	}
}

func TestPostMutationFlow(t *testing.T) {
	r, _ := setupTestRouter(t, true)

	_, resp := post(t, r, `{"query": "mutation { createUser(id: \"3\", name: \"Carol\", age: 28) { id name age } }"}`)
	if len(resp.Errors) > 0 {
		t.Fatalf("createUser errors: %v", resp.Errors)
	}
	if string(resp.Data["createUser"]) != `{"id":"3","name":"Carol","age":28}` {
		t.Errorf("createUser = %s", resp.Data["createUser"])
	}

	body := `{"query": "mutation Del($id: ID!) { deleteUser(id: $id) }", "variables": {"id": "99"}}`
	_, resp = post(t, r, body)
	if string(resp.Data["deleteUser"]) != `"User not found"` {
		t.Errorf("deleteUser(99) = %s", resp.Data["deleteUser"])
	}
}

func TestPostInvalidDocument(t *testing.T) {
	r, _ := setupTestRouter(t, true)

	_, resp := post(t, r, `{"query": "{ nope }"}`)
	if len(resp.Errors) == 0 {
		t.Error("expected errors for unknown field")
	}
}

func TestGetQuery(t *testing.T) {
	r, _ := setupTestRouter(t, true)

	rec := get(r, url.Values{
		"query":     {`query Q($id: ID!) { user(id: $id) { name } }`},
		"variables": {`{"id": "1"}`},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp gqlResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if string(resp.Data["user"]) != `{"name":"Alice"}` {
		t.Errorf("user = %s", resp.Data["user"])
	}
}

func TestGetRejectsMutation(t *testing.T) {
	r, _ := setupTestRouter(t, true)

	rec := get(r, url.Values{"query": {`mutation { deleteUser(id: "1") }`}})
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Errorf("Allow = %q, want POST", rec.Header().Get("Allow"))
	}

	// The record must still be there
	rec = get(r, url.Values{"query": {`{ user(id: "1") { id } }`}})
	if !strings.Contains(rec.Body.String(), `"id":"1"`) {
		t.Errorf("user 1 missing after refused GET mutation: %s", rec.Body.String())
	}
}

func TestGetInvalidVariables(t *testing.T) {
	r, _ := setupTestRouter(t, true)

	rec := get(r, url.Values{"query": {`{ hello }`}, "variables": {`{not json`}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPlayground(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		r, _ := setupTestRouter(t, true)
		rec := get(r, url.Values{})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Header().Get("Content-Type"), "text/html") {
			t.Errorf("Content-Type = %q, want text/html", rec.Header().Get("Content-Type"))
		}
	})

	t.Run("disabled", func(t *testing.T) {
		r, _ := setupTestRouter(t, false)
		rec := get(r, url.Values{})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestRequestID(t *testing.T) {
	r, logs := setupTestRouter(t, true)

	t.Run("generated", func(t *testing.T) {
		rec, _ := post(t, r, `{"query": "{ hello }"}`)
		id := rec.Header().Get(RequestIDHeader)
		if id == "" {
			t.Fatal("no request id header")
		}
		if !strings.Contains(logs.String(), id) {
			t.Errorf("request id %q not logged: %s", id, logs.String())
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, DefaultPath, strings.NewReader(`{"query": "{ hello }"}`))
		req.Header.Set(RequestIDHeader, "abc123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if got := rec.Header().Get(RequestIDHeader); got != "abc123" {
			t.Errorf("request id = %q, want abc123", got)
		}
	})

	t.Run("oversized replaced", func(t *testing.T) {
		long := strings.Repeat("x", maxRequestIDLength+1)
		req := httptest.NewRequest(http.MethodPost, DefaultPath, strings.NewReader(`{"query": "{ hello }"}`))
		req.Header.Set(RequestIDHeader, long)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		got := rec.Header().Get(RequestIDHeader)
		if got == "" || got == long {
			t.Errorf("request id = %q, want a generated id", got)
		}
		if len(got) > maxRequestIDLength {
			t.Errorf("request id length = %d, want <= %d", len(got), maxRequestIDLength)
		}
		if strings.Contains(logs.String(), long) {
			t.Error("oversized request id was logged")
		}
	})
}

func TestUnknownPath(t *testing.T) {
	r, _ := setupTestRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/elsewhere", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
