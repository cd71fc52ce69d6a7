package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bbaird/floorplan/pkg/pipeline"
	"github.com/bbaird/floorplan/pkg/results"
)

func testHandler(t *testing.T) (http.Handler, results.Store) {
	t.Helper()
	store := results.NewMemoryStore()
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	return newAPIHandler(runner, store, log.NewWithOptions(io.Discard, log.Options{})), store
}

func evaluateBody() []byte {
	body, _ := json.Marshal(map[string]any{
		"npe": "12V",
		"manifest": map[string]any{
			"cells": []map[string]any{
				{"name": "1", "area": 4, "aspect_ratio": 1, "fixed": true},
				{"name": "2", "area": 4, "aspect_ratio": 4, "fixed": true},
			},
		},
	})
	return body
}

func TestHandleHealth(t *testing.T) {
	h, _ := testHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleEvaluate(t *testing.T) {
	h, store := testHandler(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewReader(evaluateBody()))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp evaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.Area != 12 {
		t.Errorf("area = %v, want 12", resp.Result.Area)
	}
	if resp.LibraryHash == "" {
		t.Error("library_hash should be set")
	}

	// The evaluation is persisted.
	list, err := store.List(req.Context(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("stored results = %d, want 1", len(list))
	}
	if list[0].NPE != "12V" {
		t.Errorf("stored NPE = %q", list[0].NPE)
	}
}

func TestHandleEvaluateInvalid(t *testing.T) {
	h, _ := testHandler(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"BadJSON", "{not json", http.StatusBadRequest},
		{"MissingNPE", `{"manifest":{"cells":[{"name":"1","area":4,"aspect_ratio":1}]}}`, http.StatusBadRequest},
		{"InvalidExpression", `{"npe":"12VV","manifest":{"cells":[{"name":"1","area":4,"aspect_ratio":1},{"name":"2","area":4,"aspect_ratio":1}]}}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewReader([]byte(tt.body)))
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d, body %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestHandleResults(t *testing.T) {
	h, _ := testHandler(t)

	// Seed one result through the API.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewReader(evaluateBody())))
	if rec.Code != http.StatusOK {
		t.Fatalf("seed evaluate: status %d", rec.Code)
	}
	var seeded evaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &seeded); err != nil {
		t.Fatalf("decode seed: %v", err)
	}
	id := seeded.Result.ID

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/results", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var listResp struct {
		Results []results.Result `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(listResp.Results))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/results/"+id, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/results/"+id, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/results/"+id, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted: status %d, want 404", rec.Code)
	}
}

func TestHandleResultsBadLimit(t *testing.T) {
	h, _ := testHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/results?limit=nope", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
