package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/latticeforge/discovery/internal/novelty"
	"github.com/latticeforge/discovery/internal/pipeline"
)

func testHandler() *Handler {
	cfg := pipeline.DefaultConfig()
	cfg.Depth = 1
	cfg.MinModelSize = 1
	cfg.MaxModelSize = 2
	cfg.MaxModelsPerSize = 2
	cfg.SolverTimeout = 500 * time.Millisecond
	cfg.ScoreThreshold = 0
	cfg.TopN = 10

	return NewHandler(cfg, novelty.NewMemStore(), NewHub(nil), nil)
}

func TestHandleHealthReturnsOK(t *testing.T) {
	h := testHandler()
	r := SetupRouter(h, RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestHandleListStructuresReturnsCatalog(t *testing.T) {
	h := testHandler()
	r := SetupRouter(h, RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/v1/structures", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	structures, ok := body["structures"].([]any)
	if !ok || len(structures) != 8 {
		t.Errorf("structures = %v, want 8 catalog entries", body["structures"])
	}
}

func TestHandleExploreRequiresAuthWhenTokenConfigured(t *testing.T) {
	h := testHandler()
	r := SetupRouter(h, RouterConfig{AuthToken: "secret"})

	req := httptest.NewRequest(http.MethodPost, "/v1/explore", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without auth token", w.Code)
	}
}

func TestHandleExploreRejectsUnknownSeedName(t *testing.T) {
	h := testHandler()
	r := SetupRouter(h, RouterConfig{})

	req := httptest.NewRequest(http.MethodPost, "/v1/explore", bytes.NewBufferString(`{"seeds":["NotARealStructure"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for an unknown seed name", w.Code)
	}
}

func TestExploreRunCompletesAndIsRetrievable(t *testing.T) {
	h := testHandler()
	r := SetupRouter(h, RouterConfig{})

	req := httptest.NewRequest(http.MethodPost, "/v1/explore", bytes.NewBufferString(`{"seeds":["Semigroup"],"depth":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("explore status = %d, want 202", w.Code)
	}
	var accepted map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &accepted); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	runID, _ := accepted["runId"].(string)
	if runID == "" {
		t.Fatal("expected a non-empty runId")
	}

	deadline := time.Now().Add(5 * time.Second)
	var status string
	for time.Now().Before(deadline) {
		getReq := httptest.NewRequest(http.MethodGet, "/v1/runs/"+runID, nil)
		getW := httptest.NewRecorder()
		r.ServeHTTP(getW, getReq)

		var body map[string]any
		if err := json.Unmarshal(getW.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		status, _ = body["status"].(string)
		if status == string(RunCompleted) || status == string(RunFailed) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if status != string(RunCompleted) {
		t.Fatalf("run status = %q, want %q", status, RunCompleted)
	}

	discReq := httptest.NewRequest(http.MethodGet, "/v1/discoveries", nil)
	discW := httptest.NewRecorder()
	r.ServeHTTP(discW, discReq)
	if discW.Code != http.StatusOK {
		t.Errorf("discoveries status = %d, want 200", discW.Code)
	}
}

func TestHandleGetRunReturns404ForUnknownID(t *testing.T) {
	h := testHandler()
	r := SetupRouter(h, RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/v1/runs/does-not-exist", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
