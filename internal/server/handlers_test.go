package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/clhatlas/reco4011-ssim/pkg/cache"
	"github.com/clhatlas/reco4011-ssim/pkg/ism"
	"github.com/clhatlas/reco4011-ssim/pkg/pipeline"
	"github.com/clhatlas/reco4011-ssim/pkg/store"
)

const chainStudyJSON = `{
  "name": "chain",
  "factors": [
    {"id": "a", "code": "F1"},
    {"id": "b", "code": "F2"},
    {"id": "c", "code": "F3"}
  ],
  "judgments": {"a": {"b": "V"}, "b": {"c": "V"}}
}`

func testServer() *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	return New(runner, store.NewMemoryStore(), logger)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, testServer(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" || resp.Service != "ism-api" {
		t.Errorf("response = %+v", resp)
	}
}

func TestAnalyze(t *testing.T) {
	rec := doRequest(t, testServer(), http.MethodPost, "/api/v1/analyze", chainStudyJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var res ism.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.N() != 3 || len(res.Levels) != 3 {
		t.Errorf("got N=%d levels=%d, want 3 and 3", res.N(), len(res.Levels))
	}
	if res.FRM[0][2] != 1 {
		t.Error("closure edge a->c missing from FRM")
	}
}

func TestAnalyze_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{
			"MalformedJSON",
			`{"factors": [`,
			"INVALID_FORMAT",
		},
		{
			"DuplicateFactor",
			`{"factors": [{"id": "a"}, {"id": "a"}]}`,
			"DUPLICATE_FACTOR",
		},
		{
			"UnknownSymbol",
			`{"factors": [{"id": "a"}, {"id": "b"}], "judgments": {"a": {"b": "Q"}}}`,
			"INVALID_SYMBOL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, testServer(), http.MethodPost, "/api/v1/analyze", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body: %s", rec.Code, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("code = %s, want %s", resp.Code, tt.code)
			}
		})
	}
}

func TestStudyLifecycle(t *testing.T) {
	s := testServer()

	// Create
	rec := doRequest(t, s, http.MethodPost, "/api/v1/studies", chainStudyJSON)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var created createStudyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("missing record id")
	}

	// List
	rec = doRequest(t, s, http.MethodGet, "/api/v1/studies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list []studySummary
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID || list[0].FactorCount != 3 {
		t.Errorf("list = %+v", list)
	}

	// Get
	rec = doRequest(t, s, http.MethodGet, "/api/v1/studies/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var stored store.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if stored.Name != "chain" || stored.Study == nil {
		t.Errorf("record = %+v", stored)
	}

	// Result
	rec = doRequest(t, s, http.MethodGet, "/api/v1/studies/"+created.ID+"/result", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("result status = %d", rec.Code)
	}
	var res ism.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if len(res.Levels) != 3 {
		t.Errorf("stored result levels = %d, want 3", len(res.Levels))
	}

	// Delete
	rec = doRequest(t, s, http.MethodDelete, "/api/v1/studies/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doRequest(t, s, http.MethodGet, "/api/v1/studies/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestGetStudy_Errors(t *testing.T) {
	s := testServer()

	t.Run("BadID", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/v1/studies/not-a-uuid", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/v1/studies/00000000-0000-0000-0000-000000000000", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Code != "STUDY_NOT_FOUND" {
			t.Errorf("code = %s, want STUDY_NOT_FOUND", resp.Code)
		}
	})
}

func TestAnalyzeResponseStable(t *testing.T) {
	s := testServer()

	first := doRequest(t, s, http.MethodPost, "/api/v1/analyze", chainStudyJSON)
	second := doRequest(t, s, http.MethodPost, "/api/v1/analyze", chainStudyJSON)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d", first.Code, second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("identical requests produced different responses")
	}
}
