package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/clhatlas/reco4011-ssim/pkg/errors"
	"github.com/clhatlas/reco4011-ssim/pkg/pipeline"
	"github.com/clhatlas/reco4011-ssim/pkg/store"
	"github.com/clhatlas/reco4011-ssim/pkg/study"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "ism-api",
	})
}

// handleAnalyze runs a stateless analysis: study JSON in, result JSON
// out. Nothing is persisted.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	st, err := study.ReadJSON(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Analyze(r.Context(), st, pipeline.Options{Logger: s.logger})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type createStudyResponse struct {
	ID string `json:"id"`
}

// handleCreateStudy persists the study together with its analysis
// result and returns the record id.
func (s *Server) handleCreateStudy(w http.ResponseWriter, r *http.Request) {
	st, err := study.ReadJSON(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Analyze(r.Context(), st, pipeline.Options{Logger: s.logger})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := store.NewRecord(st, res)
	if err := s.store.Put(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createStudyResponse{ID: rec.ID.String()})
}

type studySummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	FactorCount int       `json:"factor_count"`
	LevelCount  int       `json:"level_count"`
}

func (s *Server) handleListStudies(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]studySummary, len(recs))
	for i, rec := range recs {
		sum := studySummary{
			ID:        rec.ID.String(),
			Name:      rec.Name,
			CreatedAt: rec.CreatedAt,
		}
		if rec.Study != nil {
			sum.FactorCount = len(rec.Study.Factors)
		}
		if rec.Result != nil {
			sum.LevelCount = len(rec.Result.Levels)
		}
		out[i] = sum
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetStudy(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupRecord(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteStudy(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupRecord(w, r)
	if !ok {
		return
	}
	if rec.Result == nil {
		s.writeError(w, r, apperrors.New(apperrors.ErrCodeNotFound,
			"study %s has no stored result", rec.ID))
		return
	}
	writeJSON(w, http.StatusOK, rec.Result)
}

// handleGetDiagram renders the stored study's hierarchy diagram. The
// pipeline cache makes repeated fetches cheap.
func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookupRecord(w, r)
	if !ok {
		return
	}

	opts := pipeline.Options{
		Formats:  []string{pipeline.FormatSVG},
		Detailed: r.URL.Query().Get("detailed") == "true",
		Logger:   s.logger,
	}
	res, err := s.runner.Execute(r.Context(), rec.Study, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[pipeline.FormatSVG])
}

func (s *Server) lookupRecord(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return rec, true
}

func parseID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err,
			"invalid study id %q", raw)
	}
	return id, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps error codes to HTTP statuses. Unknown codes fall back
// to 500 so internal errors never leak as client errors.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidSymbol,
		apperrors.ErrCodeInvalidFactor,
		apperrors.ErrCodeDuplicateFactor,
		apperrors.ErrCodeInvalidStudy,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeStudyNotFound,
		apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
