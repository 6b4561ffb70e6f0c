package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/flowsketch/flowsketch/pkg/errors"
	"github.com/flowsketch/flowsketch/pkg/pipeline"
	"github.com/flowsketch/flowsketch/pkg/store"
)

// defaultListLimit caps the list endpoint when no limit is given.
const defaultListLimit = 50

// buildResponse is returned by the build endpoint.
type buildResponse struct {
	ID        string         `json:"id"`
	GraphHash string         `json:"graph_hash"`
	Blocks    int            `json:"blocks"`
	Edges     int            `json:"edges"`
	CacheHit  bool           `json:"cache_hit"`
	Record    *store.Record  `json:"record,omitempty"`
	Artifacts map[string]int `json:"artifact_sizes,omitempty"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// handleHealth returns a JSON health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleBuild builds a graph from posted source text, persists it, and
// returns the record id alongside build statistics.
func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "malformed request body: %v", err))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	rec := store.NewRecord(opts.Source, *result.Graph, result.GraphHash)
	if err := s.store.Set(r.Context(), rec); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "persist graph"))
		return
	}

	sizes := make(map[string]int, len(result.Artifacts))
	for format, data := range result.Artifacts {
		sizes[format] = len(data)
	}

	s.logger.Info("stored graph", "id", rec.ID, "blocks", result.Stats.BlockCount)
	writeJSON(w, http.StatusCreated, buildResponse{
		ID:        rec.ID,
		GraphHash: result.GraphHash,
		Blocks:    result.Stats.BlockCount,
		Edges:     result.Stats.EdgeCount,
		CacheHit:  result.CacheInfo.BuildHit,
		Record:    rec,
		Artifacts: sizes,
	})
}

// handleList returns stored records, newest first.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", raw))
			return
		}
		limit = parsed
	}

	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list graphs"))
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleGet returns a stored record as JSON.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookup(r.Context(), chi.URLParam(r, "graphID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleDelete removes a stored record.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "graphID")
	if err := errors.ValidateGraphID(id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		if err == store.ErrNotFound {
			writeError(w, errors.New(errors.ErrCodeGraphNotFound, "graph %s not found", id))
			return
		}
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete graph"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDOT serves the stored graph as DOT text.
func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatDOT, "text/vnd.graphviz; charset=utf-8")
}

// handleSVG serves the stored graph rendered as SVG.
func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatSVG, "image/svg+xml")
}

// handlePNG serves the stored graph rendered as PNG.
func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatPNG, "image/png")
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format, contentType string) {
	rec, err := s.lookup(r.Context(), chi.URLParam(r, "graphID"))
	if err != nil {
		writeError(w, err)
		return
	}

	artifacts, _, err := s.runner.RenderWithCacheInfo(r.Context(), &rec.Graph, rec.GraphHash, pipeline.Options{
		Source:  rec.Source,
		Formats: []string{format},
	})
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts[format])
}

func (s *Server) lookup(ctx context.Context, id string) (*store.Record, error) {
	if err := errors.ValidateGraphID(id); err != nil {
		return nil, err
	}
	rec, err := s.store.Get(ctx, id)
	if err == store.ErrNotFound {
		return nil, errors.New(errors.ErrCodeGraphNotFound, "graph %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load graph")
	}
	return rec, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

// statusFor maps error codes onto HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSource, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidGraph:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeGraphNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRemote, errors.ErrCodeRemotePayload:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
