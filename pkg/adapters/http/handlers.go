package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/dsl"
	"github.com/go-chi/chi/v5"
)

// CreateSessionRequest is the optional body of POST /sessions.
type CreateSessionRequest struct {
	Source  string            `json:"source,omitempty"`
	Example string            `json:"example,omitempty"`
	State   map[string]string `json:"state,omitempty"`
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if err := decodeOptional(r, &body); err != nil {
		writeJSONError(w, bodyStatus(err), err)
		return
	}

	pg, err := s.create(r.Context(), body)
	if err != nil {
		writeJSONError(w, statusFor(err), err)
		return
	}

	var resp FrameResponse
	err = s.Sessions.Do(r.Context(), pg.ID(), func(ctx context.Context, pg *sail.Playground) error {
		resp = newFrameResponse(pg)
		return nil
	})
	if err != nil {
		writeJSONError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) create(ctx context.Context, body CreateSessionRequest) (*sail.Playground, error) {
	source, state := body.Source, body.State
	if body.Example != "" {
		if s.Library == nil {
			return nil, fmt.Errorf("%w: no library configured", domain.ErrExampleNotFound)
		}
		ex, err := s.Library.Get(ctx, body.Example)
		if err != nil {
			return nil, err
		}
		source = ex.Source
		if state == nil {
			state = ex.State
		}
	}
	if source == "" {
		source = s.initialSource
	}
	return s.Sessions.Create(ctx, source, state)
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	s.withFrame(w, r, false, func(ctx context.Context, pg *sail.Playground) error {
		return nil
	})
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeJSONError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditSource handles the PUT /sessions/{id}/source request.
func (s *Server) EditSource(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, bodyStatus(err), fmt.Errorf("invalid request body: %w", err))
		return
	}
	s.withFrame(w, r, true, func(ctx context.Context, pg *sail.Playground) error {
		pg.Edit(ctx, body.Source)
		return nil
	})
}

// FieldInput handles the POST /sessions/{id}/input request.
func (s *Server) FieldInput(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, bodyStatus(err), fmt.Errorf("invalid request body: %w", err))
		return
	}
	s.withFrame(w, r, true, func(ctx context.Context, pg *sail.Playground) error {
		_, err := pg.Input(ctx, body.Key, body.Value)
		return err
	})
}

// Reset handles the POST /sessions/{id}/reset request.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	s.withFrame(w, r, true, func(ctx context.Context, pg *sail.Playground) error {
		pg.Reset(ctx)
		return nil
	})
}

// Submit handles the POST /sessions/{id}/submit request.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request) {
	var state map[string]string
	err := s.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, pg *sail.Playground) error {
		state = pg.Submit(ctx)
		return nil
	})
	if err != nil {
		writeJSONError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": state})
}

// GetHistory handles the GET /sessions/{id}/history request.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	var entries []domain.Snapshot
	err := s.Sessions.Do(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, pg *sail.Playground) error {
		entries = pg.History()
		return nil
	})
	if err != nil {
		writeJSONError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// ListFunctions handles the GET /functions request.
func (s *Server) ListFunctions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dsl.Catalog)
}

// ListExamples handles the GET /examples request.
func (s *Server) ListExamples(w http.ResponseWriter, r *http.Request) {
	if s.Library == nil {
		writeJSON(w, http.StatusOK, []domain.Example{})
		return
	}
	examples, err := s.Library.List(r.Context())
	if err != nil {
		s.logger.Error("ListExamples failed", "err", err)
		writeJSONError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, examples)
}

// GetExample handles the GET /examples/{id} request.
func (s *Server) GetExample(w http.ResponseWriter, r *http.Request) {
	if s.Library == nil {
		writeJSONError(w, http.StatusNotFound, domain.ErrExampleNotFound)
		return
	}
	ex, err := s.Library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

// withFrame runs fn under the session lock and answers with the resulting
// frame. Mutations are also published to the session's stream.
func (s *Server) withFrame(w http.ResponseWriter, r *http.Request, mutates bool, fn func(context.Context, *sail.Playground) error) {
	id := chi.URLParam(r, "id")
	var resp FrameResponse
	err := s.Sessions.Do(r.Context(), id, func(ctx context.Context, pg *sail.Playground) error {
		before := markOf(pg)
		if err := fn(ctx, pg); err != nil {
			return err
		}
		resp = newFrameResponse(pg)
		if mutates {
			before.diff(pg, &resp)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			s.logger.Warn("Session request failed", "session_id", id, "err", err)
		}
		writeJSONError(w, statusFor(err), err)
		return
	}
	if mutates {
		s.publish(resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

// bodyStatus answers 413 when the body hit the size cap and 400 otherwise.
func bodyStatus(err error) int {
	if errors.As(err, new(*http.MaxBytesError)) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// decodeOptional decodes a JSON body if one was sent.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
