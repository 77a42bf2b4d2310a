// Package server serves the /items contract from a local store so the page
// can run without the hosted API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/blog/internal/model"
	"github.com/idilsaglam/blog/internal/store"
)

// maxBody caps request bodies.
const maxBody = 1 << 20

type Server struct {
	store store.Store
	log   zerolog.Logger
}

func New(s store.Store, log zerolog.Logger) *Server {
	return &Server{store: s, log: log}
}

// Handler returns the routes for the /items collection.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /items", s.handleList)
	mux.HandleFunc("POST /items", s.handleCreate)
	mux.HandleFunc("GET /items/{id}", s.handleGet)
	mux.HandleFunc("PUT /items/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /items/{id}", s.handleDelete)
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	p, err := s.store.Create(r.Context(), d)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	p, err := s.store.Update(r.Context(), r.PathValue("id"), d)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Item deleted")
}

// decodeDraft reads {title, content} and applies the same required-field
// rules as the page's form.
func decodeDraft(w http.ResponseWriter, r *http.Request) (model.Draft, bool) {
	var d model.Draft
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&d); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return model.Draft{}, false
	}
	errs := model.Validate(d)
	if msg, bad := errs[model.FieldTitle]; bad {
		writeMessage(w, http.StatusBadRequest, msg)
		return model.Draft{}, false
	}
	if msg, bad := errs[model.FieldContent]; bad {
		writeMessage(w, http.StatusBadRequest, msg)
		return model.Draft{}, false
	}
	return d, true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Item not found")
		return
	}
	s.log.Error().Err(err).Msg("store failure")
	writeMessage(w, http.StatusInternalServerError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
