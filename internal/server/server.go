// Package server provides the pinlyric REST API: annotation,
// script conversion, tap lookup, and the song/vocabulary store, plus a
// WebSocket feed of annotated lines for live lyric displays.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pinlyric/pinlyric/core/engine"
	"github.com/pinlyric/pinlyric/core/errors"
	"github.com/pinlyric/pinlyric/internal/logging"
	"github.com/pinlyric/pinlyric/internal/store"
)

// Config holds server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string // WebSocket allowed origins (empty = same-host only)
}

// Server ties the engine and the study store to HTTP.
type Server struct {
	cfg    Config
	engine *engine.Engine
	store  *store.Store
	hub    *Hub
}

// New creates a Server. store may be nil, in which case the song and
// vocabulary routes respond 404.
func New(cfg Config, eng *engine.Engine, st *store.Store) *Server {
	return &Server{cfg: cfg, engine: eng, store: st, hub: NewHub()}
}

// Start runs the server until the listener fails.
func (s *Server) Start() error {
	go s.hub.Run()
	logging.ServerStartup("rest_api", "http", s.cfg.Port,
		"lexicon_entries", s.engine.Lexicon().Len())
	return http.ListenAndServe(fmt.Sprintf(":%d", s.cfg.Port), s.Handler())
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/annotate", s.handleAnnotate)
	mux.HandleFunc("POST /api/v1/convert", s.handleConvert)
	mux.HandleFunc("GET /api/v1/lookup", s.handleLookup)
	mux.HandleFunc("GET /api/v1/songs", s.handleListSongs)
	mux.HandleFunc("POST /api/v1/songs", s.handleAddSong)
	mux.HandleFunc("GET /api/v1/songs/{id}", s.handleGetSong)
	mux.HandleFunc("DELETE /api/v1/songs/{id}", s.handleDeleteSong)
	mux.HandleFunc("GET /api/v1/vocab", s.handleListVocab)
	mux.HandleFunc("POST /api/v1/vocab", s.handleAddVocab)
	mux.HandleFunc("GET /api/v1/ws", s.handleWebSocket)
	return RequestLogger(mux)
}

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

func respondStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, errors.ErrNotFound) {
		respondError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if errors.Is(err, errors.ErrInvalidInput) {
		respondError(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, "internal", err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"lexicon_entries": s.engine.Lexicon().Len(),
		"time":            time.Now().UTC().Format(time.RFC3339),
	})
}

// AnnotatedLine pairs a lyric line with its per-character annotation
// units and, when a width was given, the shared wrap offsets.
type AnnotatedLine struct {
	Glyphs      string   `json:"glyphs"`
	Annotations []string `json:"annotations"`
	WrapPlan    []int    `json:"wrap_plan,omitempty"`
}

func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Line     string  `json:"line"`
		MaxWidth float64 `json:"max_width,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}
	units := s.engine.SegmentAndAnnotate(req.Line)
	out := AnnotatedLine{Glyphs: req.Line, Annotations: units}
	if req.MaxWidth > 0 {
		out.WrapPlan = s.engine.ComputeWrapPlan(req.Line, units, req.MaxWidth)
	}
	s.hub.Broadcast(LineMessage{Type: "line_annotated", Line: out})
	respond(w, http.StatusOK, out)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		To   string `json:"to"` // "simplified" or "traditional"
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}
	var converted string
	switch req.To {
	case "simplified":
		converted = s.engine.ToSimplified(req.Text)
	case "traditional":
		converted = s.engine.ToTraditional(req.Text)
	default:
		respondError(w, http.StatusBadRequest, "invalid_input",
			`"to" must be "simplified" or "traditional"`)
		return
	}
	respond(w, http.StatusOK, map[string]string{"text": converted})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	line := r.URL.Query().Get("line")
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if line == "" || err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input",
			"line and integer offset query parameters are required")
		return
	}
	match, ok := s.engine.FindWordAt(line, offset)
	if !ok {
		// A miss is a normal outcome for the caller's UI, not a
		// server error.
		respond(w, http.StatusOK, map[string]interface{}{"found": false})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"found": true,
		"entry": match.Entry,
		"start": match.Start,
		"end":   match.End,
	})
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusNotFound, "not_found", "no store configured")
		return
	}
	songs, err := s.store.ListSongs()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, songs)
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusNotFound, "not_found", "no store configured")
		return
	}
	var song store.Song
	if err := json.NewDecoder(r.Body).Decode(&song); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}
	if err := s.store.AddSong(&song); err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusCreated, song)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusNotFound, "not_found", "no store configured")
		return
	}
	song, err := s.store.GetSong(r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, song)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusNotFound, "not_found", "no store configured")
		return
	}
	if err := s.store.DeleteSong(r.PathValue("id")); err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"deleted": r.PathValue("id")})
}

func (s *Server) handleListVocab(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusNotFound, "not_found", "no store configured")
		return
	}
	items, err := s.store.ListVocab()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusOK, items)
}

func (s *Server) handleAddVocab(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusNotFound, "not_found", "no store configured")
		return
	}
	var item store.VocabItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return
	}
	if err := s.store.AddVocab(&item); err != nil {
		respondStoreError(w, err)
		return
	}
	respond(w, http.StatusCreated, item)
}
