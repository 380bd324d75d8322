package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"brdstudio/internal/domain"
	"brdstudio/internal/storage"
	"brdstudio/internal/store"
	"brdstudio/internal/util"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	Store     store.Store
	Finals    storage.FinalDocStore
	UploadDir string
}

// Server exposes the BRD API. Every endpoint performs exactly one store
// operation; AI calls happen client-side.
type Server struct {
	store  store.Store
	finals storage.FinalDocStore
	mux    *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		store:  cfg.Store,
		finals: cfg.Finals,
		mux:    http.NewServeMux(),
	}
	s.routes(cfg.UploadDir)
	return s
}

// Router returns the configured handler with middleware applied.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes(uploadDir string) {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/brds", s.handleBRDs)
	s.mux.HandleFunc("/api/brds/", s.handleBRDSubtree)
	if uploadDir != "" {
		s.mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBRDs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListBRDs(w)
	case http.MethodPost:
		s.handleCreateBRD(w, r)
	default:
		methodNotAllowed(w)
	}
}

// handleBRDSubtree dispatches /api/brds/{id}, /api/brds/{id}/final, and
// /api/brds/{id}/chat.
func (s *Server) handleBRDSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/brds/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)
	id := parts[0]
	if id == "" {
		notFound(w, "BRD not found")
		return
	}
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetBRD(w, id)
		case http.MethodPut:
			s.handleUpdateContent(w, r, id)
		default:
			methodNotAllowed(w)
		}
		return
	}
	switch parts[1] {
	case "final":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleFinalUpload(w, r, id)
	case "chat":
		switch r.Method {
		case http.MethodGet:
			s.handleListChat(w, id)
		case http.MethodPost:
			s.handleAppendChat(w, r, id)
		default:
			methodNotAllowed(w)
		}
	default:
		notFound(w, "not found")
	}
}

func (s *Server) handleListBRDs(w http.ResponseWriter) {
	brds, err := s.store.ListBRDs()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, brds)
}

func (s *Server) handleGetBRD(w http.ResponseWriter, id string) {
	brd, ok, err := s.store.GetBRD(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		notFound(w, "BRD not found")
		return
	}
	writeJSON(w, http.StatusOK, brd)
}

type createBRDRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Transcription string `json:"transcription"`
	ExtraNotes    string `json:"extraNotes"`
	Language      string `json:"language"`
}

func (s *Server) handleCreateBRD(w http.ResponseWriter, r *http.Request) {
	var req createBRDRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 32<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	brd, err := s.store.CreateBRD(domain.BRD{
		Title:         req.Title,
		Content:       req.Content,
		Transcription: req.Transcription,
		ExtraNotes:    req.ExtraNotes,
		Language:      domain.ParseLanguage(req.Language),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": brd.ID})
}

type updateContentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleUpdateContent(w http.ResponseWriter, r *http.Request, id string) {
	var req updateContentRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 32<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	_, ok, err := s.store.GetBRD(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		notFound(w, "BRD not found")
		return
	}
	if err := s.store.UpdateContent(id, req.Content); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleFinalUpload(w http.ResponseWriter, r *http.Request, id string) {
	_, ok, err := s.store.GetBRD(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		notFound(w, "BRD not found")
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()
	path, err := s.finals.Save(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	if err := s.store.SetFinalDocPath(id, path); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

func (s *Server) handleListChat(w http.ResponseWriter, id string) {
	msgs, err := s.store.ListChat(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

type appendChatRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (s *Server) handleAppendChat(w http.ResponseWriter, r *http.Request, id string) {
	var req appendChatRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	role := domain.ChatRole(req.Role)
	if role != domain.RoleUser && role != domain.RoleModel {
		writeError(w, http.StatusBadRequest, "role must be user or model")
		return
	}
	msg, err := s.store.AppendChat(id, role, req.Content)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": msg.ID})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func notFound(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusNotFound, msg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
