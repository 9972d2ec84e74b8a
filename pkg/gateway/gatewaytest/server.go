// Package gatewaytest provides an in-memory fake of the backend gateway's
// document and team-invite endpoints for tests.
package gatewaytest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Server is a fake gateway. Stored documents use the gateway's legacy field
// spellings (filename, size, content_type, bucket) so callers exercise
// normalization.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	documents map[string]map[string]any
	invites   map[string]map[string]any
	order     []string
	requests  []*http.Request
	token     string
	now       func() time.Time
}

// NewServer starts a fake gateway. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		documents: map[string]map[string]any{},
		invites:   map[string]map[string]any{},
		now:       func() time.Time { return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) },
	}

	r := mux.NewRouter()
	r.Use(s.record, s.authenticate)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/documents", s.uploadDocument).Methods(http.MethodPost)
	api.HandleFunc("/documents/me", s.listMyDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}", s.getDocument).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}", s.deleteDocument).Methods(http.MethodDelete)
	api.HandleFunc("/entities/{type}/{id}/documents", s.listEntityDocuments).Methods(http.MethodGet)
	api.HandleFunc("/team/invites", s.listInvites).Methods(http.MethodGet)
	api.HandleFunc("/team/invites", s.createInvite).Methods(http.MethodPost)
	api.HandleFunc("/team/invites/{id}", s.revokeInvite).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	return s
}

// PutDocument stores a raw document record as-is. The record must carry an
// "id" string.
func (s *Server) PutDocument(raw map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprint(raw["id"])
	if _, ok := s.documents[id]; !ok {
		s.order = append(s.order, id)
	}
	s.documents[id] = raw
}

// RequireToken makes the fake accept only token. Empty accepts any
// non-empty token.
func (s *Server) RequireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Requests returns the requests the fake has received so far.
func (s *Server) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Clone(r.Context()))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		want := s.token
		s.mu.Unlock()

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" || (want != "" && token != want) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error":   "unauthorized",
				"message": "Missing or invalid bearer token",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "FILE_REQUIRED", "A file is required")
		return
	}
	defer file.Close()
	size, _ := io.Copy(io.Discard, file)

	id := uuid.NewString()
	doc := map[string]any{
		"id":           id,
		"entity_type":  r.FormValue("entity_type"),
		"entity_id":    r.FormValue("entity_id"),
		"filename":     header.Filename,
		"storage_path": fmt.Sprintf("documents/%s/%s", id, header.Filename),
		"size":         strconv.FormatInt(size, 10),
		"content_type": header.Header.Get("Content-Type"),
		"bucket":       "portal-documents",
		"created_at":   s.now().Format(time.RFC3339),
		"updated_at":   s.now().Format(time.RFC3339),
		"owner":        bearer(r),
	}
	if dt := r.FormValue("document_type"); dt != "" {
		doc["document_type"] = dt
	}

	s.PutDocument(doc)
	writeJSON(w, http.StatusCreated, map[string]any{"data": doc})
}

func (s *Server) listMyDocuments(w http.ResponseWriter, r *http.Request) {
	token := bearer(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"data": s.filterDocuments(func(d map[string]any) bool { return d["owner"] == token }),
	})
}

func (s *Server) listEntityDocuments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"data": s.filterDocuments(func(d map[string]any) bool {
			return d["entity_type"] == vars["type"] && d["entity_id"] == vars["id"]
		}),
	})
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc, ok := s.documents[mux.Vars(r)["id"]]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "DOCUMENT_NOT_FOUND", "Document not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": doc})
}

func (s *Server) deleteDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[mux.Vars(r)["id"]]
	if !ok {
		writeError(w, http.StatusNotFound, "DOCUMENT_NOT_FOUND", "Document not found")
		return
	}
	doc["deleted_at"] = s.now().Format(time.RFC3339)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) filterDocuments(keep func(map[string]any) bool) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []map[string]any{}
	for _, id := range s.order {
		if d := s.documents[id]; keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Server) listInvites(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]map[string]any, 0, len(s.invites))
	for _, inv := range s.invites {
		out = append(out, inv)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return fmt.Sprint(out[i]["email"]) < fmt.Sprint(out[j]["email"])
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"data":       out,
		"pagination": map[string]int{"total": len(out), "page": 1, "per_page": len(out), "total_pages": 1},
	})
}

func (s *Server) createInvite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid JSON body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invites {
		if inv["email"] == body.Email {
			writeError(w, http.StatusConflict, "DUPLICATE_INVITE", "An invite for this email already exists")
			return
		}
	}

	inv := map[string]any{
		"id":         uuid.NewString(),
		"email":      body.Email,
		"role":       body.Role,
		"status":     "pending",
		"created_at": s.now().Format(time.RFC3339),
	}
	s.invites[inv["id"].(string)] = inv
	writeJSON(w, http.StatusCreated, map[string]any{"data": inv})
}

func (s *Server) revokeInvite(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := mux.Vars(r)["id"]
	if _, ok := s.invites[id]; !ok {
		writeError(w, http.StatusNotFound, "INVITE_NOT_FOUND", "Invite not found")
		return
	}
	delete(s.invites, id)
	w.WriteHeader(http.StatusNoContent)
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
