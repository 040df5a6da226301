// Package api exposes the catalog as JSON over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"booklib/internal/asset"
	"booklib/internal/catalog"
	"booklib/internal/models"
	"booklib/internal/report"
)

// Server handles HTTP requests for the library
type Server struct {
	catalog   *catalog.Catalog
	logger    *zap.Logger
	now       func() time.Time
	animation atomic.Pointer[asset.Animation]
}

// NewServer creates a new HTTP server over cat
func NewServer(cat *catalog.Catalog, logger *zap.Logger) *Server {
	return &Server{
		catalog: cat,
		logger:  logger,
		now:     time.Now,
	}
}

// SetAnimation publishes the decorative animation. nil clears it.
func (s *Server) SetAnimation(anim *asset.Animation) {
	s.animation.Store(anim)
}

// RegisterRoutes registers the library routes on the provided mux
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", s.handleRoot)

	mux.HandleFunc("/api/books", s.handleBooks)
	mux.HandleFunc("/api/books/", s.handleBook)
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/animation", s.handleAnimation)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "booklib is running (%d books)", s.catalog.Len())
}

// CreateBookRequest represents the request body for adding a book
type CreateBookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear *int   `json:"publication_year"`
	Genre           string `json:"genre"`
	ReadStatus      bool   `json:"read_status"`
}

// handleBooks lists books (GET) or adds one (POST)
func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.catalog.All())
	case http.MethodPost:
		s.createBook(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("Failed to decode request body", zap.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	title := strings.TrimSpace(req.Title)
	author := strings.TrimSpace(req.Author)
	if title == "" || author == "" {
		writeError(w, http.StatusBadRequest, "Please fill in both title and author")
		return
	}

	year := s.now().Year()
	if req.PublicationYear != nil {
		year = *req.PublicationYear
	}
	genre := strings.TrimSpace(req.Genre)
	if genre == "" {
		genre = models.Genres[0]
	}

	book, err := s.catalog.Add(r.Context(), title, author, year, genre, req.ReadStatus)
	if err != nil {
		s.logger.Error("Failed to add book",
			zap.Error(err),
			zap.String("title", title),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// handleBook removes the book at /api/books/{index}
func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	index, err := extractIndex(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	removed, ok, err := s.catalog.RemoveAt(r.Context(), index)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No book at position %d", index))
		return
	}
	if err != nil {
		s.logger.Error("Failed to remove book",
			zap.Error(err),
			zap.Int("index", index),
			zap.String("title", removed.Title),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchResponse is the body returned by /api/search
type SearchResponse struct {
	Message string        `json:"message"`
	Count   int           `json:"count"`
	Books   []models.Book `json:"books"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query := r.URL.Query()
	field := models.FieldTitle
	if raw := query.Get("field"); raw != "" {
		parsed, err := models.ParseSearchField(raw)
		if err != nil {
			// Unknown fields match nothing
			parsed = models.SearchField(raw)
		}
		field = parsed
	}

	books := s.catalog.Search(query.Get("term"), field)
	writeJSON(w, http.StatusOK, SearchResponse{
		Message: report.FoundMessage(len(books)),
		Count:   len(books),
		Books:   books,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.catalog.Stats())
}

// handleAnimation serves the decorative animation, or 204 without one
func (s *Server) handleAnimation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	anim := s.animation.Load()
	if anim == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(anim.Data)
}

func extractIndex(path string) (int, error) {
	raw := strings.TrimPrefix(path, "/api/books/")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, errors.New("expected /api/books/{index}")
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", raw)
	}
	return index, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
