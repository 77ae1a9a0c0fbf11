// Package server exposes the upload/chat/health HTTP surface.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"cortex-backend/internal/config"
	"cortex-backend/internal/models"
	"cortex-backend/internal/rag"
)

type Server struct {
	rag  *rag.RAG
	cfg  *config.Config
	addr string
}

func NewServer(r *rag.RAG, cfg *config.Config) *Server {
	return &Server{rag: r, cfg: cfg, addr: cfg.Server.Addr}
}

// Handler builds the routed, middleware-wrapped handler. Exposed
// separately from Start for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/health", s.handleHealth)
	return corsMiddleware(loggingMiddleware(mux), s.cfg.Server.AllowedOrigins)
}

// Start runs the HTTP server until ctx is cancelled. Generation has no
// deadline by design, so the write timeout stays generous.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
	}

	log.Info().Str("addr", s.addr).Msg("Cortex backend listening")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.RAG.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.UploadResponse{Status: "missing file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.UploadResponse{Status: "unreadable file"})
		return
	}

	id, err := s.rag.Upload(r.Context(), header.Filename, data)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("Upload failed")
		writeJSON(w, http.StatusInternalServerError, models.UploadResponse{Status: "embedding failed"})
		return
	}

	writeJSON(w, http.StatusOK, models.UploadResponse{SessionID: id, Status: "success"})
}

// handleChat always answers 200; failures ride in the reply text so the
// client stays trivial.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Malformed chat request")
		writeJSON(w, http.StatusOK, models.ChatResponse{Reply: models.DegradedReply})
		return
	}

	reply := s.rag.Chat(r.Context(), req.Message, req.SessionID, req.UserName)
	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
