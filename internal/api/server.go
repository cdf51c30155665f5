package api

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/KVidyashree/Chatbot/internal/bot"
)

type Server struct {
	Bot    *bot.Router
	Logger *logrus.Entry
	Router chi.Router
}

func NewServer(b *bot.Router, staticDir string, logger *logrus.Entry) *Server {
	s := &Server{
		Bot:    b,
		Logger: logger,
		Router: chi.NewRouter(),
	}
	s.routes(staticDir)
	return s
}

func (s *Server) routes(staticDir string) {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(s.requestLogger)
	s.Router.Use(middleware.Recoverer)

	s.Router.Post("/api/ask", s.handleAsk)
	s.Router.Get("/api/health", s.handleHealth)

	if staticDir != "" {
		if _, err := os.Stat(staticDir); err == nil {
			s.Router.Handle("/*", http.FileServer(http.Dir(staticDir)))
		}
	}
}

func (s *Server) Start(addr string) error {
	s.Logger.Infof("Starting API server on %s", addr)
	return http.ListenAndServe(addr, s.Router)
}

// Requests and responses

type AskRequest struct {
	Question string `json:"question"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
}

// handleAsk answers one question. Every outcome, including malformed input
// and internal panics, is returned as a valid answer payload; the endpoint
// never surfaces a transport-level failure for a well-formed connection.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.Logger.WithField("panic", rec).Error("Recovered while answering")
			jsonResponse(w, http.StatusInternalServerError, bot.Answer{
				Answer:      "Something went wrong while answering your question. Please try again.",
				MatchMethod: bot.MethodError,
			})
		}
	}()

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		jsonResponse(w, http.StatusOK, bot.Answer{
			Answer:      "Please ask me a question, for example: \"what is the admission process?\"",
			MatchMethod: bot.MethodFallback,
		})
		return
	}

	answer := s.Bot.Ask(r.Context(), req.Question)
	jsonResponse(w, http.StatusOK, answer)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Documents: len(s.Bot.Index.Docs),
	})
}

// requestLogger logs one line per request through the service logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Info("Handled request")
	})
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
