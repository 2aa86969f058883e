// Package web serves Study Buddy to a browser: a single HTML page backed by
// a JSON API over the shared study service, plus per-browser pomodoro timers.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/metrics"
	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/akyairhashvil/studybuddy/internal/study"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configures a Server. Zero values fall back to the real clock and
// the default timer lengths.
type Options struct {
	Clock    pomodoro.Clock
	Pomodoro pomodoro.Config
	Metrics  *metrics.Recorder
}

// Server is the browser host.
type Server struct {
	svc      *study.Service
	metrics  *metrics.Recorder
	sessions *sessionStore
	timerCfg pomodoro.Config
	router   *gin.Engine
}

// NewServer wires the routes.
func NewServer(svc *study.Service, opts Options) (*Server, error) {
	if opts.Clock == nil {
		opts.Clock = pomodoro.RealClock{}
	}
	if opts.Pomodoro == (pomodoro.Config{}) {
		opts.Pomodoro = pomodoro.DefaultConfig()
	}
	if err := opts.Pomodoro.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	router := gin.Default()
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		svc:      svc,
		metrics:  opts.Metrics,
		sessions: newSessionStore(opts.Clock, opts.Pomodoro),
		timerCfg: opts.Pomodoro,
		router:   router,
	}

	// Web routes
	router.GET("/", s.handleIndex)
	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	// API routes
	api := router.Group("/api")
	{
		api.POST("/flashcards", s.handleFlashcards)
		api.POST("/quiz", s.handleQuiz)

		api.GET("/notes/:kind", s.handleSubjects)
		api.GET("/notes/:kind/:subject", s.handleTopics)
		api.GET("/notes/:kind/:subject/:topic", s.handleNote)
		api.GET("/notes/:kind/:subject/:topic/pdf", s.handleNotePDF)

		api.GET("/search", s.handleSearch)

		api.GET("/chat", s.handleChatHistory)
		api.POST("/chat", s.handleChat)
		api.DELETE("/chat", s.handleChatReset)

		api.GET("/pomodoro", s.handlePomodoro)
		api.POST("/pomodoro/start", s.handlePomodoroStart)
		api.POST("/pomodoro/stop", s.handlePomodoroStop)
		api.PUT("/pomodoro/config", s.handlePomodoroConfig)
	}

	return s, nil
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("web: listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		log.Printf("web: shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
