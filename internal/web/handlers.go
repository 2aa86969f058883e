package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/llm"
	"github.com/akyairhashvil/studybuddy/internal/notes"
	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/akyairhashvil/studybuddy/internal/study"
	"github.com/akyairhashvil/studybuddy/internal/util"
)

type generateRequest struct {
	Subject  string `json:"subject"`
	Topic    string `json:"topic"`
	Material string `json:"material"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type configRequest struct {
	WorkMinutes  int `json:"work_minutes"`
	BreakMinutes int `json:"break_minutes"`
}

type pomodoroResponse struct {
	Phase        string `json:"phase"`
	Running      bool   `json:"running"`
	Remaining    int    `json:"remaining"`
	Total        int    `json:"total"`
	Display      string `json:"display"`
	Transitioned bool   `json:"transitioned"`
	WorkMinutes  int    `json:"work_minutes"`
	BreakMinutes int    `json:"break_minutes"`
	Pending      bool   `json:"pending"`
}

// statusFor maps collaborator errors onto HTTP codes. Anything unknown came
// from the text-generation endpoint or the filesystem.
func statusFor(err error) int {
	switch {
	case errors.Is(err, study.ErrMissingInput), errors.Is(err, notes.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, notes.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, pomodoro.ErrInvalidConfig):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, llm.ErrEmptyReply):
		return http.StatusBadGateway
	}
	var opErr *notes.OpError
	if errors.As(err, &opErr) {
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func (s *Server) session(c *gin.Context) (*session, bool) {
	sess, err := s.sessions.get(c)
	if err != nil {
		util.LogError("web session", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return sess, true
}

func bindJSON(c *gin.Context, v any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxRequestBytes)
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func parseKind(c *gin.Context) (notes.Kind, bool) {
	kind, ok := notes.ParseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown note kind " + c.Param("kind")})
		return "", false
	}
	return kind, true
}

// Web handlers

func (s *Server) handleIndex(c *gin.Context) {
	if _, ok := s.session(c); !ok {
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":        "Study Buddy AI",
		"workMinutes":  s.timerCfg.WorkMinutes,
		"breakMinutes": s.timerCfg.BreakMinutes,
		"maxWork":      pomodoro.MaxWorkMinutes,
		"maxBreak":     pomodoro.MaxBreakMinutes,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// API handlers

func (s *Server) handleFlashcards(c *gin.Context) {
	var req generateRequest
	if !bindJSON(c, &req) {
		return
	}
	s.generate(c, func(ctx context.Context) (study.Result, error) {
		return s.svc.GenerateFlashcards(ctx, req.Subject, req.Topic)
	})
}

func (s *Server) handleQuiz(c *gin.Context) {
	var req generateRequest
	if !bindJSON(c, &req) {
		return
	}
	s.generate(c, func(ctx context.Context) (study.Result, error) {
		return s.svc.GenerateQuiz(ctx, req.Subject, req.Topic, req.Material)
	})
}

func (s *Server) generate(c *gin.Context, run func(context.Context) (study.Result, error)) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	if !sess.acquire() {
		c.JSON(http.StatusConflict, gin.H{"error": "a request is already in progress"})
		return
	}
	defer sess.release()

	res, err := run(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"kind":    res.Kind,
		"subject": res.Subject,
		"topic":   res.Topic,
		"content": res.Content,
		"path":    res.Path,
	})
}

func (s *Server) handleSubjects(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	store, err := s.svc.Store(kind)
	if err != nil {
		abortWithError(c, err)
		return
	}
	subjects, err := store.Subjects()
	if err != nil {
		abortWithError(c, err)
		return
	}
	if subjects == nil {
		subjects = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "subjects": subjects})
}

func (s *Server) handleTopics(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	store, err := s.svc.Store(kind)
	if err != nil {
		abortWithError(c, err)
		return
	}
	subject := c.Param("subject")
	topics, err := store.Topics(subject)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if topics == nil {
		topics = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "subject": subject, "topics": topics})
}

func (s *Server) handleNote(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	subject, topic := c.Param("subject"), c.Param("topic")
	content, err := s.svc.Read(kind, subject, topic)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": kind, "subject": subject, "topic": topic, "content": content})
}

func (s *Server) handleNotePDF(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	name, err := s.svc.WritePDF(&buf, kind, c.Param("subject"), c.Param("topic"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (s *Server) handleSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter required"})
		return
	}
	matches, err := s.svc.Search(query)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if matches == nil {
		matches = []study.Match{}
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "results": matches, "count": len(matches)})
}

func (s *Server) handleChatHistory(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sess.mu.Lock()
	turns := sess.conv.Turns()
	busy := sess.busy
	sess.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"messages": turns, "busy": busy})
}

// handleChat records the user turn, completes without holding the session
// lock so timer polling keeps working, then records the reply.
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if !bindJSON(c, &req) {
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		abortWithError(c, fmt.Errorf("%w: message", study.ErrMissingInput))
		return
	}
	sess, ok := s.session(c)
	if !ok {
		return
	}

	sess.mu.Lock()
	if sess.busy {
		sess.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "a request is already in progress"})
		return
	}
	sess.busy = true
	sess.conv.Add(llm.RoleUser, message)
	history := sess.conv.Messages()
	sess.mu.Unlock()

	reply, err := s.svc.Reply(c.Request.Context(), history)

	sess.mu.Lock()
	sess.busy = false
	if err == nil {
		sess.conv.Add(llm.RoleAssistant, reply)
	}
	sess.mu.Unlock()

	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

func (s *Server) handleChatReset(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.busy {
		c.JSON(http.StatusConflict, gin.H{"error": "a request is already in progress"})
		return
	}
	sess.conv.Reset()
	c.Status(http.StatusNoContent)
}

func (s *Server) pomodoroState(sess *session, r pomodoro.Reading) pomodoroResponse {
	if r.Transitioned {
		s.metrics.IncRollover(r.Phase.String())
	}
	staged, active := sess.timer.Config(), sess.timer.Active()
	return pomodoroResponse{
		Phase:        r.Phase.String(),
		Running:      sess.timer.Running(),
		Remaining:    r.Remaining,
		Total:        r.Total,
		Display:      pomodoro.Format(r.Remaining),
		Transitioned: r.Transitioned,
		WorkMinutes:  staged.WorkMinutes,
		BreakMinutes: staged.BreakMinutes,
		Pending:      sess.timer.Running() && staged != active,
	}
}

func (s *Server) withTimer(c *gin.Context, fn func(t *pomodoro.Timer) (pomodoro.Reading, error)) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	r, err := fn(sess.timer)
	if err != nil {
		var cfgErr *pomodoro.ConfigError
		if errors.As(err, &cfgErr) {
			c.JSON(statusFor(err), gin.H{"error": err.Error(), "field": cfgErr.Field})
			return
		}
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.pomodoroState(sess, r))
}

func (s *Server) handlePomodoro(c *gin.Context) {
	s.withTimer(c, func(t *pomodoro.Timer) (pomodoro.Reading, error) {
		return t.Remaining(), nil
	})
}

func (s *Server) handlePomodoroStart(c *gin.Context) {
	s.withTimer(c, func(t *pomodoro.Timer) (pomodoro.Reading, error) {
		t.Start()
		return t.Remaining(), nil
	})
}

func (s *Server) handlePomodoroStop(c *gin.Context) {
	s.withTimer(c, func(t *pomodoro.Timer) (pomodoro.Reading, error) {
		t.Stop()
		return t.Remaining(), nil
	})
}

func (s *Server) handlePomodoroConfig(c *gin.Context) {
	var req configRequest
	if !bindJSON(c, &req) {
		return
	}
	s.withTimer(c, func(t *pomodoro.Timer) (pomodoro.Reading, error) {
		if err := t.Configure(req.WorkMinutes, req.BreakMinutes); err != nil {
			return pomodoro.Reading{}, err
		}
		return t.Remaining(), nil
	})
}
