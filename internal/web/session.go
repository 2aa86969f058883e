package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/llm"
	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
)

// session is one browser's timer and chat history. Handlers run
// concurrently, so every access goes through mu.
type session struct {
	mu       sync.Mutex
	id       string
	timer    *pomodoro.Timer
	conv     *llm.Conversation
	busy     bool
	lastSeen time.Time // guarded by sessionStore.mu
}

// acquire marks the session busy for one completion. It reports false when
// another completion is already running.
func (s *session) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	clock    pomodoro.Clock
	timerCfg pomodoro.Config
	ttl      time.Duration
}

func newSessionStore(clock pomodoro.Clock, cfg pomodoro.Config) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		clock:    clock,
		timerCfg: cfg,
		ttl:      config.SessionCookieTTL,
	}
}

// get returns the caller's session, creating one and setting the cookie when
// the request carries no known id.
func (st *sessionStore) get(c *gin.Context) (*session, error) {
	now := st.clock.Now()
	id, _ := c.Cookie(config.SessionCookieName)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.pruneLocked(now)

	if sess, ok := st.sessions[id]; ok && id != "" {
		sess.lastSeen = now
		return sess, nil
	}

	timer, err := pomodoro.New(st.clock, st.timerCfg)
	if err != nil {
		return nil, err
	}
	sess := &session{
		id:       uuid.NewString(),
		timer:    timer,
		conv:     llm.NewConversation(),
		lastSeen: now,
	}
	st.sessions[sess.id] = sess
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(config.SessionCookieName, sess.id, int(st.ttl/time.Second), "/", "", false, true)
	return sess, nil
}

// pruneLocked drops idle sessions whose cookie has expired.
func (st *sessionStore) pruneLocked(now time.Time) {
	for id, sess := range st.sessions {
		sess.mu.Lock()
		idle := !sess.busy && now.Sub(sess.lastSeen) > st.ttl
		sess.mu.Unlock()
		if idle {
			delete(st.sessions, id)
		}
	}
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
