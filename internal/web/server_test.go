package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akyairhashvil/studybuddy/internal/config"
	"github.com/akyairhashvil/studybuddy/internal/llm"
	"github.com/akyairhashvil/studybuddy/internal/llm/mock_llm"
	"github.com/akyairhashvil/studybuddy/internal/metrics"
	"github.com/akyairhashvil/studybuddy/internal/notes"
	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/akyairhashvil/studybuddy/internal/study"
	"github.com/akyairhashvil/studybuddy/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	server    *Server
	completer *mock_llm.MockCompleter
	service   *study.Service
	clock     *pomodoro.ManualClock
	cookie    *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)
	completer := mock_llm.NewMockCompleter(ctrl)
	rec := metrics.New()
	svc, err := study.New(completer, t.TempDir(), rec)
	require.NoError(t, err)
	clock := testutil.NewClock()
	srv, err := NewServer(svc, Options{Clock: clock, Metrics: rec})
	require.NoError(t, err)
	return &testServer{server: srv, completer: completer, service: svc, clock: clock}
}

// do sends a request, carrying the session cookie from earlier responses.
func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}
	w := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == config.SessionCookieName {
			ts.cookie = c
		}
	}
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestIndexSetsSessionCookie(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Study Buddy AI")
	assert.Contains(t, w.Body.String(), `max="180"`)
	require.NotNil(t, ts.cookie)
	assert.True(t, ts.cookie.HttpOnly)

	first := ts.cookie.Value
	ts.do(t, http.MethodGet, "/api/pomodoro", nil)
	assert.Equal(t, first, ts.cookie.Value)
	assert.Equal(t, 1, ts.server.sessions.len())
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = ts.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestGenerateFlashcards(t *testing.T) {
	ts := newTestServer(t)
	ts.completer.EXPECT().
		Complete(gomock.Any(), llm.FlashcardPrompt("Cells")).
		Return("1. What is a cell?", nil)

	w := ts.do(t, http.MethodPost, "/api/flashcards", gin.H{"subject": "Biology", "topic": "Cells"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[map[string]string](t, w)
	assert.Equal(t, "1. What is a cell?", got["content"])
	assert.True(t, strings.HasSuffix(got["path"], "Cells.md"))

	w = ts.do(t, http.MethodGet, "/api/notes/flashcards", nil)
	require.Equal(t, http.StatusOK, w.Code)
	subjects := decode[struct {
		Subjects []string `json:"subjects"`
	}](t, w)
	assert.Equal(t, []string{"Biology"}, subjects.Subjects)

	w = ts.do(t, http.MethodGet, "/api/notes/flashcards/Biology", nil)
	topics := decode[struct {
		Topics []string `json:"topics"`
	}](t, w)
	assert.Equal(t, []string{"Cells"}, topics.Topics)

	w = ts.do(t, http.MethodGet, "/api/notes/flashcards/Biology/Cells", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1. What is a cell?", decode[map[string]string](t, w)["content"])
}

func TestGenerateQuizErrors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/quiz", gin.H{"subject": "Geo", "topic": "Rivers"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "material")

	ts.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", llm.ErrEmptyReply)
	w = ts.do(t, http.MethodPost, "/api/quiz", gin.H{"subject": "Geo", "topic": "Rivers", "material": "notes"})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	ts.completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", context.DeadlineExceeded)
	w = ts.do(t, http.MethodPost, "/api/quiz", gin.H{"subject": "Geo", "topic": "Rivers", "material": "notes"})
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)

	w = ts.do(t, http.MethodPost, "/api/quiz", gin.H{"subject": "..", "topic": "Rivers", "material": "notes"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/quiz", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotesNotFound(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/notes/essays", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/notes/quizzes/History/Rome", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/notes/quizzes/History/Rome/pdf", nil).Code)

	w := ts.do(t, http.MethodGet, "/api/notes/quizzes/History", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"kind":"quizzes","subject":"History","topics":[]}`, w.Body.String())
}

func TestNotePDFDownload(t *testing.T) {
	ts := newTestServer(t)
	store, err := ts.service.Store(notes.Quizzes)
	require.NoError(t, err)
	testutil.NewNote().WithSubject("History").WithTopic("Rome").WithContent("# Quiz\nQ1: Who founded Rome?").Save(t, store)

	w := ts.do(t, http.MethodGet, "/api/notes/quiz/History/Rome/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "quizzes_History_Rome.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)
	store, err := ts.service.Store(notes.Flashcards)
	require.NoError(t, err)
	testutil.NewNote().WithContent("Q: What is mitosis?").Save(t, store)

	w := ts.do(t, http.MethodGet, "/api/search?q=mitosis", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		Count   int           `json:"count"`
		Results []study.Match `json:"results"`
	}](t, w)
	require.Equal(t, 1, got.Count)
	assert.Equal(t, "Cells", got.Results[0].Topic)

	w = ts.do(t, http.MethodGet, "/api/search?q=kind:quiz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"results":[]`)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/search", nil).Code)
}

func TestChatHistoryPerSession(t *testing.T) {
	ts := newTestServer(t)
	ts.completer.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs []llm.Message) (string, error) {
			require.Len(t, msgs, 2)
			assert.Equal(t, config.SystemPersona, msgs[0].Content)
			return "Hi! What are we studying?", nil
		})

	w := ts.do(t, http.MethodPost, "/api/chat", gin.H{"message": "hello"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Hi! What are we studying?", decode[map[string]string](t, w)["reply"])

	w = ts.do(t, http.MethodGet, "/api/chat", nil)
	history := decode[struct {
		Messages []llm.Message `json:"messages"`
	}](t, w)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, llm.RoleUser, history.Messages[0].Role)

	other := &testServer{server: ts.server}
	w = other.do(t, http.MethodGet, "/api/chat", nil)
	assert.Empty(t, decode[struct {
		Messages []llm.Message `json:"messages"`
	}](t, w).Messages)

	w = ts.do(t, http.MethodDelete, "/api/chat", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodGet, "/api/chat", nil)
	assert.Empty(t, decode[struct {
		Messages []llm.Message `json:"messages"`
	}](t, w).Messages)
}

func TestChatRejectsBlank(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodPost, "/api/chat", gin.H{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConcurrentCompletionIsRejected(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodGet, "/", nil)

	started := make(chan struct{})
	unblock := make(chan struct{})
	ts.completer.EXPECT().
		Complete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []llm.Message) (string, error) {
			close(started)
			<-unblock
			return "done", nil
		})

	var wg sync.WaitGroup
	var first *httptest.ResponseRecorder
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = ts.do(t, http.MethodPost, "/api/chat", gin.H{"message": "one"})
	}()
	<-started

	w := ts.do(t, http.MethodPost, "/api/flashcards", gin.H{"subject": "a", "topic": "b"})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = ts.do(t, http.MethodPost, "/api/chat", gin.H{"message": "two"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Timer polling is not blocked by the running completion.
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/pomodoro", nil).Code)

	close(unblock)
	wg.Wait()
	assert.Equal(t, http.StatusOK, first.Code)
}

func TestPomodoroLifecycle(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/pomodoro", nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode[pomodoroResponse](t, w)
	assert.Equal(t, "Idle", state.Phase)
	assert.False(t, state.Running)
	assert.Equal(t, 25, state.WorkMinutes)

	w = ts.do(t, http.MethodPut, "/api/pomodoro/config", gin.H{"work_minutes": 1, "break_minutes": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	state = decode[pomodoroResponse](t, ts.do(t, http.MethodPost, "/api/pomodoro/start", nil))
	assert.Equal(t, "Work", state.Phase)
	assert.Equal(t, 60, state.Remaining)
	assert.Equal(t, "01:00", state.Display)

	ts.clock.Advance(59 * time.Second)
	state = decode[pomodoroResponse](t, ts.do(t, http.MethodGet, "/api/pomodoro", nil))
	assert.Equal(t, "00:01", state.Display)
	assert.False(t, state.Transitioned)

	ts.clock.Advance(time.Second)
	state = decode[pomodoroResponse](t, ts.do(t, http.MethodGet, "/api/pomodoro", nil))
	assert.Equal(t, "Break", state.Phase)
	assert.Equal(t, 60, state.Remaining)
	assert.True(t, state.Transitioned)

	state = decode[pomodoroResponse](t, ts.do(t, http.MethodPost, "/api/pomodoro/stop", nil))
	assert.Equal(t, "Idle", state.Phase)
	assert.Equal(t, "00:00", state.Display)
}

func TestPomodoroConfigValidation(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodPut, "/api/pomodoro/config", gin.H{"work_minutes": 181, "break_minutes": 5})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "work", body["field"])
	assert.Contains(t, body["error"], "between 1 and 180")

	w = ts.do(t, http.MethodPut, "/api/pomodoro/config", gin.H{"work_minutes": 25, "break_minutes": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	state := decode[pomodoroResponse](t, ts.do(t, http.MethodGet, "/api/pomodoro", nil))
	assert.Equal(t, 25, state.WorkMinutes)
	assert.Equal(t, 5, state.BreakMinutes)
}

func TestPomodoroConfigWhileRunningIsStaged(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/pomodoro/start", nil)
	ts.clock.Advance(10 * time.Second)

	state := decode[pomodoroResponse](t, ts.do(t, http.MethodPut, "/api/pomodoro/config", gin.H{"work_minutes": 50, "break_minutes": 10}))
	assert.True(t, state.Pending)
	assert.Equal(t, 25*60-10, state.Remaining)
	assert.Equal(t, 50, state.WorkMinutes)
}

func TestPomodoroSessionsAreIndependent(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/pomodoro/start", nil)

	other := &testServer{server: ts.server}
	state := decode[pomodoroResponse](t, other.do(t, http.MethodGet, "/api/pomodoro", nil))
	assert.False(t, state.Running)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(study.ErrMissingInput))
	assert.Equal(t, http.StatusNotFound, statusFor(notes.ErrNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(&pomodoro.ConfigError{Field: "work", Value: 0, Max: 180}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(&notes.OpError{Op: "write", Kind: notes.Flashcards, Err: errors.New("disk full")}))
	assert.Equal(t, http.StatusBadGateway, statusFor(errors.New("status 500")))
}
