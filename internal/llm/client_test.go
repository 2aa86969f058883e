package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Path          string
	Authorization string
	Body          struct {
		Model    string    `json:"model"`
		Messages []Message `json:"messages"`
	}
}

func completionJSON(content string) string {
	payload := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func newFakeEndpoint(t *testing.T, status int, body string, captured *capturedRequest, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if captured != nil {
			captured.Path = r.URL.Path
			captured.Authorization = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&captured.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Options{BaseURL: "http://localhost/", Model: "m"})
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestCompleteSendsBearerAndMessages(t *testing.T) {
	var got capturedRequest
	srv := newFakeEndpoint(t, http.StatusOK, completionJSON("Here are your flashcards"), &got, nil)

	c, err := NewClient(Options{APIKey: "sk-test", BaseURL: srv.URL + "/api/v1", Model: "gpt-4o-mini", Timeout: 5 * time.Second})
	require.NoError(t, err)

	msgs := []Message{
		{Role: RoleSystem, Content: "persona"},
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi"},
		{Role: RoleUser, Content: "again"},
	}
	reply, err := c.Complete(context.Background(), msgs)
	require.NoError(t, err)
	assert.Equal(t, "Here are your flashcards", reply)

	assert.Equal(t, "/api/v1/chat/completions", got.Path)
	assert.Equal(t, "Bearer sk-test", got.Authorization)
	assert.Equal(t, "gpt-4o-mini", got.Body.Model)
	require.Len(t, got.Body.Messages, 4)
	for i, m := range msgs {
		assert.Equal(t, m.Role, got.Body.Messages[i].Role)
		assert.Equal(t, m.Content, got.Body.Messages[i].Content)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	body := `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`
	srv := newFakeEndpoint(t, http.StatusOK, body, nil, nil)
	c, err := NewClient(Options{APIKey: "k", BaseURL: srv.URL, Model: "m"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), FlashcardPrompt("cells"))
	require.ErrorIs(t, err, ErrEmptyReply)
}

func TestCompleteBlankContent(t *testing.T) {
	srv := newFakeEndpoint(t, http.StatusOK, completionJSON("   "), nil, nil)
	c, err := NewClient(Options{APIKey: "k", BaseURL: srv.URL, Model: "m"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), FlashcardPrompt("cells"))
	require.ErrorIs(t, err, ErrEmptyReply)
}

func TestCompleteServerErrorIsNotRetried(t *testing.T) {
	var hits int32
	srv := newFakeEndpoint(t, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`, nil, &hits)
	c, err := NewClient(Options{APIKey: "k", BaseURL: srv.URL, Model: "m"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), QuizPrompt("notes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestCompleteHonoursContext(t *testing.T) {
	srv := newFakeEndpoint(t, http.StatusOK, completionJSON("late"), nil, nil)
	c, err := NewClient(Options{APIKey: "k", BaseURL: srv.URL, Model: "m"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Complete(ctx, FlashcardPrompt("x"))
	require.Error(t, err)
}

func TestPrompts(t *testing.T) {
	assert.Equal(t, "Make 5 flashcards about photosynthesis", FlashcardPrompt("photosynthesis")[0].Content)
	assert.Equal(t, RoleUser, QuizPrompt("text")[0].Role)
	assert.Equal(t, "Make a quiz with answers from this: text", QuizPrompt("text")[0].Content)
}
