// Package study ties the text-generation endpoint, the note stores and the
// PDF exporter together. Every host (terminal, browser, line chat) goes
// through a Service so they behave the same.
package study

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/akyairhashvil/studybuddy/internal/llm"
	"github.com/akyairhashvil/studybuddy/internal/metrics"
	"github.com/akyairhashvil/studybuddy/internal/notes"
	"github.com/akyairhashvil/studybuddy/internal/report"
	"github.com/akyairhashvil/studybuddy/internal/util"
)

// ErrMissingInput is returned when a required field is blank.
var ErrMissingInput = errors.New("missing input")

// Result is a generated note and where it was saved.
type Result struct {
	Kind    notes.Kind
	Subject string
	Topic   string
	Content string
	Path    string
}

// Service is safe for concurrent use as long as its collaborators are; the
// stores and client shipped here are.
type Service struct {
	completer llm.Completer
	stores    map[notes.Kind]*notes.Store
	metrics   *metrics.Recorder
	tokens    *llm.TokenCounter
	now       func() time.Time
}

// New opens one store per kind under storageDir.
func New(completer llm.Completer, storageDir string, rec *metrics.Recorder) (*Service, error) {
	stores := make(map[notes.Kind]*notes.Store)
	for _, kind := range notes.Kinds() {
		st, err := notes.Open(storageDir, kind)
		if err != nil {
			return nil, err
		}
		stores[kind] = st
	}
	return &Service{
		completer: completer,
		stores:    stores,
		metrics:   rec,
		tokens:    llm.NewTokenCounter(),
		now:       time.Now,
	}, nil
}

// Store returns the note store for kind.
func (s *Service) Store(kind notes.Kind) (*notes.Store, error) {
	st, ok := s.stores[kind]
	if !ok {
		return nil, fmt.Errorf("unknown note kind %q", kind)
	}
	return st, nil
}

// GenerateFlashcards asks for flashcards about topic and saves them.
func (s *Service) GenerateFlashcards(ctx context.Context, subject, topic string) (Result, error) {
	if err := requireFields("subject", subject, "topic", topic); err != nil {
		return Result{}, err
	}
	return s.generate(ctx, notes.Flashcards, subject, topic, llm.FlashcardPrompt(strings.TrimSpace(topic)))
}

// GenerateQuiz asks for a quiz built from material and saves it.
func (s *Service) GenerateQuiz(ctx context.Context, subject, topic, material string) (Result, error) {
	if err := requireFields("subject", subject, "topic", topic, "material", material); err != nil {
		return Result{}, err
	}
	return s.generate(ctx, notes.Quizzes, subject, topic, llm.QuizPrompt(material))
}

func (s *Service) generate(ctx context.Context, kind notes.Kind, subject, topic string, prompt []llm.Message) (Result, error) {
	store, err := s.Store(kind)
	if err != nil {
		return Result{}, err
	}
	if err := store.Validate(subject, topic); err != nil {
		return Result{}, err
	}
	reply, err := s.complete(ctx, string(kind), prompt)
	if err != nil {
		return Result{}, err
	}
	path, err := store.Write(subject, topic, reply)
	if err != nil {
		util.LogError("save "+string(kind), err)
		return Result{Kind: kind, Subject: subject, Topic: topic, Content: reply}, err
	}
	s.metrics.IncNoteSaved(string(kind))
	return Result{
		Kind:    kind,
		Subject: strings.TrimSpace(subject),
		Topic:   strings.TrimSpace(topic),
		Content: reply,
		Path:    path,
	}, nil
}

// Chat appends input to conv, asks for a reply and appends it. On failure the
// user's message stays in the history and the error is returned.
func (s *Service) Chat(ctx context.Context, conv *llm.Conversation, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: message", ErrMissingInput)
	}
	conv.Add(llm.RoleUser, input)
	reply, err := s.Reply(ctx, conv.Messages())
	if err != nil {
		return "", err
	}
	conv.Add(llm.RoleAssistant, reply)
	return reply, nil
}

// Reply completes an already assembled chat history without touching it.
// Hosts that render the history while the request is in flight use this and
// append the reply themselves.
func (s *Service) Reply(ctx context.Context, messages []llm.Message) (string, error) {
	return s.complete(ctx, "chat", messages)
}

func (s *Service) complete(ctx context.Context, kind string, messages []llm.Message) (string, error) {
	s.metrics.ObservePromptTokens(kind, s.tokens.CountMessages(messages))
	start := s.now()
	reply, err := s.completer.Complete(ctx, messages)
	s.metrics.ObserveCompletion(kind, err == nil, s.now().Sub(start))
	if err != nil {
		util.LogError(kind+" completion", err)
		return "", err
	}
	return reply, nil
}

// Read returns a saved note.
func (s *Service) Read(kind notes.Kind, subject, topic string) (string, error) {
	store, err := s.Store(kind)
	if err != nil {
		return "", err
	}
	return store.Read(subject, topic)
}

func (s *Service) note(kind notes.Kind, subject, topic string) (report.Note, error) {
	content, err := s.Read(kind, subject, topic)
	if err != nil {
		return report.Note{}, err
	}
	return report.Note{
		Kind:        kind.Label(),
		Subject:     strings.TrimSpace(subject),
		Topic:       strings.TrimSpace(topic),
		Content:     content,
		GeneratedAt: s.now(),
	}, nil
}

// ExportPDF writes a saved note as a PDF into dir and returns the file path.
func (s *Service) ExportPDF(kind notes.Kind, subject, topic, dir string) (string, error) {
	n, err := s.note(kind, subject, topic)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, n.FileName())
	if err := report.WriteFile(path, n); err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	s.metrics.IncExport(string(kind))
	log.Printf("exported %s %s/%s to %s", kind, n.Subject, n.Topic, path)
	return path, nil
}

// WritePDF streams a saved note as a PDF and returns the suggested file name.
func (s *Service) WritePDF(w io.Writer, kind notes.Kind, subject, topic string) (string, error) {
	n, err := s.note(kind, subject, topic)
	if err != nil {
		return "", err
	}
	if err := report.Render(w, n); err != nil {
		return "", err
	}
	s.metrics.IncExport(string(kind))
	return n.FileName(), nil
}

// requireFields takes name/value pairs and names every blank value.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
	}
	return nil
}
