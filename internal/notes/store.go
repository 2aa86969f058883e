// Package notes persists generated text as plain files laid out as
// <base>/<kind>/<subject>/<topic>.md.
package notes

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/akyairhashvil/studybuddy/internal/config"
)

// Kind names a family of saved content with its own directory.
type Kind string

const (
	Flashcards Kind = config.FlashcardsDir
	Quizzes    Kind = config.QuizzesDir
)

// Kinds lists every content kind.
func Kinds() []Kind { return []Kind{Flashcards, Quizzes} }

// ParseKind accepts the directory name or its singular form.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flashcards", "flashcard":
		return Flashcards, true
	case "quizzes", "quiz":
		return Quizzes, true
	}
	return "", false
}

// Label is the human-readable name of the kind.
func (k Kind) Label() string {
	switch k {
	case Flashcards:
		return "Flashcards"
	case Quizzes:
		return "Quizzes"
	}
	return string(k)
}

// Store reads and writes notes of a single kind. There is no locking: a
// store serves one user.
type Store struct {
	kind Kind
	dir  string
}

// Open prepares <baseDir>/<kind>, creating it if needed.
func Open(baseDir string, kind Kind) (*Store, error) {
	dir := filepath.Join(baseDir, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, wrapErr("open", kind, "", err)
	}
	return &Store{kind: kind, dir: dir}, nil
}

func (s *Store) Kind() Kind  { return s.kind }
func (s *Store) Dir() string { return s.dir }

// Subjects lists subject directories in sorted order.
func (s *Store) Subjects() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, wrapErr("list subjects", s.kind, "", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Topics lists topic names saved under subject. A missing subject has no
// topics.
func (s *Store) Topics(subject string) ([]string, error) {
	subject, err := cleanName(subject)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.dir, subject))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, wrapErr("list topics", s.kind, subject, err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != config.NoteExtension {
			continue
		}
		out = append(out, strings.TrimSuffix(name, config.NoteExtension))
	}
	sort.Strings(out)
	return out, nil
}

// Write stores content under subject/topic, replacing any previous note,
// and returns the file path.
func (s *Store) Write(subject, topic, content string) (string, error) {
	path, err := s.path(subject, topic)
	if err != nil {
		return "", err
	}
	key := subject + "/" + topic
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", wrapErr("write", s.kind, key, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", wrapErr("write", s.kind, key, err)
	}
	return path, nil
}

// Read returns the note saved under subject/topic or ErrNotFound.
func (s *Store) Read(subject, topic string) (string, error) {
	path, err := s.path(subject, topic)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", wrapErr("read", s.kind, subject+"/"+topic, err)
	}
	return string(data), nil
}

// Validate reports ErrInvalidName for a subject or topic Write would reject.
func (s *Store) Validate(subject, topic string) error {
	_, err := s.path(subject, topic)
	return err
}

func (s *Store) path(subject, topic string) (string, error) {
	subject, err := cleanName(subject)
	if err != nil {
		return "", err
	}
	topic, err = cleanName(topic)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, subject, topic+config.NoteExtension), nil
}

// cleanName trims a subject or topic and rejects anything that would escape
// its directory.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	return name, nil
}
