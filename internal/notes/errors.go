package notes

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("no saved content")
	ErrInvalidName = errors.New("invalid subject or topic name")
)

type OpError struct {
	Op   string
	Kind Kind
	Key  string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapErr(op string, kind Kind, key string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Kind: kind, Key: key, Err: err}
}
