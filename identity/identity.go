// Package identity hands out a stable anonymous user id.
package identity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	uuid "github.com/satori/go.uuid"
)

var ErrEmptyIdentity = errors.New("empty identity")

type Provider interface {
	Identity() (string, error)
}

// Static always returns the same id
type Static string

func (s Static) Identity() (string, error) {
	if s == "" {
		return "", ErrEmptyIdentity
	}
	return string(s), nil
}

// File keeps the id in a file so it survives restarts.
// The first call on a new installation mints the id.
type File struct {
	Path string
}

func NewFile(path string) *File {
	return &File{Path: path}
}

func (f *File) Identity() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err == nil {
		id := strings.TrimSpace(string(data))
		if id == "" {
			return "", fmt.Errorf("%s: %w", f.Path, ErrEmptyIdentity)
		}
		return id, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read identity: %w", err)
	}

	id := NewID()
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("create identity dir: %w", err)
		}
	}
	if err := os.WriteFile(f.Path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write identity: %w", err)
	}
	return id, nil
}

// NewID mints a fresh user id
func NewID() string {
	return uuid.NewV4().String()
}
