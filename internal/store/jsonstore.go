// Package store persists the knowledge base as a single ordered JSON
// document.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"KnowledgeBase/internal/domain"
	"KnowledgeBase/internal/ports"
)

// FileStore reads the document at start and rewrites it whole after a
// successful pass. Category order, item order, and field order are stable
// across load/save cycles so diffs stay reviewable.
type FileStore struct {
	path string
}

var _ ports.Store = (*FileStore)(nil)

// NewFileStore points the store at the JSON document path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns where the document lives.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the whole document.
func (s *FileStore) Load(_ context.Context) (*domain.KnowledgeBase, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var kb domain.KnowledgeBase
	if err := json.Unmarshal(raw, &kb); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}

	return &kb, nil
}

// Save recounts totals and rewrites the document through a temp file in the
// same directory, so a failed write never truncates the store.
func (s *FileStore) Save(_ context.Context, kb *domain.KnowledgeBase) error {
	kb.Recount()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(kb); err != nil {
		return fmt.Errorf("encode knowledge base: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".kb-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write knowledge base: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace knowledge base: %w", err)
	}

	return nil
}
