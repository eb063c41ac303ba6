// Package storage resolves prompt ids to files under the data directory.
// Commit blobs live at <root>/<prompt_id>/<version>/<commit_id>; the
// serialized document sits next to the prompt directory as <prompt_id>.json.
package storage

import (
	"os"
	"path/filepath"
)

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

// blobPath resolves the location of one commit blob, creating intermediate
// directories. Repeated calls with the same arguments are idempotent.
func (s *Store) blobPath(promptID, version, commitID string) (string, error) {
	dir := filepath.Join(s.root, promptID, version)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, commitID), nil
}

func (s *Store) documentPath(promptID string) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(s.root, promptID+".json"), nil
}

func (s *Store) WriteBlob(promptID, version, commitID string, content []byte) error {
	path, err := s.blobPath(promptID, version, commitID)
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o644)
}

func (s *Store) ReadBlob(promptID, version, commitID string) ([]byte, error) {
	path, err := s.blobPath(promptID, version, commitID)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (s *Store) WriteDocument(promptID string, data []byte) error {
	path, err := s.documentPath(promptID)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) ReadDocument(promptID string) ([]byte, error) {
	path, err := s.documentPath(promptID)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// DeletePrompt removes the prompt's blob tree and its document file.
func (s *Store) DeletePrompt(promptID string) error {
	if err := os.RemoveAll(filepath.Join(s.root, promptID)); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.root, promptID+".json"))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
