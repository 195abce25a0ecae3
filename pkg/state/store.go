// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Store abstracts persistence of the game document. The engine reads
// and writes the whole document around every command; there are no
// partial updates.
type Store interface {
	Load() (*GameState, error)
	Save(state *GameState) error
}

// FileStore persists the document as a single pretty-printed JSON file.
// Saves go through a temp file and rename so a crash mid-write never
// leaves a partially-written document behind.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path. The file
// is created lazily on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the document, defaulting every field absent from older
// schema versions. A missing file yields a fresh default document.
func (s *FileStore) Load() (*GameState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		logrus.Debugf("no game state at %s, starting fresh", s.path)
		return NewGameState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read game state from %s: %w", s.path, err)
	}

	var st GameState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state from %s: %w", s.path, err)
	}

	st.applyDefaults()
	return &st, nil
}

// Save serializes the full document and atomically replaces the prior
// file.
func (s *FileStore) Save(state *GameState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write game state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace game state at %s: %w", s.path, err)
	}

	return nil
}
