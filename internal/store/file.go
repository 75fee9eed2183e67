// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/planetchat/internal/util"
)

// FileKV persists each key as one JSON file under a base directory.
//
// Writes go through util.AtomicWriteFile so a crash mid-write never leaves
// a truncated history file behind.
type FileKV struct {
	// BaseDir is the directory holding one file per key.
	BaseDir string
}

// NewFileKV creates a file-backed KV rooted at baseDir, creating the
// directory if needed.
func NewFileKV(baseDir string) (*FileKV, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileKV{BaseDir: baseDir}, nil
}

// Get reads the value stored under key. A missing file is not an error.
func (f *FileKV) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set writes value under key atomically.
func (f *FileKV) Set(key string, value []byte) error {
	return util.AtomicWriteFile(f.path(key), value, 0644)
}

// Reset removes every stored key.
func (f *FileKV) Reset() error {
	entries, err := os.ReadDir(f.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		os.Remove(filepath.Join(f.BaseDir, entry.Name()))
	}
	return nil
}

// path maps a key to its file. Keys are simple identifiers chosen by this
// program, but path separators are stripped anyway.
func (f *FileKV) path(key string) string {
	key = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.BaseDir, key+".json")
}
