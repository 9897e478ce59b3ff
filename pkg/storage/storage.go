package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Buckets used for uploaded images.
const (
	BucketHealthAgencies = "img/health_agencies"
	BucketUsers          = "img/users"
)

var ErrInvalidPath = errors.New("invalid storage path")

// FileStore stores uploads under a bucket and removes them by path.
type FileStore interface {
	Store(ctx context.Context, bucket, filename string, content io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// LocalStore keeps files on an afero filesystem rooted at root.
type LocalStore struct {
	fs   afero.Fs
	root string
}

func NewLocalStore(fs afero.Fs, root string) *LocalStore {
	return &LocalStore{fs: fs, root: root}
}

// NewOsStore returns a store backed by the real filesystem.
func NewOsStore(root string) *LocalStore {
	return NewLocalStore(afero.NewOsFs(), root)
}

// Store writes content to a fresh name inside bucket and returns the relative
// path, e.g. img/users/<uuid>.png.
func (s *LocalStore) Store(ctx context.Context, bucket, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, filepath.FromSlash(bucket))
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create bucket %s: %w", bucket, err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	rel := path.Join(bucket, name)

	f, err := s.fs.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", rel, err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		s.fs.Remove(filepath.Join(dir, name))
		return "", fmt.Errorf("write %s: %w", rel, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", rel, err)
	}

	return rel, nil
}

func (s *LocalStore) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	return s.fs.Open(full)
}

// Delete removes the file at p. Missing files and empty paths are not errors.
func (s *LocalStore) Delete(ctx context.Context, p string) error {
	if p == "" {
		return nil
	}

	full, err := s.resolve(p)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", p, err)
	}
	return nil
}

// Fs exposes the root of the store, used to serve files over HTTP.
func (s *LocalStore) Fs() afero.Fs {
	return afero.NewBasePathFs(s.fs, s.root)
}

func (s *LocalStore) resolve(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
