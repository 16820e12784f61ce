package documents

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-filecms/internal/logging"
	"github.com/goliatone/go-filecms/pkg/interfaces"
)

const filePerm fs.FileMode = 0o644

// FileStore keeps one file per document in a flat directory.
type FileStore struct {
	dir    string
	logger interfaces.Logger
}

var _ interfaces.DocumentStore = (*FileStore)(nil)

// Option mutates store configuration.
type Option func(*FileStore)

// WithLogger overrides the store logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore returns a store rooted at dir, creating the directory when it
// does not exist yet.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, storageError("init", dir, err)
	}
	store := &FileStore{dir: dir, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

// Dir returns the backing directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// List returns regular file names in directory order. os.ReadDir is avoided
// because it sorts.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.dir)
	if err != nil {
		return nil, storageError("list", s.dir, err)
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, storageError("list", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	s.logger.WithContext(ctx).Trace("documents.listed", "count", len(names))
	return names, nil
}

func (s *FileStore) Read(ctx context.Context, name string) ([]byte, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFoundError(name, err)
		}
		return nil, storageError("read", name, err)
	}
	return content, nil
}

// Write replaces the document content, truncating any previous content.
func (s *FileStore) Write(ctx context.Context, name string, content []byte) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, filePerm); err != nil {
		return storageError("write", name, err)
	}
	logging.WithDocumentContext(s.logger.WithContext(ctx), name, "write").Debug("document.written", "bytes", len(content))
	return nil
}

// Create validates name and writes an empty file. An existing document with
// the same name is truncated.
func (s *FileStore) Create(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), nil, filePerm); err != nil {
		return storageError("create", name, err)
	}
	logging.WithDocumentContext(s.logger.WithContext(ctx), name, "create").Info("document.created")
	return nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return notFoundError(name, err)
		}
		return storageError("delete", name, err)
	}
	logging.WithDocumentContext(s.logger.WithContext(ctx), name, "delete").Info("document.deleted")
	return nil
}

func (s *FileStore) path(name string) (string, error) {
	if !isPlainName(name) {
		return "", validationError(ErrInvalidName, MessageInvalidName, codeNameInvalid)
	}
	return filepath.Join(s.dir, name), nil
}
