// Package filestore implements service.Service on top of a single data file.
//
// Every operation reads the whole file, applies at most one change in memory
// and writes the whole collection back through a temp file and a rename, so a
// concurrent reader sees either the old or the new collection.
package filestore

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"jtask/internal/service"
)

const (
	// DefaultFile is the data file used when none is configured.
	DefaultFile = "tasks.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

var _ service.Service = (*Store)(nil)

// Store is a file-backed task collection.
type Store struct {
	fs     afero.Fs
	path   string
	format Format
	newID  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(s *Store) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithFormat sets the encoding. An empty format is inferred from the path.
func WithFormat(f Format) Option {
	return func(s *Store) {
		if f != "" {
			s.format = f
		}
	}
}

// New creates a store for path. Nothing is read or created until the first operation.
func New(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("data file path is empty")
	}
	s := &Store{
		fs:     afero.NewOsFs(),
		path:   path,
		format: FormatForPath(path),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the data file location.
func (s *Store) Path() string { return s.path }

// Format returns the encoding used for the data file.
func (s *Store) Format() Format { return s.format }

// Add implements service.Service.
func (s *Store) Add(ctx context.Context, description string) (service.Entry, error) {
	if err := service.ValidateDescription(description); err != nil {
		return service.Entry{}, err
	}
	tasks, err := s.mutate(ctx, func(tasks []service.Task) ([]service.Task, error) {
		return append(tasks, service.Task{Description: description}), nil
	})
	if err != nil {
		return service.Entry{}, err
	}
	return service.Entry{Index: len(tasks), Task: tasks[len(tasks)-1]}, nil
}

// List implements service.Service.
func (s *Store) List(ctx context.Context) ([]service.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tasks, err := s.load()
	if err != nil {
		return nil, err
	}
	return service.Entries(tasks), nil
}

// Edit implements service.Service.
func (s *Store) Edit(ctx context.Context, index int, description string) (service.Entry, error) {
	if err := service.ValidateDescription(description); err != nil {
		return service.Entry{}, err
	}
	tasks, err := s.mutate(ctx, func(tasks []service.Task) ([]service.Task, error) {
		if err := service.CheckIndex(index, len(tasks)); err != nil {
			return nil, err
		}
		tasks[index-1].Description = description
		return tasks, nil
	})
	if err != nil {
		return service.Entry{}, err
	}
	return service.Entry{Index: index, Task: tasks[index-1]}, nil
}

// Remove implements service.Service.
func (s *Store) Remove(ctx context.Context, index int) (service.Task, error) {
	var removed service.Task
	_, err := s.mutate(ctx, func(tasks []service.Task) ([]service.Task, error) {
		if err := service.CheckIndex(index, len(tasks)); err != nil {
			return nil, err
		}
		removed = tasks[index-1]
		return slices.Delete(tasks, index-1, index), nil
	})
	if err != nil {
		return service.Task{}, err
	}
	return removed, nil
}

// Complete implements service.Service.
func (s *Store) Complete(ctx context.Context, index int) (service.Entry, error) {
	return s.setCompleted(ctx, index, true)
}

// Reopen implements service.Service.
func (s *Store) Reopen(ctx context.Context, index int) (service.Entry, error) {
	return s.setCompleted(ctx, index, false)
}

func (s *Store) setCompleted(ctx context.Context, index int, completed bool) (service.Entry, error) {
	tasks, err := s.mutate(ctx, func(tasks []service.Task) ([]service.Task, error) {
		if err := service.CheckIndex(index, len(tasks)); err != nil {
			return nil, err
		}
		tasks[index-1].Completed = completed
		return tasks, nil
	})
	if err != nil {
		return service.Entry{}, err
	}
	return service.Entry{Index: index, Task: tasks[index-1]}, nil
}

// mutate runs one read-modify-write cycle. Nothing is written when fn fails.
func (s *Store) mutate(ctx context.Context, fn func([]service.Task) ([]service.Task, error)) ([]service.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tasks, err := s.load()
	if err != nil {
		return nil, err
	}
	tasks, err = fn(tasks)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = s.newID()
		}
	}
	if err := s.save(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// load reads the full collection. A missing file is an empty collection.
func (s *Store) load() ([]service.Task, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []service.Task{}, nil
		}
		return nil, s.ioError("read", err)
	}
	tasks, err := Decode(s.format, data)
	if err != nil {
		return nil, &service.StoreError{Kind: service.ErrCorruptStore, Op: "decode", Path: s.path, Err: err}
	}
	return tasks, nil
}

// save replaces the data file with the encoded collection via temp file + rename.
func (s *Store) save(tasks []service.Task) (err error) {
	data, err := Encode(s.format, tasks)
	if err != nil {
		return s.ioError("encode", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return s.ioError("mkdir", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return s.ioError("create", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = s.fs.Remove(tmpName)
		}
	}()

	if _, werr := tmp.Write(data); werr != nil {
		_ = tmp.Close()
		return s.ioError("write", werr)
	}
	if serr := tmp.Sync(); serr != nil {
		_ = tmp.Close()
		return s.ioError("sync", serr)
	}
	if cerr := tmp.Close(); cerr != nil {
		return s.ioError("close", cerr)
	}
	if cerr := s.fs.Chmod(tmpName, filePerm); cerr != nil {
		return s.ioError("chmod", cerr)
	}
	if rerr := s.fs.Rename(tmpName, s.path); rerr != nil {
		return s.ioError("rename", rerr)
	}
	return nil
}

func (s *Store) ioError(op string, err error) error {
	return &service.StoreError{Kind: service.ErrIO, Op: op, Path: s.path, Err: err}
}
