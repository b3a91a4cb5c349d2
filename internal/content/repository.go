package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// ErrInvalidName is returned for file names that would escape a content type
// directory.
var ErrInvalidName = errors.New("content: invalid file name")

// FSRepository serves content from an fs.FS laid out as <type>/<file>.
type FSRepository struct {
	fsys fs.FS
}

var _ interfaces.ContentRepository = (*FSRepository)(nil)

// NewFSRepository wraps fsys.
func NewFSRepository(fsys fs.FS) *FSRepository {
	return &FSRepository{fsys: fsys}
}

// NewDirRepository serves content from a directory on disk.
func NewDirRepository(root string) *FSRepository {
	return NewFSRepository(os.DirFS(root))
}

// List returns the regular files of a content type sorted by name. A missing
// type directory yields an empty list.
func (r *FSRepository) List(ctx context.Context, contentType string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkName(contentType); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(r.fsys, contentType)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("content: list %s: %w", contentType, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Read returns a file's bytes. Missing files match fs.ErrNotExist.
func (r *FSRepository) Read(ctx context.Context, contentType, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkName(contentType, name); err != nil {
		return nil, err
	}
	return fs.ReadFile(r.fsys, path.Join(contentType, name))
}

// Exists reports whether a regular file is present.
func (r *FSRepository) Exists(ctx context.Context, contentType, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := checkName(contentType, name); err != nil {
		return false, err
	}
	info, err := fs.Stat(r.fsys, path.Join(contentType, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func checkName(parts ...string) error {
	for _, part := range parts {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return fmt.Errorf("%w: %q", ErrInvalidName, part)
		}
	}
	return nil
}
