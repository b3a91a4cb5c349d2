package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// WriteCategory groups artifacts by kind.
type WriteCategory string

const (
	CategoryFeed    WriteCategory = "feed"
	CategorySitemap WriteCategory = "sitemap"
	CategoryRobots  WriteCategory = "robots"
)

// WriteFileRequest describes a single artifact write. Path is relative to the
// output root and Checksum is the hex sha256 of Content.
type WriteFileRequest struct {
	Path        string
	Content     []byte
	Locale      string
	Category    WriteCategory
	ContentType string
	Checksum    string
}

// ArtifactWriter persists generated files relative to an output root.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteFileRequest) error
}

// DirWriter writes artifacts below a directory on disk. Files are written to
// a temporary sibling first and renamed into place.
type DirWriter struct {
	root string
}

// NewDirWriter returns a writer rooted at dir.
func NewDirWriter(dir string) *DirWriter {
	return &DirWriter{root: dir}
}

func (w *DirWriter) EnsureDir(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := w.resolve(rel)
	if err != nil {
		return err
	}
	return os.MkdirAll(target, 0o755)
}

func (w *DirWriter) WriteFile(ctx context.Context, req WriteFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := w.resolve(req.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("generator: prepare %s: %w", req.Path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".folio-*")
	if err != nil {
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if _, err := tmp.Write(req.Content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	return nil
}

func (w *DirWriter) resolve(rel string) (string, error) {
	if strings.TrimSpace(w.root) == "" {
		return "", errors.New("generator: output directory is required")
	}
	clean := filepath.Clean(filepath.FromSlash(strings.TrimLeft(rel, "/")))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("generator: path %q escapes the output directory", rel)
	}
	return filepath.Join(w.root, clean), nil
}

// MemoryWriter keeps artifacts in memory. Dry runs and tests use it.
type MemoryWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemoryWriter returns an empty MemoryWriter.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: map[string][]byte{}}
}

func (w *MemoryWriter) EnsureDir(context.Context, string) error { return nil }

func (w *MemoryWriter) WriteFile(ctx context.Context, req WriteFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[strings.TrimLeft(req.Path, "/")] = append([]byte(nil), req.Content...)
	return nil
}

// File returns a written artifact.
func (w *MemoryWriter) File(path string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[path]
	return data, ok
}

// Paths lists written artifacts in lexical order.
func (w *MemoryWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for path := range w.files {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}
