package interfaces

import "context"

// ContentRepository is the read-only store behind the content pipeline. The
// default implementation is a directory tree laid out as
// <type>/<slug>[.<lang>].<md|mdx>; tests swap in an in-memory fixture.
type ContentRepository interface {
	// List returns the file names stored for a content type in a stable order.
	// An unknown content type yields an empty list.
	List(ctx context.Context, contentType string) ([]string, error)
	// Read returns the raw bytes of a file. Missing files produce an error
	// matching fs.ErrNotExist.
	Read(ctx context.Context, contentType, name string) ([]byte, error)
	// Exists reports whether a file is present without reading it.
	Exists(ctx context.Context, contentType, name string) (bool, error)
}
