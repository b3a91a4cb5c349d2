package content

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a type, slug or locale that failed validation.
	// It is raised before any repository access.
	ErrInvalidInput = errors.New("content: invalid input")
	// ErrNotFound marks a lookup with no matching file or tag.
	ErrNotFound = errors.New("content: not found")
	// ErrMalformed marks a file whose frontmatter could not be decoded.
	ErrMalformed = errors.New("content: malformed document")
	// ErrRepositoryRequired is returned when a service is built without storage.
	ErrRepositoryRequired = errors.New("content: repository is required")
)

// NotFoundError describes which lookup came back empty.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound reports whether err is a missing item or tag.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput reports whether err came from lookup validation.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
