package extract

import (
	"errors"
	"fmt"

	"github.com/phobologic/rsextract/internal/model"
)

// ErrNotFound matches every *NotFoundError via errors.Is.
var ErrNotFound = errors.New("no such item")

// NotFoundError reports that no declaration has the requested kind and name.
// A name that exists under a different kind is reported the same way.
type NotFoundError struct {
	Kind model.Kind
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s named %q", e.Kind, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RenderError reports that a located declaration could not be rendered.
type RenderError struct {
	Kind model.Kind
	Name string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s %s: %v", e.Kind, e.Name, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
