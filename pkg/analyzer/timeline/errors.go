package timeline

import (
	"errors"
	"fmt"
)

var (
	// ErrNotRepository is returned when the path holds no git repository.
	ErrNotRepository = errors.New("not a git repository")
	// ErrGitUnavailable is returned when the git executable cannot be found.
	ErrGitUnavailable = errors.New("git executable not found")
)

// RepositoryError reports a failure to read a repository's history. It is
// fatal for the build that produced it and no partial timeline is returned.
type RepositoryError struct {
	Path string
	Op   string
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func repoError(path, op string, err error) error {
	var re *RepositoryError
	if errors.As(err, &re) {
		return err
	}
	return &RepositoryError{Path: path, Op: op, Err: err}
}
