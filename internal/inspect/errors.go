package inspect

import "errors"

var (
	ErrPathNotFound          = errors.New("path not found")
	ErrNotARepository        = errors.New("not a git repository")
	ErrRepositoryUnavailable = errors.New("repository unavailable")
	ErrCorruptIndex          = errors.New("corrupt index")
	ErrEmptyHistory          = errors.New("repository has no commits")
)
