package cli

import "errors"

var (
	ErrSourceRepoRequired = errors.New("source repository path is required")
	ErrSourceRepoMissing  = errors.New("source repository path does not exist")
	ErrMaxParallelInvalid = errors.New("max-parallel must be a positive integer")
)
