package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs name with args and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir is Execute with dir as the working directory.
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
