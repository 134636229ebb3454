package executor

import "context"

// Executor runs local tools such as whisper.cpp or the pyannote helper script.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
