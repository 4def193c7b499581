package app

import "errors"

// Failure taxonomy for one scan run. In auto mode, ErrToolchainUnavailable
// and ErrBuildFailed never surface — the orchestrator escalates them into a
// fallback run instead. In native mode they propagate to the caller.
var (
	ErrToolchainUnavailable = errors.New("no C compiler available")
	ErrBuildFailed          = errors.New("native scanner build failed")
)
