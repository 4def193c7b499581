package cmd

import "fmt"

// scanExit is returned by commands to signal a specific exit code after the
// diagnostic has already been written: 1 for a failed run, 2 for malformed
// arguments or config.
type scanExit struct{ code int }

func (e scanExit) Error() string {
	switch e.code {
	case 0:
		return ""
	case 2:
		return "usage error"
	default:
		return fmt.Sprintf("scan failed (exit %d)", e.code)
	}
}

// ScanExitCode extracts the exit code from a scanExit error.
// Returns -1 if the error is not a scanExit.
func ScanExitCode(err error) int {
	if se, ok := err.(scanExit); ok {
		return se.code
	}
	return -1
}
