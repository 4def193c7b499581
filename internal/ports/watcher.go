package ports

// Watcher monitors a single source file for changes and triggers a re-scan.
// The adapter (fsnotify) watches the containing directory so editor
// rename-and-replace saves are still observed, and debounces rapid event
// bursts. Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring filePath. onChange is called after each
	// debounced change to that file. The callback may be invoked from any
	// goroutine. Returns an error if the containing directory doesn't exist
	// or permissions are insufficient.
	Watch(filePath string, onChange func()) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
