package driven

import "context"

// DirectoryWatcher reports PDF files that appear in a directory.
type DirectoryWatcher interface {
	// Watch emits the path of each new or rewritten PDF once writes to it
	// have settled. The channel closes when ctx is cancelled.
	Watch(ctx context.Context) (<-chan string, error)
	// Close stops watching. It is safe to call more than once.
	Close() error
}
