package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/shorttimeseries/internal/logger"
)

// DefaultPollInterval bounds how long a follower sleeps without events
// before checking the file again.
const DefaultPollInterval = time.Second

// Follower reads a file that is still being written, like tail -f.
// At end of file Read blocks until the file grows or ctx is cancelled,
// at which point it returns the context's error so a half-written token
// is never taken as complete.
type Follower struct {
	ctx     context.Context
	file    *os.File
	path    string
	watcher *fsnotify.Watcher
	poll    time.Duration
	offset  int64
}

// FollowOption configures a Follower.
type FollowOption func(*Follower)

// WithPollInterval sets the fallback polling interval.
func WithPollInterval(d time.Duration) FollowOption {
	return func(f *Follower) {
		if d > 0 {
			f.poll = d
		}
	}
}

// Follow opens path and returns a Follower reading it from the start.
// Gzip files and stdin cannot be followed.
func Follow(ctx context.Context, path string, opts ...FollowOption) (*Follower, error) {
	if path == "" || path == Stdin {
		return nil, errors.New("cannot follow standard input")
	}
	if IsGzipFile(path) {
		return nil, fmt.Errorf("cannot follow compressed file %s", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the directory containing the file (fsnotify works better this way)
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		file.Close()
		return nil, fmt.Errorf("watching directory: %w", err)
	}

	f := &Follower{
		ctx:     ctx,
		file:    file,
		path:    absPath,
		watcher: watcher,
		poll:    DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Read reads from the file, waiting for more data at end of file.
func (f *Follower) Read(p []byte) (int, error) {
	for {
		n, err := f.file.Read(p)
		f.offset += int64(n)
		if n > 0 {
			return n, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}

		if err := f.wait(); err != nil {
			return 0, err
		}
	}
}

// wait blocks until the file may have changed. It returns the context's
// error once the context is cancelled.
func (f *Follower) wait() error {
	timer := time.NewTimer(f.poll)
	defer timer.Stop()

	for {
		select {
		case <-f.ctx.Done():
			return f.ctx.Err()

		case <-timer.C:
			return f.checkTruncated()

		case event, ok := <-f.watcher.Events:
			if !ok {
				return io.EOF
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if abs, err := filepath.Abs(event.Name); err != nil || abs != f.path {
				continue
			}
			return f.checkTruncated()

		case err, ok := <-f.watcher.Errors:
			if !ok {
				return io.EOF
			}
			logger.Warn("watching %s: %v", f.path, err)
		}
	}
}

// checkTruncated rewinds to the start when the file shrank below the
// current offset.
func (f *Follower) checkTruncated() error {
	stat, err := os.Stat(f.path)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if stat.Size() >= f.offset {
		return nil
	}

	logger.Debug("%s truncated, reading from start", f.path)
	if _, err := f.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding source: %w", err)
	}
	f.offset = 0
	return nil
}

// Close stops watching and closes the file.
func (f *Follower) Close() error {
	werr := f.watcher.Close()
	if err := f.file.Close(); err != nil {
		return err
	}
	return werr
}
