package adapters

import (
	"context"
	"fmt"

	"songshelf/internal/playlist"
	"songshelf/internal/songfile"
)

// FileAdapter loads songs from song files on disk
type FileAdapter struct {
	BaseAdapter
	opts songfile.Options
}

// NewFileAdapter creates a FileAdapter. Files need no login, so it starts authenticated.
func NewFileAdapter(opts songfile.Options) *FileAdapter {
	a := &FileAdapter{
		BaseAdapter: NewBaseAdapter("file", opts.Logger),
		opts:        opts,
	}
	a.SetAuthenticated(true)
	return a
}

// Authenticate is a no-op for files
func (a *FileAdapter) Authenticate(ctx context.Context) error {
	return ctx.Err()
}

// LoadSongs reads every song from the file at path
func (a *FileAdapter) LoadSongs(ctx context.Context, path string) ([]*playlist.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	songs, err := songfile.ReadFile(path, a.opts)
	if err != nil {
		return nil, fmt.Errorf("adapters.FileAdapter.LoadSongs: %w", err)
	}
	a.log.Info("songs loaded", "path", path, "count", len(songs))
	return songs, nil
}
