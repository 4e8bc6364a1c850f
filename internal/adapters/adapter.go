package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"songshelf/internal/config"
	"songshelf/internal/playlist"
	"songshelf/internal/songfile"
)

var (
	// ErrUnsupportedSource is returned by NewSongSource for an unknown source type.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrNotAuthenticated is returned when a remote source is used before Authenticate.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// SongSource supplies songs to merge into a playlist. ref names what to load:
// a file path for files, a playlist ID for remote platforms.
type SongSource interface {
	Name() string

	// Authentication methods
	Authenticate(ctx context.Context) error
	IsAuthenticated() bool

	LoadSongs(ctx context.Context, ref string) ([]*playlist.Song, error)
}

// PlaylistLister is implemented by sources that can enumerate the user's playlists
type PlaylistLister interface {
	ListPlaylists(ctx context.Context) ([]RemotePlaylist, error)
}

// RemotePlaylist describes a playlist on a music platform
type RemotePlaylist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	CreatedAt   time.Time
}

// SourceType represents the supported song sources
type SourceType string

const (
	FileSource    SourceType = "file"
	SpotifySource SourceType = "spotify"
	YoutubeSource SourceType = "youtube"
)

// Options carries what the sources need from the application
type Options struct {
	Config config.Config
	Logger *slog.Logger

	// Out receives login instructions for remote sources. Defaults to os.Stdout.
	Out io.Writer
}

func (o Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// NewSongSource is a factory function that creates a source of the given type
func NewSongSource(kind string, opts Options) (SongSource, error) {
	switch SourceType(kind) {
	case FileSource:
		return NewFileAdapter(songfile.Options{Strict: opts.Config.Strict, Logger: opts.Logger}), nil
	case SpotifySource:
		return NewSpotifyAdapter(opts)
	case YoutubeSource:
		return NewYouTubeAdapter(opts)
	default:
		return nil, fmt.Errorf("adapters.NewSongSource: %w: %q", ErrUnsupportedSource, kind)
	}
}
