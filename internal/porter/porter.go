package porter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"songshelf/internal/adapters"
	"songshelf/internal/logging"
	"songshelf/internal/playlist"
	"songshelf/internal/songfile"
	"songshelf/internal/utils"
)

// ErrSongRejected is returned when the playlist or a song refuses a change:
// a duplicate song, a duplicate tag, a blank tag or a song with no tag room.
var ErrSongRejected = errors.New("rejected")

// Porter moves songs between the playlist and its sources and sinks
type Porter struct {
	list *playlist.Playlist
	log  *slog.Logger
}

// NewPorter creates a Porter over a playlist holding songs
func NewPorter(songs []*playlist.Song, log *slog.Logger) *Porter {
	return &Porter{
		list: playlist.New(songs),
		log:  logging.OrDiscard(log),
	}
}

// Open loads the initial playlist from a song file
func Open(ctx context.Context, path string, opts songfile.Options, log *slog.Logger) (*Porter, error) {
	if opts.Logger == nil {
		opts.Logger = log
	}
	songs, err := adapters.NewFileAdapter(opts).LoadSongs(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("porter.Open: %w", err)
	}
	return NewPorter(songs, log), nil
}

// Playlist returns the underlying playlist
func (p *Porter) Playlist() *playlist.Playlist {
	return p.list
}

// AddSong adds s unless an equal song is already present
func (p *Porter) AddSong(s *playlist.Song) error {
	if !p.list.AddSong(s) {
		return fmt.Errorf("porter.Porter.AddSong: duplicate or invalid song: %w", ErrSongRejected)
	}
	p.log.Debug("song added", "title", s.Title(), "artist", s.Artist())
	return nil
}

// AddTag adds tag to the song at the 1-based position index
func (p *Porter) AddTag(index int, tag string) error {
	songs := p.list.AllSongs()
	if index < 1 || index > len(songs) {
		return fmt.Errorf("porter.Porter.AddTag: song %d out of range 1-%d", index, len(songs))
	}

	s := songs[index-1]
	if s == nil {
		return fmt.Errorf("porter.Porter.AddTag: song %d is empty: %w", index, ErrSongRejected)
	}
	if !s.AddTag(tag) {
		return fmt.Errorf("porter.Porter.AddTag: tag %q on song %d (duplicate, blank or no space): %w", tag, index, ErrSongRejected)
	}

	p.log.Debug("tag added", "song", index, "tag", tag)
	return nil
}

// Merge loads songs from src and appends all of them. Unlike AddSong it
// does not look for duplicates. It returns the number of songs appended.
func (p *Porter) Merge(ctx context.Context, src adapters.SongSource, ref string) (int, error) {
	if !src.IsAuthenticated() {
		if err := src.Authenticate(ctx); err != nil {
			return 0, fmt.Errorf("porter.Porter.Merge: %w", err)
		}
	}

	songs, err := src.LoadSongs(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("porter.Porter.Merge: %w", err)
	}

	before := p.list.Len()
	p.list.AddSongs(songs)
	merged := p.list.Len() - before

	p.log.Info("songs merged", "source", src.Name(), "ref", ref, "count", merged)
	return merged, nil
}

// Save writes the playlist to path, compressed according to its extension
func (p *Porter) Save(path string) error {
	if err := songfile.WriteFile(path, p.list.AllSongs()); err != nil {
		return fmt.Errorf("porter.Porter.Save: %w", err)
	}
	p.log.Info("playlist saved", "path", path, "count", p.list.Len())
	return nil
}

// SongRow is one line of a CSV export
type SongRow struct {
	Title    string   `csv:"title"`
	Artist   string   `csv:"artist"`
	Album    string   `csv:"album"`
	Rating   float64  `csv:"rating"`
	Genre    string   `csv:"genre"`
	Tags     []string `csv:"tags"`
	TagCount int      `csv:"tag_count"`
}

// Rows converts the playlist into CSV rows, skipping empty slots
func (p *Porter) Rows() []SongRow {
	songs := p.list.AllSongs()
	rows := make([]SongRow, 0, len(songs))
	for _, s := range songs {
		if s == nil {
			continue
		}
		rows = append(rows, SongRow{
			Title:    s.Title(),
			Artist:   s.Artist(),
			Album:    s.Album(),
			Rating:   s.Rating(),
			Genre:    s.Genre(),
			Tags:     s.Tags(),
			TagCount: s.TagCount(),
		})
	}
	return rows
}

// ExportCSV writes the playlist to a CSV file
func (p *Porter) ExportCSV(path string) error {
	headers := utils.StructToCsvHeader(reflect.TypeOf(SongRow{}))
	rows := p.Rows()
	if err := utils.WriteToCsvFile(path, headers, rows); err != nil {
		return fmt.Errorf("porter.Porter.ExportCSV: %w", err)
	}
	p.log.Info("playlist exported", "path", path, "rows", len(rows))
	return nil
}
