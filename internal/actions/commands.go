package actions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"songshelf/internal/adapters"
	"songshelf/internal/display"
	"songshelf/internal/playlist"
)

// Commands returns every subcommand of the application
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "menu",
			Usage:  "Run the interactive playlist menu (default)",
			Flags:  []cli.Flag{writeFlag()},
			Action: Menu,
		},
		{
			Name:   "list",
			Usage:  "Display all songs",
			Action: ListSongs,
		},
		{
			Name:  "add",
			Usage: "Add a new song",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "title", Required: true},
				&cli.StringFlag{Name: "artist"},
				&cli.StringFlag{Name: "album"},
				&cli.Float64Flag{Name: "rating"},
				&cli.StringFlag{Name: "genre"},
				&cli.StringSliceFlag{Name: "tag", Usage: "tag to attach, repeatable"},
				writeFlag(),
			},
			Action: AddSong,
		},
		{
			Name:   "tags",
			Usage:  "Display all unique tags",
			Action: ListTags,
		},
		{
			Name:   "sort",
			Usage:  "Sort songs by number of tags (descending)",
			Flags:  []cli.Flag{writeFlag()},
			Action: SortSongs,
		},
		{
			Name:      "search",
			Usage:     "Search songs by tag",
			ArgsUsage: "<tag>",
			Action:    SearchSongs,
		},
		{
			Name:  "add-tag",
			Usage: "Add a tag to a song",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "song", Usage: "song number as shown by list", Required: true},
				&cli.StringFlag{Name: "tag", Required: true},
				writeFlag(),
			},
			Action: AddTag,
		},
		{
			Name:   "popular",
			Usage:  "Find the most popular song",
			Action: MostPopular,
		},
		{
			Name:      "merge",
			Usage:     "Add songs from files or a remote playlist",
			ArgsUsage: "<file>...",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "from", Usage: "file, spotify or youtube", Value: string(adapters.FileSource)},
				&cli.StringFlag{Name: "playlist", Usage: "remote playlist ID"},
				writeFlag(),
			},
			Action: MergeSongs,
		},
		{
			Name:  "export",
			Usage: "Export the playlist as CSV",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "csv", Usage: "destination file", Required: true},
			},
			Action: ExportPlaylist,
		},
	}
}

// ListSongs prints every song
func ListSongs(c *cli.Context) error {
	p, _, err := openPorter(c)
	if err != nil {
		return err
	}
	display.New(c.App.Writer).SongList(p.Playlist().AllSongs())
	return nil
}

// AddSong adds the song described by the flags
func AddSong(c *cli.Context) error {
	title := strings.TrimSpace(c.String("title"))
	if title == "" {
		return errors.New("add: title must not be blank")
	}

	p, e, err := openPorter(c)
	if err != nil {
		return err
	}

	s := playlist.NewSong(
		title,
		strings.TrimSpace(c.String("artist")),
		strings.TrimSpace(c.String("album")),
		c.Float64("rating"),
		strings.TrimSpace(c.String("genre")),
		c.StringSlice("tag"),
	)
	if err := p.AddSong(s); err != nil {
		return err
	}

	display.New(c.App.Writer).Line("Song added.")
	if c.Bool("write") {
		return save(c, p, e)
	}
	return nil
}

// ListTags prints the unique tags across all songs
func ListTags(c *cli.Context) error {
	p, _, err := openPorter(c)
	if err != nil {
		return err
	}
	display.New(c.App.Writer).TagList(p.Playlist().AllTags())
	return nil
}

// SortSongs sorts by tag count and prints the result
func SortSongs(c *cli.Context) error {
	p, e, err := openPorter(c)
	if err != nil {
		return err
	}

	p.Playlist().SortByNumTags()

	out := display.New(c.App.Writer)
	out.Line("Songs sorted by tag count (descending).")
	out.SongList(p.Playlist().AllSongs())

	if c.Bool("write") {
		return save(c, p, e)
	}
	return nil
}

// SearchSongs prints the songs carrying the tag given as argument
func SearchSongs(c *cli.Context) error {
	tag := strings.TrimSpace(c.Args().First())
	if tag == "" {
		return errors.New("search: a tag is required")
	}

	p, _, err := openPorter(c)
	if err != nil {
		return err
	}
	display.New(c.App.Writer).MatchList(p.Playlist().SearchByTag(tag))
	return nil
}

// AddTag adds a tag to the song at the given 1-based position
func AddTag(c *cli.Context) error {
	p, e, err := openPorter(c)
	if err != nil {
		return err
	}

	if err := p.AddTag(c.Int("song"), c.String("tag")); err != nil {
		return err
	}

	display.New(c.App.Writer).Line("Tag added.")
	if c.Bool("write") {
		return save(c, p, e)
	}
	return nil
}

// MostPopular prints the highest rated song
func MostPopular(c *cli.Context) error {
	p, _, err := openPorter(c)
	if err != nil {
		return err
	}
	display.New(c.App.Writer).Popular(p.Playlist().MostPopular())
	return nil
}

// MergeSongs appends songs from files or from a remote playlist. Merged
// songs are not checked for duplicates.
func MergeSongs(c *cli.Context) error {
	p, e, err := openPorter(c)
	if err != nil {
		return err
	}

	from := strings.ToLower(c.String("from"))
	src, err := adapters.NewSongSource(from, e.sourceOptions(c))
	if err != nil {
		return err
	}

	var refs []string
	if adapters.SourceType(from) == adapters.FileSource {
		refs = c.Args().Slice()
		if len(refs) == 0 {
			return errors.New("merge: at least one file is required")
		}
	} else {
		ref := c.String("playlist")
		if ref == "" {
			return listRemotePlaylists(c, src)
		}
		refs = []string{ref}
	}

	out := display.New(c.App.Writer)
	for _, ref := range refs {
		n, err := p.Merge(c.Context, src, ref)
		if err != nil {
			return err
		}
		songs := p.Playlist().AllSongs()
		out.Loaded(songs[len(songs)-n:])
	}
	out.Line("Songs merged into playlist.")

	if c.Bool("write") {
		return save(c, p, e)
	}
	return nil
}

// listRemotePlaylists shows the playlists a user can pass to --playlist
func listRemotePlaylists(c *cli.Context, src adapters.SongSource) error {
	lister, ok := src.(adapters.PlaylistLister)
	if !ok {
		return fmt.Errorf("merge: --playlist is required for %s", src.Name())
	}

	if err := src.Authenticate(c.Context); err != nil {
		return err
	}
	playlists, err := lister.ListPlaylists(c.Context)
	if err != nil {
		return err
	}

	out := display.New(c.App.Writer)
	out.Heading(fmt.Sprintf("%s playlists:", src.Name()))
	for _, pl := range playlists {
		out.Line("%s  %s (%d tracks)", pl.ID, pl.Name, pl.TrackCount)
	}
	out.Line("Run merge again with --playlist <ID>.")
	return nil
}
