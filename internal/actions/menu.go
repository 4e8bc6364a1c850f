package actions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v2"

	"songshelf/internal/adapters"
	"songshelf/internal/display"
	"songshelf/internal/playlist"
	"songshelf/internal/porter"
)

const (
	optionList    = "1"
	optionAdd     = "2"
	optionTags    = "3"
	optionSort    = "4"
	optionSearch  = "5"
	optionAddTag  = "6"
	optionPopular = "7"
	optionMerge   = "8"
	optionExit    = "9"
)

var menuOptions = []huh.Option[string]{
	huh.NewOption("Display all songs", optionList),
	huh.NewOption("Add a new song (manual input)", optionAdd),
	huh.NewOption("Display all unique tags", optionTags),
	huh.NewOption("Sort songs by number of tags (descending)", optionSort),
	huh.NewOption("Search songs by tag", optionSearch),
	huh.NewOption("Add a tag to a song", optionAddTag),
	huh.NewOption("Find the most popular song", optionPopular),
	huh.NewOption("Add new songs from file or platform (merge)", optionMerge),
	huh.NewOption("Exit", optionExit),
}

// Menu runs the interactive menu until the user exits
func Menu(c *cli.Context) error {
	p, e, err := openPorter(c)
	if err != nil {
		return err
	}

	m := &menu{
		porter: p,
		out:    display.New(c.App.Writer),
		ask:    huhPrompter{},
		opts:   e.sourceOptions(c),
	}
	if err := m.run(c.Context); err != nil {
		return err
	}

	if c.Bool("write") {
		return save(c, p, e)
	}
	return nil
}

type menu struct {
	porter *porter.Porter
	out    *display.Printer
	ask    prompter
	opts   adapters.Options
}

func (m *menu) run(ctx context.Context) error {
	for {
		choice, err := m.ask.Choose("=== Playlist Menu ===", menuOptions)
		if errors.Is(err, huh.ErrUserAborted) {
			choice = optionExit
		} else if err != nil {
			return err
		}

		switch choice {
		case optionList:
			m.out.SongList(m.porter.Playlist().AllSongs())
		case optionAdd:
			err = m.addSong()
		case optionTags:
			m.out.TagList(m.porter.Playlist().AllTags())
		case optionSort:
			m.porter.Playlist().SortByNumTags()
			m.out.Line("Songs sorted by tag count (descending).")
		case optionSearch:
			err = m.search()
		case optionAddTag:
			err = m.addTag()
		case optionPopular:
			m.out.Popular(m.porter.Playlist().MostPopular())
		case optionMerge:
			err = m.merge(ctx)
		case optionExit:
			m.out.Line("Goodbye!")
			return nil
		default:
			m.out.Line("Invalid option. Please choose 1-9.")
		}

		if errors.Is(err, huh.ErrUserAborted) {
			m.out.Line("Cancelled.")
		} else if err != nil {
			return err
		}
	}
}

func (m *menu) addSong() error {
	s, err := m.promptForSong()
	if err != nil {
		return err
	}
	if s == nil {
		m.out.Line("Song creation cancelled.")
		return nil
	}

	if err := m.porter.AddSong(s); err != nil {
		m.out.Line("Song NOT added (duplicate or invalid).")
		return nil
	}
	m.out.Line("Song added.")
	return nil
}

// promptForSong returns nil when the title is left blank
func (m *menu) promptForSong() (*playlist.Song, error) {
	title, err := m.input("Enter title (blank to cancel)", nil)
	if err != nil || title == "" {
		return nil, err
	}

	artist, err := m.input("Enter artist", nil)
	if err != nil {
		return nil, err
	}
	album, err := m.input("Enter album", nil)
	if err != nil {
		return nil, err
	}
	ratingText, err := m.input("Enter rating (number)", validateRating)
	if err != nil {
		return nil, err
	}
	rating, _ := strconv.ParseFloat(ratingText, 64)
	genre, err := m.input("Enter genre", nil)
	if err != nil {
		return nil, err
	}

	var tags []string
	for {
		tag, err := m.input("Enter tag (blank to finish)", nil)
		if err != nil {
			return nil, err
		}
		if tag == "" {
			break
		}
		if containsFold(tags, tag) {
			m.out.Line("Duplicate tag (ignored).")
			continue
		}
		tags = append(tags, tag)
	}

	return playlist.NewSong(title, artist, album, rating, genre, tags), nil
}

func (m *menu) search() error {
	tag, err := m.input("Enter tag to search", nil)
	if err != nil {
		return err
	}
	m.out.MatchList(m.porter.Playlist().SearchByTag(tag))
	return nil
}

func (m *menu) addTag() error {
	songs := m.porter.Playlist().AllSongs()
	if len(songs) == 0 {
		m.out.Line("No songs available.")
		return nil
	}

	options := make([]huh.Option[string], len(songs))
	for i, s := range songs {
		title := "(null)"
		if s != nil {
			title = s.Title()
		}
		options[i] = huh.NewOption(fmt.Sprintf("%d) %s", i+1, title), strconv.Itoa(i+1))
	}

	choice, err := m.ask.Choose("Select song", options)
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(songs) {
		m.out.Line("Invalid selection.")
		return nil
	}
	if songs[index-1] == nil {
		m.out.Line("Selected song is null.")
		return nil
	}

	tag, err := m.input("Enter tag to add", nil)
	if err != nil {
		return err
	}
	if err := m.porter.AddTag(index, tag); err != nil {
		m.out.Line("Tag NOT added (duplicate/invalid/no space).")
		return nil
	}
	m.out.Line("Tag added.")
	return nil
}

func (m *menu) merge(ctx context.Context) error {
	kind, err := m.ask.Choose("Merge songs from", []huh.Option[string]{
		huh.NewOption("File", string(adapters.FileSource)),
		huh.NewOption("Spotify", string(adapters.SpotifySource)),
		huh.NewOption("YouTube", string(adapters.YoutubeSource)),
	})
	if err != nil {
		return err
	}

	src, err := adapters.NewSongSource(kind, m.opts)
	if err != nil {
		m.out.Line("Cannot use %s: %v", kind, err)
		return nil
	}

	ref, err := m.pickRef(ctx, src)
	if err != nil || ref == "" {
		return err
	}

	var merged int
	err = m.ask.Wait(ctx, "Importing...", func(ctx context.Context) error {
		var err error
		merged, err = m.porter.Merge(ctx, src, ref)
		return err
	})
	if err != nil {
		m.out.Line("No songs loaded: %v", err)
		return nil
	}
	if merged == 0 {
		m.out.Line("No songs loaded from %s.", ref)
		return nil
	}

	songs := m.porter.Playlist().AllSongs()
	m.out.Loaded(songs[len(songs)-merged:])
	m.out.Line("Songs merged into playlist.")
	return nil
}

// pickRef asks for a file name, or lets the user choose a remote playlist.
// An empty ref means there is nothing to merge.
func (m *menu) pickRef(ctx context.Context, src adapters.SongSource) (string, error) {
	lister, ok := src.(adapters.PlaylistLister)
	if !ok {
		file, err := m.input("Enter filename to load songs from", nil)
		if err == nil && file == "" {
			m.out.Line("No filename provided.")
		}
		return file, err
	}

	if err := src.Authenticate(ctx); err != nil {
		m.out.Line("Login failed: %v", err)
		return "", nil
	}

	var remote []adapters.RemotePlaylist
	err := m.ask.Wait(ctx, "Fetching playlists...", func(ctx context.Context) error {
		var err error
		remote, err = lister.ListPlaylists(ctx)
		return err
	})
	if err != nil {
		m.out.Line("Could not list playlists: %v", err)
		return "", nil
	}
	if len(remote) == 0 {
		m.out.Line("No playlists found.")
		return "", nil
	}

	options := make([]huh.Option[string], len(remote))
	for i, pl := range remote {
		options[i] = huh.NewOption(pl.Name, pl.ID)
	}
	return m.ask.Choose("Choose a playlist to merge", options)
}

func (m *menu) input(title string, validate func(string) error) (string, error) {
	value, err := m.ask.Input(title, validate)
	return strings.TrimSpace(value), err
}

func validateRating(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return errors.New("invalid number, try again")
	}
	return nil
}

func containsFold(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
