// Package display renders songs and tags for the terminal. Styling is
// dropped automatically when the writer is not a terminal.
package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"songshelf/internal/playlist"
)

const rule = "---------------------------"

// Printer writes styled listings to a writer
type Printer struct {
	w       io.Writer
	heading lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
}

// New creates a Printer whose color profile follows w
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		label:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Faint(true),
	}
}

// Line prints a plain message
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Heading prints a highlighted title line
func (p *Printer) Heading(text string) {
	fmt.Fprintln(p.w, p.heading.Render(text))
}

// SongBlock prints the song at 1-based position i followed by a rule
func (p *Printer) SongBlock(i int, s *playlist.Song) {
	p.block(fmt.Sprintf("Song #%d", i), s)
}

// SongList prints every song of the playlist and a count
func (p *Printer) SongList(songs []*playlist.Song) {
	if len(songs) == 0 {
		p.Line("No songs in playlist.")
		return
	}
	for i, s := range songs {
		p.SongBlock(i+1, s)
	}
	fmt.Fprintln(p.w, p.muted.Render(Summary(len(songs))))
}

// MatchList prints the result of a tag search
func (p *Printer) MatchList(matches []*playlist.Song) {
	if len(matches) == 0 {
		p.Line("No songs found with that tag.")
		return
	}
	p.Heading("Matches:")
	for i, s := range matches {
		p.block(fmt.Sprintf("Match #%d", i+1), s)
	}
}

// TagList prints the unique tags of a playlist
func (p *Printer) TagList(tags []string) {
	if len(tags) == 0 {
		p.Line("No tags found.")
		return
	}
	p.Heading("Unique tags:")
	for _, tag := range tags {
		p.Line("- %s", tag)
	}
}

// Popular prints the highest rated song
func (p *Printer) Popular(s *playlist.Song) {
	if s == nil {
		p.Line("No songs available.")
		return
	}
	p.Heading("Most popular song:")
	p.Line("%s", s.Format())
}

// Titles prints a numbered list of song titles for picking a song
func (p *Printer) Titles(songs []*playlist.Song) {
	for i, s := range songs {
		title := "(null)"
		if s != nil {
			title = s.Title()
		}
		p.Line("%d) %s", i+1, title)
	}
}

// Loaded prints songs read from a source before they are merged
func (p *Printer) Loaded(songs []*playlist.Song) {
	if len(songs) == 0 {
		p.Line("No songs loaded.")
		return
	}
	p.Heading("Loaded songs:")
	for _, s := range songs {
		if s == nil {
			continue
		}
		p.Line("%s", s.Format())
		p.Line(rule)
	}
}

func (p *Printer) block(header string, s *playlist.Song) {
	fmt.Fprintln(p.w, p.label.Render(header))
	if s == nil {
		p.Line("(null)")
	} else {
		p.Line("%s", s.Format())
	}
	p.Line(rule)
}

// Summary describes a number of songs, e.g. "1,204 songs"
func Summary(n int) string {
	if n == 1 {
		return "1 song"
	}
	return humanize.Comma(int64(n)) + " songs"
}

// Size renders a byte count for humans, e.g. "1.2 kB"
func Size(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
