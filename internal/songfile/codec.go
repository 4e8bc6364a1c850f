// Package songfile reads and writes songs in the line format
//
//	Title%%Artist%%Album%%Rating%%Genre%%tag1~~tag2~~tag3
//
// "%%" separates the components of a song and "~~" separates its tags.
package songfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"songshelf/internal/playlist"
)

const (
	fieldSeparator = "%%"
	tagSeparator   = "~~"
	fieldCount     = 6

	maxLineSize = 1 << 20
)

// ErrMalformedLine is returned in strict mode for a line that does not hold
// exactly six components.
var ErrMalformedLine = errors.New("malformed song line")

// Options controls how song text is read
type Options struct {
	// Strict turns the first malformed line into an error instead of skipping it.
	Strict bool

	// Logger receives skip notices. Nil discards them.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// ParseLine turns one line into a song. It reports false when the line does
// not split into exactly six components. An unparsable rating becomes 0 and
// an empty tag component means no tags.
func ParseLine(line string) (*playlist.Song, bool) {
	components := strings.Split(line, fieldSeparator)
	if len(components) != fieldCount {
		return nil, false
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(components[3]), 64)
	if err != nil {
		rating = 0
	}

	var tags []string
	if components[5] != "" {
		tags = strings.Split(components[5], tagSeparator)
	}

	return playlist.NewSong(components[0], components[1], components[2], rating, components[4], tags), true
}

// FormatLine renders s in the line format, or "" for a nil song
func FormatLine(s *playlist.Song) string {
	if s == nil {
		return ""
	}
	return s.Format()
}

// Read parses one song per line. Blank lines are ignored. Malformed lines are
// skipped unless opts.Strict is set, in which case the first one is returned
// as an error wrapping ErrMalformedLine.
func Read(r io.Reader, opts Options) ([]*playlist.Song, error) {
	log := opts.logger()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	songs := []*playlist.Song{}
	lineNo, skipped := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		s, ok := ParseLine(line)
		if !ok {
			if opts.Strict {
				return nil, fmt.Errorf("songfile.Read: line %d: %w", lineNo, ErrMalformedLine)
			}
			log.Debug("skipping malformed song line", "line", lineNo)
			skipped++
			continue
		}
		songs = append(songs, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("songfile.Read: %w", err)
	}

	if skipped > 0 {
		log.Warn("skipped malformed song lines", "skipped", skipped, "loaded", len(songs))
	}
	return songs, nil
}

// Write renders every non-nil song on its own line
func Write(w io.Writer, songs []*playlist.Song) error {
	bw := bufio.NewWriter(w)
	for _, s := range songs {
		if s == nil {
			continue
		}
		if _, err := bw.WriteString(s.Format() + "\n"); err != nil {
			return fmt.Errorf("songfile.Write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("songfile.Write: %w", err)
	}
	return nil
}
