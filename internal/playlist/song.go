package playlist

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	fieldSeparator = "%%"
	tagSeparator   = "~~"
)

// Song represents a single track with a sorted, case-insensitively unique tag set.
// The tag storage is allocated once in NewSong and never grows afterwards.
type Song struct {
	title  string
	artist string
	album  string
	rating float64
	genre  string

	tags     []string // len(tags) is the capacity, only tags[:tagCount] is meaningful
	tagCount int
}

// NewSong creates a song whose tag capacity is twice the number of initial tags.
// Every initial tag is inserted through AddTag, so duplicates and blanks are dropped.
func NewSong(title, artist, album string, rating float64, genre string, initialTags []string) *Song {
	s := &Song{
		title:  title,
		artist: artist,
		album:  album,
		rating: rating,
		genre:  genre,
		tags:   make([]string, len(initialTags)*2),
	}
	for _, tag := range initialTags {
		s.AddTag(tag)
	}
	return s
}

func (s *Song) Title() string   { return s.title }
func (s *Song) Artist() string  { return s.artist }
func (s *Song) Album() string   { return s.album }
func (s *Song) Rating() float64 { return s.rating }
func (s *Song) Genre() string   { return s.genre }

// Tags returns a copy of the occupied tag prefix in sorted order
func (s *Song) Tags() []string {
	out := make([]string, s.tagCount)
	copy(out, s.tags[:s.tagCount])
	return out
}

// TagCount returns the number of stored tags. A nil song has zero tags.
func (s *Song) TagCount() int {
	if s == nil {
		return 0
	}
	return s.tagCount
}

// TagCapacity returns the fixed size of the tag storage
func (s *Song) TagCapacity() int {
	return len(s.tags)
}

// AddTag inserts tag at its sorted position.
// It returns false without touching the tag set when the tag is blank,
// already present (ignoring case), or the storage is full.
func (s *Song) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || len(s.tags) == 0 {
		return false
	}

	if s.tagCount == 0 {
		s.tags[0] = tag
		s.tagCount = 1
		return true
	}

	if s.tagCount >= len(s.tags) {
		return false
	}

	idx, found := s.search(tag)
	if found {
		return false
	}

	// shift the tail one slot right to open idx
	copy(s.tags[idx+1:s.tagCount+1], s.tags[idx:s.tagCount])
	s.tags[idx] = tag
	s.tagCount++
	return true
}

// ContainsTag reports whether tag is stored, ignoring case and surrounding whitespace
func (s *Song) ContainsTag(tag string) bool {
	if s == nil || s.tagCount == 0 {
		return false
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	_, found := s.search(tag)
	return found
}

// search runs a binary search over the occupied prefix. When the tag is
// absent the returned index is where it would have to be inserted.
func (s *Song) search(tag string) (int, bool) {
	low, high := 0, s.tagCount-1
	for low <= high {
		mid := int(uint(low+high) >> 1)
		switch cmp := compareFold(s.tags[mid], tag); {
		case cmp == 0:
			return mid, true
		case cmp < 0:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return low, false
}

// Equal reports whether both songs share title, artist and album.
// Rating, genre and tags do not take part in identity.
func (s *Song) Equal(other *Song) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.title == other.title && s.artist == other.artist && s.album == other.album
}

// Format renders the song as a single line:
//
//	title%%artist%%album%%rating%%genre%%tag1~~tag2~~...
func (s *Song) Format() string {
	var b strings.Builder
	b.WriteString(s.title)
	b.WriteString(fieldSeparator)
	b.WriteString(s.artist)
	b.WriteString(fieldSeparator)
	b.WriteString(s.album)
	b.WriteString(fieldSeparator)
	b.WriteString(formatRating(s.rating))
	b.WriteString(fieldSeparator)
	b.WriteString(s.genre)
	b.WriteString(fieldSeparator)
	b.WriteString(strings.Join(s.tags[:s.tagCount], tagSeparator))
	return b.String()
}

func (s *Song) String() string {
	return s.Format()
}

// formatRating prints whole ratings without a fractional part (5 not 5.0)
// and everything else in its shortest decimal form (4.5).
func formatRating(r float64) string {
	if r == 0 {
		// also covers negative zero
		return "0"
	}
	if !math.IsInf(r, 0) && r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// compareFold compares a and b rune by rune ignoring case, with the same
// ordering for tag insertion and lookup.
func compareFold(a, b string) int {
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		if ra != rb {
			fa, fb := foldRune(ra), foldRune(rb)
			if fa != fb {
				if fa < fb {
					return -1
				}
				return 1
			}
		}
		a, b = a[na:], b[nb:]
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

func foldRune(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}
