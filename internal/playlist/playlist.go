package playlist

// Playlist represents an ordered collection of songs.
// Songs added through AddSong are unique by title, artist and album;
// AddSongs appends without that check.
type Playlist struct {
	songs []*Song
}

// New creates a playlist holding the given songs in order.
// Duplicates among songs are kept, nil entries are dropped.
func New(songs []*Song) *Playlist {
	p := &Playlist{songs: make([]*Song, 0, len(songs))}
	for _, s := range songs {
		if s != nil {
			p.songs = append(p.songs, s)
		}
	}
	return p
}

// Len returns the number of songs in the playlist
func (p *Playlist) Len() int {
	return len(p.songs)
}

// AddSong appends s unless it is nil or an equal song is already present
func (p *Playlist) AddSong(s *Song) bool {
	if s == nil {
		return false
	}
	for _, existing := range p.songs {
		if existing != nil && existing.Equal(s) {
			return false
		}
	}
	p.grow(len(p.songs) + 1)
	p.songs = append(p.songs, s)
	return true
}

// AddSongs appends every non-nil song as is. Unlike AddSong it does not
// look for duplicates, neither against the playlist nor within songs.
func (p *Playlist) AddSongs(songs []*Song) {
	for _, s := range songs {
		if s == nil {
			continue
		}
		p.grow(len(p.songs) + 1)
		p.songs = append(p.songs, s)
	}
}

// SearchByTag returns the songs carrying tag in playlist order.
// The result is never nil.
func (p *Playlist) SearchByTag(tag string) []*Song {
	matches := 0
	for _, s := range p.songs {
		if s != nil && s.ContainsTag(tag) {
			matches++
		}
	}

	results := make([]*Song, 0, matches)
	if matches == 0 {
		return results
	}
	for _, s := range p.songs {
		if s != nil && s.ContainsTag(tag) {
			results = append(results, s)
		}
	}
	return results
}

// AllSongs returns a copy of the playlist in its current order.
// The songs themselves are shared, not cloned.
func (p *Playlist) AllSongs() []*Song {
	out := make([]*Song, len(p.songs))
	copy(out, p.songs)
	return out
}

// AllTags returns every distinct tag across the playlist in first-seen order.
// Tags differing only in case count once, and the first spelling wins.
func (p *Playlist) AllTags() []string {
	unique := make([]string, 0, 8)
	for _, s := range p.songs {
		if s == nil {
			continue
		}
		for _, tag := range s.tags[:s.tagCount] {
			if !containsFold(unique, tag) {
				unique = append(unique, tag)
			}
		}
	}

	trimmed := make([]string, len(unique))
	copy(trimmed, unique)
	return trimmed
}

// MostPopular returns the highest rated song, the earliest one on ties,
// or nil if there is nothing to rank.
func (p *Playlist) MostPopular() *Song {
	var best *Song
	for _, s := range p.songs {
		if s == nil {
			continue
		}
		if best == nil || s.rating > best.rating {
			best = s
		}
	}
	return best
}

// SortByNumTags orders the playlist by tag count, most tags first.
// The merge sort is stable: songs with equal counts keep their relative order.
func (p *Playlist) SortByNumTags() {
	if len(p.songs) <= 1 {
		return
	}
	tmp := make([]*Song, len(p.songs))
	mergeSort(p.songs, tmp, 0, len(p.songs)-1)
}

func mergeSort(songs, tmp []*Song, left, right int) {
	if left >= right {
		return
	}
	mid := (left + right) / 2
	mergeSort(songs, tmp, left, mid)
	mergeSort(songs, tmp, mid+1, right)
	merge(songs, tmp, left, mid, right)
}

// merge combines songs[left..mid] and songs[mid+1..right]. Taking from the
// left run on equal counts is what keeps the sort stable.
func merge(songs, tmp []*Song, left, mid, right int) {
	i, j, k := left, mid+1, left
	for i <= mid && j <= right {
		if songs[i].TagCount() >= songs[j].TagCount() {
			tmp[k] = songs[i]
			i++
		} else {
			tmp[k] = songs[j]
			j++
		}
		k++
	}
	k += copy(tmp[k:], songs[i:mid+1])
	copy(tmp[k:], songs[j:right+1])
	copy(songs[left:right+1], tmp[left:right+1])
}

// grow makes room for at least need songs, doubling the capacity or jumping
// straight to need when doubling is not enough.
func (p *Playlist) grow(need int) {
	if cap(p.songs) >= need {
		return
	}
	n := cap(p.songs) * 2
	if n < need {
		n = need
	}
	grown := make([]*Song, len(p.songs), n)
	copy(grown, p.songs)
	p.songs = grown
}

func containsFold(tags []string, tag string) bool {
	for _, existing := range tags {
		if compareFold(existing, tag) == 0 {
			return true
		}
	}
	return false
}
