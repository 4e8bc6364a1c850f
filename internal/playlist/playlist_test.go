package playlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songshelf/internal/playlist"
)

func song(title string, rating float64, tags ...string) *playlist.Song {
	return playlist.NewSong(title, "Artist", "Album", rating, "Genre", tags)
}

func titles(songs []*playlist.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.Title()
	}
	return out
}

func TestNew_KeepsDuplicatesDropsNil(t *testing.T) {
	a := song("a", 1)
	p := playlist.New([]*playlist.Song{a, nil, song("a", 2)})

	assert.Equal(t, 2, p.Len())
}

func TestAddSong(t *testing.T) {
	p := playlist.New(nil)

	require.True(t, p.AddSong(song("one", 1)))
	require.True(t, p.AddSong(song("two", 1)))

	assert.False(t, p.AddSong(nil))
	assert.False(t, p.AddSong(song("one", 5, "different")), "same title/artist/album is a duplicate")
	assert.Equal(t, []string{"one", "two"}, titles(p.AllSongs()))
}

func TestAddSongs_DoesNotDeduplicate(t *testing.T) {
	p := playlist.New([]*playlist.Song{song("one", 1)})

	p.AddSongs([]*playlist.Song{song("one", 1), nil, song("two", 1), song("two", 3)})

	assert.Equal(t, []string{"one", "one", "two", "two"}, titles(p.AllSongs()))
}

func TestAddSong_StillRejectsAfterAddSongs(t *testing.T) {
	p := playlist.New(nil)
	p.AddSongs([]*playlist.Song{song("dup", 1), song("dup", 1)})

	assert.False(t, p.AddSong(song("dup", 1)))
	assert.Equal(t, 2, p.Len())
}

func TestSearchByTag(t *testing.T) {
	p := playlist.New([]*playlist.Song{
		song("a", 1, "chill", "summer"),
		song("b", 1, "rock"),
		song("c", 1, "Chill"),
	})

	assert.Equal(t, []string{"a", "c"}, titles(p.SearchByTag("CHILL")))
	assert.Equal(t, []string{"b"}, titles(p.SearchByTag(" rock ")))
}

func TestSearchByTag_NoMatchesIsEmptyNotNil(t *testing.T) {
	p := playlist.New([]*playlist.Song{song("a", 1, "x")})

	got := p.SearchByTag("nope")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = playlist.New(nil).SearchByTag("x")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, p.SearchByTag(""))
}

func TestSearchByTag_AliasedSongAppearsTwice(t *testing.T) {
	shared := song("a", 1, "x")
	p := playlist.New(nil)
	p.AddSongs([]*playlist.Song{shared, shared})

	got := p.SearchByTag("x")
	require.Len(t, got, 2)
	assert.Same(t, got[0], got[1])
}

func TestAllSongs_IsDefensiveCopy(t *testing.T) {
	p := playlist.New([]*playlist.Song{song("a", 1, "x"), song("b", 2, "y")})

	got := p.AllSongs()
	got[0] = song("intruder", 9)
	got = append(got, song("extra", 1))

	assert.Equal(t, []string{"a", "b"}, titles(p.AllSongs()))
	assert.Len(t, got, 3)
}

func TestAllSongs_SharesSongs(t *testing.T) {
	p := playlist.New([]*playlist.Song{song("a", 1, "x")})

	require.True(t, p.AllSongs()[0].AddTag("added"))

	assert.True(t, p.AllSongs()[0].ContainsTag("added"))
}

func TestAllTags_FirstSeenOrderCaseInsensitive(t *testing.T) {
	p := playlist.New([]*playlist.Song{
		song("a", 1, "rock", "Chill"),
		song("b", 1, "chill", "ambient", "ROCK"),
		song("c", 1),
	})

	// per song the tags are sorted, across songs the order is first-seen
	assert.Equal(t, []string{"Chill", "rock", "ambient"}, p.AllTags())
}

func TestAllTags_Empty(t *testing.T) {
	got := playlist.New(nil).AllTags()
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = playlist.New([]*playlist.Song{song("a", 1)}).AllTags()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMostPopular_FirstMaximumWins(t *testing.T) {
	songs := []*playlist.Song{song("r3", 3), song("r5a", 5), song("r5b", 5), song("r1", 1)}
	p := playlist.New(songs)

	assert.Same(t, songs[1], p.MostPopular())
}

func TestMostPopular_Empty(t *testing.T) {
	assert.Nil(t, playlist.New(nil).MostPopular())
	assert.Nil(t, playlist.New([]*playlist.Song{nil}).MostPopular())
}

func TestMostPopular_NegativeRatings(t *testing.T) {
	p := playlist.New([]*playlist.Song{song("low", -3), song("high", -1)})
	assert.Equal(t, "high", p.MostPopular().Title())
}

func TestSortByNumTags_StableDescending(t *testing.T) {
	p := playlist.New([]*playlist.Song{
		song("two", 1, "a", "b"),
		song("five-first", 1, "a", "b", "c", "d", "e"),
		song("five-second", 1, "v", "w", "x", "y", "z"),
		song("zero", 1),
		song("three", 1, "a", "b", "c"),
	})

	p.SortByNumTags()

	sorted := p.AllSongs()
	counts := make([]int, len(sorted))
	for i, s := range sorted {
		counts[i] = s.TagCount()
	}
	assert.Equal(t, []int{5, 5, 3, 2, 0}, counts)
	assert.Equal(t, []string{"five-first", "five-second", "three", "two", "zero"}, titles(sorted))
}

func TestSortByNumTags_EqualCountsKeepOrder(t *testing.T) {
	var songs []*playlist.Song
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, n := range names {
		songs = append(songs, song(n, 1, "t"))
	}
	p := playlist.New(songs)

	p.SortByNumTags()

	assert.Equal(t, names, titles(p.AllSongs()))
}

func TestSortByNumTags_TrivialSizes(t *testing.T) {
	empty := playlist.New(nil)
	empty.SortByNumTags()
	assert.Equal(t, 0, empty.Len())

	single := playlist.New([]*playlist.Song{song("only", 1, "x")})
	single.SortByNumTags()
	assert.Equal(t, []string{"only"}, titles(single.AllSongs()))
}
