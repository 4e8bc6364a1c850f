package actions

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songshelf/internal/adapters"
	"songshelf/internal/porter"
	"songshelf/internal/songfile"
)

const sampleSongs = "Song A%%Artist%%Album%%4%%Rock%%rock~~live\n" +
	"Song B%%Artist%%Album%%5%%Pop%%pop\n" +
	"Song C%%Artist%%Album%%2%%Jazz%%jazz~~live~~smooth\n"

func writeSongs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songs.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SONGSHELF_STRICT", "false")

	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(append([]string{"songshelf"}, args...))
	return out.String(), err
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
}

func TestList(t *testing.T) {
	path := writeSongs(t, sampleSongs)

	out, err := runApp(t, "--songs", path, "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Song #1\nSong A%%Artist%%Album%%4%%Rock%%live~~rock\n---------------------------\n")
	assert.Contains(t, out, "Song #3\nSong C%%Artist%%Album%%2%%Jazz%%jazz~~live~~smooth\n")
	assert.True(t, strings.HasSuffix(out, "3 songs\n"))
}

func TestList_MissingFileStartsEmpty(t *testing.T) {
	out, err := runApp(t, "-f", filepath.Join(t.TempDir(), "missing.txt"), "list")

	require.NoError(t, err)
	assert.Equal(t, "No songs in playlist.\n", out)
}

func TestList_StrictRejectsMalformedLines(t *testing.T) {
	path := writeSongs(t, sampleSongs+"not a song\n")

	_, err := runApp(t, "--strict", "--songs", path, "list")
	assert.ErrorIs(t, err, songfile.ErrMalformedLine)

	out, err := runApp(t, "--songs", path, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "3 songs")
}

func TestTags(t *testing.T) {
	path := writeSongs(t, sampleSongs)

	out, err := runApp(t, "--songs", path, "tags")

	require.NoError(t, err)
	assert.Equal(t, "Unique tags:\n- live\n- rock\n- pop\n- jazz\n- smooth\n", out)
}

func TestSort_Write(t *testing.T) {
	path := writeSongs(t, sampleSongs)

	out, err := runApp(t, "--songs", path, "sort", "--write")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Songs sorted by tag count (descending).\nSong #1\nSong C"))
	assert.Contains(t, out, "Saved 3 songs to "+path)
	assert.Equal(t, []string{
		"Song C%%Artist%%Album%%2%%Jazz%%jazz~~live~~smooth",
		"Song A%%Artist%%Album%%4%%Rock%%live~~rock",
		"Song B%%Artist%%Album%%5%%Pop%%pop",
	}, readLines(t, path))
}

func TestSearch(t *testing.T) {
	path := writeSongs(t, sampleSongs)

	out, err := runApp(t, "--songs", path, "search", "LIVE")
	require.NoError(t, err)
	assert.Contains(t, out, "Match #1\nSong A")
	assert.Contains(t, out, "Match #2\nSong C")

	out, err = runApp(t, "--songs", path, "search", "metal")
	require.NoError(t, err)
	assert.Equal(t, "No songs found with that tag.\n", out)

	_, err = runApp(t, "--songs", path, "search")
	assert.Error(t, err)
}

func TestAdd(t *testing.T) {
	path := writeSongs(t, sampleSongs)

	out, err := runApp(t, "--songs", path, "add", "--title", "New", "--rating", "3.5", "--tag", "b, with comma", "--tag", "a", "--write")

	require.NoError(t, err)
	assert.Contains(t, out, "Song added.")
	lines := readLines(t, path)
	require.Len(t, lines, 4)
	assert.Equal(t, "New%%%%%%3.5%%%%a~~b, with comma", lines[3])
}

func TestAdd_Duplicate(t *testing.T) {
	path := writeSongs(t, sampleSongs)

	_, err := runApp(t, "--songs", path, "add", "--title", "Song A", "--artist", "Artist", "--album", "Album")

	assert.ErrorIs(t, err, porter.ErrSongRejected)
}

func TestAddTag(t *testing.T) {
	path := writeSongs(t, sampleSongs)

	out, err := runApp(t, "--songs", path, "add-tag", "--song", "2", "--tag", "extra", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "Tag added.")
	assert.Equal(t, "Song B%%Artist%%Album%%5%%Pop%%extra~~pop", readLines(t, path)[1])

	_, err = runApp(t, "--songs", path, "add-tag", "--song", "2", "--tag", "POP")
	assert.ErrorIs(t, err, porter.ErrSongRejected)

	_, err = runApp(t, "--songs", path, "add-tag", "--song", "9", "--tag", "x")
	assert.Error(t, err)
}

func TestPopular(t *testing.T) {
	path := writeSongs(t, sampleSongs)

	out, err := runApp(t, "--songs", path, "popular")

	require.NoError(t, err)
	assert.Equal(t, "Most popular song:\nSong B%%Artist%%Album%%5%%Pop%%pop\n", out)
}

func TestMerge_Files(t *testing.T) {
	path := writeSongs(t, sampleSongs)
	other := writeSongs(t, "Song A%%Artist%%Album%%4%%Rock%%rock\nSong D%%X%%Y%%1%%Z%%\n")

	out, err := runApp(t, "--songs", path, "merge", "--write", other)

	require.NoError(t, err)
	assert.Contains(t, out, "Loaded songs:\nSong A%%Artist%%Album%%4%%Rock%%rock\n")
	assert.Contains(t, out, "Songs merged into playlist.")
	// merged songs are appended without a duplicate check
	assert.Len(t, readLines(t, path), 5)
}

func TestMerge_Errors(t *testing.T) {
	path := writeSongs(t, sampleSongs)

	_, err := runApp(t, "--songs", path, "merge")
	assert.Error(t, err)

	_, err = runApp(t, "--songs", path, "merge", "--from", "tape", "x")
	assert.ErrorIs(t, err, adapters.ErrUnsupportedSource)

	_, err = runApp(t, "--songs", path, "merge", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	path := writeSongs(t, sampleSongs)
	dest := filepath.Join(t.TempDir(), "songs")

	out, err := runApp(t, "--songs", path, "export", "--csv", dest)

	require.NoError(t, err)
	assert.Equal(t, "Exported 3 songs to "+dest+".csv.\n", out)
	lines := readLines(t, dest+".csv")
	require.Len(t, lines, 4)
	assert.Equal(t, "title,artist,album,rating,genre,tags,tag_count", lines[0])
	assert.Equal(t, "Song A,Artist,Album,4,Rock,live;rock,2", lines[1])
}

func TestBefore_InvalidEnvironment(t *testing.T) {
	path := writeSongs(t, sampleSongs)
	t.Setenv("LOG_FORMAT", "xml")

	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run([]string{"songshelf", "--songs", path, "list"})

	assert.ErrorContains(t, err, "LOG_FORMAT")
}
