package songfile_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songshelf/internal/playlist"
	"songshelf/internal/songfile"
)

func TestCompressionFor(t *testing.T) {
	tests := map[string]songfile.Compression{
		"songs.txt":     songfile.CompressionNone,
		"songs":         songfile.CompressionNone,
		"songs.txt.gz":  songfile.CompressionGzip,
		"songs.ZST":     songfile.CompressionZstd,
		"songs.zstd":    songfile.CompressionZstd,
		"dir/songs.lz4": songfile.CompressionLZ4,
	}
	for path, want := range tests {
		assert.Equal(t, want, songfile.CompressionFor(path), path)
	}
}

func TestWriteFileReadFile_RoundTrip(t *testing.T) {
	songs := []*playlist.Song{
		playlist.NewSong("One", "Artist", "Album", 4.5, "Rock", []string{"loud", "Guitar"}),
		playlist.NewSong("Two", "Artist", "Album", 3, "Jazz", nil),
	}

	for _, name := range []string{"songs.txt", "songs.txt.gz", "songs.zst", "songs.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			require.NoError(t, songfile.WriteFile(path, songs))
			got, err := songfile.ReadFile(path, songfile.Options{})

			require.NoError(t, err)
			require.Len(t, got, 2)
			for i := range songs {
				assert.Equal(t, songs[i].Format(), got[i].Format())
			}
		})
	}
}

func TestWriteFile_PlainTextIsReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.txt")
	require.NoError(t, songfile.WriteFile(path, []*playlist.Song{
		playlist.NewSong("A", "B", "C", 5, "D", []string{"x", "y"}),
	}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A%%B%%C%%5%%D%%x~~y\n", string(b))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := songfile.ReadFile(filepath.Join(t.TempDir(), "absent.txt"), songfile.Options{})

	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadFile_CorruptCompressedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip at all"), 0o644))

	_, err := songfile.ReadFile(path, songfile.Options{})

	assert.Error(t, err)
}
