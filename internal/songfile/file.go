package songfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"songshelf/internal/playlist"
)

// Compression identifies how a song file is stored on disk
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// CompressionFor picks the compression from the file extension
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// ReadFile loads every song from path, decompressing by extension.
// A missing file is reported as an error wrapping fs.ErrNotExist.
func ReadFile(path string, opts Options) ([]*playlist.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("songfile.ReadFile: %w", err)
	}
	defer f.Close()

	r, closeReader, err := decompressor(f, CompressionFor(path))
	if err != nil {
		return nil, fmt.Errorf("songfile.ReadFile: %s: %w", path, err)
	}
	defer closeReader()

	songs, err := Read(r, opts)
	if err != nil {
		return nil, fmt.Errorf("songfile.ReadFile: %s: %w", path, err)
	}
	opts.logger().Debug("song file read", "path", path, "count", len(songs))
	return songs, nil
}

// WriteFile replaces path with the given songs, compressing by extension
func WriteFile(path string, songs []*playlist.Song) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("songfile.WriteFile: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("songfile.WriteFile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("songfile.WriteFile: %w", cerr)
		}
	}()

	w, err := compressor(f, CompressionFor(path))
	if err != nil {
		return fmt.Errorf("songfile.WriteFile: %w", err)
	}
	if err := Write(w, songs); err != nil {
		_ = w.Close()
		return fmt.Errorf("songfile.WriteFile: %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("songfile.WriteFile: %s: %w", path, err)
	}
	return nil
}

func decompressor(r io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { _ = zr.Close() }, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return r, func() {}, nil
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		return zstd.NewWriter(w)
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nopWriteCloser{w}, nil
	}
}
