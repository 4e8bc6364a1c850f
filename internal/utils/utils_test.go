package utils_test

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songshelf/internal/utils"
)

type row struct {
	Title string   `csv:"title"`
	Tags  []string `csv:"tags"`
	Score float64
}

func TestStructToCsvHeader(t *testing.T) {
	assert.Equal(t, []string{"title", "tags", "Score"}, utils.StructToCsvHeader(reflect.TypeOf(row{})))
	assert.Equal(t, []string{"title", "tags", "Score"}, utils.StructToCsvHeader(reflect.TypeOf(&row{})))
}

func TestWriteCsv(t *testing.T) {
	var buf bytes.Buffer
	rows := []row{
		{Title: "One", Tags: []string{"a", "b"}, Score: 4.5},
		{Title: "Two, the sequel", Score: 5},
	}

	err := utils.WriteCsv(&buf, []string{"title", "tags", "Score"}, rows)

	require.NoError(t, err)
	assert.Equal(t, "title,tags,Score\nOne,a;b,4.5\n\"Two, the sequel\",,5\n", buf.String())
}

func TestWriteCsv_SkipsUnknownColumnsAndAcceptsPointers(t *testing.T) {
	var buf bytes.Buffer

	err := utils.WriteCsv(&buf, []string{"title"}, []*row{{Title: "Only"}})

	require.NoError(t, err)
	assert.Equal(t, "title\nOnly\n", buf.String())
}

func TestWriteCsv_RejectsNonStructs(t *testing.T) {
	var buf bytes.Buffer
	err := utils.WriteCsv(&buf, []string{"x"}, []int{1})
	assert.Error(t, err)
}

func TestWriteToCsvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, utils.WriteToCsvFile(path, []string{"title"}, []row{{Title: "A"}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title\nA\n", string(b))
}

func TestGenerateState(t *testing.T) {
	a, err := utils.GenerateState()
	require.NoError(t, err)
	b, err := utils.GenerateState()
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}
