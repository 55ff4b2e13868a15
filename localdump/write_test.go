package localdump

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSink(t *testing.T) *Sink {
	t.Helper()
	sink, err := NewSink(filepath.Join(t.TempDir(), RootName(time.Date(2024, 1, 31, 15, 45, 2, 0, time.UTC))))
	require.NoError(t, err)
	return sink
}

func TestRootName(t *testing.T) {
	assert.Equal(t, "export_data_20240131_154502", RootName(time.Date(2024, 1, 31, 15, 45, 2, 0, time.UTC)))
}

func TestWriteJSONCreatesDirectoriesAndIndents(t *testing.T) {
	sink := newTestSink(t)

	p, err := sink.WriteJSON(map[string]any{"id": 1}, "some file!.json", "a/b c")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(sink.Root, "a", "b c", "some_file_.json"), p)
	contents, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"id\": 1\n}\n", string(contents))
}

func TestWriteJSONKeepsMarkupReadable(t *testing.T) {
	sink := newTestSink(t)

	p, err := sink.WriteJSON(map[string]any{"content": "<p>Hello & bye</p>"}, "roleplay_1_x.json", "")
	require.NoError(t, err)

	contents, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"content\": \"<p>Hello & bye</p>\"\n}\n", string(contents))
	assert.NotContains(t, string(contents), `\u003c`)
}

func TestWriteJSONAtRoot(t *testing.T) {
	sink := newTestSink(t)

	p, err := sink.WriteJSON([]any{}, "index.json", "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(sink.Root, "index.json"), p)
	contents, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(contents))
}

func TestWriteJSONLastWriteWins(t *testing.T) {
	sink := newTestSink(t)

	_, err := sink.WriteJSON(map[string]any{"first": "a much longer payload than the second one"}, "x.json", "sub")
	require.NoError(t, err)
	p, err := sink.WriteJSON(map[string]any{"second": 2}, "x.json", "sub")
	require.NoError(t, err)

	contents, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"second\": 2\n}\n", string(contents))
	assert.NotContains(t, string(contents), "first")
}

func TestWriteStream(t *testing.T) {
	sink := newTestSink(t)

	p, err := sink.WriteStream(strings.NewReader("JPEGDATA"), "5_Anna.jpg", "characters/5_Anna")
	require.NoError(t, err)

	contents, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "JPEGDATA", string(contents))
}

func TestWriteFailsWhenDirectoryIsAFile(t *testing.T) {
	sink := newTestSink(t)
	require.NoError(t, os.WriteFile(filepath.Join(sink.Root, "blocked"), []byte("x"), 0600))

	_, err := sink.WriteJSON(map[string]any{}, "x.json", "blocked")
	assert.Error(t, err)
}

func TestNewSinkNeedsRoot(t *testing.T) {
	_, err := NewSink("")
	assert.Error(t, err)
}
