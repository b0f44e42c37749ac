package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return &Store{
		path: filepath.Join(t.TempDir(), "prefs.json"),
		log:  zap.NewNop(),
	}
}

func TestLoad_MissingFileReturnsEmptyObject(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Load()
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(doc))
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	in := json.RawMessage(`{"theme":"dark","orders":{"columns":["title","status"]}}`)
	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)
	assert.JSONEq(t, string(in), string(out))
}

func TestSave_RejectsInvalidDocument(t *testing.T) {
	store := newTestStore(t)

	assert.Error(t, store.Save(json.RawMessage(`{"theme":`)))
	assert.Error(t, store.Save(json.RawMessage(`[1,2,3]`)))

	// Nothing was written.
	_, err := os.Stat(store.path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_CorruptFileResets(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0o644))

	doc, err := store.Load()
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(doc))
}
