package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalStore(t *testing.T) *LocalImageStore {
	t.Helper()
	store, err := NewLocalImageStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestLocalImageStoreSave(t *testing.T) {
	store := newLocalStore(t)
	data := []byte("fake png bytes")

	url, err := store.Save(context.Background(), bytes.NewReader(data), "photo.PNG", "image/png", int64(len(data)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, UploadURLPrefix))
	name := strings.TrimPrefix(url, UploadURLPrefix)
	assert.Regexp(t, regexp.MustCompile(`^recipe-\d+-[0-9a-f]{8}\.png$`), name)

	written, err := os.ReadFile(filepath.Join(store.Dir(), name))
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestLocalImageStoreRejectsNonImage(t *testing.T) {
	store := newLocalStore(t)

	_, err := store.Save(context.Background(), strings.NewReader("%PDF-"), "doc.pdf", "application/pdf", 5)
	var uErr *UploadError
	assert.ErrorAs(t, err, &uErr)

	entries, readErr := os.ReadDir(store.Dir())
	require.NoError(t, readErr)
	assert.Empty(t, entries, "rejected upload must not persist a file")
}

func TestLocalImageStoreRejectsOversize(t *testing.T) {
	store := newLocalStore(t)

	_, err := store.Save(context.Background(), bytes.NewReader(nil), "big.jpg", "image/jpeg", MaxImageBytes+1)
	var uErr *UploadError
	assert.ErrorAs(t, err, &uErr)
}

func TestLocalImageStoreRejectsLyingSizeHeader(t *testing.T) {
	store := newLocalStore(t)

	big := bytes.Repeat([]byte("x"), MaxImageBytes+10)
	_, err := store.Save(context.Background(), bytes.NewReader(big), "big.jpg", "image/jpeg", 100)
	var uErr *UploadError
	assert.ErrorAs(t, err, &uErr)

	entries, readErr := os.ReadDir(store.Dir())
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestLocalImageStoreDelete(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	url, err := store.Save(ctx, strings.NewReader("bytes"), "a.jpg", "image/jpeg", 5)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, url))

	// The file is gone, a second delete reports the failure to the caller.
	assert.Error(t, store.Delete(ctx, url))
}

func TestLocalImageStoreDeleteIgnoresTraversal(t *testing.T) {
	store := newLocalStore(t)

	outside := filepath.Join(filepath.Dir(store.Dir()), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	_ = store.Delete(context.Background(), UploadURLPrefix+"../victim.txt")

	_, err := os.Stat(outside)
	assert.NoError(t, err, "delete must not escape the uploads directory")
}

func TestImageFileNameKeepsExtension(t *testing.T) {
	name := imageFileName("Photo De Plat.JPEG")
	assert.Regexp(t, regexp.MustCompile(`^recipe-\d+-[0-9a-f]{8}\.jpeg$`), name)

	// Two uploads in the same millisecond still get distinct names.
	assert.NotEqual(t, imageFileName("a.png"), imageFileName("a.png"))
}
