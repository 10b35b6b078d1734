package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixdesk/fixdesk/internal/shared/biztime"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func TestLocalFileStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalFileStore(dir, "uploads", 1024)
	require.NoError(t, err)

	restore := biztime.SetClock(func() time.Time { return time.UnixMilli(1700000000000) })
	defer restore()

	tests := []struct {
		name     string
		filename string
		content  []byte
		wantURL  string
		wantErr  error
	}{
		{name: "png", filename: "kitchen sink.png", content: pngHeader, wantURL: "/uploads/1700000000000-user-1-kitchen_sink.png"},
		{name: "jpeg with wrong extension", filename: "photo.png", content: jpegHeader, wantURL: "/uploads/1700000000000-user-1-photo.jpg"},
		{name: "path traversal", filename: "../../etc/passwd.jpg", content: jpegHeader, wantURL: "/uploads/1700000000000-user-1-passwd.jpg"},
		{name: "empty name", filename: "", content: pngHeader, wantURL: "/uploads/1700000000000-user-1-image.png"},
		{name: "not an image", filename: "notes.png", content: []byte("just some text"), wantErr: ErrUnsupportedType},
		{name: "gif", filename: "anim.gif", content: []byte("GIF89a\x01\x00\x01\x00"), wantErr: ErrUnsupportedType},
		{name: "too large", filename: "big.png", content: append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2048)...), wantErr: ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := store.Save(context.Background(), "user-1", tt.filename, bytes.NewReader(tt.content))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, url)

			stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
			require.NoError(t, err)
			assert.Equal(t, tt.content, stored)

			require.NoError(t, store.Remove(url))
		})
	}
}

func TestLocalFileStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalFileStore(dir, "/uploads/", 1024)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "u", "a.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)

	require.NoError(t, store.Remove(url))
	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Remove(url), "second removal is a no-op")
	assert.NoError(t, store.Remove("https://example.com/x.png"))
	assert.NoError(t, store.Remove("/uploads/../config.yaml"))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "a_b_c.png", SanitizeName("a b/c.png"))
	assert.Equal(t, "user-1", SanitizeName("user-1"))
	assert.Equal(t, "_", SanitizeName("äöü"))
}
