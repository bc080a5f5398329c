package uploads

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	root := t.TempDir()
	storage := NewStorage(root, "/public/uploads")

	url, err := storage.Store("blog", "my-post", "photo.png", []byte("data"))
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^/public/uploads/blog/my-post-\d+\.png$`), url)

	rel := filepath.FromSlash(url[len("/public/uploads/"):])
	content, err := os.ReadFile(filepath.Join(root, rel))
	assert.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestStore_DefaultExtension(t *testing.T) {
	root := t.TempDir()
	storage := NewStorage(root, "/public/uploads")

	url, err := storage.Store("blog", "my-post", "no-extension", []byte("data"))
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`\.jpg$`), url)
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	storage := NewStorage(root, "/public/uploads")

	url, err := storage.Store("blog", "gone", "img.jpg", []byte("data"))
	assert.NoError(t, err)

	assert.NoError(t, storage.Remove(url))

	rel := filepath.FromSlash(url[len("/public/uploads/"):])
	_, statErr := os.Stat(filepath.Join(root, rel))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRemove_MissingFile(t *testing.T) {
	storage := NewStorage(t.TempDir(), "/public/uploads")
	assert.NoError(t, storage.Remove("/public/uploads/blog/never-existed.jpg"))
}

func TestRemove_ForeignURL(t *testing.T) {
	storage := NewStorage(t.TempDir(), "/public/uploads")
	assert.NoError(t, storage.Remove("https://elsewhere.example/image.jpg"))
}

func TestRemove_TraversalIgnored(t *testing.T) {
	root := t.TempDir()
	storage := NewStorage(filepath.Join(root, "uploads"), "/public/uploads")

	outside := filepath.Join(root, "secret.txt")
	assert.NoError(t, os.WriteFile(outside, []byte("keep"), 0644))

	assert.NoError(t, storage.Remove("/public/uploads/../secret.txt"))

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}
