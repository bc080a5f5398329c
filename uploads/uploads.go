// Package uploads persists admin-supplied images under the public static
// root and maps them to root-relative URLs.
package uploads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Storage struct {
	root    string // filesystem directory, e.g. ./public/uploads
	baseURL string // URL prefix served by the static route, e.g. /public/uploads
}

func NewStorage(root, baseURL string) *Storage {
	return &Storage{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Store writes data under subdir as {baseName}-{epochMillis}.{ext} and
// returns the public URL. The extension comes from originalName, defaulting
// to jpg when it has none.
func (s *Storage) Store(subdir, baseName, originalName string, data []byte) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(originalName), ".")
	if ext == "" {
		ext = "jpg"
	}

	dir := filepath.Join(s.root, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s-%d.%s", baseName, time.Now().UnixMilli(), ext)
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", err
	}

	return s.baseURL + "/" + subdir + "/" + filename, nil
}

// Remove deletes the file a previously returned URL points at. URLs outside
// the storage base and files already gone are ignored.
func (s *Storage) Remove(publicURL string) error {
	rel, ok := strings.CutPrefix(publicURL, s.baseURL+"/")
	if !ok {
		return nil
	}

	// A URL with traversal segments never came from Store.
	clean := filepath.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return nil
	}

	err := os.Remove(filepath.Join(s.root, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
