package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Dir is the directory rendered pages are cached in. Overridable in tests.
var Dir = filepath.Join("cache", "pages")

// PagePath returns the cache file path for a public page, keyed by its
// request path.
func PagePath(path string) string {
	hash := xxhash.Sum64String(path)
	name := sanitize(path)
	return filepath.Join(Dir, fmt.Sprintf("%s_%016x.html", name, hash))
}

func sanitize(path string) string {
	name := strings.Trim(path, "/")
	if name == "" {
		name = "index"
	}
	return strings.ReplaceAll(name, "/", "_")
}

// WritePage stores rendered HTML for a page.
func WritePage(path, html string) error {
	if err := os.MkdirAll(Dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(PagePath(path), []byte(html), 0644)
}

// ReadPage returns cached HTML for a page unless it is missing or older
// than maxAge.
func ReadPage(path string, maxAge time.Duration) (string, bool) {
	cachePath := PagePath(path)

	info, err := os.Stat(cachePath)
	if err != nil {
		return "", false
	}
	if time.Since(info.ModTime()) > maxAge {
		return "", false
	}

	content, err := os.ReadFile(cachePath)
	if err != nil {
		return "", false
	}
	return string(content), true
}

// ClearPage removes the cached render for one page. Missing files are fine.
func ClearPage(path string) error {
	err := os.Remove(PagePath(path))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ClearAll drops every cached page. Used when a write invalidates more than
// one page (settings, benefits).
func ClearAll() error {
	return os.RemoveAll(Dir)
}

// ClearOld removes cached pages older than maxAge. Called once at startup
// to sweep leftovers from previous runs.
func ClearOld(maxAge time.Duration) error {
	return filepath.Walk(Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			os.Remove(path)
		}
		return nil
	})
}
