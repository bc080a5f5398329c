package cache

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func useTempDir(t *testing.T) {
	old := Dir
	Dir = filepath.Join(t.TempDir(), "pages")
	t.Cleanup(func() { Dir = old })
}

func TestPagePath(t *testing.T) {
	useTempDir(t)

	assert.Equal(t, PagePath("/"), PagePath("/"))
	assert.NotEqual(t, PagePath("/"), PagePath("/blog"))
	assert.Contains(t, PagePath("/"), "index_")
	assert.Contains(t, PagePath("/blog/privet-mir"), "blog_privet-mir_")
}

func TestWriteAndReadPage(t *testing.T) {
	useTempDir(t)

	assert.NoError(t, WritePage("/blog", "<html>blog</html>"))

	content, found := ReadPage("/blog", time.Minute)
	assert.True(t, found)
	assert.Equal(t, "<html>blog</html>", content)

	_, found = ReadPage("/never-rendered", time.Minute)
	assert.False(t, found)
}

func TestReadPage_Expired(t *testing.T) {
	useTempDir(t)

	assert.NoError(t, WritePage("/", "<html>home</html>"))

	stale := time.Now().Add(-time.Hour)
	assert.NoError(t, os.Chtimes(PagePath("/"), stale, stale))

	_, found := ReadPage("/", time.Minute)
	assert.False(t, found)
}

func TestClearPage(t *testing.T) {
	useTempDir(t)

	WritePage("/", "<html>home</html>")
	WritePage("/blog", "<html>blog</html>")

	assert.NoError(t, ClearPage("/"))

	_, found := ReadPage("/", time.Minute)
	assert.False(t, found)
	_, found = ReadPage("/blog", time.Minute)
	assert.True(t, found)

	// clearing a page that was never cached is fine
	assert.NoError(t, ClearPage("/never-rendered"))
}

func TestClearAll(t *testing.T) {
	useTempDir(t)

	WritePage("/", "a")
	WritePage("/blog", "b")

	assert.NoError(t, ClearAll())

	_, found := ReadPage("/", time.Minute)
	assert.False(t, found)
	_, found = ReadPage("/blog", time.Minute)
	assert.False(t, found)
}

func TestClearOld(t *testing.T) {
	useTempDir(t)

	WritePage("/", "old")
	WritePage("/blog", "fresh")

	stale := time.Now().Add(-2 * time.Hour)
	assert.NoError(t, os.Chtimes(PagePath("/"), stale, stale))

	assert.NoError(t, ClearOld(time.Hour))

	_, found := ReadPage("/", time.Hour)
	assert.False(t, found)
	_, found = ReadPage("/blog", time.Hour)
	assert.True(t, found)
}

func TestClearOld_MissingDir(t *testing.T) {
	useTempDir(t)
	assert.NoError(t, ClearOld(time.Hour))
}

func TestIsPublicPage(t *testing.T) {
	assert.True(t, isPublicPage("/"))
	assert.True(t, isPublicPage("/blog"))
	assert.True(t, isPublicPage("/blog/privet-mir"))
	assert.False(t, isPublicPage("/blog/"))
	assert.False(t, isPublicPage("/blog/a/b"))
	assert.False(t, isPublicPage("/api/blog"))
	assert.False(t, isPublicPage("/public/css/site.css"))
}

func TestMiddleware(t *testing.T) {
	useTempDir(t)
	gin.SetMode(gin.TestMode)

	renders := 0
	router := gin.New()
	router.Use(Middleware(time.Minute))
	router.GET("/", func(c *gin.Context) {
		renders++
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<html>home</html>"))
	})

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, 1, renders)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, "<html>home</html>", w.Body.String())
	assert.Equal(t, 1, renders)
}

func TestMiddleware_SkipsAPIRoutes(t *testing.T) {
	useTempDir(t)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware(time.Minute))
	router.GET("/api/blog", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"blogPosts": []string{}})
	})

	req, _ := http.NewRequest("GET", "/api/blog", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("X-Cache"))

	_, found := ReadPage("/api/blog", time.Minute)
	assert.False(t, found)
}

func TestMiddleware_DoesNotCacheErrors(t *testing.T) {
	useTempDir(t)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Middleware(time.Minute))
	router.GET("/blog/:slug", func(c *gin.Context) {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<html>missing</html>"))
	})

	req, _ := http.NewRequest("GET", "/blog/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	_, found := ReadPage("/blog/ghost", time.Minute)
	assert.False(t, found)
}
