package cache

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware serves public pages from the file cache and captures fresh
// renders on a miss. Only successful HTML GET responses are cached.
func Middleware(maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if !isPublicPage(path) {
			c.Next()
			return
		}

		if cached, found := ReadPage(path, maxAge); found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK &&
			strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "text/html") {
			WritePage(path, writer.body.String())
		}
	}
}

// isPublicPage reports whether path is one of the cacheable public renders:
// the home page, the blog index, or a blog post page.
func isPublicPage(path string) bool {
	if path == "/" || path == "/blog" {
		return true
	}
	if rest, ok := strings.CutPrefix(path, "/blog/"); ok {
		return rest != "" && !strings.Contains(rest, "/")
	}
	return false
}
