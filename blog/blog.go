package blog

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"roadline/apperrors"
	"roadline/cache"
	"roadline/models"
	"roadline/uploads"
)

type BlogModule struct {
	db      *gorm.DB
	storage *uploads.Storage
}

func NewBlogModule(db *gorm.DB, storage *uploads.Storage) *BlogModule {
	return &BlogModule{db: db, storage: storage}
}

func (b *BlogModule) RegisterRoutes(router *gin.Engine, requireAuth gin.HandlerFunc) {
	router.GET("/api/blog", b.list)
	router.GET("/api/blog/featured", b.featured)
	router.POST("/api/blog", requireAuth, b.create)
	router.PUT("/api/blog/:id", requireAuth, b.update)
	router.DELETE("/api/blog/:id", requireAuth, b.delete)
}

func (b *BlogModule) list(c *gin.Context) {
	var posts []models.BlogPost
	if err := b.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		apperrors.Respond(c, apperrors.NewStorageError("failed to fetch blog posts", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogPosts": posts})
}

// featured returns the published posts shown on the home page, newest
// publication first, capped at three.
func (b *BlogModule) featured(c *gin.Context) {
	var posts []models.BlogPost
	err := b.db.Where("is_published = ?", true).
		Order("published_at DESC").
		Limit(3).
		Find(&posts).Error
	if err != nil {
		apperrors.Respond(c, apperrors.NewStorageError("failed to fetch blog posts", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogPosts": posts})
}

func (b *BlogModule) create(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	excerpt := c.PostForm("excerpt")
	isPublished := c.PostForm("isPublished") == "true"

	post, err := b.createPost(title, content, excerpt, isPublished, formImage(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	b.invalidatePages(post.Slug)
	c.JSON(http.StatusOK, gin.H{"blogPost": post})
}

func (b *BlogModule) createPost(title, content, excerpt string, isPublished bool, image *multipart.FileHeader) (*models.BlogPost, error) {
	if title == "" {
		return nil, apperrors.NewValidationError("title is required")
	}

	now := time.Now()
	post := models.BlogPost{
		Title:       title,
		Slug:        generateSlug(title),
		Content:     content,
		Excerpt:     excerpt,
		IsPublished: isPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if isPublished {
		post.PublishedAt = &now
	}

	if image != nil {
		url, err := b.storeImage(image, post.Slug)
		if err != nil {
			return nil, err
		}
		post.ImageURL = &url
	}

	if err := b.db.Create(&post).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to create blog post", err)
	}
	return &post, nil
}

func (b *BlogModule) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid post ID"))
		return
	}

	post, updateErr := b.updatePost(c, id)
	if updateErr != nil {
		apperrors.Respond(c, updateErr)
		return
	}

	b.invalidatePages(post.Slug)
	c.JSON(http.StatusOK, gin.H{"blogPost": post})
}

// updatePost applies a sparse patch: multipart submissions only carry the
// fields that changed, so absent fields keep their stored values. The slug
// is never recomputed, even when the title changes.
func (b *BlogModule) updatePost(c *gin.Context, id int) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := b.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("blog post not found")
		}
		return nil, apperrors.NewStorageError("failed to load blog post", err)
	}

	if title, ok := c.GetPostForm("title"); ok {
		title = strings.TrimSpace(title)
		if title == "" {
			return nil, apperrors.NewValidationError("title is required")
		}
		post.Title = title
	}
	if content, ok := c.GetPostForm("content"); ok {
		post.Content = content
	}
	if excerpt, ok := c.GetPostForm("excerpt"); ok {
		post.Excerpt = excerpt
	}
	if published, ok := c.GetPostForm("isPublished"); ok {
		post.IsPublished = published == "true"
		// publishedAt is set once, on the first publish, and never cleared
		if post.IsPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}

	oldImage := post.ImageURL
	image := formImage(c)
	if image != nil {
		url, err := b.storeImage(image, post.Slug)
		if err != nil {
			return nil, err
		}
		post.ImageURL = &url
	}

	post.UpdatedAt = time.Now()
	if err := b.db.Save(&post).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to update blog post", err)
	}

	// The old file goes last: a crash here leaks a file instead of leaving
	// the record pointing at nothing.
	if image != nil && oldImage != nil {
		b.storage.Remove(*oldImage)
	}

	return &post, nil
}

func (b *BlogModule) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid post ID"))
		return
	}

	var post models.BlogPost
	if err := b.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.NewNotFoundError("blog post not found"))
			return
		}
		apperrors.Respond(c, apperrors.NewStorageError("failed to load blog post", err))
		return
	}

	if err := b.db.Delete(&post).Error; err != nil {
		apperrors.Respond(c, apperrors.NewStorageError("failed to delete blog post", err))
		return
	}

	if post.ImageURL != nil {
		b.storage.Remove(*post.ImageURL)
	}

	b.invalidatePages(post.Slug)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (b *BlogModule) storeImage(image *multipart.FileHeader, slug string) (string, error) {
	file, err := image.Open()
	if err != nil {
		return "", apperrors.NewStorageError("failed to read uploaded image", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", apperrors.NewStorageError("failed to read uploaded image", err)
	}

	url, err := b.storage.Store("blog", slug, image.Filename, data)
	if err != nil {
		return "", apperrors.NewStorageError("failed to store uploaded image", err)
	}
	return url, nil
}

// formImage returns the uploaded image file header, or nil when the form
// has none.
func formImage(c *gin.Context) *multipart.FileHeader {
	header, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return header
}

func (b *BlogModule) invalidatePages(slug string) {
	cache.ClearPage("/")
	cache.ClearPage("/blog")
	cache.ClearPage("/blog/" + slug)
}

// translitMap maps Cyrillic letters to their closest Latin spelling for
// slug generation. Hard and soft signs drop out entirely.
var translitMap = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo", 'ж': "zh",
	'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// generateSlug derives a URL slug from a post title: lower-case, keep word
// characters, whitespace and Cyrillic letters, collapse whitespace runs to
// single hyphens, transliterate, cap at 50 characters. Runs once at
// creation; later title edits leave the slug alone.
func generateSlug(title string) string {
	slug := strings.ToLower(title)

	slug = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		if unicode.IsSpace(r) {
			return r
		}
		if (r >= 'а' && r <= 'я') || r == 'ё' {
			return r
		}
		return -1
	}, slug)

	slug = strings.Join(strings.Fields(slug), "-")

	var out strings.Builder
	for _, r := range slug {
		if latin, ok := translitMap[r]; ok {
			out.WriteString(latin)
		} else {
			out.WriteRune(r)
		}
	}
	slug = out.String()

	// ASCII by now, safe to cut on bytes
	if len(slug) > 50 {
		slug = slug[:50]
	}
	return slug
}
