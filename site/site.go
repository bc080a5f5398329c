package site

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"

	"roadline/benefits"
	"roadline/email"
	"roadline/models"
	"roadline/settings"
)

type SiteModule struct {
	db *gorm.DB
}

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // post content may carry raw HTML
	),
)

func NewSiteModule(db *gorm.DB) *SiteModule {
	return &SiteModule{db: db}
}

func (s *SiteModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", s.index)
	router.GET("/blog", s.blogIndex)
	router.GET("/blog/:slug", s.post)
	router.POST("/api/contact", s.contact)
}

// contact forwards a booking request from the public form to the company
// mailbox from the site settings. Without SMTP configuration the request is
// accepted and logged so the form keeps working in development.
func (s *SiteModule) contact(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields: name, phone"})
		return
	}

	site, err := settings.Load(s.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}

	svc := email.NewEmailService()
	if !svc.Configured() || site.Email == "" {
		slog.Warn("contact request received but mail is not configured", "name", req.Name)
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if err := svc.SendContactRequest(site.Email, req.Name, req.Phone, req.Message); err != nil {
		slog.Error("sending contact request", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send contact request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// index renders the home page: the active fleet, the benefits section with
// its counters, published reviews, the three latest published posts and the
// contact block.
func (s *SiteModule) index(c *gin.Context) {
	var fleet []models.Vehicle
	if err := s.db.Where("is_active = ?", true).Order("id ASC").Find(&fleet).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load page"})
		return
	}

	var perks []models.Benefit
	if err := s.db.Order("display_order ASC").Find(&perks).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load page"})
		return
	}

	stats, err := benefits.LoadStats(s.db)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load page"})
		return
	}

	var reviews []models.Review
	if err := s.db.Where("is_published = ?", true).Order("id DESC").Find(&reviews).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load page"})
		return
	}

	var posts []models.BlogPost
	err = s.db.Where("is_published = ?", true).
		Order("published_at DESC").
		Limit(3).
		Find(&posts).Error
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load page"})
		return
	}

	site, err := settings.Load(s.db)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load page"})
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"vehicles": fleet,
		"benefits": perks,
		"stats":    stats,
		"reviews":  reviews,
		"posts":    posts,
		"settings": site,
	})
}

func (s *SiteModule) blogIndex(c *gin.Context) {
	var posts []models.BlogPost
	err := s.db.Where("is_published = ?", true).
		Order("published_at DESC").
		Find(&posts).Error
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load page"})
		return
	}

	site, err := settings.Load(s.db)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load page"})
		return
	}

	c.HTML(http.StatusOK, "blog_index.html", gin.H{
		"posts":    posts,
		"settings": site,
	})
}

func (s *SiteModule) post(c *gin.Context) {
	slug := c.Param("slug")

	var post models.BlogPost
	err := s.db.Where("slug = ? AND is_published = ?", slug, true).First(&post).Error
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "post not found"})
		return
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(post.Content), &buf); err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to render post"})
		return
	}

	site, err := settings.Load(s.db)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "failed to load page"})
		return
	}

	c.HTML(http.StatusOK, "blog_post.html", gin.H{
		"post":     post,
		"content":  template.HTML(buf.String()),
		"settings": site,
	})
}
