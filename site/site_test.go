package site

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"roadline/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal("failed to connect database")
	}

	db.AutoMigrate(&models.BlogPost{}, &models.Review{}, &models.Vehicle{},
		&models.Benefit{}, &models.BenefitStats{}, &models.SiteSettings{})
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.LoadHTMLGlob("views/*.html")

	module := NewSiteModule(db)
	module.RegisterRoutes(router)
	return router
}

func doGet(router *gin.Engine, url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHomePage(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	db.Create(&models.SiteSettings{ID: 1, Phone: "+7 900 000-00-00", Email: "info@example.com", CompanyName: "Roadline"})
	db.Create(&models.Vehicle{Class: "business", Brand: "Mercedes", Model: "E-Class", Year: 2023, Seats: 4, IsActive: true})
	db.Create(&models.Vehicle{Class: "vip", Brand: "Hidden", Model: "Car", Year: 2023, Seats: 4, IsActive: false})
	db.Create(&models.Benefit{Title: "Punctual", Description: "Always on time", Icon: "Clock", Order: 1})
	db.Create(&models.Review{CustomerName: "Anna", Rating: 5, Comment: "Great ride", IsPublished: true})

	w := doGet(router, "/")
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Roadline")
	assert.Contains(t, body, "Mercedes E-Class")
	assert.NotContains(t, body, "Hidden")
	assert.Contains(t, body, "Punctual")
	assert.Contains(t, body, "Great ride")
	// no stats row saved, the default counters render
	assert.Contains(t, body, "5000+")
}

func TestBlogIndex_PublishedOnly(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	now := time.Now()
	db.Create(&models.BlogPost{Title: "Live post", Slug: "live-post", IsPublished: true, PublishedAt: &now})
	db.Create(&models.BlogPost{Title: "Draft post", Slug: "draft-post", IsPublished: false})

	w := doGet(router, "/blog")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Live post")
	assert.NotContains(t, w.Body.String(), "Draft post")
}

func TestBlogPost_RendersMarkdown(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	now := time.Now()
	db.Create(&models.BlogPost{
		Title:       "Markdown post",
		Slug:        "markdown-post",
		Content:     "# Heading\n\nSome **bold** text.",
		IsPublished: true,
		PublishedAt: &now,
	})

	w := doGet(router, "/blog/markdown-post")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1")
	assert.Contains(t, w.Body.String(), "<strong>bold</strong>")
}

func TestBlogPost_DraftIsHidden(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	db.Create(&models.BlogPost{Title: "Draft", Slug: "draft", IsPublished: false})

	w := doGet(router, "/blog/draft")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlogPost_NotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	w := doGet(router, "/blog/no-such-post")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContact_MissingFields(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("POST", "/api/contact", bytes.NewBufferString(`{"name":"Anna"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContact_AcceptedWithoutMailConfig(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_FROM", "")

	req, _ := http.NewRequest("POST", "/api/contact",
		bytes.NewBufferString(`{"name":"Anna","phone":"+7 900 000-00-00","message":"Airport transfer"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
