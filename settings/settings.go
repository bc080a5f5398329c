package settings

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"roadline/apperrors"
	"roadline/cache"
	"roadline/models"
)

type SettingsModule struct {
	db *gorm.DB
}

func NewSettingsModule(db *gorm.DB) *SettingsModule {
	return &SettingsModule{db: db}
}

func (s *SettingsModule) RegisterRoutes(router *gin.Engine, requireAuth gin.HandlerFunc) {
	router.GET("/api/settings", s.get)
	router.PUT("/api/settings", requireAuth, s.update)
}

func (s *SettingsModule) get(c *gin.Context) {
	site, err := Load(s.db)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": site})
}

// Load returns the settings singleton; before the first save callers get an
// empty record. The public pages read the contact block through here too.
func Load(db *gorm.DB) (*models.SiteSettings, error) {
	var site models.SiteSettings
	err := db.First(&site, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.SiteSettings{ID: 1}, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to fetch settings", err)
	}
	return &site, nil
}

type settingsRequest struct {
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	WorkingHours  string `json:"workingHours"`
	CompanyName   string `json:"companyName"`
	CompanyDesc   string `json:"companyDesc"`
	InstagramLink string `json:"instagramLink"`
	TelegramLink  string `json:"telegramLink"`
	WhatsappLink  string `json:"whatsappLink"`
}

// update replaces the whole record; the settings form always submits the
// complete field set.
func (s *SettingsModule) update(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Phone) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.CompanyName) == "" {
		apperrors.Respond(c, apperrors.NewValidationError("missing required fields: phone, email, companyName"))
		return
	}

	site := models.SiteSettings{
		ID:            1,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		WorkingHours:  req.WorkingHours,
		CompanyName:   req.CompanyName,
		CompanyDesc:   req.CompanyDesc,
		InstagramLink: req.InstagramLink,
		TelegramLink:  req.TelegramLink,
		WhatsappLink:  req.WhatsappLink,
		UpdatedAt:     time.Now(),
	}
	if err := s.db.Save(&site).Error; err != nil {
		apperrors.Respond(c, apperrors.NewStorageError("failed to update settings", err))
		return
	}

	cache.ClearAll()
	c.JSON(http.StatusOK, gin.H{"settings": site})
}
