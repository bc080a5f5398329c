package benefits

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"roadline/apperrors"
	"roadline/cache"
	"roadline/models"
)

// benefitIcons is the closed set of icon names the admin picker offers.
var benefitIcons = map[string]bool{
	"Shield": true, "Clock": true, "Truck": true, "CreditCard": true,
	"ThumbsUp": true, "Headphones": true, "User": true, "Map": true,
	"Star": true, "Award": true, "Heart": true, "Wifi": true,
	"Coffee": true, "Zap": true, "Phone": true,
}

// defaultStats are the display counters shown before anyone has saved the
// stats singleton.
var defaultStats = models.BenefitStats{
	ID:         1,
	Clients:    "5000+",
	Directions: "15+",
	Experience: "10+",
	Support:    "24/7",
}

type BenefitsModule struct {
	db *gorm.DB
}

func NewBenefitsModule(db *gorm.DB) *BenefitsModule {
	return &BenefitsModule{db: db}
}

func (b *BenefitsModule) RegisterRoutes(router *gin.Engine, requireAuth gin.HandlerFunc) {
	router.GET("/api/benefits", b.list)
	router.POST("/api/benefits", requireAuth, b.create)
	router.PUT("/api/benefits", requireAuth, b.update)
	router.POST("/api/benefits/swap", requireAuth, b.swap)
	router.DELETE("/api/benefits/:id", requireAuth, b.delete)
}

// benefitRequest carries both update modes, discriminated by Type:
// "benefit" patches one benefit's content, "stats" replaces the stats
// singleton wholesale.
type benefitRequest struct {
	Type        string  `json:"type"`
	ID          int     `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Clients     string  `json:"clients"`
	Directions  string  `json:"directions"`
	Experience  string  `json:"experience"`
	Support     string  `json:"support"`
}

func (b *BenefitsModule) list(c *gin.Context) {
	var items []models.Benefit
	if err := b.db.Order("display_order ASC").Find(&items).Error; err != nil {
		apperrors.Respond(c, apperrors.NewStorageError("failed to fetch benefits", err))
		return
	}

	stats, err := LoadStats(b.db)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"benefits": items, "stats": stats})
}

// LoadStats returns the stats singleton, synthesizing the defaults when no
// row has been saved yet. The public home page reads through here too.
func LoadStats(db *gorm.DB) (*models.BenefitStats, error) {
	var stats models.BenefitStats
	err := db.First(&stats, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s := defaultStats
		return &s, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to fetch stats", err)
	}
	return &stats, nil
}

func (b *BenefitsModule) create(c *gin.Context) {
	var req benefitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid request body"))
		return
	}

	benefit, err := b.createBenefit(req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	cache.ClearPage("/")
	c.JSON(http.StatusCreated, gin.H{"benefit": benefit})
}

func (b *BenefitsModule) createBenefit(req benefitRequest) (*models.Benefit, error) {
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" ||
		req.Description == nil || strings.TrimSpace(*req.Description) == "" ||
		req.Icon == nil || *req.Icon == "" {
		return nil, apperrors.NewValidationError("missing required fields: title, description, icon")
	}
	if !benefitIcons[*req.Icon] {
		return nil, apperrors.NewValidationError("unknown icon: " + *req.Icon)
	}

	// new entries append at the end of the list
	var maxOrder int
	row := b.db.Model(&models.Benefit{}).Select("COALESCE(MAX(display_order), 0)").Row()
	if err := row.Scan(&maxOrder); err != nil {
		return nil, apperrors.NewStorageError("failed to compute benefit order", err)
	}

	benefit := models.Benefit{
		Title:       *req.Title,
		Description: *req.Description,
		Icon:        *req.Icon,
		Order:       maxOrder + 1,
	}
	if err := b.db.Create(&benefit).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to create benefit", err)
	}
	return &benefit, nil
}

func (b *BenefitsModule) update(c *gin.Context) {
	var req benefitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid request body"))
		return
	}

	switch req.Type {
	case "benefit":
		benefit, err := b.updateBenefit(req)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		cache.ClearPage("/")
		c.JSON(http.StatusOK, gin.H{"benefit": benefit})
	case "stats":
		stats, err := b.replaceStats(req)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		cache.ClearPage("/")
		c.JSON(http.StatusOK, gin.H{"stats": stats})
	default:
		apperrors.Respond(c, apperrors.NewValidationError("unknown update type: "+req.Type))
	}
}

func (b *BenefitsModule) updateBenefit(req benefitRequest) (*models.Benefit, error) {
	var benefit models.Benefit
	if err := b.db.First(&benefit, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("benefit not found")
		}
		return nil, apperrors.NewStorageError("failed to load benefit", err)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title is required")
		}
		benefit.Title = title
	}
	if req.Description != nil {
		benefit.Description = *req.Description
	}
	if req.Icon != nil {
		if !benefitIcons[*req.Icon] {
			return nil, apperrors.NewValidationError("unknown icon: " + *req.Icon)
		}
		benefit.Icon = *req.Icon
	}

	if err := b.db.Save(&benefit).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to update benefit", err)
	}
	return &benefit, nil
}

// replaceStats overwrites the whole singleton; the stats dialog always
// submits all four counters.
func (b *BenefitsModule) replaceStats(req benefitRequest) (*models.BenefitStats, error) {
	if strings.TrimSpace(req.Clients) == "" || strings.TrimSpace(req.Directions) == "" ||
		strings.TrimSpace(req.Experience) == "" || strings.TrimSpace(req.Support) == "" {
		return nil, apperrors.NewValidationError("all stats fields are required")
	}

	stats := models.BenefitStats{
		ID:         1,
		Clients:    req.Clients,
		Directions: req.Directions,
		Experience: req.Experience,
		Support:    req.Support,
	}
	if err := b.db.Save(&stats).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to update stats", err)
	}
	return &stats, nil
}

type swapRequest struct {
	FirstID  int `json:"firstId"`
	SecondID int `json:"secondId"`
}

// swap exchanges the display order of two benefits in a single transaction,
// so a half-applied move can never leave two rows with the same rank.
func (b *BenefitsModule) swap(c *gin.Context) {
	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid request body"))
		return
	}
	if req.FirstID == req.SecondID {
		apperrors.Respond(c, apperrors.NewValidationError("cannot swap a benefit with itself"))
		return
	}

	var first, second models.Benefit
	err := b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&first, req.FirstID).Error; err != nil {
			return err
		}
		if err := tx.First(&second, req.SecondID).Error; err != nil {
			return err
		}

		first.Order, second.Order = second.Order, first.Order

		if err := tx.Save(&first).Error; err != nil {
			return err
		}
		return tx.Save(&second).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.NewNotFoundError("benefit not found"))
			return
		}
		apperrors.Respond(c, apperrors.NewStorageError("failed to swap benefits", err))
		return
	}

	cache.ClearPage("/")
	c.JSON(http.StatusOK, gin.H{"benefits": []models.Benefit{first, second}})
}

// delete removes a benefit without renumbering the rest; the list keeps
// working with gaps in the order sequence.
func (b *BenefitsModule) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid benefit ID"))
		return
	}

	result := b.db.Delete(&models.Benefit{}, id)
	if result.Error != nil {
		apperrors.Respond(c, apperrors.NewStorageError("failed to delete benefit", result.Error))
		return
	}
	if result.RowsAffected == 0 {
		apperrors.Respond(c, apperrors.NewNotFoundError("benefit not found"))
		return
	}

	cache.ClearPage("/")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
