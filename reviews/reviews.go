package reviews

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"roadline/apperrors"
	"roadline/cache"
	"roadline/common"
	"roadline/models"
)

type ReviewsModule struct {
	db *gorm.DB
}

func NewReviewsModule(db *gorm.DB) *ReviewsModule {
	return &ReviewsModule{db: db}
}

func (r *ReviewsModule) RegisterRoutes(router *gin.Engine, requireAuth gin.HandlerFunc) {
	router.GET("/api/reviews", r.list)
	router.POST("/api/reviews", requireAuth, r.create)
	router.PUT("/api/reviews/:id", requireAuth, r.update)
	router.DELETE("/api/reviews/:id", requireAuth, r.delete)
}

// reviewRequest is a sparse patch: nil pointers mean "leave unchanged" on
// update and "use the default" on create.
type reviewRequest struct {
	CustomerName *string         `json:"customerName"`
	Rating       *common.FlexInt `json:"rating"`
	Comment      *string         `json:"comment"`
	ImageURL     *string         `json:"imageUrl"`
	IsPublished  *bool           `json:"isPublished"`
}

func (r *ReviewsModule) list(c *gin.Context) {
	var reviews []models.Review
	if err := r.db.Order("id DESC").Find(&reviews).Error; err != nil {
		apperrors.Respond(c, apperrors.NewStorageError("failed to fetch reviews", err))
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (r *ReviewsModule) create(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid request body"))
		return
	}

	review, err := r.createReview(req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	cache.ClearPage("/")
	c.JSON(http.StatusCreated, review)
}

func (r *ReviewsModule) createReview(req reviewRequest) (*models.Review, error) {
	if req.CustomerName == nil || strings.TrimSpace(*req.CustomerName) == "" ||
		req.Rating == nil ||
		req.Comment == nil || strings.TrimSpace(*req.Comment) == "" {
		return nil, apperrors.NewValidationError("missing required fields: customerName, rating, comment")
	}

	now := time.Now()
	review := models.Review{
		CustomerName: *req.CustomerName,
		// stored as given, the admin form owns the 1-5 range
		Rating:      req.Rating.Int(),
		Comment:     *req.Comment,
		ImageURL:    req.ImageURL,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsPublished != nil {
		review.IsPublished = *req.IsPublished
	}

	if err := r.db.Create(&review).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to create review", err)
	}
	return &review, nil
}

func (r *ReviewsModule) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid review ID"))
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid request body"))
		return
	}

	review, updateErr := r.updateReview(id, req)
	if updateErr != nil {
		apperrors.Respond(c, updateErr)
		return
	}

	cache.ClearPage("/")
	c.JSON(http.StatusOK, review)
}

func (r *ReviewsModule) updateReview(id int, req reviewRequest) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("review not found")
		}
		return nil, apperrors.NewStorageError("failed to load review", err)
	}

	if req.CustomerName != nil {
		review.CustomerName = *req.CustomerName
	}
	if req.Rating != nil {
		review.Rating = req.Rating.Int()
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.ImageURL != nil {
		review.ImageURL = req.ImageURL
	}
	if req.IsPublished != nil {
		review.IsPublished = *req.IsPublished
	}

	review.UpdatedAt = time.Now()
	if err := r.db.Save(&review).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to update review", err)
	}
	return &review, nil
}

func (r *ReviewsModule) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid review ID"))
		return
	}

	result := r.db.Delete(&models.Review{}, id)
	if result.Error != nil {
		apperrors.Respond(c, apperrors.NewStorageError("failed to delete review", result.Error))
		return
	}
	if result.RowsAffected == 0 {
		apperrors.Respond(c, apperrors.NewNotFoundError("review not found"))
		return
	}

	cache.ClearPage("/")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
