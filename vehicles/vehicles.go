package vehicles

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

// vehicleClasses is the closed set of fleet classes the booking form knows.
var vehicleClasses = map[string]bool{
	"standard": true,
	"comfort":  true,
	"business": true,
	"vip":      true,
	"minivan":  true,
}

type VehiclesModule struct {
	db *gorm.DB
}

func NewVehiclesModule(db *gorm.DB) *VehiclesModule {
	return &VehiclesModule{db: db}
}

func (v *VehiclesModule) RegisterRoutes(router *gin.Engine, requireAuth gin.HandlerFunc) {
	router.GET("/api/vehicles", v.list)
	router.POST("/api/vehicles", requireAuth, v.create)
	router.PUT("/api/vehicles/:id", requireAuth, v.update)
	router.DELETE("/api/vehicles/:id", requireAuth, v.delete)
}

type vehicleRequest struct {
	Class       *string         `json:"class"`
	Brand       *string         `json:"brand"`
	Model       *string         `json:"model"`
	Year        *common.FlexInt `json:"year"`
	Seats       *common.FlexInt `json:"seats"`
	Description *string         `json:"description"`
	ImageURL    *string         `json:"imageUrl"`
	Amenities   *string         `json:"amenities"`
	IsActive    *bool           `json:"isActive"`
}

func (v *VehiclesModule) list(c *gin.Context) {
	var fleet []models.Vehicle
	if err := v.db.Order("id ASC").Find(&fleet).Error; err != nil {
		apperrors.Respond(c, apperrors.NewStorageError("failed to fetch vehicles", err))
		return
	}
	c.JSON(http.StatusOK, fleet)
}

func (v *VehiclesModule) create(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid request body"))
		return
	}

	vehicle, err := v.createVehicle(req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	v.invalidatePages()
	c.JSON(http.StatusCreated, gin.H{"message": "vehicle created", "vehicle": vehicle})
}

func (v *VehiclesModule) createVehicle(req vehicleRequest) (*models.Vehicle, error) {
	if req.Class == nil || strings.TrimSpace(*req.Class) == "" ||
		req.Brand == nil || strings.TrimSpace(*req.Brand) == "" ||
		req.Model == nil || strings.TrimSpace(*req.Model) == "" ||
		req.Year == nil || req.Seats == nil {
		return nil, apperrors.NewValidationError("missing required fields: class, brand, model, year, seats")
	}
	if !vehicleClasses[*req.Class] {
		return nil, apperrors.NewValidationError("unknown vehicle class: " + *req.Class)
	}

	now := time.Now()
	vehicle := models.Vehicle{
		Class:       *req.Class,
		Brand:       *req.Brand,
		Model:       *req.Model,
		Year:        req.Year.Int(),
		Seats:       req.Seats.Int(),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Amenities:   req.Amenities,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		vehicle.IsActive = *req.IsActive
	}

	if err := v.db.Create(&vehicle).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to create vehicle", err)
	}
	return &vehicle, nil
}

func (v *VehiclesModule) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid vehicle ID"))
		return
	}

	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid request body"))
		return
	}

	vehicle, updateErr := v.updateVehicle(id, req)
	if updateErr != nil {
		apperrors.Respond(c, updateErr)
		return
	}

	v.invalidatePages()
	c.JSON(http.StatusOK, gin.H{"message": "vehicle updated", "vehicle": vehicle})
}

func (v *VehiclesModule) updateVehicle(id int, req vehicleRequest) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := v.db.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("vehicle not found")
		}
		return nil, apperrors.NewStorageError("failed to load vehicle", err)
	}

	if req.Class != nil {
		if !vehicleClasses[*req.Class] {
			return nil, apperrors.NewValidationError("unknown vehicle class: " + *req.Class)
		}
		vehicle.Class = *req.Class
	}
	if req.Brand != nil {
		vehicle.Brand = *req.Brand
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = req.Year.Int()
	}
	if req.Seats != nil {
		vehicle.Seats = req.Seats.Int()
	}
	if req.Description != nil {
		vehicle.Description = req.Description
	}
	if req.ImageURL != nil {
		vehicle.ImageURL = req.ImageURL
	}
	if req.Amenities != nil {
		vehicle.Amenities = req.Amenities
	}
	if req.IsActive != nil {
		vehicle.IsActive = *req.IsActive
	}

	vehicle.UpdatedAt = time.Now()
	if err := v.db.Save(&vehicle).Error; err != nil {
		return nil, apperrors.NewStorageError("failed to update vehicle", err)
	}
	return &vehicle, nil
}

func (v *VehiclesModule) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("invalid vehicle ID"))
		return
	}

	result := v.db.Delete(&models.Vehicle{}, id)
	if result.Error != nil {
		apperrors.Respond(c, apperrors.NewStorageError("failed to delete vehicle", result.Error))
		return
	}
	if result.RowsAffected == 0 {
		apperrors.Respond(c, apperrors.NewNotFoundError("vehicle not found"))
		return
	}

	v.invalidatePages()
	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}

// Fleet changes show up on the cached home page render.
func (v *VehiclesModule) invalidatePages() {
	cache.ClearPage("/")
}
