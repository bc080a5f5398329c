package admin

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"roadline/models"
)

type AdminModule struct {
	db *gorm.DB
}

func NewAdminModule(db *gorm.DB) *AdminModule {
	return &AdminModule{db: db}
}

func (a *AdminModule) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/login", a.login)
	router.POST("/api/logout", a.logout)
	router.GET("/api/session", a.session)
}

// RequireAuth guards the mutating API routes. The public site and the list
// endpoints stay open.
func (a *AdminModule) RequireAuth(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("user_id")

	if userID == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.Set("user_id", userID)
	c.Next()
}

func (a *AdminModule) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if !checkPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *AdminModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// session lets the admin SPA check whether it is still logged in.
func (a *AdminModule) session(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("user_id")

	c.JSON(http.StatusOK, gin.H{"authenticated": userID != nil})
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
