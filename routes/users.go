package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/carlafber/APIsupermercado/httperr"
	"github.com/carlafber/APIsupermercado/models"
)

// UserRoutes sets up the routes for user registration, login and listing.
func UserRoutes(router *gin.Engine, conn *gorm.DB) {
	userRoutes := router.Group("/users")
	{
		userRoutes.GET("", GetAllUsers(conn))
		userRoutes.POST("/register", Register(conn))
		userRoutes.POST("/login", Login(conn))
	}
}

// GetAllUsers retrieves all users. Password hashes never leave the server.
func GetAllUsers(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if result := conn.Find(&users); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// Register handles new user registration. The password is hashed before the
// row is written; the plaintext is never stored.
func Register(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Username  string `json:"username" binding:"required"`
			Password  string `json:"password" binding:"required"`
			FirstName string `json:"first_name" binding:"required"`
			LastName  string `json:"last_name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			httperr.Abort(c, httperr.BadRequest("Username, password, first name and last name are required"))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		user := models.User{
			Username:  request.Username,
			Password:  string(hashed),
			FirstName: request.FirstName,
			LastName:  request.LastName,
		}
		if result := conn.Create(&user); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "id": user.ID})
	}
}

// Login checks a username/password pair. No session or token is issued; the
// response is strictly a yes/no on the credentials.
func Login(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			httperr.Abort(c, httperr.BadRequest("Username and password are required"))
			return
		}

		var user models.User
		if result := conn.Where("username = ?", request.Username).First(&user); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.Unauthorized("Invalid credentials"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
			httperr.Abort(c, httperr.Unauthorized("Invalid credentials"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
	}
}
