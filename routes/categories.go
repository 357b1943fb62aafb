package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlafber/APIsupermercado/httperr"
	"github.com/carlafber/APIsupermercado/models"
)

// CategoryRoutes sets up the routes for category-related operations.
func CategoryRoutes(router *gin.Engine, conn *gorm.DB) {
	categoryRoutes := router.Group("/categories")
	{
		categoryRoutes.GET("", GetAllCategories(conn))
		categoryRoutes.POST("", CreateCategory(conn))
		categoryRoutes.GET("/:category_id", GetCategory(conn))
		categoryRoutes.PUT("/:category_id", UpdateCategory(conn))
		categoryRoutes.DELETE("/:category_id", DeleteCategory(conn))
	}
}

// GetAllCategories retrieves all categories.
func GetAllCategories(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if result := conn.Find(&categories); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// CreateCategory handles the creation of a new category.
func CreateCategory(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Name  string `json:"name" binding:"required"`
			Aisle int    `json:"aisle" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			httperr.Abort(c, httperr.BadRequest("Category name and aisle are required"))
			return
		}

		category := models.Category{Name: request.Name, Aisle: request.Aisle}
		if result := conn.Create(&category); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// GetCategory retrieves a category by ID.
func GetCategory(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if result := conn.First(&category, "id = ?", c.Param("category_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Category not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// UpdateCategory replaces the name and aisle of an existing category.
func UpdateCategory(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Name  string `json:"name" binding:"required"`
			Aisle int    `json:"aisle" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			httperr.Abort(c, httperr.BadRequest("Category name and aisle are required"))
			return
		}

		var category models.Category
		if result := conn.First(&category, "id = ?", c.Param("category_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Category not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		category.Name = request.Name
		category.Aisle = request.Aisle
		if result := conn.Save(&category); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategory deletes a category together with its products and their
// shopping-list items.
func DeleteCategory(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if result := conn.First(&category, "id = ?", c.Param("category_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Category not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		err := conn.Transaction(func(tx *gorm.DB) error {
			productIDs := tx.Model(&models.Product{}).Select("id").Where("category_id = ?", category.ID)
			if err := tx.Where("product_id IN (?)", productIDs).Delete(&models.ShoppingListItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("category_id = ?", category.ID).Delete(&models.Product{}).Error; err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
