package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlafber/APIsupermercado/httperr"
	"github.com/carlafber/APIsupermercado/models"
)

// SupermarketRoutes sets up the routes for supermarket-related operations.
func SupermarketRoutes(router *gin.Engine, conn *gorm.DB) {
	supermarketRoutes := router.Group("/supermarkets")
	{
		supermarketRoutes.GET("", GetAllSupermarkets(conn))
		supermarketRoutes.POST("", CreateSupermarket(conn))
		supermarketRoutes.GET("/:supermarket_id", GetSupermarket(conn))
		supermarketRoutes.GET("/:supermarket_id/lists", GetSupermarketLists(conn))
		supermarketRoutes.DELETE("/:supermarket_id", DeleteSupermarket(conn))
	}
}

// GetAllSupermarkets retrieves all supermarkets.
func GetAllSupermarkets(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var supermarkets []models.Supermarket
		if result := conn.Find(&supermarkets); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusOK, supermarkets)
	}
}

// CreateSupermarket handles the creation of a new supermarket.
func CreateSupermarket(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			httperr.Abort(c, httperr.BadRequest("Supermarket name is required"))
			return
		}

		supermarket := models.Supermarket{Name: request.Name}
		if result := conn.Create(&supermarket); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusCreated, supermarket)
	}
}

// GetSupermarket retrieves a supermarket by ID.
func GetSupermarket(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var supermarket models.Supermarket
		if result := conn.First(&supermarket, "id = ?", c.Param("supermarket_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Supermarket not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}
		c.JSON(http.StatusOK, supermarket)
	}
}

// GetSupermarketLists retrieves the shopping lists that target a supermarket.
func GetSupermarketLists(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var supermarket models.Supermarket
		if result := conn.First(&supermarket, "id = ?", c.Param("supermarket_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Supermarket not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		var lists []models.ShoppingList
		result := conn.Preload("User").Preload("Items").
			Where("supermarket_id = ?", supermarket.ID).Find(&lists)
		if result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}

		rows := make([]gin.H, 0, len(lists))
		for _, list := range lists {
			rows = append(rows, gin.H{
				"id":          list.ID,
				"user":        list.User.FirstName,
				"date":        list.CreatedAt.Format("02-01-2006"),
				"supermarket": supermarket.Name,
				"products":    len(list.Items),
			})
		}
		c.JSON(http.StatusOK, rows)
	}
}

// DeleteSupermarket deletes a supermarket together with its products, its
// shopping lists and every list item hanging off either of them.
func DeleteSupermarket(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var supermarket models.Supermarket
		if result := conn.First(&supermarket, "id = ?", c.Param("supermarket_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Supermarket not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		err := conn.Transaction(func(tx *gorm.DB) error {
			listIDs := tx.Model(&models.ShoppingList{}).Select("id").Where("supermarket_id = ?", supermarket.ID)
			if err := tx.Where("shopping_list_id IN (?)", listIDs).Delete(&models.ShoppingListItem{}).Error; err != nil {
				return err
			}
			productIDs := tx.Model(&models.Product{}).Select("id").Where("supermarket_id = ?", supermarket.ID)
			if err := tx.Where("product_id IN (?)", productIDs).Delete(&models.ShoppingListItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("supermarket_id = ?", supermarket.ID).Delete(&models.ShoppingList{}).Error; err != nil {
				return err
			}
			if err := tx.Where("supermarket_id = ?", supermarket.ID).Delete(&models.Product{}).Error; err != nil {
				return err
			}
			return tx.Delete(&supermarket).Error
		})
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Supermarket deleted successfully"})
	}
}
