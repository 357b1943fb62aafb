package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlafber/APIsupermercado/httperr"
	"github.com/carlafber/APIsupermercado/models"
)

// ShoppingListRoutes sets up the routes for shopping-list operations.
func ShoppingListRoutes(router *gin.Engine, conn *gorm.DB) {
	listRoutes := router.Group("/lists")
	{
		listRoutes.GET("", GetAllShoppingLists(conn))
		listRoutes.POST("", CreateShoppingList(conn))
		listRoutes.GET("/:list_id", GetShoppingList(conn))
		listRoutes.GET("/:list_id/items", GetShoppingListItems(conn))
		listRoutes.POST("/:list_id/items", AddShoppingListItem(conn))
		listRoutes.DELETE("/:list_id", DeleteShoppingList(conn))
	}
}

// GetAllShoppingLists retrieves all shopping lists with owner, supermarket,
// formatted creation date and item count.
func GetAllShoppingLists(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lists []models.ShoppingList
		result := conn.Preload("User").Preload("Supermarket").Preload("Items").Find(&lists)
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
				"supermarket": list.Supermarket.Name,
				"products":    len(list.Items),
			})
		}
		c.JSON(http.StatusOK, rows)
	}
}

// CreateShoppingList creates a list for a supermarket (by name) and a user
// (by username). Both are resolved to ids before the row is written.
func CreateShoppingList(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Supermarket string `json:"supermarket" binding:"required"`
			Username    string `json:"username" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			httperr.Abort(c, httperr.BadRequest("Supermarket and username are required"))
			return
		}

		var supermarket models.Supermarket
		if result := conn.Where("name = ?", request.Supermarket).First(&supermarket); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Supermarket not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		var user models.User
		if result := conn.Where("username = ?", request.Username).First(&user); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("User not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		list := models.ShoppingList{SupermarketID: supermarket.ID, UserID: user.ID}
		if result := conn.Create(&list); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Shopping list created successfully", "id": list.ID})
	}
}

// GetShoppingList retrieves a list by ID with its items expanded.
func GetShoppingList(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var list models.ShoppingList
		result := conn.Preload("Items.Product").First(&list, "id = ?", c.Param("list_id"))
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Shopping list not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		items := make([]gin.H, 0, len(list.Items))
		for _, item := range list.Items {
			items = append(items, gin.H{
				"product":    item.Product.Name,
				"quantity":   item.Quantity,
				"line_total": item.LineTotal,
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"id":         list.ID,
			"created_at": list.CreatedAt,
			"products":   items,
		})
	}
}

// GetShoppingListItems retrieves the items of a list. Each row carries the
// product's id and name next to the stored quantity and line total.
func GetShoppingListItems(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var list models.ShoppingList
		if result := conn.First(&list, "id = ?", c.Param("list_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Shopping list not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		var items []models.ShoppingListItem
		result := conn.Preload("Product").Where("shopping_list_id = ?", list.ID).Find(&items)
		if result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}

		rows := make([]gin.H, 0, len(items))
		for _, item := range items {
			rows = append(rows, gin.H{
				"id":         item.Product.ID,
				"name":       item.Product.Name,
				"quantity":   item.Quantity,
				"line_total": item.LineTotal,
			})
		}
		c.JSON(http.StatusOK, rows)
	}
}

// AddShoppingListItem adds a product (by name) to a list. The line total is
// the product price times the quantity at insertion time and is stored as-is.
func AddShoppingListItem(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productName := c.Query("product_name")
		if productName == "" {
			httperr.Abort(c, httperr.BadRequest("product_name query parameter is required"))
			return
		}

		quantity := 1
		if q := c.Query("quantity"); q != "" {
			parsed, err := strconv.Atoi(q)
			if err != nil || parsed < 1 {
				httperr.Abort(c, httperr.BadRequest("quantity must be a positive integer"))
				return
			}
			quantity = parsed
		}

		var list models.ShoppingList
		if result := conn.First(&list, "id = ?", c.Param("list_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Shopping list not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		var product models.Product
		if result := conn.Where("name = ?", productName).First(&product); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Product not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		// Existence check, not a database constraint: a product appears at
		// most once per list.
		var existing models.ShoppingListItem
		result := conn.Where("shopping_list_id = ? AND product_id = ?", list.ID, product.ID).First(&existing)
		if result.Error == nil {
			httperr.Abort(c, httperr.NotFound("Product already in shopping list"))
			return
		}
		if result.Error != gorm.ErrRecordNotFound {
			httperr.Abort(c, result.Error)
			return
		}

		item := models.ShoppingListItem{
			ShoppingListID: list.ID,
			ProductID:      product.ID,
			Quantity:       quantity,
			LineTotal:      product.Price * float64(quantity),
		}
		if result := conn.Create(&item); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product added to shopping list"})
	}
}

// DeleteShoppingList deletes a list after removing its items.
func DeleteShoppingList(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var list models.ShoppingList
		if result := conn.First(&list, "id = ?", c.Param("list_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Shopping list not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		err := conn.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("shopping_list_id = ?", list.ID).Delete(&models.ShoppingListItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&list).Error
		})
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Shopping list deleted successfully"})
	}
}
