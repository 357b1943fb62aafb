package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carlafber/APIsupermercado/httperr"
	"github.com/carlafber/APIsupermercado/models"
)

// sortColumns is the set of allowed sort keys for /products/sorted.
var sortColumns = map[string]string{
	"name":  "name",
	"price": "price",
}

// ProductRoutes sets up the routes for product-related operations.
func ProductRoutes(router *gin.Engine, conn *gorm.DB) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", GetAllProducts(conn))
		productRoutes.GET("/search", SearchProducts(conn))
		productRoutes.GET("/sorted", GetSortedProducts(conn))
		productRoutes.GET("/filter/price", FilterProductsByPrice(conn))
		productRoutes.POST("", CreateProduct(conn))
		productRoutes.PUT("/:product_id/category", UpdateProductCategory(conn))
		productRoutes.PUT("/:product_id/price", UpdateProductPrice(conn))
		productRoutes.DELETE("/:product_id", DeleteProduct(conn))
	}
}

// productRow flattens a product and its preloaded associations into the
// display shape used by every product listing.
func productRow(product models.Product) gin.H {
	return gin.H{
		"id":          product.ID,
		"name":        product.Name,
		"price":       product.Price,
		"aisle":       product.Category.Aisle,
		"category":    product.Category.Name,
		"supermarket": product.Supermarket.Name,
	}
}

func productRows(products []models.Product) []gin.H {
	rows := make([]gin.H, 0, len(products))
	for _, product := range products {
		rows = append(rows, productRow(product))
	}
	return rows
}

// GetAllProducts retrieves all products enriched with category and
// supermarket details.
func GetAllProducts(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		result := conn.Preload("Category").Preload("Supermarket").Find(&products)
		if result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusOK, productRows(products))
	}
}

// SearchProducts retrieves the products of one supermarket within one
// category. Both ids are required.
func SearchProducts(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		supermarketID, err := strconv.Atoi(c.Query("supermarket_id"))
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("supermarket_id query parameter is required"))
			return
		}
		categoryID, err := strconv.Atoi(c.Query("category_id"))
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("category_id query parameter is required"))
			return
		}

		var products []models.Product
		result := conn.Preload("Category").Preload("Supermarket").
			Where("supermarket_id = ? AND category_id = ?", supermarketID, categoryID).
			Find(&products)
		if result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusOK, productRows(products))
	}
}

// GetSortedProducts retrieves all products ordered ascending by one of the
// allowed sort keys.
func GetSortedProducts(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order := c.DefaultQuery("order", "name")
		column, ok := sortColumns[order]
		if !ok {
			httperr.Abort(c, httperr.BadRequest("Invalid order parameter. Use 'name' or 'price'"))
			return
		}

		var products []models.Product
		result := conn.Preload("Category").Preload("Supermarket").Order(column).Find(&products)
		if result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusOK, productRows(products))
	}
}

// FilterProductsByPrice retrieves the products whose price falls in the
// inclusive [min, max] range. No matches is an empty list, not an error.
func FilterProductsByPrice(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		min, err := strconv.ParseFloat(c.Query("min"), 64)
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("min query parameter is required"))
			return
		}
		max, err := strconv.ParseFloat(c.Query("max"), 64)
		if err != nil {
			httperr.Abort(c, httperr.BadRequest("max query parameter is required"))
			return
		}

		var products []models.Product
		result := conn.Preload("Category").Preload("Supermarket").
			Where("price >= ? AND price <= ?", min, max).Find(&products)
		if result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusOK, productRows(products))
	}
}

// CreateProduct handles the creation of a new product. The supermarket and
// category arrive as names and are resolved to ids before the row is written.
func CreateProduct(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Name        string   `json:"name" binding:"required"`
			Price       *float64 `json:"price" binding:"required,gte=0"`
			Supermarket string   `json:"supermarket" binding:"required"`
			Category    string   `json:"category" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			httperr.Abort(c, httperr.BadRequest("Product name, price, supermarket and category are required"))
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

		var category models.Category
		if result := conn.Where("name = ?", request.Category).First(&category); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Category not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		product := models.Product{
			Name:          request.Name,
			Price:         *request.Price,
			SupermarketID: supermarket.ID,
			CategoryID:    category.ID,
		}
		if result := conn.Create(&product); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "id": product.ID})
	}
}

// UpdateProductCategory moves a product to another category, resolved by name.
func UpdateProductCategory(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Category string `json:"category" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			httperr.Abort(c, httperr.BadRequest("Category name is required"))
			return
		}

		var product models.Product
		if result := conn.First(&product, "id = ?", c.Param("product_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Product not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		var category models.Category
		if result := conn.Where("name = ?", request.Category).First(&category); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Category not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		product.CategoryID = category.ID
		if result := conn.Save(&product); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
	}
}

// UpdateProductPrice replaces a product's price. Stored shopping-list line
// totals keep their snapshot and are not recomputed.
func UpdateProductPrice(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Price *float64 `json:"price" binding:"required,gte=0"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			httperr.Abort(c, httperr.BadRequest("Product price is required"))
			return
		}

		var product models.Product
		if result := conn.First(&product, "id = ?", c.Param("product_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Product not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		product.Price = *request.Price
		if result := conn.Save(&product); result.Error != nil {
			httperr.Abort(c, result.Error)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product price updated successfully"})
	}
}

// DeleteProduct deletes a product together with its shopping-list items.
func DeleteProduct(conn *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if result := conn.First(&product, "id = ?", c.Param("product_id")); result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				httperr.Abort(c, httperr.NotFound("Product not found"))
			} else {
				httperr.Abort(c, result.Error)
			}
			return
		}

		err := conn.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ShoppingListItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			httperr.Abort(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
