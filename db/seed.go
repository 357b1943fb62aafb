package db

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/carlafber/APIsupermercado/models"
)

// Seed loads default rows into every table that is still empty. Each table is
// checked independently so reruns never duplicate data.
func Seed(conn *gorm.DB) error {
	supermarkets := []models.Supermarket{
		{Name: "Carrefour"}, {Name: "Aldi"}, {Name: "Lidl"}, {Name: "Gadis"},
		{Name: "Alcampo"}, {Name: "Dia"}, {Name: "Mercadona"}, {Name: "Alimerka"},
		{Name: "Lupa"}, {Name: "Froiz"},
	}
	if err := seedTable(conn, &models.Supermarket{}, &supermarkets); err != nil {
		return err
	}
	// Reload so product seeding sees the real ids even when the table was
	// already populated.
	if err := conn.Order("id").Find(&supermarkets).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Fruits", Aisle: 1}, {Name: "Vegetables", Aisle: 2},
		{Name: "Drinks", Aisle: 3}, {Name: "Dairy", Aisle: 4},
		{Name: "Meat", Aisle: 5}, {Name: "Bakery", Aisle: 6},
		{Name: "Frozen", Aisle: 7}, {Name: "Sweets", Aisle: 8},
		{Name: "Cleaning", Aisle: 9}, {Name: "Clothing", Aisle: 10},
	}
	if err := seedTable(conn, &models.Category{}, &categories); err != nil {
		return err
	}
	if err := conn.Order("id").Find(&categories).Error; err != nil {
		return err
	}

	// Dependent tables are only seeded when enough parent rows exist to
	// reference; a partially pre-populated database keeps its own data.
	if len(supermarkets) < 3 || len(categories) < 10 {
		logger.Info().Msg("Seed data loaded")
		return nil
	}

	products := []models.Product{
		{Name: "Apple", Price: 10.5, SupermarketID: supermarkets[0].ID, CategoryID: categories[0].ID},
		{Name: "Lettuce", Price: 3.0, SupermarketID: supermarkets[1].ID, CategoryID: categories[1].ID},
		{Name: "Orange Juice", Price: 5.0, SupermarketID: supermarkets[2].ID, CategoryID: categories[2].ID},
		{Name: "Milk", Price: 2.5, SupermarketID: supermarkets[0].ID, CategoryID: categories[3].ID},
		{Name: "Chicken", Price: 6.0, SupermarketID: supermarkets[1].ID, CategoryID: categories[4].ID},
		{Name: "Sliced Bread", Price: 1.2, SupermarketID: supermarkets[2].ID, CategoryID: categories[5].ID},
		{Name: "Ice Cream", Price: 4.5, SupermarketID: supermarkets[0].ID, CategoryID: categories[6].ID},
		{Name: "Chocolate", Price: 3.2, SupermarketID: supermarkets[1].ID, CategoryID: categories[7].ID},
		{Name: "Detergent", Price: 1.8, SupermarketID: supermarkets[2].ID, CategoryID: categories[8].ID},
		{Name: "T-Shirt", Price: 15.0, SupermarketID: supermarkets[0].ID, CategoryID: categories[9].ID},
		{Name: "Pear", Price: 12.0, SupermarketID: supermarkets[1].ID, CategoryID: categories[0].ID},
		{Name: "Tomato", Price: 4.0, SupermarketID: supermarkets[2].ID, CategoryID: categories[1].ID},
		{Name: "Grape Juice", Price: 5.5, SupermarketID: supermarkets[0].ID, CategoryID: categories[2].ID},
		{Name: "Yogurt", Price: 2.8, SupermarketID: supermarkets[1].ID, CategoryID: categories[3].ID},
		{Name: "Beef", Price: 7.0, SupermarketID: supermarkets[2].ID, CategoryID: categories[4].ID},
	}
	if err := seedTable(conn, &models.Product{}, &products); err != nil {
		return err
	}
	if err := conn.Order("id").Find(&products).Error; err != nil {
		return err
	}

	users := []models.User{
		{Username: "juan123", Password: "password123", FirstName: "Juan", LastName: "Perez"},
		{Username: "maria456", Password: "password456", FirstName: "Maria", LastName: "Lopez"},
	}
	var userCount int64
	if err := conn.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		for i := range users {
			hashed, err := bcrypt.GenerateFromPassword([]byte(users[i].Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash seed password: %w", err)
			}
			users[i].Password = string(hashed)
		}
		if err := conn.Create(&users).Error; err != nil {
			return err
		}
	}
	if err := conn.Order("id").Find(&users).Error; err != nil {
		return err
	}

	if len(products) < 10 || len(users) < 2 {
		logger.Info().Msg("Seed data loaded")
		return nil
	}

	lists := []models.ShoppingList{
		{CreatedAt: time.Now(), SupermarketID: supermarkets[0].ID, UserID: users[0].ID},
		{CreatedAt: time.Now(), SupermarketID: supermarkets[1].ID, UserID: users[1].ID},
		{CreatedAt: time.Now(), SupermarketID: supermarkets[2].ID, UserID: users[0].ID},
	}
	if err := seedTable(conn, &models.ShoppingList{}, &lists); err != nil {
		return err
	}
	if err := conn.Order("id").Find(&lists).Error; err != nil {
		return err
	}

	if len(lists) < 3 {
		logger.Info().Msg("Seed data loaded")
		return nil
	}

	items := []models.ShoppingListItem{
		{Quantity: 3, LineTotal: 31.5, ShoppingListID: lists[0].ID, ProductID: products[0].ID},
		{Quantity: 2, LineTotal: 6.0, ShoppingListID: lists[0].ID, ProductID: products[1].ID},
		{Quantity: 4, LineTotal: 20.0, ShoppingListID: lists[0].ID, ProductID: products[2].ID},
		{Quantity: 2, LineTotal: 5.0, ShoppingListID: lists[1].ID, ProductID: products[3].ID},
		{Quantity: 1, LineTotal: 6.0, ShoppingListID: lists[1].ID, ProductID: products[4].ID},
		{Quantity: 3, LineTotal: 3.6, ShoppingListID: lists[1].ID, ProductID: products[5].ID},
		{Quantity: 5, LineTotal: 22.5, ShoppingListID: lists[2].ID, ProductID: products[6].ID},
		{Quantity: 2, LineTotal: 6.4, ShoppingListID: lists[2].ID, ProductID: products[7].ID},
		{Quantity: 1, LineTotal: 1.8, ShoppingListID: lists[2].ID, ProductID: products[8].ID},
		{Quantity: 3, LineTotal: 45.0, ShoppingListID: lists[2].ID, ProductID: products[9].ID},
	}
	if err := seedTable(conn, &models.ShoppingListItem{}, &items); err != nil {
		return err
	}

	logger.Info().Msg("Seed data loaded")
	return nil
}

// seedTable inserts rows only when the table behind model is empty.
func seedTable(conn *gorm.DB, model interface{}, rows interface{}) error {
	var count int64
	if err := conn.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return conn.Create(rows).Error
}
