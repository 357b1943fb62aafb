package models

import (
	"time"
)

// Supermarket is a store that sells Products and is the target of ShoppingLists.
// Deleting a supermarket removes its products and shopping lists.
type Supermarket struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"unique;not null" json:"name"`
	Products      []Product      `gorm:"foreignKey:SupermarketID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
	ShoppingLists []ShoppingList `gorm:"foreignKey:SupermarketID;constraint:OnDelete:CASCADE" json:"shopping_lists,omitempty"`
}

// Category groups Products and records the aisle they are found in.
type Category struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Aisle    int       `gorm:"not null" json:"aisle"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

type Product struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	Name          string             `gorm:"not null" json:"name"`
	Price         float64            `gorm:"check:price >= 0" json:"price"`
	SupermarketID uint               `json:"supermarket_id"`
	Supermarket   Supermarket        `gorm:"foreignKey:SupermarketID" json:"-"`
	CategoryID    uint               `json:"category_id"`
	Category      Category           `gorm:"foreignKey:CategoryID" json:"-"`
	ListItems     []ShoppingListItem `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"unique;not null" json:"username"`
	Password      string         `gorm:"not null" json:"-"` // hide hash from JSON responses
	FirstName     string         `gorm:"not null" json:"first_name"`
	LastName      string         `gorm:"not null" json:"last_name"`
	ShoppingLists []ShoppingList `gorm:"foreignKey:UserID" json:"shopping_lists,omitempty"`
}

// ShoppingList belongs to one User and targets one Supermarket. Deleting a
// list removes its items.
type ShoppingList struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time          `json:"created_at"`
	SupermarketID uint               `json:"supermarket_id"`
	Supermarket   Supermarket        `gorm:"foreignKey:SupermarketID" json:"-"`
	UserID        uint               `json:"user_id"`
	User          User               `gorm:"foreignKey:UserID" json:"-"`
	Items         []ShoppingListItem `gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// ShoppingListItem is one product line on a shopping list. LineTotal is a
// snapshot of price * quantity taken when the item is added; later product
// price changes do not touch it.
type ShoppingListItem struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Quantity       int          `gorm:"default:1" json:"quantity"`
	LineTotal      float64      `json:"line_total"`
	ShoppingListID uint         `json:"shopping_list_id"`
	ShoppingList   ShoppingList `gorm:"foreignKey:ShoppingListID" json:"-"`
	ProductID      uint         `json:"product_id"`
	Product        Product      `gorm:"foreignKey:ProductID" json:"-"`
}
