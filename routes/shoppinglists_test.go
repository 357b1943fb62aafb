package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlafber/APIsupermercado/models"
)

func TestCreateShoppingListResolvesNames(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)
	createFixtures(t, conn)

	w := performRequest(t, router, http.MethodPost, "/lists", map[string]interface{}{
		"supermarket": "Carrefour", "username": "juan123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, router, http.MethodPost, "/lists", map[string]interface{}{
		"supermarket": "Nowhere", "username": "juan123",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	decodeJSON(t, w, &body)
	assert.Equal(t, "Supermarket not found", body["detail"])

	w = performRequest(t, router, http.MethodPost, "/lists", map[string]interface{}{
		"supermarket": "Carrefour", "username": "nobody",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	decodeJSON(t, w, &body)
	assert.Equal(t, "User not found", body["detail"])
}

func TestAddItemComputesLineTotal(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)
	f := createFixtures(t, conn) // Apple at 10.5

	list := models.ShoppingList{SupermarketID: f.Supermarket.ID, UserID: f.User.ID}
	require.NoError(t, conn.Create(&list).Error)

	path := fmt.Sprintf("/lists/%d/items?product_name=Apple&quantity=3", list.ID)
	w := performRequest(t, router, http.MethodPost, path, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.ShoppingListItem
	require.NoError(t, conn.Where("shopping_list_id = ?", list.ID).First(&item).Error)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 31.5, item.LineTotal)

	// A later price change must not touch the stored snapshot.
	w = performRequest(t, router, http.MethodPut, fmt.Sprintf("/products/%d/price", f.Product.ID),
		map[string]interface{}{"price": 99.0})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, conn.First(&item, item.ID).Error)
	assert.Equal(t, 31.5, item.LineTotal)
}

func TestAddItemDefaultsQuantity(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)
	f := createFixtures(t, conn)

	list := models.ShoppingList{SupermarketID: f.Supermarket.ID, UserID: f.User.ID}
	require.NoError(t, conn.Create(&list).Error)

	w := performRequest(t, router, http.MethodPost, fmt.Sprintf("/lists/%d/items?product_name=Apple", list.ID), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.ShoppingListItem
	require.NoError(t, conn.Where("shopping_list_id = ?", list.ID).First(&item).Error)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, 10.5, item.LineTotal)
}

func TestAddDuplicateItem(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)
	f := createFixtures(t, conn)

	list := models.ShoppingList{SupermarketID: f.Supermarket.ID, UserID: f.User.ID}
	require.NoError(t, conn.Create(&list).Error)

	path := fmt.Sprintf("/lists/%d/items?product_name=Apple&quantity=1", list.ID)
	w := performRequest(t, router, http.MethodPost, path, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, router, http.MethodPost, path, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	decodeJSON(t, w, &body)
	assert.Equal(t, "Product already in shopping list", body["detail"])

	var count int64
	require.NoError(t, conn.Model(&models.ShoppingListItem{}).Where("shopping_list_id = ?", list.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddItemUnknownListOrProduct(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)
	f := createFixtures(t, conn)

	w := performRequest(t, router, http.MethodPost, "/lists/99/items?product_name=Apple", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	list := models.ShoppingList{SupermarketID: f.Supermarket.ID, UserID: f.User.ID}
	require.NoError(t, conn.Create(&list).Error)

	w = performRequest(t, router, http.MethodPost, fmt.Sprintf("/lists/%d/items?product_name=Nothing", list.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(t, router, http.MethodPost, fmt.Sprintf("/lists/%d/items", list.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetShoppingListExpandsItems(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)
	f := createFixtures(t, conn)

	list := models.ShoppingList{SupermarketID: f.Supermarket.ID, UserID: f.User.ID}
	require.NoError(t, conn.Create(&list).Error)
	item := models.ShoppingListItem{ShoppingListID: list.ID, ProductID: f.Product.ID, Quantity: 2, LineTotal: 21.0}
	require.NoError(t, conn.Create(&item).Error)

	w := performRequest(t, router, http.MethodGet, fmt.Sprintf("/lists/%d", list.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ID       uint `json:"id"`
		Products []map[string]interface{}
	}
	decodeJSON(t, w, &body)
	assert.Equal(t, list.ID, body.ID)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "Apple", body.Products[0]["product"])
	assert.Equal(t, float64(2), body.Products[0]["quantity"])
	assert.Equal(t, 21.0, body.Products[0]["line_total"])

	w = performRequest(t, router, http.MethodGet, "/lists/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetShoppingListItems(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)
	f := createFixtures(t, conn)

	list := models.ShoppingList{SupermarketID: f.Supermarket.ID, UserID: f.User.ID}
	require.NoError(t, conn.Create(&list).Error)
	item := models.ShoppingListItem{ShoppingListID: list.ID, ProductID: f.Product.ID, Quantity: 2, LineTotal: 21.0}
	require.NoError(t, conn.Create(&item).Error)

	w := performRequest(t, router, http.MethodGet, fmt.Sprintf("/lists/%d/items", list.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]interface{}
	decodeJSON(t, w, &rows)
	require.Len(t, rows, 1)
	// The row id is the product's id, not the item's.
	assert.Equal(t, float64(f.Product.ID), rows[0]["id"])
	assert.Equal(t, "Apple", rows[0]["name"])

	w = performRequest(t, router, http.MethodGet, "/lists/99/items", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListShoppingListsEnriched(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)
	f := createFixtures(t, conn)

	list := models.ShoppingList{SupermarketID: f.Supermarket.ID, UserID: f.User.ID}
	require.NoError(t, conn.Create(&list).Error)
	item := models.ShoppingListItem{ShoppingListID: list.ID, ProductID: f.Product.ID, Quantity: 2, LineTotal: 21.0}
	require.NoError(t, conn.Create(&item).Error)

	w := performRequest(t, router, http.MethodGet, "/lists", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []map[string]interface{}
	decodeJSON(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Juan", rows[0]["user"])
	assert.Equal(t, "Carrefour", rows[0]["supermarket"])
	assert.Equal(t, float64(1), rows[0]["products"])
	assert.Regexp(t, `^\d{2}-\d{2}-\d{4}$`, rows[0]["date"])
}

func TestDeleteShoppingListCascades(t *testing.T) {
	conn := setupTestDB(t)
	router := setupRouter(conn)
	f := createFixtures(t, conn)

	list := models.ShoppingList{SupermarketID: f.Supermarket.ID, UserID: f.User.ID}
	require.NoError(t, conn.Create(&list).Error)
	item := models.ShoppingListItem{ShoppingListID: list.ID, ProductID: f.Product.ID, Quantity: 1, LineTotal: 10.5}
	require.NoError(t, conn.Create(&item).Error)

	w := performRequest(t, router, http.MethodDelete, fmt.Sprintf("/lists/%d", list.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items int64
	require.NoError(t, conn.Model(&models.ShoppingListItem{}).Where("shopping_list_id = ?", list.ID).Count(&items).Error)
	assert.Zero(t, items)

	w = performRequest(t, router, http.MethodDelete, fmt.Sprintf("/lists/%d", list.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
