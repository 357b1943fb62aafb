package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/carlafber/APIsupermercado/db"
	"github.com/carlafber/APIsupermercado/models"
)

// setupTestDB opens an isolated in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would see a different empty :memory: database.
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn))
	return conn
}

// setupRouter wires every resource onto a fresh test router.
func setupRouter(conn *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SupermarketRoutes(router, conn)
	CategoryRoutes(router, conn)
	ProductRoutes(router, conn)
	UserRoutes(router, conn)
	ShoppingListRoutes(router, conn)
	return router
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// fixtures is a minimal connected data set: one supermarket, one category,
// one product in both, and one user.
type fixtures struct {
	Supermarket models.Supermarket
	Category    models.Category
	Product     models.Product
	User        models.User
}

func createFixtures(t *testing.T, conn *gorm.DB) fixtures {
	t.Helper()

	f := fixtures{
		Supermarket: models.Supermarket{Name: "Carrefour"},
		Category:    models.Category{Name: "Fruits", Aisle: 1},
	}
	require.NoError(t, conn.Create(&f.Supermarket).Error)
	require.NoError(t, conn.Create(&f.Category).Error)

	f.Product = models.Product{
		Name:          "Apple",
		Price:         10.5,
		SupermarketID: f.Supermarket.ID,
		CategoryID:    f.Category.ID,
	}
	require.NoError(t, conn.Create(&f.Product).Error)

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	f.User = models.User{
		Username:  "juan123",
		Password:  string(hashed),
		FirstName: "Juan",
		LastName:  "Perez",
	}
	require.NoError(t, conn.Create(&f.User).Error)

	return f
}
