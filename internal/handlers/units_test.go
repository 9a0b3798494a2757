package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kustudyhub/kustudyhub-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUnitsRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UnitProfile{}, &models.UnitDocument{}))

	r := gin.New()
	r.GET("/units", ListUnits(db))
	r.GET("/units/:id", GetUnit(db))
	r.GET("/units/:id/documents", ListUnitDocuments(db))
	return r, db
}

func TestListUnits(t *testing.T) {
	r, db := setupUnitsRouter(t)

	require.NoError(t, db.Create(&models.UnitProfile{Code: "SMA191", Title: "Calculus I"}).Error)
	require.NoError(t, db.Create(&models.UnitProfile{Code: "ICS201", Title: "Computer Programming"}).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/units", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                 `json:"success"`
		Data    []models.UnitProfile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "ICS201", body.Data[0].Code, "units are ordered by code")
}

func TestGetUnit_NotFoundAndInvalidID(t *testing.T) {
	r, _ := setupUnitsRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/units/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/units/7b0d67b8-0e2c-4b2f-9a4d-111111111111", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUnitDocuments(t *testing.T) {
	r, db := setupUnitsRouter(t)

	unit := models.UnitProfile{Code: "ICS201", Title: "Computer Programming"}
	require.NoError(t, db.Create(&unit).Error)
	require.NoError(t, db.Create(&models.UnitDocument{UnitID: unit.ID, Title: "lecture notes"}).Error)
	require.NoError(t, db.Create(&models.UnitDocument{UnitID: unit.ID, Title: "past paper"}).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/units/"+unit.ID.String()+"/documents", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                  `json:"success"`
		Data    []models.UnitDocument `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 2)
}
