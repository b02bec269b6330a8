package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spam-shield/internal/apps/report/repository"
	"spam-shield/internal/apps/report/service"
	"spam-shield/pkg/phone"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewReportService(repository.NewMemoryReportStore(), phone.NewNormalizer("IN"))
	router := gin.New()
	RegisterReportRoutes(router.Group("/api/v1"), NewReportHandler(svc))
	return router
}

func TestCreateReport(t *testing.T) {
	router := setupRouter()

	for i := 1; i <= 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(`{"phone":"+919876543210"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var body struct {
			Data struct {
				Phone       string `json:"phone"`
				ReportCount int64  `json:"report_count"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "+919876543210", body.Data.Phone)
		assert.Equal(t, int64(i), body.Data.ReportCount)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/count?phone=%2B919876543210", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"report_count":2`)
}

func TestCreateReport_InvalidPhone(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(`{"phone":"123"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_PHONE_NUMBER")
}

func TestCreateReport_MissingPhone(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReportCount_MissingPhone(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/count", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
