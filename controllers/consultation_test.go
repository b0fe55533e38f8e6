package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultation-system/controllers"
	"consultation-system/models"
	"consultation-system/repository"
	"consultation-system/routes"
	"consultation-system/service"
)

// setupRouter 组装一套完整的HTTP栈: 临时目录存储 + httptest模拟的Telegram
func setupRouter(t *testing.T, telegramHandler http.HandlerFunc) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(telegramHandler)
	t.Cleanup(server.Close)

	dataDir := t.TempDir()
	store := repository.NewConsultationStore(dataDir)
	telegram := service.NewTelegramService("test-token", "12345")
	telegram.APIBase = server.URL
	svc := service.NewConsultationService(store, telegram)

	router := gin.New()
	routes.RegisterRoutes(router, controllers.NewConsultationController(svc, telegram))
	return router, dataDir
}

func telegramOK(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`{"ok":true}`))
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getJSON(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSubmitConsultation_EndToEnd(t *testing.T) {
	router, dataDir := setupRouter(t, telegramOK)

	w := postJSON(router, "/api/consultation", map[string]string{
		"name":               "Ann Lee",
		"email":              "ann@example.com",
		"projectDescription": "Need a consulting engagement for migration",
		"serviceType":        "advisory",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)
	assert.NotEmpty(t, resp.Message)

	var record models.ConsultationRequest
	require.NoError(t, json.Unmarshal(resp.Data, &record))
	assert.Equal(t, models.StatusNew, record.Status)
	assert.NotEmpty(t, record.ID)

	// 当天文件里正好一条申请
	date := time.Now().Format("2006-01-02")
	content, err := os.ReadFile(filepath.Join(dataDir, "consultations_"+date+".json"))
	require.NoError(t, err)
	var stored []models.ConsultationRequest
	require.NoError(t, json.Unmarshal(content, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "ann@example.com", stored[0].Email)
}

func TestSubmitConsultation_ValidationErrors(t *testing.T) {
	router, dataDir := setupRouter(t, telegramOK)

	w := postJSON(router, "/api/consultation", map[string]string{
		"name":               "A",
		"email":              "bad",
		"projectDescription": "x",
		"serviceType":        "",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)

	// 所有违反的规则都要出现在错误信息里
	complaints := strings.Split(resp.Error, "; ")
	assert.GreaterOrEqual(t, len(complaints), 3)

	// 校验失败无副作用
	entries, err := os.ReadDir(dataDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSubmitConsultation_MalformedJSON(t *testing.T) {
	router, _ := setupRouter(t, telegramOK)

	req := httptest.NewRequest(http.MethodPost, "/api/consultation", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decodeResponse(t, w).Success)
}

func TestSubmitConsultation_NotifyFailureStillOK(t *testing.T) {
	router, _ := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	w := postJSON(router, "/api/consultation", map[string]string{
		"name":               "Ann Lee",
		"email":              "ann@example.com",
		"projectDescription": "Need a consulting engagement for migration",
		"serviceType":        "advisory",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestTestTelegram(t *testing.T) {
	router, _ := setupRouter(t, telegramOK)

	w := postJSON(router, "/api/test-telegram", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestTestTelegram_Failure(t *testing.T) {
	router, _ := setupRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	w := postJSON(router, "/api/test-telegram", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, decodeResponse(t, w).Success)
}

func TestGetStats(t *testing.T) {
	router, _ := setupRouter(t, telegramOK)

	for i := 0; i < 2; i++ {
		postJSON(router, "/api/consultation", map[string]string{
			"name":               "Ann Lee",
			"email":              "ann@example.com",
			"projectDescription": "Need a consulting engagement for migration",
			"serviceType":        "advisory",
		})
	}

	w := getJSON(router, "/api/consultation/stats")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	var stats models.ConsultationStats
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, 2, stats.Today)
	assert.Equal(t, 2, stats.Total)
}

func TestGetByDate(t *testing.T) {
	router, _ := setupRouter(t, telegramOK)

	postJSON(router, "/api/consultation", map[string]string{
		"name":               "Ann Lee",
		"email":              "ann@example.com",
		"projectDescription": "Need a consulting engagement for migration",
		"serviceType":        "advisory",
	})

	date := time.Now().Format("2006-01-02")
	w := getJSON(router, "/api/consultation/by-date/"+date)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)

	var records []models.ConsultationRequest
	require.NoError(t, json.Unmarshal(resp.Data, &records))
	assert.Len(t, records, 1)
}

func TestGetByDate_EmptyDay(t *testing.T) {
	router, _ := setupRouter(t, telegramOK)

	w := getJSON(router, "/api/consultation/by-date/2020-01-01")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Success)
	assert.Equal(t, "[]", strings.TrimSpace(string(resp.Data)))
}

func TestGetByDate_BadFormat(t *testing.T) {
	router, _ := setupRouter(t, telegramOK)

	for _, date := range []string{"not-a-date", "2024-13-40", "..%2f..%2fetc"} {
		w := getJSON(router, "/api/consultation/by-date/"+date)
		assert.Equal(t, http.StatusBadRequest, w.Code, "date %q", date)
	}
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t, telegramOK)

	w := getJSON(router, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "consultation-system", body["service"])
	assert.NotEmpty(t, body["timestamp"])
}
