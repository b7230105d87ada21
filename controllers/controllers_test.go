package controllers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"myapp/config"
	"myapp/controllers"
	"myapp/database"
	"myapp/handlers"
	"myapp/metrics"
	"myapp/models"
	"myapp/routes"
	"myapp/services"
	"myapp/templates"
	"myapp/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "controller-test-secret"

type stubProvider struct {
	sample *models.SystemMetrics
	err    error
}

func (p *stubProvider) Sample(ctx context.Context) (*models.SystemMetrics, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.sample, nil
}

type testApp struct {
	router   *gin.Engine
	db       *gorm.DB
	sqlDB    *sql.DB
	registry *metrics.Registry
	provider *stubProvider
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:  testSecret,
		JWTTTL:     time.Hour,
		PageSize:   2,
		Version:    "1.0.0",
		PublicHost: "testhost:8080",
	}

	provider := &stubProvider{sample: &models.SystemMetrics{
		CPUPercent: 25, MemoryPercent: 60, DiskPercent: 70, Hostname: "stub-host", Timestamp: "now",
	}}
	registry := metrics.NewRegistry()
	probe := services.NewStatusProbe(db)
	hub := services.NewHubService()
	t.Cleanup(hub.Stop)

	r := gin.New()
	r.SetHTMLTemplate(templates.Load())

	routes.SetupRoutes(r, cfg.JWTSecret, services.NewUserService(db),
		controllers.NewSystemController(cfg, registry, probe, provider, provider),
		controllers.NewAuthController(db, cfg.JWTSecret, cfg.JWTTTL),
		controllers.NewUserController(db, cfg.PageSize),
		controllers.NewPostController(db, cfg.PageSize),
		controllers.NewCommentController(db, cfg.PageSize),
		handlers.NewWebSocketHandler(hub, registry.ActiveConnections,
			services.MetricsChannelSpec(provider, time.Second),
			services.StatusChannelSpec(probe, time.Second),
			nil,
		),
	)

	return &testApp{router: r, db: db, sqlDB: sqlDB, registry: registry, provider: provider}
}

type requestOption func(*http.Request)

func withToken(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withHTMX() requestOption {
	return func(r *http.Request) { r.Header.Set(utils.HTMXHeader, "true") }
}

func (a *testApp) do(method, path string, body interface{}, opts ...requestOption) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// user creates a user directly in the store and returns it with a valid token.
func (a *testApp) user(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "password123"}
	require.NoError(t, u.HashPassword())
	require.NoError(t, a.db.Create(u).Error)

	token, err := utils.GenerateJWT(testSecret, u.ID, time.Hour)
	require.NoError(t, err)
	return u, token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

var errProvider = errors.New("sensors unavailable")
