package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fieldtrack/internal/handlers"
	"fieldtrack/internal/logger"
	"fieldtrack/internal/middleware"
	"fieldtrack/internal/models"
	"fieldtrack/internal/services"
	"fieldtrack/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Users  services.UserServicer
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Employee{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	employeeService := services.NewEmployeeService(db, auditService)
	importService := services.NewImportService(db, auditService)
	exportService := services.NewExportService(db)
	reportService := services.NewReportService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	uploadHandler := handlers.NewUploadHandler(importService)
	exportHandler := handlers.NewExportHandler(exportService)
	auditHandler := handlers.NewAuditHandler(auditService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Profile)

	employees := protected.Group("/employees")
	employees.GET("", employeeHandler.ListEmployees)
	employees.GET("/:id", employeeHandler.GetEmployee)
	employees.PUT("/:id", employeeHandler.UpdateEmployee)
	employees.DELETE("/:id", middleware.AdminRequired(), employeeHandler.DeleteEmployee)
	employees.POST("/batch-delete", middleware.AdminRequired(), employeeHandler.BatchDeleteEmployees)

	protected.POST("/upload", middleware.AdminRequired(), uploadHandler.Upload)
	protected.GET("/export", exportHandler.ExportEmployees)
	protected.GET("/export/template", exportHandler.DownloadTemplate)

	audit := protected.Group("/audit")
	audit.GET("", auditHandler.Query)
	audit.GET("/fields", auditHandler.ChangedFields)
	audit.POST("/purge", middleware.AdminRequired(), auditHandler.Purge)

	reports := protected.Group("/reports")
	reports.GET("/dashboard", reportHandler.PhaseDashboard)
	reports.GET("/managers", reportHandler.ManagerReport)
	reports.GET("/loading", reportHandler.LoadingSchedule)

	users := protected.Group("/users")
	users.Use(middleware.AdminRequired())
	users.POST("", userHandler.CreateUser)
	users.GET("", userHandler.ListUsers)
	users.PUT("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	return &testApp{DB: db, Router: router, Users: userService}
}

// loginAs creates a user through the service layer and logs in through the
// API, returning the bearer token.
func (app *testApp) loginAs(t *testing.T, username, brand, accessType string) string {
	t.Helper()

	const password = "senha-integracao"
	if _, err := app.Users.CreateUser(username, brand, password, "Teste "+username, accessType); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	body := fmt.Sprintf(`{"username":%q,"password":%q,"brand":%q}`, username, password, brand)
	rec := app.request(t, "POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse login response: %v", err)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatal("empty token in login response")
	}
	return token
}

// request performs one JSON request against the stack.
func (app *testApp) request(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// upload posts a spreadsheet through the multipart endpoint.
func (app *testApp) upload(t *testing.T, filename string, content []byte, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(content)); err != nil {
		t.Fatalf("failed to write multipart body: %v", err)
	}
	_ = w.Close()

	req := httptest.NewRequest("POST", "/api/v1/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
