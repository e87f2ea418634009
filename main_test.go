package main_test

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	mainapp "facturation"
	"facturation/internal/services"
)

var (
	app         *fiber.App
	authService *services.AuthService
)

func TestMain(m *testing.M) {
	viper.Set("DATABASE_DRIVER", "sqlite")
	viper.Set("DATABASE_DSN", "file:mainapp_test?mode=memory&cache=shared")
	viper.Set("APP_ENV", "test")
	viper.Set("JWT_SECRET", "test_jwt_secret")
	viper.Set("CLOUDINARY_CLOUD_NAME", "")
	viper.Set("CLOUDINARY_API_KEY", "")
	viper.Set("CLOUDINARY_API_SECRET", "")

	var err error
	app, authService, err = mainapp.NewApp()
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	code := m.Run()

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	os.Exit(code)
}

func TestHealthEndpoints(t *testing.T) {
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "OK", health["status"])
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/health", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRootDescriptor(t *testing.T) {
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var descriptor map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&descriptor))
	assert.Contains(t, descriptor, "endpoints")
	resp.Body.Close()
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.False(t, env.Success)
	assert.Equal(t, "route not found", env.Error)
	resp.Body.Close()
}

// The default admin is seeded on first start against an empty store, so the
// freshly created app must accept its credentials.
func TestDefaultAdminIsSeeded(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "1234"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Data.Token)
	resp.Body.Close()

	claims, err := authService.ValidateToken(env.Data.Token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims["username"])
}

// The memory driver replaces GORM with the in-memory repositories; the whole
// HTTP surface must work against them, seeding included.
func TestMemoryDriverServesFullStack(t *testing.T) {
	viper.Set("DATABASE_DRIVER", "memory")
	defer viper.Set("DATABASE_DRIVER", "sqlite")

	memApp, _, err := mainapp.NewApp()
	assert.NoError(t, err)
	defer memApp.Shutdown()

	body, _ := json.Marshal(map[string]interface{}{"id": "p1", "name": "Widget", "reference": "W-1", "unitPrice": 10})
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := memApp.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = memApp.Test(httptest.NewRequest(http.MethodGet, "/api/products/p1", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = memApp.Test(httptest.NewRequest(http.MethodGet, "/api/invoices/stats/summary", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The default admin is seeded in memory as well
	body, _ = json.Marshal(map[string]string{"username": "admin", "password": "1234"})
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = memApp.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// Without Cloudinary credentials the upload passthrough must answer 503,
// not fail open.
func TestUploadUnavailableWithoutCredentials(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"pdfBase64": "aGVsbG8=", "fileName": "facture.pdf"})
	req := httptest.NewRequest(http.MethodPost, "/api/upload-to-cloud", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()
}
