package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospilog/internal/api/controllers"
	"hospilog/internal/config"
	"hospilog/internal/models/db_models"
	"hospilog/pkg/middleware"
)

// fakeSession stands in for SessionAuth with a fixed caller.
func fakeSession(role db_models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("account_id", uuid.New())
		c.Set("role", role)
		c.Next()
	}
}

func newTestRouter(role db_models.Role) *gin.Engine {
	return newTestRouterWithSession(fakeSession(role))
}

func newTestRouterWithSession(session gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := Controllers{
		Account:     controllers.NewAccountController(nil, controllers.SessionCookie{}),
		Order:       controllers.NewOrderController(nil),
		Shipment:    controllers.NewShipmentController(nil),
		Product:     controllers.NewProductController(nil),
		Vehicle:     controllers.NewVehicleController(nil),
		Certificate: controllers.NewCertificateController(nil),
		Invoice:     controllers.NewInvoiceController(nil),
		User:        controllers.NewUserController(nil, nil),
		Settings:    controllers.NewSettingsController(nil),
		Upload:      controllers.NewUploadController(nil),
		Dashboard:   controllers.NewDashboardController(nil),
	}
	RegisterRoutes(r.Group("/api/v1"), session, func(c *gin.Context) { c.Next() }, ctrl)
	return r
}

func TestCapabilityGates(t *testing.T) {
	tests := []struct {
		role   db_models.Role
		method string
		path   string
	}{
		{db_models.RoleStaff, http.MethodPost, "/api/v1/shipment/create"},
		{db_models.RoleStaff, http.MethodPost, "/api/v1/orders/" + uuid.NewString() + "/confirm"},
		{db_models.RoleVendor, http.MethodPost, "/api/v1/orders/create"},
		{db_models.RoleVendor, http.MethodPost, "/api/v1/orders/" + uuid.NewString() + "/verify"},
		{db_models.RoleCompany, http.MethodPatch, "/api/v1/orders/update"},
		{db_models.RoleStaff, http.MethodPatch, "/api/v1/orders/update"},
		{db_models.RoleStaff, http.MethodPost, "/api/v1/vehicle/create"},
		{db_models.RoleVendor, http.MethodGet, "/api/v1/users/list"},
		{db_models.RoleVendor, http.MethodPost, "/api/v1/users/prompt"},
		{db_models.RoleStaff, http.MethodGet, "/api/v1/dashboard/stats"},
		{db_models.RoleStaff, http.MethodPost, "/api/v1/config/setmail"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			newTestRouter(tt.role).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func loginThrottle(t *testing.T, cfg config.HTTPConfig) (accepted int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r, err := newEngine(cfg)
	require.NoError(t, err)
	r.POST("/auth/login", middleware.NewRateLimiter(1, 2).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:41000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			accepted++
		}
	}
	return accepted
}

func TestForwardedForIgnoredFromUntrustedPeer(t *testing.T) {
	assert.Equal(t, 2, loginThrottle(t, config.HTTPConfig{}))
}

func TestForwardedForHonouredFromTrustedProxy(t *testing.T) {
	assert.Equal(t, 20, loginThrottle(t, config.HTTPConfig{TrustedProxies: []string{"203.0.113.7"}}))
}

func TestNewEngineRejectsBadProxy(t *testing.T) {
	_, err := newEngine(config.HTTPConfig{TrustedProxies: []string{"not-an-ip"}})
	assert.Error(t, err)
}

func TestRegistrationUploadNeedsNoSession(t *testing.T) {
	r := newTestRouterWithSession(func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/register/document", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code, "reaches the handler, which wants a file")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/uploads", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
