package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hospilog/internal/api/controllers"
	"hospilog/internal/config"
	"hospilog/internal/models/db_models"
	"hospilog/internal/obs"
	"hospilog/internal/services"
	"hospilog/pkg/middleware"
)

type Controllers struct {
	fx.In

	Account     *controllers.AccountController
	Order       *controllers.OrderController
	Shipment    *controllers.ShipmentController
	Product     *controllers.ProductController
	Vehicle     *controllers.VehicleController
	Certificate *controllers.CertificateController
	Invoice     *controllers.InvoiceController
	User        *controllers.UserController
	Settings    *controllers.SettingsController
	Upload      *controllers.UploadController
	Dashboard   *controllers.DashboardController
}

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	accounts services.AccountServiceInterface,
	limiter *middleware.RateLimiter,
	ctrl Controllers,
) (*gin.Engine, error) {
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := newEngine(cfg.HTTP)
	if err != nil {
		return nil, err
	}
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.ZapLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.HTTP.AllowedOrigins))
	r.MaxMultipartMemory = 8 << 20

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(obs.Handler()))

	api := r.Group(cfg.HTTP.BasePath)
	RegisterRoutes(api, middleware.SessionAuth(accounts, cfg.Auth.CookieName), limiter.Middleware(), ctrl)
	return r, nil
}

// newEngine only honours forwarding headers from the configured proxies, so
// c.ClientIP() falls back to the socket peer everywhere else.
func newEngine(cfg config.HTTPConfig) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	return r, nil
}

func RegisterRoutes(api *gin.RouterGroup, session, limit gin.HandlerFunc, ctrl Controllers) {
	can := middleware.RequireCapability

	auth := api.Group("/auth")
	auth.POST("/login", limit, ctrl.Account.Login)
	auth.POST("/verify2fa", limit, ctrl.Account.VerifyTwoFactor)
	auth.POST("/register", ctrl.Account.Register)
	// Applicants attach their licence and contract before they have a session.
	auth.POST("/register/document", limit, ctrl.Upload.Upload)
	auth.GET("/session-token", ctrl.Account.SessionToken)
	auth.POST("/forgot-password", limit, ctrl.Account.ForgotPassword)
	auth.POST("/reset-password/:token", limit, ctrl.Account.ResetPassword)
	auth.POST("/logout", ctrl.Account.Logout)

	authed := api.Group("", session)

	orders := authed.Group("/orders")
	orders.GET("/list", ctrl.Order.List)
	orders.POST("/create", can(db_models.CapCreateOrder), ctrl.Order.Create)
	orders.PATCH("/update", can(db_models.CapOverrideOrder), ctrl.Order.Update)
	orders.DELETE("/delete/:id", can(db_models.CapCancelOrder), ctrl.Order.Delete)
	orders.POST("/:id/verify", can(db_models.CapVerifyOrder), ctrl.Order.Verify)
	orders.POST("/:id/confirm", can(db_models.CapConfirmOrder), ctrl.Order.Confirm)
	orders.POST("/:id/cancel", can(db_models.CapCancelOrder), ctrl.Order.Cancel)

	shipment := authed.Group("/shipment")
	shipment.GET("/list", ctrl.Shipment.List)
	shipment.POST("/create", can(db_models.CapManageShipments), ctrl.Shipment.Create)
	shipment.PATCH("/update", can(db_models.CapManageShipments), ctrl.Shipment.Update)
	shipment.PATCH("/:id/status", can(db_models.CapManageShipments), ctrl.Shipment.UpdateStatus)
	shipment.DELETE("/delete/:id", can(db_models.CapManageShipments), ctrl.Shipment.Delete)

	catalog(authed.Group("/product"), can(db_models.CapManageProducts), ctrl.Product)
	catalog(authed.Group("/vehicle"), can(db_models.CapManageVehicles), ctrl.Vehicle)
	catalog(authed.Group("/cert"), can(db_models.CapManageCertificates), ctrl.Certificate)
	catalog(authed.Group("/invoice"), can(db_models.CapManageInvoices), ctrl.Invoice)

	users := authed.Group("/users")
	users.POST("/prompt", can(db_models.CapRequestInsights), ctrl.User.Prompt)
	users.GET("/list", can(db_models.CapManageAccounts), ctrl.User.List)
	users.GET("/:id", can(db_models.CapManageAccounts), ctrl.User.Get)
	users.PATCH("/verify/:id", can(db_models.CapManageAccounts), ctrl.User.Verify)
	users.DELETE("/delete/:id", can(db_models.CapManageAccounts), ctrl.User.Delete)

	settings := authed.Group("/config", can(db_models.CapManageSettings))
	settings.GET("/mail", ctrl.Settings.GetMail)
	settings.POST("/setmail", ctrl.Settings.SetMail)

	authed.GET("/dashboard/stats", can(db_models.CapViewDashboard), ctrl.Dashboard.GetDashboard)

	authed.POST("/uploads", ctrl.Upload.Upload)
	authed.GET("/uploads/:name", ctrl.Upload.Serve)
}

type crudHandlers interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func catalog(g *gin.RouterGroup, manage gin.HandlerFunc, h crudHandlers) {
	g.GET("/list", h.List)
	g.POST("/create", manage, h.Create)
	g.PATCH("/update", manage, h.Update)
	g.DELETE("/delete/:id", manage, h.Delete)
}
