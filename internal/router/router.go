package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"atelier/internal/auth"
	"atelier/internal/config"
	apperrors "atelier/internal/errors"
	"atelier/internal/handler"
	"atelier/internal/middleware"
	"atelier/internal/repository"
)

const rateLimitWindow = 10 * time.Minute

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	contactHandler *handler.ContactHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: cfg.CORSOrigin != "*",
	}))
	e.Use(echomw.BodyLimit("10M"))
	e.Use(echomw.RateLimiterWithConfig(rateLimiterConfig(cfg.RateLimitMax)))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Token verification for routes mixing public and secured handlers.
	authenticate := middleware.Authenticate(cfg.JWTSecret, cfg.CookieName)
	loadUser := middleware.LoadUser(userRepo, tokenStore)
	adminOnly := middleware.RequireRoles("admin")
	staffOnly := middleware.RequireRoles("admin", "editor")

	// Auth
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authenticate, loadUser)
	api.PUT("/auth/updatepassword", authHandler.UpdatePassword, authenticate, loadUser)
	api.POST("/auth/logout", authHandler.Logout, authenticate, loadUser)

	// Projects: reads are public, mutations are admin-gated.
	api.GET("/projects", projectHandler.List)
	api.GET("/projects/featured", projectHandler.Featured)
	api.GET("/projects/category/:category", projectHandler.ByCategory)
	api.GET("/projects/:id", projectHandler.Get)
	api.POST("/projects", projectHandler.Create, authenticate, loadUser, adminOnly)
	api.POST("/projects/upload", projectHandler.Upload, authenticate, loadUser, adminOnly)
	api.PUT("/projects/:id", projectHandler.Update, authenticate, loadUser, adminOnly)
	api.DELETE("/projects/:id", projectHandler.Delete, authenticate, loadUser, adminOnly)

	// Contact: submission is public, management is staff-gated.
	api.POST("/contact", contactHandler.Submit)
	api.GET("/contact", contactHandler.List, authenticate, loadUser, staffOnly)
	api.GET("/contact/:id", contactHandler.Get, authenticate, loadUser, staffOnly)
	api.PUT("/contact/:id", contactHandler.UpdateStatus, authenticate, loadUser, staffOnly)
	api.DELETE("/contact/:id", contactHandler.Delete, authenticate, loadUser, staffOnly)
}

// rateLimiterConfig caps each client IP to max requests per ten-minute
// window across the whole API.
func rateLimiterConfig(max int) echomw.RateLimiterConfig {
	return echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(max) / rateLimitWindow.Seconds()),
			Burst:     max,
			ExpiresIn: rateLimitWindow,
		}),
		ErrorHandler: func(c echo.Context, err error) error {
			return &apperrors.Error{Status: http.StatusForbidden, Message: "unable to identify client"}
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return &apperrors.Error{Status: http.StatusTooManyRequests, Message: "too many requests, please try again later"}
		},
	}
}

// errorHandler renders every error into the response envelope. Typed
// application errors keep their status and message; echo's own errors keep
// their status; anything else is a 500 with a generic message.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	appErr := apperrors.Map(err)
	if httpErr, ok := err.(*echo.HTTPError); ok {
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			msg = s
		}
		appErr = &apperrors.Error{Status: httpErr.Code, Message: msg}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(appErr.Status)
		return
	}
	_ = c.JSON(appErr.Status, handler.Envelope{Success: false, Error: appErr.Message})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
