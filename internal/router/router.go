package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"feedbackhub/internal/config"
	"feedbackhub/internal/errors"
	"feedbackhub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	feedbackHandler *handler.FeedbackHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
	}))

	secured.GET("/users/me", userHandler.Me)
	secured.GET("/team", userHandler.Team)

	secured.POST("/feedback", feedbackHandler.Create)
	secured.PUT("/feedback/:id", feedbackHandler.Update)
	secured.POST("/feedback/:id/acknowledge", feedbackHandler.Acknowledge)
	secured.GET("/feedback/manager", feedbackHandler.ListForManager)
	secured.GET("/feedback/employee", feedbackHandler.ListForEmployee)

	secured.GET("/dashboard/manager", dashboardHandler.ManagerSummary)
	secured.GET("/dashboard/employee", dashboardHandler.EmployeeSummary)
}

// errorHandler serializes every failure as a flat {error, code} body
// instead of echo's default {"message": ...} envelope.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	resp := errors.ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if body, ok := he.Message.(errors.ErrorResponse); ok {
			resp = body
		} else {
			resp = errors.ErrorResponse{
				Error: fmt.Sprint(he.Message),
				Code:  codeFromStatus(he.Code),
			}
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, resp)
}

func codeFromStatus(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
