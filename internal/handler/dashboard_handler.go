package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/errors"
	"feedbackhub/internal/service"
)

// DashboardHandler handles dashboard endpoints.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// ManagerSummary godoc
// @Summary Team overview for the authenticated manager
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ManagerSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /dashboard/manager [get]
func (h *DashboardHandler) ManagerSummary(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.dashboardService.ManagerSummary(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, summary)
}

// EmployeeSummary godoc
// @Summary Feedback overview for the authenticated employee
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.EmployeeSummary
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard/employee [get]
func (h *DashboardHandler) EmployeeSummary(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.dashboardService.EmployeeSummary(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, summary)
}
