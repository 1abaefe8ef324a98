package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/errors"
	"feedbackhub/internal/service"
)

// UserHandler handles profile and team endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Profile(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Team godoc
// @Summary List the caller's direct reports
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /team [get]
func (h *UserHandler) Team(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	members, err := h.userService.Team(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]UserResponse, 0, len(members))
	for i := range members {
		resp = append(resp, toUserResponse(&members[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
