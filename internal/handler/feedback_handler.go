package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/service"
)

// FeedbackHandler handles feedback endpoints.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// CreateFeedbackRequest represents a feedback creation request.
type CreateFeedbackRequest struct {
	EmployeeID     uint   `json:"employee_id" validate:"required"`
	Strengths      string `json:"strengths" validate:"required"`
	AreasToImprove string `json:"areas_to_improve" validate:"required"`
	Sentiment      string `json:"sentiment" validate:"required,oneof=positive neutral negative"`
}

// UpdateFeedbackRequest is a partial patch; omitted fields keep their
// current values.
type UpdateFeedbackRequest struct {
	Strengths      *string `json:"strengths"`
	AreasToImprove *string `json:"areas_to_improve"`
	Sentiment      *string `json:"sentiment" validate:"omitempty,oneof=positive neutral negative"`
}

// ManagerFeedbackResponse is a feedback row joined with the subject's name.
type ManagerFeedbackResponse struct {
	ID             uint            `json:"id"`
	EmployeeID     uint            `json:"employee_id"`
	EmployeeName   string          `json:"employee_name"`
	Strengths      string          `json:"strengths"`
	AreasToImprove string          `json:"areas_to_improve"`
	Sentiment      model.Sentiment `json:"sentiment"`
	Acknowledged   bool            `json:"acknowledged"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// EmployeeFeedbackResponse is a feedback row joined with the author's name.
type EmployeeFeedbackResponse struct {
	ID             uint            `json:"id"`
	ManagerName    string          `json:"manager_name"`
	Strengths      string          `json:"strengths"`
	AreasToImprove string          `json:"areas_to_improve"`
	Sentiment      model.Sentiment `json:"sentiment"`
	Acknowledged   bool            `json:"acknowledged"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func feedbackIDParam(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid feedback id")
	}
	return uint(id), nil
}

// Create godoc
// @Summary Create feedback for a team member
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateFeedbackRequest true "Feedback data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /feedback [post]
func (h *FeedbackHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fb, err := h.feedbackService.Create(c.Request().Context(), userID, service.CreateFeedbackInput{
		EmployeeID:     req.EmployeeID,
		Strengths:      req.Strengths,
		AreasToImprove: req.AreasToImprove,
		Sentiment:      model.Sentiment(req.Sentiment),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "feedback created successfully",
		"feedback": fb,
	})
}

// Update godoc
// @Summary Update feedback content
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Param request body UpdateFeedbackRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /feedback/{id} [put]
func (h *FeedbackHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	feedbackID, err := feedbackIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var sentiment *model.Sentiment
	if req.Sentiment != nil {
		s := model.Sentiment(*req.Sentiment)
		sentiment = &s
	}

	fb, err := h.feedbackService.Update(c.Request().Context(), userID, feedbackID, service.UpdateFeedbackInput{
		Strengths:      req.Strengths,
		AreasToImprove: req.AreasToImprove,
		Sentiment:      sentiment,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "feedback updated successfully",
		"feedback": fb,
	})
}

// Acknowledge godoc
// @Summary Acknowledge feedback addressed to the caller
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feedback ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /feedback/{id}/acknowledge [post]
func (h *FeedbackHandler) Acknowledge(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	feedbackID, err := feedbackIDParam(c)
	if err != nil {
		return err
	}

	if _, err := h.feedbackService.Acknowledge(c.Request().Context(), userID, feedbackID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "feedback acknowledged",
	})
}

// ListForManager godoc
// @Summary List feedback authored by the caller
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ManagerFeedbackResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /feedback/manager [get]
func (h *FeedbackHandler) ListForManager(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	fbs, err := h.feedbackService.ListForManager(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]ManagerFeedbackResponse, 0, len(fbs))
	for _, fb := range fbs {
		row := ManagerFeedbackResponse{
			ID:             fb.ID,
			EmployeeID:     fb.EmployeeID,
			Strengths:      fb.Strengths,
			AreasToImprove: fb.AreasToImprove,
			Sentiment:      fb.Sentiment,
			Acknowledged:   fb.Acknowledged,
			CreatedAt:      fb.CreatedAt,
			UpdatedAt:      fb.UpdatedAt,
		}
		if fb.Employee != nil {
			row.EmployeeName = fb.Employee.Name
		}
		resp = append(resp, row)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListForEmployee godoc
// @Summary List feedback addressed to the caller
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {array} EmployeeFeedbackResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /feedback/employee [get]
func (h *FeedbackHandler) ListForEmployee(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	fbs, err := h.feedbackService.ListForEmployee(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]EmployeeFeedbackResponse, 0, len(fbs))
	for _, fb := range fbs {
		row := EmployeeFeedbackResponse{
			ID:             fb.ID,
			Strengths:      fb.Strengths,
			AreasToImprove: fb.AreasToImprove,
			Sentiment:      fb.Sentiment,
			Acknowledged:   fb.Acknowledged,
			CreatedAt:      fb.CreatedAt,
			UpdatedAt:      fb.UpdatedAt,
		}
		if fb.Manager != nil {
			row.ManagerName = fb.Manager.Name
		}
		resp = append(resp, row)
	}
	return c.JSON(http.StatusOK, resp)
}
