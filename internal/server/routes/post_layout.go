package routes

import (
	"encoding/json"
	"net/http"

	"paperatlas/internal/queue"
	"paperatlas/internal/server/middleware"
	"paperatlas/internal/util"
	"paperatlas/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PostProjectLayoutHandler enqueues a background layout job for a
// project and returns the correlation id the client can use to match
// log lines and the eventual persisted layout.
func PostProjectLayoutHandler(c echo.Context) error {
	type postLayoutParams struct {
		ProjectID int64   `param:"id" validate:"required,numeric"`
		Width     float64 `json:"width" validate:"omitempty,gt=0"`
		Height    float64 `json:"height" validate:"omitempty,gt=0"`
		MaxTicks  int     `json:"max_ticks" validate:"omitempty,gt=0"`
	}

	type postLayoutResponse struct {
		Message       string `json:"message"`
		CorrelationID string `json:"correlation_id,omitempty"`
	}

	params := new(postLayoutParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, postLayoutResponse{Message: "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, postLayoutResponse{Message: "Invalid request params"})
	}

	correlationID, err := util.NewCorrelationID()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, postLayoutResponse{Message: "Internal server error"})
	}

	msg := queue.LayoutJobMsg{
		CorrelationID: correlationID,
		ProjectIDs:    []int64{params.ProjectID},
		Width:         params.Width,
		Height:        params.Height,
		MaxTicks:      params.MaxTicks,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, postLayoutResponse{Message: "Internal server error"})
	}

	app := c.(*middleware.AppContext).App
	if err := queue.PublishFIFO(app.Queue, queue.LayoutQueue, body); err != nil {
		logger.Error("[Server] Failed to enqueue layout job", "project_id", params.ProjectID, "err", err)
		return c.JSON(http.StatusInternalServerError, postLayoutResponse{Message: "Failed to enqueue layout job"})
	}

	logger.Info("[Server] Layout job enqueued", "project_id", params.ProjectID, "correlation_id", correlationID)
	return c.JSON(http.StatusAccepted, postLayoutResponse{
		Message:       "Layout job enqueued",
		CorrelationID: correlationID,
	})
}
