package routes

import (
	"fmt"
	"net/http"
	"strings"

	"paperatlas/internal/server/middleware"
	"paperatlas/pkg/graph"
	"paperatlas/pkg/logger"

	_ "github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

type graphResponse struct {
	Message string       `json:"message"`
	Graph   *graph.Graph `json:"data,omitempty"`
}

// parseGroupFilter turns the ?groups= CSV into the enabled-group set.
// An empty parameter means no filtering.
func parseGroupFilter(raw string) (map[graph.Group]bool, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	enabled := make(map[graph.Group]bool, len(graph.Groups))
	for _, part := range strings.Split(raw, ",") {
		name := graph.Group(strings.ToLower(strings.TrimSpace(part)))
		if name == "" {
			continue
		}
		known := false
		for _, g := range graph.Groups {
			if g == name {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown group %q", name)
		}
		enabled[name] = true
	}
	return enabled, nil
}

func GetProjectGraphHandler(c echo.Context) error {
	type getProjectGraphParams struct {
		ProjectID int64  `param:"id" validate:"required,numeric"`
		Groups    string `query:"groups"`
	}

	params := new(getProjectGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, graphResponse{Message: "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, graphResponse{Message: "Invalid request params"})
	}

	enabled, err := parseGroupFilter(params.Groups)
	if err != nil {
		return c.JSON(http.StatusBadRequest, graphResponse{Message: err.Error()})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	docs, err := app.Storage.GetProjectDocuments(ctx, params.ProjectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, graphResponse{Message: "Internal server error"})
	}

	g := graph.Build(docs)
	if enabled != nil {
		g = graph.FilterGroups(g, enabled)
	}

	// Attach the persisted layout when the worker has computed one, so
	// clients can render immediately instead of from a cold start. A
	// missing or broken layout store is not fatal, but it must be
	// visible in the logs.
	positions, err := app.Storage.GetLayout(ctx, params.ProjectID)
	if err != nil {
		logger.Warn("[Server] Failed to load cached layout", "project_id", params.ProjectID, "error", err)
	}
	for _, pos := range positions {
		if n := g.Node(pos.NodeID); n != nil {
			n.X, n.Y = pos.X, pos.Y
		}
	}

	return c.JSON(http.StatusOK, graphResponse{
		Message: "Graph built",
		Graph:   g,
	})
}

func GetPaperGraphHandler(c echo.Context) error {
	type getPaperGraphParams struct {
		DocID string `param:"id" validate:"required"`
	}

	params := new(getPaperGraphParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, graphResponse{Message: "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, graphResponse{Message: "Invalid request params"})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	doc, err := app.Storage.GetDocument(ctx, params.DocID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, graphResponse{Message: "Internal server error"})
	}
	if doc == nil {
		return c.JSON(http.StatusNotFound, graphResponse{Message: "Paper not found"})
	}

	return c.JSON(http.StatusOK, graphResponse{
		Message: "Graph built",
		Graph:   graph.Build([]graph.DocumentRecord{*doc}),
	})
}
