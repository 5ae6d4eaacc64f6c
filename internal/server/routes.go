package server

import (
	"paperatlas/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Graph routes
	apiRoutes.GET("/projects/:id/graph", routes.GetProjectGraphHandler)
	apiRoutes.GET("/projects/:id/graph/ws", routes.GraphSessionHandler)
	apiRoutes.POST("/projects/:id/layout", routes.PostProjectLayoutHandler)
	apiRoutes.GET("/papers/:id/graph", routes.GetPaperGraphHandler)
}
