package server

import (
	"coachnet/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Graph routes
	apiRoutes.GET("/graph", routes.GetGraphHandler)
	apiRoutes.GET("/nodes", routes.GetNodesHandler)
	apiRoutes.GET("/nodes/:id/connections", routes.GetNodeConnectionsHandler)
	apiRoutes.POST("/view", routes.ResolveViewHandler)

	// Community routes
	apiRoutes.GET("/communities", routes.GetCommunitiesHandler)
	apiRoutes.GET("/communities/:id/summary", routes.GetCommunitySummaryHandler)

	// Analytics routes (pass-through annotation tables)
	apiRoutes.GET("/analytics/centrality", routes.GetCentralityHandler)
	apiRoutes.GET("/analytics/influence", routes.GetInfluenceHandler)
	apiRoutes.GET("/analytics/downstream/yearly", routes.GetDownstreamByYearHandler)
	apiRoutes.GET("/analytics/downstream/career", routes.GetDownstreamOverallHandler)
}
