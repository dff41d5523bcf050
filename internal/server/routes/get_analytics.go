package routes

import (
	"net/http"

	"coachnet/internal/server/middleware"
	"coachnet/pkg/annotations"
	"coachnet/pkg/table"

	"github.com/labstack/echo/v4"
)

// The analytics routes serve precomputed annotation tables as-is. Scores are
// produced offline by cmd/annotate; the server never runs graph algorithms.

func annotationTableResponse(c echo.Context, name string, t *table.Table) error {
	type analyticsResponse struct {
		Table string              `json:"table"`
		Rows  []map[string]string `json:"rows"`
	}

	if t == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Annotation table not available"})
	}
	return c.JSON(http.StatusOK, analyticsResponse{Table: name, Rows: annotations.Rows(t)})
}

func GetCentralityHandler(c echo.Context) error {
	annot := c.(*middleware.AppContext).App.Dataset.Annotations
	return annotationTableResponse(c, "centrality", annot.Centrality)
}

func GetInfluenceHandler(c echo.Context) error {
	annot := c.(*middleware.AppContext).App.Dataset.Annotations
	return annotationTableResponse(c, "influence", annot.Influence)
}

func GetDownstreamByYearHandler(c echo.Context) error {
	annot := c.(*middleware.AppContext).App.Dataset.Annotations
	return annotationTableResponse(c, "downstream_by_year", annot.DownstreamByYear)
}

func GetDownstreamOverallHandler(c echo.Context) error {
	annot := c.(*middleware.AppContext).App.Dataset.Annotations
	return annotationTableResponse(c, "downstream_overall", annot.DownstreamOverall)
}
