package routes

import (
	"net/http"

	"coachnet/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

func GetCommunitiesHandler(c echo.Context) error {
	type getCommunitiesResponse struct {
		Communities []string `json:"communities"`
	}

	snap := c.(*middleware.AppContext).App.Dataset.Snapshot
	return c.JSON(http.StatusOK, getCommunitiesResponse{Communities: snap.Communities()})
}

func GetCommunitySummaryHandler(c echo.Context) error {
	type getCommunitySummaryParams struct {
		Community string `param:"id" validate:"required"`
	}

	params := new(getCommunitySummaryParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	annot := c.(*middleware.AppContext).App.Dataset.Annotations
	row, ok := annot.CommunitySummaryRow(params.Community)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Community summary not found"})
	}

	return c.JSON(http.StatusOK, row)
}
