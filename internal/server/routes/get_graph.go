package routes

import (
	"net/http"

	"coachnet/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

func GetGraphHandler(c echo.Context) error {
	type getGraphResponse struct {
		SnapshotID  string   `json:"snapshot_id"`
		NodeCount   int      `json:"node_count"`
		EdgeCount   int      `json:"edge_count"`
		Years       []string `json:"years"`
		Teams       []string `json:"teams"`
		Communities []string `json:"communities"`
	}

	snap := c.(*middleware.AppContext).App.Dataset.Snapshot

	return c.JSON(http.StatusOK, getGraphResponse{
		SnapshotID:  snap.ID(),
		NodeCount:   snap.NodeCount(),
		EdgeCount:   snap.EdgeCount(),
		Years:       snap.Years(),
		Teams:       snap.Teams(),
		Communities: snap.Communities(),
	})
}
