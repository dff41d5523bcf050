package routes

import (
	"net/http"

	"coachnet/internal/server/middleware"
	"coachnet/pkg/network"

	"github.com/labstack/echo/v4"
)

func ResolveViewHandler(c echo.Context) error {
	type resolveViewParams struct {
		Mode            string   `json:"mode" validate:"required,oneof=node community"`
		NodeID          string   `json:"node_id"`
		Depth           int      `json:"depth" validate:"omitempty,oneof=1 2"`
		Community       string   `json:"community"`
		IncludeExternal bool     `json:"include_external"`
		Years           []string `json:"years"`
		Teams           []string `json:"teams"`
	}

	type viewEdgeResponse struct {
		From  string            `json:"from"`
		To    string            `json:"to"`
		Year  string            `json:"year"`
		Team  string            `json:"team"`
		Attrs map[string]string `json:"attrs"`
	}

	type resolveViewResponse struct {
		SnapshotID string             `json:"snapshot_id"`
		Nodes      []nodeResponse     `json:"nodes"`
		Edges      []viewEdgeResponse `json:"edges"`
		NodeCount  int                `json:"node_count"`
		EdgeCount  int                `json:"edge_count"`
		Degraded   bool               `json:"degraded"`
		Warning    string             `json:"warning,omitempty"`
	}

	params := new(resolveViewParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	snap := c.(*middleware.AppContext).App.Dataset.Snapshot

	view := snap.ResolveView(
		network.Selection{
			Mode:            network.Mode(params.Mode),
			NodeID:          params.NodeID,
			Depth:           params.Depth,
			Community:       params.Community,
			IncludeExternal: params.IncludeExternal,
		},
		network.Facets{
			Years: params.Years,
			Teams: params.Teams,
		},
	)

	edges := make([]viewEdgeResponse, 0, len(view.Edges))
	for _, e := range view.Edges {
		edges = append(edges, viewEdgeResponse{
			From:  e.From,
			To:    e.To,
			Year:  e.Year,
			Team:  e.Team,
			Attrs: e.Attrs,
		})
	}

	return c.JSON(http.StatusOK, resolveViewResponse{
		SnapshotID: snap.ID(),
		Nodes:      nodeResponses(snap, view.NodeIDs),
		Edges:      edges,
		NodeCount:  len(view.NodeIDs),
		EdgeCount:  len(edges),
		Degraded:   view.Degraded,
		Warning:    view.Warning,
	})
}
