package routes

import (
	"net/http"

	"coachnet/internal/server/middleware"
	"coachnet/pkg/network"

	"github.com/labstack/echo/v4"
)

type nodeResponse struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	Attributes map[string]string `json:"attributes"`
}

func nodeResponses(snap *network.Snapshot, ids []string) []nodeResponse {
	out := make([]nodeResponse, 0, len(ids))
	for _, id := range ids {
		attrs := snap.Attributes(id)
		delete(attrs, network.AttrID)
		delete(attrs, network.AttrLabel)
		out = append(out, nodeResponse{
			ID:         id,
			Label:      snap.Label(id),
			Attributes: attrs,
		})
	}
	return out
}

func GetNodesHandler(c echo.Context) error {
	snap := c.(*middleware.AppContext).App.Dataset.Snapshot
	return c.JSON(http.StatusOK, nodeResponses(snap, snap.NodeIDs()))
}

func GetNodeConnectionsHandler(c echo.Context) error {
	type getConnectionsParams struct {
		NodeID string   `param:"id" validate:"required"`
		Years  []string `query:"years"`
		Teams  []string `query:"teams"`
	}

	type connectionResponse struct {
		Direction string            `json:"direction"`
		NodeID    string            `json:"node_id"`
		Label     string            `json:"label"`
		Year      string            `json:"year"`
		Team      string            `json:"team"`
		Attrs     map[string]string `json:"attrs"`
	}

	type getConnectionsResponse struct {
		Node        nodeResponse         `json:"node"`
		Outgoing    []connectionResponse `json:"outgoing"`
		Incoming    []connectionResponse `json:"incoming"`
		Connections []connectionResponse `json:"connections"`
	}

	params := new(getConnectionsParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	snap := c.(*middleware.AppContext).App.Dataset.Snapshot
	if !snap.HasNode(params.NodeID) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Node not found"})
	}

	connections := snap.Connections(params.NodeID, network.Facets{
		Years: params.Years,
		Teams: params.Teams,
	})

	resp := getConnectionsResponse{
		Node:        nodeResponses(snap, []string{params.NodeID})[0],
		Outgoing:    make([]connectionResponse, 0),
		Incoming:    make([]connectionResponse, 0),
		Connections: make([]connectionResponse, 0, len(connections)),
	}
	for _, conn := range connections {
		r := connectionResponse{
			Direction: conn.Direction,
			NodeID:    conn.NodeID,
			Label:     conn.Label,
			Year:      conn.Edge.Year,
			Team:      conn.Edge.Team,
			Attrs:     conn.Edge.Attrs,
		}
		resp.Connections = append(resp.Connections, r)
		if conn.Direction == network.DirectionOutgoing {
			resp.Outgoing = append(resp.Outgoing, r)
		} else {
			resp.Incoming = append(resp.Incoming, r)
		}
	}

	return c.JSON(http.StatusOK, resp)
}
