package network

import (
	"sort"
	"strconv"
)

// Connection direction markers for the tabular views.
const (
	DirectionOutgoing = "outgoing"
	DirectionIncoming = "incoming"
)

// Connection is one row of the per-node connection tables: the edge instance
// plus the resolved other endpoint, for display next to the subgraph.
type Connection struct {
	Direction string
	NodeID    string
	Label     string
	Edge      Edge
}

// Connections lists every edge touching the node in the full snapshot (not a
// resolved view), under the same facet filters, ordered outgoing before
// incoming and most recent year first. This preserves all team-year
// combinations of a pair even when the graph view collapses them.
func (s *Snapshot) Connections(nodeID string, facets Facets) []Connection {
	var out, in []Edge
	for _, e := range s.edges {
		if e.From == nodeID {
			out = append(out, e)
		}
		if e.To == nodeID {
			in = append(in, e)
		}
	}
	out = applyFacets(out, facets)
	in = applyFacets(in, facets)

	connections := make([]Connection, 0, len(out)+len(in))
	for _, e := range out {
		connections = append(connections, Connection{
			Direction: DirectionOutgoing,
			NodeID:    e.To,
			Label:     s.Label(e.To),
			Edge:      e,
		})
	}
	for _, e := range in {
		connections = append(connections, Connection{
			Direction: DirectionIncoming,
			NodeID:    e.From,
			Label:     s.Label(e.From),
			Edge:      e,
		})
	}

	sort.SliceStable(connections, func(i, j int) bool {
		if connections[i].Direction != connections[j].Direction {
			return connections[i].Direction == DirectionOutgoing
		}
		return yearRank(connections[i].Edge.Year) > yearRank(connections[j].Edge.Year)
	})

	return connections
}

// yearRank orders year strings numerically, pushing unparsable values last.
func yearRank(year string) int {
	n, err := strconv.Atoi(year)
	if err != nil {
		return -1 << 31
	}
	return n
}
