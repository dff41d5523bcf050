package network

import "fmt"

// Mode selects how the focal node set of a view is chosen.
type Mode string

const (
	// ModeNode centers the view on a single coach and its neighborhood.
	ModeNode Mode = "node"
	// ModeCommunity centers the view on every member of one community.
	ModeCommunity Mode = "community"
)

// Selection describes what the caller wants to look at.
//
// In node mode, NodeID names the focal coach and Depth is 1 (direct
// connections) or 2 (connections of connections); any other depth is treated
// as 1. In community mode, Community names the cluster and IncludeExternal
// extends the membership by exactly one hop. There is no depth-2 community
// mode.
type Selection struct {
	Mode            Mode
	NodeID          string
	Depth           int
	Community       string
	IncludeExternal bool
}

// Facets narrow the edge set of an already-resolved selection. An empty
// slice means the facet is inactive; a non-empty slice keeps only edges
// whose value is in the set. Year and team compose by intersection. Values
// not present in the data simply match nothing.
type Facets struct {
	Years []string
	Teams []string
}

// View is the resolved subgraph: the visible nodes and edge instances.
// Degraded marks the full-graph fallback taken when the selection named a
// node or community the snapshot does not have.
type View struct {
	NodeIDs  []string
	Edges    []Edge
	Degraded bool
	Warning  string
}

// ResolveView derives the visible subgraph for a selection under facet
// filters. It is a pure function of (snapshot, selection, facets): it never
// mutates the snapshot and identical inputs yield identical views.
//
// Edges are restricted to those with both endpoints inside the selected node
// set, then facet-filtered, and the node set is recomputed from the surviving
// edge endpoints. The recompute can shrink the view below the original
// selection: a focal node whose every edge is filtered out disappears from
// the result.
func (s *Snapshot) ResolveView(sel Selection, facets Facets) View {
	var view View

	selected := s.selectNodes(sel, &view)

	filtered := make([]Edge, 0)
	for _, e := range s.edges {
		if _, ok := selected[e.From]; !ok {
			continue
		}
		if _, ok := selected[e.To]; !ok {
			continue
		}
		filtered = append(filtered, e)
	}
	filtered = applyFacets(filtered, facets)

	visible := make(map[string]struct{})
	for _, e := range filtered {
		visible[e.From] = struct{}{}
		visible[e.To] = struct{}{}
	}

	view.NodeIDs = sortedKeys(visible)
	view.Edges = filtered
	return view
}

// selectNodes computes the pre-facet node set. Selection errors are not
// errors: an unknown node or community degrades to the full graph with a
// warning on the view.
func (s *Snapshot) selectNodes(sel Selection, view *View) map[string]struct{} {
	switch sel.Mode {
	case ModeCommunity:
		members := s.communityMembers(sel.Community)
		if len(members) == 0 {
			view.Degraded = true
			view.Warning = fmt.Sprintf("community %q not found in the network, showing full network", sel.Community)
			return s.allNodes()
		}

		selected := make(map[string]struct{}, len(members))
		for _, id := range members {
			selected[id] = struct{}{}
		}
		if sel.IncludeExternal {
			// Always one hop, regardless of any depth setting.
			for _, id := range members {
				for n := range s.succ[id] {
					selected[n] = struct{}{}
				}
				for n := range s.pred[id] {
					selected[n] = struct{}{}
				}
			}
		}
		return selected

	default:
		if !s.HasNode(sel.NodeID) {
			view.Degraded = true
			view.Warning = fmt.Sprintf("node %q not found in the network, showing full network", sel.NodeID)
			return s.allNodes()
		}

		selected := map[string]struct{}{sel.NodeID: {}}
		firstHop := make(map[string]struct{})
		for n := range s.succ[sel.NodeID] {
			firstHop[n] = struct{}{}
		}
		for n := range s.pred[sel.NodeID] {
			firstHop[n] = struct{}{}
		}
		for n := range firstHop {
			selected[n] = struct{}{}
		}

		if sel.Depth == 2 {
			// Both hops treat edges as undirected so the view surfaces the
			// surrounding cluster, not just the downstream tree.
			for n := range firstHop {
				for m := range s.succ[n] {
					selected[m] = struct{}{}
				}
				for m := range s.pred[n] {
					selected[m] = struct{}{}
				}
			}
		}
		return selected
	}
}

func (s *Snapshot) allNodes() map[string]struct{} {
	all := make(map[string]struct{}, len(s.nodes))
	for id := range s.nodes {
		all[id] = struct{}{}
	}
	return all
}

func (s *Snapshot) communityMembers(community string) []string {
	if community == "" {
		return nil
	}
	var members []string
	for _, id := range s.nodeOrder {
		if s.nodes[id]["community"] == community {
			members = append(members, id)
		}
	}
	return members
}

// applyFacets intersects the active facet filters over the edge list.
func applyFacets(edges []Edge, facets Facets) []Edge {
	if len(facets.Years) > 0 {
		years := make(map[string]struct{}, len(facets.Years))
		for _, y := range facets.Years {
			years[y] = struct{}{}
		}
		kept := edges[:0:0]
		for _, e := range edges {
			if _, ok := years[e.Year]; ok {
				kept = append(kept, e)
			}
		}
		edges = kept
	}

	if len(facets.Teams) > 0 {
		teams := make(map[string]struct{}, len(facets.Teams))
		for _, t := range facets.Teams {
			teams[t] = struct{}{}
		}
		kept := edges[:0:0]
		for _, e := range edges {
			if _, ok := teams[e.Team]; ok {
				kept = append(kept, e)
			}
		}
		edges = kept
	}

	return edges
}
