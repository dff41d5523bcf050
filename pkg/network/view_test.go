package network

import (
	"reflect"
	"testing"

	"coachnet/pkg/table"
)

// viewSnapshot builds the small fixture graph used across the view tests:
//
//	A -> B (KC 2019), C -> A (CHI 2018), B -> D (KC 2019), E -> F (NYG 2017)
//
// A, B, C carry community 0; D, E, F carry community 1.
func viewSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	nodes := table.New(
		[]string{"coach_id", "coach", "community"},
		[][]string{
			{"A", "Coach A", "0"},
			{"B", "Coach B", "0"},
			{"C", "Coach C", "0"},
			{"D", "Coach D", "1"},
			{"E", "Coach E", "1"},
			{"F", "Coach F", "1"},
		},
	)
	edges := table.New(
		[]string{"from", "to", "team", "year"},
		[][]string{
			{"A", "B", "KC", "2019"},
			{"C", "A", "CHI", "2018"},
			{"B", "D", "KC", "2019"},
			{"E", "F", "NYG", "2017"},
		},
	)
	snap, err := Load(nodes, edges)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return snap
}

func TestResolveView_NodeDepth1(t *testing.T) {
	snap := viewSnapshot(t)

	view := snap.ResolveView(Selection{Mode: ModeNode, NodeID: "A", Depth: 1}, Facets{})

	if view.Degraded {
		t.Fatal("expected no degradation")
	}
	// Depth 1 is undirected: successors and predecessors both count.
	if !reflect.DeepEqual(view.NodeIDs, []string{"A", "B", "C"}) {
		t.Fatalf("unexpected nodes: %v", view.NodeIDs)
	}
	if len(view.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(view.Edges))
	}
}

func TestResolveView_NodeDepth2(t *testing.T) {
	snap := viewSnapshot(t)

	view := snap.ResolveView(Selection{Mode: ModeNode, NodeID: "A", Depth: 2}, Facets{})

	if !reflect.DeepEqual(view.NodeIDs, []string{"A", "B", "C", "D"}) {
		t.Fatalf("unexpected nodes: %v", view.NodeIDs)
	}
	if len(view.Edges) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(view.Edges))
	}
}

func TestResolveView_CommunityMode(t *testing.T) {
	snap := viewSnapshot(t)

	view := snap.ResolveView(Selection{Mode: ModeCommunity, Community: "0"}, Facets{})

	// B -> D leaves the community, so D stays invisible and the edge is cut.
	if !reflect.DeepEqual(view.NodeIDs, []string{"A", "B", "C"}) {
		t.Fatalf("unexpected nodes: %v", view.NodeIDs)
	}
	if len(view.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(view.Edges))
	}
}

func TestResolveView_CommunityIncludeExternal(t *testing.T) {
	snap := viewSnapshot(t)

	view := snap.ResolveView(Selection{Mode: ModeCommunity, Community: "0", IncludeExternal: true}, Facets{})

	// One hop out pulls in D; E and F stay outside.
	if !reflect.DeepEqual(view.NodeIDs, []string{"A", "B", "C", "D"}) {
		t.Fatalf("unexpected nodes: %v", view.NodeIDs)
	}
	if len(view.Edges) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(view.Edges))
	}
}

func TestResolveView_FacetsIntersect(t *testing.T) {
	snap := viewSnapshot(t)

	view := snap.ResolveView(
		Selection{Mode: ModeNode, NodeID: "A", Depth: 2},
		Facets{Years: []string{"2019"}, Teams: []string{"KC"}},
	)

	if len(view.Edges) != 2 {
		t.Fatalf("expected 2 edges after faceting, got %d", len(view.Edges))
	}
	// C's only edge is 2018/CHI, so the recompute drops C from the view.
	if !reflect.DeepEqual(view.NodeIDs, []string{"A", "B", "D"}) {
		t.Fatalf("unexpected nodes: %v", view.NodeIDs)
	}
}

func TestResolveView_FacetMismatchYieldsEmptyView(t *testing.T) {
	snap := viewSnapshot(t)

	view := snap.ResolveView(
		Selection{Mode: ModeNode, NodeID: "A", Depth: 1},
		Facets{Years: []string{"1999"}},
	)

	if view.Degraded {
		t.Fatal("facet mismatch must not degrade the selection")
	}
	if len(view.NodeIDs) != 0 || len(view.Edges) != 0 {
		t.Fatalf("expected empty view, got %d nodes, %d edges", len(view.NodeIDs), len(view.Edges))
	}
}

func TestResolveView_UnknownNodeDegrades(t *testing.T) {
	snap := viewSnapshot(t)

	view := snap.ResolveView(Selection{Mode: ModeNode, NodeID: "nobody", Depth: 1}, Facets{})

	if !view.Degraded {
		t.Fatal("expected degraded view")
	}
	if view.Warning == "" {
		t.Fatal("expected a warning on the degraded view")
	}
	if len(view.Edges) != 4 {
		t.Fatalf("expected the full edge list, got %d edges", len(view.Edges))
	}
}

func TestResolveView_UnknownCommunityDegrades(t *testing.T) {
	snap := viewSnapshot(t)

	view := snap.ResolveView(Selection{Mode: ModeCommunity, Community: "99"}, Facets{})

	if !view.Degraded {
		t.Fatal("expected degraded view")
	}
	if len(view.Edges) != 4 {
		t.Fatalf("expected the full edge list, got %d edges", len(view.Edges))
	}
}

func TestResolveView_Deterministic(t *testing.T) {
	snap := viewSnapshot(t)

	sel := Selection{Mode: ModeNode, NodeID: "A", Depth: 2}
	facets := Facets{Years: []string{"2019", "2018"}}

	first := snap.ResolveView(sel, facets)
	second := snap.ResolveView(sel, facets)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must yield identical views")
	}
}
