// Package analysis is the offline annotator: it computes the influence
// scores, community assignments, and promotion-value rollups that the query
// core consumes as opaque pass-through tables. The server never calls into
// this package; cmd/annotate runs it and writes CSVs.
package analysis

import (
	"sort"
	"strconv"

	"coachnet/pkg/network"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	gonet "gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
)

const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-6
)

// idIndex maps snapshot node ids onto the dense int64 ids gonum graphs use.
type idIndex struct {
	toInt  map[string]int64
	toName []string
}

func indexNodes(snap *network.Snapshot) *idIndex {
	ids := snap.NodeIDs()
	sort.Strings(ids)
	idx := &idIndex{
		toInt:  make(map[string]int64, len(ids)),
		toName: ids,
	}
	for i, id := range ids {
		idx.toInt[id] = int64(i)
	}
	return idx
}

// Influence computes PageRank scores over the snapshot's directed edge
// relation, with parallel edge instances accumulated into the edge weight on
// top of a unit base. Self loops are skipped.
func Influence(snap *network.Snapshot, edgeValue func(network.Edge) float64) map[string]float64 {
	idx := indexNodes(snap)

	g := simple.NewWeightedDirectedGraph(0, 0)
	for _, id := range idx.toName {
		g.AddNode(simple.Node(idx.toInt[id]))
	}

	type pair struct{ from, to int64 }
	weights := make(map[pair]float64)
	for _, e := range snap.Edges() {
		if e.From == e.To {
			continue
		}
		p := pair{from: idx.toInt[e.From], to: idx.toInt[e.To]}
		w := 1.0
		if edgeValue != nil {
			w += edgeValue(e)
		}
		weights[p] += w
	}
	for p, w := range weights {
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(p.from), simple.Node(p.to), w))
	}

	ranks := gonet.PageRank(g, pageRankDamping, pageRankTolerance)

	scores := make(map[string]float64, len(ranks))
	for id, n := range idx.toInt {
		scores[id] = ranks[n]
	}
	return scores
}

// Communities runs Louvain modularization over the undirected projection of
// the snapshot's edges and returns a community label per node. Labels are
// assigned in order of each community's smallest member id so repeated runs
// over the same snapshot produce stable names.
func Communities(snap *network.Snapshot, resolution float64) map[string]string {
	idx := indexNodes(snap)

	g := simple.NewWeightedUndirectedGraph(0, 0)
	for _, id := range idx.toName {
		g.AddNode(simple.Node(idx.toInt[id]))
	}

	type pair struct{ a, b int64 }
	weights := make(map[pair]float64)
	for _, e := range snap.Edges() {
		if e.From == e.To {
			continue
		}
		a, b := idx.toInt[e.From], idx.toInt[e.To]
		if a > b {
			a, b = b, a
		}
		weights[pair{a: a, b: b}]++
	}
	for p, w := range weights {
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(p.a), simple.Node(p.b), w))
	}

	reduced := community.Modularize(g, resolution, nil)

	groups := reduced.Communities()
	sort.Slice(groups, func(i, j int) bool {
		return minNodeID(groups[i]) < minNodeID(groups[j])
	})

	labels := make(map[string]string, len(idx.toName))
	for label, group := range groups {
		for _, n := range group {
			labels[idx.toName[n.ID()]] = strconv.Itoa(label)
		}
	}
	return labels
}

func minNodeID(nodes []graph.Node) int64 {
	min := nodes[0].ID()
	for _, n := range nodes[1:] {
		if n.ID() < min {
			min = n.ID()
		}
	}
	return min
}
