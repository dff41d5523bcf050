package network

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"coachnet/pkg/table"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrSchema is returned when a node or edge table has none of the accepted
// column-name shapes. Schema errors are fatal: no partial snapshot is built.
var ErrSchema = errors.New("unrecognized table schema")

// Synthetic node attributes computed at load time.
const (
	AttrID    = "_id"
	AttrLabel = "_label"
)

// Edge is one edge instance in the snapshot. Attrs carries every column of
// the source row verbatim for pass-through display.
type Edge struct {
	From   string
	To     string
	Year   string
	Team   string
	Weight float64
	Attrs  map[string]string
}

// Snapshot is the immutable graph built once per dataset load: coach nodes
// with their attributes, both edge relations merged into one edge list, and
// adjacency indices for O(1) neighbor lookups. All query operations read the
// snapshot without mutating it, so one snapshot is safe to share across
// concurrent callers.
type Snapshot struct {
	id        string
	nodeOrder []string
	nodes     map[string]map[string]string
	edges     []Edge
	succ      map[string]map[string]struct{}
	pred      map[string]map[string]struct{}
}

// nodeSchema resolves the accepted node-table shapes: {coach_id, coach?} or
// {id, label?}. The label column falls back to the id column when absent.
func nodeSchema(t *table.Table) (idCol, labelCol string, err error) {
	switch {
	case t.HasColumn("coach_id"):
		idCol = "coach_id"
		labelCol = "coach_id"
		if t.HasColumn("coach") {
			labelCol = "coach"
		}
	case t.HasColumn("id"):
		idCol = "id"
		labelCol = "id"
		if t.HasColumn("label") {
			labelCol = "label"
		}
	default:
		return "", "", fmt.Errorf("%w: nodes table needs an 'id' or 'coach_id' column, have %v", ErrSchema, t.Columns())
	}
	return idCol, labelCol, nil
}

// edgeSchema resolves the accepted edge-table shapes: {from, to} or
// {source, target}.
func edgeSchema(t *table.Table) (srcCol, tgtCol string, err error) {
	switch {
	case t.HasColumn("from") && t.HasColumn("to"):
		return "from", "to", nil
	case t.HasColumn("source") && t.HasColumn("target"):
		return "source", "target", nil
	default:
		return "", "", fmt.Errorf("%w: edges table needs 'from'/'to' or 'source'/'target' columns, have %v", ErrSchema, t.Columns())
	}
}

// weightColumn picks the edge strength column: the first of weight,
// closeness, hierarchy that is present wins; with none present every edge
// defaults to weight 1.
func weightColumn(t *table.Table) string {
	for _, col := range []string{"weight", "closeness", "hierarchy"} {
		if t.HasColumn(col) {
			return col
		}
	}
	return ""
}

// Load builds a snapshot from a node table and an edge table. The node set
// is the union of node-table identities and edge endpoints; endpoints that
// have no node-table row still get synthetic _id/_label attributes so every
// edge can be displayed.
func Load(nodes, edges *table.Table) (*Snapshot, error) {
	idCol, labelCol, err := nodeSchema(nodes)
	if err != nil {
		return nil, err
	}
	srcCol, tgtCol, err := edgeSchema(edges)
	if err != nil {
		return nil, err
	}
	weightCol := weightColumn(edges)

	s := &Snapshot{
		id:    gonanoid.Must(),
		nodes: make(map[string]map[string]string, nodes.Len()),
		succ:  make(map[string]map[string]struct{}),
		pred:  make(map[string]map[string]struct{}),
	}

	for i := 0; i < nodes.Len(); i++ {
		id := nodes.Cell(i, idCol)
		if id == "" {
			continue
		}
		attrs := nodes.Row(i)
		attrs[AttrID] = id
		label := nodes.Cell(i, labelCol)
		if label == "" {
			label = id
		}
		attrs[AttrLabel] = label
		if _, ok := s.nodes[id]; !ok {
			s.nodeOrder = append(s.nodeOrder, id)
		}
		s.nodes[id] = attrs
	}

	s.edges = make([]Edge, 0, edges.Len())
	for i := 0; i < edges.Len(); i++ {
		from := edges.Cell(i, srcCol)
		to := edges.Cell(i, tgtCol)
		if from == "" || to == "" {
			continue
		}

		weight := 1.0
		if weightCol != "" {
			if w, err := strconv.ParseFloat(edges.Cell(i, weightCol), 64); err == nil {
				weight = w
			}
		}

		e := Edge{
			From:   from,
			To:     to,
			Year:   edges.Cell(i, "year"),
			Team:   edges.Cell(i, "team"),
			Weight: weight,
			Attrs:  edges.Row(i),
		}
		s.edges = append(s.edges, e)

		s.ensureNode(from)
		s.ensureNode(to)
		if _, ok := s.succ[from]; !ok {
			s.succ[from] = make(map[string]struct{})
		}
		s.succ[from][to] = struct{}{}
		if _, ok := s.pred[to]; !ok {
			s.pred[to] = make(map[string]struct{})
		}
		s.pred[to][from] = struct{}{}
	}

	return s, nil
}

func (s *Snapshot) ensureNode(id string) {
	if _, ok := s.nodes[id]; ok {
		return
	}
	s.nodes[id] = map[string]string{AttrID: id, AttrLabel: id}
	s.nodeOrder = append(s.nodeOrder, id)
}

// ID returns the snapshot's generated identifier.
func (s *Snapshot) ID() string {
	return s.id
}

// HasNode reports whether the id is known to the snapshot.
func (s *Snapshot) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// NodeIDs returns every node id, node-table rows first in table order, then
// edge-only endpoints in discovery order.
func (s *Snapshot) NodeIDs() []string {
	ids := make([]string, len(s.nodeOrder))
	copy(ids, s.nodeOrder)
	return ids
}

// NodeCount returns the number of nodes.
func (s *Snapshot) NodeCount() int {
	return len(s.nodes)
}

// EdgeCount returns the number of edge instances.
func (s *Snapshot) EdgeCount() int {
	return len(s.edges)
}

// Edges returns the full edge list. Callers must treat it as read-only.
func (s *Snapshot) Edges() []Edge {
	return s.edges
}

// Attributes returns a copy of the node's attributes, including the
// synthetic _id and _label. Unknown ids yield nil.
func (s *Snapshot) Attributes(id string) map[string]string {
	attrs, ok := s.nodes[id]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// Label returns the node's display label, falling back to the id itself for
// unknown nodes.
func (s *Snapshot) Label(id string) string {
	if attrs, ok := s.nodes[id]; ok {
		return attrs[AttrLabel]
	}
	return id
}

// Successors returns the distinct targets of edges leaving the node.
func (s *Snapshot) Successors(id string) []string {
	return sortedKeys(s.succ[id])
}

// Predecessors returns the distinct sources of edges entering the node.
func (s *Snapshot) Predecessors(id string) []string {
	return sortedKeys(s.pred[id])
}

// Communities returns the distinct non-empty community values present on
// nodes, sorted. "NA" markers from upstream exports are skipped.
func (s *Snapshot) Communities() []string {
	seen := make(map[string]struct{})
	for _, attrs := range s.nodes {
		c, ok := attrs["community"]
		if !ok || c == "" || c == "NA" {
			continue
		}
		seen[c] = struct{}{}
	}
	values := sortedKeys(seen)
	sortNumericAware(values)
	return values
}

// Years returns the distinct year values present on edges, sorted.
func (s *Snapshot) Years() []string {
	seen := make(map[string]struct{})
	for _, e := range s.edges {
		if e.Year != "" {
			seen[e.Year] = struct{}{}
		}
	}
	values := sortedKeys(seen)
	sortNumericAware(values)
	return values
}

// Teams returns the distinct team values present on edges, sorted.
func (s *Snapshot) Teams() []string {
	seen := make(map[string]struct{})
	for _, e := range s.edges {
		if e.Team != "" {
			seen[e.Team] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// sortNumericAware orders values numerically when every value parses as an
// integer, lexically otherwise.
func sortNumericAware(values []string) {
	nums := make(map[string]int, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return
		}
		nums[v] = n
	}
	sort.Slice(values, func(i, j int) bool {
		return nums[values[i]] < nums[values[j]]
	})
}
