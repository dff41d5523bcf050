package network

import (
	"errors"
	"reflect"
	"testing"

	"coachnet/pkg/table"
)

func TestLoad_CoachSchema(t *testing.T) {
	nodes := table.New(
		[]string{"coach_id", "coach", "community"},
		[][]string{{"1", "Andy Reid", "0"}, {"2", "Matt Nagy", "1"}},
	)
	edges := table.New(
		[]string{"from", "to", "team", "year"},
		[][]string{{"1", "2", "KC", "2019"}},
	)

	snap, err := Load(nodes, edges)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if snap.NodeCount() != 2 {
		t.Fatalf("expected 2 nodes, got %d", snap.NodeCount())
	}
	if got := snap.Label("1"); got != "Andy Reid" {
		t.Fatalf("expected label Andy Reid, got %q", got)
	}
	if snap.ID() == "" {
		t.Fatal("expected a generated snapshot id")
	}
}

func TestLoad_GenericSchemaEquivalence(t *testing.T) {
	coachNodes := table.New([]string{"coach_id", "coach"}, [][]string{{"1", "A"}, {"2", "B"}})
	genericNodes := table.New([]string{"id", "label"}, [][]string{{"1", "A"}, {"2", "B"}})
	fromToEdges := table.New([]string{"from", "to", "year"}, [][]string{{"1", "2", "2019"}})
	sourceTargetEdges := table.New([]string{"source", "target", "year"}, [][]string{{"1", "2", "2019"}})

	a, err := Load(coachNodes, fromToEdges)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	b, err := Load(genericNodes, sourceTargetEdges)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if !reflect.DeepEqual(a.NodeIDs(), b.NodeIDs()) {
		t.Fatalf("node sets differ: %v vs %v", a.NodeIDs(), b.NodeIDs())
	}
	if !reflect.DeepEqual(a.Successors("1"), b.Successors("1")) {
		t.Fatalf("adjacency differs: %v vs %v", a.Successors("1"), b.Successors("1"))
	}
	if a.Label("2") != b.Label("2") {
		t.Fatalf("labels differ: %q vs %q", a.Label("2"), b.Label("2"))
	}
}

func TestLoad_LabelFallsBackToID(t *testing.T) {
	nodes := table.New([]string{"id"}, [][]string{{"42"}})
	edges := table.New([]string{"from", "to"}, nil)

	snap, err := Load(nodes, edges)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := snap.Label("42"); got != "42" {
		t.Fatalf("expected label to fall back to id, got %q", got)
	}
}

func TestLoad_SchemaErrors(t *testing.T) {
	good := table.New([]string{"from", "to"}, nil)
	badNodes := table.New([]string{"name"}, nil)
	badEdges := table.New([]string{"a", "b"}, nil)
	goodNodes := table.New([]string{"coach_id"}, nil)

	if _, err := Load(badNodes, good); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema for bad node table, got %v", err)
	}
	if _, err := Load(goodNodes, badEdges); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema for bad edge table, got %v", err)
	}
}

func TestLoad_WeightPrecedence(t *testing.T) {
	nodes := table.New([]string{"coach_id"}, [][]string{{"1"}, {"2"}})

	tests := []struct {
		name    string
		columns []string
		row     []string
		want    float64
	}{
		{"weight wins over closeness", []string{"from", "to", "weight", "closeness"}, []string{"1", "2", "3", "9"}, 3},
		{"closeness wins over hierarchy", []string{"from", "to", "closeness", "hierarchy"}, []string{"1", "2", "0.5", "9"}, 0.5},
		{"hierarchy alone", []string{"from", "to", "hierarchy"}, []string{"1", "2", "2"}, 2},
		{"no strength column defaults to 1", []string{"from", "to"}, []string{"1", "2"}, 1},
		{"unparsable strength defaults to 1", []string{"from", "to", "weight"}, []string{"1", "2", "heavy"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := table.New(tt.columns, [][]string{tt.row})
			snap, err := Load(nodes, edges)
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if got := snap.Edges()[0].Weight; got != tt.want {
				t.Fatalf("expected weight %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLoad_EdgeOnlyEndpoints(t *testing.T) {
	nodes := table.New([]string{"coach_id", "coach"}, [][]string{{"1", "A"}})
	edges := table.New([]string{"from", "to"}, [][]string{{"1", "7"}})

	snap, err := Load(nodes, edges)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !snap.HasNode("7") {
		t.Fatal("expected edge-only endpoint to become a node")
	}
	if got := snap.Label("7"); got != "7" {
		t.Fatalf("expected synthetic label 7, got %q", got)
	}
	attrs := snap.Attributes("7")
	if attrs[AttrID] != "7" || attrs[AttrLabel] != "7" {
		t.Fatalf("expected synthetic attributes, got %v", attrs)
	}
}

func TestSnapshot_FacetValues(t *testing.T) {
	nodes := table.New(
		[]string{"coach_id", "community"},
		[][]string{{"1", "10"}, {"2", "2"}, {"3", "NA"}, {"4", ""}},
	)
	edges := table.New(
		[]string{"from", "to", "team", "year"},
		[][]string{
			{"1", "2", "KC", "2020"},
			{"2", "3", "CHI", "2019"},
			{"3", "4", "KC", "2019"},
		},
	)

	snap, err := Load(nodes, edges)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	// Communities sort numerically and skip empty/NA markers.
	if got := snap.Communities(); !reflect.DeepEqual(got, []string{"2", "10"}) {
		t.Fatalf("unexpected communities: %v", got)
	}
	if got := snap.Years(); !reflect.DeepEqual(got, []string{"2019", "2020"}) {
		t.Fatalf("unexpected years: %v", got)
	}
	if got := snap.Teams(); !reflect.DeepEqual(got, []string{"CHI", "KC"}) {
		t.Fatalf("unexpected teams: %v", got)
	}
}

func TestSnapshot_Adjacency(t *testing.T) {
	nodes := table.New([]string{"coach_id"}, [][]string{{"1"}, {"2"}, {"3"}})
	edges := table.New(
		[]string{"from", "to", "year"},
		[][]string{
			{"1", "2", "2018"},
			{"1", "2", "2019"},
			{"3", "1", "2019"},
		},
	)

	snap, err := Load(nodes, edges)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	// Parallel edge instances collapse to one neighbor.
	if got := snap.Successors("1"); !reflect.DeepEqual(got, []string{"2"}) {
		t.Fatalf("unexpected successors: %v", got)
	}
	if got := snap.Predecessors("1"); !reflect.DeepEqual(got, []string{"3"}) {
		t.Fatalf("unexpected predecessors: %v", got)
	}
	// But the edge list keeps every instance.
	if snap.EdgeCount() != 3 {
		t.Fatalf("expected 3 edge instances, got %d", snap.EdgeCount())
	}
}
