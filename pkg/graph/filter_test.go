package graph

import "testing"

func buildFilterFixture() *Graph {
	return Build([]DocumentRecord{
		{
			ID:          "1",
			Title:       "Doc",
			Authors:     []string{"A"},
			Institute:   "Inst",
			KeyConcepts: []string{"topic"},
			Methods:     []string{"method"},
		},
	})
}

func TestFilterGroupsDropsNodesAndEdges(t *testing.T) {
	g := buildFilterFixture()

	enabled := AllGroups()
	enabled[GroupConcept] = false

	filtered := FilterGroups(g, enabled)

	for _, n := range filtered.Nodes {
		if n.Group == GroupConcept {
			t.Errorf("concept node %s survived filter", n.ID)
		}
	}
	for _, e := range filtered.Edges {
		if e.Relation == "discusses" {
			t.Errorf("edge %v references filtered concept", e)
		}
		if filtered.Node(e.Source) == nil || filtered.Node(e.Target) == nil {
			t.Errorf("dangling edge %v", e)
		}
	}
}

func TestFilterGroupsPreservesWeightsAndInput(t *testing.T) {
	g := buildFilterFixture()
	before := len(g.Nodes)

	filtered := FilterGroups(g, map[Group]bool{GroupPaper: true, GroupAuthor: true})

	if len(g.Nodes) != before {
		t.Error("filter mutated input graph")
	}

	paper := filtered.Node("paper:1")
	if paper == nil || paper.Weight != 10 {
		t.Errorf("filtered paper = %+v, want weight 10", paper)
	}

	if len(filtered.Edges) != 1 || filtered.Edges[0].Relation != "written_by" {
		t.Errorf("filtered edges = %v, want single written_by", filtered.Edges)
	}

	// Copied nodes must be independent of the source graph.
	paper.Weight = 99
	if g.Node("paper:1").Weight == 99 {
		t.Error("filtered graph shares node storage with input")
	}
}

func TestFilterGroupsEmptyResult(t *testing.T) {
	g := buildFilterFixture()

	filtered := FilterGroups(g, nil)
	if len(filtered.Nodes) != 0 || len(filtered.Edges) != 0 {
		t.Errorf("nil enabled set: got %d nodes, %d edges, want empty", len(filtered.Nodes), len(filtered.Edges))
	}

	filtered = FilterGroups(nil, AllGroups())
	if len(filtered.Nodes) != 0 {
		t.Error("nil graph should filter to empty graph")
	}
}

func TestNeighborSet(t *testing.T) {
	g := New()
	g.AddNode("a", "A", GroupPaper, 10, nil)
	g.AddNode("b", "B", GroupAuthor, 5, nil)
	g.AddNode("c", "C", GroupConcept, 3, nil)
	g.AddNode("d", "D", GroupPaper, 10, nil)
	g.AddNode("e", "E", GroupAuthor, 5, nil)
	g.AddEdge("a", "b", "written_by")
	g.AddEdge("a", "c", "discusses")
	g.AddEdge("d", "e", "written_by")

	got := g.NeighborSet("a")
	want := map[string]bool{"a": true, "b": true, "c": true}
	if len(got) != len(want) {
		t.Fatalf("neighborhood = %v, want %v", got, want)
	}
	for id := range want {
		if !got[id] {
			t.Errorf("neighborhood missing %s", id)
		}
	}

	if got := g.NeighborSet("missing"); len(got) != 0 {
		t.Errorf("unknown id neighborhood = %v, want empty", got)
	}
}

func TestAddEdgeSymmetryDedup(t *testing.T) {
	g := New()
	g.AddNode("a", "A", GroupPaper, 10, nil)
	g.AddNode("b", "B", GroupAuthor, 5, nil)

	if !g.AddEdge("a", "b", "written_by") {
		t.Fatal("first edge rejected")
	}
	if g.AddEdge("b", "a", "written_by") {
		t.Error("reversed duplicate accepted")
	}
	if !g.AddEdge("b", "a", "reviewed_by") {
		t.Error("same pair with different relation rejected")
	}
	if g.AddEdge("a", "a", "self") {
		t.Error("self-loop accepted")
	}

	if len(g.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(g.Edges))
	}
}
