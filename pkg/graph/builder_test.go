package graph

import (
	"fmt"
	"reflect"
	"sort"
	"testing"
)

func TestBuildSingleDocument(t *testing.T) {
	docs := []DocumentRecord{
		{
			ID:          "42",
			Title:       "Graph Attention Networks",
			PublishedAt: "2018-02-04",
			Summary:     "Attention over graph neighborhoods.",
			Authors:     []string{"P. Velickovic", " G. Cucurull "},
			Institute:   " MILA ",
			KeyConcepts: []string{"attention", "GNN"},
			Methods:     []string{"self-attention"},
		},
	}

	g := Build(docs)

	paper := g.Node("paper:42")
	if paper == nil {
		t.Fatal("expected paper node")
	}
	if paper.Weight != 10 {
		t.Errorf("paper weight = %d, want 10", paper.Weight)
	}
	if paper.Meta == nil || paper.Meta.DocID != "42" || paper.Meta.Title != "Graph Attention Networks" {
		t.Errorf("paper meta = %+v, want populated", paper.Meta)
	}

	author := g.Node("author:G. Cucurull")
	if author == nil {
		t.Fatal("expected trimmed author node")
	}
	if author.Weight != 5 {
		t.Errorf("author weight = %d, want 5", author.Weight)
	}
	if author.Meta != nil {
		t.Error("author node should carry no metadata")
	}

	inst := g.Node("inst:MILA")
	if inst == nil {
		t.Fatal("expected trimmed institute node")
	}
	if inst.Weight != 6 {
		t.Errorf("institute weight = %d, want 6", inst.Weight)
	}

	concept := g.Node("concept:gnn")
	if concept == nil {
		t.Fatal("expected lower-cased concept id")
	}
	if concept.Label != "Gnn" {
		t.Errorf("concept label = %q, want %q", concept.Label, "Gnn")
	}

	wantRelations := map[string]int{
		"written_by":      2,
		"published_at":    1,
		"affiliated_with": 2,
		"discusses":       2,
		"uses_method":     1,
	}
	gotRelations := map[string]int{}
	for _, e := range g.Edges {
		gotRelations[e.Relation]++
	}
	if !reflect.DeepEqual(gotRelations, wantRelations) {
		t.Errorf("edge relations = %v, want %v", gotRelations, wantRelations)
	}
}

func TestBuildTruncation(t *testing.T) {
	docs := []DocumentRecord{
		{
			ID:          "1",
			Title:       "Busy Paper",
			Authors:     []string{"A"},
			KeyConcepts: []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"},
			Methods:     []string{"m1", "m2", "m3", "m4", "m5"},
		},
	}

	g := Build(docs)

	concepts, methods := 0, 0
	for _, n := range g.Nodes {
		switch n.Group {
		case GroupConcept:
			concepts++
		case GroupMethod:
			methods++
		}
	}
	if concepts != 5 {
		t.Errorf("concept nodes = %d, want 5", concepts)
	}
	if methods != 3 {
		t.Errorf("method nodes = %d, want 3", methods)
	}

	discusses, uses := 0, 0
	for _, e := range g.Edges {
		switch e.Relation {
		case "discusses":
			discusses++
		case "uses_method":
			uses++
		}
	}
	if discusses != 5 {
		t.Errorf("discusses edges = %d, want 5", discusses)
	}
	if uses != 3 {
		t.Errorf("uses_method edges = %d, want 3", uses)
	}
}

func TestBuildWeightAccumulation(t *testing.T) {
	docs := []DocumentRecord{
		{ID: "1", Title: "First", Authors: []string{"K. Chen"}},
		{ID: "2", Title: "Second", Authors: []string{" K. Chen "}},
	}

	g := Build(docs)

	author := g.Node("author:K. Chen")
	if author == nil {
		t.Fatal("expected single merged author node")
	}
	if author.Weight != 6 {
		t.Errorf("author weight = %d, want 6 (base 5 + one merge)", author.Weight)
	}

	authors := 0
	for _, n := range g.Nodes {
		if n.Group == GroupAuthor {
			authors++
		}
	}
	if authors != 1 {
		t.Errorf("author nodes = %d, want 1", authors)
	}
}

func TestBuildSharedInstituteScenario(t *testing.T) {
	docs := []DocumentRecord{
		{ID: "1", Title: "Doc1", Authors: []string{"K. Chen"}, Institute: "MIT", KeyConcepts: []string{"GNN"}},
		{ID: "2", Title: "Doc2", Authors: []string{"K. Chen"}, Institute: "MIT", KeyConcepts: []string{"GNN"}},
	}

	g := Build(docs)

	counts := map[Group]int{}
	for _, n := range g.Nodes {
		counts[n.Group]++
	}
	want := map[Group]int{GroupPaper: 2, GroupAuthor: 1, GroupInstitute: 1, GroupConcept: 1}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("node counts = %v, want %v", counts, want)
	}

	if w := g.Node("author:K. Chen").Weight; w != 7 {
		t.Errorf("author weight = %d, want 7", w)
	}
	if w := g.Node("inst:MIT").Weight; w != 8 {
		t.Errorf("institute weight = %d, want 8", w)
	}
	if w := g.Node("concept:gnn").Weight; w != 5 {
		t.Errorf("concept weight = %d, want 5", w)
	}

	relations := map[string]int{}
	for _, e := range g.Edges {
		relations[e.Relation]++
	}
	// The author/institute pair repeats across documents; pair+relation
	// dedup collapses it to a single affiliation edge.
	wantRelations := map[string]int{
		"written_by":      2,
		"published_at":    2,
		"affiliated_with": 1,
		"discusses":       2,
	}
	if !reflect.DeepEqual(relations, wantRelations) {
		t.Errorf("edge relations = %v, want %v", relations, wantRelations)
	}
}

func TestBuildDeterministic(t *testing.T) {
	docs := []DocumentRecord{
		{ID: "1", Title: "A", Authors: []string{"X", "Y"}, Institute: "Inst", KeyConcepts: []string{"c"}},
		{ID: "2", Title: "B", Authors: []string{"Y"}, Institute: "Inst", Methods: []string{"m"}},
	}
	reversed := []DocumentRecord{docs[1], docs[0]}

	first := Build(docs)
	second := Build(reversed)

	if got, want := nodeSummary(first), nodeSummary(second); !reflect.DeepEqual(got, want) {
		t.Errorf("node sets differ across input order:\n%v\n%v", got, want)
	}
	if got, want := edgeSummary(first), edgeSummary(second); !reflect.DeepEqual(got, want) {
		t.Errorf("edge sets differ across input order:\n%v\n%v", got, want)
	}
}

func TestBuildNoSelfLoops(t *testing.T) {
	docs := []DocumentRecord{
		{ID: "1", Title: "Odd", Authors: []string{"Solo"}, Institute: "Solo", KeyConcepts: []string{"solo"}},
	}

	g := Build(docs)
	for _, e := range g.Edges {
		if e.Source == e.Target {
			t.Errorf("self-loop edge %v", e)
		}
	}
}

func TestBuildMalformedInput(t *testing.T) {
	docs := []DocumentRecord{
		{ID: "1", Title: "Sparse"},
		{ID: "2", Title: "Blanks", Authors: []string{"", "  "}, Institute: "   ", KeyConcepts: []string{""}, Methods: nil},
	}

	g := Build(docs)

	if len(g.Nodes) != 2 {
		t.Errorf("nodes = %d, want only the 2 paper nodes", len(g.Nodes))
	}
	if len(g.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(g.Edges))
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"gnn", "Gnn"},
		{"mrna typing", "Mrna typing"},
		{"éclair method", "Éclair method"},
		{"Already", "Already"},
	}

	for _, tt := range tests {
		if got := capitalizeFirst(tt.in); got != tt.want {
			t.Errorf("capitalizeFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func nodeSummary(g *Graph) []string {
	out := make([]string, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		out = append(out, fmt.Sprintf("%s|%s|%d", n.ID, n.Group, n.Weight))
	}
	sort.Strings(out)
	return out
}

func edgeSummary(g *Graph) []string {
	out := make([]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		out = append(out, edgeKey(e.Source, e.Target, e.Relation))
	}
	sort.Strings(out)
	return out
}
