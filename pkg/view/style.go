package view

import "paperatlas/pkg/graph"

// Style is the presentation policy for one node group. All color and
// sizing decisions dispatch through the Styles table so renderers and
// the collision force agree on node extents.
type Style struct {
	Color      string
	BaseRadius float64
	BaseWeight int
}

// Styles covers every node group. Radius and Color fall back to the
// paper style for an unknown group, which only happens on corrupted
// input.
var Styles = map[graph.Group]Style{
	graph.GroupPaper:     {Color: "#4f8ef7", BaseRadius: 14, BaseWeight: 10},
	graph.GroupAuthor:    {Color: "#f7a14f", BaseRadius: 9, BaseWeight: 5},
	graph.GroupInstitute: {Color: "#9b59b6", BaseRadius: 11, BaseWeight: 6},
	graph.GroupConcept:   {Color: "#2ecc71", BaseRadius: 7, BaseWeight: 3},
	graph.GroupMethod:    {Color: "#e74c3c", BaseRadius: 7, BaseWeight: 3},
}

// maxRadiusGrowth caps how much a heavily referenced node can outgrow
// its base radius, so hub nodes stay readable instead of swallowing the
// viewport.
const maxRadiusGrowth = 10

// Radius returns the rendered radius of a node: the group base plus a
// modest, capped growth per document reference beyond the first.
func Radius(n *graph.Node) float64 {
	style, ok := Styles[n.Group]
	if !ok {
		style = Styles[graph.GroupPaper]
	}

	growth := float64(n.Weight-style.BaseWeight) * 0.8
	if growth < 0 {
		growth = 0
	}
	if growth > maxRadiusGrowth {
		growth = maxRadiusGrowth
	}
	return style.BaseRadius + growth
}

// Color returns the fill color for a node.
func Color(n *graph.Node) string {
	if style, ok := Styles[n.Group]; ok {
		return style.Color
	}
	return Styles[graph.GroupPaper].Color
}
