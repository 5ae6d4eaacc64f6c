package graph

// FilterGroups returns a fresh graph containing only nodes whose group
// is enabled, and only edges whose endpoints both survive. The input
// graph is not modified. A nil or empty enabled set yields an empty
// graph, which downstream consumers render as a blank scene.
func FilterGroups(g *Graph, enabled map[Group]bool) *Graph {
	filtered := New()
	if g == nil {
		return filtered
	}

	for _, node := range g.Nodes {
		if !enabled[node.Group] {
			continue
		}
		copied := *node
		filtered.Nodes = append(filtered.Nodes, &copied)
		filtered.byID[copied.ID] = &copied
	}

	for _, edge := range g.Edges {
		if filtered.byID[edge.Source] == nil || filtered.byID[edge.Target] == nil {
			continue
		}
		filtered.AddEdge(edge.Source, edge.Target, edge.Relation)
	}

	return filtered
}

// AllGroups returns an enabled-set covering every node group, the
// default filter state.
func AllGroups() map[Group]bool {
	enabled := make(map[Group]bool, len(Groups))
	for _, group := range Groups {
		enabled[group] = true
	}
	return enabled
}
