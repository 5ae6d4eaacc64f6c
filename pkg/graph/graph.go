package graph

// Group classifies a node into one of the five fixed kinds the
// visualization knows how to present. The set is closed: color, sizing
// and filter behavior are dispatched over it through exhaustive tables.
type Group string

const (
	GroupPaper     Group = "paper"
	GroupAuthor    Group = "author"
	GroupInstitute Group = "institute"
	GroupConcept   Group = "concept"
	GroupMethod    Group = "method"
)

// Groups lists every node group in presentation order.
var Groups = []Group{GroupPaper, GroupAuthor, GroupInstitute, GroupConcept, GroupMethod}

// PaperMeta carries the document payload attached to paper nodes.
// Other node kinds have no metadata.
type PaperMeta struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Summary string `json:"summary"`
	DocID   string `json:"doc_id"`
}

// Node is a typed vertex. Weight starts at a group-specific base value
// and grows by one every time the same id is re-added, so it reflects
// how many documents reference the node.
//
// X/Y are owned by the layout engine once a simulation starts. FX/FY
// pin the node to a fixed position while set (used during drag).
type Node struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Group  Group      `json:"group"`
	Weight int        `json:"weight"`
	Meta   *PaperMeta `json:"meta,omitempty"`

	X  float64  `json:"x"`
	Y  float64  `json:"y"`
	FX *float64 `json:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty"`
}

// Edge is an undirected relation between two node ids. Source and
// Target are ids at construction time; the layout engine resolves them
// to node references in its own working copy.
type Edge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}

// Graph is a deduplicated multigraph of typed nodes and undirected,
// labeled edges. Use New and the Add methods so the dedup invariants
// hold; a zero Graph is not usable.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []Edge  `json:"edges"`

	byID     map[string]*Node
	edgeKeys map[string]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		Nodes:    make([]*Node, 0),
		Edges:    make([]Edge, 0),
		byID:     make(map[string]*Node),
		edgeKeys: make(map[string]struct{}),
	}
}

// AddNode inserts a node or, when the id already exists, increments the
// existing node's weight by one. The first-seen label, group and
// metadata win permanently; re-adds never overwrite them.
func (g *Graph) AddNode(id, label string, group Group, baseWeight int, meta *PaperMeta) *Node {
	if existing, ok := g.byID[id]; ok {
		existing.Weight++
		return existing
	}

	node := &Node{
		ID:     id,
		Label:  label,
		Group:  group,
		Weight: baseWeight,
		Meta:   meta,
	}
	g.Nodes = append(g.Nodes, node)
	g.byID[id] = node
	return node
}

// AddEdge inserts an undirected edge. Self-loops are dropped, as is any
// edge whose unordered endpoint pair and relation already exist,
// regardless of the direction it was first added in.
func (g *Graph) AddEdge(source, target, relation string) bool {
	if source == target {
		return false
	}

	key := edgeKey(source, target, relation)
	if _, ok := g.edgeKeys[key]; ok {
		return false
	}

	g.edgeKeys[key] = struct{}{}
	g.Edges = append(g.Edges, Edge{
		Source:   source,
		Target:   target,
		Relation: relation,
	})
	return true
}

func edgeKey(a, b, relation string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b + "|" + relation
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.byID[id]
}

// NeighborSet returns the 1-hop neighborhood of a node: every node
// sharing an edge with it, plus the node itself. An unknown id yields
// an empty set.
func (g *Graph) NeighborSet(id string) map[string]bool {
	neighbors := make(map[string]bool)
	if g.byID[id] == nil {
		return neighbors
	}

	neighbors[id] = true
	for _, edge := range g.Edges {
		if edge.Source == id {
			neighbors[edge.Target] = true
		}
		if edge.Target == id {
			neighbors[edge.Source] = true
		}
	}
	return neighbors
}
