package layout

import (
	"math"
	"math/rand"

	"paperatlas/pkg/graph"
)

// Config tunes the force solver. Zero values fall back to defaults that
// match the layout the web frontend shipped with.
type Config struct {
	Width  float64
	Height float64

	// LinkDistance is the separation the link force relaxes toward.
	LinkDistance float64
	// Charge is the many-body strength; negative repels.
	Charge float64
	// CollideMargin is added to each node radius for overlap resolution.
	CollideMargin float64
	// CenterStrength is the pull toward the viewport center.
	CenterStrength float64

	// Radius reports the rendered radius of a node, used by the
	// collision force. Nil falls back to a flat default.
	Radius func(*graph.Node) float64
}

const (
	defaultLinkDistance   = 100
	defaultCharge         = -200
	defaultCollideMargin  = 2
	defaultCenterStrength = 0.05
	defaultRadius         = 8

	alphaMin      = 0.001
	alphaInitial  = 1.0
	velocityDecay = 0.6

	// Phyllotaxis seeding constants, so initial positions are spread
	// instead of stacked at the origin.
	initialRadius = 10.0
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

type body struct {
	node   *graph.Node
	x, y   float64
	vx, vy float64
	radius float64
	degree int
}

type link struct {
	source, target *body
	bias           float64
}

// Simulation is an iterative force solver over a private working copy
// of a graph. Each Tick advances one step and publishes positions back
// onto the graph's nodes; pin fields (FX/FY) are read from the nodes at
// the start of every tick, so drag updates take effect on the next
// tick, never retroactively.
//
// A Simulation is not safe for concurrent use; callers serialize Tick
// against any node mutation (the view layer owns that lock).
type Simulation struct {
	cfg    Config
	bodies []*body
	links  []link

	alpha       float64
	alphaTarget float64
	alphaDecay  float64

	lastDisplacement float64
	jitter           *rand.Rand
}

// New builds a simulation for the given graph. Edges referencing
// missing nodes are skipped; the filter step upstream is responsible
// for not producing them in the first place. Nodes without positions
// are seeded on a phyllotaxis spiral around the viewport center.
func New(g *graph.Graph, cfg Config) *Simulation {
	if cfg.LinkDistance == 0 {
		cfg.LinkDistance = defaultLinkDistance
	}
	if cfg.Charge == 0 {
		cfg.Charge = defaultCharge
	}
	if cfg.CollideMargin == 0 {
		cfg.CollideMargin = defaultCollideMargin
	}
	if cfg.CenterStrength == 0 {
		cfg.CenterStrength = defaultCenterStrength
	}
	if cfg.Radius == nil {
		cfg.Radius = func(*graph.Node) float64 { return defaultRadius }
	}

	sim := &Simulation{
		cfg:        cfg,
		alpha:      alphaInitial,
		alphaDecay: 1 - math.Pow(alphaMin, 1.0/300),
		jitter:     rand.New(rand.NewSource(1)),
	}
	if g == nil {
		return sim
	}

	cx, cy := cfg.Width/2, cfg.Height/2

	byID := make(map[string]*body, len(g.Nodes))
	for i, node := range g.Nodes {
		b := &body{
			node:   node,
			x:      node.X,
			y:      node.Y,
			radius: cfg.Radius(node),
		}
		if node.X == 0 && node.Y == 0 {
			r := initialRadius * math.Sqrt(0.5+float64(i))
			a := float64(i) * initialAngle
			b.x = cx + r*math.Cos(a)
			b.y = cy + r*math.Sin(a)
		}
		sim.bodies = append(sim.bodies, b)
		byID[node.ID] = b
	}

	for _, edge := range g.Edges {
		source, target := byID[edge.Source], byID[edge.Target]
		if source == nil || target == nil {
			continue
		}
		source.degree++
		target.degree++
		sim.links = append(sim.links, link{source: source, target: target})
	}
	for i := range sim.links {
		l := &sim.links[i]
		l.bias = float64(l.source.degree) / float64(l.source.degree+l.target.degree)
	}

	return sim
}

// Tick advances the simulation one step and writes the resulting
// positions onto the graph nodes. Ticking a settled or empty simulation
// is a cheap no-op.
func (s *Simulation) Tick() {
	if len(s.bodies) == 0 || s.Settled() {
		s.lastDisplacement = 0
		return
	}

	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	s.applyLinkForce()
	s.applyChargeForce()
	s.applyCollideForce()
	s.applyCenterForce()

	displacement := 0.0
	for _, b := range s.bodies {
		if fx, fy := b.node.FX, b.node.FY; fx != nil && fy != nil {
			b.x, b.y = *fx, *fy
			b.vx, b.vy = 0, 0
		} else {
			b.vx *= velocityDecay
			b.vy *= velocityDecay
			b.x += b.vx
			b.y += b.vy
			displacement += math.Hypot(b.vx, b.vy)
		}
		b.node.X, b.node.Y = b.x, b.y
	}
	s.lastDisplacement = displacement
}

// Settled reports whether the cooling schedule has run out while no
// interaction is keeping the simulation warm.
func (s *Simulation) Settled() bool {
	return s.alpha < alphaMin && s.alphaTarget == 0
}

// Reheat raises alpha so the solver resumes from the current positions,
// used when a drag starts on a settled graph.
func (s *Simulation) Reheat(alpha float64) {
	if s.alpha < alpha {
		s.alpha = alpha
	}
}

// SetAlphaTarget keeps the simulation warm while non-zero. Drag
// handlers set a small target on pick-up and reset it to zero on
// release so the graph re-settles.
func (s *Simulation) SetAlphaTarget(target float64) {
	s.alphaTarget = target
}

// Alpha returns the current cooling value.
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// LastDisplacement returns the total positional movement of free nodes
// during the most recent tick.
func (s *Simulation) LastDisplacement() float64 {
	return s.lastDisplacement
}

// NodeCount returns the number of simulated bodies.
func (s *Simulation) NodeCount() int {
	return len(s.bodies)
}
