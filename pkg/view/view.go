package view

import (
	"sync"
	"time"

	"paperatlas/pkg/graph"
	"paperatlas/pkg/layout"
)

// Session states. A view starts Uninitialized, enters Simulating when a
// graph is set, reports Settled once the cooling schedule runs out, and
// ends Disposed after Close.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateSimulating    State = "simulating"
	StateSettled       State = "settled"
	StateDisposed      State = "disposed"
)

const (
	minScale = 0.1
	maxScale = 4.0

	// Opacity levels for the neighbor highlight pass.
	opacityFull   = 1.0
	opacityDimmed = 0.1
	opacityEdge   = 0.6

	// Drag interaction warmth, matching the frontend's d3 wiring.
	dragAlpha       = 0.3
	dragAlphaTarget = 0.3
)

// Config tunes a view session.
type Config struct {
	Width  float64
	Height float64

	// FrameInterval is the tick schedule; zero means the 60fps default.
	FrameInterval time.Duration

	// OnFrame, when set, is called after every simulation tick with a
	// fresh snapshot. Renderers (the websocket session) subscribe here.
	OnFrame func(Frame)

	// OnNodeClick, when set, receives the node selected by Click.
	OnNodeClick func(*graph.Node)
}

// View is one interactive graph session: it owns the simulation and its
// tick runner, the pan/zoom camera, the current selection and the
// neighbor highlight. All methods are safe for concurrent use; the
// internal lock serializes pointer events against simulation ticks.
type View struct {
	cfg Config

	// swap serializes SetGraph/Close against each other so exactly one
	// runner is ever live; mu guards the session state against ticks.
	swap sync.Mutex

	mu     sync.Mutex
	graph  *graph.Graph
	sim    *layout.Simulation
	runner *layout.Runner

	offsetX, offsetY float64
	scale            float64

	selected    string
	dragging    string
	highlighted map[string]bool

	closed bool
}

// NodeFrame is one node in a rendered snapshot, in screen coordinates.
type NodeFrame struct {
	ID       string      `json:"id"`
	Label    string      `json:"label"`
	Group    graph.Group `json:"group"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Radius   float64     `json:"radius"`
	Color    string      `json:"color"`
	Opacity  float64     `json:"opacity"`
	Selected bool        `json:"selected,omitempty"`
}

// EdgeFrame is one edge in a rendered snapshot, endpoints in screen
// coordinates.
type EdgeFrame struct {
	Source  string  `json:"source"`
	Target  string  `json:"target"`
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Opacity float64 `json:"opacity"`
}

// Frame is a complete render snapshot of the session.
type Frame struct {
	Nodes   []NodeFrame `json:"nodes"`
	Edges   []EdgeFrame `json:"edges"`
	Scale   float64     `json:"scale"`
	Settled bool        `json:"settled"`
}

// New creates an empty view. Nothing renders until SetGraph.
func New(cfg Config) *View {
	return &View{
		cfg:   cfg,
		scale: 1,
	}
}

// SetGraph swaps the session onto a new graph. The previous runner is
// stopped before the new simulation starts, so at most one scheduler is
// ever live per view; selection, highlight and drag state reset.
func (v *View) SetGraph(g *graph.Graph) {
	// Concurrent swaps must not both observe the same previous runner;
	// the loser would install a replacement nobody ever stops.
	v.swap.Lock()
	defer v.swap.Unlock()

	v.mu.Lock()
	prev := v.runner
	v.mu.Unlock()

	// Stop outside the tick lock: the runner's tick callback takes it.
	if prev != nil {
		prev.Stop()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}

	v.graph = g
	v.sim = layout.New(g, layout.Config{
		Width:  v.cfg.Width,
		Height: v.cfg.Height,
		Radius: Radius,
	})
	v.selected = ""
	v.dragging = ""
	v.highlighted = nil

	v.runner = layout.NewRunner(v.cfg.FrameInterval, v.tick)
	v.runner.Start()
}

func (v *View) tick() {
	v.mu.Lock()
	v.sim.Tick()
	var frame Frame
	if v.cfg.OnFrame != nil {
		frame = v.snapshotLocked()
	}
	v.mu.Unlock()

	if v.cfg.OnFrame != nil {
		v.cfg.OnFrame(frame)
	}
}

// State reports the session lifecycle phase.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch {
	case v.closed:
		return StateDisposed
	case v.sim == nil:
		return StateUninitialized
	case v.sim.Settled():
		return StateSettled
	default:
		return StateSimulating
	}
}

// Pan translates the camera by a screen-space delta. Node coordinates
// are untouched; only the viewport moves.
func (v *View) Pan(dx, dy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offsetX += dx
	v.offsetY += dy
}

// Zoom scales the camera by the given factor around a screen-space
// focal point, clamped to [0.1, 4]. The world point under the cursor
// stays put.
func (v *View) Zoom(factor, screenX, screenY float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	scale := v.scale * factor
	if scale < minScale {
		scale = minScale
	}
	if scale > maxScale {
		scale = maxScale
	}

	wx := (screenX - v.offsetX) / v.scale
	wy := (screenY - v.offsetY) / v.scale
	v.offsetX = screenX - wx*scale
	v.offsetY = screenY - wy*scale
	v.scale = scale
}

// Scale returns the current zoom level.
func (v *View) Scale() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scale
}

func (v *View) screenToWorldLocked(sx, sy float64) (float64, float64) {
	return (sx - v.offsetX) / v.scale, (sy - v.offsetY) / v.scale
}

// hitTestLocked returns the topmost node under a world point. Nodes are
// rendered in slice order, so the last match wins.
func (v *View) hitTestLocked(wx, wy float64) *graph.Node {
	if v.graph == nil {
		return nil
	}
	for i := len(v.graph.Nodes) - 1; i >= 0; i-- {
		n := v.graph.Nodes[i]
		dx, dy := wx-n.X, wy-n.Y
		r := Radius(n)
		if dx*dx+dy*dy <= r*r {
			return n
		}
	}
	return nil
}

// Click selects the topmost node under the given screen point and
// highlights its 1-hop neighborhood; a background click clears both.
// The highlight applies to the very next frame, independent of the
// simulation's cooling state. Returns the clicked node, or nil.
func (v *View) Click(screenX, screenY float64) *graph.Node {
	v.mu.Lock()
	wx, wy := v.screenToWorldLocked(screenX, screenY)
	node := v.hitTestLocked(wx, wy)
	if node == nil {
		v.selected = ""
		v.highlighted = nil
		v.mu.Unlock()
		return nil
	}

	v.selected = node.ID
	v.highlighted = v.graph.NeighborSet(node.ID)
	cb := v.cfg.OnNodeClick
	v.mu.Unlock()

	if cb != nil {
		cb(node)
	}
	return node
}

// Selected returns the id of the selected node, or empty.
func (v *View) Selected() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

// DragStart begins a drag on the node under the given screen point,
// pinning it and re-heating the simulation so neighbors follow. Returns
// false when the point hits background.
func (v *View) DragStart(screenX, screenY float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	wx, wy := v.screenToWorldLocked(screenX, screenY)
	node := v.hitTestLocked(wx, wy)
	if node == nil {
		return false
	}

	v.dragging = node.ID
	fx, fy := wx, wy
	node.FX, node.FY = &fx, &fy

	v.sim.Reheat(dragAlpha)
	v.sim.SetAlphaTarget(dragAlphaTarget)
	return true
}

// DragMove updates the dragged node's pin. The simulation picks the new
// position up on its next tick. No-op when no drag is active.
func (v *View) DragMove(screenX, screenY float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.dragging == "" {
		return
	}
	node := v.graph.Node(v.dragging)
	if node == nil {
		v.dragging = ""
		return
	}

	fx, fy := v.screenToWorldLocked(screenX, screenY)
	node.FX, node.FY = &fx, &fy
}

// DragEnd releases the dragged node back to the solver and lets the
// simulation cool down again.
func (v *View) DragEnd() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.dragging == "" {
		return
	}
	if node := v.graph.Node(v.dragging); node != nil {
		node.FX, node.FY = nil, nil
	}
	v.dragging = ""
	v.sim.SetAlphaTarget(0)
}

// Frame returns a render snapshot: screen-space positions, radii,
// colors and the opacity assignment of the current highlight pass.
func (v *View) Frame() Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *View) snapshotLocked() Frame {
	frame := Frame{Scale: v.scale}
	if v.graph == nil {
		return frame
	}
	frame.Settled = v.sim.Settled()

	dimming := len(v.highlighted) > 0
	frame.Nodes = make([]NodeFrame, 0, len(v.graph.Nodes))
	for _, n := range v.graph.Nodes {
		opacity := opacityFull
		if dimming && !v.highlighted[n.ID] {
			opacity = opacityDimmed
		}
		frame.Nodes = append(frame.Nodes, NodeFrame{
			ID:       n.ID,
			Label:    n.Label,
			Group:    n.Group,
			X:        n.X*v.scale + v.offsetX,
			Y:        n.Y*v.scale + v.offsetY,
			Radius:   Radius(n) * v.scale,
			Color:    Color(n),
			Opacity:  opacity,
			Selected: n.ID == v.selected,
		})
	}

	frame.Edges = make([]EdgeFrame, 0, len(v.graph.Edges))
	for _, e := range v.graph.Edges {
		source, target := v.graph.Node(e.Source), v.graph.Node(e.Target)
		if source == nil || target == nil {
			continue
		}
		opacity := opacityEdge
		if dimming {
			// An edge stays prominent when both endpoints are inside the
			// highlighted neighborhood, including edges between two
			// neighbors of the selection.
			if v.highlighted[e.Source] && v.highlighted[e.Target] {
				opacity = opacityFull
			} else {
				opacity = opacityDimmed
			}
		}
		frame.Edges = append(frame.Edges, EdgeFrame{
			Source:  e.Source,
			Target:  e.Target,
			X1:      source.X*v.scale + v.offsetX,
			Y1:      source.Y*v.scale + v.offsetY,
			X2:      target.X*v.scale + v.offsetX,
			Y2:      target.Y*v.scale + v.offsetY,
			Opacity: opacity,
		})
	}
	return frame
}

// Settle runs the simulation synchronously until it cools, bypassing
// the frame schedule. Intended for tests and headless layout.
func (v *View) Settle(maxTicks int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sim == nil {
		return
	}
	for i := 0; i < maxTicks && !v.sim.Settled(); i++ {
		v.sim.Tick()
	}
}

// Close disposes the session: the runner stops, no frame is published
// after Close returns, and the view rejects further graphs.
func (v *View) Close() {
	v.swap.Lock()
	defer v.swap.Unlock()

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	runner := v.runner
	v.runner = nil
	v.mu.Unlock()

	if runner != nil {
		runner.Stop()
	}
}
