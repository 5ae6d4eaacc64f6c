package layout

import "math"

// The solver composes four forces per tick, velocity-based in the
// d3-force manner: links pull connected nodes toward a target
// separation, charge repels all pairs, collision resolves residual
// overlap positionally, and a weak centering pull keeps the graph from
// drifting out of the viewport.

func (s *Simulation) applyLinkForce() {
	for _, l := range s.links {
		dx := l.target.x + l.target.vx - l.source.x - l.source.vx
		dy := l.target.y + l.target.vy - l.source.y - l.source.vy
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dx, dy = s.jiggle(), s.jiggle()
			dist = math.Hypot(dx, dy)
		}

		strength := (dist - s.cfg.LinkDistance) / dist * s.alpha
		fx, fy := dx*strength, dy*strength

		l.target.vx -= fx * l.bias
		l.target.vy -= fy * l.bias
		l.source.vx += fx * (1 - l.bias)
		l.source.vy += fy * (1 - l.bias)
	}
}

func (s *Simulation) applyChargeForce() {
	for i, a := range s.bodies {
		for _, b := range s.bodies[i+1:] {
			dx := b.x - a.x
			dy := b.y - a.y
			distSq := dx*dx + dy*dy
			if distSq == 0 {
				dx, dy = s.jiggle(), s.jiggle()
				distSq = dx*dx + dy*dy
			}

			// Clamp very close pairs so the repulsion stays bounded.
			if distSq < 1 {
				distSq = 1
			}

			w := s.cfg.Charge * s.alpha / distSq
			a.vx -= dx * w
			a.vy -= dy * w
			b.vx += dx * w
			b.vy += dy * w
		}
	}
}

func (s *Simulation) applyCollideForce() {
	for i, a := range s.bodies {
		for _, b := range s.bodies[i+1:] {
			minDist := a.radius + b.radius + s.cfg.CollideMargin
			dx := b.x + b.vx - a.x - a.vx
			dy := b.y + b.vy - a.y - a.vy
			dist := math.Hypot(dx, dy)
			if dist >= minDist {
				continue
			}
			if dist == 0 {
				dx, dy = s.jiggle(), s.jiggle()
				dist = math.Hypot(dx, dy)
			}

			overlap := (minDist - dist) / dist * 0.5
			fx, fy := dx*overlap, dy*overlap
			a.vx -= fx
			a.vy -= fy
			b.vx += fx
			b.vy += fy
		}
	}
}

func (s *Simulation) applyCenterForce() {
	if len(s.bodies) == 0 {
		return
	}

	var meanX, meanY float64
	for _, b := range s.bodies {
		meanX += b.x
		meanY += b.y
	}
	meanX = meanX/float64(len(s.bodies)) - s.cfg.Width/2
	meanY = meanY/float64(len(s.bodies)) - s.cfg.Height/2

	for _, b := range s.bodies {
		b.x -= meanX * s.cfg.CenterStrength
		b.y -= meanY * s.cfg.CenterStrength
	}
}

// jiggle breaks exact-overlap ties with a tiny deterministic offset.
func (s *Simulation) jiggle() float64 {
	return (s.jitter.Float64() - 0.5) * 1e-6
}
