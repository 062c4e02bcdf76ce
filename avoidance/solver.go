// Package avoidance applies local collision avoidance to a tick's agents,
// per spec.md §4.6: per-agent neighbour/obstacle gathering, a border-wall
// reconstruction sweep over the navigation data, and a 2-D ORCA solver
// with a two-pass linear-program fallback.
//
// The solver math (this file) has no equivalent anywhere in the example
// pack: the Rust original this engine is modeled on
// (original_source/crates/landmass/src/avoidance.rs) delegates it whole
// to an external `dodgy_2d` crate, and no Go ORCA/RVO2 implementation
// appears in any example repo. It is hand-written from the published
// ORCA algorithm (van den Berg, Guy, Lin, Manocha, "Reciprocal n-body
// Collision Avoidance") in the same half-plane/two-pass-linear-program
// shape the open-source RVO2 library popularized, since that's the
// algorithm spec.md §4.6 is itself describing.
package avoidance

import (
	"github.com/arl/landmass/geom"
	"github.com/arl/math32"
)

const epsilon float32 = 1e-5

// orcaLine is one half-plane constraint: the feasible region is every
// point p such that Direction.Perp(p.Sub(Point)) >= 0 (p is to the left
// of or on the directed line through Point along Direction).
type orcaLine struct {
	Point, Direction geom.Vec2
}

// computeOrcaLine builds one ORCA half-plane for the querying agent
// (at the origin of this relative frame, with velocity ownVelocity)
// against a neighbour at relativePosition with relativeVelocity =
// ownVelocity - neighbourVelocity, combined radius combinedRadius, over
// timeHorizon. weight is how much of the avoidance this agent takes on:
// 1.0 for static obstacles (the agent can't push a wall), or a
// responsibility-derived split in [0,1] for another avoidance agent.
func computeOrcaLine(relativePosition, relativeVelocity geom.Vec2, combinedRadius, timeHorizon, weight float32, ownVelocity geom.Vec2, timeStep float32) orcaLine {
	invTimeHorizon := 1.0 / timeHorizon
	distSq := relativePosition.LenSqr()
	combinedRadiusSq := combinedRadius * combinedRadius

	var direction, u geom.Vec2

	if distSq > combinedRadiusSq {
		w := relativeVelocity.Sub(relativePosition.Scale(invTimeHorizon))
		wLengthSq := w.LenSqr()
		dotProduct1 := w.Dot(relativePosition)

		if dotProduct1 < 0 && dotProduct1*dotProduct1 > combinedRadiusSq*wLengthSq {
			wLength := math32.Sqrt(wLengthSq)
			unitW := w.Scale(1 / wLength)
			direction = geom.Vec2{X: unitW.Y, Y: -unitW.X}
			u = unitW.Scale(combinedRadius*invTimeHorizon - wLength)
		} else {
			leg := math32.Sqrt(distSq - combinedRadiusSq)
			if relativePosition.Perp(w) > 0 {
				direction = geom.Vec2{
					X: relativePosition.X*leg - relativePosition.Y*combinedRadius,
					Y: relativePosition.X*combinedRadius + relativePosition.Y*leg,
				}.Scale(1 / distSq)
			} else {
				direction = geom.Vec2{
					X: relativePosition.X*leg + relativePosition.Y*combinedRadius,
					Y: -relativePosition.X*combinedRadius + relativePosition.Y*leg,
				}.Scale(-1 / distSq)
			}
			dotProduct2 := relativeVelocity.Dot(direction)
			u = direction.Scale(dotProduct2).Sub(relativeVelocity)
		}
	} else {
		invTimeStep := 1.0 / timeStep
		w := relativeVelocity.Sub(relativePosition.Scale(invTimeStep))
		wLength := w.Len()
		unitW := w.Scale(1 / wLength)
		direction = geom.Vec2{X: unitW.Y, Y: -unitW.X}
		u = unitW.Scale(combinedRadius*invTimeStep - wLength)
	}

	return orcaLine{Point: ownVelocity.Add(u.Scale(weight)), Direction: direction}
}

// solve runs the two-pass linear program of spec.md §4.6: first attempts
// to land as close as possible to preferred within every half-plane
// (linearProgram2); on infeasibility, falls back to minimizing the
// maximum constraint penetration starting from the line that failed
// (linearProgram3). numObstacleLines marks the prefix of lines that must
// never be relaxed (the wall constraints), matching RVO2's convention
// that agent-agent constraints may be sacrificed before obstacle ones.
func solve(lines []orcaLine, numObstacleLines int, maxSpeed float32, preferred geom.Vec2) geom.Vec2 {
	result, failedAt, ok := linearProgram2(lines, maxSpeed, preferred, false)
	if !ok {
		result = linearProgram3(lines, numObstacleLines, failedAt, maxSpeed, result)
	}
	return result
}

// linearProgram1 solves the 1-D sub-problem of satisfying lines[lineNo]
// subject to every earlier line in lines, optimizing distance to
// optVelocity (or furthest along the line, when directionOpt).
func linearProgram1(lines []orcaLine, lineNo int, radius float32, optVelocity geom.Vec2, directionOpt bool) (geom.Vec2, bool) {
	line := lines[lineNo]
	dotProduct := line.Point.Dot(line.Direction)
	discriminant := dotProduct*dotProduct + radius*radius - line.Point.LenSqr()

	if discriminant < 0 {
		return geom.Vec2{}, false
	}

	sqrtDiscriminant := math32.Sqrt(discriminant)
	tLeft := -dotProduct - sqrtDiscriminant
	tRight := -dotProduct + sqrtDiscriminant

	for i := 0; i < lineNo; i++ {
		denominator := line.Direction.Perp(lines[i].Direction)
		numerator := lines[i].Direction.Perp(line.Point.Sub(lines[i].Point))

		if abs32(denominator) <= epsilon {
			if numerator < 0 {
				return geom.Vec2{}, false
			}
			continue
		}

		t := numerator / denominator
		if denominator >= 0 {
			if t < tRight {
				tRight = t
			}
		} else {
			if t > tLeft {
				tLeft = t
			}
		}
		if tLeft > tRight {
			return geom.Vec2{}, false
		}
	}

	if directionOpt {
		if optVelocity.Dot(line.Direction) > 0 {
			return line.Point.Add(line.Direction.Scale(tRight)), true
		}
		return line.Point.Add(line.Direction.Scale(tLeft)), true
	}

	t := line.Direction.Dot(optVelocity.Sub(line.Point))
	switch {
	case t < tLeft:
		return line.Point.Add(line.Direction.Scale(tLeft)), true
	case t > tRight:
		return line.Point.Add(line.Direction.Scale(tRight)), true
	default:
		return line.Point.Add(line.Direction.Scale(t)), true
	}
}

// linearProgram2 attempts to satisfy every line in order, falling back to
// linearProgram1 whenever the running result violates one. It returns the
// index of the first line it could not satisfy (== len(lines) on full
// success).
func linearProgram2(lines []orcaLine, radius float32, optVelocity geom.Vec2, directionOpt bool) (geom.Vec2, int, bool) {
	var result geom.Vec2
	if directionOpt {
		result = optVelocity.Scale(radius)
	} else if optVelocity.LenSqr() > radius*radius {
		result = optVelocity.Normalized().Scale(radius)
	} else {
		result = optVelocity
	}

	for i, line := range lines {
		if line.Direction.Perp(line.Point.Sub(result)) > 0 {
			candidate, ok := linearProgram1(lines, i, radius, optVelocity, directionOpt)
			if !ok {
				return result, i, false
			}
			result = candidate
		}
	}
	return result, len(lines), true
}

// linearProgram3 is RVO2's infeasibility fallback: starting from
// beginLine, it re-solves a 2-D LP over the obstacle-line prefix plus
// every agent line already processed, optimizing perpendicular distance
// to the offending line so the overall penetration is minimized.
func linearProgram3(lines []orcaLine, numObstacleLines, beginLine int, radius float32, result geom.Vec2) geom.Vec2 {
	distance := float32(0)

	for i := beginLine; i < len(lines); i++ {
		if lines[i].Direction.Perp(lines[i].Point.Sub(result)) <= distance {
			continue
		}

		projLines := append([]orcaLine(nil), lines[:numObstacleLines]...)

		for j := numObstacleLines; j < i; j++ {
			var line orcaLine
			determinant := lines[i].Direction.Perp(lines[j].Direction)

			if abs32(determinant) <= epsilon {
				if lines[i].Direction.Dot(lines[j].Direction) > 0 {
					continue
				}
				line.Point = lines[i].Point.Add(lines[j].Point).Scale(0.5)
			} else {
				t := lines[j].Direction.Perp(lines[i].Point.Sub(lines[j].Point)) / determinant
				line.Point = lines[i].Point.Add(lines[i].Direction.Scale(t))
			}
			line.Direction = lines[j].Direction.Sub(lines[i].Direction).Normalized()
			projLines = append(projLines, line)
		}

		perp := geom.Vec2{X: -lines[i].Direction.Y, Y: lines[i].Direction.X}
		candidate, count, _ := linearProgram2(projLines, radius, perp, true)
		if count < len(projLines) {
			// The projected sub-problem is itself infeasible; keep the
			// previous result rather than propagate a worse one.
			continue
		}
		result = candidate
		distance = lines[i].Direction.Perp(lines[i].Point.Sub(result))
	}

	return result
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
