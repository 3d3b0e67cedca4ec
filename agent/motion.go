package agent

import (
	"math"
)

// follow walks the current path one step, then the exit leg if one is planned.
func (a *Agent) follow() {
	if a.cursor >= len(a.path) {
		if a.exit != nil {
			if a.approach(a.exit.x, a.exit.z) {
				// The owner should have moved us on by now.
				a.clearTarget()
				a.state = PickingTarget
			}
			return
		}
		a.arrive()
		return
	}

	x, z := a.layout.CellCenter(a.path[a.cursor])
	if a.approach(x, z) {
		a.cursor++
	}
}

// approach moves toward (x, z) at walking speed and reports arrival. A heading error
// above the tolerance starts a turn instead of moving.
func (a *Agent) approach(x, z float64) bool {
	dx, dz := x-a.x, z-a.z
	d := math.Hypot(dx, dz)
	if d < ArriveEpsilon {
		a.x, a.z = x, z
		return true
	}

	desired := HeadingTo(dx, dz)
	if math.Abs(angleDiff(desired, a.heading)) > TurnTolerance {
		a.beginTurn(desired, FollowingPath)
		return false
	}
	a.heading = desired

	step := math.Min(AutoMoveSpeed, d)
	nx := a.x - math.Sin(a.heading)*step
	nz := a.z - math.Cos(a.heading)*step
	if !a.collision.IsPositionValid(nx, nz) {
		a.turnAway()
		return false
	}

	a.x, a.z = nx, nz
	a.checkProgress()
	return false
}

// arrive looks for a painting next to the reached target.
func (a *Agent) arrive() {
	a.visited.Put(a.target)

	if a.paintings == nil {
		a.clearTarget()
		a.state = PickingTarget
		return
	}
	if p, ok := a.paintings.PaintingAt(a.target); ok {
		a.startInspection(p)
		return
	}
	if a.paintings.RequestPaintings(a.target) {
		a.awaiting = a.target
		a.state = AwaitingImage
		return
	}

	a.clearTarget()
	a.state = PickingTarget
}

func (a *Agent) startInspection(p Painting) {
	a.painting = p
	a.phase = 0
	a.phaseTicks = 0
	a.state = InspectingPainting
}

// inspect runs the timed look sequence: painting, title plate, level. Yaw and pitch keep
// easing toward the phase target; only the timer advances the phase.
func (a *Agent) inspect() {
	dx, dz := a.painting.X-a.x, a.painting.Z-a.z
	a.heading = stepAngle(a.heading, HeadingTo(dx, dz), TurnSpeed)

	reach := math.Hypot(dx, dz)
	var pitch float64
	switch a.phase {
	case 0:
		pitch = math.Atan2(PaintingCenterHeight-EyeHeight, reach)
	case 1:
		pitch = math.Atan2(TitlePlateHeight-EyeHeight, reach)
	}
	a.pitch = stepToward(a.pitch, pitch, PitchSpeed)

	a.phaseTicks++
	if a.phaseTicks < InspectPhaseTicks {
		return
	}
	a.phase++
	a.phaseTicks = 0
	if a.phase >= InspectPhases {
		a.phase = 0
		a.pitch = 0
		a.clearTarget()
		a.resetStuckCheck()
		a.state = PickingTarget
	}
}

func (a *Agent) beginTurn(target float64, after State) {
	a.turnTarget = normalizeAngle(target)
	a.afterTurn = after
	a.state = Turning
}

// turn rotates toward the turn target the short way round and snaps on arrival.
func (a *Agent) turn() {
	if math.Abs(angleDiff(a.turnTarget, a.heading)) > TurnSpeed {
		a.heading = stepAngle(a.heading, a.turnTarget, TurnSpeed)
		return
	}
	a.heading = a.turnTarget
	a.resetStuckCheck()
	a.state = a.afterTurn
}

// turnAway drops the path and turns a quarter in a random direction.
func (a *Agent) turnAway() {
	a.detours++
	a.clearTarget()
	turn := math.Pi / 2
	if a.rng.Float64() < 0.5 {
		turn = -turn
	}
	a.beginTurn(a.heading+turn, PickingTarget)
}

// checkProgress turns away when too little ground was covered since the last check.
func (a *Agent) checkProgress() {
	a.stuckTicks++
	if a.stuckTicks < StuckCheckTicks {
		return
	}
	moved := math.Hypot(a.x-a.checkX, a.z-a.checkZ)
	a.resetStuckCheck()
	if moved < MinProgress {
		a.turnAway()
	}
}

// HeadingTo returns the yaw that faces the offset (dx, dz). Heading 0 faces -z.
func HeadingTo(dx, dz float64) float64 {
	return math.Atan2(-dx, -dz)
}

// normalizeAngle maps a to (-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// angleDiff is the signed shortest rotation from current to target.
func angleDiff(target, current float64) float64 {
	return normalizeAngle(target - current)
}

// stepAngle rotates current toward target by at most rate, returning target exactly once
// within reach. Target must already be normalized.
func stepAngle(current, target, rate float64) float64 {
	d := angleDiff(target, current)
	if math.Abs(d) <= rate {
		return target
	}
	return normalizeAngle(current + math.Copysign(rate, d))
}

func stepToward(current, target, rate float64) float64 {
	if math.Abs(target-current) <= rate {
		return target
	}
	return current + math.Copysign(rate, target-current)
}
